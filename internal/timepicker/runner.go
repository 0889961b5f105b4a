package timepicker

import (
	"errors"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"
)

// ErrCancelled is returned by Run when the user leaves without confirming.
var ErrCancelled = errors.New("timepicker: cancelled")

// Result is the confirmed value of a standalone picker. Fields holds the
// named hour and minute fields, plus the hour under the picker's ID.
type Result struct {
	Value  string            `json:"value"`
	Fields map[string]string `json:"fields,omitempty"`
}

type RunOptions struct {
	Mouse  bool
	Title  string
	Logger *zap.Logger
}

type runnerKeys struct {
	Submit key.Binding
	Cancel key.Binding
	Quit   key.Binding
}

type runnerModel struct {
	picker Model
	bus    *PointerBus
	keys   runnerKeys
	help   help.Model
	title  string

	// owned value when the picker runs controlled
	value *string

	result    Result
	cancelled bool
}

const (
	runnerOriginX = 2
	runnerOriginY = 2
)

// Run shows a single picker full-screen and returns the confirmed value.
// When props.Value is set the runner acts as the picker's owner and feeds
// each change back.
func Run(props Props, opts RunOptions) (Result, error) {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	if props.Logger == nil {
		props.Logger = log
	}

	m := newRunnerModel(props, opts.Title)
	programOpts := []tea.ProgramOption{tea.WithAltScreen()}
	if opts.Mouse {
		programOpts = append(programOpts, tea.WithMouseCellMotion())
	}
	final, err := tea.NewProgram(m, programOpts...).Run()
	m.picker.Unmount()
	if err != nil {
		return Result{}, err
	}
	rm := final.(*runnerModel)
	if rm.cancelled {
		log.Info("pick cancelled")
		return Result{}, ErrCancelled
	}
	log.Info("pick confirmed", zap.String("value", rm.result.Value))
	return rm.result, nil
}

func newRunnerModel(props Props, title string) *runnerModel {
	rm := &runnerModel{
		bus:   NewPointerBus(),
		help:  help.New(),
		title: title,
		keys: runnerKeys{
			Submit: key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "confirm")),
			Cancel: key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
			Quit:   key.NewBinding(key.WithKeys("ctrl+c")),
		},
	}
	if rm.title == "" {
		rm.title = "Pick a time"
	}
	if props.Value != nil {
		v := *props.Value
		rm.value = &v
		onChange := props.OnChange
		props.OnChange = func(next string) {
			*rm.value = next
			rm.picker.SetValue(next)
			if onChange != nil {
				onChange(next)
			}
		}
	}
	rm.picker = New(props)
	rm.picker.SetOrigin(runnerOriginX, runnerOriginY)
	rm.picker.Mount(rm.bus)
	return rm
}

func (rm *runnerModel) Init() tea.Cmd { return rm.picker.Focus() }

func (rm *runnerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		rm.help.Width = msg.Width
		return rm, nil
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, rm.keys.Quit):
			rm.cancelled = true
			return rm, tea.Quit
		case key.Matches(msg, rm.keys.Submit):
			return rm, rm.submit()
		case !rm.picker.IsOpen() && msg.String() == "enter":
			return rm, rm.submit()
		case !rm.picker.IsOpen() && key.Matches(msg, rm.keys.Cancel):
			rm.cancelled = true
			return rm, tea.Quit
		}
	case tea.MouseMsg:
		if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft {
			rm.bus.Publish(PointerEvent{X: msg.X, Y: msg.Y})
		}
	case ChangedMsg:
		return rm, nil
	}
	var cmd tea.Cmd
	rm.picker, cmd = rm.picker.Update(msg)
	return rm, cmd
}

// submit normalizes the focused field and records the result.
func (rm *runnerModel) submit() tea.Cmd {
	rm.picker.Blur()
	rm.result = Result{Value: rm.picker.Value()}
	if h, mi := rm.picker.FieldNames(); h != "" {
		rm.result.Fields = map[string]string{h: rm.picker.Hour(), mi: rm.picker.Minute()}
	}
	if id := rm.picker.ID(); id != "" {
		if rm.result.Fields == nil {
			rm.result.Fields = map[string]string{}
		}
		rm.result.Fields[id] = rm.picker.Hour()
	}
	return tea.Quit
}

func (rm *runnerModel) View() string {
	title := lipgloss.NewStyle().Bold(true).MarginLeft(runnerOriginX).Render(rm.title)
	body := lipgloss.NewStyle().MarginLeft(runnerOriginX).Render(rm.picker.View())
	hint := lipgloss.NewStyle().MarginLeft(runnerOriginX).Render(
		rm.help.ShortHelpView(append(rm.picker.KeyMap().ShortHelp(), rm.keys.Submit, rm.keys.Cancel)),
	)
	return title + "\n\n" + body + "\n\n" + hint
}
