// Package gallery is an interactive showcase of the time picker: a
// controlled picker, an uncontrolled one, a custom-styled one and a disabled
// one, all sharing a single pointer bus.
package gallery

import (
	"strings"

	"timepicker-cli/internal/timepicker"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"
)

// Options configures the gallery.
type Options struct {
	Mouse       bool
	Width       int
	PanelRows   int
	Placeholder string
	Logger      *zap.Logger
}

type section struct {
	heading string
	picker  timepicker.Model
	caption func() string
}

type model struct {
	bus      *timepicker.PointerBus
	sections []section
	focused  int
	help     help.Model
	keys     galleryKeys
	log      *zap.Logger

	controlled   string
	lastChange   string
	changeCounts map[string]int
}

type galleryKeys struct {
	Next key.Binding
	Prev key.Binding
	Quit key.Binding
}

const (
	marginLeft = 2
	marginTop  = 1
)

func newModel(opts Options) *model {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	m := &model{
		bus:          timepicker.NewPointerBus(),
		help:         help.New(),
		log:          log,
		controlled:   "09:30",
		changeCounts: map[string]int{},
		keys: galleryKeys{
			Next: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next")),
			Prev: key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "prev")),
			Quit: key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
		},
	}

	base := timepicker.Props{
		Width:       opts.Width,
		PanelRows:   opts.PanelRows,
		Placeholder: opts.Placeholder,
		Logger:      log,
	}

	controlled := base
	controlled.ID = "controlled"
	controlled.Value = &m.controlled
	// Feedback is synchronous so keystrokes stick in the field.
	controlled.OnChange = func(v string) {
		m.log.Info("time changed", zap.String("picker", "controlled"), zap.String("value", v))
		m.controlled = v
		m.sections[0].picker.SetValue(v)
	}

	uncontrolled := base
	uncontrolled.ID = "uncontrolled"
	uncontrolled.DefaultValue = "14:45"
	uncontrolled.OnChange = func(v string) {
		m.log.Info("uncontrolled time changed", zap.String("value", v))
	}

	styled := base
	styled.ID = "styled"
	styled.DefaultValue = "18:15"
	styled.Width = 20
	styled.Style = lipgloss.NewStyle().
		Border(lipgloss.ThickBorder()).
		BorderForeground(lipgloss.AdaptiveColor{Light: "99", Dark: "141"})

	disabled := base
	disabled.ID = "disabled"
	disabled.DefaultValue = "22:00"
	disabled.Disabled = true

	m.sections = []section{
		{
			heading: "Controlled TimePicker",
			picker:  timepicker.New(controlled),
			caption: func() string { return "Selected time: " + m.controlled },
		},
		{
			heading: "Uncontrolled TimePicker",
			picker:  timepicker.New(uncontrolled),
			caption: func() string {
				if m.lastChange == "" {
					return ""
				}
				return "Last change: " + m.lastChange
			},
		},
		{heading: "Custom Styling", picker: timepicker.New(styled)},
		{heading: "Disabled TimePicker", picker: timepicker.New(disabled)},
	}
	for _, s := range m.sections {
		s.picker.Mount(m.bus)
	}
	m.relayout()
	return m
}

// Run starts the gallery.
func Run(opts Options) error {
	m := newModel(opts)
	defer m.unmount()

	programOpts := []tea.ProgramOption{tea.WithAltScreen()}
	if opts.Mouse {
		programOpts = append(programOpts, tea.WithMouseCellMotion())
	}
	_, err := tea.NewProgram(m, programOpts...).Run()
	return err
}

func (m *model) unmount() {
	for _, s := range m.sections {
		s.picker.Unmount()
	}
}

func (m *model) Init() tea.Cmd { return m.sections[m.focused].picker.Focus() }

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	defer m.relayout()

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
		return m, nil

	case timepicker.ChangedMsg:
		m.changeCounts[msg.ID]++
		if msg.ID == "uncontrolled" {
			m.lastChange = msg.Value
		}
		return m, nil

	case tea.KeyMsg:
		cur := m.sections[m.focused].picker
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Next) && !cur.OnFirstField():
			return m, m.moveFocus(1)
		case key.Matches(msg, m.keys.Prev) && !cur.OnLastField():
			return m, m.moveFocus(-1)
		case msg.String() == "esc" && !cur.IsOpen():
			return m, tea.Quit
		}
		var cmd tea.Cmd
		m.sections[m.focused].picker, cmd = cur.Update(msg)
		return m, cmd

	case tea.MouseMsg:
		if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft {
			m.bus.Publish(timepicker.PointerEvent{X: msg.X, Y: msg.Y})
		}
		for i, s := range m.sections {
			if !s.picker.Bounds().Contains(msg.X, msg.Y) {
				continue
			}
			var cmds []tea.Cmd
			if i != m.focused && !s.picker.Disabled() && msg.Action == tea.MouseActionPress {
				cmds = append(cmds, m.sections[m.focused].picker.Blur())
				m.focused = i
			}
			var cmd tea.Cmd
			m.sections[i].picker, cmd = s.picker.Update(msg)
			return m, tea.Batch(append(cmds, cmd)...)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.sections[m.focused].picker, cmd = m.sections[m.focused].picker.Update(msg)
	return m, cmd
}

// moveFocus cycles keyboard focus over the enabled pickers.
func (m *model) moveFocus(delta int) tea.Cmd {
	blur := m.sections[m.focused].picker.Blur()
	n := len(m.sections)
	for i := 1; i <= n; i++ {
		next := ((m.focused+delta*i)%n + n) % n
		if !m.sections[next].picker.Disabled() {
			m.focused = next
			break
		}
	}
	return tea.Batch(blur, m.sections[m.focused].picker.Focus())
}

// relayout recomputes each picker's screen origin. An open panel pushes the
// sections below it down.
func (m *model) relayout() {
	y := marginTop
	for _, s := range m.sections {
		y += lipgloss.Height(m.renderHeading(s)) + 1
		s.picker.SetOrigin(marginLeft, y)
		y += lipgloss.Height(s.picker.View())
		y += 1 + 1 // caption line, blank line
	}
}

func (m *model) renderHeading(s section) string {
	return lipgloss.NewStyle().Bold(true).Render(s.heading)
}

func (m *model) View() string {
	var b strings.Builder
	b.WriteString(strings.Repeat("\n", marginTop))
	for _, s := range m.sections {
		b.WriteString(m.renderHeading(s))
		b.WriteString("\n\n")
		b.WriteString(s.picker.View())
		b.WriteString("\n")
		if s.caption != nil {
			b.WriteString(s.caption())
		}
		b.WriteString("\n\n")
	}
	keys := append(m.sections[m.focused].picker.KeyMap().ShortHelp(), m.keys.Next, m.keys.Quit)
	b.WriteString(m.help.ShortHelpView(keys))
	return lipgloss.NewStyle().MarginLeft(marginLeft).Render(b.String())
}
