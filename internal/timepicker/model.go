package timepicker

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"
	"go.uber.org/zap"
)

const (
	defaultWidth     = 24
	defaultPanelRows = 6
)

// Props configures a picker.
type Props struct {
	// Value puts the picker in controlled mode. The owner must feed every
	// change back through SetValue for the display to follow.
	Value *string
	// DefaultValue seeds an uncontrolled picker. Empty means "00:00".
	DefaultValue string
	// OnChange receives a well-formed "HH:MM" on every accepted edit, blur,
	// list selection and "Now".
	OnChange func(string)
	// Style is applied to the picker's root box.
	Style       lipgloss.Style
	Disabled    bool
	Placeholder string
	// ID is attached to the hour field only: it labels logs and ChangedMsg,
	// and a runner Result reports the hour under it.
	ID string
	// Name names the fields "{Name}-hour" and "{Name}-minute".
	Name string

	Width     int
	PanelRows int
	Clock     func() time.Time
	Logger    *zap.Logger
}

// ChangedMsg carries the latest change notification of an Update (or of a
// direct call such as SelectHour).
type ChangedMsg struct {
	ID    string
	Name  string
	Value string
}

type focusArea int

const (
	focusNone focusArea = iota
	focusHour
	focusMinute
	focusHourList
	focusMinuteList
)

type pickerState struct {
	props  Props
	field  *TimeField
	open   bool
	focus  focusArea
	origin PointerEvent
	width  int
	rows   int

	hourInput   textinput.Model
	minuteInput textinput.Model
	hourList    list.Model
	minuteList  list.Model

	keys    KeyMap
	styles  Styles
	log     *zap.Logger
	watcher dismissWatcher
	pending []string
}

// Model is a Bubble Tea time picker. It is a handle: copies share state.
type Model struct {
	s *pickerState
}

func New(props Props) Model {
	s := &pickerState{
		props:  props,
		width:  props.Width,
		rows:   props.PanelRows,
		keys:   DefaultKeyMap(),
		styles: DefaultStyles(),
		log:    props.Logger,
	}
	if s.width < minWidth {
		s.width = defaultWidth
	}
	if s.rows <= 0 {
		s.rows = defaultPanelRows
	}
	if s.log == nil {
		s.log = zap.NewNop()
	}
	s.log = s.log.With(zap.String("picker", pickerLabel(props)))

	s.field = NewTimeField(props.Value, props.DefaultValue, func(v string) {
		s.pending = append(s.pending, v)
		if props.OnChange != nil {
			props.OnChange(v)
		}
	})
	s.field.log = s.log
	if props.Clock != nil {
		s.field.clock = props.Clock
	}

	hph, mph := splitPlaceholder(props.Placeholder)
	s.hourInput = newFieldInput(hph, &s.styles)
	s.minuteInput = newFieldInput(mph, &s.styles)

	_, hourW, minuteW := columnWidths(s.width)
	s.hourList = newOptionColumn(hourOptions(), optionDelegate{
		current: s.field.Hour,
		focused: func() bool { return s.focus == focusHourList },
		styles:  &s.styles,
	}, hourW, s.rows)
	s.minuteList = newOptionColumn(minuteOptions(), optionDelegate{
		current: s.field.Minute,
		focused: func() bool { return s.focus == focusMinuteList },
		styles:  &s.styles,
	}, minuteW, s.rows)

	s.watcher = dismissWatcher{
		bounds: func() Rect {
			r := s.layout().root
			r.X, r.Y = s.origin.X, s.origin.Y
			return r
		},
		dismiss: func() {
			if s.open {
				s.log.Debug("panel dismissed by outside press")
			}
			s.open = false
		},
	}

	m := Model{s: s}
	m.syncInputs()
	return m
}

func pickerLabel(p Props) string {
	switch {
	case p.ID != "":
		return p.ID
	case p.Name != "":
		return p.Name
	}
	return "timepicker"
}

// splitPlaceholder seeds the two field placeholders from "HH:MM".
func splitPlaceholder(p string) (string, string) {
	if p == "" {
		p = "HH:MM"
	}
	parts := strings.Split(p, ":")
	hour, minute := parts[0], ""
	if len(parts) > 1 {
		minute = parts[1]
	}
	if hour == "" {
		hour = "HH"
	}
	if minute == "" {
		minute = "MM"
	}
	return hour, minute
}

func newFieldInput(placeholder string, st *Styles) textinput.Model {
	in := textinput.New()
	in.Prompt = ""
	in.Placeholder = placeholder
	in.CharLimit = 2
	in.Width = 2
	in.PlaceholderStyle = st.Placeholder
	in.TextStyle = st.Text
	return in
}

// Mount subscribes the picker to bus for outside-press dismissal. Mounting an
// already mounted picker does nothing.
func (m Model) Mount(bus *PointerBus) { m.s.watcher.attach(bus) }

// Unmount removes the picker's bus subscription.
func (m Model) Unmount() { m.s.watcher.detach() }

func (m Model) Mounted() bool { return m.s.watcher.attached() }

// SetOrigin places the picker's root box on screen for hit testing.
func (m Model) SetOrigin(x, y int) { m.s.origin = PointerEvent{X: x, Y: y} }

// Bounds is the picker's root region on screen, including an open panel.
func (m Model) Bounds() Rect { return m.s.watcher.bounds() }

func (m Model) ID() string     { return m.s.props.ID }
func (m Model) Name() string   { return m.s.props.Name }
func (m Model) Mode() Mode     { return m.s.field.Mode() }
func (m Model) Hour() string   { return m.s.field.Hour() }
func (m Model) Minute() string { return m.s.field.Minute() }
func (m Model) Disabled() bool { return m.s.props.Disabled }
func (m Model) IsOpen() bool   { return m.s.open && !m.s.props.Disabled }
func (m Model) KeyMap() KeyMap { return m.s.keys }

// Value is the displayed time, composed the same way notifications are.
func (m Model) Value() string { return composeTime(m.s.field.Hour(), m.s.field.Minute()) }

// FieldNames returns the names of the hour and minute fields, or empty
// strings when the picker has no Name.
func (m Model) FieldNames() (hour, minute string) {
	if m.s.props.Name == "" {
		return "", ""
	}
	return m.s.props.Name + "-hour", m.s.props.Name + "-minute"
}

// SetValue feeds an owner value into a controlled picker.
func (m Model) SetValue(v string) {
	m.s.field.SetValue(v)
	m.syncInputs()
}

func (m Model) Focused() bool { return m.s.focus != focusNone }

// OnFirstField reports whether focus is on the hour field.
func (m Model) OnFirstField() bool { return m.s.focus == focusHour }

// OnLastField reports whether focus is on the minute field, so a host can
// move focus to its next widget on tab.
func (m Model) OnLastField() bool { return m.s.focus == focusMinute }

// Focus moves keyboard focus to the hour field.
func (m Model) Focus() tea.Cmd {
	if m.s.props.Disabled {
		return nil
	}
	return tea.Batch(m.setFocus(focusHour), m.flush())
}

// Blur drops keyboard focus. A focused field is normalized on the way out.
func (m Model) Blur() tea.Cmd {
	return tea.Batch(m.setFocus(focusNone), m.flush())
}

// Click is the pointer activation of the field: it opens the panel unless
// the picker is disabled.
func (m Model) Click() {
	if m.s.props.Disabled || m.s.open {
		return
	}
	m.s.open = true
	scrollTo(&m.s.hourList, m.s.field.Hour())
	scrollTo(&m.s.minuteList, m.s.field.Minute())
	m.s.log.Debug("panel opened")
}

// Confirm is the panel's "OK" action.
func (m Model) Confirm() {
	if m.s.open {
		m.s.log.Debug("panel confirmed")
	}
	m.s.open = false
}

func (m Model) SelectHour(option string) tea.Cmd {
	m.s.field.SelectHour(option)
	return m.flush()
}

func (m Model) SelectMinute(option string) tea.Cmd {
	m.s.field.SelectMinute(option)
	return m.flush()
}

// Now is the panel's "Now" action.
func (m Model) Now() tea.Cmd {
	m.s.field.OnNowRequested()
	return m.flush()
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if m.s.props.Disabled {
		return m, nil
	}
	switch msg := msg.(type) {
	case tea.KeyMsg:
		cmd := m.handleKey(msg)
		return m, tea.Batch(cmd, m.flush())
	case tea.MouseMsg:
		cmd := m.handleMouse(msg)
		return m, tea.Batch(cmd, m.flush())
	}

	// Cursor blink and other textinput housekeeping.
	var cmd tea.Cmd
	switch m.s.focus {
	case focusHour:
		m.s.hourInput, cmd = m.s.hourInput.Update(msg)
	case focusMinute:
		m.s.minuteInput, cmd = m.s.minuteInput.Update(msg)
	}
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	s := m.s
	if s.focus == focusNone {
		return nil
	}
	onList := s.focus == focusHourList || s.focus == focusMinuteList

	switch {
	case key.Matches(msg, s.keys.NextField) && s.focus == focusHour:
		return m.setFocus(focusMinute)
	case key.Matches(msg, s.keys.PrevField) && s.focus == focusMinute:
		return m.setFocus(focusHour)
	case key.Matches(msg, s.keys.Open):
		m.Click()
		return nil
	}

	if s.open {
		switch {
		case key.Matches(msg, s.keys.Now):
			s.field.OnNowRequested()
			return nil
		case key.Matches(msg, s.keys.Confirm):
			m.Confirm()
			return nil
		case key.Matches(msg, s.keys.Up) || (onList && key.Matches(msg, s.keys.ListUp)):
			m.step(-1)
			return nil
		case key.Matches(msg, s.keys.Down) || (onList && key.Matches(msg, s.keys.ListDown)):
			m.step(1)
			return nil
		case onList && key.Matches(msg, s.keys.Left):
			s.focus = focusHourList
			return nil
		case onList && key.Matches(msg, s.keys.Right):
			s.focus = focusMinuteList
			return nil
		}
	}

	switch s.focus {
	case focusHour:
		next, cmd := s.hourInput.Update(msg)
		if next.Value() == s.hourInput.Value() {
			s.hourInput = next
			return cmd
		}
		// Adopt the edited input only once the field shows it, which a
		// controlled picker does when its owner feeds the (padded) value back.
		if s.field.OnHourInput(next.Value()) && shows(next.Value(), s.field.Hour()) {
			s.hourInput = next
		}
		return cmd
	case focusMinute:
		next, cmd := s.minuteInput.Update(msg)
		if next.Value() == s.minuteInput.Value() {
			s.minuteInput = next
			return cmd
		}
		if s.field.OnMinuteInput(next.Value()) && shows(next.Value(), s.field.Minute()) {
			s.minuteInput = next
		}
		return cmd
	}
	return nil
}

// step moves the list cursor of the column tied to the focused field and
// selects the option under it.
func (m Model) step(delta int) {
	s := m.s
	switch s.focus {
	case focusHour, focusHourList:
		moveCursor(&s.hourList, delta)
		if it, ok := s.hourList.SelectedItem().(optionItem); ok {
			s.field.SelectHour(string(it))
		}
	case focusMinute, focusMinuteList:
		moveCursor(&s.minuteList, delta)
		if it, ok := s.minuteList.SelectedItem().(optionItem); ok {
			s.field.SelectMinute(string(it))
		}
	}
}

func moveCursor(l *list.Model, delta int) {
	if delta < 0 {
		l.CursorUp()
	} else {
		l.CursorDown()
	}
}

func (m Model) handleMouse(msg tea.MouseMsg) tea.Cmd {
	s := m.s
	x, y := msg.X-s.origin.X, msg.Y-s.origin.Y
	lay := s.layout()
	if !lay.root.Contains(x, y) {
		return nil
	}

	switch msg.Button {
	case tea.MouseButtonWheelUp, tea.MouseButtonWheelDown:
		delta := 1
		if msg.Button == tea.MouseButtonWheelUp {
			delta = -1
		}
		switch {
		case lay.hourList.Contains(x, y):
			moveCursor(&s.hourList, delta)
		case lay.minuteList.Contains(x, y):
			moveCursor(&s.minuteList, delta)
		}
		return nil
	}
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return nil
	}

	switch {
	case lay.hourInput.Contains(x, y):
		cmd := m.setFocus(focusHour)
		m.Click()
		return cmd
	case lay.minuteIn.Contains(x, y):
		cmd := m.setFocus(focusMinute)
		m.Click()
		return cmd
	case lay.field.Contains(x, y):
		m.Click()
		return nil
	case lay.hourList.Contains(x, y):
		cmd := m.setFocus(focusHourList)
		if idx, opt, ok := optionAtRow(s.hourList, y-lay.hourList.Y); ok {
			s.hourList.Select(idx)
			s.field.SelectHour(opt)
		}
		return cmd
	case lay.minuteList.Contains(x, y):
		cmd := m.setFocus(focusMinuteList)
		if idx, opt, ok := optionAtRow(s.minuteList, y-lay.minuteList.Y); ok {
			s.minuteList.Select(idx)
			s.field.SelectMinute(opt)
		}
		return cmd
	case lay.nowButton.Contains(x, y):
		cmd := m.setFocus(focusNone)
		s.field.OnNowRequested()
		return cmd
	case lay.okButton.Contains(x, y):
		cmd := m.setFocus(focusNone)
		m.Confirm()
		return cmd
	}
	return nil
}

// setFocus moves focus between the parts of the picker. Leaving a text field
// runs its blur normalization.
func (m Model) setFocus(to focusArea) tea.Cmd {
	s := m.s
	if s.focus == to {
		return nil
	}
	switch s.focus {
	case focusHour:
		s.hourInput.Blur()
		s.field.OnHourBlur()
	case focusMinute:
		s.minuteInput.Blur()
		s.field.OnMinuteBlur()
	}
	s.focus = to

	switch to {
	case focusHour:
		return s.hourInput.Focus()
	case focusMinute:
		return s.minuteInput.Focus()
	}
	return nil
}

// flush syncs the inputs with the field and emits the latest queued
// notification as a ChangedMsg. OnChange has already seen every one of them.
func (m Model) flush() tea.Cmd {
	s := m.s
	m.syncInputs()
	if len(s.pending) == 0 {
		return nil
	}
	msg := ChangedMsg{ID: s.props.ID, Name: s.props.Name, Value: s.pending[len(s.pending)-1]}
	s.pending = s.pending[:0]
	return func() tea.Msg { return msg }
}

// syncInputs copies the field into the text inputs. A focused input keeps the
// user's raw text while the field shows the same number, so an owner feeding
// back "00" does not replace a half-typed "0".
func (m Model) syncInputs() {
	s := m.s
	if !(s.focus == focusHour && shows(s.hourInput.Value(), s.field.Hour())) && s.hourInput.Value() != s.field.Hour() {
		s.hourInput.SetValue(s.field.Hour())
	}
	if !(s.focus == focusMinute && shows(s.minuteInput.Value(), s.field.Minute())) && s.minuteInput.Value() != s.field.Minute() {
		s.minuteInput.SetValue(s.field.Minute())
	}
}

// shows reports whether a field value displays the raw input text, as is or
// in the padded form notifications use.
func shows(input, field string) bool {
	return input == field || pad2(orZero(input)) == field
}

func (s *pickerState) layout() layout {
	return computeLayout(s.width, s.rows, s.open && !s.props.Disabled, s.props.Style)
}

func (m Model) View() string {
	s := m.s
	inner := s.width - 2

	cell := lipgloss.NewStyle().Width(inputCellWidth).Align(lipgloss.Center)
	left := " " + cell.Render(s.hourInput.View()) + s.styles.Separator.Render(":") + cell.Render(s.minuteInput.View())
	fill := inner - xansi.StringWidth(left) - iconCellWidth
	line := left + strings.Repeat(" ", max(0, fill)) + s.styles.Icon.Render(" ◷ ")

	box := s.styles.Field
	switch {
	case s.props.Disabled:
		box = s.styles.FieldDisabled
	case s.focus != focusNone:
		box = s.styles.FieldFocused
	}
	out := box.Width(inner).Render(line)
	if s.open && !s.props.Disabled {
		out = lipgloss.JoinVertical(lipgloss.Left, out, m.renderPanel())
	}
	return s.props.Style.Render(out)
}
