package timepicker

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"
)

type optionItem string

func (o optionItem) FilterValue() string { return string(o) }
func (o optionItem) Title() string       { return string(o) }

// optionDelegate draws one option per row. The option equal to the field's
// current value is highlighted; the list cursor is only shown while the
// column has focus.
type optionDelegate struct {
	current func() string
	focused func() bool
	styles  *Styles
}

func (d optionDelegate) Height() int  { return 1 }
func (d optionDelegate) Spacing() int { return 0 }
func (d optionDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd {
	return nil
}

func (d optionDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	opt, ok := item.(optionItem)
	if !ok {
		return
	}
	st := d.styles.Option
	switch {
	case string(opt) == d.current():
		st = d.styles.OptionActive
	case d.focused() && index == m.Index():
		st = d.styles.OptionCursor
	}
	line := string(opt)
	if cw := m.Width() - st.GetHorizontalFrameSize(); cw > 0 {
		line = xansi.Truncate(line, cw, "")
		line += strings.Repeat(" ", max(0, cw-xansi.StringWidth(line)))
	}
	fmt.Fprint(w, st.Render(line))
}

func newOptionColumn(options []string, d optionDelegate, width, rows int) list.Model {
	items := make([]list.Item, 0, len(options))
	for _, o := range options {
		items = append(items, optionItem(o))
	}
	l := list.New(items, d, width, rows)
	l.SetShowTitle(false)
	l.SetShowStatusBar(false)
	l.SetShowPagination(false)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)
	l.DisableQuitKeybindings()
	return l
}

// scrollTo moves the column's cursor onto option, if present.
func scrollTo(l *list.Model, option string) {
	for i, it := range l.Items() {
		if string(it.(optionItem)) == option {
			l.Select(i)
			return
		}
	}
}

// optionAtRow maps a visible row to its option.
func optionAtRow(l list.Model, row int) (int, string, bool) {
	per := l.Paginator.PerPage
	if row < 0 || row >= per {
		return 0, "", false
	}
	idx := l.Paginator.Page*per + row
	items := l.Items()
	if idx >= len(items) {
		return 0, "", false
	}
	return idx, string(items[idx].(optionItem)), true
}

// layout holds the hit-test regions of a picker relative to its root origin.
type layout struct {
	root       Rect
	field      Rect
	hourInput  Rect
	minuteIn   Rect
	panel      Rect
	hourList   Rect
	minuteList Rect
	nowButton  Rect
	okButton   Rect
}

const (
	inputCellWidth = 4
	iconCellWidth  = 3
	fieldHeight    = 3
	minWidth       = inputCellWidth*2 + iconCellWidth + 5
)

func columnWidths(width int) (inner, hourW, minuteW int) {
	inner = width - 2
	hourW = (inner - 1) / 2
	minuteW = inner - 1 - hourW
	return inner, hourW, minuteW
}

func computeLayout(width, rows int, open bool, frame lipgloss.Style) layout {
	dx := frame.GetMarginLeft() + frame.GetBorderLeftSize() + frame.GetPaddingLeft()
	dy := frame.GetMarginTop() + frame.GetBorderTopSize() + frame.GetPaddingTop()

	inner, hourW, minuteW := columnWidths(width)
	l := layout{
		field:     Rect{X: dx, Y: dy, W: width, H: fieldHeight},
		hourInput: Rect{X: dx + 2, Y: dy + 1, W: inputCellWidth, H: 1},
		minuteIn:  Rect{X: dx + 2 + inputCellWidth + 1, Y: dy + 1, W: inputCellWidth, H: 1},
	}
	height := fieldHeight
	if open {
		top := dy + fieldHeight
		l.panel = Rect{X: dx, Y: top, W: width, H: rows + 4}
		l.hourList = Rect{X: dx + 1, Y: top + 1, W: hourW, H: rows}
		l.minuteList = Rect{X: dx + 1 + hourW + 1, Y: top + 1, W: minuteW, H: rows}
		btnY := top + 1 + rows + 1
		l.nowButton = Rect{X: dx + 1, Y: btnY, W: inner / 2, H: 1}
		l.okButton = Rect{X: dx + 1 + inner/2, Y: btnY, W: inner - inner/2, H: 1}
		height += l.panel.H
	}
	l.root = Rect{
		W: width + frame.GetHorizontalFrameSize(),
		H: height + frame.GetVerticalFrameSize(),
	}
	return l
}

func (m Model) renderPanel() string {
	s := m.s
	_, hourW, minuteW := columnWidths(s.width)
	rows := s.rows

	col := func(l list.Model, w int) string {
		return lipgloss.NewStyle().Width(w).Height(rows).MaxHeight(rows).Render(l.View())
	}
	sep := s.styles.Rule.Render(strings.TrimRight(strings.Repeat("│\n", rows), "\n"))
	lists := lipgloss.JoinHorizontal(lipgloss.Top, col(s.hourList, hourW), sep, col(s.minuteList, minuteW))

	inner := s.width - 2
	rule := s.styles.Rule.Render(strings.Repeat("─", inner))
	now := s.styles.NowButton.Width(inner / 2).Render("Now")
	ok := s.styles.OKButton.Width(inner - inner/2).Render("OK")
	actions := lipgloss.JoinHorizontal(lipgloss.Top, now, ok)

	return s.styles.Panel.Width(inner).Render(lipgloss.JoinVertical(lipgloss.Left, lists, rule, actions))
}
