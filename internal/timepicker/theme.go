package timepicker

import (
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// The picker must stay readable on light and dark terminals, so colours are
// adaptive and "faint" is only applied on dark backgrounds.

func ac(light, dark string) lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Light: light, Dark: dark}
}

func faintIfDark(st lipgloss.Style) lipgloss.Style {
	if lipgloss.HasDarkBackground() {
		return st.Faint(true)
	}
	return st
}

var (
	colorMuted       lipgloss.TerminalColor = ac("240", "243")
	colorBorder      lipgloss.TerminalColor = ac("250", "243")
	colorBorderFocus lipgloss.TerminalColor = ac("232", "255")
	colorDisabledBg  lipgloss.TerminalColor = ac("254", "236")
	colorInputFg     lipgloss.TerminalColor = ac("235", "252")
	colorSelectedBg  lipgloss.TerminalColor = ac("#e9e9e9", "#262626")
	colorSelectedFg  lipgloss.TerminalColor = ac("235", "255")
	colorAccent      lipgloss.TerminalColor = ac("27", "62")
	colorAccentFg    lipgloss.TerminalColor = ac("255", "235")
)

// Styles holds the lipgloss styles used to draw a picker.
type Styles struct {
	Field         lipgloss.Style
	FieldFocused  lipgloss.Style
	FieldDisabled lipgloss.Style
	Separator     lipgloss.Style
	Icon          lipgloss.Style
	Placeholder   lipgloss.Style
	Text          lipgloss.Style

	Panel        lipgloss.Style
	Option       lipgloss.Style
	OptionActive lipgloss.Style
	OptionCursor lipgloss.Style
	Rule         lipgloss.Style
	NowButton    lipgloss.Style
	OKButton     lipgloss.Style
}

func DefaultStyles() Styles {
	field := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorBorder)
	return Styles{
		Field:         field,
		FieldFocused:  field.BorderForeground(colorBorderFocus),
		FieldDisabled: field.Background(colorDisabledBg).Faint(true),
		Separator:     lipgloss.NewStyle().Foreground(colorMuted),
		Icon:          faintIfDark(lipgloss.NewStyle().Foreground(colorMuted)),
		Placeholder:   faintIfDark(lipgloss.NewStyle().Foreground(colorMuted)),
		Text:          lipgloss.NewStyle().Foreground(colorInputFg),

		Panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder),
		Option: lipgloss.NewStyle().Padding(0, 1),
		OptionActive: lipgloss.NewStyle().Padding(0, 1).
			Background(colorSelectedBg).
			Foreground(colorSelectedFg).
			Bold(true),
		OptionCursor: lipgloss.NewStyle().Padding(0, 1).Underline(true),
		Rule:         lipgloss.NewStyle().Foreground(colorBorder),
		NowButton:    lipgloss.NewStyle().Foreground(colorAccent).Align(lipgloss.Center),
		OKButton: lipgloss.NewStyle().
			Background(colorAccent).
			Foreground(colorAccentFg).
			Bold(true).
			Align(lipgloss.Center),
	}
}

// ApplyColorProfile sets Lip Gloss's colour profile for interactive use.
//
// termenv.EnvColorProfile also honours CLICOLOR, which tends to disable
// colours in a TUI; only NO_COLOR is respected here.
func ApplyColorProfile() {
	if strings.TrimSpace(os.Getenv("NO_COLOR")) != "" {
		lipgloss.SetColorProfile(termenv.Ascii)
		return
	}

	profile := termenv.ColorProfile()
	colorterm := strings.ToLower(strings.TrimSpace(os.Getenv("COLORTERM")))
	term := strings.ToLower(strings.TrimSpace(os.Getenv("TERM")))
	switch {
	case strings.Contains(colorterm, "truecolor") || strings.Contains(colorterm, "24bit"):
		if profile != termenv.Ascii {
			profile = termenv.TrueColor
		}
	case strings.Contains(term, "256color"):
		if profile == termenv.Ascii || profile == termenv.ANSI {
			profile = termenv.ANSI256
		}
	}
	lipgloss.SetColorProfile(profile)
}

// SetTheme forces the light or dark palette. Other values are ignored.
func SetTheme(theme string) {
	switch strings.ToLower(strings.TrimSpace(theme)) {
	case "light":
		lipgloss.SetHasDarkBackground(false)
	case "dark":
		lipgloss.SetHasDarkBackground(true)
	}
}

// ApplyThemePreference pins the background detection when the terminal
// reports it unreliably.
//
// Priority:
// 1) TIMEPICKER_THEME=light|dark|auto
// 2) COLORFGBG ("fg;bg", last segment is the background)
func ApplyThemePreference() {
	switch v := strings.ToLower(strings.TrimSpace(os.Getenv("TIMEPICKER_THEME"))); v {
	case "light", "dark":
		SetTheme(v)
		return
	}

	if v := strings.TrimSpace(os.Getenv("COLORFGBG")); v != "" {
		parts := strings.Split(v, ";")
		if bg, err := strconv.Atoi(strings.TrimSpace(parts[len(parts)-1])); err == nil {
			lipgloss.SetHasDarkBackground(bg < 7)
		}
	}
}
