package timepicker

import (
	"strconv"
	"strings"
)

const (
	maxHour   = 23
	maxMinute = 59

	// DefaultValue seeds an uncontrolled picker when no default is given.
	DefaultValue = "00:00"
)

// parseTime splits "HH:MM" into its components.
// Missing components default to "00"; present-but-empty components stay empty
// (an empty field is a valid editing state). Nothing is validated.
func parseTime(s string) (hour string, minute string) {
	parts := strings.Split(s, ":")
	hour, minute = "00", "00"
	if len(parts) > 0 {
		hour = parts[0]
	}
	if len(parts) > 1 {
		minute = parts[1]
	}
	return hour, minute
}

// pad2 left-pads s with zeros to width 2. Longer strings are returned as-is.
func pad2(s string) string {
	for len(s) < 2 {
		s = "0" + s
	}
	return s
}

// composeTime builds the notification string. Empty components report as "00".
func composeTime(hour, minute string) string {
	return pad2(hour) + ":" + pad2(minute)
}

func allDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// acceptField reports whether raw is a valid in-progress edit for a field
// bounded by max: empty, or all digits with a value in [0,max].
func acceptField(raw string, max int) bool {
	if raw == "" {
		return true
	}
	if !allDigits(raw) {
		return false
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return false
	}
	return n >= 0 && n <= max
}

// leadingInt parses the leading run of ASCII digits ("7a" -> 7).
func leadingInt(s string) (int, bool) {
	s = strings.TrimLeft(s, " \t")
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0, false
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0, false
	}
	return n, true
}

// normalizeField is the blur formatting: the two-digit zero-padded numeral of
// the field's leading integer, or "00" when empty or non-numeric.
func normalizeField(s string) string {
	if s == "" {
		return "00"
	}
	n, ok := leadingInt(s)
	if !ok {
		return "00"
	}
	return pad2(strconv.Itoa(n))
}

// Normalize parses an "HH:MM" string and applies blur formatting to both
// components, returning a well-formed value.
func Normalize(s string) string {
	h, m := parseTime(s)
	return normalizeField(h) + ":" + normalizeField(m)
}

// ValidateValue reports whether s is a well-formed "HH:MM" time in range.
func ValidateValue(s string) error {
	h, m, ok := strings.Cut(s, ":")
	if !ok || len(h) != 2 || len(m) != 2 || !acceptField(h, maxHour) || !acceptField(m, maxMinute) {
		return invalidFormatError{value: s}
	}
	return nil
}

type invalidFormatError struct {
	value string
}

func (e invalidFormatError) Error() string {
	return "invalid time " + strconv.Quote(e.value) + " (expected HH:MM, 24h)"
}

func hourOptions() []string   { return rangeOptions(maxHour) }
func minuteOptions() []string { return rangeOptions(maxMinute) }

func rangeOptions(max int) []string {
	out := make([]string, 0, max+1)
	for i := 0; i <= max; i++ {
		out = append(out, pad2(strconv.Itoa(i)))
	}
	return out
}
