package timepicker

import (
	"strconv"
	"time"

	"go.uber.org/zap"
)

// Mode says who owns the displayed value. It is fixed at creation.
type Mode int

const (
	// Uncontrolled pickers own their value, seeded once from the default.
	Uncontrolled Mode = iota
	// Controlled pickers display what the owner feeds back via SetValue.
	Controlled
)

func (m Mode) String() string {
	if m == Controlled {
		return "controlled"
	}
	return "uncontrolled"
}

// valueOwner decides whether a field mutation reaches the displayed state.
type valueOwner interface {
	mode() Mode
	store(f *TimeField, hour, minute string)
}

type internalOwner struct{}

func (internalOwner) mode() Mode { return Uncontrolled }

func (internalOwner) store(f *TimeField, hour, minute string) {
	f.hour, f.minute = hour, minute
}

// externalOwner leaves the display alone; the caller feeds the new value back.
type externalOwner struct{}

func (externalOwner) mode() Mode { return Controlled }

func (externalOwner) store(*TimeField, string, string) {}

// TimeField holds the hour and minute strings and applies edits to them.
type TimeField struct {
	owner    valueOwner
	hour     string
	minute   string
	onChange func(string)
	clock    func() time.Time
	log      *zap.Logger
}

// NewTimeField creates a field in controlled mode when value is non-nil,
// otherwise seeded from defaultValue ("" means "00:00").
func NewTimeField(value *string, defaultValue string, onChange func(string)) *TimeField {
	f := &TimeField{
		onChange: onChange,
		clock:    time.Now,
		log:      zap.NewNop(),
	}
	initial := defaultValue
	if initial == "" {
		initial = DefaultValue
	}
	if value != nil {
		f.owner = externalOwner{}
		initial = *value
	} else {
		f.owner = internalOwner{}
	}
	f.hour, f.minute = parseTime(initial)
	return f
}

// Mode reports who owns the value.
func (f *TimeField) Mode() Mode { return f.owner.mode() }

// Hour is the displayed hour text, raw while being edited.
func (f *TimeField) Hour() string { return f.hour }

// Minute is the displayed minute text, raw while being edited.
func (f *TimeField) Minute() string { return f.minute }

// Display joins the two fields as "HH:MM".
func (f *TimeField) Display() string { return f.hour + ":" + f.minute }

// OnHourInput applies a raw hour edit. It reports whether the edit was accepted.
func (f *TimeField) OnHourInput(raw string) bool {
	if !acceptField(raw, maxHour) {
		f.log.Debug("hour input rejected", zap.String("raw", raw))
		return false
	}
	f.owner.store(f, raw, f.minute)
	f.notify(orZero(raw), f.minute)
	return true
}

// OnMinuteInput applies a raw minute edit. It reports whether the edit was accepted.
func (f *TimeField) OnMinuteInput(raw string) bool {
	if !acceptField(raw, maxMinute) {
		f.log.Debug("minute input rejected", zap.String("raw", raw))
		return false
	}
	f.owner.store(f, f.hour, raw)
	f.notify(f.hour, orZero(raw))
	return true
}

// OnHourBlur pads the hour to two digits and notifies.
func (f *TimeField) OnHourBlur() {
	h := normalizeField(f.hour)
	f.owner.store(f, h, f.minute)
	f.notify(h, f.minute)
}

// OnMinuteBlur pads the minute to two digits and notifies.
func (f *TimeField) OnMinuteBlur() {
	m := normalizeField(f.minute)
	f.owner.store(f, f.hour, m)
	f.notify(f.hour, m)
}

// OnNowRequested sets both fields from the clock.
func (f *TimeField) OnNowRequested() {
	now := f.clock()
	h := pad2(strconv.Itoa(now.Hour()))
	m := pad2(strconv.Itoa(now.Minute()))
	f.owner.store(f, h, m)
	f.notify(h, m)
}

// SelectHour applies a list selection. Options come from the panel and are
// always valid, so this takes the same path as an accepted edit.
func (f *TimeField) SelectHour(option string) {
	f.owner.store(f, option, f.minute)
	f.notify(option, f.minute)
}

// SelectMinute is SelectHour for the minute column.
func (f *TimeField) SelectMinute(option string) {
	f.owner.store(f, f.hour, option)
	f.notify(f.hour, option)
}

// SetValue replaces the display with an owner-supplied value. It only applies
// in controlled mode; the value is trusted and an empty value is ignored.
func (f *TimeField) SetValue(v string) {
	if f.owner.mode() != Controlled || v == "" {
		return
	}
	f.hour, f.minute = parseTime(v)
}

func (f *TimeField) notify(hour, minute string) {
	v := composeTime(hour, minute)
	f.log.Debug("time changed", zap.String("value", v), zap.Stringer("mode", f.owner.mode()))
	if f.onChange != nil {
		f.onChange(v)
	}
}

func orZero(s string) string {
	if s == "" {
		return "00"
	}
	return s
}
