// Package schedule implements the date/time selection used to book a
// consultation: a bounded calendar window with excluded weekdays, and
// business-hour time slots generated at a fixed interval.
package schedule

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrNoDateSelected is returned when a time operation needs a date first.
	ErrNoDateSelected = errors.New("no date selected")

	// ErrDateUnavailable is returned for dates outside the bookable window.
	ErrDateUnavailable = errors.New("date not available for booking")

	// ErrTimeUnavailable is returned for times not on the slot grid.
	ErrTimeUnavailable = errors.New("time not available for booking")

	// ErrNoSlots is returned when the configured window yields no time slots.
	ErrNoSlots = errors.New("no available time slots")
)

// Panel identifies which sub-picker is open. At most one is open at a time.
type Panel int

const (
	PanelNone Panel = iota
	PanelDate
	PanelTime
)

// Config bounds the selectable dates and generates the time slot grid.
//
// Location is the zone in which weekday and clock-window checks are
// evaluated. Clients serialize the same instant in different offsets (a
// browser's toISOString posts UTC); without a fixed zone the verdict would
// depend on how the instant was written. Nil means each instant is judged in
// its own zone.
type Config struct {
	MinDate     time.Time
	MaxDate     time.Time
	ExcludeDays []time.Weekday
	StartTime   string // "HH:MM", inclusive
	EndTime     string // "HH:MM", inclusive
	Interval    time.Duration
	Location    *time.Location
}

// DefaultConfig returns the standard consultation window: the next three
// months, weekdays only, 09:00-16:00 in 30 minute steps.
func DefaultConfig(now time.Time) Config {
	return Config{
		MinDate:     now,
		MaxDate:     now.AddDate(0, 3, 0),
		ExcludeDays: []time.Weekday{time.Saturday, time.Sunday},
		StartTime:   "09:00",
		EndTime:     "16:00",
		Interval:    30 * time.Minute,
	}
}

func (c Config) withDefaults() Config {
	if c.StartTime == "" {
		c.StartTime = "09:00"
	}
	if c.EndTime == "" {
		c.EndTime = "16:00"
	}
	if c.Interval <= 0 {
		c.Interval = 30 * time.Minute
	}
	return c
}

// parseClock converts "HH:MM" to minutes since midnight.
func parseClock(v string) (int, error) {
	if v == "" {
		return 0, fmt.Errorf("empty clock")
	}
	t, err := time.Parse("15:04", v)
	if err != nil {
		return 0, err
	}
	return t.Hour()*60 + t.Minute(), nil
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// localize rewrites t into the configured business zone, if any, so the same
// instant gets the same verdict regardless of the offset it arrived in.
func (c Config) localize(t time.Time) time.Time {
	if c.Location == nil {
		return t
	}
	return t.In(c.Location)
}

func (c Config) dayExcluded(d time.Time) bool {
	for _, wd := range c.ExcludeDays {
		if d.Weekday() == wd {
			return true
		}
	}
	return false
}

// DateSelectable reports whether d falls inside [MinDate, MaxDate] at day
// granularity and is not an excluded weekday.
func (c Config) DateSelectable(d time.Time) bool {
	day := startOfDay(c.localize(d))
	if !c.MinDate.IsZero() && day.Before(startOfDay(c.MinDate)) {
		return false
	}
	if !c.MaxDate.IsZero() && day.After(startOfDay(c.MaxDate)) {
		return false
	}
	return !c.dayExcluded(day)
}

// Slots generates the candidate instants for the given date: StartTime through
// EndTime inclusive, stepping by Interval. The returned list may be empty when
// the window is misconfigured (start after end); callers must treat that as an
// explicit no-slots state, not silently offer nothing.
func (c Config) Slots(date time.Time) ([]time.Time, error) {
	c = c.withDefaults()

	startMin, err := parseClock(c.StartTime)
	if err != nil {
		return nil, fmt.Errorf("schedule: parse start time: %w", err)
	}
	endMin, err := parseClock(c.EndTime)
	if err != nil {
		return nil, fmt.Errorf("schedule: parse end time: %w", err)
	}

	step := int(c.Interval.Minutes())
	if step <= 0 {
		return nil, fmt.Errorf("schedule: interval must be positive, got %s", c.Interval)
	}

	day := startOfDay(c.localize(date))
	var slots []time.Time
	for m := startMin; m <= endMin; m += step {
		slots = append(slots, day.Add(time.Duration(m)*time.Minute))
	}
	return slots, nil
}

// Allows reports whether t is a bookable instant: a selectable date whose
// time-of-day lies within the business-hour window.
func (c Config) Allows(t time.Time) bool {
	if !c.DateSelectable(t) {
		return false
	}
	c = c.withDefaults()
	startMin, err := parseClock(c.StartTime)
	if err != nil {
		return false
	}
	endMin, err := parseClock(c.EndTime)
	if err != nil {
		return false
	}
	local := c.localize(t)
	minutes := local.Hour()*60 + local.Minute()
	return minutes >= startMin && minutes <= endMin
}

// Picker combines a date sub-picker and a time sub-picker into a single
// selected instant, reported through the OnChange callback. A nil value on the
// callback means the combined selection was cleared.
//
// Picker state belongs to one form instance and is driven from a single
// goroutine; it is not safe for concurrent use.
type Picker struct {
	cfg      Config
	open     Panel
	date     *time.Time
	selected *time.Time
	onChange func(*time.Time)
}

// NewPicker creates a picker. onChange may be nil.
func NewPicker(cfg Config, onChange func(*time.Time)) *Picker {
	return &Picker{cfg: cfg.withDefaults(), onChange: onChange}
}

// Config returns the picker's configuration.
func (p *Picker) Config() Config { return p.cfg }

// OpenPanel reports which sub-picker is currently open.
func (p *Picker) OpenPanel() Panel { return p.open }

// OpenDatePanel opens the date sub-picker, closing the time sub-picker.
func (p *Picker) OpenDatePanel() { p.open = PanelDate }

// OpenTimePanel opens the time sub-picker, closing the date sub-picker.
// A date must already be selected.
func (p *Picker) OpenTimePanel() error {
	if p.date == nil {
		return ErrNoDateSelected
	}
	p.open = PanelTime
	return nil
}

// Close closes both sub-pickers, as when the user clicks outside the widget.
func (p *Picker) Close() { p.open = PanelNone }

// SelectDate chooses a calendar date. Any previously chosen time-of-day is
// cleared (reported as a nil change) and the time sub-picker opens.
func (p *Picker) SelectDate(d time.Time) error {
	if !p.cfg.DateSelectable(d) {
		return ErrDateUnavailable
	}
	day := startOfDay(d)
	p.date = &day
	if p.selected != nil {
		p.selected = nil
		p.fireChange(nil)
	}
	p.open = PanelTime
	return nil
}

// Date returns the selected calendar date, if any.
func (p *Picker) Date() *time.Time {
	if p.date == nil {
		return nil
	}
	d := *p.date
	return &d
}

// TimeOptions lists candidate instants for the selected date. An empty grid
// surfaces as ErrNoSlots.
func (p *Picker) TimeOptions() ([]time.Time, error) {
	if p.date == nil {
		return nil, ErrNoDateSelected
	}
	slots, err := p.cfg.Slots(*p.date)
	if err != nil {
		return nil, err
	}
	if len(slots) == 0 {
		return nil, ErrNoSlots
	}
	return slots, nil
}

// SelectTime combines the given option's time-of-day with the selected date.
// Hours and minutes are taken from opt; seconds and finer are zeroed. The
// composed instant is reported via OnChange and both panels close.
func (p *Picker) SelectTime(opt time.Time) error {
	if p.date == nil {
		return ErrNoDateSelected
	}
	options, err := p.TimeOptions()
	if err != nil {
		return err
	}
	valid := false
	for _, o := range options {
		if o.Hour() == opt.Hour() && o.Minute() == opt.Minute() {
			valid = true
			break
		}
	}
	if !valid {
		return ErrTimeUnavailable
	}

	d := *p.date
	composed := time.Date(d.Year(), d.Month(), d.Day(), opt.Hour(), opt.Minute(), 0, 0, d.Location())
	p.selected = &composed
	p.open = PanelNone
	p.fireChange(&composed)
	return nil
}

// Selected returns the combined instant, or nil when incomplete.
func (p *Picker) Selected() *time.Time {
	if p.selected == nil {
		return nil
	}
	t := *p.selected
	return &t
}

// Clear resets the picker and reports a nil change.
func (p *Picker) Clear() {
	p.date = nil
	p.selected = nil
	p.open = PanelNone
	p.fireChange(nil)
}

func (p *Picker) fireChange(t *time.Time) {
	if p.onChange != nil {
		p.onChange(t)
	}
}
