package tui

import (
	"fmt"
	"strconv"
	"time"
)

type dateField int

const (
	fieldYear dateField = iota
	fieldMonth
	fieldDay
	fieldHour
	fieldMinute
)

const (
	minPickerYear = 2000
	maxPickerYear = 2099
)

// daysInMonth leans on time.Date's day-zero normalization, which handles
// leap years for free.
func daysInMonth(year, month int) int {
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func clampDay(year, month, day int) int {
	if max := daysInMonth(year, month); day > max {
		return max
	}
	if day < 1 {
		return 1
	}
	return day
}

// dateTimeFields is the picker's value state: five numeric fields, one
// focused, with a digit buffer collecting direct entry into that field.
type dateTimeFields struct {
	year, month, day, hour, minute int

	focus dateField
	buf   string
}

// newDateTimeFields seeds the picker from an existing due date, or from the
// given moment when the task has none.
func newDateTimeFields(seed time.Time) dateTimeFields {
	year := seed.Year()
	if year < minPickerYear {
		year = minPickerYear
	}
	if year > maxPickerYear {
		year = maxPickerYear
	}
	return dateTimeFields{
		year:   year,
		month:  int(seed.Month()),
		day:    seed.Day(),
		hour:   seed.Hour(),
		minute: seed.Minute(),
	}
}

func (f *dateTimeFields) focusNext() {
	f.buf = ""
	if f.focus < fieldMinute {
		f.focus++
	} else {
		f.focus = fieldYear
	}
}

func (f *dateTimeFields) focusPrev() {
	f.buf = ""
	if f.focus > fieldYear {
		f.focus--
	} else {
		f.focus = fieldMinute
	}
}

func (f *dateTimeFields) fieldValue(field dateField) int {
	switch field {
	case fieldYear:
		return f.year
	case fieldMonth:
		return f.month
	case fieldDay:
		return f.day
	case fieldHour:
		return f.hour
	default:
		return f.minute
	}
}

func (f *dateTimeFields) setFieldValue(field dateField, v int) {
	switch field {
	case fieldYear:
		f.year = v
	case fieldMonth:
		f.month = v
	case fieldDay:
		f.day = v
	case fieldHour:
		f.hour = v
	default:
		f.minute = v
	}
}

func fieldWidth(field dateField) int {
	if field == fieldYear {
		return 4
	}
	return 2
}

// fieldMax is the static per-keystroke bound. The day field allows up to 31
// here; whether the composed calendar date exists is checked at apply time.
func fieldMax(field dateField) int {
	switch field {
	case fieldYear:
		return maxPickerYear
	case fieldMonth:
		return 12
	case fieldDay:
		return 31
	case fieldHour:
		return 23
	default:
		return 59
	}
}

// typeDigit feeds one digit of direct entry into the focused field. Digits
// extend the buffer while the result stays inside the field's bound; a digit
// that would overflow restarts the buffer, so typing "7" over a minute field
// showing 59 yields 7 rather than being swallowed.
func (f *dateTimeFields) typeDigit(d byte) {
	if d < '0' || d > '9' {
		return
	}
	next := f.buf + string(d)
	if len(next) > fieldWidth(f.focus) {
		next = string(d)
	}
	v, _ := strconv.Atoi(next)
	if v > fieldMax(f.focus) {
		next = string(d)
		v = int(d - '0')
	}
	f.buf = next
	f.setFieldValue(f.focus, v)
}

// bump applies a relative step to the focused field. Month, day, hour and
// minute wrap around; the year clamps at the picker's range. Changing the
// year or month re-clamps the day into the (possibly shorter) new month.
func (f *dateTimeFields) bump(delta int) {
	f.buf = ""
	switch f.focus {
	case fieldYear:
		y := f.year + delta
		if y < minPickerYear {
			y = minPickerYear
		}
		if y > maxPickerYear {
			y = maxPickerYear
		}
		f.year = y
		f.day = clampDay(f.year, f.month, f.day)
	case fieldMonth:
		m := f.month + delta
		for m > 12 {
			m -= 12
		}
		for m < 1 {
			m += 12
		}
		f.month = m
		f.day = clampDay(f.year, f.month, f.day)
	case fieldDay:
		max := daysInMonth(f.year, f.month)
		d := f.day + delta
		for d > max {
			d -= max
		}
		for d < 1 {
			d += max
		}
		f.day = d
	case fieldHour:
		f.hour = (f.hour + 24 + delta%24) % 24
	case fieldMinute:
		f.minute = (f.minute + 60 + delta%60) % 60
	}
}

// validate rejects values outside their bounds and calendar dates that do
// not exist, such as February 30th.
func (f dateTimeFields) validate() error {
	if f.year < minPickerYear || f.year > maxPickerYear {
		return fmt.Errorf("year must be %d-%d", minPickerYear, maxPickerYear)
	}
	if f.month < 1 || f.month > 12 {
		return fmt.Errorf("invalid month %d", f.month)
	}
	if f.day < 1 || f.day > daysInMonth(f.year, f.month) {
		return fmt.Errorf("invalid date %04d-%02d-%02d", f.year, f.month, f.day)
	}
	if f.hour < 0 || f.hour > 23 {
		return fmt.Errorf("invalid hour %d", f.hour)
	}
	if f.minute < 0 || f.minute > 59 {
		return fmt.Errorf("invalid minute %d", f.minute)
	}
	return nil
}

// compose validates and builds the picked moment in the given location.
// Validation must run first: time.Date would silently normalize Feb 30
// into early March.
func (f dateTimeFields) compose(loc *time.Location) (time.Time, error) {
	if err := f.validate(); err != nil {
		return time.Time{}, err
	}
	return time.Date(f.year, time.Month(f.month), f.day, f.hour, f.minute, 0, 0, loc), nil
}

func fmt2(v int) string {
	return fmt.Sprintf("%02d", v)
}

func fmtYear(v int) string {
	return fmt.Sprintf("%04d", v)
}
