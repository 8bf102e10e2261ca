package trip

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrInvalidHour    = errors.New("invalid hour")
	ErrInvalidMinute  = errors.New("invalid minute")
	ErrInvalidSecond  = errors.New("invalid second")
	ErrInvalidMonth   = errors.New("invalid month")
	ErrInvalidWeekday = errors.New("invalid weekday")
)

// Hour of the day, 0 to 23
type Hour uint8

// Minute of the hour, 0 to 59
type Minute uint8

// Second of the minute, 0 to 59
type Second uint8

// Month of the year. Values follow time.Month, so ordering is chronological.
type Month uint8

// Weekday follows time.Weekday, Sunday is 0.
type Weekday uint8

const (
	HoursInDay = 24
)

func NewHour(value int) (Hour, error) {
	if value < 0 || value >= HoursInDay {
		return 0, fmt.Errorf("%w: %d", ErrInvalidHour, value)
	}
	return Hour(value), nil
}

func NewMinute(value int) (Minute, error) {
	if value < 0 || value > 59 {
		return 0, fmt.Errorf("%w: %d", ErrInvalidMinute, value)
	}
	return Minute(value), nil
}

func NewSecond(value int) (Second, error) {
	if value < 0 || value > 59 {
		return 0, fmt.Errorf("%w: %d", ErrInvalidSecond, value)
	}
	return Second(value), nil
}

func NewMonth(value int) (Month, error) {
	if value < int(time.January) || value > int(time.December) {
		return 0, fmt.Errorf("%w: %d", ErrInvalidMonth, value)
	}
	return Month(value), nil
}

// ParseMonth accepts an abbreviated month name such as "Apr", case-insensitive
func ParseMonth(name string) (Month, error) {
	for m := time.January; m <= time.December; m++ {
		if strings.EqualFold(m.String()[:3], name) {
			return Month(m), nil
		}
	}
	return 0, fmt.Errorf("%w: %s", ErrInvalidMonth, name)
}

func NewWeekday(value int) (Weekday, error) {
	if value < int(time.Sunday) || value > int(time.Saturday) {
		return 0, fmt.Errorf("%w: %d", ErrInvalidWeekday, value)
	}
	return Weekday(value), nil
}

func (h Hour) IsValid() bool {
	return h < HoursInDay
}

func (h Hour) String() string {
	return fmt.Sprintf("%d", uint8(h))
}

func (m Minute) IsValid() bool {
	return m <= 59
}

func (s Second) IsValid() bool {
	return s <= 59
}

func (m Month) IsValid() bool {
	return m >= Month(time.January) && m <= Month(time.December)
}

// String returns the abbreviated month name, e.g. "Apr"
func (m Month) String() string {
	if !m.IsValid() {
		return fmt.Sprintf("Month(%d)", uint8(m))
	}
	return time.Month(m).String()[:3]
}

func (w Weekday) IsValid() bool {
	return w <= Weekday(time.Saturday)
}

// String returns the abbreviated weekday name, e.g. "Mon"
func (w Weekday) String() string {
	if !w.IsValid() {
		return fmt.Sprintf("Weekday(%d)", uint8(w))
	}
	return time.Weekday(w).String()[:3]
}
