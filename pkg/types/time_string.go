package types

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"strings"
	"time"
)

const timeLayout = "15:04"

var (
	// ErrInvalidTimeString возвращается при некорректном формате времени
	ErrInvalidTimeString = errors.New("invalid time string format")

	// ErrTimeOverflow возвращается, если результат сложения выходит за пределы суток
	ErrTimeOverflow = errors.New("time string overflows the day")
)

// TimeString time of day in "HH:MM" format
// The zero value ("") means "not set"
type TimeString string

// NewTimeString builds a TimeString from the clock part of t
func NewTimeString(t time.Time) TimeString {
	return TimeString(t.Format(timeLayout))
}

// NewTimeStringFromString parses and normalizes "HH:MM" (also accepts "HH:MM:SS")
func NewTimeStringFromString(s string) (TimeString, error) {
	s = strings.TrimSpace(s)
	if len(s) == len("15:04:05") {
		s = s[:len(timeLayout)]
	}

	t, err := time.Parse(timeLayout, s)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidTimeString, s)
	}
	return NewTimeString(t), nil
}

func (t TimeString) String() string {
	return string(t)
}

func (t TimeString) IsZero() bool {
	return t == ""
}

// Validate проверяет формат HH:MM
func (t TimeString) Validate() error {
	_, err := time.Parse(timeLayout, string(t))
	if err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidTimeString, string(t))
	}
	return nil
}

// Minutes возвращает количество минут от начала суток
func (t TimeString) Minutes() (int, error) {
	parsed, err := time.Parse(timeLayout, string(t))
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeString, string(t))
	}
	return parsed.Hour()*60 + parsed.Minute(), nil
}

// AddMinutes сдвигает время на указанное число минут
// Результат "24:00" допускается как конец суток
func (t TimeString) AddMinutes(minutes int) (TimeString, error) {
	current, err := t.Minutes()
	if err != nil {
		return "", err
	}

	total := current + minutes
	if total < 0 || total > 24*60 {
		return "", fmt.Errorf("%w: %s%+d min", ErrTimeOverflow, t, minutes)
	}
	if total == 24*60 {
		return "24:00", nil
	}
	return TimeString(fmt.Sprintf("%02d:%02d", total/60, total%60)), nil
}

func (t TimeString) IsBefore(other TimeString) bool {
	return t.compare(other) < 0
}

func (t TimeString) IsAfter(other TimeString) bool {
	return t.compare(other) > 0
}

// On возвращает момент времени в указанный день в часовом поясе loc
func (t TimeString) On(date time.Time, loc *time.Location) (time.Time, error) {
	minutes, err := t.Minutes()
	if err != nil {
		return time.Time{}, err
	}
	y, m, d := date.Date()
	return time.Date(y, m, d, minutes/60, minutes%60, 0, 0, loc), nil
}

// compare сравнивает строки через минуты; "24:00" не парсится time.Parse, поэтому обрабатывается отдельно
func (t TimeString) compare(other TimeString) int {
	a, b := t.minutesOrEndOfDay(), other.minutesOrEndOfDay()
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func (t TimeString) minutesOrEndOfDay() int {
	if t == "24:00" {
		return 24 * 60
	}
	m, err := t.Minutes()
	if err != nil {
		return -1
	}
	return m
}

// Scan implements sql.Scanner for TIME columns
func (t *TimeString) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*t = ""
		return nil
	case time.Time:
		*t = NewTimeString(v)
		return nil
	case string:
		parsed, err := NewTimeStringFromString(v)
		if err != nil {
			return err
		}
		*t = parsed
		return nil
	case []byte:
		parsed, err := NewTimeStringFromString(string(v))
		if err != nil {
			return err
		}
		*t = parsed
		return nil
	default:
		return fmt.Errorf("%w: unsupported scan type %T", ErrInvalidTimeString, src)
	}
}

// Value implements driver.Valuer
func (t TimeString) Value() (driver.Value, error) {
	if t.IsZero() {
		return nil, nil
	}
	return string(t), nil
}
