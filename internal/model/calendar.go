package model

import (
	"errors"
	"fmt"
	"time"
)

const dayKeyLayout = "2006-01-02"

var ErrInvalidDayKey = errors.New("model: invalid day key")

// DayKey addresses a calendar day irrespective of time-of-day.
type DayKey struct {
	Year  int
	Month time.Month
	Day   int
}

// DayKeyOf returns the calendar day of t in t's own location.
func DayKeyOf(t time.Time) DayKey {
	y, m, d := t.Date()
	return DayKey{Year: y, Month: m, Day: d}
}

func ParseDayKey(raw string) (DayKey, error) {
	t, err := time.Parse(dayKeyLayout, raw)
	if err != nil {
		return DayKey{}, fmt.Errorf("%w: %q", ErrInvalidDayKey, raw)
	}
	return DayKeyOf(t), nil
}

func (k DayKey) IsZero() bool {
	return k.Year == 0 && k.Month == 0 && k.Day == 0
}

func (k DayKey) String() string {
	if k.IsZero() {
		return ""
	}
	return fmt.Sprintf("%04d-%02d-%02d", k.Year, int(k.Month), k.Day)
}

// Time returns local midnight of the day in loc.
func (k DayKey) Time(loc *time.Location) time.Time {
	if loc == nil {
		loc = time.Local
	}
	return time.Date(k.Year, k.Month, k.Day, 0, 0, 0, 0, loc)
}

// AddDays steps by calendar days; DST transitions do not skew the result.
func (k DayKey) AddDays(n int) DayKey {
	return DayKeyOf(time.Date(k.Year, k.Month, k.Day+n, 12, 0, 0, 0, time.UTC))
}

func (k DayKey) Weekday() time.Weekday {
	return k.Time(time.UTC).Weekday()
}

func (k DayKey) Before(o DayKey) bool {
	if k.Year != o.Year {
		return k.Year < o.Year
	}
	if k.Month != o.Month {
		return k.Month < o.Month
	}
	return k.Day < o.Day
}

func (k DayKey) After(o DayKey) bool {
	return o.Before(k)
}

// DaysUntil counts calendar days from k to o (negative when o is earlier).
func (k DayKey) DaysUntil(o DayKey) int {
	a := k.Time(time.UTC)
	b := o.Time(time.UTC)
	return int(b.Sub(a).Hours() / 24)
}

// Label renders the short M/D form used on chart axes.
func (k DayKey) Label() string {
	return fmt.Sprintf("%d/%d", int(k.Month), k.Day)
}

func (k DayKey) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *DayKey) UnmarshalText(b []byte) error {
	if len(b) == 0 {
		*k = DayKey{}
		return nil
	}
	parsed, err := ParseDayKey(string(b))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

func MonthShort(m time.Month) string {
	if m < time.January || m > time.December {
		return ""
	}
	return m.String()[:3]
}

func WeekdayShort(d time.Weekday) string {
	if d < time.Sunday || d > time.Saturday {
		return ""
	}
	return d.String()[:3]
}

func IsLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

func DaysInYear(year int) int {
	if IsLeapYear(year) {
		return 366
	}
	return 365
}

// YearProgress reports how far through its calendar year now is, in [0,1].
func YearProgress(now time.Time) float64 {
	return float64(now.YearDay()) / float64(DaysInYear(now.Year()))
}
