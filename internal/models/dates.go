package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"time"
)

const DateLayout = "2006-01-02"

// Date is a calendar day stored in a Postgres date column.
type Date struct {
	time.Time
}

func ParseDate(s string) (Date, error) {
	s = strings.TrimSpace(s)
	day := s
	if len(s) > len(DateLayout) {
		// timestamps such as 2024-06-01T00:00:00+00:00 or 2024-06-01 10:00:00
		if sep := s[len(DateLayout)]; sep != 'T' && sep != ' ' {
			return Date{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", s)
		}
		day = s[:len(DateLayout)]
	}
	t, err := time.Parse(DateLayout, day)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", s)
	}
	return Date{t}, nil
}

func NewDate(year int, month time.Month, day int) Date {
	return Date{time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

func Today() Date {
	now := time.Now()
	return NewDate(now.Year(), now.Month(), now.Day())
}

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Format(DateLayout)
}

func (d Date) AddDays(n int) Date {
	return Date{d.AddDate(0, 0, n)}
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(d.String())
}

func (d *Date) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		*d = Date{}
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	if s == "" {
		*d = Date{}
		return nil
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// NightsBetween counts hotel nights from check-in to check-out.
func NightsBetween(checkIn, checkOut Date) int {
	return int(math.Round(checkOut.Sub(checkIn.Time).Hours() / 24))
}

// Overlaps reports whether the half-open stays [aIn, aOut) and [bIn, bOut) share a night.
func Overlaps(aIn, aOut, bIn, bOut Date) bool {
	return aIn.Before(bOut.Time) && bIn.Before(aOut.Time)
}

// ClockTime is a time of day with minute precision, stored in a Postgres time column.
type ClockTime struct {
	minutes int
	valid   bool
}

func ParseClockTime(s string) (ClockTime, error) {
	s = strings.TrimSpace(s)
	for _, layout := range []string{"15:04", "15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return ClockTime{minutes: t.Hour()*60 + t.Minute(), valid: true}, nil
		}
	}
	return ClockTime{}, fmt.Errorf("invalid time %q: expected HH:MM", s)
}

func NewClockTime(hour, minute int) ClockTime {
	return ClockTime{minutes: hour*60 + minute, valid: true}
}

func (c ClockTime) IsZero() bool { return !c.valid }

// Minutes returns minutes since midnight.
func (c ClockTime) Minutes() int { return c.minutes }

func (c ClockTime) Before(o ClockTime) bool { return c.minutes < o.minutes }

func (c ClockTime) String() string {
	if !c.valid {
		return ""
	}
	return fmt.Sprintf("%02d:%02d", c.minutes/60, c.minutes%60)
}

func (c ClockTime) MarshalJSON() ([]byte, error) {
	if !c.valid {
		return []byte("null"), nil
	}
	return json.Marshal(c.String())
}

func (c *ClockTime) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		*c = ClockTime{}
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	if s == "" {
		*c = ClockTime{}
		return nil
	}
	parsed, err := ParseClockTime(s)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// WithinShift reports whether at falls inside [start, end); shifts whose end is before start wrap midnight.
func WithinShift(start, end, at ClockTime) bool {
	if start.minutes <= end.minutes {
		return at.minutes >= start.minutes && at.minutes < end.minutes
	}
	return at.minutes >= start.minutes || at.minutes < end.minutes
}

// ApplyDiscount returns price reduced by a percentage discount, rounded to cents.
func ApplyDiscount(price, discountPercent float64) float64 {
	if discountPercent <= 0 {
		return RoundCents(price)
	}
	if discountPercent > 100 {
		discountPercent = 100
	}
	return RoundCents(price * (1 - discountPercent/100))
}

func RoundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
