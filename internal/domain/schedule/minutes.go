package schedule

import (
	"errors"
	"fmt"
)

// The booking day is a linear minute scale that opens at 10:00 and closes at 02:00 the next day.
const (
	MinutesPerDay = 1440
	WindowOpen    = 600
	WindowClose   = 1560
)

var (
	ErrInvalidClock = errors.New("time must be HH:MM between 00:00 and 23:59")
	ErrEmptyRange   = errors.New("range end must differ from its start")
)

// ParseClock converts strict "HH:MM" into minutes since midnight.
func ParseClock(s string) (int, error) {
	if len(s) != 5 || s[2] != ':' {
		return 0, fmt.Errorf("%w: %q", ErrInvalidClock, s)
	}
	h, okH := twoDigits(s[0], s[1])
	m, okM := twoDigits(s[3], s[4])
	if !okH || !okM || h > 23 || m > 59 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidClock, s)
	}
	return h*60 + m, nil
}

func twoDigits(a, b byte) (int, bool) {
	if a < '0' || a > '9' || b < '0' || b > '9' {
		return 0, false
	}
	return int(a-'0')*10 + int(b-'0'), true
}

// Normalize maps a minute-of-day onto the booking day scale. Times before the window opens
// belong to the tail of the previous evening, so 00:30 becomes 1470 and sorts after 23:00.
func Normalize(minuteOfDay int) int {
	if minuteOfDay < WindowOpen {
		return minuteOfDay + MinutesPerDay
	}
	return minuteOfDay
}

func NormalizeClock(s string) (int, error) {
	m, err := ParseClock(s)
	if err != nil {
		return 0, err
	}
	return Normalize(m), nil
}

// NormalizeRange returns linear start and end minutes; an end that does not come after the
// start is pushed into the next day so the duration is always positive.
func NormalizeRange(start, end string) (int, int, error) {
	s, err := NormalizeClock(start)
	if err != nil {
		return 0, 0, err
	}
	e, err := NormalizeClock(end)
	if err != nil {
		return 0, 0, err
	}
	if e <= s {
		e += MinutesPerDay
	}
	if e-s >= MinutesPerDay {
		return 0, 0, fmt.Errorf("%w: %s-%s", ErrEmptyRange, start, end)
	}
	return s, e, nil
}

// FormatClock renders a linear minute as wall-clock "HH:MM" (25:30 -> "01:30").
func FormatClock(minute int) string {
	m := ((minute % MinutesPerDay) + MinutesPerDay) % MinutesPerDay
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}
