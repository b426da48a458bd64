package schedule

import (
	"errors"
	"fmt"
	"strings"
)

const (
	DefaultSlotMinutes  = 60
	ExtendedSlotMinutes = 90
)

var ErrSlotNotInTemplate = errors.New("time range is not a bookable slot")

// Racquet sports book in 90 minute blocks; the lookup is case-insensitive.
var extendedTypes = map[string]struct{}{
	"tennis":      {},
	"tenis":       {},
	"padel":       {},
	"paddle":      {},
	"paddle-ball": {},
}

type Slot struct {
	Start int
	End   int
}

func (s Slot) Duration() int      { return s.End - s.Start }
func (s Slot) StartLabel() string { return FormatClock(s.Start) }
func (s Slot) EndLabel() string   { return FormatClock(s.End) }

// Key is the natural identifier of a slot within a template, e.g. "23:30-01:00".
func (s Slot) Key() string {
	return s.StartLabel() + "-" + s.EndLabel()
}

func (s Slot) Overlaps(other Slot) bool {
	return s.Start < other.End && other.Start < s.End
}

func SlotMinutesFor(resourceType string) int {
	if _, ok := extendedTypes[strings.ToLower(strings.TrimSpace(resourceType))]; ok {
		return ExtendedSlotMinutes
	}
	return DefaultSlotMinutes
}

// GenerateSlots lays fixed-size slots from window open; a trailing remainder shorter than a
// slot is dropped rather than truncated.
func GenerateSlots(resourceType string) []Slot {
	d := SlotMinutesFor(resourceType)
	slots := make([]Slot, 0, (WindowClose-WindowOpen)/d)
	for cur := WindowOpen; cur+d <= WindowClose; cur += d {
		slots = append(slots, Slot{Start: cur, End: cur + d})
	}
	return slots
}

// MatchSlot resolves a requested wall-clock range to its template slot. An empty end means
// "one slot from start".
func MatchSlot(resourceType, start, end string) (Slot, error) {
	s, err := NormalizeClock(start)
	if err != nil {
		return Slot{}, err
	}
	e := s + SlotMinutesFor(resourceType)
	if end != "" {
		if _, e, err = NormalizeRange(start, end); err != nil {
			return Slot{}, err
		}
	}

	want := Slot{Start: s, End: e}
	for _, slot := range GenerateSlots(resourceType) {
		if slot == want {
			return slot, nil
		}
	}
	return Slot{}, fmt.Errorf("%w: %s for type %q", ErrSlotNotInTemplate, want.Key(), resourceType)
}

// ParseSlotKey parses "HH:MM-HH:MM" into a linear slot without checking the template.
func ParseSlotKey(key string) (Slot, error) {
	start, end, ok := strings.Cut(key, "-")
	if !ok {
		return Slot{}, fmt.Errorf("%w: %q", ErrInvalidClock, key)
	}
	s, e, err := NormalizeRange(start, end)
	if err != nil {
		return Slot{}, err
	}
	return Slot{Start: s, End: e}, nil
}
