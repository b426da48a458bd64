package schedule

import "fmt"

// Booking is the minimum the resolver needs to know about an existing reservation.
type Booking struct {
	Date      string
	StartTime string
	EndTime   string
	Cancelled bool
}

type SlotAvailability struct {
	Slot
	Booked   bool
	Selected bool
}

// Resolve marks each template slot booked when an active booking of the same date overlaps it,
// and selected when it equals the caller's candidate. A booking whose times cannot be read fails
// the whole pass so no slot is reported free on bad data.
func Resolve(slots []Slot, bookings []Booking, date string, selected *Slot) ([]SlotAvailability, error) {
	occupied := make([]Slot, 0, len(bookings))
	for _, b := range bookings {
		if b.Cancelled || b.Date != date {
			continue
		}
		s, e, err := NormalizeRange(b.StartTime, b.EndTime)
		if err != nil {
			return nil, fmt.Errorf("booking %s %s-%s: %w", b.Date, b.StartTime, b.EndTime, err)
		}
		occupied = append(occupied, Slot{Start: s, End: e})
	}

	out := make([]SlotAvailability, len(slots))
	for i, slot := range slots {
		out[i] = SlotAvailability{
			Slot:     slot,
			Booked:   overlapsAny(slot, occupied),
			Selected: selected != nil && *selected == slot,
		}
	}
	return out, nil
}

func overlapsAny(slot Slot, occupied []Slot) bool {
	for _, o := range occupied {
		if slot.Overlaps(o) {
			return true
		}
	}
	return false
}
