//go:build unit

package schedule_test

import (
	"testing"

	"court-booking/internal/domain/schedule"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlotMinutesFor(t *testing.T) {
	extended := []string{"tennis", "tenis", "TENIS", "Padel", "paddle", "paddle-ball", " padel "}
	for _, typ := range extended {
		assert.Equal(t, schedule.ExtendedSlotMinutes, schedule.SlotMinutesFor(typ), typ)
	}

	standard := []string{"futbol", "basquet", "voley", "squash", "", "padel-x"}
	for _, typ := range standard {
		assert.Equal(t, schedule.DefaultSlotMinutes, schedule.SlotMinutesFor(typ), typ)
	}
}

func TestGenerateSlots_Futbol(t *testing.T) {
	slots := schedule.GenerateSlots("futbol")

	require.Len(t, slots, 16)
	assert.Equal(t, "10:00-11:00", slots[0].Key())
	assert.Equal(t, "01:00-02:00", slots[len(slots)-1].Key())
}

func TestGenerateSlots_Tenis(t *testing.T) {
	slots := schedule.GenerateSlots("tenis")

	require.Len(t, slots, 10)
	assert.Equal(t, "10:00-11:30", slots[0].Key())
	assert.Equal(t, "23:30-01:00", slots[len(slots)-1].Key())

	// 01:00-02:30 would leave the window, so it is dropped rather than truncated
	assert.Equal(t, 1500, slots[len(slots)-1].End)
}

func TestGenerateSlots_Shape(t *testing.T) {
	for _, typ := range []string{"futbol", "tenis", "padel", "paddle-ball", "basquet"} {
		t.Run(typ, func(t *testing.T) {
			slots := schedule.GenerateSlots(typ)
			want := schedule.SlotMinutesFor(typ)

			require.NotEmpty(t, slots)
			assert.Equal(t, schedule.WindowOpen, slots[0].Start)
			for i, s := range slots {
				assert.Equal(t, want, s.Duration())
				assert.LessOrEqual(t, s.End, schedule.WindowClose)
				if i > 0 {
					assert.Equal(t, slots[i-1].End, s.Start, "slots must be gapless")
				}
			}
		})
	}
}

func TestGenerateSlots_Deterministic(t *testing.T) {
	if diff := cmp.Diff(schedule.GenerateSlots("padel"), schedule.GenerateSlots("PADEL")); diff != "" {
		t.Errorf("slot template mismatch (-want +got):\n%s", diff)
	}
}

func TestMatchSlot(t *testing.T) {
	testCases := []struct {
		name    string
		typ     string
		start   string
		end     string
		wantKey string
		errIs   error
	}{
		{name: "explicit end", typ: "futbol", start: "10:00", end: "11:00", wantKey: "10:00-11:00"},
		{name: "implied end", typ: "futbol", start: "22:00", wantKey: "22:00-23:00"},
		{name: "after midnight", typ: "futbol", start: "01:00", end: "02:00", wantKey: "01:00-02:00"},
		{name: "extended across midnight", typ: "tenis", start: "23:30", end: "01:00", wantKey: "23:30-01:00"},
		{name: "misaligned start", typ: "tenis", start: "11:00", end: "12:30", errIs: schedule.ErrSlotNotInTemplate},
		{name: "wrong duration", typ: "futbol", start: "10:00", end: "11:30", errIs: schedule.ErrSlotNotInTemplate},
		{name: "before window", typ: "futbol", start: "09:00", end: "10:00", errIs: schedule.ErrSlotNotInTemplate},
		{name: "past window close", typ: "tenis", start: "01:00", errIs: schedule.ErrSlotNotInTemplate},
		{name: "malformed", typ: "futbol", start: "10h00", errIs: schedule.ErrInvalidClock},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			slot, err := schedule.MatchSlot(tc.typ, tc.start, tc.end)
			if tc.errIs != nil {
				assert.ErrorIs(t, err, tc.errIs)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.wantKey, slot.Key())
		})
	}
}

func TestParseSlotKey(t *testing.T) {
	slot, err := schedule.ParseSlotKey("23:30-01:00")
	require.NoError(t, err)
	assert.Equal(t, schedule.Slot{Start: 1410, End: 1500}, slot)

	_, err = schedule.ParseSlotKey("23:30")
	assert.ErrorIs(t, err, schedule.ErrInvalidClock)
}
