package booking

import (
	"testing"
)

func TestOpenSlotsPreservesOrder(t *testing.T) {
	confirmed := "confirmed"
	d := AvailableDate{
		TotalSlots: 3, BookedSlots: 1, AvailableSlots: 2,
		TimeSlots: []TimeSlot{
			{Time: "09:00"},
			{Time: "09:30", IsBooked: true, BookingStatus: &confirmed},
			{Time: "10:00"},
		},
	}
	got := d.OpenSlots()
	if len(got) != 2 || got[0] != "09:00" || got[1] != "10:00" {
		t.Errorf("unexpected open slots: %v", got)
	}
}

func TestFullyBooked(t *testing.T) {
	if (AvailableDate{TotalSlots: 2, BookedSlots: 1, AvailableSlots: 1}).FullyBooked() {
		t.Error("date with open slots reported fully booked")
	}
	if !(AvailableDate{TotalSlots: 2, BookedSlots: 2, AvailableSlots: 0}).FullyBooked() {
		t.Error("date with no open slots not reported fully booked")
	}
}

func TestKindOf(t *testing.T) {
	for _, tc := range []struct {
		err  error
		kind ErrorKind
	}{
		{NewConnectionError("down", nil), KindConnection},
		{NewServerError("boom", nil), KindServer},
		{NewValidationError("bad email"), KindValidation},
	} {
		kind, ok := KindOf(tc.err)
		if !ok || kind != tc.kind {
			t.Errorf("KindOf(%v): got (%v, %v)", tc.err, kind, ok)
		}
	}
	if _, ok := KindOf(nil); ok {
		t.Error("nil error should carry no kind")
	}
}
