package session

import (
	"fmt"
	"time"

	"github.com/example/smartslot/internal/dateutil"
	"github.com/example/smartslot/internal/domain/booking"
)

// MockAvailability is the demo dataset substituted when the backend is
// unreachable. Dates are offsets from today so the demo always has bookable
// days: a partially booked day, a fully open day, a fully booked day and a
// short 90-minute-slot day.
func MockAvailability(now time.Time) booking.Availability {
	day := func(offset int) string {
		return dateutil.FormatDate(now.AddDate(0, 0, offset))
	}

	dates := []booking.AvailableDate{
		mockDate("mock-1", day(1), "09:00", "17:00", 30, []string{"09:30", "14:00"}),
		mockDate("mock-2", day(2), "08:00", "18:00", 60, nil),
		mockDate("mock-3", day(6), "10:00", "16:00", 15, []string{"*"}),
		mockDate("mock-4", day(7), "12:00", "18:00", 90, nil),
	}

	sum := booking.Summary{FromDate: day(1)}
	for _, d := range dates {
		if d.AvailableSlots > 0 {
			sum.TotalAvailableDates++
		}
		sum.TotalBookedSlots += d.BookedSlots
		sum.TotalAvailableSlots += d.AvailableSlots
	}

	return booking.Availability{Summary: sum, Dates: dates}
}

// mockDate builds one demo day. booked lists slot times that are taken;
// the single entry "*" marks every slot as booked.
func mockDate(id, date, start, end string, durationMin int, booked []string) booking.AvailableDate {
	bookAll := len(booked) == 1 && booked[0] == "*"
	taken := make(map[string]bool, len(booked))
	for _, t := range booked {
		taken[t] = true
	}

	confirmed := "confirmed"
	var slots []booking.TimeSlot
	startH, startM, _ := dateutil.SplitTime(start)
	endH, endM, _ := dateutil.SplitTime(end)
	endTotal := endH*60 + endM
	for m := startH*60 + startM; m < endTotal; m += durationMin {
		t := fmt.Sprintf("%02d:%02d", m/60, m%60)
		slot := booking.TimeSlot{Time: t}
		if bookAll || taken[t] {
			slot.IsBooked = true
			slot.BookingStatus = &confirmed
		}
		slots = append(slots, slot)
	}

	d := booking.AvailableDate{
		ID:           id,
		Date:         date,
		StartTime:    start,
		EndTime:      end,
		SlotDuration: durationMin,
		Timings:      start + " - " + end,
		TotalSlots:   len(slots),
		TimeSlots:    slots,
	}
	for _, s := range slots {
		if s.IsBooked {
			d.BookedSlots++
		}
	}
	d.AvailableSlots = d.TotalSlots - d.BookedSlots
	return d
}
