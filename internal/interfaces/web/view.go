package web

import (
	"time"

	"github.com/example/smartslot/internal/application/session"
	"github.com/example/smartslot/internal/dateutil"
	"github.com/example/smartslot/internal/domain/booking"
)

// View models for the widget templates. These hold rendering categories only;
// every business rule about availability lives in the controller.

type calendarCell struct {
	Day       int
	Date      string
	Class     string
	Clickable bool
}

type calendarView struct {
	MonthName string
	Year      int
	DayNames  []string
	Lead      []int
	Cells     []calendarCell
	CanPrev   bool
}

// buildCalendar lays out the 7-column grid for the controller's current
// month, left-padded with empty cells so day 1 lands on its weekday.
func buildCalendar(c *session.Controller) calendarView {
	year, month := c.Year(), c.Month()
	now := c.Now()

	view := calendarView{
		MonthName: dateutil.MonthName(month),
		Year:      year,
		DayNames:  dateutil.DayNames(),
		Lead:      make([]int, dateutil.FirstDayOfMonth(year, month)),
		CanPrev:   c.CanGoPrev(),
	}

	selected := ""
	if d, ok := c.SelectedDate(); ok {
		selected = dateutil.FormatDate(d)
	}

	for _, date := range dateutil.DatesInMonth(year, month) {
		dateStr := dateutil.FormatDate(date)
		data, hasData := c.DateData(dateStr)

		cell := calendarCell{Day: date.Day(), Date: dateStr}
		switch {
		case !dateutil.IsFutureDate(date, now):
			cell.Class = "past"
		case hasData && data.FullyBooked():
			cell.Class = "fully-booked"
		case hasData:
			cell.Class = "available"
			cell.Clickable = true
			if dateStr == selected {
				cell.Class += " selected"
			}
		default:
			cell.Class = "unavailable"
		}
		if dateutil.IsToday(date, now) {
			cell.Class += " today"
		}
		view.Cells = append(view.Cells, cell)
	}
	return view
}

type slotView struct {
	Time      string
	Display   string
	Available bool
	Selected  bool
}

type slotBand struct {
	Title          string
	Icon           string
	Slots          []slotView
	AvailableCount int
}

type timeSlotsView struct {
	DateLong       string
	TotalSlots     int
	AvailableCount int
	SlotDuration   int
	Bands          []slotBand
}

// buildTimeSlots partitions the selected date's full slot list into the four
// fixed day bands. Booked slots stay visible but disabled.
func buildTimeSlots(data booking.AvailableDate, selectedDate time.Time, selectedTime string) timeSlotsView {
	view := timeSlotsView{
		DateLong:     longDate(selectedDate),
		TotalSlots:   data.TotalSlots,
		SlotDuration: data.SlotDuration,
	}

	bands := []slotBand{
		{Title: "Morning", Icon: "🌅"},
		{Title: "Afternoon", Icon: "☀️"},
		{Title: "Evening", Icon: "🌆"},
		{Title: "Night", Icon: "🌙"},
	}

	for _, slot := range data.TimeSlots {
		sv := slotView{
			Time:      slot.Time,
			Display:   dateutil.FormatTimeDisplay(slot.Time),
			Available: !slot.IsBooked,
			Selected:  slot.Time == selectedTime,
		}
		if sv.Available {
			view.AvailableCount++
		}
		i := bandIndex(slot.Time)
		bands[i].Slots = append(bands[i].Slots, sv)
		if sv.Available {
			bands[i].AvailableCount++
		}
	}

	for _, b := range bands {
		if len(b.Slots) > 0 {
			view.Bands = append(view.Bands, b)
		}
	}
	return view
}

// bandIndex maps an HH:MM time to its day band:
// morning [6,12), afternoon [12,17), evening [17,22), night [22,24) and [0,6).
func bandIndex(t string) int {
	hour, _, ok := dateutil.SplitTime(t)
	if !ok {
		return 3
	}
	switch {
	case hour >= 6 && hour < 12:
		return 0
	case hour >= 12 && hour < 17:
		return 1
	case hour >= 17 && hour < 22:
		return 2
	default:
		return 3
	}
}

func longDate(t time.Time) string {
	return t.Format("Monday, January 2, 2006")
}
