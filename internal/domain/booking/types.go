package booking

// TimeSlot is a single bookable unit within a date's operating hours.
// It never exists outside its parent AvailableDate.
type TimeSlot struct {
	Time          string  `json:"time"`
	IsBooked      bool    `json:"isBooked"`
	BookingStatus *string `json:"bookingStatus"`
}

// AvailableDate is one calendar day as reported by the scheduling backend.
// Invariants: AvailableSlots = TotalSlots - BookedSlots, len(TimeSlots) = TotalSlots.
type AvailableDate struct {
	ID             string     `json:"id"`
	Date           string     `json:"date"` // YYYY-MM-DD
	StartTime      string     `json:"startTime"`
	EndTime        string     `json:"endTime"`
	SlotDuration   int        `json:"slotDuration"` // minutes
	Timings        string     `json:"timings,omitempty"`
	TotalSlots     int        `json:"totalSlots"`
	BookedSlots    int        `json:"bookedSlots"`
	AvailableSlots int        `json:"availableSlots"`
	TimeSlots      []TimeSlot `json:"timeSlots"`
}

// OpenSlots returns the times of unbooked slots in source (chronological) order.
func (d AvailableDate) OpenSlots() []string {
	out := make([]string, 0, d.AvailableSlots)
	for _, s := range d.TimeSlots {
		if !s.IsBooked {
			out = append(out, s.Time)
		}
	}
	return out
}

// FullyBooked reports whether the date has data but no remaining slots.
func (d AvailableDate) FullyBooked() bool {
	return d.AvailableSlots == 0
}

// Summary is the backend's aggregate view over all available dates.
type Summary struct {
	TotalAvailableDates int    `json:"totalAvailableDates"`
	FromDate            string `json:"fromDate"`
	TotalBookedSlots    int    `json:"totalBookedSlots"`
	TotalAvailableSlots int    `json:"totalAvailableSlots"`
}

// Availability is the full dataset returned by the dates/timings endpoint.
type Availability struct {
	Summary Summary         `json:"summary"`
	Dates   []AvailableDate `json:"availableDates"`
}

// CustomerData is the draft customer input collected by the booking form.
type CustomerData struct {
	Name  string
	Email string
	Phone string
	Notes string
}

// Request is the wire payload for a booking submission.
type Request struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Notes    string `json:"notes"`
	Date     string `json:"date"` // YYYY-MM-DD, local calendar day
	Time     string `json:"time"` // HH:MM
}

// Customer is the customer block echoed back in a booking confirmation.
type Customer struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
	Notes string `json:"notes"`
}

// Response is the server-echoed booking confirmation.
type Response struct {
	ID               string   `json:"id"`
	BookingReference string   `json:"bookingReference"`
	Date             string   `json:"date"`
	TimeSlot         string   `json:"timeSlot"`
	Customer         Customer `json:"customer"`
	Status           string   `json:"status"`
	CreatedAt        string   `json:"createdAt"`
}
