// Package session implements the booking flow state machine. One Controller
// owns all mutable booking state for one visitor session; nothing in here is
// shared between sessions and nothing touches the network except through the
// Gateway.
package session

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/example/smartslot/internal/dateutil"
	"github.com/example/smartslot/internal/domain/booking"
)

// Gateway is the slice of the scheduling backend the controller needs.
type Gateway interface {
	FetchAvailableDates(ctx context.Context) (booking.Availability, error)
	SubmitBooking(ctx context.Context, req booking.Request) (booking.Response, error)
}

// Step is the visitor's position in the booking flow.
type Step int

const (
	StepLoading Step = iota
	StepSelectDate
	StepSelectTime
	StepFillForm
	StepSubmitting
	StepConfirmed
)

func (s Step) String() string {
	switch s {
	case StepLoading:
		return "loading"
	case StepSelectDate:
		return "select-date"
	case StepSelectTime:
		return "select-time"
	case StepFillForm:
		return "fill-form"
	case StepSubmitting:
		return "submitting"
	case StepConfirmed:
		return "confirmed"
	}
	return "unknown"
}

// Controller drives one booking session. It is not safe for concurrent use;
// callers serialize access (the web layer holds one lock per session).
type Controller struct {
	gw        Gateway
	now       func() time.Time
	randInt   func(n int) int
	mockDelay time.Duration

	step      Step
	dates     map[string]booking.AvailableDate
	order     []string
	summary   booking.Summary
	usingMock bool
	loadErr   error

	selectedDate *time.Time
	selectedTime string
	customer     booking.CustomerData
	response     *booking.Response
	submitErr    error

	month time.Month
	year  int
}

// Option configures a Controller.
type Option func(*Controller)

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) { c.now = now }
}

// WithMockDelay sets the simulated latency for demo-mode submissions.
func WithMockDelay(d time.Duration) Option {
	return func(c *Controller) { c.mockDelay = d }
}

// WithRand overrides the random source used for demo booking references.
func WithRand(f func(n int) int) Option {
	return func(c *Controller) { c.randInt = f }
}

// New returns a controller positioned at the loading step, on the current
// real-world month.
func New(gw Gateway, opts ...Option) *Controller {
	c := &Controller{
		gw:        gw,
		now:       time.Now,
		randInt:   rand.Intn,
		mockDelay: 1500 * time.Millisecond,
		step:      StepLoading,
		dates:     make(map[string]booking.AvailableDate),
	}
	for _, opt := range opts {
		opt(c)
	}
	now := c.now()
	c.month = now.Month()
	c.year = now.Year()
	return c
}

// Load fetches availability from the backend. On failure it degrades to the
// built-in demo dataset instead of failing the session, recording the cause
// for display.
func (c *Controller) Load(ctx context.Context) {
	av, err := c.gw.FetchAvailableDates(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("availability fetch failed, falling back to demo data")
		c.loadErr = err
		c.usingMock = true
		c.setAvailability(MockAvailability(c.now()))
	} else {
		c.loadErr = nil
		c.usingMock = false
		c.setAvailability(av)
	}
	c.step = StepSelectDate
}

// setAvailability replaces the dataset, keeping at most one entry per date
// string (first occurrence wins) and preserving source order.
func (c *Controller) setAvailability(av booking.Availability) {
	c.dates = make(map[string]booking.AvailableDate, len(av.Dates))
	c.order = c.order[:0]
	for _, d := range av.Dates {
		if _, seen := c.dates[d.Date]; seen {
			continue
		}
		c.dates[d.Date] = d
		c.order = append(c.order, d.Date)
	}
	c.summary = av.Summary
}

// IsDateAvailable reports whether dateStr has data and at least one open slot.
func (c *Controller) IsDateAvailable(dateStr string) bool {
	d, ok := c.dates[dateStr]
	return ok && d.AvailableSlots > 0
}

// DateData returns the availability record for dateStr, if any.
func (c *Controller) DateData(dateStr string) (booking.AvailableDate, bool) {
	d, ok := c.dates[dateStr]
	return d, ok
}

// AvailableTimeSlots returns the open slot times for dateStr in source order.
func (c *Controller) AvailableTimeSlots(dateStr string) []string {
	d, ok := c.dates[dateStr]
	if !ok {
		return nil
	}
	return d.OpenSlots()
}

// SelectDate picks a calendar date. Any previously selected time is cleared:
// a slot never carries across dates.
func (c *Controller) SelectDate(date time.Time) error {
	if c.step == StepLoading || c.step == StepSubmitting {
		return fmt.Errorf("cannot select a date while %s", c.step)
	}
	if !dateutil.IsFutureDate(date, c.now()) {
		return fmt.Errorf("date %s is in the past", dateutil.FormatDate(date))
	}
	if !c.IsDateAvailable(dateutil.FormatDate(date)) {
		return fmt.Errorf("date %s has no available slots", dateutil.FormatDate(date))
	}
	day := dateutil.Midnight(date)
	c.selectedDate = &day
	c.selectedTime = ""
	c.step = StepSelectTime
	return nil
}

// SelectTime picks a slot on the selected date.
func (c *Controller) SelectTime(t string) error {
	if c.selectedDate == nil {
		return fmt.Errorf("no date selected")
	}
	dateStr := dateutil.FormatDate(*c.selectedDate)
	for _, open := range c.AvailableTimeSlots(dateStr) {
		if open == t {
			c.selectedTime = t
			c.step = StepFillForm
			return nil
		}
	}
	return fmt.Errorf("slot %s on %s is not available", t, dateStr)
}

// ClearTime steps back from the form to time selection.
func (c *Controller) ClearTime() {
	if c.step == StepSubmitting {
		return
	}
	c.selectedTime = ""
	if c.selectedDate != nil {
		c.step = StepSelectTime
	} else {
		c.step = StepSelectDate
	}
}

// Submit sends the booking. In demo mode no network call is made for the
// booking itself: the controller waits the simulated latency and synthesizes
// a confirmation. Either way a successful booking is followed by a
// best-effort availability refresh whose failure is swallowed; the booking
// already succeeded and is never rolled back.
func (c *Controller) Submit(ctx context.Context, customer booking.CustomerData) error {
	if c.selectedDate == nil || c.selectedTime == "" {
		return fmt.Errorf("select a date and time before submitting")
	}
	if c.step == StepSubmitting {
		return fmt.Errorf("a submission is already in flight")
	}
	c.customer = customer
	c.submitErr = nil
	c.step = StepSubmitting

	dateStr := dateutil.FormatDate(*c.selectedDate)
	req := booking.Request{
		Username: customer.Name,
		Email:    customer.Email,
		Phone:    customer.Phone,
		Notes:    customer.Notes,
		Date:     dateStr,
		Time:     c.selectedTime,
	}

	var resp booking.Response
	if c.usingMock {
		if err := c.sleep(ctx); err != nil {
			c.submitErr = err
			c.step = StepFillForm
			return err
		}
		resp = c.mockResponse(req)
	} else {
		r, err := c.gw.SubmitBooking(ctx, req)
		if err != nil {
			c.submitErr = err
			c.step = StepFillForm
			return err
		}
		resp = r
	}
	c.response = &resp

	if av, err := c.gw.FetchAvailableDates(ctx); err == nil {
		c.usingMock = false
		c.loadErr = nil
		c.setAvailability(av)
	} else {
		log.Debug().Err(err).Msg("availability refresh after booking failed, keeping current data")
	}

	c.step = StepConfirmed
	return nil
}

// sleep simulates network latency for a demo-mode submission.
func (c *Controller) sleep(ctx context.Context) error {
	if c.mockDelay <= 0 {
		return nil
	}
	timer := time.NewTimer(c.mockDelay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// mockResponse synthesizes a confirmation shaped like the real backend's,
// with an SM + YYYYMMDD + 3-digit reference.
func (c *Controller) mockResponse(req booking.Request) booking.Response {
	now := c.now()
	return booking.Response{
		ID:               fmt.Sprintf("mock-%d", now.UnixMilli()),
		BookingReference: fmt.Sprintf("SM%s%03d", now.Format("20060102"), c.randInt(1000)),
		Date:             req.Date,
		TimeSlot:         req.Time,
		Customer: booking.Customer{
			Name:  req.Username,
			Email: req.Email,
			Phone: req.Phone,
			Notes: req.Notes,
		},
		Status:    "confirmed",
		CreatedAt: now.Format(time.RFC3339),
	}
}

// Reset clears the selection, customer draft and confirmation, returning to
// date selection. Availability data and the calendar position are kept.
func (c *Controller) Reset() {
	c.selectedDate = nil
	c.selectedTime = ""
	c.customer = booking.CustomerData{}
	c.response = nil
	c.submitErr = nil
	if c.step != StepLoading {
		c.step = StepSelectDate
	}
}

// NextMonth advances the calendar, wrapping December into January.
func (c *Controller) NextMonth() {
	if c.month == time.December {
		c.month = time.January
		c.year++
		return
	}
	c.month++
}

// PrevMonth steps the calendar back, unless that would browse into the past.
func (c *Controller) PrevMonth() {
	if !c.CanGoPrev() {
		return
	}
	if c.month == time.January {
		c.month = time.December
		c.year--
		return
	}
	c.month--
}

// CanGoPrev reports whether the previous month is still at or after the
// real-world current month.
func (c *Controller) CanGoPrev() bool {
	now := c.now()
	return c.year > now.Year() || (c.year == now.Year() && c.month > now.Month())
}

// Accessors.

func (c *Controller) Step() Step { return c.step }

func (c *Controller) UsingMockData() bool { return c.usingMock }

func (c *Controller) LoadError() error { return c.loadErr }

func (c *Controller) SubmitError() error { return c.submitErr }

func (c *Controller) Summary() booking.Summary { return c.summary }

// Dates returns the availability records in source order.
func (c *Controller) Dates() []booking.AvailableDate {
	out := make([]booking.AvailableDate, 0, len(c.order))
	for _, key := range c.order {
		out = append(out, c.dates[key])
	}
	return out
}

func (c *Controller) SelectedDate() (time.Time, bool) {
	if c.selectedDate == nil {
		return time.Time{}, false
	}
	return *c.selectedDate, true
}

func (c *Controller) SelectedTime() string { return c.selectedTime }

func (c *Controller) Customer() booking.CustomerData { return c.customer }

func (c *Controller) Response() (booking.Response, bool) {
	if c.response == nil {
		return booking.Response{}, false
	}
	return *c.response, true
}

func (c *Controller) Month() time.Month { return c.month }

func (c *Controller) Year() int { return c.year }

func (c *Controller) Now() time.Time { return c.now() }
