package web

import (
	"github.com/example/smartslot/internal/application/session"
	"github.com/example/smartslot/internal/dateutil"
	"github.com/example/smartslot/internal/domain/booking"
)

type formView struct {
	Values      booking.CustomerData
	Errors      map[string]string
	DateLong    string
	TimeDisplay string
	Submitting  bool
	Error       string
}

type confirmationView struct {
	Reference   string
	DateLong    string
	TimeDisplay string
	Customer    booking.Customer
	Status      string
}

type pageData struct {
	UsingMockData bool
	LoadError     string
	Summary       booking.Summary
	HasDates      bool

	Calendar calendarView

	ShowTimes   bool
	TimesNoData bool
	Times       timeSlotsView

	ShowForm bool
	Form     formView

	Confirmation *confirmationView
}

// buildPage assembles the whole widget view for the session's current step.
func buildPage(ctrl *session.Controller, formErrors map[string]string, formValues booking.CustomerData, submitError string) pageData {
	data := pageData{
		UsingMockData: ctrl.UsingMockData(),
		Summary:       ctrl.Summary(),
		HasDates:      len(ctrl.Dates()) > 0,
		Calendar:      buildCalendar(ctrl),
	}
	if err := ctrl.LoadError(); err != nil {
		data.LoadError = err.Error()
	}

	selectedDate, hasDate := ctrl.SelectedDate()
	selectedTime := ctrl.SelectedTime()

	if hasDate && selectedTime == "" {
		dateStr := dateutil.FormatDate(selectedDate)
		if dd, ok := ctrl.DateData(dateStr); ok {
			data.ShowTimes = true
			data.Times = buildTimeSlots(dd, selectedDate, selectedTime)
		} else {
			data.ShowTimes = true
			data.TimesNoData = true
		}
	}

	if hasDate && selectedTime != "" && ctrl.Step() != session.StepConfirmed {
		data.ShowForm = true
		data.Form = formView{
			Values:      formValues,
			Errors:      formErrors,
			DateLong:    longDate(selectedDate),
			TimeDisplay: dateutil.FormatTimeDisplay(selectedTime),
			Submitting:  ctrl.Step() == session.StepSubmitting,
			Error:       submitError,
		}
	}

	if resp, ok := ctrl.Response(); ok && ctrl.Step() == session.StepConfirmed {
		conf := confirmationView{
			Reference:   resp.BookingReference,
			TimeDisplay: dateutil.FormatTimeDisplay(resp.TimeSlot),
			Customer:    resp.Customer,
			Status:      resp.Status,
		}
		if day, err := dateutil.ParseDate(resp.Date); err == nil {
			conf.DateLong = longDate(day)
		} else {
			conf.DateLong = resp.Date
		}
		data.Confirmation = &conf
	}

	return data
}
