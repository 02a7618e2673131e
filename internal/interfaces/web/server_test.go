package web

import (
	"context"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gorilla/securecookie"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/smartslot/internal/application/session"
	"github.com/example/smartslot/internal/dateutil"
	"github.com/example/smartslot/internal/domain/booking"
)

type flowGateway struct {
	av         booking.Availability
	fetchErr   error
	submitResp booking.Response
	submits    int
}

func (g *flowGateway) FetchAvailableDates(context.Context) (booking.Availability, error) {
	if g.fetchErr != nil {
		return booking.Availability{}, g.fetchErr
	}
	return g.av, nil
}

func (g *flowGateway) SubmitBooking(context.Context, booking.Request) (booking.Response, error) {
	g.submits++
	return g.submitResp, nil
}

func newTestServer(t *testing.T, gw session.Gateway) (*httptest.Server, *http.Client) {
	t.Helper()

	tmpl, err := ParseTemplates()
	require.NoError(t, err)

	sessions := NewSessionManager(securecookie.GenerateRandomKey(64), securecookie.GenerateRandomKey(32))
	store := NewStore(func() *session.Controller {
		return session.New(gw, session.WithMockDelay(0))
	})

	srv := httptest.NewServer(New("", sessions, store, tmpl, []string{"*"}).Handler())
	t.Cleanup(srv.Close)

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return srv, &http.Client{Jar: jar}
}

func get(t *testing.T, client *http.Client, url string) string {
	t.Helper()
	res, err := client.Get(url)
	require.NoError(t, err)
	defer res.Body.Close()
	require.Equal(t, http.StatusOK, res.StatusCode)
	body, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	return string(body)
}

func post(t *testing.T, client *http.Client, target string, form url.Values) string {
	t.Helper()
	res, err := client.PostForm(target, form)
	require.NoError(t, err)
	defer res.Body.Close()
	body, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	return string(body)
}

func TestBookingFlow(t *testing.T) {
	tomorrow := dateutil.FormatDate(dateutil.Midnight(session.New(&flowGateway{}).Now()).AddDate(0, 0, 1))
	gw := &flowGateway{
		av: booking.Availability{
			Summary: booking.Summary{TotalAvailableDates: 1, TotalAvailableSlots: 2},
			Dates: []booking.AvailableDate{{
				ID: "d1", Date: tomorrow, SlotDuration: 30,
				TotalSlots: 2, AvailableSlots: 2,
				TimeSlots: []booking.TimeSlot{{Time: "09:00"}, {Time: "09:30"}},
			}},
		},
		submitResp: booking.Response{
			BookingReference: "SM20260910042",
			Date:             tomorrow,
			TimeSlot:         "09:00",
			Customer:         booking.Customer{Name: "Jane Doe", Email: "jane@example.com", Phone: "5551234567"},
			Status:           "confirmed",
		},
	}
	srv, client := newTestServer(t, gw)

	body := get(t, client, srv.URL+"/")
	assert.Contains(t, body, "Select a Date")
	assert.NotContains(t, body, "Demo mode")

	body = post(t, client, srv.URL+"/dates", url.Values{"date": {tomorrow}})
	assert.Contains(t, body, "Choose Your Time")
	assert.Contains(t, body, "9:00 AM")

	body = post(t, client, srv.URL+"/times", url.Values{"time": {"09:00"}})
	assert.Contains(t, body, "Complete Your Booking")

	// Invalid form input re-renders with field errors and never submits.
	body = post(t, client, srv.URL+"/bookings", url.Values{
		"name": {"J"}, "email": {"bad"}, "phone": {"123"},
	})
	assert.Contains(t, body, "Must be at least 2 characters")
	assert.Contains(t, body, "Please enter a valid email address")
	assert.Contains(t, body, "Please enter a valid phone number")
	assert.Zero(t, gw.submits)

	body = post(t, client, srv.URL+"/bookings", url.Values{
		"name":  {"Jane Doe"},
		"email": {"jane@example.com"},
		"phone": {"555 123 4567"},
		"notes": {"window seat"},
	})
	assert.Equal(t, 1, gw.submits)
	assert.Contains(t, body, "SM20260910042")
	assert.Contains(t, body, "Booking Confirmed")

	// Dismissing the confirmation starts over.
	body = post(t, client, srv.URL+"/reset", nil)
	assert.Contains(t, body, "Select a Date")
	assert.NotContains(t, body, "SM20260910042")
}

func TestWidgetDegradedBanner(t *testing.T) {
	gw := &flowGateway{fetchErr: booking.NewConnectionError("cannot reach the scheduling server", nil)}
	srv, client := newTestServer(t, gw)

	body := get(t, client, srv.URL+"/")
	assert.Contains(t, body, "Demo mode")
	assert.Contains(t, body, "cannot reach the scheduling server")
	assert.Contains(t, body, "/retry")
}

func TestMonthNavigation(t *testing.T) {
	gw := &flowGateway{}
	srv, client := newTestServer(t, gw)

	body := get(t, client, srv.URL+"/")
	ctrl := session.New(gw)
	current := dateutil.MonthName(ctrl.Month())
	assert.Contains(t, body, current)

	body = post(t, client, srv.URL+"/month", url.Values{"dir": {"next"}})
	next := ctrl.Month() + 1
	if next > 12 {
		next = 1
	}
	assert.Contains(t, body, dateutil.MonthName(next))

	// prev returns to the current month; another prev is a no-op.
	body = post(t, client, srv.URL+"/month", url.Values{"dir": {"prev"}})
	assert.Contains(t, body, current)
	body = post(t, client, srv.URL+"/month", url.Values{"dir": {"prev"}})
	assert.Contains(t, body, current)
}

func TestHealthz(t *testing.T) {
	srv, client := newTestServer(t, &flowGateway{})
	res, err := client.Get(srv.URL + "/healthz")
	require.NoError(t, err)
	defer res.Body.Close()
	assert.Equal(t, http.StatusOK, res.StatusCode)
}

func TestSessionCookieRoundTrip(t *testing.T) {
	sm := NewSessionManager(securecookie.GenerateRandomKey(64), securecookie.GenerateRandomKey(32))

	rec := httptest.NewRecorder()
	require.NoError(t, sm.SetID(rec, "abc-123"))

	cookie := rec.Result().Cookies()
	require.Len(t, cookie, 1)
	assert.True(t, cookie[0].HttpOnly)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookie[0])
	id, ok := sm.GetID(req)
	require.True(t, ok)
	assert.Equal(t, "abc-123", id)

	// Tampered cookies are rejected.
	req2 := httptest.NewRequest(http.MethodGet, "/", nil)
	req2.AddCookie(&http.Cookie{Name: sessionName, Value: strings.Repeat("x", 40)})
	_, ok = sm.GetID(req2)
	assert.False(t, ok)
}
