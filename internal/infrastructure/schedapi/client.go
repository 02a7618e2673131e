// Package schedapi is the client for the SmartSlot scheduling backend. It is
// the only I/O boundary in the widget: one read (available dates with timings)
// and one write (booking submission), with low-level failures translated into
// the booking error taxonomy.
package schedapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/example/smartslot/internal/dateutil"
	"github.com/example/smartslot/internal/domain/booking"
)

const (
	datesPath   = "/api/admin/dates/timings"
	bookingPath = "/api/booking/simple"

	defaultTimeout = 10 * time.Second
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Client talks to the SmartSlot backend over HTTP.
type Client struct {
	hc      *http.Client
	baseURL string
}

// New returns a client for the backend at baseURL. A non-positive timeout
// falls back to the default.
func New(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		hc:      &http.Client{Timeout: timeout},
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

// envelope is the backend's uniform response wrapper.
type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// FetchAvailableDates reads the full availability dataset. It never retries;
// the caller decides whether to degrade or surface the failure.
func (c *Client) FetchAvailableDates(ctx context.Context) (booking.Availability, error) {
	body, err := c.do(ctx, http.MethodGet, datesPath, nil)
	if err != nil {
		return booking.Availability{}, err
	}
	var av booking.Availability
	if err := json.Unmarshal(body, &av); err != nil {
		return booking.Availability{}, booking.NewServerError("server returned an unreadable availability payload", err)
	}
	log.Debug().Int("dates", len(av.Dates)).Msg("fetched available dates")
	return av, nil
}

// SubmitBooking validates the request locally, then posts it to the booking
// endpoint. Malformed email or phone input is rejected before any network call.
func (c *Client) SubmitBooking(ctx context.Context, req booking.Request) (booking.Response, error) {
	if !emailPattern.MatchString(req.Email) {
		return booking.Response{}, booking.NewValidationError("please enter a valid email address")
	}
	phone := digitsOnly(req.Phone)
	if len(phone) != 10 {
		return booking.Response{}, booking.NewValidationError("phone number must contain exactly 10 digits")
	}
	req.Phone = phone

	// Re-anchor the date on the local calendar day so a submission near
	// midnight cannot land on the wrong date.
	day, err := dateutil.ParseDate(req.Date)
	if err != nil {
		return booking.Response{}, booking.NewValidationError("booking date must be a YYYY-MM-DD string")
	}
	req.Date = dateutil.FormatDate(day)

	payload, err := json.Marshal(req)
	if err != nil {
		return booking.Response{}, booking.NewValidationError("booking request could not be encoded")
	}

	body, err := c.do(ctx, http.MethodPost, bookingPath, payload)
	if err != nil {
		return booking.Response{}, err
	}
	var resp booking.Response
	if err := json.Unmarshal(body, &resp); err != nil {
		return booking.Response{}, booking.NewServerError("server returned an unreadable booking confirmation", err)
	}
	log.Debug().Str("reference", resp.BookingReference).Msg("booking submitted")
	return resp, nil
}

// do performs one request and unwraps the response envelope, returning the
// raw data payload. Transport failures become connection errors; everything
// the server answered with but we cannot accept becomes a server error.
func (c *Client) do(ctx context.Context, method, path string, body []byte) (json.RawMessage, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, booking.NewServerError("could not build backend request", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")

	res, err := c.hc.Do(req)
	if err != nil {
		log.Warn().Err(err).Str("path", path).Msg("backend unreachable")
		return nil, booking.NewConnectionError(
			fmt.Sprintf("cannot reach the scheduling server at %s", c.baseURL), err)
	}
	defer res.Body.Close()

	raw, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, booking.NewConnectionError("connection dropped while reading the server response", err)
	}

	var env envelope
	decodeErr := json.Unmarshal(raw, &env)

	if res.StatusCode < 200 || res.StatusCode > 299 {
		msg := fmt.Sprintf("server returned an error (HTTP %d)", res.StatusCode)
		if decodeErr == nil && env.Message != "" {
			msg = env.Message
		}
		log.Warn().Int("status", res.StatusCode).Str("path", path).Msg("backend request failed")
		return nil, booking.NewServerError(msg, nil)
	}
	if decodeErr != nil {
		return nil, booking.NewServerError("server returned an unreadable response", decodeErr)
	}
	if !env.Success {
		msg := env.Message
		if msg == "" {
			msg = "server reported a failure"
		}
		return nil, booking.NewServerError(msg, nil)
	}
	return env.Data, nil
}

func digitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
