package web

import (
	"html/template"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog/log"

	"github.com/example/smartslot/internal/application/session"
	"github.com/example/smartslot/internal/dateutil"
	"github.com/example/smartslot/internal/domain/booking"
	"github.com/example/smartslot/internal/pkg/validator"
)

// Server renders the booking widget and forwards visitor intents to the
// per-session controller.
type Server struct {
	addr           string
	sessions       *SessionManager
	store          *Store
	tmpl           *template.Template
	allowedOrigins []string
}

func New(addr string, sessions *SessionManager, store *Store, tmpl *template.Template, allowedOrigins []string) *Server {
	return &Server{
		addr:           addr,
		sessions:       sessions,
		store:          store,
		tmpl:           tmpl,
		allowedOrigins: allowedOrigins,
	}
}

// Handler builds the widget router.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(requestLogger)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   s.allowedOrigins,
		AllowedMethods:   []string{"GET", "POST"},
		AllowCredentials: true,
	}))

	r.Get("/", s.handleWidget)
	r.Post("/dates", s.handleSelectDate)
	r.Post("/times", s.handleSelectTime)
	r.Post("/times/clear", s.handleClearTime)
	r.Post("/bookings", s.handleSubmit)
	r.Post("/reset", s.handleReset)
	r.Post("/month", s.handleMonth)
	r.Post("/retry", s.handleRetry)
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	return r
}

func (s *Server) ListenAndServe() error {
	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	log.Info().Str("addr", s.addr).Msg("widget listening")
	return srv.ListenAndServe()
}

// withSession resolves the visitor session for the request, creating one and
// setting the cookie when needed, and runs fn with the session lock held.
func (s *Server) withSession(w http.ResponseWriter, r *http.Request, fn func(ctrl *session.Controller)) {
	id, _ := s.sessions.GetID(r)
	v, newID := s.store.Get(id)
	if newID != id {
		if err := s.sessions.SetID(w, newID); err != nil {
			writeErr(w, err, http.StatusInternalServerError)
			return
		}
	}
	v.mu.Lock()
	defer v.mu.Unlock()
	fn(v.ctrl)
}

func writeErr(w http.ResponseWriter, err error, code int) {
	w.WriteHeader(code)
	_, _ = w.Write([]byte(err.Error()))
}

func (s *Server) render(w http.ResponseWriter, data pageData) {
	w.Header().Set("content-type", "text/html; charset=utf-8")
	if err := s.tmpl.ExecuteTemplate(w, "index.html", data); err != nil {
		writeErr(w, err, http.StatusInternalServerError)
	}
}

func (s *Server) handleWidget(w http.ResponseWriter, r *http.Request) {
	s.withSession(w, r, func(ctrl *session.Controller) {
		if ctrl.Step() == session.StepLoading {
			ctrl.Load(r.Context())
		}
		s.render(w, buildPage(ctrl, nil, booking.CustomerData{}, ""))
	})
}

func (s *Server) handleSelectDate(w http.ResponseWriter, r *http.Request) {
	s.withSession(w, r, func(ctrl *session.Controller) {
		_ = r.ParseForm()
		date, err := dateutil.ParseDate(strings.TrimSpace(r.FormValue("date")))
		if err == nil {
			err = ctrl.SelectDate(date)
		}
		if err != nil {
			log.Debug().Err(err).Msg("date selection rejected")
		}
		http.Redirect(w, r, "/", http.StatusFound)
	})
}

func (s *Server) handleSelectTime(w http.ResponseWriter, r *http.Request) {
	s.withSession(w, r, func(ctrl *session.Controller) {
		_ = r.ParseForm()
		if err := ctrl.SelectTime(strings.TrimSpace(r.FormValue("time"))); err != nil {
			log.Debug().Err(err).Msg("time selection rejected")
		}
		http.Redirect(w, r, "/", http.StatusFound)
	})
}

func (s *Server) handleClearTime(w http.ResponseWriter, r *http.Request) {
	s.withSession(w, r, func(ctrl *session.Controller) {
		ctrl.ClearTime()
		http.Redirect(w, r, "/", http.StatusFound)
	})
}

// customerForm is the validated shape of the booking form.
type customerForm struct {
	Name  string `json:"name" validate:"required,min=2"`
	Email string `json:"email" validate:"required,email"`
	Phone string `json:"phone" validate:"required,phone10"`
	Notes string `json:"notes"`
}

func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	s.withSession(w, r, func(ctrl *session.Controller) {
		_ = r.ParseForm()
		form := customerForm{
			Name:  strings.TrimSpace(r.FormValue("name")),
			Email: strings.TrimSpace(r.FormValue("email")),
			Phone: strings.TrimSpace(r.FormValue("phone")),
			Notes: strings.TrimSpace(r.FormValue("notes")),
		}
		customer := booking.CustomerData{
			Name:  form.Name,
			Email: form.Email,
			Phone: form.Phone,
			Notes: form.Notes,
		}

		if errs := validator.Validate(&form); errs != nil {
			s.render(w, buildPage(ctrl, errs, customer, ""))
			return
		}

		if err := ctrl.Submit(r.Context(), customer); err != nil {
			s.render(w, buildPage(ctrl, nil, customer, "Booking failed: "+err.Error()))
			return
		}
		http.Redirect(w, r, "/", http.StatusFound)
	})
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	s.withSession(w, r, func(ctrl *session.Controller) {
		ctrl.Reset()
		http.Redirect(w, r, "/", http.StatusFound)
	})
}

func (s *Server) handleMonth(w http.ResponseWriter, r *http.Request) {
	s.withSession(w, r, func(ctrl *session.Controller) {
		_ = r.ParseForm()
		switch r.FormValue("dir") {
		case "prev":
			ctrl.PrevMonth()
		case "next":
			ctrl.NextMonth()
		}
		http.Redirect(w, r, "/", http.StatusFound)
	})
}

// handleRetry discards the session so the next page load starts a fresh
// fetch against the backend.
func (s *Server) handleRetry(w http.ResponseWriter, r *http.Request) {
	if id, ok := s.sessions.GetID(r); ok {
		s.store.Drop(id)
	}
	http.Redirect(w, r, "/", http.StatusFound)
}

// requestLogger logs method, path, status and duration for every request.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		wrapped := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(wrapped, r)
		log.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", wrapped.status).
			Dur("duration", time.Since(start)).
			Msg("http request")
	})
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}
