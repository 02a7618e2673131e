package web

import (
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/securecookie"

	"github.com/example/smartslot/internal/application/session"
)

const sessionName = "smartslot_session"

// sessionTTL is how long an idle visitor keeps their booking state.
const sessionTTL = 30 * time.Minute

// SessionManager pins a visitor to a session id via a signed cookie.
type SessionManager struct{ sc *securecookie.SecureCookie }

func NewSessionManager(hashKey, blockKey []byte) *SessionManager {
	return &SessionManager{sc: securecookie.New(hashKey, blockKey)}
}

func (s *SessionManager) SetID(w http.ResponseWriter, id string) error {
	encoded, err := s.sc.Encode(sessionName, map[string]string{"sid": id})
	if err != nil {
		return err
	}
	http.SetCookie(w, &http.Cookie{
		Name: sessionName, Value: encoded, Path: "/",
		HttpOnly: true, SameSite: http.SameSiteLaxMode,
	})
	return nil
}

func (s *SessionManager) GetID(r *http.Request) (string, bool) {
	c, err := r.Cookie(sessionName)
	if err != nil {
		return "", false
	}
	value := map[string]string{}
	if err := s.sc.Decode(sessionName, c.Value, &value); err != nil {
		return "", false
	}
	id := value["sid"]
	if id == "" {
		return "", false
	}
	return id, true
}

// visitor is one browser session: its controller plus the lock that
// serializes handler access to it.
type visitor struct {
	mu       sync.Mutex
	ctrl     *session.Controller
	lastSeen time.Time
}

// Store holds the live visitor sessions in memory.
type Store struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	newCtrl  func() *session.Controller
	now      func() time.Time
}

func NewStore(newCtrl func() *session.Controller) *Store {
	return &Store{
		visitors: make(map[string]*visitor),
		newCtrl:  newCtrl,
		now:      time.Now,
	}
}

// Get returns the visitor for id, creating one when id is empty or unknown.
// Expired sessions are swept lazily here.
func (s *Store) Get(id string) (*visitor, string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	for key, v := range s.visitors {
		if now.Sub(v.lastSeen) > sessionTTL {
			delete(s.visitors, key)
		}
	}

	if id != "" {
		if v, ok := s.visitors[id]; ok {
			v.lastSeen = now
			return v, id
		}
	}

	id = uuid.NewString()
	v := &visitor{ctrl: s.newCtrl(), lastSeen: now}
	s.visitors[id] = v
	return v, id
}

// Drop discards the session for id; the next request starts fresh.
func (s *Store) Drop(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.visitors, id)
}
