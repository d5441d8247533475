package auth

import (
	"errors"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	log "github.com/sirupsen/logrus"
	"ppf-order-backend/internal/models"
)

// Session is an authenticated admin session issued by the identity provider.
type Session struct {
	AccessToken  string
	RefreshToken string
	TokenType    string
	ExpiresAt    time.Time
	UserID       string
	Email        string
}

func (s *Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && !now.Before(s.ExpiresAt)
}

// Provider checks credentials against the external identity service.
type Provider interface {
	SignIn(email, password string) (*Session, error)
	SignOut(accessToken string) error
}

type EventType string

const (
	EventSignedIn  EventType = "signed_in"
	EventSignedOut EventType = "signed_out"
	EventExpired   EventType = "expired"
)

// Event reports a change of the current session. Session is nil unless
// Type is EventSignedIn.
type Event struct {
	Type    EventType
	Session *Session
}

const subscriberBuffer = 8

// Gate holds the single process-local admin session. Every gated request
// presents its access token and is checked against that session.
type Gate struct {
	provider Provider
	secret   []byte
	now      func() time.Time
	logger   *log.Entry

	mu          sync.Mutex
	current     *Session
	subscribers map[int]chan Event
	nextID      int
}

func NewGate(provider Provider, jwtSecret string) *Gate {
	return &Gate{
		provider:    provider,
		secret:      []byte(jwtSecret),
		now:         time.Now,
		logger:      log.WithField("component", "session_gate"),
		subscribers: make(map[int]chan Event),
	}
}

// SignIn asks the provider once. A failure comes back as *models.AuthError
// carrying the provider's message.
func (g *Gate) SignIn(email, password string) (*Session, error) {
	session, err := g.provider.SignIn(email, password)
	if err != nil {
		return nil, &models.AuthError{Message: err.Error()}
	}

	g.mu.Lock()
	g.current = session
	g.publishLocked(Event{Type: EventSignedIn, Session: session})
	g.mu.Unlock()

	g.logger.WithField("user_id", session.UserID).Info("admin signed in")
	return session, nil
}

// SignOut drops the local session and revokes it at the provider. A
// provider failure is logged; the local session is gone either way.
func (g *Gate) SignOut(accessToken string) {
	g.mu.Lock()
	if g.current != nil && g.current.AccessToken == accessToken {
		g.current = nil
		g.publishLocked(Event{Type: EventSignedOut})
	}
	g.mu.Unlock()

	if err := g.provider.SignOut(accessToken); err != nil {
		g.logger.WithError(err).Warn("provider sign-out failed")
	}
}

// CurrentSession returns the live session, if any.
func (g *Gate) CurrentSession() (*Session, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.current == nil {
		return nil, false
	}
	if g.current.Expired(g.now()) {
		g.expireLocked()
		return nil, false
	}
	return g.current, true
}

// Validate checks the token's signature and expiry and that it belongs to
// the current session.
func (g *Gate) Validate(accessToken string) (*Session, error) {
	if accessToken == "" || len(g.secret) == 0 {
		return nil, models.ErrUnauthorized
	}

	_, err := jwt.Parse(accessToken, func(token *jwt.Token) (interface{}, error) {
		return g.secret, nil
	}, jwt.WithValidMethods([]string{"HS256"}), jwt.WithTimeFunc(g.now))

	g.mu.Lock()
	defer g.mu.Unlock()

	if g.current == nil || g.current.AccessToken != accessToken {
		return nil, models.ErrUnauthorized
	}
	if errors.Is(err, jwt.ErrTokenExpired) || g.current.Expired(g.now()) {
		g.expireLocked()
		return nil, models.ErrUnauthorized
	}
	if err != nil {
		return nil, models.ErrUnauthorized
	}
	return g.current, nil
}

// Subscribe returns a channel of session changes and a func that closes it.
// A subscriber that falls behind misses events rather than blocking the gate.
func (g *Gate) Subscribe() (<-chan Event, func()) {
	g.mu.Lock()
	defer g.mu.Unlock()

	id := g.nextID
	g.nextID++
	ch := make(chan Event, subscriberBuffer)
	g.subscribers[id] = ch

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			g.mu.Lock()
			defer g.mu.Unlock()
			delete(g.subscribers, id)
			close(ch)
		})
	}
}

func (g *Gate) expireLocked() {
	g.current = nil
	g.publishLocked(Event{Type: EventExpired})
	g.logger.Info("admin session expired")
}

func (g *Gate) publishLocked(e Event) {
	for _, ch := range g.subscribers {
		select {
		case ch <- e:
		default:
		}
	}
}
