// Package notifier delivers short user-facing messages: an in-process toast
// store read by the presentation layers and an optional desktop tray.
package notifier

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/timesheet/internal/constants"
	"github.com/julianstephens/timesheet/internal/logger"
)

// Variant is the severity of a toast.
type Variant string

const (
	Info    Variant = "info"
	Success Variant = "success"
	Danger  Variant = "danger"
)

// Toast is a single notification.
type Toast struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Desc      string    `json:"desc,omitempty"`
	Variant   Variant   `json:"variant"`
	CreatedAt time.Time `json:"createdAt"`
	// ExpiresAt is zero for toasts that stay until removed.
	ExpiresAt time.Time `json:"expiresAt,omitempty"`
}

// Notifier accepts toasts.
type Notifier interface {
	Notify(Toast)
}

// Sender forwards plain text somewhere outside the process.
type Sender interface {
	Send(text string) error
}

// Store keeps the toasts currently on screen. It is safe for concurrent use.
type Store struct {
	mu       sync.Mutex
	toasts   []Toast
	lifetime time.Duration
	now      func() time.Time
	forward  Sender
}

// Option configures a Store.
type Option func(*Store)

// WithLifetime overrides how long a toast added with Add stays visible.
func WithLifetime(d time.Duration) Option {
	return func(s *Store) { s.lifetime = d }
}

// WithClock injects the time source.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithForward mirrors every toast to sender. Forwarding failures are logged
// and otherwise ignored.
func WithForward(sender Sender) Option {
	return func(s *Store) { s.forward = sender }
}

// NewStore returns an empty store.
func NewStore(opts ...Option) *Store {
	s := &Store{
		lifetime: constants.ToastLifetime,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Notify adds t, ignoring the assigned id.
func (s *Store) Notify(t Toast) {
	s.Add(t)
}

// Add stores t with a fresh id and the default lifetime and returns the
// stored copy.
func (s *Store) Add(t Toast) Toast {
	return s.AddWithLifetime(t, s.lifetime)
}

// AddWithLifetime is Add with an explicit lifetime; 0 keeps the toast until
// Remove is called.
func (s *Store) AddWithLifetime(t Toast, lifetime time.Duration) Toast {
	if t.Variant == "" {
		t.Variant = Info
	}
	t.ID = newID()

	s.mu.Lock()
	t.CreatedAt = s.now()
	t.ExpiresAt = time.Time{}
	if lifetime > 0 {
		t.ExpiresAt = t.CreatedAt.Add(lifetime)
	}
	s.toasts = append(s.toasts, t)
	forward := s.forward
	s.mu.Unlock()

	if forward != nil {
		if err := forward.Send(t.Text()); err != nil {
			logger.Debug("Toast not forwarded", "id", t.ID, "error", err)
		}
	}
	return t
}

// Remove dismisses the toast with id.
func (s *Store) Remove(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, t := range s.toasts {
		if t.ID == id {
			s.toasts = append(s.toasts[:i], s.toasts[i+1:]...)
			return true
		}
	}
	return false
}

// Clear drops every toast.
func (s *Store) Clear() {
	s.mu.Lock()
	s.toasts = nil
	s.mu.Unlock()
}

// List returns the visible toasts, oldest first.
func (s *Store) List() []Toast {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Toast, len(s.toasts))
	copy(out, s.toasts)
	return out
}

// Expire drops every toast whose lifetime has elapsed and reports how many
// were removed.
func (s *Store) Expire() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	kept := s.toasts[:0]
	for _, t := range s.toasts {
		if t.ExpiresAt.IsZero() || now.Before(t.ExpiresAt) {
			kept = append(kept, t)
		}
	}
	removed := len(s.toasts) - len(kept)
	s.toasts = kept
	return removed
}

// Text renders the toast as a single line.
func (t Toast) Text() string {
	if t.Desc == "" {
		return t.Title
	}
	return fmt.Sprintf("%s: %s", t.Title, t.Desc)
}

func newID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}
