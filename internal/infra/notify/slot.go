package notify

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/aalvaropc/modreg/internal/domain"
	"github.com/aalvaropc/modreg/internal/ports"
)

// Slot is a single-slot notification surface. A new identity replaces whatever is
// shown; a known identity updates the shown notice in place.
type Slot struct {
	mu        sync.Mutex
	current   domain.Notice
	shownAt   time.Time
	has       bool
	now       func() time.Time
	newID     func() domain.NoticeID
	observers []func(domain.Notice)
}

type Option func(*Slot)

// WithClock overrides the time source used for expiry.
func WithClock(now func() time.Time) Option {
	return func(s *Slot) { s.now = now }
}

// WithIDs overrides identity allocation.
func WithIDs(next func() domain.NoticeID) Option {
	return func(s *Slot) { s.newID = next }
}

// WithObserver registers fn to receive every shown or updated notice.
func WithObserver(fn func(domain.Notice)) Option {
	return func(s *Slot) { s.observers = append(s.observers, fn) }
}

func NewSlot(opts ...Option) *Slot {
	s := &Slot{
		now:   time.Now,
		newID: func() domain.NoticeID { return domain.NoticeID(uuid.NewString()) },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var _ ports.NotificationSink = (*Slot)(nil)

func (s *Slot) Notify(n domain.Notice) domain.NoticeID {
	s.mu.Lock()
	if n.ID == "" {
		n.ID = s.newID()
	}
	s.current = n
	s.shownAt = s.now()
	s.has = true
	observers := s.observers
	s.mu.Unlock()

	for _, fn := range observers {
		fn(n)
	}
	return n.ID
}

// Current returns the visible notice, if any, honoring per-kind lifetimes.
func (s *Slot) Current() (domain.Notice, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.has {
		return domain.Notice{}, false
	}
	if life := s.current.Kind.Lifetime(); life > 0 && s.now().Sub(s.shownAt) >= life {
		s.has = false
		return domain.Notice{}, false
	}
	return s.current, true
}

// Dismiss hides the notice with id. Other identities are left alone.
func (s *Slot) Dismiss(id domain.NoticeID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.has && s.current.ID == id {
		s.has = false
	}
}
