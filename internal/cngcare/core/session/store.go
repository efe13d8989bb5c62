package session

import (
	"sync"

	"github.com/google/uuid"
	"golang.org/x/time/rate"
	"k8s.io/utils/clock"

	"github.com/Afox1/cngcare/internal/cngcare/core"
	"github.com/Afox1/cngcare/pkg/options"
)

// Store holds the active form sessions in memory. Idle sessions are
// discarded lazily on access and by Sweep.
type Store struct {
	opts  *options.SessionOptions
	clock clock.PassiveClock

	mu       sync.Mutex
	sessions map[string]*Session
}

// NewStore creates a session store. A nil clk uses the real clock.
func NewStore(opts *options.SessionOptions, clk clock.PassiveClock) *Store {
	if opts == nil {
		opts = options.NewSessionOptions()
	}
	if clk == nil {
		clk = clock.RealClock{}
	}
	return &Store{
		opts:     opts,
		clock:    clk,
		sessions: make(map[string]*Session),
	}
}

// Create starts a new empty session.
func (s *Store) Create() (*Session, error) {
	now := s.clock.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.sessions) >= s.opts.MaxSessions {
		s.sweepLocked()
		if len(s.sessions) >= s.opts.MaxSessions {
			return nil, core.ErrSessionLimit
		}
	}

	sess := newSession(uuid.NewString(), now, s.newLimiter())
	s.sessions[sess.id] = sess
	return sess, nil
}

// Get returns the session with id and marks it as seen.
func (s *Store) Get(id string) (*Session, error) {
	now := s.clock.Now()

	s.mu.Lock()
	sess, ok := s.sessions[id]
	if ok && sess.idleSince(now) > s.opts.IdleTimeout {
		delete(s.sessions, id)
		ok = false
	}
	s.mu.Unlock()

	if !ok {
		return nil, core.ErrSessionNotFound
	}
	sess.touch(now)
	return sess, nil
}

// Sweep drops every idle session and returns how many were removed.
func (s *Store) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sweepLocked()
}

// Len is the number of sessions currently held, idle or not.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

func (s *Store) sweepLocked() int {
	now := s.clock.Now()
	removed := 0
	for id, sess := range s.sessions {
		if sess.idleSince(now) > s.opts.IdleTimeout {
			delete(s.sessions, id)
			removed++
		}
	}
	return removed
}

func (s *Store) newLimiter() *rate.Limiter {
	if s.opts.ReportRate <= 0 {
		return nil
	}
	return rate.NewLimiter(rate.Limit(s.opts.ReportRate), s.opts.ReportBurst)
}
