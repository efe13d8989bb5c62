package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/looplab/fsm"
	"golang.org/x/time/rate"

	"github.com/Afox1/cngcare/internal/cngcare/core/model"
	fsmutil "github.com/Afox1/cngcare/internal/pkg/util/fsm"
)

// Session is the server-side form state of one user. It keeps the latest
// maintenance check and risk assessment so a later report action can use
// them without recomputation. Stored checks are never mutated.
type Session struct {
	id        string
	createdAt time.Time

	mu          sync.Mutex
	phase       *fsm.FSM
	maintenance *model.MaintenanceCheck
	risk        *model.RiskCheck
	lastSeen    time.Time
	limiter     *rate.Limiter
}

// Snapshot is a consistent, read-only view of a session.
type Snapshot struct {
	ID          string                  `json:"id"`
	Phase       Phase                   `json:"phase"`
	CreatedAt   time.Time               `json:"createdAt"`
	LastSeen    time.Time               `json:"lastSeen"`
	Maintenance *model.MaintenanceCheck `json:"maintenance,omitempty"`
	Risk        *model.RiskCheck        `json:"risk,omitempty"`
}

// Ready reports whether both checks are present.
func (s Snapshot) Ready() bool {
	return s.Maintenance != nil && s.Risk != nil
}

func newSession(id string, now time.Time, limiter *rate.Limiter) *Session {
	return &Session{
		id:        id,
		createdAt: now,
		lastSeen:  now,
		phase:     newPhaseMachine(id),
		limiter:   limiter,
	}
}

func (s *Session) ID() string { return s.id }

// RecordMaintenance replaces the latest maintenance check.
func (s *Session) RecordMaintenance(ctx context.Context, check model.MaintenanceCheck) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.phase.Event(ctx, EventCheckMaintenance); fsmutil.IsRealError(err) {
		return fmt.Errorf("failed to record maintenance check: %w", err)
	}
	s.maintenance = &check
	return nil
}

// RecordRisk replaces the latest risk assessment.
func (s *Session) RecordRisk(ctx context.Context, check model.RiskCheck) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.phase.Event(ctx, EventAssessRisk); fsmutil.IsRealError(err) {
		return fmt.Errorf("failed to record risk assessment: %w", err)
	}
	s.risk = &check
	return nil
}

// Snapshot returns the current state of the session.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	return Snapshot{
		ID:          s.id,
		Phase:       Phase(s.phase.Current()),
		CreatedAt:   s.createdAt,
		LastSeen:    s.lastSeen,
		Maintenance: s.maintenance,
		Risk:        s.risk,
	}
}

// AllowReport consumes one report token at now. Sessions without a limiter
// always allow.
func (s *Session) AllowReport(now time.Time) bool {
	if s.limiter == nil {
		return true
	}
	return s.limiter.AllowN(now, 1)
}

func (s *Session) touch(now time.Time) {
	s.mu.Lock()
	s.lastSeen = now
	s.mu.Unlock()
}

func (s *Session) idleSince(now time.Time) time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return now.Sub(s.lastSeen)
}
