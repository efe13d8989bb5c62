package service

import (
	"context"
	"fmt"

	"github.com/Afox1/cngcare/internal/cngcare/core/model"
	"github.com/Afox1/cngcare/internal/cngcare/core/session"
	"github.com/Afox1/cngcare/internal/pkg/metrics"
	"github.com/Afox1/cngcare/pkg/log"
)

// CreateSession starts an empty form session.
func (s *Service) CreateSession(ctx context.Context) (session.Snapshot, error) {
	sess, err := s.sessions.Create()
	if err != nil {
		return session.Snapshot{}, err
	}
	metrics.ActiveSessions.Set(float64(s.sessions.Len()))
	log.FromContext(ctx).V(1).Info("Session created", "session", sess.ID())
	return sess.Snapshot(), nil
}

// GetSession returns the current form state.
func (s *Service) GetSession(ctx context.Context, id string) (session.Snapshot, error) {
	sess, err := s.sessions.Get(id)
	if err != nil {
		return session.Snapshot{}, err
	}
	return sess.Snapshot(), nil
}

// CheckSessionMaintenance runs a maintenance check and keeps it as the
// session's latest result.
func (s *Service) CheckSessionMaintenance(ctx context.Context, id string, in model.MaintenanceInput) (*model.MaintenanceCheck, error) {
	sess, err := s.sessions.Get(id)
	if err != nil {
		return nil, err
	}

	check, err := s.CheckMaintenance(ctx, in)
	if err != nil {
		return nil, err
	}

	if err := sess.RecordMaintenance(ctx, *check); err != nil {
		return nil, fmt.Errorf("session %s: %w", id, err)
	}
	return check, nil
}

// AssessSessionRisk runs a risk assessment and keeps it as the session's
// latest result.
func (s *Service) AssessSessionRisk(ctx context.Context, id string, a model.RiskAnswers) (*model.RiskCheck, error) {
	sess, err := s.sessions.Get(id)
	if err != nil {
		return nil, err
	}

	check, err := s.AssessRisk(ctx, a)
	if err != nil {
		return nil, err
	}

	if err := sess.RecordRisk(ctx, *check); err != nil {
		return nil, fmt.Errorf("session %s: %w", id, err)
	}
	return check, nil
}

// SweepSessions drops idle sessions.
func (s *Service) SweepSessions(ctx context.Context) int {
	removed := s.sessions.Sweep()
	metrics.ActiveSessions.Set(float64(s.sessions.Len()))
	if removed > 0 {
		log.FromContext(ctx).V(1).Info("Idle sessions swept", "removed", removed)
	}
	return removed
}
