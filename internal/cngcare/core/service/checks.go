package service

import (
	"context"

	"github.com/Afox1/cngcare/internal/cngcare/core"
	"github.com/Afox1/cngcare/internal/cngcare/core/evaluator"
	"github.com/Afox1/cngcare/internal/cngcare/core/model"
	"github.com/Afox1/cngcare/internal/pkg/metrics"
)

// CheckMaintenance validates in and evaluates it against today's date.
func (s *Service) CheckMaintenance(ctx context.Context, in model.MaintenanceInput) (*model.MaintenanceCheck, error) {
	if err := core.Invalid(in.Validate()); err != nil {
		return nil, err
	}

	now := s.clock.Now()
	check := &model.MaintenanceCheck{
		Input:     in,
		Result:    evaluator.EvaluateMaintenance(in, now),
		CheckedAt: now,
	}
	metrics.MaintenanceChecksTotal.WithLabelValues(string(check.Result.Status)).Inc()
	return check, nil
}

// AssessRisk validates the answers and scores them.
func (s *Service) AssessRisk(ctx context.Context, a model.RiskAnswers) (*model.RiskCheck, error) {
	if err := core.Invalid(a.Validate()); err != nil {
		return nil, err
	}

	check := &model.RiskCheck{
		Answers:    a,
		Result:     evaluator.AssessRisk(a),
		AssessedAt: s.clock.Now(),
	}
	metrics.RiskAssessmentsTotal.WithLabelValues(string(check.Result.Tier)).Inc()
	return check, nil
}
