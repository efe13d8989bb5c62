package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Afox1/cngcare/internal/cngcare/core"
	"github.com/Afox1/cngcare/internal/cngcare/core/model"
	"github.com/Afox1/cngcare/internal/pkg/metrics"
	"github.com/Afox1/cngcare/pkg/log"
)

const (
	defaultHistoryLimit = 50
	maxHistoryLimit     = 500
)

// GenerateReport renders the report of session id from its latest results
// and runs every configured side effect.
func (s *Service) GenerateReport(ctx context.Context, id string) (*model.ReportOutcome, error) {
	sess, err := s.sessions.Get(id)
	if err != nil {
		return nil, err
	}

	snap := sess.Snapshot()
	if err := checkPrecondition(snap.Maintenance, snap.Risk); err != nil {
		metrics.ReportsTotal.WithLabelValues("precondition_failed").Inc()
		return nil, err
	}

	if !sess.AllowReport(s.clock.Now()) {
		metrics.ReportsTotal.WithLabelValues("rate_limited").Inc()
		return nil, core.ErrRateLimited
	}

	return s.BuildReport(ctx, snap.Maintenance, snap.Risk)
}

// BuildReport renders a report from m and r, appends it to the remote log
// and runs the optional archive, notify and history side effects. Each side
// effect fails independently; the rendered report is returned regardless.
func (s *Service) BuildReport(ctx context.Context, m *model.MaintenanceCheck, r *model.RiskCheck) (*model.ReportOutcome, error) {
	if err := checkPrecondition(m, r); err != nil {
		metrics.ReportsTotal.WithLabelValues("precondition_failed").Inc()
		return nil, err
	}

	now := s.clock.Now()
	content := model.NewReportContent(*m, *r, now)
	logger := log.FromContext(ctx).WithValues("vehicle", content.Vehicle)

	pdf, err := s.renderer.Render(content)
	if err != nil {
		metrics.ReportsTotal.WithLabelValues("render_failed").Inc()
		return nil, fmt.Errorf("failed to render report: %w", err)
	}

	out := &model.ReportOutcome{
		Report: model.Report{
			Filename:    model.ReportFilename,
			Content:     pdf,
			Vehicle:     content.Vehicle,
			GeneratedAt: now,
		},
	}

	row := model.NewLogRow(now, content, *m, *r)
	out.Log = s.runEffect(ctx, metrics.EffectLog, func() (string, error) {
		return "", s.sink.Append(ctx, row)
	})

	var archiveURL string
	if s.archive != nil {
		key := model.ReportObjectKey(content.Vehicle, now)
		eff := s.runEffect(ctx, metrics.EffectArchive, func() (string, error) {
			return s.archive.Store(ctx, key, pdf)
		})
		archiveURL = eff.URL
		out.Archive = &eff
	}

	if s.notifier != nil {
		event := &model.ReportEvent{
			Vehicle:           content.Vehicle,
			GeneratedAt:       now,
			MaintenanceStatus: m.Result.Status,
			PredictedKm:       m.Result.PredictedNextServiceKm,
			RiskTier:          r.Result.Tier,
			RiskScore:         r.Result.Score,
			ArchiveURL:        archiveURL,
		}
		eff := s.runEffect(ctx, metrics.EffectNotify, func() (string, error) {
			return "", s.notifier.Notify(ctx, event)
		})
		out.Notify = &eff
	}

	if s.history != nil {
		rec := &model.ReportRecord{
			Vehicle:            content.Vehicle,
			GeneratedAt:        now,
			MaintenanceStatus:  m.Result.Status,
			MaintenanceMessage: m.Result.Message,
			PredictedKm:        m.Result.PredictedNextServiceKm,
			RiskTier:           r.Result.Tier,
			RiskScore:          r.Result.Score,
			RiskMessage:        r.Result.Message,
			Logged:             out.Log.OK,
			ArchiveURL:         archiveURL,
		}
		eff := s.runEffect(ctx, metrics.EffectHistory, func() (string, error) {
			_, err := s.history.Record(ctx, rec)
			return "", err
		})
		out.History = &eff
	}

	metrics.ReportsTotal.WithLabelValues("generated").Inc()
	logger.Info("Report generated", "bytes", len(pdf), "logged", out.Log.OK)
	return out, nil
}

// ListReports returns the most recent reports of vehicle, newest first.
// A non-positive limit uses the default.
func (s *Service) ListReports(ctx context.Context, vehicle string, limit int) ([]model.ReportRecord, error) {
	if s.history == nil {
		return nil, core.ErrHistoryDisabled
	}

	switch {
	case limit <= 0:
		limit = defaultHistoryLimit
	case limit > maxHistoryLimit:
		limit = maxHistoryLimit
	}

	records, err := s.history.ListByVehicle(ctx, vehicle, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list reports: %w", err)
	}
	return records, nil
}

func (s *Service) runEffect(ctx context.Context, effect string, fn func() (string, error)) model.SideEffect {
	start := time.Now()
	url, err := fn()
	metrics.ObserveSideEffect(effect, time.Since(start).Seconds(), err)

	if err != nil {
		log.FromContext(ctx).Error(err, "Report side effect failed", "effect", effect)
		return model.Failed(err)
	}
	return model.SideEffect{OK: true, URL: url}
}

func checkPrecondition(m *model.MaintenanceCheck, r *model.RiskCheck) error {
	if m == nil || r == nil || strings.TrimSpace(m.Input.Vehicle) == "" {
		return core.ErrPreconditionFailed
	}
	return nil
}
