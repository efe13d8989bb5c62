package service

import (
	"k8s.io/utils/clock"

	"github.com/Afox1/cngcare/internal/cngcare/core"
	"github.com/Afox1/cngcare/internal/cngcare/core/session"
)

// Service implements the form use cases: the two checks, session state and
// report generation. It orchestrates calls between the evaluators and the
// adapters (ports).
type Service struct {
	sessions *session.Store
	renderer core.ReportRenderer
	sink     core.LogSink
	clock    clock.PassiveClock

	// Optional adapters; nil disables the side effect.
	archive  core.ReportArchive
	notifier core.ReportNotifier
	history  core.ReportHistory
}

// Option configures optional Service collaborators.
type Option func(*Service)

// WithArchive stores a copy of every generated report.
func WithArchive(a core.ReportArchive) Option {
	return func(s *Service) { s.archive = a }
}

// WithNotifier publishes an event for every generated report.
func WithNotifier(n core.ReportNotifier) Option {
	return func(s *Service) { s.notifier = n }
}

// WithHistory records every generated report locally.
func WithHistory(h core.ReportHistory) Option {
	return func(s *Service) { s.history = h }
}

// New creates a new instance of the cngcare core service.
// A nil clk uses the real clock.
func New(
	sessions *session.Store,
	renderer core.ReportRenderer,
	sink core.LogSink,
	clk clock.PassiveClock,
	opts ...Option,
) *Service {
	if clk == nil {
		clk = clock.RealClock{}
	}
	s := &Service{
		sessions: sessions,
		renderer: renderer,
		sink:     sink,
		clock:    clk,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// HistoryEnabled reports whether ListReports can serve requests.
func (s *Service) HistoryEnabled() bool {
	return s.history != nil
}
