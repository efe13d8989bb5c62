package options

import (
	"errors"
	"time"

	"github.com/spf13/pflag"
)

var _ IOptions = (*SessionOptions)(nil)

// SessionOptions bounds the in-memory form sessions.
type SessionOptions struct {
	IdleTimeout time.Duration `json:"idle-timeout" mapstructure:"idle-timeout"`
	MaxSessions int           `json:"max-sessions" mapstructure:"max-sessions"`

	// SweepInterval is how often idle sessions are dropped in the
	// background. Zero leaves expiry to access time only.
	SweepInterval time.Duration `json:"sweep-interval" mapstructure:"sweep-interval"`

	// ReportRate and ReportBurst limit report generation per session.
	// A zero rate disables the limit.
	ReportRate  float64 `json:"report-rate" mapstructure:"report-rate"`
	ReportBurst int     `json:"report-burst" mapstructure:"report-burst"`
}

func NewSessionOptions() *SessionOptions {
	return &SessionOptions{
		IdleTimeout:   30 * time.Minute,
		MaxSessions:   10000,
		SweepInterval: 5 * time.Minute,
		ReportRate:    0.2,
		ReportBurst:   2,
	}
}

func (o *SessionOptions) Validate() []error {
	errs := []error{}
	if o.IdleTimeout <= 0 {
		errs = append(errs, errors.New("--session.idle-timeout must be positive"))
	}
	if o.MaxSessions <= 0 {
		errs = append(errs, errors.New("--session.max-sessions must be positive"))
	}
	if o.SweepInterval < 0 {
		errs = append(errs, errors.New("--session.sweep-interval must not be negative"))
	}
	if o.ReportRate < 0 || (o.ReportRate > 0 && o.ReportBurst < 1) {
		errs = append(errs, errors.New("--session.report-rate must be >= 0 and --session.report-burst >= 1 when limited"))
	}
	return errs
}

func (o *SessionOptions) AddFlags(fs *pflag.FlagSet, prefixes ...string) {
	fs.DurationVar(&o.IdleTimeout, "session.idle-timeout", o.IdleTimeout, "Idle time after which a form session is discarded.")
	fs.IntVar(&o.MaxSessions, "session.max-sessions", o.MaxSessions, "Maximum number of concurrent form sessions.")
	fs.DurationVar(&o.SweepInterval, "session.sweep-interval", o.SweepInterval, "Interval of the background sweep of idle sessions (0 disables it).")
	fs.Float64Var(&o.ReportRate, "session.report-rate", o.ReportRate, "Reports per second allowed per session (0 disables the limit).")
	fs.IntVar(&o.ReportBurst, "session.report-burst", o.ReportBurst, "Burst of reports allowed per session.")
}
