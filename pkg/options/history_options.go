package options

import (
	"github.com/spf13/pflag"
)

var _ IOptions = (*HistoryOptions)(nil)

// HistoryOptions configures the local report history database.
type HistoryOptions struct {
	// DBPath is the SQLite file. Empty disables the history.
	DBPath string `json:"db-path" mapstructure:"db-path"`
}

func NewHistoryOptions() *HistoryOptions {
	return &HistoryOptions{
		DBPath: "cngcare.db",
	}
}

func (o *HistoryOptions) Validate() []error {
	return nil
}

func (o *HistoryOptions) AddFlags(fs *pflag.FlagSet, prefixes ...string) {
	fs.StringVar(&o.DBPath, "history.db-path", o.DBPath, "SQLite file recording generated reports (empty disables history).")
}
