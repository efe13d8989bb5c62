// Package app implements cngctl, the command-line front end of the
// maintenance and safety checks.
package app

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/Afox1/cngcare/pkg/log"
)

type cli struct {
	out     io.Writer
	logOpts *log.Options
}

// NewCommand builds the cngctl root command writing results to out.
func NewCommand(out io.Writer) *cobra.Command {
	c := &cli{out: out, logOpts: log.NewOptions()}
	c.logOpts.Level = "warn"

	cmd := &cobra.Command{
		Use:   "cngctl",
		Short: "Evaluate CNG kit maintenance and safety from the command line",
		Long: `cngctl runs the same checks as the cngcare form.

Examples:
  cngctl evaluate --vehicle ABC-123 --last-service-km 0 --current-km 5000 --last-service-date 2026-09-19
  cngctl assess --hissing --cabin-smell 4 --mileage-drop
  cngctl report --vehicle ABC-123 --current-km 5000 --last-service-date 2026-09-19 --hissing -o CNG_Report.pdf
  cngctl history --vehicle ABC-123`,
		SilenceUsage: true,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			if err := errorsOf(c.logOpts.Validate()); err != nil {
				return err
			}
			log.Init(c.logOpts)
			return nil
		},
	}
	cmd.SetOut(out)
	c.logOpts.AddFlags(cmd.PersistentFlags())

	cmd.AddCommand(newEvaluateCmd(c))
	cmd.AddCommand(newAssessCmd(c))
	cmd.AddCommand(newReportCmd(c))
	cmd.AddCommand(newHistoryCmd(c))
	return cmd
}
