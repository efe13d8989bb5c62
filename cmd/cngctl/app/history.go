package app

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/Afox1/cngcare/internal/cngcare/core/service"
	"github.com/Afox1/cngcare/internal/cngcare/history"
	"github.com/Afox1/cngcare/pkg/options"
)

func newHistoryCmd(c *cli) *cobra.Command {
	opts := options.NewHistoryOptions()
	var (
		vehicle string
		limit   int
	)
	cmd := &cobra.Command{
		Use:     "history",
		Aliases: []string{"ls"},
		Short:   "List reports recorded for a vehicle, newest first",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if vehicle == "" {
				return errors.New("--vehicle is required")
			}
			if opts.DBPath == "" {
				return errors.New("--history.db-path is required")
			}

			db, err := history.Open(opts.DBPath)
			if err != nil {
				return err
			}
			defer db.Close()

			svc := service.New(nil, nil, nil, nil, service.WithHistory(db))
			recs, err := svc.ListReports(cmd.Context(), vehicle, limit)
			if err != nil {
				return err
			}
			printHistory(c.out, recs)
			return nil
		},
	}
	cmd.Flags().StringVar(&vehicle, "vehicle", "", "Vehicle whose reports are listed.")
	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum number of reports to list.")
	opts.AddFlags(cmd.Flags())
	return cmd
}
