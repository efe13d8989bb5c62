package app

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Afox1/cngcare/internal/cngcare/core"
	"github.com/Afox1/cngcare/internal/cngcare/core/model"
	"github.com/Afox1/cngcare/internal/cngcare/core/service"
	"github.com/Afox1/cngcare/internal/cngcare/history"
	"github.com/Afox1/cngcare/internal/cngcare/report"
	"github.com/Afox1/cngcare/internal/cngcare/sheets"
	"github.com/Afox1/cngcare/pkg/log"
	"github.com/Afox1/cngcare/pkg/options"
)

type reportOptions struct {
	maintenance maintenanceFlags
	risk        riskFlags
	output      string
	compress    bool
	sheets      *options.SheetsOptions
	history     *options.HistoryOptions
}

func newReportCmd(c *cli) *cobra.Command {
	o := &reportOptions{
		output:   model.ReportFilename,
		compress: true,
		sheets:   options.NewSheetsOptions(),
		history:  &options.HistoryOptions{},
	}
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Run both checks, write the PDF report and log it",
		Long: `Run the maintenance check and the safety questionnaire, write the PDF
report and append a row to the maintenance log spreadsheet.

A failed log append is reported but does not prevent the report from
being written.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := errorsOf(o.sheets.Validate()); err != nil {
				return err
			}
			return c.runReport(cmd.Context(), o)
		},
	}

	fs := cmd.Flags()
	o.maintenance.addFlags(fs)
	o.risk.addFlags(fs)
	fs.StringVarP(&o.output, "output", "o", o.output, "File the PDF report is written to.")
	fs.BoolVar(&o.compress, "compress", o.compress, "Compress the PDF content streams.")
	o.sheets.AddFlags(fs)
	o.history.AddFlags(fs)
	return cmd
}

func (c *cli) runReport(ctx context.Context, o *reportOptions) error {
	in, err := o.maintenance.input()
	if err != nil {
		return err
	}

	var sink core.LogSink
	sheetsSink, err := sheets.New(ctx, o.sheets)
	if err != nil {
		log.Warn("Spreadsheet logging unavailable", "error", err)
		sink = sheets.Unavailable(err)
	} else {
		sink = sheetsSink
	}

	var opts []service.Option
	if o.history.DBPath != "" {
		db, err := history.Open(o.history.DBPath)
		if err != nil {
			return err
		}
		defer db.Close()
		opts = append(opts, service.WithHistory(db))
	}

	svc := service.New(nil, report.New(report.WithCompression(o.compress)), sink, nil, opts...)

	m, err := svc.CheckMaintenance(ctx, in)
	if err != nil {
		return err
	}
	r, err := svc.AssessRisk(ctx, o.risk.RiskAnswers)
	if err != nil {
		return err
	}

	out, err := svc.BuildReport(ctx, m, r)
	if err != nil {
		return err
	}
	if err := os.WriteFile(o.output, out.Report.Content, 0o644); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	printMaintenance(c.out, m)
	printRisk(c.out, r)
	printOutcome(c.out, o.output, out)
	return nil
}
