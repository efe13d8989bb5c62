package app

import (
	"github.com/spf13/cobra"

	"github.com/Afox1/cngcare/internal/cngcare/core/service"
)

func newEvaluateCmd(c *cli) *cobra.Command {
	f := &maintenanceFlags{}
	cmd := &cobra.Command{
		Use:     "evaluate",
		Aliases: []string{"eval"},
		Short:   "Check whether the CNG kit is due for service",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			in, err := f.input()
			if err != nil {
				return err
			}
			check, err := statelessService().CheckMaintenance(cmd.Context(), in)
			if err != nil {
				return err
			}
			printMaintenance(c.out, check)
			return nil
		},
	}
	f.addFlags(cmd.Flags())
	return cmd
}

func newAssessCmd(c *cli) *cobra.Command {
	f := &riskFlags{}
	cmd := &cobra.Command{
		Use:   "assess",
		Short: "Score the safety questionnaire",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			check, err := statelessService().AssessRisk(cmd.Context(), f.RiskAnswers)
			if err != nil {
				return err
			}
			printRisk(c.out, check)
			return nil
		},
	}
	f.addFlags(cmd.Flags())
	return cmd
}

// statelessService serves the two checks, which need no adapters.
func statelessService() *service.Service {
	return service.New(nil, nil, nil, nil)
}
