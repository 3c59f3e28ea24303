package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/vocadrill/internal/planapi"
)

func newPlanCommand() *cobra.Command {
	planCommand := &cobra.Command{
		Use:   "plan",
		Short: "Read study plans from the plan server",
	}

	planCommand.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List study plans",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			client, err := newPlanClient(cfg)
			if err != nil {
				return err
			}
			plans, err := client.ListPlans(cmd.Context())
			if err != nil {
				return fmt.Errorf("client.ListPlans() > %w", err)
			}
			return printPlans(cmd.OutOrStdout(), plans)
		},
	})

	planCommand.AddCommand(&cobra.Command{
		Use:   "progress <planId>",
		Short: "Show how many words of a plan are learned",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			planID, err := parsePlanID(args[0])
			if err != nil {
				return err
			}
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			client, err := newPlanClient(cfg)
			if err != nil {
				return err
			}
			progress, err := client.GetProgress(cmd.Context(), planID)
			if err != nil {
				return fmt.Errorf("client.GetProgress() > %w", err)
			}
			printProgress(cmd.OutOrStdout(), progress)
			return nil
		},
	})
	return planCommand
}

func printPlans(w io.Writer, plans []planapi.Plan) error {
	if len(plans) == 0 {
		_, err := fmt.Fprintln(w, "No plans.")
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "ID\tNAME\tBOOK\tDAILY WORDS")
	for _, plan := range plans {
		_, _ = fmt.Fprintf(tw, "%d\t%s\t%s\t%d\n", plan.ID, plan.Name, plan.BookName, plan.DailyWordCount)
	}
	return tw.Flush()
}

func printProgress(w io.Writer, progress planapi.Progress) {
	_, _ = fmt.Fprintf(w, "Plan %d: %d learned, %d reviewing, %d total\n",
		progress.PlanID, progress.LearnedWords, progress.ReviewingWords, progress.TotalWords)
}
