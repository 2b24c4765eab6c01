package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"sqa-dashboard/internal/checklist"
	"sqa-dashboard/internal/domain"
)

var checklistAnswers string

var checklistCmd = &cobra.Command{
	Use:   "checklist",
	Short: "Score the ISO 9001 and CMMI checklists only",
	RunE:  runChecklist,
}

func init() {
	checklistCmd.Flags().StringVar(&checklistAnswers, "answers-from", answersStdin, "Checklist answers: config, prompt, stdin")
}

func runChecklist(cmd *cobra.Command, args []string) error {
	collector, err := buildCollector(checklistAnswers, cmd.InOrStdin(), cmd.OutOrStdout())
	if err != nil {
		return err
	}

	defs := []checklist.Definition{
		cfg.Checklists.Compliance.Definition(),
		cfg.Checklists.Maturity.Definition(),
	}
	results := make([]domain.ComplianceResult, len(defs))
	for i, def := range defs {
		responses, err := collector.Collect(cmd.Context(), def.Title, def.Items)
		if err != nil {
			return err
		}
		results[i], err = def.Score(responses)
		if err != nil {
			return err
		}
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "\nISO/CMMI Checklist Evaluation Summary:")
	for _, line := range checklist.Summarize(results[0], results[1]).Lines() {
		fmt.Fprintln(out, line)
	}
	return nil
}
