package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexshd/ubench/report"
)

func newCompareCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "compare [old-label new-label]",
		Short: "Compare two saved runs",
		Long: `Compares two runs from the --history file: the latest run carrying each
label, or the last two runs when no labels are given.`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 0 && len(args) != 2 {
				return fmt.Errorf("want zero or two labels, got %d", len(args))
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if a.settings.History == "" {
				return errors.New("no history file; set --history or UBENCH_HISTORY")
			}
			store, err := newStoreFunc(a.settings.History)
			if err != nil {
				return err
			}
			runs, err := store.LoadAll()
			if err != nil {
				return err
			}

			prev, curr, err := pickRuns(runs, args)
			if err != nil {
				return err
			}
			if prev.Unit != curr.Unit {
				return fmt.Errorf("runs use different units: %s vs %s", prev.Unit, curr.Unit)
			}
			return report.WriteComparisons(cmd.OutOrStdout(), report.Compare(prev, curr), curr.Unit)
		},
	}
}

func pickRuns(runs []report.Run, labels []string) (prev, curr report.Run, err error) {
	if len(labels) == 0 {
		if len(runs) < 2 {
			return prev, curr, fmt.Errorf("need two saved runs, have %d", len(runs))
		}
		return runs[len(runs)-2], runs[len(runs)-1], nil
	}

	find := func(label string) (report.Run, error) {
		for i := len(runs) - 1; i >= 0; i-- {
			if runs[i].Label == label {
				return runs[i], nil
			}
		}
		return report.Run{}, fmt.Errorf("no run labelled %q", label)
	}

	if prev, err = find(labels[0]); err != nil {
		return prev, curr, err
	}
	curr, err = find(labels[1])
	return prev, curr, err
}
