package main

import (
	"fmt"
	"regexp"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/alexshd/ubench/internal/suite"
	"github.com/alexshd/ubench/report"
)

func newListCmd() *cobra.Command {
	var pattern string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the built-in routines and their arguments",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			re, err := regexp.Compile(pattern)
			if err != nil {
				return fmt.Errorf("--run: %w", err)
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tARGS\tDESCRIPTION")
			for _, r := range suite.Routines() {
				if !re.MatchString(r.Name) {
					continue
				}
				args := make([]string, len(r.Args))
				for i, a := range r.Args {
					args[i] = report.FormatArg(a)
				}
				fmt.Fprintf(w, "%s\t%s\t%s\n", r.Name, strings.Join(args, ","), r.Description)
			}
			return w.Flush()
		},
	}

	cmd.Flags().StringVar(&pattern, "run", "", "only list routines whose name matches this regular expression")
	return cmd
}
