package main

import (
	"encoding/json"
	"fmt"
	"io"
	"regexp"
	"runtime"
	"time"

	"github.com/spf13/cobra"

	"github.com/alexshd/ubench"
	"github.com/alexshd/ubench/internal/config"
	"github.com/alexshd/ubench/internal/suite"
	"github.com/alexshd/ubench/report"
)

// newStoreFunc allows tests to replace the history store.
var newStoreFunc = func(path string) (report.Store, error) { return report.NewFileStore(path) }

func newRunCmd(a *app) *cobra.Command {
	var pattern string

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Measure the built-in routines",
		Long: `Measures every built-in routine (or those matching --run) at its default
arguments and prints the results. With --history the run is saved and
compared against the previous one; with --metrics-file the results are
also written as a Prometheus textfile.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var re *regexp.Regexp
			if pattern != "" {
				var err error
				if re, err = regexp.Compile(pattern); err != nil {
					return fmt.Errorf("--run: %w", err)
				}
			}
			return a.run(cmd.OutOrStdout(), re)
		},
	}

	f := cmd.Flags()
	f.StringVar(&pattern, "run", "", "only run routines whose name matches this regular expression")
	f.Int("iteration", 10000, "total loop iterations per sweep")
	f.Int("step", 20, "sweep granularity")
	f.Bool("warmup", true, "warm up each argument until the CV settles")
	f.Int("cpu", -1, "pin the measuring thread to this CPU (Linux)")
	f.String("format", config.FormatMarkdown, "output format: markdown, benchfmt or json")
	f.String("label", "", "label stored with the run, e.g. a commit hash")
	f.String("metrics-file", "", "write Prometheus gauges to this textfile")
	f.Float64("threshold", 10, "mean increase in percent reported as a regression")

	bindFlags(a.v, f, map[string]string{
		config.KeyIteration:   "iteration",
		config.KeyStep:        "step",
		config.KeyWarmup:      "warmup",
		config.KeyCPU:         "cpu",
		config.KeyFormat:      "format",
		config.KeyLabel:       "label",
		config.KeyMetricsFile: "metrics-file",
		config.KeyThreshold:   "threshold",
	})

	return cmd
}

func (a *app) run(out io.Writer, re *regexp.Regexp) error {
	s := a.settings

	reg := ubench.NewRegistry(ubench.WithLogger(a.logger), ubench.WithCPU(s.CPU))
	err := suite.Register(reg, func(c ubench.Config) ubench.Config {
		return c.WithIteration(s.Iteration).WithStep(s.Step).WithWarmup(s.Warmup)
	})
	if err != nil {
		return err
	}

	a.logger.Info("measuring", "iteration", s.Iteration, "step", s.Step, "warmup", s.Warmup, "unit", reg.Unit())
	entries, runErr := reg.RunMatching(re)

	current := report.Run{
		Timestamp: time.Now().UTC(),
		Label:     s.Label,
		Unit:      reg.Unit(),
		Entries:   entries,
	}

	if err := writeEntries(out, s.Format, current); err != nil {
		return err
	}

	if s.MetricsFile != "" {
		exp := report.NewExporter()
		exp.Observe(entries, current.Unit)
		if err := exp.WriteTextfile(s.MetricsFile); err != nil {
			return fmt.Errorf("write metrics: %w", err)
		}
		a.logger.Debug("metrics written", "path", s.MetricsFile)
	}

	if s.History != "" {
		if err := a.record(out, current); err != nil {
			return err
		}
	}

	return runErr
}

func writeEntries(out io.Writer, format string, run report.Run) error {
	switch format {
	case config.FormatBenchfmt:
		labels := map[string]string{
			"goos":   runtime.GOOS,
			"goarch": runtime.GOARCH,
			"unit":   run.Unit,
		}
		if run.Label != "" {
			labels["label"] = run.Label
		}
		return report.WriteBenchfmt(out, run.Entries, run.Unit, labels)
	case config.FormatJSON:
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(run)
	default:
		return report.Markdown(out, run.Entries, run.Unit)
	}
}

// record compares run against the latest stored run, then saves it.
func (a *app) record(out io.Writer, run report.Run) error {
	store, err := newStoreFunc(a.settings.History)
	if err != nil {
		return err
	}

	prev, err := store.LoadLatest()
	if err != nil {
		return fmt.Errorf("load history: %w", err)
	}

	if prev != nil {
		if err := a.reportComparison(out, *prev, run); err != nil {
			return err
		}
	}

	if err := store.Save(run); err != nil {
		return fmt.Errorf("save history: %w", err)
	}
	fmt.Fprintf(out, "\nResults saved to %s\n", a.settings.History)
	return nil
}

func (a *app) reportComparison(out io.Writer, prev, curr report.Run) error {
	if prev.Unit != curr.Unit {
		a.logger.Warn("previous run used a different unit, skipping comparison", "prev", prev.Unit, "curr", curr.Unit)
		return nil
	}

	comps := report.Compare(prev, curr)
	if len(comps) == 0 {
		return nil
	}

	fmt.Fprintf(out, "\nCompared with %s %s\n\n", prev.Timestamp.Format(time.RFC3339), prev.Label)
	if err := report.WriteComparisons(out, comps, curr.Unit); err != nil {
		return err
	}

	for _, c := range comps {
		if c.Regressed(a.settings.Threshold) {
			a.logger.Warn("regression", "benchmark", c.Name, "arg", c.Arg, "delta_pct", c.MeanDiff)
		}
	}
	return nil
}
