package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/alexshd/ubench/internal/config"
	"github.com/alexshd/ubench/internal/logging"
)

var exit = os.Exit

// app carries what every subcommand needs after flags are parsed.
type app struct {
	v        *viper.Viper
	cfgFile  string
	settings config.Settings
	logger   *slog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{v: config.New()}

	root := &cobra.Command{
		Use:   "ubench",
		Short: "Micro-benchmark short routines with the CPU cycle counter",
		Long: `ubench measures the per-call cost of short routines with a fenced
hardware counter, subtracting the cost of an empty loop measured right
before every sample. Results are reported as mean, median, population
standard deviation and coefficient of variation per (routine, argument).`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.load(cmd.ErrOrStderr())
		},
	}

	root.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file (default ./ubench.yaml)")
	root.PersistentFlags().String("log-level", "info", "debug, info, warn or error")
	root.PersistentFlags().String("history", "", "JSON file runs are saved to and compared against")
	bindFlags(a.v, root.PersistentFlags(), map[string]string{
		config.KeyLogLevel: "log-level",
		config.KeyHistory:  "history",
	})

	root.AddCommand(newRunCmd(a), newListCmd(), newCompareCmd(a))
	return root
}

// bindFlags binds each config key to the named flag of fs.
func bindFlags(v *viper.Viper, fs *pflag.FlagSet, keys map[string]string) {
	for key, name := range keys {
		if err := v.BindPFlag(key, fs.Lookup(name)); err != nil {
			panic(fmt.Sprintf("bind flag %s: %v", name, err))
		}
	}
}

func (a *app) load(stderr io.Writer) error {
	s, err := config.Load(a.v, a.cfgFile)
	if err != nil {
		return err
	}
	level, err := logging.ParseLevel(s.LogLevel)
	if err != nil {
		return err
	}

	a.settings = s
	a.logger = logging.New(stderr, level)
	return nil
}

// Execute runs the root command and exits non-zero on error.
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		exit(1)
	}
}
