package main

import (
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/phanxgames/adboard/internal/config"
	"github.com/phanxgames/adboard/internal/ui"
)

var version = "0.3.0"

// globalFlags are shared by every subcommand.
type globalFlags struct {
	config string
	debug  bool
}

// configPath returns the --config value or the default location.
func (f *globalFlags) configPath() string {
	if f.config != "" {
		return f.config
	}
	return config.Path()
}

func (f *globalFlags) loadConfig() (*config.Config, error) {
	return config.Load(f.configPath())
}

func newLogger(w io.Writer, debug bool) *slog.Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func newRootCmd() *cobra.Command {
	flags := &globalFlags{}
	opts := &runOptions{}

	root := &cobra.Command{
		Use:   "adboard",
		Short: "A physics board of ad creatives",
		Long: ui.Brand.Sprint("adboard") + ": drag, throw and inspect ad creatives sized by CTR\n" +
			ui.Subtle.Sprint("Runs the board window by default; see `adboard simulate` for headless runs"),
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			slog.SetDefault(newLogger(cmd.ErrOrStderr(), flags.debug))
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return reportErr(cmd, runBoard(cmd, flags, opts))
		},
	}
	root.SetVersionTemplate("adboard {{ .Version }}\n")
	root.PersistentFlags().StringVar(&flags.config, "config", "", "Config file (default "+config.Path()+")")
	root.PersistentFlags().BoolVar(&flags.debug, "debug", false, "Debug logging and overlay")
	opts.bind(root)

	root.AddCommand(
		runCmd(flags),
		simulateCmd(flags),
		configCmd(flags),
	)
	return root
}

// reportErr prints err in the command's error style and passes it through.
func reportErr(cmd *cobra.Command, err error) error {
	if err != nil {
		ui.Bad.Fprintf(cmd.ErrOrStderr(), "adboard: %v\n", err)
	}
	return err
}
