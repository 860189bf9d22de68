package main

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"github.com/phanxgames/adboard/internal/catalog"
	"github.com/phanxgames/adboard/internal/config"
	"github.com/phanxgames/adboard/internal/ui"
)

func configCmd(flags *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect and create the configuration file",
	}
	cmd.AddCommand(
		configShowCmd(flags),
		configInitCmd(flags),
		configPathCmd(flags),
		configCatalogCmd(flags),
	)
	return cmd
}

func configShowCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration as TOML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.loadConfig()
			if err != nil {
				return reportErr(cmd, err)
			}
			return toml.NewEncoder(cmd.OutOrStdout()).Encode(cfg)
		},
	}
}

func configInitCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Write the default configuration if none exists",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := flags.configPath()
			_, statErr := os.Stat(path)
			if err := config.EnsureExists(path); err != nil {
				return reportErr(cmd, fmt.Errorf("init config: %w", err))
			}
			w := cmd.OutOrStdout()
			if statErr == nil {
				ui.Warn.Fprintf(w, "  config already exists: %s\n", path)
				return nil
			}
			ui.Good.Fprintf(w, "  wrote %s\n", path)
			return nil
		},
	}
}

func configPathCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the configuration file path",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), flags.configPath())
		},
	}
}

func configCatalogCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "catalog",
		Short: "Print the ad catalog as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.loadConfig()
			if err != nil {
				return reportErr(cmd, err)
			}
			cat, err := catalog.Load(cfg.Layout.Catalog)
			if err != nil {
				return reportErr(cmd, err)
			}
			data, err := cat.Marshal()
			if err != nil {
				return reportErr(cmd, err)
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
}
