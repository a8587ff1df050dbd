package main

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"consultancy-workers/pkg/registry"

	"github.com/spf13/cobra"
)

var registryPath string

var registryCmd = &cobra.Command{
	Use:   "registry",
	Short: "Maintain the activity registry used by process modelers",
}

var registrySyncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Rewrite the registry from the worker catalog and current config",
	Long: `Writes one activity per worker task type with the timeout, retries and
enablement from the workers section of the config. Activities no longer in the
catalog are kept and marked retired.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		existing, err := registry.LoadRegistry(registryPath)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return err
		}
		reg := registry.Merge(existing, registry.Build(cfg, cfg.App.Version, time.Now()))
		if err := registry.Validate(reg); err != nil {
			return err
		}
		if err := registry.Save(reg, registryPath); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "wrote %d activities to %s\n", len(reg.Activities), registryPath)
		return nil
	},
}

var registryValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the registry file for missing fields and duplicate ids",
	RunE: func(cmd *cobra.Command, _ []string) error {
		reg, err := registry.LoadRegistry(registryPath)
		if err != nil {
			return fmt.Errorf("failed to load registry: %w", err)
		}
		if err := registry.Validate(reg); err != nil {
			return fmt.Errorf("registry validation failed: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "registry validation passed, %d activities\n", len(reg.Activities))
		return nil
	},
}

func init() {
	registryCmd.PersistentFlags().StringVar(&registryPath, "path", registry.DefaultPath, "path to the registry file")
	registryCmd.AddCommand(registrySyncCmd, registryValidateCmd)
}
