// cmd/worker-manager/main.go
package main

import (
	"fmt"
	"os"

	"consultancy-workers/internal/common/config"
	"consultancy-workers/internal/common/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "worker-manager",
	Short: "Zeebe job workers for the consultancy site backend",
	Long: `Runs the ROI, contact and case study job workers against a Zeebe gateway,
together with the ops server (health, readiness, metrics).

Run without a subcommand to start serving.`,
	SilenceUsage: true,
	RunE:         runServe,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Connect to Zeebe and the stores, then run every enabled worker",
	RunE:  runServe,
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply the database schema and create the case study index",
	RunE:  runMigrate,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default: configs/config.yaml, then APP_ENVIRONMENT overlay)")

	rootCmd.AddCommand(serveCmd, migrateCmd, registryCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig reads the config file named by --config, or the default
// search path when the flag is empty.
func loadConfig() (*config.Config, error) {
	if configPath != "" {
		return config.LoadFromFile(configPath)
	}
	return config.Load()
}

// bootstrap loads config and builds the process logger from it.
func bootstrap() (*config.Config, *zap.Logger, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, fmt.Errorf("config load failed: %w", err)
	}
	zapLog, err := logger.New(cfg.Logging.Level, cfg.Logging.Format, cfg.Logging.Output)
	if err != nil {
		return nil, nil, fmt.Errorf("logger init failed: %w", err)
	}
	zapLog = zapLog.With(zap.String("service", cfg.App.Name), zap.String("environment", cfg.App.Environment))
	return cfg, zapLog, nil
}
