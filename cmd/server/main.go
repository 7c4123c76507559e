// Package main provides the entry point for the yield visualization
// backend.
package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/princekumar828/visualization/api/rest"
	"github.com/princekumar828/visualization/internal/config"
	"github.com/princekumar828/visualization/internal/generator"
	"github.com/princekumar828/visualization/pkg/logger"
	"github.com/princekumar828/visualization/pkg/metrics"
)

const version = "1.0.0"

var (
	cfgFile string
	debug   bool
)

var rootCmd = &cobra.Command{
	Use:     "yieldviz",
	Short:   "Mock semiconductor yield data API",
	Long:    "yieldviz serves synthesized semiconductor yield datasets for chart performance testing, with per-stage timing metrics.",
	Version: version,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE:  runServe,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file path")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if debug {
		cfg.Logging.Level = "debug"
	}

	logger.Init(&logger.Config{
		Level:    cfg.Logging.Level,
		Format:   cfg.Logging.Format,
		Output:   cfg.Logging.Output,
		FilePath: cfg.Logging.FilePath,
	})
	defer logger.Sync()

	store := metrics.NewStore()
	server := rest.NewServer(store, &rest.Config{
		Address:      cfg.Server.Address,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		EnableCORS:   cfg.Server.EnableCORS,
		Defaults: generator.Params{
			Year:         cfg.Generator.DefaultYear,
			WeeksPerYear: cfg.Generator.DefaultWeeks,
			LotsPerWeek:  cfg.Generator.DefaultLotsPerWeek,
			WafersPerLot: cfg.Generator.DefaultWafersPerLot,
		},
	})

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logger.Info("shutting down", zap.String("signal", sig.String()))
		if err := server.ShutdownWithTimeout(10 * time.Second); err != nil {
			logger.Error("shutdown failed", zap.Error(err))
		}
	}()

	logger.Info("starting yield visualization backend",
		zap.String("address", cfg.Server.Address),
		zap.String("version", version))
	return server.Start()
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
