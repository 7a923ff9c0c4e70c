package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/NivBraz/funcbox/internal/app"
	"github.com/NivBraz/funcbox/internal/config"
	"github.com/NivBraz/funcbox/internal/logging"
)

func main() {
	configPath := flag.String("config", "", "path to config.yaml (defaults are used when empty)")
	verbose := flag.Bool("verbose", false, "enable debug logging")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger, err := logging.New(cfg.Logging.Level, cfg.Logging.Development, *verbose)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	// Positional arguments take precedence over the sources file
	sources := flag.Args()
	if len(sources) == 0 {
		sources = cfg.Sources.List
	}
	if len(sources) == 0 {
		logger.Fatal("no sources: pass files or URLs as arguments or set sources.file in the config")
	}

	// Create context that listens for the interrupt signal from the OS
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	application, err := app.New(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("failed to initialize application", zap.Error(err))
	}

	logger.Info("counting words", zap.Int("sources", len(sources)))
	results, err := application.Run(ctx, sources)
	if err != nil {
		logger.Warn("errors occurred during the run", zap.Error(err))
	}
	if results == nil {
		os.Exit(1)
	}

	var output []byte
	if cfg.Output.PrettyPrint {
		output, err = json.MarshalIndent(results, "", "    ")
	} else {
		output, err = json.Marshal(results)
	}
	if err != nil {
		logger.Fatal("failed to marshal results", zap.Error(err))
	}

	fmt.Println(string(output))
}
