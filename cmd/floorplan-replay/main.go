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

	"wisefido-floorplan/internal/logger"
	"wisefido-floorplan/internal/replay"
)

func main() {
	scriptPath := flag.String("script", "", "path to the replay YAML script")
	baseURL := flag.String("base-url", "", "override the script's base_url")
	level := flag.String("log-level", "info", "debug, info, warn, error")
	flag.Parse()

	if *scriptPath == "" {
		fmt.Fprintln(os.Stderr, "usage: floorplan-replay -script steps.yaml [-base-url http://localhost:8090]")
		os.Exit(2)
	}

	log, err := logger.NewLogger(*level, "console", "floorplan-replay")
	if err != nil {
		log = zap.NewNop()
	}
	defer log.Sync()

	script, err := replay.LoadScript(*scriptPath)
	if err != nil {
		log.Fatal("failed to load script", zap.Error(err))
	}
	if *baseURL != "" {
		script.BaseURL = *baseURL
	}
	if script.BaseURL == "" {
		script.BaseURL = "http://localhost:8090"
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	runner := replay.NewRunner(replay.NewClient(script.BaseURL, log), log)
	report, runErr := runner.Run(ctx, script)
	if report != nil {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(report)
	}
	if runErr != nil {
		log.Error("replay failed", zap.Error(runErr))
		os.Exit(1)
	}
}
