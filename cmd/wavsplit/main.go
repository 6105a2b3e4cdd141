// Package main is the entry point for the wavsplit desktop application.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/oszuidwest/zwfm-wavsplit/internal/audio"
	"github.com/oszuidwest/zwfm-wavsplit/internal/config"
	"github.com/oszuidwest/zwfm-wavsplit/internal/splitter"
	"github.com/oszuidwest/zwfm-wavsplit/internal/state"
	"github.com/oszuidwest/zwfm-wavsplit/internal/ui"
	"github.com/oszuidwest/zwfm-wavsplit/pkg/logger"
	"github.com/oszuidwest/zwfm-wavsplit/pkg/version"
)

func main() {
	inputDir := flag.String("input", "", "run headless: directory with WAV files to split")
	outputDir := flag.String("output", "", "run headless: directory receiving the channel files")
	showVersion := flag.Bool("version", false, "print version information and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("wavsplit %s (commit %s, built %s)\n", version.Version, version.Commit, version.BuildTime)
		return
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logLevel := "info"
	if cfg.Log.Level.IsDebug() {
		logLevel = "debug"
	}
	if err := logger.Initialize(logLevel, cfg.Log.File); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	logger.Info("Starting wavsplit %s (commit %s)", version.Version, version.Commit)

	// Locate the FFmpeg toolchain
	tools, err := audio.Locate(cfg)
	if err != nil {
		logger.Fatal("FFmpeg and/or FFprobe not found.")
	}
	transcoder := audio.NewService(tools)

	var verifier splitter.Verifier
	if cfg.VerifyOutputs {
		verifier = transcoder
	}

	queue := splitter.NewQueue(256)
	engine := splitter.NewService(transcoder, verifier, queue)

	if *inputDir != "" || *outputDir != "" {
		if *inputDir == "" || *outputDir == "" {
			logger.Fatal("Headless mode requires both -input and -output")
		}
		code := runHeadless(engine, *inputDir, *outputDir)
		logger.Sync()
		os.Exit(code)
	}

	appState := state.Load(cfg.StatePath())

	win := ui.New(engine, queue, appState, cfg.StatePath())
	win.Run()

	logger.Info("Shutdown complete")
}

// runHeadless executes a single batch without the GUI. Progress and errors
// are already written to the log by the engine; the exit code is 1 when the
// run aborts or any file fails.
func runHeadless(engine *splitter.Service, inputDir, outputDir string) int {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	result, err := engine.Run(ctx, inputDir, outputDir)
	if err != nil {
		return 1
	}
	if result.Failed > 0 {
		logger.Error("%d export(s) failed", result.Failed)
		return 1
	}

	return 0
}
