// Package main provides the entry point for the tourvault CLI tool.
package main

import (
	"context"
	"os"
	"time"

	"github.com/charmbracelet/fang"

	"github.com/agentstation/tourvault/cmd/tourvault/app"
)

// Version information populated by goreleaser.
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
	builtBy = "unknown"
)

func main() {
	application, err := app.New(version, commit, date, builtBy)
	if err != nil {
		app.ExitOnError(err)
	}

	// fang cancels the context on interrupt so serve and watch can stop cleanly.
	runErr := fang.Execute(
		context.Background(),
		application.Command(),
		fang.WithVersion(version),
		fang.WithCommit(commit),
		fang.WithNotifySignal(os.Interrupt, os.Kill),
	)

	// Shutdown gets a fresh context since the signal context may be cancelled.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := application.Shutdown(shutdownCtx); err != nil {
		application.Logger().Error().Err(err).Msg("Shutdown error")
	}

	if runErr != nil {
		cancel()
		os.Exit(1)
	}
}
