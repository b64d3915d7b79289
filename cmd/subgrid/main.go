package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/vk/subgrid/internal/app"
	"github.com/vk/subgrid/internal/cli"
	"github.com/vk/subgrid/internal/iterate"
)

// main is the entrypoint for the subgrid application.
func main() {
	// Use a minimal logger until the full one is configured.
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})))

	// The real main function handles errors and exit codes.
	if err := run(os.Stdout, os.Stderr, os.Args[1:]); err != nil {
		var exitErr *cli.ExitError
		if errors.As(err, &exitErr) {
			fmt.Fprintln(os.Stderr, exitErr.Message)
			os.Exit(exitErr.Code)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// run encapsulates the main application logic for easier testing and error
// handling. Interrupts cancel the context so the iteration controller halts
// at the next unit boundary with a resume directive instead of tearing the
// process down mid-unit.
func run(outW, errW io.Writer, args []string) error {
	appConfig, command, shouldExit, err := cli.Parse(args, outW)
	if err != nil {
		return err
	}
	if shouldExit {
		return nil
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	subgridApp, err := app.NewApp(outW, errW, appConfig)
	if err != nil {
		return err
	}

	if err := subgridApp.Run(ctx, command); err != nil {
		// A task failure already printed its position and resume line;
		// surface it as a plain failed exit without re-wrapping.
		var taskErr *iterate.TaskFailure
		if errors.As(err, &taskErr) {
			return &cli.ExitError{Code: 1, Message: taskErr.Error()}
		}
		return err
	}
	return nil
}
