package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/vk/coursegraph/internal/app"
	"github.com/vk/coursegraph/internal/cli"
	"github.com/vk/coursegraph/internal/config"
	"github.com/vk/coursegraph/internal/hcl"
	"github.com/vk/coursegraph/internal/yamlcourse"
)

// main is the entrypoint for the coursegraph application.
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

// run encapsulates the main application logic for easier testing and error handling.
func run(outW, errW io.Writer, args []string) (err error) {
	appConfig, shouldExit, err := cli.Parse(args, outW)
	if err != nil {
		return err
	}
	if shouldExit {
		return nil
	}

	// Startup panics are programmer errors; report them as a plain error.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("application startup panicked: %v", r)
		}
	}()

	loader := config.NewRegistry(hcl.NewLoader(), yamlcourse.NewLoader())
	courseApp, err := app.NewApp(outW, errW, appConfig, loader)
	if err != nil {
		return err
	}

	return courseApp.Run(context.Background())
}
