package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"tasktracker/commands"
	"tasktracker/config"
	"tasktracker/logger"
	"tasktracker/storage"
)

const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes one invocation and returns the process exit code
func run(args []string, stdout, stderr io.Writer) int {
	commands.SetOutput(stdout)

	req, err := commands.Parse(args)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n\n%s", err, commands.HelpText())
		return exitUsage
	}

	if !commands.NeedsStore(req) {
		if _, err := commands.Execute(req); err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return exitError
		}
		return exitOK
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitError
	}

	log := logger.New(cfg.LogLevel, stderr)
	commands.SetLogger(log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	store, err := storage.NewJSONStore(ctx, cfg.File,
		storage.WithLogger(log),
		storage.WithLockTimeout(cfg.LockTimeout),
	)
	if err != nil {
		log.Error("failed to open task store", map[string]any{"file": cfg.File, "error": err})
		fmt.Fprintf(stderr, "Error: %v\n", describe(err))
		return exitError
	}
	defer store.Close()

	commands.SetStore(store)

	if _, err := commands.Execute(req); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", describe(err))
		return exitError
	}

	return exitOK
}

// describe adds a hint for errors the user can act on
func describe(err error) string {
	switch {
	case errors.Is(err, storage.ErrCorruptStore):
		return fmt.Sprintf("%v (fix or move the file; it was left untouched)", err)
	case errors.Is(err, storage.ErrLocked):
		return fmt.Sprintf("%v (is another task-tracker running?)", err)
	default:
		return err.Error()
	}
}
