package commands

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"

	"tasktracker/storage"
)

// lineReader is the part of *readline.Instance the shell loop needs
type lineReader interface {
	Readline() (string, error)
}

var inShell bool

func init() {
	Register(&Command{
		Name:        "shell",
		Kind:        KindShell,
		Description: "Run commands interactively until quit",
		Example:     "task-tracker shell",
		Handler: func(req *Request) error {
			if inShell {
				fmt.Fprintln(output, "Already in the shell.")
				return nil
			}

			rl, err := readline.NewEx(&readline.Config{
				Prompt:          "> ",
				AutoComplete:    completer(),
				InterruptPrompt: "^C",
				EOFPrompt:       "exit",
				Stdout:          output,
			})
			if err != nil {
				return fmt.Errorf("failed to start shell: %w", err)
			}
			defer rl.Close()

			return runShell(rl)
		},
	})
}

// completer offers command names, and state names after list and mark
func completer() *readline.PrefixCompleter {
	states := make([]readline.PrefixCompleterInterface, 0, len(storage.ValidStates))
	for _, s := range storage.ValidStates {
		states = append(states, readline.PcItem(s.String()))
	}

	var items []readline.PrefixCompleterInterface
	for _, cmd := range List() {
		switch cmd.Kind {
		case KindShell:
			continue
		case KindList:
			items = append(items, readline.PcItem(cmd.Name, states...))
		default:
			items = append(items, readline.PcItem(cmd.Name))
		}
	}
	items = append(items, readline.PcItem("quit"))

	return readline.NewPrefixCompleter(items...)
}

// runShell executes one command per line until quit or end of input.
// Errors are reported and the shell carries on.
func runShell(r lineReader) error {
	inShell = true
	defer func() { inShell = false }()

	fmt.Fprintln(output, "Task tracker shell. Type help for commands, quit to leave.")

	for {
		line, err := r.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			if line == "" {
				return nil
			}
			continue
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}

		args := strings.Fields(line)
		if len(args) == 0 {
			continue
		}

		quit, err := Run(args)
		if err != nil {
			log.Warn("shell command failed", map[string]any{"line": line, "error": err})
			fmt.Fprintf(output, "Error: %v\n", err)
			continue
		}
		if quit {
			return nil
		}
	}
}
