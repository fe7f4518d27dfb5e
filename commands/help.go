package commands

import (
	"fmt"
	"strings"
)

// HelpText returns the usage text listing every visible command
func HelpText() string {
	var b strings.Builder
	b.WriteString("A simple CLI app for tracking tasks.\n")
	b.WriteString("Usage: task-tracker <command> [command-arguments]\n")
	b.WriteString("Commands:\n")

	for _, cmd := range List() {
		synopsis := strings.TrimPrefix(Usage(cmd), "task-tracker ")
		fmt.Fprintf(&b, "  %-32s %s", synopsis, cmd.Description)
		if cmd.Example != "" {
			fmt.Fprintf(&b, " (e.g.: %s)", cmd.Example)
		}
		b.WriteByte('\n')
	}

	return b.String()
}

func init() {
	Register(&Command{
		Name:        "help",
		Kind:        KindHelp,
		Description: "Show available commands",
		Handler: func(req *Request) error {
			fmt.Fprint(output, HelpText())
			return nil
		},
	})
}
