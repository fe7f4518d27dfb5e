package commands

import "fmt"

func init() {
	quit := func(req *Request) error {
		fmt.Fprintln(output, "Goodbye!")
		return nil
	}

	Register(&Command{
		Name:        "quit",
		Kind:        KindQuit,
		Description: "Leave the shell",
		Hidden:      true,
		Quit:        true,
		Handler:     quit,
	})

	// Alias
	Register(&Command{
		Name:        "exit",
		Kind:        KindQuit,
		Description: "Leave the shell",
		Hidden:      true,
		Quit:        true,
		Handler:     quit,
	})
}
