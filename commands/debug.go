package commands

import (
	"fmt"

	"tasktracker/logger"
)

var (
	debugMode  bool
	savedLevel logger.Level
)

func init() {
	Register(&Command{
		Name:        "debug",
		Kind:        KindDebug,
		Description: "Toggle debug logging",
		Hidden:      true,
		Handler: func(req *Request) error {
			debugMode = !debugMode
			if debugMode {
				savedLevel = log.Level()
				log.SetLevel(logger.DEBUG)
				fmt.Fprintln(output, "Debug mode: ON")
			} else {
				log.SetLevel(savedLevel)
				fmt.Fprintln(output, "Debug mode: OFF")
			}
			return nil
		},
	})
}

// IsDebugMode returns whether debug mode is enabled
func IsDebugMode() bool {
	return debugMode
}
