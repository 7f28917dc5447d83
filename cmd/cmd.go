package cmd

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

// isNotTerminal defines if the output is going into terminal or not.
// It's dynamically set to false or true based on the stdout's file
// descriptor referring to a terminal or not.
var isNotTerminal = os.Getenv("TERM") == "dumb" ||
	(!isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()))

// isCI reports whether the process runs on a CI service.
func isCI() bool {
	return os.Getenv("CI") != ""
}

// interactive reports whether progress should be shown with terminal
// prompts rather than log lines.
func interactive() bool {
	return !isNotTerminal && !isCI()
}

// getWd is a convenience method to get the working directory.
func getWd() string {
	dir, err := os.Getwd()
	if err != nil {
		fmt.Printf("Error getting working directory: %s", err.Error())
		cobra.CheckErr(err)
	}

	return dir
}
