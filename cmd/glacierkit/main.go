package main

import (
	"fmt"
	"os"
)

// Exit codes
const (
	ExitSuccess      = 0
	ExitGeneralError = 1
	ExitInvalidArgs  = 2
	ExitStoreError   = 3
	ExitTagNoMatch   = 4
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	if len(args) == 0 {
		printUsage()
		return ExitInvalidArgs
	}

	command := args[0]
	cmdArgs := args[1:]

	switch command {
	case "fetch":
		return runFetch(cmdArgs)
	case "colormaps":
		return runColormaps(cmdArgs)
	case "tag":
		return runTag(cmdArgs)
	case "help", "-h", "--help":
		printUsage()
		return ExitSuccess
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		return ExitInvalidArgs
	}
}

func printUsage() {
	fmt.Fprintln(os.Stderr, `Usage: glacierkit <command> [options]

Commands:
  fetch      Download tutorial input files from an object store or HTTP
  colormaps  Load QGIS color-ramp exports and list the resulting colormaps
  tag        Label a dataset with the identifier from its source filename

Run 'glacierkit <command> -h' for command-specific help.`)
}
