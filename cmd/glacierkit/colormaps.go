package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/glacierkit/glacierkit/pkg/colormap"
)

func runColormaps(args []string) int {
	fs := flag.NewFlagSet("colormaps", flag.ExitOnError)

	dir := fs.String("dir", "", "Directory of QGIS color-ramp .txt exports (required)")
	sample := fs.Int("sample", 0, "Also print N evenly spaced hex colors per colormap")

	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, `Usage: glacierkit colormaps [options]

Parse every .txt color-ramp export in a directory and list the
resulting colormaps, named after their file base names.

Options:`)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return ExitInvalidArgs
	}

	if *dir == "" {
		fmt.Fprintln(os.Stderr, "Error: -dir is required")
		fs.Usage()
		return ExitInvalidArgs
	}

	reg := colormap.NewRegistry()
	if err := colormap.LoadDir(reg, *dir); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return ExitGeneralError
	}

	names := reg.Names()
	if len(names) == 0 {
		fmt.Fprintf(os.Stderr, "No color-ramp files found in %s\n", *dir)
		return ExitGeneralError
	}

	for _, name := range names {
		g, _ := reg.Lookup(name)
		fmt.Printf("%s: %d stops\n", name, len(g.Stops()))

		if *sample > 0 {
			for _, c := range g.Table(*sample) {
				fmt.Printf("  %s\n", c.Hex())
			}
		}
	}

	return ExitSuccess
}
