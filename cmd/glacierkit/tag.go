package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/glacierkit/glacierkit/internal/config"
	"github.com/glacierkit/glacierkit/pkg/dataset"
)

func runTag(args []string) int {
	fs := flag.NewFlagSet("tag", flag.ExitOnError)

	input := fs.String("in", "", "Input dataset JSON file (required)")
	output := fs.String("out", "", "Output path (default: stdout)")
	configPath := fs.String("config", "", "Path to YAML config file")
	pattern := fs.String("pattern", "", "Identifier pattern, first capture group is the label (default id_(.+?)_)")
	dim := fs.String("dim", "", "Name of the added dimension (default exp_id)")
	dropVars := fs.String("drop-vars", "", "Comma-separated variables to drop")
	dropDims := fs.String("drop-dims", "", "Comma-separated dimensions to drop (default nv4)")

	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, `Usage: glacierkit tag [options]

Label a dataset with the identifier extracted from its recorded source
filename and write the result. The input must match the pattern; a
non-matching source is a fatal error.

Options:`)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return ExitInvalidArgs
	}

	if *input == "" {
		fmt.Fprintln(os.Stderr, "Error: -in is required")
		fs.Usage()
		return ExitInvalidArgs
	}

	cfg := config.Default()
	if *configPath != "" {
		fileCfg, err := config.LoadFromFile(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return ExitGeneralError
		}
		cfg = fileCfg
	}
	if err := cfg.LoadFromEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return ExitGeneralError
	}

	opts := dataset.Options{
		Pattern:  cfg.Tag.Pattern,
		Dim:      cfg.Tag.Dim,
		DropVars: cfg.Tag.DropVars,
		DropDims: cfg.Tag.DropDims,
	}
	if *pattern != "" {
		opts.Pattern = *pattern
	}
	if *dim != "" {
		opts.Dim = *dim
	}
	if *dropVars != "" {
		opts.DropVars = splitList(*dropVars)
	}
	if *dropDims != "" {
		opts.DropDims = splitList(*dropDims)
	}

	f, err := os.Open(*input)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return ExitGeneralError
	}
	ds, err := dataset.Decode(f)
	f.Close()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return ExitGeneralError
	}

	// Datasets written by other tools may not record their source;
	// fall back to the input path.
	if ds.Source == "" {
		ds.Source = *input
	}

	tagged, err := dataset.Tag(ds, opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		if errors.Is(err, dataset.ErrNoMatch) {
			return ExitTagNoMatch
		}
		return ExitGeneralError
	}

	out := os.Stdout
	if *output != "" {
		out, err = os.Create(*output)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return ExitGeneralError
		}
		defer out.Close()
	}

	if err := tagged.Encode(out); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return ExitGeneralError
	}

	return ExitSuccess
}

func splitList(v string) []string {
	parts := strings.Split(v, ",")
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
