package dataset

import (
	"errors"
	"fmt"
	"regexp"
)

// Tagging defaults, matching the conventions of model output filenames
// like "run_id_42_output.nc".
const (
	DefaultPattern = "id_(.+?)_"
	DefaultDim     = "exp_id"
)

// defaultDropDims are dropped when Options.DropDims is nil. nv4 is the
// cell-vertex dimension some model outputs carry.
var defaultDropDims = []string{"nv4"}

// ErrNoMatch is returned when the recorded source filename does not
// match the configured pattern. Tagging treats this as fatal: a dataset
// that cannot be identified must not flow on silently.
var ErrNoMatch = errors.New("dataset: source filename does not match pattern")

// Options configures Tag.
type Options struct {
	// Pattern is the regular expression whose first capture group
	// yields the identifier. Default: "id_(.+?)_"
	Pattern string

	// Dim is the name of the added dimension. Default: "exp_id"
	Dim string

	// DropVars lists variables to remove. Unknown names are ignored.
	DropVars []string

	// DropDims lists dimensions to remove. Unknown names are ignored.
	// A nil slice drops "nv4"; pass an empty non-nil slice to drop
	// nothing.
	DropDims []string
}

// Tag labels a dataset with the identifier extracted from its recorded
// source filename.
//
// The identifier is the pattern's first capture group, coerced to an
// integer when possible. It becomes the single coordinate label of a new
// dimension of size 1. The input dataset is not modified; the labelled
// copy is returned.
func Tag(d *Dataset, opts Options) (*Dataset, error) {
	if opts.Pattern == "" {
		opts.Pattern = DefaultPattern
	}
	if opts.Dim == "" {
		opts.Dim = DefaultDim
	}
	if opts.DropDims == nil {
		opts.DropDims = defaultDropDims
	}

	re, err := regexp.Compile(opts.Pattern)
	if err != nil {
		return nil, fmt.Errorf("dataset: compile pattern: %w", err)
	}

	m := re.FindStringSubmatch(d.Source)
	if m == nil || len(m) < 2 {
		return nil, fmt.Errorf("%w: pattern %q, source %q", ErrNoMatch, opts.Pattern, d.Source)
	}
	label := ParseLabel(m[1])

	out := d.Clone()
	out.ExpandDims(opts.Dim)
	if err := out.SetCoord(opts.Dim, label); err != nil {
		return nil, err
	}
	out.DropVars(opts.DropVars...)
	out.DropDims(opts.DropDims...)

	return out, nil
}

// MustTag is like Tag but panics on failure, for callers that treat an
// unidentifiable dataset as a programming error.
func MustTag(d *Dataset, opts Options) *Dataset {
	out, err := Tag(d, opts)
	if err != nil {
		panic(err)
	}
	return out
}
