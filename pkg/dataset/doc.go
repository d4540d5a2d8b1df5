// Package dataset provides a minimal labelled-array model and filename
// metadata tagging for scientific model output.
//
// A Dataset holds named dimensions, variables bound to them, coordinate
// labels along dimensions, and the recorded source filename the data was
// read from. Tag extracts an identifier from that filename with a
// configurable pattern and attaches it as a new dimension of size 1, so
// outputs from many model runs can be concatenated along it:
//
//	tagged, err := dataset.Tag(d, dataset.Options{
//	    Pattern: "id_(.+?)_",
//	    Dim:     "exp_id",
//	})
//
// A source filename that does not match the pattern is a fatal error,
// not a recoverable condition; requested drops of unknown variables or
// dimensions are silently ignored.
package dataset
