// Package colormap converts QGIS color-ramp exports into continuous
// colormaps for plotting scalar fields.
//
// A ramp file has two header lines followed by comma-delimited rows of
// value,R,G,B with an optional alpha column. Values are normalized to
// [0,1] by their range and channels scaled to [0,1], producing a
// gradient that interpolates linearly between stops.
//
// # Usage
//
//	g, err := colormap.ParseFile("data/bathymetry.txt")
//	...
//	c := g.At(0.5)          // mid-ramp color
//	table := g.Table(256)   // quantized lookup table
//
// Gradients can be collected in a Registry, keyed by the name derived
// from each ramp file's base name:
//
//	reg := colormap.NewRegistry()
//	err := colormap.LoadDir(reg, "data/colormaps")
//	g, ok := reg.Lookup("bathymetry")
package colormap
