package colormap

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// DefaultLevels is the default quantization level count for Table.
const DefaultLevels = 256

// Parse errors.
var (
	ErrTruncatedHeader = errors.New("colormap: ramp file shorter than its two header lines")
	ErrTooFewStops     = errors.New("colormap: ramp needs at least two rows")
	ErrFlatRamp        = errors.New("colormap: all ramp values are identical")
)

// Stop is one entry of a color ramp: a normalized position in [0,1] and
// its color. Alpha is preserved from the source file when present but
// does not participate in interpolation.
type Stop struct {
	Pos   float64
	Color colorful.Color
	Alpha float64
}

// Gradient is a continuous colormap built from a QGIS color-ramp export.
type Gradient struct {
	name  string
	stops []Stop
}

// Name returns the gradient's registered name.
func (g *Gradient) Name() string { return g.name }

// Stops returns the gradient's stops in ascending position order.
func (g *Gradient) Stops() []Stop { return g.stops }

// At returns the color at position t. Positions are clamped to [0,1];
// between stops the color is linearly interpolated.
func (g *Gradient) At(t float64) colorful.Color {
	if t <= g.stops[0].Pos {
		return g.stops[0].Color
	}
	last := g.stops[len(g.stops)-1]
	if t >= last.Pos {
		return last.Color
	}

	for i := 1; i < len(g.stops); i++ {
		lo, hi := g.stops[i-1], g.stops[i]
		if t > hi.Pos {
			continue
		}
		span := hi.Pos - lo.Pos
		if span == 0 {
			return hi.Color
		}
		return lo.Color.BlendRgb(hi.Color, (t-lo.Pos)/span)
	}
	return last.Color
}

// Table quantizes the gradient into n evenly spaced colors. n defaults
// to DefaultLevels when not positive.
func (g *Gradient) Table(n int) []colorful.Color {
	if n <= 0 {
		n = DefaultLevels
	}
	out := make([]colorful.Color, n)
	if n == 1 {
		out[0] = g.At(0)
		return out
	}
	for i := range out {
		out[i] = g.At(float64(i) / float64(n-1))
	}
	return out
}

// Parse reads a QGIS color-ramp export: two header lines followed by
// comma-delimited rows of value,R,G,B and an optional alpha column.
//
// Row values are normalized to [0,1] by the range of the first column,
// and color channels are scaled from 0-255 to [0,1].
func Parse(name string, r io.Reader) (*Gradient, error) {
	sc := bufio.NewScanner(r)

	for i := 0; i < 2; i++ {
		if !sc.Scan() {
			if err := sc.Err(); err != nil {
				return nil, fmt.Errorf("colormap: read header: %w", err)
			}
			return nil, ErrTruncatedHeader
		}
	}

	type row struct {
		value   float64
		r, g, b float64
		alpha   float64
	}

	var rows []row
	line := 2
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" {
			continue
		}

		fields := strings.Split(text, ",")
		if len(fields) < 4 {
			return nil, fmt.Errorf("colormap: line %d: expected value,R,G,B[,A], got %d fields", line, len(fields))
		}

		var vals [5]float64
		n := len(fields)
		if n > 5 {
			n = 5
		}
		for i := 0; i < n; i++ {
			v, err := strconv.ParseFloat(strings.TrimSpace(fields[i]), 64)
			if err != nil {
				return nil, fmt.Errorf("colormap: line %d: field %d: %w", line, i+1, err)
			}
			vals[i] = v
		}

		rw := row{value: vals[0], r: vals[1], g: vals[2], b: vals[3]}
		if len(fields) >= 5 {
			rw.alpha = vals[4] / 255.0
		} else {
			rw.alpha = 1
		}
		rows = append(rows, rw)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("colormap: read rows: %w", err)
	}

	if len(rows) < 2 {
		return nil, ErrTooFewStops
	}

	min, max := rows[0].value, rows[0].value
	for _, rw := range rows[1:] {
		if rw.value < min {
			min = rw.value
		}
		if rw.value > max {
			max = rw.value
		}
	}
	if min == max {
		return nil, ErrFlatRamp
	}

	stops := make([]Stop, len(rows))
	for i, rw := range rows {
		stops[i] = Stop{
			Pos:   (rw.value - min) / (max - min),
			Color: colorful.Color{R: rw.r / 255.0, G: rw.g / 255.0, B: rw.b / 255.0},
			Alpha: rw.alpha,
		}
	}

	sort.SliceStable(stops, func(i, j int) bool { return stops[i].Pos < stops[j].Pos })

	return &Gradient{name: name, stops: stops}, nil
}

// ParseFile parses a ramp file, deriving the gradient's name from the
// file's base name without its extension.
func ParseFile(path string) (*Gradient, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("colormap: open %s: %w", path, err)
	}
	defer f.Close()

	base := filepath.Base(path)
	name := strings.TrimSuffix(base, filepath.Ext(base))

	g, err := Parse(name, f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return g, nil
}
