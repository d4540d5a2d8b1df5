package dataset

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
)

// Label is a coordinate value extracted from metadata: an integer when
// the source text parses as one, otherwise the text itself.
type Label struct {
	num   int
	text  string
	isInt bool
}

// IntLabel returns an integer label.
func IntLabel(v int) Label { return Label{num: v, isInt: true} }

// TextLabel returns a text label.
func TextLabel(s string) Label { return Label{text: s} }

// ParseLabel coerces s to an integer label when possible, keeping the
// text otherwise.
func ParseLabel(s string) Label {
	if v, err := strconv.Atoi(s); err == nil {
		return IntLabel(v)
	}
	return TextLabel(s)
}

// IsInt reports whether the label holds an integer.
func (l Label) IsInt() bool { return l.isInt }

// Int returns the integer value; zero for text labels.
func (l Label) Int() int { return l.num }

func (l Label) String() string {
	if l.isInt {
		return strconv.Itoa(l.num)
	}
	return l.text
}

// MarshalJSON encodes integer labels as JSON numbers and text labels as
// JSON strings.
func (l Label) MarshalJSON() ([]byte, error) {
	if l.isInt {
		return json.Marshal(l.num)
	}
	return json.Marshal(l.text)
}

func (l *Label) UnmarshalJSON(data []byte) error {
	var v int
	if err := json.Unmarshal(data, &v); err == nil {
		*l = IntLabel(v)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("dataset: label must be a number or string: %w", err)
	}
	*l = TextLabel(s)
	return nil
}

// Variable is a data array bound to named dimensions.
type Variable struct {
	Dims   []string  `json:"dims"`
	Values []float64 `json:"values"`
}

// Dataset is a minimal labelled-array container: named dimensions with
// sizes, variables bound to those dimensions, coordinate labels, and the
// recorded source filename the data was read from.
type Dataset struct {
	Source string               `json:"source,omitempty"`
	Dims   map[string]int       `json:"dims"`
	Vars   map[string]*Variable `json:"vars,omitempty"`
	Coords map[string][]Label   `json:"coords,omitempty"`
}

// New creates an empty dataset recording its source filename.
func New(source string) *Dataset {
	return &Dataset{
		Source: source,
		Dims:   make(map[string]int),
		Vars:   make(map[string]*Variable),
		Coords: make(map[string][]Label),
	}
}

// AddDim declares a dimension with the given size. Redeclaring a
// dimension with a different size is an error.
func (d *Dataset) AddDim(name string, size int) error {
	if existing, ok := d.Dims[name]; ok && existing != size {
		return fmt.Errorf("dataset: dimension %q already has size %d", name, existing)
	}
	d.Dims[name] = size
	return nil
}

// AddVar binds a variable to its dimensions, which must all be declared.
func (d *Dataset) AddVar(name string, v *Variable) error {
	size := 1
	for _, dim := range v.Dims {
		n, ok := d.Dims[dim]
		if !ok {
			return fmt.Errorf("dataset: variable %q uses undeclared dimension %q", name, dim)
		}
		size *= n
	}
	if len(v.Values) != size {
		return fmt.Errorf("dataset: variable %q has %d values, dimensions imply %d", name, len(v.Values), size)
	}
	d.Vars[name] = v
	return nil
}

// ExpandDims adds a new dimension of size 1. Expanding a dimension that
// already exists is a no-op.
func (d *Dataset) ExpandDims(name string) {
	if _, ok := d.Dims[name]; !ok {
		d.Dims[name] = 1
	}
}

// SetCoord sets the coordinate labels along a dimension, declaring the
// dimension with matching size if absent.
func (d *Dataset) SetCoord(name string, labels ...Label) error {
	if size, ok := d.Dims[name]; ok && size != len(labels) {
		return fmt.Errorf("dataset: %d labels for dimension %q of size %d", len(labels), name, size)
	}
	d.Dims[name] = len(labels)
	d.Coords[name] = labels
	return nil
}

// DropVars removes the named variables and their coordinate labels.
// Unknown names are ignored.
func (d *Dataset) DropVars(names ...string) {
	for _, name := range names {
		delete(d.Vars, name)
		delete(d.Coords, name)
	}
}

// DropDims removes the named dimensions together with every variable
// bound to them and their coordinate labels. Unknown names are ignored.
func (d *Dataset) DropDims(names ...string) {
	for _, name := range names {
		if _, ok := d.Dims[name]; !ok {
			continue
		}
		delete(d.Dims, name)
		delete(d.Coords, name)
		for varName, v := range d.Vars {
			for _, dim := range v.Dims {
				if dim == name {
					delete(d.Vars, varName)
					break
				}
			}
		}
	}
}

// HasDim reports whether the dimension is declared.
func (d *Dataset) HasDim(name string) bool {
	_, ok := d.Dims[name]
	return ok
}

// Clone returns a deep copy of the dataset.
func (d *Dataset) Clone() *Dataset {
	out := New(d.Source)
	for name, size := range d.Dims {
		out.Dims[name] = size
	}
	for name, v := range d.Vars {
		cp := &Variable{
			Dims:   append([]string(nil), v.Dims...),
			Values: append([]float64(nil), v.Values...),
		}
		out.Vars[name] = cp
	}
	for name, labels := range d.Coords {
		out.Coords[name] = append([]Label(nil), labels...)
	}
	return out
}

// Decode reads a JSON-encoded dataset.
func Decode(r io.Reader) (*Dataset, error) {
	var d Dataset
	if err := json.NewDecoder(r).Decode(&d); err != nil {
		return nil, fmt.Errorf("dataset: decode: %w", err)
	}
	if d.Dims == nil {
		d.Dims = make(map[string]int)
	}
	if d.Vars == nil {
		d.Vars = make(map[string]*Variable)
	}
	if d.Coords == nil {
		d.Coords = make(map[string][]Label)
	}
	return &d, nil
}

// Encode writes the dataset as indented JSON.
func (d *Dataset) Encode(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(d); err != nil {
		return fmt.Errorf("dataset: encode: %w", err)
	}
	return nil
}
