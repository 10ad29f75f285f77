// Package frame holds the tabular unit dataset every estimator ingests:
// one row per spatial or administrative unit, named float64 columns for
// population counts, and optional geometry attributes for spatial measures.
package frame

import (
	"fmt"
	"math"
	"sort"

	"goseg/domain/core"
)

// Frame is an immutable table of units. All transforms return copies, so a
// fitted estimator can hold a reference to its core data without aliasing
// caller state.
type Frame struct {
	unitIDs []string
	order   []string
	cols    map[string][]float64
	geom    *Geometry
}

// New builds a frame from unit IDs and named columns. IDs may be nil, in
// which case positional IDs are generated. All columns must share the same
// length as the ID slice.
func New(unitIDs []string, cols map[string][]float64) (*Frame, error) {
	n := -1
	if unitIDs != nil {
		n = len(unitIDs)
	}
	for name, vals := range cols {
		if n == -1 {
			n = len(vals)
		}
		if len(vals) != n {
			return nil, fmt.Errorf("%w: column %q has %d values, expected %d", core.ErrLengthMismatch, name, len(vals), n)
		}
	}
	if n <= 0 {
		return nil, core.ErrEmptyFrame
	}

	ids := make([]string, n)
	if unitIDs != nil {
		copy(ids, unitIDs)
	} else {
		for i := range ids {
			ids[i] = fmt.Sprintf("unit-%d", i)
		}
	}

	f := &Frame{
		unitIDs: ids,
		order:   make([]string, 0, len(cols)),
		cols:    make(map[string][]float64, len(cols)),
	}
	for name, vals := range cols {
		f.order = append(f.order, name)
		f.cols[name] = append([]float64(nil), vals...)
	}
	sort.Strings(f.order)
	return f, nil
}

// Len returns the number of units.
func (f *Frame) Len() int {
	return len(f.unitIDs)
}

// UnitIDs returns a copy of the unit identifiers.
func (f *Frame) UnitIDs() []string {
	return append([]string(nil), f.unitIDs...)
}

// UnitID returns the identifier of unit i.
func (f *Frame) UnitID(i int) string {
	return f.unitIDs[i]
}

// Columns returns the column names in stable order.
func (f *Frame) Columns() []string {
	return append([]string(nil), f.order...)
}

// HasColumn reports whether the frame carries the named column.
func (f *Frame) HasColumn(name string) bool {
	_, ok := f.cols[name]
	return ok
}

// Column returns a copy of the named column.
func (f *Frame) Column(name string) ([]float64, error) {
	vals, ok := f.cols[name]
	if !ok {
		return nil, core.NewColumnError(name)
	}
	return append([]float64(nil), vals...), nil
}

// Geometry returns the frame's geometry attributes, nil if none were set.
func (f *Frame) Geometry() *Geometry {
	return f.geom
}

// WithGeometry returns a copy of the frame carrying the given geometry.
func (f *Frame) WithGeometry(g *Geometry) (*Frame, error) {
	if g == nil {
		return nil, core.ErrMissingGeometry
	}
	if err := g.check(f.Len()); err != nil {
		return nil, err
	}
	out := f.clone()
	out.geom = g.clone()
	return out, nil
}

// WithColumn returns a copy of the frame with the named column set or replaced.
func (f *Frame) WithColumn(name string, vals []float64) (*Frame, error) {
	if len(vals) != f.Len() {
		return nil, fmt.Errorf("%w: column %q has %d values, expected %d", core.ErrLengthMismatch, name, len(vals), f.Len())
	}
	out := f.clone()
	if _, exists := out.cols[name]; !exists {
		out.order = append(out.order, name)
		sort.Strings(out.order)
	}
	out.cols[name] = append([]float64(nil), vals...)
	return out, nil
}

// Select returns a copy of the frame restricted to the named columns.
// Geometry is carried along.
func (f *Frame) Select(names ...string) (*Frame, error) {
	out := &Frame{
		unitIDs: append([]string(nil), f.unitIDs...),
		order:   make([]string, 0, len(names)),
		cols:    make(map[string][]float64, len(names)),
	}
	for _, name := range names {
		vals, ok := f.cols[name]
		if !ok {
			return nil, core.NewColumnError(name)
		}
		if _, dup := out.cols[name]; dup {
			continue
		}
		out.order = append(out.order, name)
		out.cols[name] = append([]float64(nil), vals...)
	}
	sort.Strings(out.order)
	if f.geom != nil {
		out.geom = f.geom.clone()
	}
	return out, nil
}

// Take returns a new frame whose rows are f's rows at the given indices, in
// order. Indices may repeat, which is how bootstrap resampling is expressed.
// Geometry attributes follow their rows.
func (f *Frame) Take(indices []int) (*Frame, error) {
	for _, idx := range indices {
		if idx < 0 || idx >= f.Len() {
			return nil, fmt.Errorf("%w: row index %d out of range [0,%d)", core.ErrLengthMismatch, idx, f.Len())
		}
	}
	out := &Frame{
		unitIDs: make([]string, len(indices)),
		order:   append([]string(nil), f.order...),
		cols:    make(map[string][]float64, len(f.cols)),
	}
	for i, idx := range indices {
		out.unitIDs[i] = f.unitIDs[idx]
	}
	for name, vals := range f.cols {
		taken := make([]float64, len(indices))
		for i, idx := range indices {
			taken[i] = vals[idx]
		}
		out.cols[name] = taken
	}
	if f.geom != nil {
		out.geom = f.geom.take(indices)
	}
	return out, nil
}

// Fingerprint hashes unit IDs and all columns for run auditing.
func (f *Frame) Fingerprint() core.FrameFingerprint {
	return core.ComputeFrameFingerprint(f.unitIDs, f.cols)
}

// CheckCounts validates the group/total column pair: both present, no
// negative values, and group count never above the unit total.
func (f *Frame) CheckCounts(groupCol, totalCol string) error {
	group, ok := f.cols[groupCol]
	if !ok {
		return core.NewColumnError(groupCol)
	}
	total, ok := f.cols[totalCol]
	if !ok {
		return core.NewColumnError(totalCol)
	}
	for i := range group {
		x, t := group[i], total[i]
		if math.IsNaN(x) || math.IsNaN(t) {
			continue
		}
		if x < 0 || t < 0 {
			return fmt.Errorf("%w: unit %s", core.ErrNegativeCount, f.unitIDs[i])
		}
		if x > t {
			return core.NewCountError(f.unitIDs[i], x, t)
		}
	}
	return nil
}

// HasNaN reports whether any column carries a NaN value.
func (f *Frame) HasNaN() bool {
	for _, vals := range f.cols {
		for _, v := range vals {
			if math.IsNaN(v) {
				return true
			}
		}
	}
	return false
}

func (f *Frame) clone() *Frame {
	out := &Frame{
		unitIDs: append([]string(nil), f.unitIDs...),
		order:   append([]string(nil), f.order...),
		cols:    make(map[string][]float64, len(f.cols)),
	}
	for name, vals := range f.cols {
		out.cols[name] = append([]float64(nil), vals...)
	}
	if f.geom != nil {
		out.geom = f.geom.clone()
	}
	return out
}
