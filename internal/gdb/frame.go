package gdb

import (
	"github.com/rotisserie/eris"
)

// Frame is a column-oriented slice of a layer.
type Frame struct {
	names   []string
	columns map[string][]any
	rows    int
}

// NewFrame returns an empty frame with the given columns.
func NewFrame(names ...string) *Frame {
	f := &Frame{columns: make(map[string][]any, len(names))}
	for _, n := range names {
		f.names = append(f.names, n)
		f.columns[n] = nil
	}
	return f
}

// Names returns the column names in order.
func (f *Frame) Names() []string { return append([]string(nil), f.names...) }

// Len returns the number of rows.
func (f *Frame) Len() int { return f.rows }

// Has reports whether the frame has column name.
func (f *Frame) Has(name string) bool {
	_, ok := f.columns[name]
	return ok
}

// Column returns the values of a column, or nil if absent.
func (f *Frame) Column(name string) []any { return f.columns[name] }

// AppendRow appends one row given in column order.
func (f *Frame) AppendRow(values ...any) error {
	if len(values) != len(f.names) {
		return eris.Errorf("gdb: row has %d values, frame has %d columns", len(values), len(f.names))
	}
	for i, n := range f.names {
		f.columns[n] = append(f.columns[n], values[i])
	}
	f.rows++
	return nil
}

// Set replaces or adds a column. vals must have Len() entries, unless the
// frame has no columns yet.
func (f *Frame) Set(name string, vals []any) error {
	if len(f.names) > 0 && len(vals) != f.rows {
		return eris.Errorf("gdb: column %s has %d values, frame has %d rows", name, len(vals), f.rows)
	}
	if _, ok := f.columns[name]; !ok {
		f.names = append(f.names, name)
	}
	f.columns[name] = vals
	f.rows = len(vals)
	return nil
}

// SetConst adds or replaces a column holding v on every row.
func (f *Frame) SetConst(name string, v any) {
	vals := make([]any, f.rows)
	for i := range vals {
		vals[i] = v
	}
	_ = f.Set(name, vals)
}

// Append concatenates o below f. Both frames must have the same columns.
func (f *Frame) Append(o *Frame) error {
	if len(o.names) != len(f.names) {
		return eris.Errorf("gdb: cannot append frame with columns %v to %v", o.names, f.names)
	}
	for _, n := range f.names {
		if !o.Has(n) {
			return eris.Errorf("gdb: appended frame lacks column %s", n)
		}
	}
	for _, n := range f.names {
		f.columns[n] = append(f.columns[n], o.columns[n]...)
	}
	f.rows += o.rows
	return nil
}
