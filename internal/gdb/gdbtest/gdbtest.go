// Package gdbtest provides an in-memory gdb.Opener for tests.
package gdbtest

import (
	"sync"

	"github.com/rotisserie/eris"

	"github.com/sells-group/gnatsgo/internal/gdb"
)

// Layer is an in-memory layer.
type Layer struct {
	Fields []gdb.FieldDef
	Rows   [][]any // in Fields order
	Geoms  [][]byte
}

// Database is an in-memory geodatabase.
type Database map[string]*Layer

// Opener serves Databases by path and records which paths and columns
// were read.
type Opener struct {
	mu    sync.Mutex
	DBs   map[string]Database
	Reads []Read
}

// Read records one layer read.
type Read struct {
	Path    string
	Layer   string
	Columns []string
}

// NewOpener returns an empty Opener.
func NewOpener() *Opener {
	return &Opener{DBs: make(map[string]Database)}
}

// Add registers a layer under path.
func (o *Opener) Add(path, name string, l *Layer) {
	o.mu.Lock()
	defer o.mu.Unlock()
	db, ok := o.DBs[path]
	if !ok {
		db = make(Database)
		o.DBs[path] = db
	}
	db[name] = l
}

// Open implements gdb.Opener.
func (o *Opener) Open(path string) (gdb.Source, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	db, ok := o.DBs[path]
	if !ok {
		return nil, eris.Errorf("gdbtest: no such file %s", path)
	}
	return &source{o: o, path: path, db: db}, nil
}

// ReadsOf returns the recorded reads of layer.
func (o *Opener) ReadsOf(layer string) []Read {
	o.mu.Lock()
	defer o.mu.Unlock()
	var out []Read
	for _, r := range o.Reads {
		if r.Layer == layer {
			out = append(out, r)
		}
	}
	return out
}

type source struct {
	o    *Opener
	path string
	db   Database
}

func (s *source) Fields(layer string) ([]gdb.FieldDef, error) {
	l, ok := s.db[layer]
	if !ok {
		return nil, gdb.ErrLayerNotFound
	}
	return append([]gdb.FieldDef(nil), l.Fields...), nil
}

func (s *source) Read(layer string, opts gdb.ReadOptions) (*gdb.Frame, error) {
	l, ok := s.db[layer]
	if !ok {
		return nil, gdb.ErrLayerNotFound
	}

	s.o.mu.Lock()
	s.o.Reads = append(s.o.Reads, Read{Path: s.path, Layer: layer, Columns: opts.Columns})
	s.o.mu.Unlock()

	var names []string
	var idx []int
	for i, fd := range l.Fields {
		if opts.Wants(fd.Name) {
			names = append(names, fd.Name)
			idx = append(idx, i)
		}
	}
	if opts.Geometry {
		names = append(names, gdb.GeometryColumn)
	}

	f := gdb.NewFrame(names...)
	for r, row := range l.Rows {
		vals := make([]any, 0, len(names))
		for _, i := range idx {
			vals = append(vals, row[i])
		}
		if opts.Geometry {
			var g []byte
			if r < len(l.Geoms) {
				g = l.Geoms[r]
			}
			vals = append(vals, g)
		}
		if err := f.AppendRow(vals...); err != nil {
			return nil, err
		}
	}
	return f, nil
}

func (s *source) Close() error { return nil }
