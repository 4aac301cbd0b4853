// Package gdb defines how the converter reads tables out of an ESRI file
// geodatabase. The GDAL-backed implementation lives in internal/gdal.
package gdb

import (
	"github.com/rotisserie/eris"
)

// FieldKind is the physical (OGR) type of a geodatabase field.
type FieldKind int

const (
	KindOther FieldKind = iota
	KindInteger
	KindInteger64
	KindReal
	KindString
	KindDate
	KindBinary
)

// String implements fmt.Stringer.
func (k FieldKind) String() string {
	switch k {
	case KindInteger:
		return "Integer"
	case KindInteger64:
		return "Integer64"
	case KindReal:
		return "Real"
	case KindString:
		return "String"
	case KindDate:
		return "Date"
	case KindBinary:
		return "Binary"
	default:
		return "Other"
	}
}

// FieldDef describes one attribute field of a layer.
type FieldDef struct {
	Name string
	Kind FieldKind
	// Small is set for Integer fields declared with the Int16 subtype.
	Small bool
}

// GeometryColumn is the frame column that carries WKB geometry.
const GeometryColumn = "geometry"

// ReadOptions controls a layer read.
type ReadOptions struct {
	// Columns restricts the read to these fields. Nil reads every field.
	Columns []string
	// Geometry adds a WKB GeometryColumn.
	Geometry bool
}

// Wants reports whether the options select column.
func (o ReadOptions) Wants(column string) bool {
	if o.Columns == nil {
		return true
	}
	for _, c := range o.Columns {
		if c == column {
			return true
		}
	}
	return false
}

// Source is an open geodatabase.
type Source interface {
	// Fields returns the attribute fields of layer in physical order.
	Fields(layer string) ([]FieldDef, error)
	// Read loads layer into a frame. Values are nil, int64, float64,
	// string, time.Time or []byte.
	Read(layer string, opts ReadOptions) (*Frame, error)
	Close() error
}

// Opener opens geodatabases by path.
type Opener interface {
	Open(path string) (Source, error)
}

// ErrLayerNotFound is returned when a geodatabase has no such layer.
var ErrLayerNotFound = eris.New("gdb: layer not found")
