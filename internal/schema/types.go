// Package schema resolves the target column types of a SSURGO table and
// converts geodatabase frames into Arrow records of that shape.
package schema

import (
	"sort"
	"strings"
)

// Kind is a semantic column type.
type Kind int

const (
	Int16 Kind = iota + 1
	Int32
	Int64
	Float32
	Boolean
	Timestamp
	String
	Categorical
	Binary
)

var kindNames = map[Kind]string{
	Int16:       "int16",
	Int32:       "int32",
	Int64:       "int64",
	Float32:     "float32",
	Boolean:     "boolean",
	Timestamp:   "timestamp",
	String:      "string",
	Categorical: "category",
	Binary:      "binary",
}

// String implements fmt.Stringer.
func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "unknown"
}

// ColumnType is the resolved type of one output column.
type ColumnType struct {
	Kind Kind
	// Categories is the fixed domain of a Categorical. Nil means the domain
	// is still open and must be unified across regions before writing.
	Categories []string
}

// Of returns a non-categorical column type.
func Of(k Kind) ColumnType { return ColumnType{Kind: k} }

// CategoryOf returns a categorical type with a fixed domain.
func CategoryOf(values ...string) ColumnType {
	return ColumnType{Kind: Categorical, Categories: append([]string{}, values...)}
}

// OpenCategory returns a categorical type whose domain is not known yet.
func OpenCategory() ColumnType { return ColumnType{Kind: Categorical} }

// Open reports whether t is a categorical without a fixed domain.
func (t ColumnType) Open() bool { return t.Kind == Categorical && t.Categories == nil }

// String implements fmt.Stringer.
func (t ColumnType) String() string {
	if t.Kind != Categorical {
		return t.Kind.String()
	}
	if t.Open() {
		return "category(open)"
	}
	return "category(" + strings.Join(t.Categories, ",") + ")"
}

// TypeMap maps column names to resolved types.
type TypeMap map[string]ColumnType

// Clone returns a copy of m that shares no category slices.
func (m TypeMap) Clone() TypeMap {
	out := make(TypeMap, len(m))
	for k, v := range m {
		if v.Categories != nil {
			v.Categories = append([]string{}, v.Categories...)
		}
		out[k] = v
	}
	return out
}

// OpenCategoricals returns the sorted names of open categorical columns.
func (m TypeMap) OpenCategoricals() []string {
	var out []string
	for k, v := range m {
		if v.Open() {
			out = append(out, k)
		}
	}
	sort.Strings(out)
	return out
}

// Booleans returns the sorted names of boolean columns.
func (m TypeMap) Booleans() []string {
	var out []string
	for k, v := range m {
		if v.Kind == Boolean {
			out = append(out, k)
		}
	}
	sort.Strings(out)
	return out
}

// FieldMeta is descriptive metadata attached to an output field.
type FieldMeta struct {
	Description string
	Units       string
}

// Empty reports whether m carries nothing.
func (m FieldMeta) Empty() bool { return m.Description == "" && m.Units == "" }

// ColumnMeta maps column names to field metadata.
type ColumnMeta map[string]FieldMeta
