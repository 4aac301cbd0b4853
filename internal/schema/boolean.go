package schema

import (
	"github.com/sells-group/gnatsgo/internal/gdb"
)

// booleanLiterals are the encodings SSURGO uses for flags. Choice domains
// are padded to three characters, hence "1  " and "0  ".
var booleanLiterals = map[string]bool{
	"Yes": true,
	"No":  false,
	"No ": false,
	"1  ": true,
	"0  ": false,
}

// RemapBoolean maps a raw flag to true, false or nil. Unknown values map
// to nil.
func RemapBoolean(v any) any {
	s, ok := v.(string)
	if !ok {
		return nil
	}
	b, ok := booleanLiterals[s]
	if !ok {
		return nil
	}
	return b
}

// RemapBooleans rewrites every boolean-typed column present in f.
func RemapBooleans(f *gdb.Frame, types TypeMap) {
	for _, col := range types.Booleans() {
		if !f.Has(col) {
			continue
		}
		raw := f.Column(col)
		vals := make([]any, len(raw))
		for i, v := range raw {
			vals[i] = RemapBoolean(v)
		}
		_ = f.Set(col, vals)
	}
}
