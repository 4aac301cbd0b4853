package schema

import (
	"fmt"

	"github.com/rotisserie/eris"

	"github.com/sells-group/gnatsgo/internal/gdb"
)

// Names of the SSURGO metadata layers.
const (
	LayerTableColumns = "mdstattabcols"
	LayerDomainDetail = "mdstatdomdet"
	LayerTables       = "mdstattabs"
)

// ColumnRecord is one mdstattabcols row.
type ColumnRecord struct {
	Table       string
	Column      string
	Description string
	Units       string
	LogicalType string
	Domain      string
}

// ReadColumnRecords returns the mdstattabcols records of table, keyed by
// column name.
func ReadColumnRecords(src gdb.Source, table string) (map[string]ColumnRecord, error) {
	f, err := src.Read(LayerTableColumns, gdb.ReadOptions{Columns: []string{
		"tabphyname", "colphyname", "coldesc", "uom", "logicaldatatype", "domainname",
	}})
	if err != nil {
		return nil, eris.Wrap(err, "schema: read column metadata")
	}

	tabs := f.Column("tabphyname")
	out := make(map[string]ColumnRecord)
	for i := 0; i < f.Len(); i++ {
		if text(tabs[i]) != table {
			continue
		}
		rec := ColumnRecord{
			Table:       table,
			Column:      text(f.Column("colphyname")[i]),
			Description: text(f.Column("coldesc")[i]),
			Units:       text(f.Column("uom")[i]),
			LogicalType: text(f.Column("logicaldatatype")[i]),
			Domain:      text(f.Column("domainname")[i]),
		}
		if _, dup := out[rec.Column]; !dup {
			out[rec.Column] = rec
		}
	}
	return out, nil
}

// ReadDomains returns the enumerated choices of every domain in
// mdstatdomdet, in table order.
func ReadDomains(src gdb.Source) (map[string][]string, error) {
	f, err := src.Read(LayerDomainDetail, gdb.ReadOptions{Columns: []string{"domainname", "choice"}})
	if err != nil {
		return nil, eris.Wrap(err, "schema: read domain details")
	}

	out := make(map[string][]string)
	names, choices := f.Column("domainname"), f.Column("choice")
	for i := 0; i < f.Len(); i++ {
		if choices[i] == nil {
			continue
		}
		d := text(names[i])
		out[d] = append(out[d], text(choices[i]))
	}
	return out, nil
}

// ReadTableDescriptions returns mdstattabs descriptions keyed by table.
func ReadTableDescriptions(src gdb.Source) (map[string]string, error) {
	f, err := src.Read(LayerTables, gdb.ReadOptions{Columns: []string{"tabphyname", "tabdesc"}})
	if err != nil {
		return nil, eris.Wrap(err, "schema: read table metadata")
	}

	out := make(map[string]string)
	for i := 0; i < f.Len(); i++ {
		if d := text(f.Column("tabdesc")[i]); d != "" {
			out[text(f.Column("tabphyname")[i])] = d
		}
	}
	return out, nil
}

// text renders a metadata cell, mapping nil to "".
func text(v any) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	default:
		return fmt.Sprint(s)
	}
}
