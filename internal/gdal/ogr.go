package gdal

/*
#cgo pkg-config: gdal
#include <stdlib.h>
#include "gdal.h"
#include "ogr_api.h"
#include "cpl_error.h"
*/
import "C"

import (
	"math"
	"time"
	"unsafe"

	"github.com/rotisserie/eris"

	"github.com/sells-group/gnatsgo/internal/gdb"
)

// Opener opens file geodatabases with the OpenFileGDB driver.
type Opener struct{}

// NewOpener returns an Opener.
func NewOpener() *Opener {
	register()
	return &Opener{}
}

// Open implements gdb.Opener.
func (o *Opener) Open(path string) (gdb.Source, error) {
	cpath := C.CString(vsiPath(path))
	defer C.free(unsafe.Pointer(cpath))
	cdrv := C.CString("OpenFileGDB")
	defer C.free(unsafe.Pointer(cdrv))
	drivers := [2]*C.char{cdrv, nil}

	h := C.GDALOpenEx(cpath, C.GDAL_OF_VECTOR|C.GDAL_OF_READONLY, &drivers[0], nil, nil)
	if h == nil {
		return nil, eris.Errorf("gdal: open %s: %s", path, lastError())
	}
	return &geodatabase{h: h, path: path}, nil
}

type geodatabase struct {
	h    C.GDALDatasetH
	path string
}

func (g *geodatabase) layer(name string) (C.OGRLayerH, error) {
	if g.h == nil {
		return nil, eris.Errorf("gdal: %s is closed", g.path)
	}
	cname := C.CString(name)
	defer C.free(unsafe.Pointer(cname))
	l := C.GDALDatasetGetLayerByName(g.h, cname)
	if l == nil {
		return nil, eris.Wrapf(gdb.ErrLayerNotFound, "gdal: %s in %s", name, g.path)
	}
	return l, nil
}

// Fields implements gdb.Source.
func (g *geodatabase) Fields(layer string) ([]gdb.FieldDef, error) {
	l, err := g.layer(layer)
	if err != nil {
		return nil, err
	}
	defn := C.OGR_L_GetLayerDefn(l)
	n := int(C.OGR_FD_GetFieldCount(defn))
	fields := make([]gdb.FieldDef, 0, n)
	for i := 0; i < n; i++ {
		fd := C.OGR_FD_GetFieldDefn(defn, C.int(i))
		fields = append(fields, gdb.FieldDef{
			Name:  C.GoString(C.OGR_Fld_GetNameRef(fd)),
			Kind:  fieldKind(C.OGR_Fld_GetType(fd)),
			Small: C.OGR_Fld_GetSubType(fd) == C.OFSTInt16,
		})
	}
	return fields, nil
}

func fieldKind(t C.OGRFieldType) gdb.FieldKind {
	switch t {
	case C.OFTInteger:
		return gdb.KindInteger
	case C.OFTInteger64:
		return gdb.KindInteger64
	case C.OFTReal:
		return gdb.KindReal
	case C.OFTString:
		return gdb.KindString
	case C.OFTDate, C.OFTDateTime:
		return gdb.KindDate
	case C.OFTBinary:
		return gdb.KindBinary
	default:
		return gdb.KindOther
	}
}

// Read implements gdb.Source.
func (g *geodatabase) Read(layer string, opts gdb.ReadOptions) (*gdb.Frame, error) {
	l, err := g.layer(layer)
	if err != nil {
		return nil, err
	}
	defs, err := g.Fields(layer)
	if err != nil {
		return nil, err
	}

	var (
		names []string
		idx   []int
	)
	for i, fd := range defs {
		if opts.Wants(fd.Name) {
			names = append(names, fd.Name)
			idx = append(idx, i)
		}
	}
	if opts.Geometry {
		names = append(names, gdb.GeometryColumn)
	}

	if err := setIgnoredFields(l, ignoredFields(defs, opts)); err != nil {
		return nil, eris.Wrapf(err, "gdal: project %s in %s", layer, g.path)
	}
	defer setIgnoredFields(l, nil) //nolint:errcheck

	f := gdb.NewFrame(names...)
	C.OGR_L_ResetReading(l)
	for {
		fh := C.OGR_L_GetNextFeature(l)
		if fh == nil {
			break
		}
		row := make([]any, 0, len(names))
		for _, i := range idx {
			row = append(row, fieldValue(fh, C.int(i), defs[i].Kind))
		}
		if opts.Geometry {
			row = append(row, featureWKB(fh))
		}
		C.OGR_F_Destroy(fh)
		if err := f.AppendRow(row...); err != nil {
			return nil, err
		}
	}
	return f, nil
}

// ignoredGeometry is OGR's name for the default geometry field.
const ignoredGeometry = "OGR_GEOMETRY"

// ignoredFields lists the fields OGR can skip decoding for opts.
func ignoredFields(defs []gdb.FieldDef, opts gdb.ReadOptions) []string {
	var out []string
	for _, fd := range defs {
		if !opts.Wants(fd.Name) {
			out = append(out, fd.Name)
		}
	}
	if !opts.Geometry {
		out = append(out, ignoredGeometry)
	}
	return out
}

// setIgnoredFields replaces the layer's ignored field list; nil clears it.
func setIgnoredFields(l C.OGRLayerH, names []string) error {
	list := (**C.char)(C.calloc(C.size_t(len(names)+1), C.size_t(unsafe.Sizeof(uintptr(0)))))
	defer C.free(unsafe.Pointer(list))
	items := unsafe.Slice(list, len(names)+1)
	for i, n := range names {
		items[i] = C.CString(n)
	}
	defer func() {
		for i := range names {
			C.free(unsafe.Pointer(items[i]))
		}
	}()
	if C.OGR_L_SetIgnoredFields(l, list) != C.OGRERR_NONE {
		return eris.Errorf("set ignored fields: %s", lastError())
	}
	return nil
}

func fieldValue(fh C.OGRFeatureH, i C.int, kind gdb.FieldKind) any {
	if C.OGR_F_IsFieldSetAndNotNull(fh, i) == 0 {
		return nil
	}
	switch kind {
	case gdb.KindInteger, gdb.KindInteger64:
		return int64(C.OGR_F_GetFieldAsInteger64(fh, i))
	case gdb.KindReal:
		return float64(C.OGR_F_GetFieldAsDouble(fh, i))
	case gdb.KindDate:
		var y, mo, d, h, mi, tz C.int
		var s C.float
		if C.OGR_F_GetFieldAsDateTimeEx(fh, i, &y, &mo, &d, &h, &mi, &s, &tz) == 0 {
			return nil
		}
		sec, frac := math.Modf(float64(s))
		return time.Date(int(y), time.Month(mo), int(d), int(h), int(mi), int(sec), int(frac*1e9), time.UTC)
	case gdb.KindBinary:
		var n C.int
		p := C.OGR_F_GetFieldAsBinary(fh, i, &n)
		return C.GoBytes(unsafe.Pointer(p), n)
	default:
		return C.GoString(C.OGR_F_GetFieldAsString(fh, i))
	}
}

func featureWKB(fh C.OGRFeatureH) []byte {
	g := C.OGR_F_GetGeometryRef(fh)
	if g == nil {
		return nil
	}
	n := C.OGR_G_WkbSize(g)
	if n <= 0 {
		return nil
	}
	buf := C.malloc(C.size_t(n))
	defer C.free(buf)
	if C.OGR_G_ExportToIsoWkb(g, C.wkbNDR, (*C.uchar)(buf)) != C.OGRERR_NONE {
		return nil
	}
	return C.GoBytes(buf, n)
}

// Close implements gdb.Source.
func (g *geodatabase) Close() error {
	if g.h == nil {
		return nil
	}
	C.GDALClose(g.h)
	g.h = nil
	return nil
}

func lastError() string {
	msg := C.GoString(C.CPLGetLastErrorMsg())
	if msg == "" {
		return "unknown error"
	}
	return msg
}
