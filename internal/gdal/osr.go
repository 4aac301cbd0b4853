package gdal

/*
#cgo pkg-config: gdal
#include <stdlib.h>
#include "ogr_srs_api.h"
#include "cpl_conv.h"

static OGRSpatialReferenceH gnatsgo_srs(const char *wkt) {
	OGRSpatialReferenceH h = OSRNewSpatialReference(NULL);
	if (OSRSetFromUserInput(h, wkt) != OGRERR_NONE) {
		OSRDestroySpatialReference(h);
		return NULL;
	}
	OSRSetAxisMappingStrategy(h, OAMS_TRADITIONAL_GIS_ORDER);
	return h;
}
*/
import "C"

import (
	"strconv"
	"unsafe"

	"github.com/rotisserie/eris"
)

type crs struct {
	EPSG int
	WKT2 string
}

// describeCRS returns the EPSG code (zero when unknown) and WKT2 form of a
// CRS given in any form OSRSetFromUserInput accepts.
func describeCRS(def string) (crs, error) {
	h, err := newSRS(def)
	if err != nil {
		return crs{}, err
	}
	defer C.OSRDestroySpatialReference(h)

	var out crs
	if code := authorityCode(h); code != 0 {
		out.EPSG = code
	} else if C.OSRAutoIdentifyEPSG(h) == C.OGRERR_NONE {
		out.EPSG = authorityCode(h)
	}

	copt := C.CString("FORMAT=WKT2_2019")
	defer C.free(unsafe.Pointer(copt))
	opts := [2]*C.char{copt, nil}
	var cwkt *C.char
	if C.OSRExportToWktEx(h, &cwkt, &opts[0]) != C.OGRERR_NONE {
		return crs{}, eris.Errorf("gdal: export WKT2: %s", lastError())
	}
	defer C.CPLFree(unsafe.Pointer(cwkt))
	out.WKT2 = C.GoString(cwkt)
	return out, nil
}

// toWGS84 reprojects bounds from def into EPSG:4326 (lon/lat order).
func toWGS84(def string, b [4]float64) ([4]float64, error) {
	src, err := newSRS(def)
	if err != nil {
		return b, err
	}
	defer C.OSRDestroySpatialReference(src)
	dst, err := newSRS("EPSG:4326")
	if err != nil {
		return b, err
	}
	defer C.OSRDestroySpatialReference(dst)

	ct := C.OCTNewCoordinateTransformation(src, dst)
	if ct == nil {
		return b, eris.Errorf("gdal: coordinate transformation: %s", lastError())
	}
	defer C.OCTDestroyCoordinateTransformation(ct)

	var out [4]C.double
	ok := C.OCTTransformBounds(ct,
		C.double(b[0]), C.double(b[1]), C.double(b[2]), C.double(b[3]),
		&out[0], &out[1], &out[2], &out[3], 21)
	if ok == 0 {
		return b, eris.Errorf("gdal: transform bounds: %s", lastError())
	}
	return [4]float64{float64(out[0]), float64(out[1]), float64(out[2]), float64(out[3])}, nil
}

func newSRS(def string) (C.OGRSpatialReferenceH, error) {
	if def == "" {
		return nil, eris.New("gdal: raster has no CRS")
	}
	cdef := C.CString(def)
	defer C.free(unsafe.Pointer(cdef))
	h := C.gnatsgo_srs(cdef)
	if h == nil {
		return nil, eris.Errorf("gdal: parse CRS: %s", lastError())
	}
	return h, nil
}

func authorityCode(h C.OGRSpatialReferenceH) int {
	name := C.OSRGetAuthorityName(h, nil)
	if name == nil || C.GoString(name) != "EPSG" {
		return 0
	}
	code := C.OSRGetAuthorityCode(h, nil)
	if code == nil {
		return 0
	}
	n, err := strconv.Atoi(C.GoString(code))
	if err != nil {
		return 0
	}
	return n
}
