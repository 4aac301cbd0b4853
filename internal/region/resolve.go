package region

import (
	"fmt"
	"path/filepath"

	"github.com/rotisserie/eris"
)

// File is one regional source file.
type File struct {
	Region  string
	Product Product
	Path    string
}

// FileMap maps regions to the file supplying them, in resolution order.
type FileMap []File

// Regions returns the region codes in order.
func (m FileMap) Regions() []string {
	out := make([]string, len(m))
	for i, f := range m {
		out[i] = f.Region
	}
	return out
}

// Path returns the file for region.
func (m FileMap) Path(region string) (string, bool) {
	for _, f := range m {
		if f.Region == region {
			return f.Path, true
		}
	}
	return "", false
}

// Len returns the number of regions.
func (m FileMap) Len() int { return len(m) }

// GDBPath returns the geodatabase path for a product and region.
func GDBPath(inDir string, p Product, region string) string {
	return filepath.Join(inDir, fmt.Sprintf("%s_%s.gdb", p, region))
}

// TIFPath returns the mukey raster path for a product and region.
func TIFPath(inDir string, p Product, region string) string {
	return filepath.Join(inDir, fmt.Sprintf("%s_%s.tif", p, region))
}

// Resolve enumerates the geodatabases supplying a table.
//
// SSURGO-only tables read every region from gSSURGO: the CONUS bulk file, or
// each CONUS state when partitioned, plus every non-CONUS region. Other
// tables take each region from the product that publishes it, using the
// gNATSGO CONUS bulk file when not partitioned. File existence is not
// checked; a missing file fails when that region is read.
func Resolve(inDir string, ssurgoOnly, partition bool) (FileMap, error) {
	var m FileMap
	seen := make(map[string]bool)

	add := func(p Product, regions []string) error {
		for _, r := range regions {
			if seen[r] {
				return eris.Errorf("region: %s resolves to more than one file", r)
			}
			seen[r] = true
			m = append(m, File{Region: r, Product: p, Path: GDBPath(inDir, p, r)})
		}
		return nil
	}

	if ssurgoOnly {
		conus := []string{CONUS}
		if partition {
			conus = AllCONUS()
		}
		if err := add(GSSURGO, conus); err != nil {
			return nil, err
		}
		if err := add(GSSURGO, AllNonCONUS()); err != nil {
			return nil, err
		}
		return m, nil
	}

	if partition {
		for _, p := range Products {
			if err := add(p, Coverages[p].CONUS); err != nil {
				return nil, err
			}
		}
	} else if err := add(GNATSGO, []string{CONUS}); err != nil {
		return nil, err
	}
	for _, p := range Products {
		if err := add(p, Coverages[p].NonCONUS); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// RasterSet is the set of mukey rasters to tile.
type RasterSet struct {
	// NonCONUS rasters are tiled one by one.
	NonCONUS []File
	// CONUS rasters are mosaicked before tiling.
	CONUS []string
}

// RasterFiles enumerates the per-region mukey rasters under inDir.
func RasterFiles(inDir string) RasterSet {
	var rs RasterSet
	for _, p := range Products {
		for _, r := range Coverages[p].NonCONUS {
			rs.NonCONUS = append(rs.NonCONUS, File{Region: r, Product: p, Path: TIFPath(inDir, p, r)})
		}
	}
	for _, p := range Products {
		for _, r := range Coverages[p].CONUS {
			rs.CONUS = append(rs.CONUS, TIFPath(inDir, p, r))
		}
	}
	return rs
}
