// Package region holds the fixed product coverage tables for gNATSGO and
// gSSURGO and resolves which regional file supplies each region.
package region

import (
	"strings"
)

// Product names a USDA soils product.
type Product string

const (
	GNATSGO Product = "gNATSGO"
	GSSURGO Product = "gSSURGO"
)

// CONUS is the region code of the bulk conterminous-US file.
const CONUS = "CONUS"

// Coverage lists the regions a product publishes individual files for.
type Coverage struct {
	CONUS    []string // states inside the conterminous US
	NonCONUS []string // states and territories outside it
}

// Products is the product order used whenever files are enumerated.
var Products = []Product{GNATSGO, GSSURGO}

// Coverages maps each product to its regional coverage. gNATSGO is only
// published where gSSURGO is gappy.
var Coverages = map[Product]Coverage{
	GNATSGO: {
		CONUS: []string{
			"AR", "AZ", "CA", "CO", "FL", "GA", "ID", "KY", "MI", "MN", "MS",
			"MT", "ND", "NH", "NM", "NV", "NY", "OK", "OR", "TN", "TX", "UT",
			"VA", "VT", "WA", "WY",
		},
		NonCONUS: []string{"AK", "PRUSVI"},
	},
	GSSURGO: {
		CONUS: []string{
			"AL", "CT", "DC", "DE", "IA", "IL", "IN", "KS", "LA", "MA", "MD",
			"ME", "MO", "NC", "NE", "NJ", "OH", "PA", "RI", "SC", "SD", "WI",
			"WV",
		},
		NonCONUS: []string{"AS", "FM", "GU", "HI", "MH", "MP", "PW"},
	},
}

// AllCONUS returns every CONUS state across products, in product order.
func AllCONUS() []string {
	var out []string
	for _, p := range Products {
		out = append(out, Coverages[p].CONUS...)
	}
	return out
}

// AllNonCONUS returns every non-CONUS region across products, in product order.
func AllNonCONUS() []string {
	var out []string
	for _, p := range Products {
		out = append(out, Coverages[p].NonCONUS...)
	}
	return out
}

// AllRegions returns every individually published region. This is the
// domain of the region column on partitioned tables.
func AllRegions() []string {
	var out []string
	for _, p := range Products {
		out = append(out, Coverages[p].CONUS...)
		out = append(out, Coverages[p].NonCONUS...)
	}
	return out
}

// BulkRegions returns the regions of a non-partitioned table: the CONUS
// bulk file plus every non-CONUS region.
func BulkRegions() []string {
	return append([]string{CONUS}, AllNonCONUS()...)
}

// ProductFor returns the product that publishes an individual file for region.
func ProductFor(region string) (Product, bool) {
	region = strings.ToUpper(region)
	for _, p := range Products {
		c := Coverages[p]
		if contains(c.CONUS, region) || contains(c.NonCONUS, region) {
			return p, true
		}
	}
	return "", false
}

// Valid reports whether code names a known region or CONUS.
func Valid(code string) bool {
	if strings.EqualFold(code, CONUS) {
		return true
	}
	_, ok := ProductFor(code)
	return ok
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
