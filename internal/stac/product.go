package stac

// CollectionID is the id of the gNATSGO collection.
const CollectionID = "gnatsgo"

// Description is the collection description.
const Description = `The gridded National Soil Survey Geographic Database (gNATSGO) is a USDA-NRCS Soil & Plant Science Division (SPSD) composite database that provides complete coverage of the best available soils information for all areas of the United States and Island Territories. It was created by combining data from the Soil Survey Geographic Database (SSURGO), State Soil Geographic Database (STATSGO2), and Raster Soil Survey Databases (RSS) into a single seamless ESRI file geodatabase.

SSURGO is the SPSD flagship soils database that has over 100 years of field-validated detailed soil mapping data. SSURGO contains soils information for more than 90 percent of the United States and island territories, but unmapped land remains. STATSGO2 is a general soil map that has soils data for all of the United States and island territories, but the data is not as detailed as the SSURGO data. The Raster Soil Surveys (RSSs) are the next generation soil survey databases developed using advanced digital soil mapping methods.

The gNATSGO database is composed primarily of SSURGO data, but STATSGO2 data was used to fill in the gaps. The RSSs are newer product with relatively limited spatial extent.  These RSSs were merged into the gNATSGO after combining the SSURGO and STATSGO2 data. The extent of RSS is expected to increase in the coming years.`

// MukeyDescription describes the mukey tile asset.
const MukeyDescription = "Map unit key is the unique identifier of a record in the Mapunit table."

// SpatialResolution of the rasters in meters.
const SpatialResolution = 10

// Providers of the product.
func Providers() []Provider {
	return []Provider{{
		Name:  "United States Department of Agriculture, Natural Resources Conservation Service",
		Roles: []string{"licensor", "producer", "processor", "host"},
		URL:   "https://www.nrcs.usda.gov/",
	}}
}

// Links shared by the collection and tile items.
func Links() []Link {
	return []Link{{
		Rel:         "handbook",
		Href:        "https://www.nrcs.usda.gov/wps/PA_NRCSConsumption/download?cid=nrcs142p2_051847&ext=pdf",
		Type:        "application/pdf",
		Title:       "gSSURGO User Guide",
		Description: "Also includes data usage information",
	}}
}
