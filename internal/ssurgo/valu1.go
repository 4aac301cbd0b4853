package ssurgo

// Valu1Descriptions describes the valu1 table (key "table") and each of its
// columns. valu1 ships without metadata records, so these are carried here.
var Valu1Descriptions = map[string]string{
	"table":      "Included with the gSSURGO database, but not a part of the standard SSURGO dataset is a table called Valu1. This table contains 57 pre-summarized or “ready to map” attributes derived from the official SSURGO database. These attribute data are pre-summarized to the map unit level using best-practice generalization methods intended to meet the needs of most users. The generalization methods include map unit component weighted averages and percent of the map unit meeting a given criteria. These themes were prepared to better meet the mapping needs of users of soil survey information and can be used with both SSURGO and gridded SSURGO (gSSURGO) datasets.",
	"aws0_5":     "Available water storage estimate (AWS) in a standard zone 1 (0-5 cm depth), expressed in mm. The volume of plant available water that the soil can store in this layer based on all map unit components (weighted average). NULL values are presented where data are incomplete or not available.",
	"aws5_20":    "Available water storage estimate (AWS) in standard layer 2 (5-20 cm depth), expressed in mm. The volume of plant available water that the soil can store in this layer based on all map unit components (weighted average). NULL values are presented where data are incomplete or not available.",
	"aws20_50":   "Available water storage estimate (AWS) in standard layer 3 (20-50 cm depth), expressed in mm. The volume of plant available water that the soil can store in this layer based on all map unit components (weighted average). NULL values are presented where data are incomplete or not available.",
	"aws50_100":  "Available water storage estimate (AWS) in standard layer 3 (50-100 cm depth), expressed in mm. The volume of plant available water that the soil can store in this layer based on all map unit components (weighted average). NULL values are presented where data are incomplete or not available.",
	"aws100_150": "Available water storage estimate (AWS) in standard layer 5 (100-150 cm depth), expressed in mm. The volume of plant available water that the soil can store in this layer based on all map unit components (weighted average). NULL values are presented where data are incomplete or not available.",
	"aws150_999": "Available water storage estimate (AWS) in standard layer 6 (150 cm to the reported depth of the soil profile), expressed in mm. The volume of plant available water that the soil can store in this layer based on all map unit components (weighted average). NULL values are presented where data are incomplete or not available.",
	"aws0_20":    "Available water storage estimate (AWS) in standard zone 2 (0-20 cm depth), expressed in mm. The volume of plant available water that the soil can store in this zone based on all map unit components (weighted average). NULL values are presented where data are incomplete or not available.",
	"aws0_30":    "Available water storage estimate (AWS) in standard zone 3 (0-30 cm depth), expressed in mm. The volume of plant available water that the soil can store in this zone based on all map unit components (weighted average). NULL values are presented where data are incomplete or not available.",
	"aws0_100":   "Available water storage estimate (AWS) in standard zone 4 (0-100 cm depth), expressed in mm. The volume of plant available water that the soil can store in this zone based on all map unit components (weighted average). NULL values are presented where data are incomplete or not available.",
	"aws0_150":   "Available water storage estimate (AWS) in standard zone 5 (0-150 cm depth), expressed in mm. The volume of plant available water that the soil can store in this zone based on all map unit components (weighted average). NULL values are presented where data are incomplete or not available.",
	"aws0_999":   "Available water storage estimate (AWS) in total soil profile (0 cm to the reported depth of the soil profile), expressed in mm. The volume of plant available water that the soil can store in this layer based on all map unit components (weighted average). NULL values are presented where data are incomplete or not available.",
	"tk0_5a":     "Thickness of soil components used in standard layer 1 or standard zone 1 (0-5 cm) expressed in cm (weighted average) for the available water storage calculation. NULL values are presented where data are incomplete or not available.",
	"tk5_20a":    "Thickness of soil components used in standard layer 2 (5-20 cm) expressed in cm (weighted average) for the available water storage calculation. NULL values are presented where data are incomplete or not available.",
	"tk20_50a":   "Thickness of soil components used in standard layer 3 (20-50 cm) expressed in cm (weighted average) for the available water storage calculation. NULL values are presented where data are incomplete or not available.",
	"tk50_100a":  "Thickness of soil components used in standard layer 4 (50-100 cm) expressed in cm (weighted average) for the available water storage calculation. NULL values are presented where data are incomplete or not available.",
	"tk100_150a": "Thickness of soil components used in standard layer 5 (100-150 cm) expressed in cm (weighted average) for the available water storage calculation. NULL values are presented where data are incomplete or not available.",
	"tk150_999a": "Thickness of soil components used in standard layer 6 (150 cm to the reported depth of the soil profile) expressed in cm (weighted average) for the available water storage calculation. NULL values are presented where data are incomplete or not available.",
	"tk0_20a":    "Thickness of soil components used in standard zone 2 (0-20 cm) expressed in cm (weighted average) for the available water storage calculation. NULL values are presented where data are incomplete or not available.",
	"tk0_30a":    "Thickness of soil components used in standard zone 3 (0-30 cm) expressed in cm (weighted average) for the available water storage calculation. NULL values are presented where data are incomplete or not available.",
	"tk0_100a":   "Thickness of soil components used in standard zone 4 (0-100 cm) expressed in cm (weighted average) for the available water storage calculation. NULL values are presented where data are incomplete or not available.",
	"tk0_150a":   "Thickness of soil components used in standard zone 5 (0-150 cm) expressed in cm (weighted average) for the available water storage calculation. NULL values are presented where data are incomplete or not available.",
	"tk0_999a":   "Thickness of soil components used in total soil profile (0 cm to the reported depth of the soil profile) expressed in cm (weighted average) for the available water storage calculation. NULL values are presented where data are incomplete or not available.",
	"musumcpcta": "The sum of the comppct_r (SSURGO component table) values used in the available water storage calculation for the map unit. Useful metadata information. NULL values are presented where data are incomplete or not available.",
	"soc0_5":     "Soil organic carbon stock estimate (SOC) in standard layer 1 or standard zone 1 (0-5 cm depth). The concentration of organic carbon present in the soil expressed in grams C per square meter to a depth of 5 cm. NULL values are presented where data are incomplete or not available.",
	"soc5_20":    "Soil organic carbon stock estimate (SOC) in standard layer 2 (5-20 cm depth). The concentration of organic carbon present in the soil expressed in grams C per square meter for the 5-20 cm layer. NULL values are presented where data are incomplete or not available.",
	"soc20_50":   "Soil organic carbon stock estimate (SOC) in standard layer 3 (20-50 cm depth). The concentration of organic carbon present in the soil expressed in grams C per square meter for the 20-50 cm layer. NULL values are presented where data are incomplete or not available.",
	"soc50_100":  "Soil organic carbon stock estimate (SOC) in standard layer 4 (50-100 cm depth). The concentration of organic carbon present in the soil expressed in grams C per square meter for the 50-100 cm layer. NULL values are presented where data are incomplete or not available.",
	"soc100_150": "Soil organic carbon stock estimate (SOC) in standard layer 5 (100-150 cm depth). The concentration of organic carbon present in the soil expressed in grams C per square meter for the 100-150 cm layer. NULL values are presented where data are incomplete or not available.",
	"soc150_999": "Soil organic carbon stock estimate (SOC) in standard layer 6 (150 cm to the reported depth of the soil profile). The concentration of organic carbon present in the soil expressed in grams C per square meter for the 150 cm and greater depth layer. NULL values are presented where data are incomplete or not available.",
	"soc0_20":    "Soil organic carbon stock estimate (SOC) in standard zone 2 (0-20 cm depth). The concentration of organic carbon present in the soil expressed in grams C per square meter to a depth of 20 cm. NULL values are presented where data are incomplete or not available.",
	"soc0_30":    "Soil organic carbon stock estimate (SOC) in standard zone 3 (0-30 cm depth). The concentration of organic carbon present in the soil expressed in grams C per square meter to a depth of 30 cm. NULL values are presented where data are incomplete or not available.",
	"soc0_100":   "Soil organic carbon stock estimate (SOC) in standard zone 4 (0-100 cm depth). The concentration of organic carbon present in the soil expressed in grams C per square meter to a depth of 100 cm. NULL values are presented where data are incomplete or not available.",
	"soc0_150":   "Soil organic carbon stock estimate (SOC) in standard zone 5 (0-150 cm depth). The concentration of organic carbon present in the soil expressed in grams C per square meter to a depth of 150 cm. NULL values are presented where data are incomplete or not available.",
	"soc0_999":   "Soil organic carbon stock estimate (SOC) in total soil profile (0 cm to the reported depth of the soil profile). The concentration of organic carbon present in the soil expressed in grams C per square meter for the total reported soil profile depth. NULL values are presented where data are incomplete or not available.",
	"tk0_5s":     "Thickness of soil components used in standard layer 1 or standard zone 1 (0-5 cm) expressed in cm (weighted average) for the Soil Organic Carbon calculation. NULL values are presented where data are incomplete or not available.",
	"tk5_20s":    "Thickness of soil components used in standard layer 2 (5-20 cm) expressed in cm (weighted average) for the Soil Organic Carbon calculation. NULL values are presented where data are incomplete or not available.",
	"tk20_50s":   "Thickness of soil components used in standard layer 3 (20-50 cm) expressed in cm (weighted average) for the Soil Organic Carbon calculation. NULL values are presented where data are incomplete or not available.",
	"tk50_100s":  "Thickness of soil components used in standard layer 4 (50-100 cm) expressed in cm (weighted average) for the Soil Organic Carbon calculation. NULL values are presented where data are incomplete or not available.",
	"tk100_150s": "Thickness of soil components used in standard layer 5 (100-150 cm) expressed in cm (weighted average) for the Soil Organic Carbon calculation. NULL values are presented where data are incomplete or not available.",
	"tk150_999s": "Thickness of soil components used in standard layer 6 (150 cm to the reported depth of the soil profile) expressed in cm (weighted average) for the Soil Organic Carbon calculation. NULL values are presented where data are incomplete or not available.",
	"tk0_20s":    "Thickness of soil components used in standard zone 2 (0-20 cm) expressed in cm (weighted average) for the Soil Organic Carbon calculation. NULL values are presented where data are incomplete or not available.",
	"tk0_30s":    "Thickness of soil components used in standard zone 3 (0-30 cm) expressed in cm (weighted average) for the Soil Organic Carbon calculation. NULL values are presented where data are incomplete or not available.",
	"tk0_100s":   "Thickness of soil components used in standard zone 4 (0-100 cm) expressed in cm (weighted average) for the Soil Organic Carbon calculation. NULL values are presented where data are incomplete or not available.",
	"tk0_150s":   "Thickness of soil components used in standard zone 5 (0-150 cm) expressed in cm (weighted average) for the Soil Organic Carbon calculation. NULL values are presented where data are incomplete or not available.",
	"tk0_999s":   "Thickness of soil components used in total soil profile (0 cm to the reported depth of the soil profile) expressed in cm (weighted average) for the Soil Organic Carbon calculation. NULL values are presented where data are incomplete or not available.",
	"musumcpcts": "The sum of the comppct_r (SSURGO component table) values used in the soil organic carbon calculation for the map unit. Useful metadata information. NULL values are presented where data are incomplete or not available.",
	"nccpi3corn": "National Commodity Crop Productivity Index for Corn (weighted average) for major earthy components. Values range from .01 (low productivity) to .99 (high productivity). Earthy components are those soil series or higher level taxa components that can support crop growth (Dobos et al., 2012). Major components are those soil components where the majorcompflag = 'Yes' (SSURGO component table). NULL values are presented where data are incomplete or not available.",
	"nccpi3soy":  "National Commodity Crop Productivity Index for Soybeans (weighted average) for major earthy components. Values range from .01 (low productivity) to .99 (high productivity). Earthy components are those soil series or higher level taxa components that can support crop growth (Dobos et al., 2012). Major components are those soil components where the majorcompflag = 'Yes' (SSURGO component table). NULL values are presented where data are incomplete or not available.",
	"nccpi3cot":  "National Commodity Crop Productivity Index for Cotton (weighted average) for major earthy components. Values range from .01 (low productivity) to .99 (high productivity). Earthy components are those soil series or higher level taxa components that can support crop growth (Dobos et al., 2012). Major components are those soil components where the majorcompflag = 'Yes' (SSURGO component table). NULL values are presented where data are incomplete or not available.",
	"nccpi3sg":   "National Commodity Crop Productivity Index for Small Grains (weighted average) for major earthy components. Values range from .01 (low productivity) to .99 (high productivity). Earthy components are those soil series or higher level taxa components that can support crop growth (Dobos et al., 2012). Major components are those soil components where the majorcompflag = 'Yes' (SSURGO component table). NULL values are presented where data are incomplete or not available.",
	"nccpi3all":  "National Commodity Crop Productivity Index that has the highest value among Corn and Soybeans, Small Grains, or Cotton (weighted average) for major earthy components. Values range from .01 (low productivity) to .99 (high productivity). Earthy components are those soil series or higher level taxa components that can support crop growth (Dobos et al., 2012). Major components are those soil components where the majorcompflag = 'Yes' (SSURGO component table). NULL values are presented where data are incomplete or not available.",
	"pctearthmc": "The National Commodity Crop Productivity Index map unit percent earthy is the map unit summed comppct_r for major earthy components. Earthy components are those soil series or higher level taxa components that can support crop growth (Dobos et al., 2012). Major components are those soil components where the majorcompflag = 'Yes' (SSURGO component table). Useful metadata information. NULL values are presented where data are incomplete or not available.",
	"rootznemc":  "Root zone depth is the depth within the soil profile that commodity crop (cc) roots can effectively extract water and nutrients for growth. Root zone depth influences soil productivity significantly. Soil component horizon criteria for root-limiting depth include: presence of hard bedrock, soft bedrock, a fragipan, a duripan, sulfuric material, a dense layer, a layer having a pH of less than 3.5, or a layer having an electrical conductivity of more than 12 within the component soil profile. If no root-restricting zone is identified, a depth of 150 cm is used to approximate the root zone depth (Dobos et al., 2012). Root zone depth is computed for all map unit major earthy components (weighted average). Earthy components are those soil series or higher level taxa components that can support crop growth (Dobos et al., 2012). Major components are those soil components where the majorcompflag = 'Yes' (SSURGO component table). NULL values are presented where data are incomplete or not available.",
	"rootznaws":  "Root zone (commodity crop) available water storage estimate (RZAWS) , expressed in mm, is the volume of plant available water that the soil can store within the root zone based on all map unit earthy major components (weighted average). Earthy components are those soil series or higher level taxa components that can support crop growth (Dobos et al., 2012). Major components are those soil components where the majorcompflag = 'Yes' (SSURGO component table). NULL values are presented where data are incomplete or not available.",
	"droughty":   "zone for commodity crops that is less than or equal to 6 inches (152 mm) expressed as \"1\" for a drought vulnerable soil landscape map unit or \"0\" for a non-droughty soil landscape map unit or NULL for miscellaneous areas (includes water bodies) or where data were not available. It is computed as a weighted average for major earthy components. Earthy components are those soil series or higher level taxa components that can support crop growth (Dobos et al., 2012). Major components are those soil components where the majorcompflag = 'Yes'",
	"pwsl1pomu":  "Potential Wetland Soil Landscapes (PWSL) is expressed as the percentage of the map unit that meets the PWSL criteria. The hydric rating (soil component variable “hydricrating”) is an indicator of wet soils. For version 1 (pwsl1), those soil components that meet the following criteria are tagged as PWSL and their comppct_r values are summed for each map unit. Soil components with hydricrating = 'YES' are considered PWSL. Soil components with hydricrating = “NO” are not PWSL. Soil components with hydricrating = 'UNRANKED' are tested using other attributes, and will be considered PWSL if any of the following conditions are met: drainagecl = 'Poorly drained' or 'Very poorly drained' or the localphase or the otherph data fields contain any of the phrases \"drained\" or \"undrained\" or \"channeled\" or \"protected\" or \"ponded\" or \"flooded\". If these criteria do not determine the PWSL for a component and hydricrating = 'UNRANKED', then the map unit will be classified as PWSL if the map unit name contains any of the phrases \"drained\" or \"undrained\" or \"channeled\" or \"protected\" or \"ponded\" or \"flooded\". For version 1 (pwsl1), waterbodies are identified as \"999\" when map unit names match a list of terms that identify water or intermittent water or map units have a sum of the comppct_r for \"Water\" that is 80% or greater. NULL values are presented where data are incomplete or not available.",
	"musumcpct":  "The sum of the comppct_r (SSURGO component table) values for all listed components in the map unit. Useful metadata information. NULL values are presented where data are incomplete or not available.",
	"mukey":      "Map unit key is the unique identifier of a record in the Mapunit table. Use this column to join the Component table to the Mapunit table and the valu1 table to the MapUnitRaster_10m raster map layer to map valu1 themes.",
}

// Valu1Columns lists the valu1 columns in published order, excluding mukey.
var Valu1Columns = []string{
	"aws0_5", "aws5_20", "aws20_50", "aws50_100", "aws100_150", "aws150_999",
	"aws0_20", "aws0_30", "aws0_100", "aws0_150", "aws0_999", "tk0_5a",
	"tk5_20a", "tk20_50a", "tk50_100a", "tk100_150a", "tk150_999a", "tk0_20a",
	"tk0_30a", "tk0_100a", "tk0_150a", "tk0_999a", "musumcpcta", "soc0_5",
	"soc5_20", "soc20_50", "soc50_100", "soc100_150", "soc150_999", "soc0_20",
	"soc0_30", "soc0_100", "soc0_150", "soc0_999", "tk0_5s", "tk5_20s",
	"tk20_50s", "tk50_100s", "tk100_150s", "tk150_999s", "tk0_20s", "tk0_30s",
	"tk0_100s", "tk0_150s", "tk0_999s", "musumcpcts", "nccpi3corn", "nccpi3soy",
	"nccpi3cot", "nccpi3sg", "nccpi3all", "pctearthmc", "rootznemc", "rootznaws",
	"droughty", "pwsl1pomu", "musumcpct",
}
