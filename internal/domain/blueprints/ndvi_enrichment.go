package blueprints

import m "nbforge.dev/pkg/nbforge/internal/model"

// NDVIEnrichment adds a SMAP soil-moisture layer and a slope layer to the
// NDVI variant of the monitor notebook. The processing cell (index 5)
// gains the soil-moisture sourcing block; the visualization cell (index 7)
// gains the viz dictionaries after the change_viz line and the add_layer
// calls before the risk-hotspots layer. Every op is guarded by a marker,
// so the set can be re-applied to an already-enriched notebook.
func NDVIEnrichment() m.PatchSet {
	return m.PatchSet{
		Name:        "ndvi-enrichment",
		Description: "Add SMAP soil moisture and slope layers to the NDVI notebook",
		Cells: []m.CellPatch{
			{
				Cell: 5,
				Inserts: []m.Insert{
					{
						Marker: "soil_moisture_layer",
						Lines: block(
							"soil_moisture_layer = None",
							"try:",
							"    soil_moisture_dataset = 'NASA_USDA/HSL/SMAP10KM_soil_moisture'",
							"    soil_moisture_collection = (",
							"        ee.ImageCollection(soil_moisture_dataset)",
							"        .filterDate(start_date_recent, end_date_recent)",
							"        .filterBounds(roi)",
							"    )",
							"    soil_moisture_count = soil_moisture_collection.size().getInfo() or 0",
							"    if soil_moisture_count > 0:",
							"        soil_moisture_layer = soil_moisture_collection.select('ssm').mean().clip(roi)",
							"        print(f'Soil moisture images used: {soil_moisture_count}')",
							"    else:",
							"        print('No soil moisture data available for the selected period.')",
							"except Exception as exc:",
							"    soil_moisture_layer = None",
							"    print(f'Soil moisture layer unavailable: {exc}')",
						),
					},
				},
			},
			{
				Cell: 7,
				Inserts: []m.Insert{
					{
						Marker: "soil_moisture_viz",
						Lines: block(
							"soil_moisture_viz = {'min': 0.0, 'max': 0.6, 'palette': ['#f7fcf5', '#74c476', '#00441b']}",
						),
						Anchor: &m.Anchor{Prefix: "change_viz"},
					},
					{
						Marker: "slope_viz",
						Lines: block(
							"slope_viz = {'min': 0, 'max': 45, 'palette': ['#ffffcc', '#fd8d3c', '#800026']}",
						),
						Anchor: &m.Anchor{Prefix: "change_viz"},
					},
					{
						Marker: "Soil Moisture (SMAP)",
						Lines: block(
							"if soil_moisture_layer is not None:",
							"    m.add_layer(soil_moisture_layer, soil_moisture_viz, 'Soil Moisture (SMAP)')",
						),
						Anchor: &m.Anchor{Contains: "m.add_layer(risk_hotspots", Placement: m.PlaceBefore},
					},
					{
						Marker: "Slope (degrees)",
						Lines: block(
							"m.add_layer(slope.clip(roi), slope_viz, 'Slope (degrees)')",
						),
						Anchor: &m.Anchor{Contains: "m.add_layer(risk_hotspots", Placement: m.PlaceBefore},
					},
				},
			},
		},
	}
}
