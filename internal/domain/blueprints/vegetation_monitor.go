package blueprints

import m "nbforge.dev/pkg/nbforge/internal/model"

// vegetationMonitor is the landslide-risk proof-of-concept notebook: it
// cloud-masks Sentinel-2 imagery over Baungon, Bukidnon, compares NDVI
// between a historical baseline and the recent period, and renders the
// layers on an interactive map. All of that runs inside the notebook
// kernel against Google Earth Engine; nbforge only emits the cell text.
func vegetationMonitor() Blueprint {
	return Blueprint{
		Name:        "vegetation-monitor",
		Filename:    "GeoSafeMonitor.ipynb",
		Description: "Landslide risk POC: NDVI change over Baungon, Bukidnon",
		Metadata:    python3Metadata,
		Cells:       vegetationMonitorCells(),
	}
}

func vegetationMonitorCells() []m.Cell {
	cells := []m.Cell{
		markdown(
			"# Geo-Safe Monitor PH: Landslide Risk POC\n\n" +
				"This notebook mirrors the prototype workflow for monitoring vegetation change over Baungon, " +
				"Bukidnon using Sentinel-2 imagery. It incorporates the fixes highlighted in the earlier code review, " +
				"including reliable dependency handling, historical data availability checks, and explicit map rendering.\n",
		),
		code(
			"import importlib.util",
			"import subprocess",
			"import sys",
			"",
			"DEPENDENCIES = {",
			"    'ee': 'earthengine-api',",
			"    'geemap': 'geemap',",
			"    'pandas': 'pandas',",
			"    'matplotlib': 'matplotlib',",
			"}",
			"",
			"for module_name, package_name in DEPENDENCIES.items():",
			"    if importlib.util.find_spec(module_name) is None:",
			"        print(f'Installing {package_name}...')",
			"        subprocess.check_call([sys.executable, '-m', 'pip', 'install', package_name])",
		),
		code(
			"import ee",
			"import geemap",
			"import pandas as pd",
			"import matplotlib.pyplot as plt",
			"",
			"try:",
			"    ee.Initialize()",
			"    print('Google Earth Engine initialized.')",
			"except Exception:",
			"    print('Authenticating with Google Earth Engine...')",
			"    ee.Authenticate()",
			"    ee.Initialize()",
			"    print('Authentication complete.')",
		),
		markdown(
			"## Configuration and Helper Functions\n\n" +
				"Define the ROI, time windows, and utility functions for cloud masking, NDVI computation, and data sourcing with a fallback for historical imagery.\n",
		),
		code(
			"def mask_s2_clouds(image):",
			"    \"\"\"Mask clouds in a Sentinel-2 image using the QA60 band.\"\"\"",
			"    qa = image.select('QA60')",
			"    cloud_bit_mask = 1 << 10",
			"    cirrus_bit_mask = 1 << 11",
			"    mask = qa.bitwiseAnd(cloud_bit_mask).eq(0).And(qa.bitwiseAnd(cirrus_bit_mask).eq(0))",
			"    return image.updateMask(mask).divide(10000)",
			"",
			"",
			"def add_ndvi(image):",
			"    \"\"\"Add an NDVI band to a Sentinel-2 image.\"\"\"",
			"    ndvi = image.normalizedDifference(['B8', 'B4']).rename('NDVI')",
			"    return image.addBands(ndvi)",
			"",
			"",
			"def get_sentinel_collection(start_date, end_date, region, max_cloud=20):",
			"    sr_id = 'COPERNICUS/S2_SR_HARMONIZED'",
			"    sr_collection = (",
			"        ee.ImageCollection(sr_id)",
			"        .filterDate(start_date, end_date)",
			"        .filterBounds(region)",
			"        .filter(ee.Filter.lt('CLOUDY_PIXEL_PERCENTAGE', max_cloud))",
			"    )",
			"",
			"    sr_count = sr_collection.size().getInfo() or 0",
			"    if sr_count > 0:",
			"        return sr_collection, sr_id",
			"",
			"    toa_id = 'COPERNICUS/S2'",
			"    toa_collection = (",
			"        ee.ImageCollection(toa_id)",
			"        .filterDate(start_date, end_date)",
			"        .filterBounds(region)",
			"        .filter(ee.Filter.lt('CLOUDY_PIXEL_PERCENTAGE', max_cloud))",
			"    )",
			"",
			"    toa_count = toa_collection.size().getInfo() or 0",
			"    if toa_count == 0:",
			"        raise RuntimeError(",
			"            f'No Sentinel-2 imagery available for {start_date} to {end_date} in the selected ROI.'",
			"        )",
			"",
			"    print(f'Fallback to {toa_id} for {start_date} - {end_date}.')",
			"    return toa_collection, toa_id",
		),
		code(
			"roi = ee.Geometry.Rectangle([124.60, 8.30, 124.70, 8.40])",
			"",
			"start_date_recent = '2024-01-01'",
			"end_date_recent = '2024-12-31'",
			"start_date_historical = '2015-01-01'",
			"end_date_historical = '2015-12-31'",
			"",
			"VEGETATION_LOSS_THRESHOLD = -0.15",
			"",
			"recent_collection, recent_dataset = get_sentinel_collection(start_date_recent, end_date_recent, roi)",
			"historical_collection, historical_dataset = get_sentinel_collection(start_date_historical, end_date_historical, roi)",
			"",
			"recent_image = recent_collection.map(mask_s2_clouds).median()",
			"recent_image_with_ndvi = add_ndvi(recent_image)",
			"",
			"historical_image = historical_collection.map(mask_s2_clouds).median()",
			"historical_image_with_ndvi = add_ndvi(historical_image)",
			"",
			"print(f'Using {recent_dataset} for the recent period and {historical_dataset} for the historical baseline.')",
		),
		code(
			"ndvi_difference = recent_image_with_ndvi.select('NDVI').subtract(",
			"    historical_image_with_ndvi.select('NDVI')",
			")",
			"",
			"mean_ndvi_change_dict = ndvi_difference.reduceRegion(",
			"    reducer=ee.Reducer.mean(),",
			"    geometry=roi,",
			"    scale=30,",
			")",
			"",
			"mean_ndvi_change_value = None",
			"mean_ndvi_change = mean_ndvi_change_dict.get('NDVI')",
			"if mean_ndvi_change is not None:",
			"    try:",
			"        mean_ndvi_change_value = mean_ndvi_change.getInfo()",
			"    except Exception as exc:",
			"        print(f'Unable to retrieve NDVI change: {exc}')",
			"",
			"if mean_ndvi_change_value is None:",
			"    alert_message = (",
			"        '>>> DATA WARNING: Unable to compute NDVI change for the selected period.\\n'",
			"        '>>> Please verify imagery availability or adjust the ROI and time range.\\n'",
			"    )",
			"    print('Average NDVI change could not be determined.')",
			"else:",
			"    print(f'Average NDVI Change from 2015 to 2024: {mean_ndvi_change_value:.4f}')",
			"    if mean_ndvi_change_value < VEGETATION_LOSS_THRESHOLD:",
			"        alert_message = (",
			"            '>>> RISK DETECTED: Significant vegetation loss identified.\\n'",
			"            '>>> This area is flagged as a high-risk hotspot.\\n'",
			"            '>>> Recommendation: Deploy Geo-Safe Sensor Nodes to this location.'",
			"        )",
			"    else:",
			"        alert_message = (",
			"            '>>> MONITORING: No significant large-scale vegetation loss detected.\\n'",
			"            '>>> Continue routine satellite monitoring of this area.'",
			"        )",
			"",
			"print('\\n------------------------------------------------------------')",
			"print(''.join(alert_message))",
			"print('------------------------------------------------------------')",
		),
		code(
			"rgb_viz = {'min': 0.0, 'max': 0.3, 'bands': ['B4', 'B3', 'B2']}",
			"ndvi_viz = {'min': 0, 'max': 1, 'palette': ['blue', 'white', 'green']}",
			"change_viz = {'min': -0.5, 'max': 0.5, 'palette': ['red', 'white', 'green']}",
			"",
			"m = geemap.Map(center=[8.35, 124.65], zoom=12)",
			"m.add_layer(recent_image.clip(roi), rgb_viz, 'Recent Image (2024)')",
			"m.add_layer(historical_image.clip(roi), rgb_viz, 'Historical Image (2015)')",
			"m.add_layer(recent_image_with_ndvi.select('NDVI').clip(roi), ndvi_viz, 'Recent NDVI (Vegetation Health)')",
			"m.add_layer(ndvi_difference.clip(roi), change_viz, 'NDVI Change (Red indicates loss)')",
			"m.addLayerControl()",
			"m",
		),
	}

	return cells
}
