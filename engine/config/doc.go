// Package config provides configuration loading for the visualizer.
//
// Configuration is read from a YAML file layered over Default(), then
// environment variables with the OXY_ prefix override selected values:
//
//	OXY_LOG_LEVEL   logging.level
//	OXY_LOG_FORMAT  logging.format
//	OXY_ASSET_DIR   loader.base_dir
//	OXY_TICK_RATE   engine.tick_rate
//
// Asset paths may be a single string or, for cube textures, a list of six
// face paths in px, nx, py, ny, pz, nz order.
package config
