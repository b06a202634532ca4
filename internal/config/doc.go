// Package config provides configuration loading for sheetqa.
//
// # Configuration Sources
//
// Configuration is built from the following sources in order of precedence:
//
//  1. Environment variables (highest priority)
//  2. A YAML file: $SHEETQA_CONFIG, ./sheetqa.yaml or ./configs/sheetqa.yaml
//  3. Default values (lowest priority)
//
// # Environment Variables
//
// All environment variables follow the pattern SHEETQA_<SECTION>_<FIELD>:
//
//	SHEETQA_LOGGING_LEVEL=debug
//	SHEETQA_PATHS_SOURCE_DIR=/data/workbooks
//	SHEETQA_AUDIT_HIGHLIGHT_FILL=FFFF00
//	SHEETQA_AUDIT_CSV_BOM=false
//
// # Path Management
//
// Paths resolves the source folder, the reports folder and the "latest"
// folder beneath it:
//
//	paths, err := config.NewPaths(cfg.Paths)
//	if err := paths.EnsureDirectories(); err != nil { ... }
//	dir := paths.GetRunDir("20240105_101500")
//
// # Run Files
//
// LoadRunFile reads a YAML list of domain.RunConfig values so a whole
// session can be replayed without prompts. Runs are validated with
// go-playground/validator struct tags.
package config
