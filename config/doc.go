// Package config persists marker configurations and loads tuning files.
//
// A Snapshot records the working markers of the current page, the saved
// markers of every marked page and any manually entered cell data, so that
// a later session can reproduce the same extraction. Snapshots are JSON by
// default; files ending in .yaml or .yml are written as YAML.
//
// LoadTuning reads a YAML file of detector and heuristic thresholds and
// overlays it onto the defaults. Keys that are absent keep their default
// value:
//
//	lines:
//	  peak_threshold: 0.25
//	orientation:
//	  threshold: 6
package config
