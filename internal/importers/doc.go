// Package importers merges external label material into the catalog JSON.
//
// Each importer works on decoded records and reports what it changed through a
// [log.Logger]; reading and writing the data directory is left to the caller:
//
//   - Press sheets (CSV with Album Name, Featured Quote and Press columns)
//   - Overrides (TOML keyed by album and artist slug)
//   - Bandcamp embeds (rewritten to the compact 120px player)
//   - Cover files found under an images directory
//   - WordPress WXR exports (timeline entries, artist categories, media URLs)
package importers
