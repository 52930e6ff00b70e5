// Package repositories implements SQLite persistence for the catalog.
//
// Albums and artists are stored as JSON documents keyed by slug, with the columns needed for
// lookups (artist slug, name, release date) kept alongside. Storing the whole document keeps
// every optional field of albums.json intact through a sync and dump round trip.
// All repositories support soft deletes via deleted_at timestamps and exclude deleted records from queries by default.
//
// Key Implementations:
//   - [AlbumRepository] : album persistence with artist and year filters
//   - [ArtistRepository] : artist persistence
//   - [TimelineRepository] : ordered label events, replaced wholesale on import
//   - [Store] : all three, usable wherever a catalog source is expected
//
// The [NextSequence] function atomically increments per-table sequence counters in dedicated sequence tables,
// so records list in the order they were first imported.
package repositories
