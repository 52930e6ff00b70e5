// Package tasks orchestrates long-running catalog operations with real-time progress reporting.
//
// # Core Operations
//
// [Engine] reads the catalog from a [catalog.Source] and provides:
//
//  1. [Engine.Build] : Render the static site
//     - Loads albums, artists and timeline
//     - Writes the browser script, style sheet, assets and data files
//     - Renders every page through [site.Generator]
//
//  2. [Engine.Covers] : Produce cover thumbnails
//     - Reads local covers or downloads remote ones through a rate limiter
//     - Resizes them on a bounded worker pool
//     - Reports per-cover failures without stopping the run
//
//  3. [Engine.Sync] : Copy the catalog into the database
//     - Upserts albums and artists, soft-deleting records no longer present
//     - Replaces the timeline
//
//  4. [Engine.Dump] : Write the catalog back out as JSON data files
//
// # Progress Reporting
//
// All operations use non-blocking channels for progress updates.
//
// The [ProgressUpdate] struct contains phase, step counters, messages, and optional data for advanced UI rendering.
// Updates use select with default to prevent blocking.
package tasks
