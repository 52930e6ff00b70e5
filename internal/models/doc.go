// Package models defines the domain entities of the Static Motor Recordings archive.
//
// The package contains two categories of types:
//
// 1. Catalog records: plain JSON documents read from the data directory
//   - [Album] : A release with cover, dates, tracks, press and embeds
//   - [Artist] : A label act with bio, hero image and discography references
//   - [TimelineEntry] : A dated label event shown on the about page
//
// 2. Aggregates used by the renderer and the persistence layer
//   - [Catalog] : Albums, artists and timeline loaded together
//
// Records implement the [Model] interface (a stable key plus validation) so the
// [Repository] interface can persist them. Slugs are the keys and must be unique.
package models
