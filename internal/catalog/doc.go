// Package catalog loads the archive's JSON data and turns it into what the pages show.
//
// # Loading
//
// A [Fetcher] returns the raw bytes of a named resource (albums.json, artists.json,
// timeline.json). [FileSource] reads a data directory; [HTTPSource] fetches from a
// deployed site through a rate limiter. [JSONSource] decodes either into models, and
// [Load] fetches albums and artists concurrently. Albums are required; a missing
// artists or timeline resource is logged and treated as empty.
//
// # Album grid
//
// [BuildGrid] filters by artist slug ([FilterAll] keeps everything), sorts by release
// date with the newest first, and produces one [Card] per album along with the count.
// [FilterButtons] builds the filter control and [GridClass] maps a viewport width to one
// of the grid-cols-N classes.
//
// # Navigation
//
// [Menu] models the mobile navigation toggle: the toggle button flips it, clicks inside
// the panel are ignored, and clicks anywhere else close it.
package catalog
