// Package ui implements an interactive terminal catalog browser using bubbletea's Elm architecture.
//
// The TUI provides a small multi-view workflow:
//  1. [AlbumListView] : Browse albums, newest first, cycling the artist filter with tab / shift+tab
//  2. [AlbumDetailView] : Read one album's metadata, tracklist and press summary
//  3. [BuildView] : Monitor real-time progress while the site is rebuilt
//  4. [ResultView] : Display the build summary
//
// The (view) [Model] implements bubbletea/Elm's standard Init/Update/View pattern, receiving messages via the Msg union type.
// Progress updates flow through a channel from the tasks Engine, providing non-blocking status reporting during builds.
//
// Keyboard navigation uses vim-style bindings (j/k, enter, esc, b, q) with contextual help displayed via charmbracelet/bubbles/help.
package ui
