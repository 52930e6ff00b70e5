// Package site renders a loaded catalog into the static archive.
//
// # Pages
//
// A [Generator] turns a [models.Catalog] into a list of [Page] values, each pairing an
// output path with a template and its view data:
//
//   - index.html: the album grid with artist filter buttons and a visible count
//   - pages/albums/<slug>.html: one detail page per album
//   - pages/artists/<slug>.html and pages/artists/index.html
//   - pages/about.html: label history with the grouped timeline
//
// Templates and the browser assets (assets/js/app.js, assets/css/style.css) are embedded.
// Descriptions and bios are markdown rendered with goldmark.
//
// # Preview
//
// [Handler] serves the output directory and renders the catalog page live so filter, menu
// and viewport state can be driven from the query string without the browser script.
package site
