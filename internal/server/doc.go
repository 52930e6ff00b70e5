// Package server provides HTTP routing, middleware and a gracefully stopping server for the
// archive preview.
//
// # Router Infrastructure
//
// The [Router] interface defines HTTP routing with middleware support.
//
// [Middleware] wraps handlers in reverse order (last added executes first), following the standard Go pattern.
//
// The [BasicRouter] implementation uses [http.ServeMux] internally with method filtering.
//
// # Middleware
//
//   - [RequestLogger] logs every request through charmbracelet/log
//   - [Recoverer] converts panics into 500 responses
//   - [NoCache] keeps browsers from caching pages between rebuilds
//
// # Handler Interface
//
// Custom handlers implement the [Handler] interface, which wraps the stdlib handler interface and adds routes,
// allowing handlers to register multiple routes to encapsulate route definitions within the implementation.
// The site package's preview handler registers the catalog page and the albums API this way.
//
// # Lifecycle
//
// [Server.Run] serves until its context is cancelled, then shuts down within [ShutdownTimeout].
package server
