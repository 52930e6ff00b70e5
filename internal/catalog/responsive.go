package catalog

// Viewport breakpoints in CSS pixels.
const (
	BreakpointSmall  = 640
	BreakpointMedium = 768
	BreakpointLarge  = 1024
)

// GridClasses lists every class [GridClass] can return.
var GridClasses = []string{"grid-cols-1", "grid-cols-2", "grid-cols-3", "grid-cols-4"}

// GridClass maps a viewport width to the album grid's column class.
//
// An unknown width (zero or negative) gets the widest layout.
func GridClass(width int) string {
	switch {
	case width <= 0:
		return GridClasses[3]
	case width < BreakpointSmall:
		return GridClasses[0]
	case width < BreakpointMedium:
		return GridClasses[1]
	case width < BreakpointLarge:
		return GridClasses[2]
	default:
		return GridClasses[3]
	}
}
