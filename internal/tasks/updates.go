package tasks

import (
	"fmt"
)

// ProgressUpdate represents a progress event during a long-running operation.
//
// Used to send real-time updates to the CLI or UI layer for display.
type ProgressUpdate struct {
	Phase   Phase  // Operation phase
	Step    int    // Current step number within phase
	Total   int    // Total steps in this phase
	Message string // Human-readable message for display
	Data    any    // Optional phase-specific data for advanced UIs
}

// Operation phase enumeration
type Phase int

const (
	LoadCatalog Phase = iota
	WriteAssets
	RenderPages
	ProcessCovers
	SyncAlbums
	SyncArtists
	SyncTimeline
	DumpCatalog
)

func (p Phase) String() string {
	switch p {
	case LoadCatalog:
		return "load_catalog"
	case WriteAssets:
		return "write_assets"
	case RenderPages:
		return "render_pages"
	case ProcessCovers:
		return "process_covers"
	case SyncAlbums:
		return "sync_albums"
	case SyncArtists:
		return "sync_artists"
	case SyncTimeline:
		return "sync_timeline"
	case DumpCatalog:
		return "dump_catalog"
	default:
		return ""
	}
}

func loadingUpdate(source string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   LoadCatalog,
		Step:    0,
		Total:   1,
		Message: fmt.Sprintf("Loading catalog from %s...", source),
	}
}

func loadedUpdate(albums, artists int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   LoadCatalog,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Loaded %d albums and %d artists", albums, artists),
	}
}

func assetsUpdate(dir string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   WriteAssets,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Writing assets and data to %s...", dir),
	}
}

func pageUpdate(step, total int, path string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   RenderPages,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] %s", step, total, path),
	}
}

func coverDoneUpdate(step, total int, res CoverResult) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ProcessCovers,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✓ %s", step, total, res.Slug),
		Data:    res,
	}
}

func coverFailedUpdate(step, total int, res CoverResult) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ProcessCovers,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✗ %s: %v", step, total, res.Slug, res.Error),
		Data:    res,
	}
}

func syncUpdate(phase Phase, step, total int, name string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   phase,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] %s", step, total, name),
	}
}

func dumpUpdate(step, total int, path string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   DumpCatalog,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("Writing %s...", path),
	}
}
