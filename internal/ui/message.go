package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/desertthunder/smrx/internal/models"
	"github.com/desertthunder/smrx/internal/tasks"
)

// MsgKind enumerates all message types in the application.
type MsgKind int

// Msg represents all possible messages in the TUI (Elm-style message union).
type Msg struct {
	kind MsgKind
	data any
}

var (
	_ tea.Msg = Msg{}
)

const (
	MsgCatalogLoaded MsgKind = iota
	MsgProgressUpdate
	MsgBuildComplete
)

type catalogLoaded struct {
	catalog *models.Catalog
	err     error
}

type buildComplete struct {
	result *tasks.BuildResult
	err    error
}

// catalogLoadedMsg is the constructor for [MsgCatalogLoaded]
func catalogLoadedMsg(cat *models.Catalog, err error) Msg {
	return Msg{kind: MsgCatalogLoaded, data: catalogLoaded{cat, err}}
}

// progressUpdateMsg is the constructor for [MsgProgressUpdate]
func progressUpdateMsg(update tasks.ProgressUpdate) Msg {
	return Msg{kind: MsgProgressUpdate, data: update}
}

// buildCompleteMsg is the constructor for [MsgBuildComplete]
func buildCompleteMsg(result *tasks.BuildResult, err error) Msg {
	return Msg{kind: MsgBuildComplete, data: buildComplete{result, err}}
}
