// Package playback coordinates replay navigation: it owns the active
// tracker, drives the single background playback goroutine, and pushes
// state updates to a set of registered view callbacks. Views are plain
// interfaces injected at composition time; the package never renders
// anything itself.
package playback

import "github.com/ashmarty/hexview/internal/replay"

// GameView receives the full snapshot to render, once per turn
// transition including the initial load.
type GameView interface {
	OnSnapshot(snap replay.Snapshot)
}

// InfoView receives the turn index and cumulative score alongside every
// snapshot update.
type InfoView interface {
	OnTurnAndScore(turn, score int)
}

// FileView receives load notifications. A failed load reports the
// reason and implies the previous game, if any, is still intact.
type FileView interface {
	OnFileLoaded(name string)
	OnFileError(name, reason string)
}

// StatusView receives playback lifecycle notifications: automatic stops
// at a history boundary arrive here so a UI can flip its play/pause
// indicator without polling.
type StatusView interface {
	OnPlayStarted(dir Direction)
	OnPlayStopped()
	OnSpeedChanged(stepsPerSecond float64)
}

// Views bundles the callback interfaces a controller notifies.
// Any field may be nil; nil views are skipped.
type Views struct {
	Game   GameView
	Info   InfoView
	File   FileView
	Status StatusView
}

func (v Views) notifyState(snap replay.Snapshot) {
	if v.Game != nil {
		v.Game.OnSnapshot(snap)
	}
	if v.Info != nil {
		v.Info.OnTurnAndScore(snap.Turn(), snap.Score())
	}
}
