package tui

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ashmarty/hexview/internal/playback"
	"github.com/ashmarty/hexview/internal/replay"
)

// Messages delivered to the viewer model. Playback notifications arrive
// on the controller's goroutine and must cross into the Bubble Tea loop
// as messages.
type (
	snapshotMsg   struct{ snap replay.Snapshot }
	infoMsg       struct{ turn, score int }
	fileLoadedMsg struct{ name string }
	fileErrorMsg  struct{ name, reason string }
	playStatusMsg struct {
		playing  bool
		backward bool
	}
	speedMsg struct{ speed float64 }
)

// programSink adapts playback view callbacks to Bubble Tea messages.
// The program is attached after construction since the controller and
// the program reference each other.
type programSink struct {
	mu      sync.Mutex
	program *tea.Program
}

// SetProgram attaches the running program. Notifications before this
// point are dropped.
func (ps *programSink) SetProgram(p *tea.Program) {
	ps.mu.Lock()
	ps.program = p
	ps.mu.Unlock()
}

func (ps *programSink) send(msg tea.Msg) {
	ps.mu.Lock()
	p := ps.program
	ps.mu.Unlock()
	if p != nil {
		p.Send(msg)
	}
}

func (ps *programSink) OnSnapshot(snap replay.Snapshot) {
	ps.send(snapshotMsg{snap: snap})
}

func (ps *programSink) OnTurnAndScore(turn, score int) {
	ps.send(infoMsg{turn: turn, score: score})
}

func (ps *programSink) OnFileLoaded(name string) {
	ps.send(fileLoadedMsg{name: name})
}

func (ps *programSink) OnFileError(name, reason string) {
	ps.send(fileErrorMsg{name: name, reason: reason})
}

func (ps *programSink) OnPlayStarted(dir playback.Direction) {
	ps.send(playStatusMsg{playing: true, backward: dir == playback.Backward})
}

func (ps *programSink) OnPlayStopped() {
	ps.send(playStatusMsg{playing: false})
}

func (ps *programSink) OnSpeedChanged(stepsPerSecond float64) {
	ps.send(speedMsg{speed: stepsPerSecond})
}

// Views returns the callback bundle wired to this sink.
func (ps *programSink) Views() playback.Views {
	return playback.Views{Game: ps, Info: ps, File: ps, Status: ps}
}
