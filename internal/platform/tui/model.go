package tui

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/ashmarty/hexview/internal/config"
	"github.com/ashmarty/hexview/internal/core"
	"github.com/ashmarty/hexview/internal/hexlog"
	"github.com/ashmarty/hexview/internal/playback"
	"github.com/ashmarty/hexview/internal/replay"
	"github.com/ashmarty/hexview/internal/storage"
)

// headerMsg carries the decoded log header alongside a successful load.
type headerMsg struct {
	path   string
	header hexlog.Header
}

// Model is the Bubble Tea model for watching replays.
type Model struct {
	cfg    config.ViewerConfig
	ctrl   *playback.Controller
	store  *storage.Store
	screen *core.Screen
	keys   ViewerKeyMap
	help   help.Model

	replayDir   string
	initialPath string

	// Current replay
	path    string
	header  hexlog.Header
	snap    replay.Snapshot
	hasSnap bool

	// Playback indicator state, pushed by the controller
	playing  bool
	backward bool
	speed    float64

	picker   *pickerModel
	errMsg   string
	width    int
	height   int
	quitting bool

	// poll makes the model pull controller state on a tick instead of
	// relying on pushed messages. Used for SSH sessions, where the
	// program handle belongs to the middleware.
	poll bool
}

// pollRate is the state poll frequency for SSH sessions.
const pollRate = 30

// NewModel creates a viewer model. If path is empty the model opens the
// file picker for replayDir instead of loading anything.
func NewModel(cfg config.ViewerConfig, ctrl *playback.Controller, store *storage.Store, path, replayDir string) Model {
	h := help.New()
	h.ShowAll = cfg.UI.ShowHelp

	if replayDir == "" {
		replayDir = "."
	}

	return Model{
		cfg:         cfg,
		ctrl:        ctrl,
		store:       store,
		keys:        DefaultViewerKeyMap(),
		help:        h,
		replayDir:   replayDir,
		initialPath: path,
		speed:       cfg.Playback.Speed,
	}
}

// NewPollingModel creates a viewer model that polls the controller for
// state instead of receiving pushed messages.
func NewPollingModel(cfg config.ViewerConfig, ctrl *playback.Controller, store *storage.Store, replayDir string) Model {
	m := NewModel(cfg, ctrl, store, "", replayDir)
	m.poll = true
	return m
}

// Init loads the initial replay, or opens the picker when none is set.
func (m Model) Init() tea.Cmd {
	var load tea.Cmd
	if m.initialPath != "" {
		load = loadFileCmd(m.ctrl, m.initialPath)
	} else {
		load = scanReplaysCmd(m.replayDir)
	}
	if m.poll {
		return tea.Batch(load, tickCmd(pollRate))
	}
	return load
}

// loadFileCmd decodes a replay file and hands it to the controller.
// The header is returned as a message so the model can size the board;
// everything else arrives through the controller's notifications.
func loadFileCmd(ctrl *playback.Controller, path string) tea.Cmd {
	return func() tea.Msg {
		logFile, err := hexlog.ReadFile(path)
		if err != nil {
			return fileErrorMsg{name: path, reason: err.Error()}
		}
		if err := ctrl.LoadLog(path, logFile); err != nil {
			// The file view hears about this too; repeating the message
			// here keeps polling sessions informed as well.
			return fileErrorMsg{name: path, reason: err.Error()}
		}
		return headerMsg{path: path, header: logFile.Header}
	}
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case headerMsg:
		m.path = msg.path
		m.header = msg.header
		m.errMsg = ""
		return m, nil

	case snapshotMsg:
		m.snap = msg.snap
		m.hasSnap = true
		m.ensureScreen()
		return m, nil

	case infoMsg:
		// The snapshot already carries turn and score; nothing extra to
		// track here.
		return m, nil

	case fileLoadedMsg:
		m.errMsg = ""
		return m, nil

	case fileErrorMsg:
		m.errMsg = fmt.Sprintf("cannot open %s: %s", filepath.Base(msg.name), msg.reason)
		return m, nil

	case playStatusMsg:
		m.playing = msg.playing
		if msg.playing {
			m.backward = msg.backward
		}
		return m, nil

	case speedMsg:
		m.speed = msg.speed
		return m, nil

	case TickMsg:
		if !m.poll {
			return m, nil
		}
		if snap, ok := m.ctrl.Current(); ok {
			m.snap = snap
			m.hasSnap = true
			m.ensureScreen()
		}
		m.playing = m.ctrl.IsPlaying()
		m.backward = m.ctrl.Direction() == playback.Backward
		m.speed = m.ctrl.Speed()
		return m, tickCmd(pollRate)

	case pickerEntriesMsg:
		picker := newPickerModel(m.replayDir, msg.files, msg.err)
		m.picker = &picker
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// The picker owns input while it is open.
	if m.picker != nil {
		done, selected := m.picker.handleKey(msg)
		if !done {
			return m, nil
		}
		m.picker = nil
		if selected == "" {
			return m, nil
		}
		m.recordView()
		return m, loadFileCmd(m.ctrl, selected)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.ctrl.Pause()
		m.recordView()
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.PlayPause):
		if m.playing {
			m.ctrl.Pause()
		} else {
			m.ctrl.Play(playback.Forward)
		}
		return m, nil

	case key.Matches(msg, m.keys.PlayBackward):
		if m.playing && m.backward {
			m.ctrl.Pause()
		} else {
			m.ctrl.Play(playback.Backward)
		}
		return m, nil

	case key.Matches(msg, m.keys.StepForward):
		m.stepIgnoringBoundary(playback.Forward)
		return m, nil

	case key.Matches(msg, m.keys.StepBackward):
		m.stepIgnoringBoundary(playback.Backward)
		return m, nil

	case key.Matches(msg, m.keys.SpeedUp):
		return m.adjustSpeed(m.speed * m.cfg.Playback.SpeedStep), nil

	case key.Matches(msg, m.keys.SpeedDown):
		return m.adjustSpeed(m.speed / m.cfg.Playback.SpeedStep), nil

	case key.Matches(msg, m.keys.First):
		if m.hasSnap {
			//nolint:errcheck // 0 is always a valid turn once loaded
			m.ctrl.Seek(0)
		}
		return m, nil

	case key.Matches(msg, m.keys.Last):
		if m.hasSnap {
			//nolint:errcheck // the last turn is always a valid turn
			m.ctrl.Seek(m.ctrl.Turns())
		}
		return m, nil

	case key.Matches(msg, m.keys.Open):
		m.ctrl.Pause()
		return m, scanReplaysCmd(m.replayDir)

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	return m, nil
}

// ensureScreen (re)allocates the board buffer to fit the current
// snapshot. Snapshots can arrive before the header message of the load
// that produced them, so sizing cannot rely on the header alone.
func (m *Model) ensureScreen() {
	w := boardScreenWidth(m.snap.Radius())
	h := boardScreenHeight(m.snap.Radius())
	if m.screen == nil || m.screen.Width() != w || m.screen.Height() != h {
		m.screen = core.NewScreen(w, h)
	}
}

// stepIgnoringBoundary performs a manual step. Bumping into the ends of
// the history is a no-op, not an error worth showing.
func (m *Model) stepIgnoringBoundary(dir playback.Direction) {
	err := m.ctrl.Step(dir)
	if err == nil || errors.Is(err, replay.ErrEndOfHistory) || errors.Is(err, replay.ErrStartOfHistory) {
		return
	}
	m.errMsg = err.Error()
}

// adjustSpeed clamps and applies a new playback rate.
func (m Model) adjustSpeed(speed float64) Model {
	speed = core.ClampF(speed, m.cfg.Playback.MinSpeed, m.cfg.Playback.MaxSpeed)
	//nolint:errcheck // clamped to a positive range
	m.ctrl.SetSpeed(speed)
	m.speed = speed
	return m
}

// recordView saves a library entry for the replay being closed.
func (m Model) recordView() {
	if !m.hasSnap || m.store == nil {
		return
	}
	//nolint:errcheck // Best-effort bookkeeping, viewing continues regardless
	m.store.RecordView(storage.ViewEntry{
		Path:       m.path,
		Player:     m.header.Player,
		Radius:     m.header.Radius,
		Turns:      m.header.Turns,
		FinalScore: m.header.FinalScore,
		LastTurn:   m.ctrl.CurrentTurn(),
	})
}

func boardScreenWidth(radius int) int {
	// Border and padding, board, divider, queue column; the floor keeps
	// the status line from clipping on tiny boards.
	return core.Max(BoardWidth(radius)+17, 30)
}

func boardScreenHeight(radius int) int {
	// Board region tall enough for a three-piece queue, then the status
	// divider and two status rows, all inside the frame.
	return core.Max(BoardHeight(radius), 14) + 5
}

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("229"))
	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("9"))
	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
	hintStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true)
)

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	if m.picker != nil {
		return m.picker.view()
	}

	var b strings.Builder

	title := "hexview"
	if m.path != "" {
		title = fmt.Sprintf("hexview - %s", filepath.Base(m.path))
		if m.header.Player != "" {
			title += fmt.Sprintf(" (%s)", m.header.Player)
		}
	}
	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n\n")

	if !m.hasSnap {
		b.WriteString(hintStyle.Render("No replay loaded. Press 'o' to open one."))
	} else {
		m.screen.Clear()
		pane := core.NewRect(0, 0, m.screen.Width(), m.screen.Height())
		m.screen.DrawBox(pane)

		radius := m.snap.Radius()
		boardRows := pane.H - 5 // interior rows above the status divider
		boardArea := core.NewRect(1, 1, pane.W-2, boardRows)
		_, cy := boardArea.Center()
		DrawBoard(m.screen, 3, core.Max(1, cy-BoardHeight(radius)/2), m.snap)

		divX := 3 + BoardWidth(radius) + 2
		m.screen.DrawVLine(divX, 1, boardRows, '│')
		DrawQueue(m.screen, divX+3, 1, m.snap.Queue())

		statusY := 1 + boardRows
		m.screen.DrawHLine(1, statusY, pane.W-2, '─')
		DrawStatus(m.screen, 3, statusY+1, m.snap, m.ctrl.Turns(), m.playing, m.backward, m.speed)

		b.WriteString(RenderScreen(m.screen))
	}

	if m.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render(m.errMsg))
	}

	b.WriteString("\n\n")
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// RunViewer runs the replay viewer for the given file (which may be
// empty to start at the file picker).
func RunViewer(cfg config.ViewerConfig, store *storage.Store, logger *log.Logger, path string) error {
	replayDir := "."
	if path != "" {
		replayDir = filepath.Dir(path)
	}

	sink := &programSink{}
	ctrl := playback.NewController(playback.Config{
		Speed:  cfg.Playback.Speed,
		Logger: logger,
	}, sink.Views())

	model := NewModel(cfg, ctrl, store, path, replayDir)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)
	sink.SetProgram(p)

	_, err := p.Run()
	ctrl.Pause()
	return err
}
