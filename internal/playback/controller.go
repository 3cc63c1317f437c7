package playback

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/ashmarty/hexview/internal/hexlog"
	"github.com/ashmarty/hexview/internal/replay"
)

// Direction selects which way playback and stepping move through
// history.
type Direction int

const (
	Forward Direction = iota
	Backward
)

// String returns a human-readable name for the direction.
func (d Direction) String() string {
	if d == Backward {
		return "backward"
	}
	return "forward"
}

// State describes the controller's position in its lifecycle.
type State int

const (
	// Idle means no replay is loaded.
	Idle State = iota
	// Loaded means a tracker is present and playback is stopped.
	Loaded
	// Playing means the background playback goroutine is running.
	Playing
)

// DefaultSpeed is the playback rate in steps per second used when the
// configuration does not set one.
const DefaultSpeed = 2.0

// Config holds controller settings.
type Config struct {
	// Speed is the initial playback rate in steps per second.
	// Non-positive values fall back to DefaultSpeed.
	Speed float64

	// Logger receives diagnostics from the playback goroutine.
	// Defaults to a discarding logger, since stderr belongs to the TUI.
	Logger *log.Logger
}

// Controller is the thread-safe playback coordinator. It owns at most
// one tracker and at most one live playback goroutine at a time; the
// goroutine is held as a single optional stop/done channel pair, so two
// loops can never be alive together. All exported methods may be called
// from the UI goroutine and return promptly: the only blocking they do
// is joining an exiting playback loop, which is bounded by one sleep
// interval plus one step.
type Controller struct {
	views  Views
	logger *log.Logger

	mu       sync.Mutex
	tracker  *replay.Tracker
	filename string
	interval time.Duration
	dir      Direction
	playing  bool
	stop     chan struct{}
	done     chan struct{}
}

// NewController creates a controller with the given views.
func NewController(cfg Config, views Views) *Controller {
	speed := cfg.Speed
	if speed <= 0 {
		speed = DefaultSpeed
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Controller{
		views:    views,
		logger:   logger,
		interval: intervalFor(speed),
	}
}

func intervalFor(stepsPerSecond float64) time.Duration {
	return time.Duration(float64(time.Second) / stepsPerSecond)
}

// LoadFile stops any running playback, reads and rebuilds the replay at
// path, and installs it with the cursor at turn 0. On failure the
// previous state is kept fully intact and the reason is surfaced to the
// FileView.
func (c *Controller) LoadFile(path string) error {
	logFile, err := hexlog.ReadFile(path)
	if err != nil {
		c.reportLoadError(path, err)
		return err
	}
	return c.LoadLog(path, logFile)
}

// LoadLog installs a replay from an already decoded log. The running
// playback goroutine, if any, is stopped and joined before the old
// tracker is discarded, so no stale notification can follow the new
// file's.
func (c *Controller) LoadLog(name string, logFile *hexlog.Log) error {
	tracker, err := replay.BuildFromLog(logFile)
	if err != nil {
		c.reportLoadError(name, err)
		return err
	}

	c.stopPlayback()

	c.mu.Lock()
	c.tracker = tracker
	c.filename = name
	snap := tracker.Current()
	c.mu.Unlock()

	if c.views.File != nil {
		c.views.File.OnFileLoaded(name)
	}
	c.views.notifyState(snap)
	c.logger.Info("replay loaded", "file", name, "turns", tracker.Size()-1)
	return nil
}

func (c *Controller) reportLoadError(name string, err error) {
	c.logger.Warn("replay load failed", "file", name, "error", err)
	if c.views.File != nil {
		c.views.File.OnFileError(name, err.Error())
	}
}

// Step stops playback and moves one turn in the given direction,
// notifying views on success. At a history boundary it returns
// replay.ErrEndOfHistory or replay.ErrStartOfHistory and changes
// nothing; callers may surface or ignore the signal.
func (c *Controller) Step(dir Direction) error {
	c.stopPlayback()

	c.mu.Lock()
	if c.tracker == nil {
		c.mu.Unlock()
		return fmt.Errorf("playback: no replay loaded")
	}
	snap, err := c.step(dir)
	c.mu.Unlock()

	if err != nil {
		return err
	}
	c.views.notifyState(snap)
	return nil
}

// step moves the tracker cursor. Callers hold c.mu.
func (c *Controller) step(dir Direction) (replay.Snapshot, error) {
	if dir == Backward {
		return c.tracker.StepBackward()
	}
	return c.tracker.StepForward()
}

// Seek stops playback and moves the cursor to the given turn.
// Out-of-range indices are rejected, never clamped.
func (c *Controller) Seek(index int) error {
	c.stopPlayback()

	c.mu.Lock()
	if c.tracker == nil {
		c.mu.Unlock()
		return fmt.Errorf("playback: no replay loaded")
	}
	snap, err := c.tracker.Seek(index)
	c.mu.Unlock()

	if err != nil {
		return err
	}
	c.views.notifyState(snap)
	return nil
}

// Play starts automatic stepping in the given direction. If playback is
// already running in that direction this is a no-op; a direction change
// restarts the loop. Playback stops on Pause, on LoadFile, or by itself
// at a history boundary.
//
// The no-op check and the handle swap happen in one critical section, so
// racing Play calls agree on a single loop: whichever call installs the
// new handles also inherits the old pair and joins it.
func (c *Controller) Play(dir Direction) {
	c.mu.Lock()
	if c.tracker == nil {
		c.mu.Unlock()
		return
	}
	if c.playing && c.dir == dir {
		c.mu.Unlock()
		return
	}
	prevStop, prevDone := c.stop, c.done
	stop := make(chan struct{})
	done := make(chan struct{})
	c.stop, c.done = stop, done
	c.playing = true
	c.dir = dir
	c.mu.Unlock()

	if prevStop != nil {
		close(prevStop)
		<-prevDone
	}

	go c.playLoop(dir, stop, done)

	if c.views.Status != nil {
		c.views.Status.OnPlayStarted(dir)
	}
}

// Pause stops automatic stepping. It blocks until the playback
// goroutine has observed the stop and exited, so an in-flight step's
// notification is always delivered before Pause returns. Calling Pause
// while not playing does nothing.
func (c *Controller) Pause() {
	if c.stopPlayback() && c.views.Status != nil {
		c.views.Status.OnPlayStopped()
	}
}

// stopPlayback signals the current loop, if any, and joins it.
// Reports whether a loop was actually stopped.
func (c *Controller) stopPlayback() bool {
	c.mu.Lock()
	stop, done := c.stop, c.done
	c.stop, c.done = nil, nil
	c.playing = false
	c.mu.Unlock()

	if stop == nil {
		return false
	}
	close(stop)
	<-done
	return true
}

// playLoop is the body of the single background playback goroutine.
// It sleeps one interval, performs one step, and pushes the update,
// until it is signaled to stop or reaches a history boundary.
func (c *Controller) playLoop(dir Direction, stop, done chan struct{}) {
	defer close(done)
	defer func() {
		// A panic must never leave the controller wedged in Playing.
		if r := recover(); r != nil {
			c.logger.Error("playback loop panicked", "panic", r)
			c.finishLoop(stop, false)
		}
	}()

	for {
		c.mu.Lock()
		interval := c.interval
		c.mu.Unlock()

		timer := time.NewTimer(interval)
		select {
		case <-stop:
			timer.Stop()
			return
		case <-timer.C:
		}

		c.mu.Lock()
		snap, err := c.step(dir)
		c.mu.Unlock()

		if err != nil {
			// Boundary reached: revert to Loaded and stop on our own.
			c.finishLoop(stop, true)
			return
		}
		c.views.notifyState(snap)
	}
}

// finishLoop clears the loop's own handles when it exits by itself.
// The identity check keeps a boundary exit from clobbering a successor
// loop started by a racing Play.
func (c *Controller) finishLoop(own chan struct{}, notify bool) {
	c.mu.Lock()
	mine := c.stop == own
	if mine {
		c.stop, c.done = nil, nil
		c.playing = false
	}
	c.mu.Unlock()

	if mine && notify && c.views.Status != nil {
		c.views.Status.OnPlayStopped()
	}
}

// SetSpeed changes the playback rate in steps per second. The running
// loop picks the new interval up on its next step without restarting.
// Non-positive rates are rejected.
func (c *Controller) SetSpeed(stepsPerSecond float64) error {
	if stepsPerSecond <= 0 {
		return fmt.Errorf("playback: speed must be positive, got %v", stepsPerSecond)
	}

	c.mu.Lock()
	c.interval = intervalFor(stepsPerSecond)
	c.mu.Unlock()

	if c.views.Status != nil {
		c.views.Status.OnSpeedChanged(stepsPerSecond)
	}
	return nil
}

// Speed returns the current playback rate in steps per second.
func (c *Controller) Speed() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return float64(time.Second) / float64(c.interval)
}

// State returns the controller's current lifecycle state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	switch {
	case c.tracker == nil:
		return Idle
	case c.playing:
		return Playing
	default:
		return Loaded
	}
}

// Direction returns the direction of the most recent playback.
func (c *Controller) Direction() Direction {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.dir
}

// IsPlaying reports whether the playback goroutine is running.
func (c *Controller) IsPlaying() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.playing
}

// CurrentTurn returns the tracker's cursor, or 0 when nothing is
// loaded.
func (c *Controller) CurrentTurn() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.tracker == nil {
		return 0
	}
	return c.tracker.Cursor()
}

// Turns returns the number of turns in the loaded replay (states minus
// the initial one), or 0 when nothing is loaded.
func (c *Controller) Turns() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.tracker == nil {
		return 0
	}
	return c.tracker.Size() - 1
}

// Filename returns the name of the loaded replay, or "" when idle.
func (c *Controller) Filename() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.filename
}

// Current returns the snapshot at the cursor and whether a replay is
// loaded.
func (c *Controller) Current() (replay.Snapshot, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.tracker == nil {
		return replay.Snapshot{}, false
	}
	return c.tracker.Current(), true
}
