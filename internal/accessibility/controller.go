// Package accessibility implements the floating-widget preference
// controller: font scaling, contrast, link highlighting and a spoken reader
// mode. State lives in the controller, is projected through an Applier on
// every change, and persists through a Store. Reader mode is the exception:
// it always starts off because it produces audio.
package accessibility

import (
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/jirehclean/portal/internal/service/preferences"
)

const (
	defaultHoverDelay = 500 * time.Millisecond

	readerOnPhrase = "Reader enabled."
)

// State is the controller's full state: the persisted preference record plus
// the session-only reader flag.
type State struct {
	preferences.Preferences
	ReaderMode bool
}

// Applier projects the state onto the rendered page (CSS classes, cursor).
// It must be idempotent: the controller re-applies the full state after
// every mutation.
type Applier func(State)

// Config wires the controller's collaborators. Store, Speaker and Apply may
// each be nil; missing capabilities degrade silently.
type Config struct {
	Store      Store
	Speaker    Speaker
	Apply      Applier
	HoverDelay time.Duration
	Logger     *zap.Logger
}

// Controller owns the accessibility state. Construct exactly one at startup;
// all mutation goes through its methods.
type Controller struct {
	cfg    Config
	logger *zap.Logger

	mu         sync.Mutex
	state      State
	hoverTimer *time.Timer
}

// New loads persisted preferences (falling back to defaults on any read
// failure), forces reader mode off, and applies the initial state.
func New(cfg Config) *Controller {
	if cfg.HoverDelay <= 0 {
		cfg.HoverDelay = defaultHoverDelay
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	c := &Controller{cfg: cfg, logger: logger}

	prefs := preferences.Defaults()
	if cfg.Store != nil {
		loaded, err := cfg.Store.Load()
		if err != nil {
			logger.Warn("preference load failed, using defaults", zap.Error(err))
		} else {
			prefs = loaded.Normalize()
		}
	}

	// Reader mode is never restored, even from a buggy write.
	c.mu.Lock()
	c.state = State{Preferences: prefs, ReaderMode: false}
	c.applyLocked()
	c.mu.Unlock()
	return c
}

// State returns a copy of the current state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// IncreaseText steps the font level up one, clamped at the top.
func (c *Controller) IncreaseText() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.FontLevel = preferences.ClampFontLevel(c.state.FontLevel + 1)
	c.applyLocked()
}

// DecreaseText steps the font level down one, clamped at the bottom.
func (c *Controller) DecreaseText() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.FontLevel = preferences.ClampFontLevel(c.state.FontLevel - 1)
	c.applyLocked()
}

// ToggleContrast flips the high-contrast flag.
func (c *Controller) ToggleContrast() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.HighContrast = !c.state.HighContrast
	c.applyLocked()
}

// ToggleHighlightLinks flips the link-highlight flag.
func (c *Controller) ToggleHighlightLinks() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.HighlightLinks = !c.state.HighlightLinks
	c.applyLocked()
}

// ToggleReaderMode flips reader mode. Activation speaks a confirmation
// phrase; deactivation cancels any in-flight speech. The flag is never
// persisted.
func (c *Controller) ToggleReaderMode() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.ReaderMode = !c.state.ReaderMode
	if c.state.ReaderMode {
		c.speak(readerOnPhrase)
	} else {
		c.cancelSpeech()
		c.stopHoverLocked()
	}
	c.applyLocked()
}

// Reset restores every field to its default, cancels in-flight speech, and
// persists the reset record over whatever was stored before.
func (c *Controller) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = State{Preferences: preferences.Defaults()}
	c.cancelSpeech()
	c.stopHoverLocked()
	c.applyLocked()
}

// Apply re-projects and re-persists the current state. Idempotent: safe to
// call any number of times.
func (c *Controller) Apply() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.applyLocked()
}

// applyLocked projects the state and writes the persisted subset. A failed
// write is logged and dropped; preference persistence is best-effort.
func (c *Controller) applyLocked() {
	if c.cfg.Apply != nil {
		c.cfg.Apply(c.state)
	}
	if c.cfg.Store != nil {
		if err := c.cfg.Store.Save(c.state.Preferences); err != nil {
			c.logger.Warn("preference save failed", zap.Error(err))
		}
	}
}

// ReadTarget handles a pointer interaction while reader mode is active. It
// speaks the target's most specific label and reports whether the
// interaction's default effect should be suppressed. Interactions inside the
// widget's own subtree and unlabeled targets pass through untouched.
func (c *Controller) ReadTarget(t Target) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.state.ReaderMode || t.InWidget {
		return false
	}
	label := t.SpokenLabel()
	if label == "" {
		return false
	}
	c.speak(label)
	return true
}

// HoverTarget handles a hover interaction while reader mode is active. The
// utterance fires only after the pointer rests for the configured delay, so
// a sweep across the page does not read every element passed over.
func (c *Controller) HoverTarget(t Target) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.stopHoverLocked()
	if !c.state.ReaderMode || t.InWidget {
		return
	}
	label := t.SpokenLabel()
	if label == "" {
		return
	}

	c.hoverTimer = time.AfterFunc(c.cfg.HoverDelay, func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		if c.state.ReaderMode {
			c.speak(label)
		}
	})
}

// stopHoverLocked must be called with the mutex held.
func (c *Controller) stopHoverLocked() {
	if c.hoverTimer != nil {
		c.hoverTimer.Stop()
		c.hoverTimer = nil
	}
}

// speak is nil-safe: with no speech capability it is a silent no-op. The
// Speaker contract cancels any utterance still in progress, so the newest
// request always wins.
func (c *Controller) speak(text string) {
	if c.cfg.Speaker == nil {
		return
	}
	c.cfg.Speaker.Speak(text)
}

func (c *Controller) cancelSpeech() {
	if c.cfg.Speaker == nil {
		return
	}
	c.cfg.Speaker.Cancel()
}
