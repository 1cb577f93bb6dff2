package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

// ProgressIndicator defines the interface for progress feedback.
//
// # Description
//
// Provides visual feedback during long-running remote calls so operators
// do not think the tool has frozen. A full activation run issues one
// availability check per model and can take minutes on large catalogs.
//
// # Thread Safety
//
// Implementations must be safe for concurrent use from multiple goroutines.
type ProgressIndicator interface {
	// Start begins the progress indication.
	Start()

	// Stop halts the progress indication.
	Stop()

	// SetMessage updates the displayed message.
	SetMessage(message string)

	// IsRunning returns whether the indicator is active.
	IsRunning() bool
}

// SpinnerConfig configures spinner behavior.
type SpinnerConfig struct {
	// Message is the text displayed next to the spinner.
	Message string

	// Interval is the time between frame updates.
	// Default: 100ms
	Interval time.Duration

	// Frames are the animation characters.
	// Default: Braille dots (⠋⠙⠹⠸⠼⠴⠦⠧⠇⠏)
	Frames []string

	// Writer is where output is written.
	// Default: os.Stderr
	Writer io.Writer

	// HideCursor hides the terminal cursor while spinning.
	HideCursor bool

	// ClearOnStop clears the spinner line when stopped.
	ClearOnStop bool
}

// DefaultSpinnerConfig returns a configuration with Braille dot animation,
// 100ms interval, writing to stderr.
func DefaultSpinnerConfig() SpinnerConfig {
	return SpinnerConfig{
		Message:     "Working...",
		Interval:    100 * time.Millisecond,
		Frames:      []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"},
		Writer:      os.Stderr,
		HideCursor:  true,
		ClearOnStop: true,
	}
}

// Spinner provides animated progress feedback for CLI operations.
//
// # Description
//
// Displays an animated character sequence with a message while a
// long-running operation is in progress. Used during the per-model
// availability sweep and the agreement remediation loop.
//
// # Thread Safety
//
// Safe for concurrent use. Start/Stop can be called from different
// goroutines.
//
// # Limitations
//
//   - Requires a TTY-compatible terminal for proper display
//   - Concurrent writes to the same Writer may garble output
//
// # Example
//
//	spinner := NewSpinner(SpinnerConfig{Message: "Checking model access..."})
//	spinner.Start()
//	defer spinner.Stop()
//
//	spinner.SetMessage("Checking model access... (42/180)")
type Spinner struct {
	config  SpinnerConfig
	frame   int
	running bool
	stopCh  chan struct{}
	doneCh  chan struct{}
	mu      sync.Mutex
}

// NewSpinner creates a spinner ready to be started. Nothing is displayed
// until Start() is called.
func NewSpinner(config SpinnerConfig) *Spinner {
	if config.Interval <= 0 {
		config.Interval = 100 * time.Millisecond
	}
	if len(config.Frames) == 0 {
		config.Frames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}
	}
	if config.Writer == nil {
		config.Writer = os.Stderr
	}

	return &Spinner{
		config: config,
	}
}

// Start begins the spinner animation. Safe to call multiple times
// (subsequent calls are no-ops).
func (s *Spinner) Start() {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return
	}
	s.running = true
	s.stopCh = make(chan struct{})
	s.doneCh = make(chan struct{})
	s.mu.Unlock()

	if s.config.HideCursor {
		fmt.Fprint(s.config.Writer, "\033[?25l")
	}

	go s.spin()
}

// Stop halts the spinner animation. Blocks until the spinner goroutine
// has fully stopped.
func (s *Spinner) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.running = false
	close(s.stopCh)
	s.mu.Unlock()

	<-s.doneCh

	if s.config.ClearOnStop {
		s.clearLine()
	}

	if s.config.HideCursor {
		fmt.Fprint(s.config.Writer, "\033[?25h")
	}
}

// SetMessage updates the displayed message. Safe to call while the
// spinner is running.
func (s *Spinner) SetMessage(message string) {
	s.mu.Lock()
	s.config.Message = message
	s.mu.Unlock()
}

// IsRunning returns whether the spinner is active.
func (s *Spinner) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

// spin is the main animation loop.
func (s *Spinner) spin() {
	defer close(s.doneCh)

	ticker := time.NewTicker(s.config.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.render()
		case <-s.stopCh:
			return
		}
	}
}

// render draws the current frame.
func (s *Spinner) render() {
	s.mu.Lock()
	frame := s.config.Frames[s.frame%len(s.config.Frames)]
	message := s.config.Message
	s.frame++
	s.mu.Unlock()

	fmt.Fprintf(s.config.Writer, "\r%s %s", frame, message)
}

// clearLine clears the current line.
func (s *Spinner) clearLine() {
	fmt.Fprint(s.config.Writer, "\r\033[K")
}

// SpinWhileContext runs a function with a spinner, stopping it if the
// context is cancelled.
//
// # Inputs
//
//   - ctx: Context for cancellation
//   - message: Message to display
//   - fn: Function to execute
//
// # Outputs
//
//   - error: Error from fn, context error, or nil
//
// # Example
//
//	err := SpinWhileContext(ctx, "Listing foundation models...", func() error {
//	    return runDiscovery(ctx)
//	})
func SpinWhileContext(ctx context.Context, message string, fn func() error) error {
	spinner := NewSpinner(SpinnerConfig{Message: message})
	spinner.Start()

	done := make(chan error, 1)
	go func() {
		done <- fn()
	}()

	select {
	case err := <-done:
		spinner.Stop()
		return err

	case <-ctx.Done():
		spinner.Stop()
		return ctx.Err()
	}
}

// Compile-time interface check
var _ ProgressIndicator = (*Spinner)(nil)
