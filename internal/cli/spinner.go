package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

const spinnerInterval = 80 * time.Millisecond

// Spinner animates a one-line progress indicator until it is stopped or its
// context ends.
type Spinner struct {
	w       io.Writer
	message string

	ctx     context.Context
	cancel  context.CancelFunc
	stopped chan struct{}
	once    sync.Once

	mu        sync.Mutex
	started   bool
	stopping  bool
	cancelled bool
}

// newSpinner creates a spinner on stderr.
func newSpinner(message string) *Spinner {
	return newSpinnerWithContext(context.Background(), message)
}

// newSpinnerWithContext creates a spinner on stderr that stops when ctx ends.
func newSpinnerWithContext(ctx context.Context, message string) *Spinner {
	return newSpinnerTo(ctx, os.Stderr, message)
}

func newSpinnerTo(ctx context.Context, w io.Writer, message string) *Spinner {
	if ctx == nil {
		ctx = context.Background()
	}
	spinnerCtx, cancel := context.WithCancel(ctx)
	return &Spinner{
		w:       w,
		message: message,
		ctx:     spinnerCtx,
		cancel:  cancel,
		stopped: make(chan struct{}),
	}
}

// Start begins the animation.
func (s *Spinner) Start() {
	s.mu.Lock()
	s.started = true
	s.mu.Unlock()
	go s.run()
}

func (s *Spinner) run() {
	defer close(s.stopped)
	ticker := time.NewTicker(spinnerInterval)
	defer ticker.Stop()

	for i := 0; ; i++ {
		select {
		case <-s.ctx.Done():
			s.mu.Lock()
			if !s.stopping {
				s.cancelled = true
			}
			s.mu.Unlock()
			s.clearLine()
			return
		case <-ticker.C:
			frame := spinnerFrames[i%len(spinnerFrames)]
			s.mu.Lock()
			fmt.Fprintf(s.w, "\r%s %s", styleIconSpinner.Render(frame), StyleDim.Render(s.message))
			s.mu.Unlock()
		}
	}
}

// Stop ends the animation and clears the line. Calling it again is a no-op.
func (s *Spinner) Stop() {
	s.once.Do(func() {
		s.mu.Lock()
		s.stopping = true
		started := s.started
		s.mu.Unlock()

		s.cancel()
		if started {
			<-s.stopped
		}
		s.clearLine()
	})
}

func (s *Spinner) clearLine() {
	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprintf(s.w, "\r%s\r", strings.Repeat(" ", len(s.message)+4))
}

// StopWithSuccess stops the spinner and prints a success line.
func (s *Spinner) StopWithSuccess(message string) {
	s.Stop()
	printSuccess("%s", message)
}

// StopWithError stops the spinner and prints an error line.
func (s *Spinner) StopWithError(message string) {
	s.Stop()
	printError("%s", message)
}

// Cancelled reports whether the spinner's context ended before Stop.
func (s *Spinner) Cancelled() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cancelled
}
