package cli

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/lipgloss"
)

// renderSpinner animates a one-line status on w while a drawing renders.
// It stops on its own when ctx is cancelled.
type renderSpinner struct {
	out     printer
	message string
	frames  spinner.Spinner

	cancel  context.CancelFunc
	stopped chan struct{}
	once    sync.Once
	mu      sync.Mutex
}

// startSpinner starts animating message on w.
func startSpinner(ctx context.Context, w io.Writer, message string) *renderSpinner {
	ctx, cancel := context.WithCancel(ctx)
	s := &renderSpinner{
		out:     newPrinter(w),
		message: message,
		frames:  spinner.MiniDot,
		cancel:  cancel,
		stopped: make(chan struct{}),
	}
	go s.run(ctx)
	return s
}

func (s *renderSpinner) run(ctx context.Context) {
	defer close(s.stopped)
	ticker := time.NewTicker(s.frames.FPS)
	defer ticker.Stop()

	for i := 0; ; i++ {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			frame := s.frames.Frames[i%len(s.frames.Frames)]
			s.mu.Lock()
			fmt.Fprintf(s.out.w, "\r%s %s", styleSpinner.Render(frame), StyleDim.Render(s.message))
			s.mu.Unlock()
		}
	}
}

// stop ends the animation and clears the line. It is safe to call more
// than once.
func (s *renderSpinner) stop() {
	s.once.Do(func() {
		s.cancel()
		<-s.stopped
		s.mu.Lock()
		defer s.mu.Unlock()
		width := lipgloss.Width(s.message) + 4
		fmt.Fprintf(s.out.w, "\r%s\r", strings.Repeat(" ", width))
	})
}

// succeed stops the spinner and replaces it with a success line.
func (s *renderSpinner) succeed(format string, args ...any) {
	s.stop()
	s.out.success(format, args...)
}

// fail stops the spinner and replaces it with a failure line.
func (s *renderSpinner) fail(format string, args ...any) {
	s.stop()
	s.out.failure(format, args...)
}
