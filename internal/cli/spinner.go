package cli

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"
)

const spinnerInterval = 80 * time.Millisecond

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// convertSpinner animates a status line on w while a scene is converted to
// a raster or print format. It never writes to the output stream itself, so
// "-o -" stays clean when w is stderr.
type convertSpinner struct {
	w     io.Writer
	label string
	start time.Time

	mu     sync.Mutex
	frames int
	width  int

	stop chan struct{}
	done chan struct{}
	once sync.Once
}

// startConvertSpinner starts a spinner for converting to format at dest.
// It stops on its own when ctx is cancelled.
func startConvertSpinner(ctx context.Context, w io.Writer, format, dest string) *convertSpinner {
	s := &convertSpinner{
		w:     w,
		label: fmt.Sprintf("Converting to %s %s %s", strings.ToUpper(format), iconArrow, dest),
		start: time.Now(),
		stop:  make(chan struct{}),
		done:  make(chan struct{}),
	}
	go s.run(ctx)
	return s
}

func (s *convertSpinner) run(ctx context.Context) {
	defer close(s.done)
	ticker := time.NewTicker(spinnerInterval)
	defer ticker.Stop()

	s.draw()
	for {
		select {
		case <-ctx.Done():
			return
		case <-s.stop:
			return
		case <-ticker.C:
			s.draw()
		}
	}
}

func (s *convertSpinner) draw() {
	s.mu.Lock()
	defer s.mu.Unlock()
	frame := spinnerFrames[s.frames%len(spinnerFrames)]
	line := styleIconSpinner.Render(frame) + " " + StyleDim.Render(s.label)
	fmt.Fprintf(s.w, "\r%s", line)
	s.width = max(s.width, len(s.label)+2)
	s.frames++
}

// Stop halts the animation, clears the status line and returns how long
// the conversion ran. It is safe to call more than once.
func (s *convertSpinner) Stop() time.Duration {
	s.once.Do(func() {
		close(s.stop)
		<-s.done
		s.mu.Lock()
		fmt.Fprintf(s.w, "\r%s\r", strings.Repeat(" ", s.width))
		s.mu.Unlock()
	})
	return time.Since(s.start)
}

// Frames returns how many frames were drawn.
func (s *convertSpinner) Frames() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.frames
}
