package cli

import (
	"bytes"
	"context"
	"strings"
	"sync"
	"testing"
	"time"
)

// lockedBuffer is a bytes.Buffer safe for the spinner goroutine.
type lockedBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *lockedBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestConvertSpinnerLabel(t *testing.T) {
	var out lockedBuffer
	s := startConvertSpinner(context.Background(), &out, "png", "scene.png")
	time.Sleep(3 * spinnerInterval)
	s.Stop()

	got := out.String()
	if !strings.Contains(got, "Converting to PNG") || !strings.Contains(got, "scene.png") {
		t.Errorf("status line = %q, want format and destination", got)
	}
	if s.Frames() < 1 {
		t.Errorf("frames = %d, want at least the first", s.Frames())
	}
	if !strings.HasSuffix(got, "\r") {
		t.Error("Stop should leave the cursor at the start of a cleared line")
	}
}

func TestConvertSpinnerStopIsIdempotent(t *testing.T) {
	var out lockedBuffer
	s := startConvertSpinner(context.Background(), &out, "pdf", "-")
	s.Stop()
	after := out.String()
	s.Stop()
	if out.String() != after {
		t.Error("second Stop wrote again")
	}
}

func TestConvertSpinnerStopsOnCancel(t *testing.T) {
	var out lockedBuffer
	ctx, cancel := context.WithCancel(context.Background())
	s := startConvertSpinner(ctx, &out, "png", "a.png")
	cancel()

	select {
	case <-s.done:
	case <-time.After(time.Second):
		t.Fatal("spinner did not stop after cancel")
	}
	frames := s.Frames()
	time.Sleep(2 * spinnerInterval)
	if s.Frames() != frames {
		t.Error("spinner kept drawing after cancel")
	}
	s.Stop()
}

func TestConvertSpinnerElapsed(t *testing.T) {
	var out lockedBuffer
	s := startConvertSpinner(context.Background(), &out, "png", "a.png")
	time.Sleep(20 * time.Millisecond)
	if d := s.Stop(); d < 20*time.Millisecond {
		t.Errorf("elapsed = %v, want >= 20ms", d)
	}
}
