package cli

import (
	"bytes"
	"context"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

func TestNewLoggerFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, log.InfoLevel)
	logger.Info("scene loaded", "cards", 3)

	line := buf.String()
	if !regexp.MustCompile(`^\d{2}:\d{2}:\d{2}\.\d{2} `).MatchString(line) {
		t.Errorf("line %q does not start with an HH:MM:SS.ms timestamp", line)
	}
	if !strings.Contains(line, "scene loaded") || !strings.Contains(line, "cards=3") {
		t.Errorf("line %q missing message or fields", line)
	}
}

func TestLogLevelFollowsVerbose(t *testing.T) {
	tests := []struct {
		name    string
		level   log.Level
		wantDbg bool
	}{
		{"default", LogInfo, false},
		{"verbose", LogDebug, true},
		{"preview", LogError, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			c := New(&buf, LogInfo)
			c.SetLogLevel(tt.level)
			c.Logger.Debug("placement search")
			if got := strings.Contains(buf.String(), "placement search"); got != tt.wantDbg {
				t.Errorf("debug logged = %v, want %v", got, tt.wantDbg)
			}
		})
	}
}

func TestProgressDone(t *testing.T) {
	var buf bytes.Buffer
	prog := newProgress(newLogger(&buf, log.InfoLevel))
	prog.start = prog.start.Add(-1500 * time.Millisecond)

	prog.done("Placed 4 cards")

	got := buf.String()
	if !regexp.MustCompile(`Placed 4 cards \(1\.5\d*s\)`).MatchString(got) {
		t.Errorf("progress line = %q, want \"Placed 4 cards (1.5s)\"", got)
	}
}

func TestLoggerContext(t *testing.T) {
	logger := newLogger(&bytes.Buffer{}, log.InfoLevel)
	ctx := withLogger(context.Background(), logger)
	if loggerFromContext(ctx) != logger {
		t.Error("loggerFromContext should return the attached logger")
	}
	if loggerFromContext(context.Background()) != log.Default() {
		t.Error("loggerFromContext should fall back to log.Default()")
	}
}

func TestLogHooks(t *testing.T) {
	var buf bytes.Buffer
	h := &logHooks{logger: newLogger(&buf, log.DebugLevel)}
	ctx := context.Background()

	h.OnSearch(ctx, false, 100)
	h.OnEvict(ctx, "card-1")
	h.OnScroll(ctx, true)
	h.OnResize(ctx, false, 800, 600)
	h.OnRelayout(ctx, 2, 3, time.Millisecond)
	h.OnRenderStart(ctx, "svg", 3)
	h.OnRenderComplete(ctx, "png", time.Second, context.Canceled)

	out := buf.String()
	for _, want := range []string{
		"placement search", "attempts=100",
		"card evicted", "id=card-1",
		"resize", "width=800",
		"relayout", "moved=2",
		"render start", "format=svg",
		"render failed",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("hook logs missing %q", want)
		}
	}
}
