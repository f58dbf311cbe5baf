package throttle

import (
	"testing"
	"time"
)

type fakeClock struct{ t time.Time }

func newFakeClock() *fakeClock { return &fakeClock{t: time.Unix(1700000000, 0)} }

func (c *fakeClock) now() time.Time { return c.t }

func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func TestLimiterLeadingEdge(t *testing.T) {
	clock := newFakeClock()
	l := New(500*time.Millisecond, WithClock(clock.now))

	steps := []struct {
		advance time.Duration
		want    bool
	}{
		{0, true},                       // leading call runs
		{100 * time.Millisecond, false}, // inside window
		{399 * time.Millisecond, false}, // 499ms after the leading call
		{1 * time.Millisecond, true},    // exactly 500ms later
		{250 * time.Millisecond, false},
		{1 * time.Second, true},
	}

	for i, s := range steps {
		clock.advance(s.advance)
		if got := l.Allow(); got != s.want {
			t.Errorf("step %d: Allow() = %v, want %v", i, got, s.want)
		}
	}

	allowed, dropped := l.Stats()
	if allowed != 3 || dropped != 3 {
		t.Errorf("Stats() = (%d, %d), want (3, 3)", allowed, dropped)
	}
}

func TestLimiterDroppedCallsDoNotExtendWindow(t *testing.T) {
	clock := newFakeClock()
	l := New(200*time.Millisecond, WithClock(clock.now))

	l.Allow()
	for range 10 {
		clock.advance(19 * time.Millisecond)
		l.Allow()
	}
	// 190ms elapsed; the window still ends 200ms after the leading call.
	clock.advance(10 * time.Millisecond)
	if !l.Allow() {
		t.Error("window should end 200ms after the leading call")
	}
}

func TestLimiterDo(t *testing.T) {
	clock := newFakeClock()
	l := New(time.Second, WithClock(clock.now))

	calls := 0
	for range 5 {
		l.Do(func() { calls++ })
	}
	if calls != 1 {
		t.Errorf("fn ran %d times, want 1", calls)
	}
}

func TestLimiterZeroWindow(t *testing.T) {
	l := New(0)
	for i := range 3 {
		if !l.Allow() {
			t.Errorf("call %d dropped with zero window", i)
		}
	}
}

func TestLimiterReset(t *testing.T) {
	clock := newFakeClock()
	l := New(time.Hour, WithClock(clock.now))
	l.Allow()
	if l.Allow() {
		t.Fatal("second call should be dropped")
	}
	l.Reset()
	if !l.Allow() {
		t.Error("call after Reset should be allowed")
	}
}

func TestLimiterClockSequence(t *testing.T) {
	start := time.Unix(1700000000, 0)
	var now time.Time
	l := New(500*time.Millisecond, WithClock(func() time.Time { return now }))

	tests := []struct {
		at   time.Duration
		want bool
	}{
		{0, true},
		{100 * time.Millisecond, false},
		{300 * time.Millisecond, false},
		{499 * time.Millisecond, false},
		{500 * time.Millisecond, true},
		{501 * time.Millisecond, false},
		{900 * time.Millisecond, false},
		{999 * time.Millisecond, false},
		{1000 * time.Millisecond, true},
		{1200 * time.Millisecond, false},
		{1600 * time.Millisecond, true},
		{1601 * time.Millisecond, false},
		{2500 * time.Millisecond, true},
	}
	for _, tt := range tests {
		now = start.Add(tt.at)
		if got := l.Allow(); got != tt.want {
			t.Errorf("Allow() at %v = %v, want %v", tt.at, got, tt.want)
		}
	}
}

func TestLimiterResetKeepsStats(t *testing.T) {
	clock := newFakeClock()
	l := New(time.Minute, WithClock(clock.now))
	l.Allow()
	l.Allow()
	l.Reset()
	l.Allow()

	allowed, dropped := l.Stats()
	if allowed != 2 || dropped != 1 {
		t.Errorf("Stats() = (%d, %d), want (2, 1)", allowed, dropped)
	}
}
