package scene

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/matzehuels/orbitcards/pkg/errors"
)

// EventKind names a scripted input event.
type EventKind string

const (
	EventScroll EventKind = "scroll"
	EventResize EventKind = "resize"
	EventClick  EventKind = "click"
)

// Event is one scripted input. At is the offset from the start of the run.
type Event struct {
	Kind   EventKind     `json:"kind"`
	At     time.Duration `json:"at"`
	Width  float64       `json:"width,omitempty"`
	Height float64       `json:"height,omitempty"`
	Index  int           `json:"index,omitempty"`
}

func (e Event) String() string {
	var s string
	switch e.Kind {
	case EventResize:
		s = "resize:" + sizeString(e.Width, e.Height)
	case EventClick:
		s = fmt.Sprintf("click:%d", e.Index)
	default:
		s = string(e.Kind)
	}
	return s + "@" + e.At.String()
}

// ParseEvent parses one event token:
//
//	scroll@100ms
//	resize:1024x768@350ms
//	click:2@1s
//
// The offset may be omitted, in which case it is the previous event's.
func ParseEvent(tok string, prev time.Duration) (Event, error) {
	spec, at, hasAt := strings.Cut(strings.TrimSpace(tok), "@")
	ev := Event{At: prev}
	if hasAt {
		d, err := time.ParseDuration(at)
		if err != nil {
			return Event{}, errors.Wrap(errors.ErrCodeInvalidEvent, err, "event %q: bad offset", tok)
		}
		ev.At = d
	}

	kind, arg, _ := strings.Cut(spec, ":")
	switch EventKind(kind) {
	case EventScroll:
		if arg != "" {
			return Event{}, errors.New(errors.ErrCodeInvalidEvent, "event %q: scroll takes no argument", tok)
		}
	case EventResize:
		ws, hs, ok := strings.Cut(arg, "x")
		w, werr := strconv.ParseFloat(ws, 64)
		h, herr := strconv.ParseFloat(hs, 64)
		if !ok || werr != nil || herr != nil {
			return Event{}, errors.New(errors.ErrCodeInvalidEvent, "event %q: want resize:WIDTHxHEIGHT", tok)
		}
		if err := errors.ValidateViewport(w, h); err != nil {
			return Event{}, errors.Wrap(errors.ErrCodeInvalidEvent, err, "event %q", tok)
		}
		ev.Width, ev.Height = w, h
	case EventClick:
		i, err := strconv.Atoi(arg)
		if err != nil || i < 0 {
			return Event{}, errors.New(errors.ErrCodeInvalidEvent, "event %q: want click:INDEX", tok)
		}
		ev.Index = i
	default:
		return Event{}, errors.New(errors.ErrCodeInvalidEvent, "event %q: unknown kind %q", tok, kind)
	}
	ev.Kind = EventKind(kind)
	return ev, nil
}

// ParseScript reads whitespace-separated event tokens. Text after '#' on a
// line is ignored. Offsets must not decrease.
func ParseScript(r io.Reader) ([]Event, error) {
	var (
		events []Event
		prev   time.Duration
	)
	sc := bufio.NewScanner(r)
	for line := 1; sc.Scan(); line++ {
		text, _, _ := strings.Cut(sc.Text(), "#")
		for _, tok := range strings.Fields(text) {
			ev, err := ParseEvent(tok, prev)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", line, err)
			}
			if ev.At < prev {
				return nil, errors.New(errors.ErrCodeInvalidEvent, "line %d: event %q goes back in time", line, tok)
			}
			prev = ev.At
			events = append(events, ev)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidEvent, err, "read script")
	}
	return events, nil
}

// SimClock is a manually advanced clock for scripted runs.
type SimClock struct {
	mu    sync.Mutex
	start time.Time
	now   time.Time
}

// NewSimClock returns a clock starting at start.
func NewSimClock(start time.Time) *SimClock {
	return &SimClock{start: start, now: start}
}

// Now returns the simulated time.
func (c *SimClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Set moves the clock to start+offset.
func (c *SimClock) Set(offset time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.start.Add(offset)
}

// Result records what the controller did with one scripted event.
type Result struct {
	Event    Event  `json:"event"`
	Accepted bool   `json:"accepted"`
	Card     string `json:"card,omitempty"`
	Link     string `json:"link,omitempty"`
	Err      string `json:"error,omitempty"`
}

// Replay feeds events to c in order, moving clock to each event's offset
// first. c must have been built WithClock(clock.Now). Errors from
// individual events are recorded in their Result, not returned; Replay
// only fails if ctx is cancelled.
func Replay(ctx context.Context, c *Controller, clock *SimClock, events []Event) ([]Result, error) {
	results := make([]Result, 0, len(events))
	for _, ev := range events {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		clock.Set(ev.At)
		res := Result{Event: ev}
		switch ev.Kind {
		case EventScroll:
			card, ok := c.Scroll(ctx)
			res.Accepted = ok
			if card != nil {
				res.Card = card.Post.Title
			}
		case EventResize:
			ok, err := c.Resize(ctx, ev.Width, ev.Height)
			res.Accepted = ok
			if err != nil {
				res.Err = err.Error()
			}
		case EventClick:
			link, err := c.Click(ctx, ev.Index)
			res.Accepted = err == nil
			res.Link = link
			if err != nil {
				res.Err = errors.UserMessage(err)
			}
		}
		c.logger.Debug("event", "event", ev, "accepted", res.Accepted)
		results = append(results, res)
	}
	return results, nil
}
