package strategy

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrInvalidWindow is returned for a no-trade window that is not "HH:MM-HH:MM".
var ErrInvalidWindow = errors.New("invalid no-trade window")

// Window is a time-of-day interval, inclusive at both ends, that may wrap
// past midnight. Values are minutes since 00:00.
type Window struct {
	Start int
	End   int
	set   bool
}

// ParseWindow parses "HH:MM-HH:MM". An empty string yields a window that
// never matches.
func ParseWindow(s string) (Window, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Window{}, nil
	}
	startS, endS, found := strings.Cut(s, "-")
	if !found {
		return Window{}, fmt.Errorf("%w: %q", ErrInvalidWindow, s)
	}
	start, err := parseClock(startS)
	if err != nil {
		return Window{}, fmt.Errorf("%w: %q: %v", ErrInvalidWindow, s, err)
	}
	end, err := parseClock(endS)
	if err != nil {
		return Window{}, fmt.Errorf("%w: %q: %v", ErrInvalidWindow, s, err)
	}
	return Window{Start: start, End: end, set: true}, nil
}

func parseClock(s string) (int, error) {
	t, err := time.Parse("15:04", strings.TrimSpace(s))
	if err != nil {
		return 0, err
	}
	return t.Hour()*60 + t.Minute(), nil
}

// Contains reports whether the time of day of t, truncated to minutes,
// falls inside the window.
func (w Window) Contains(t time.Time) bool {
	if !w.set {
		return false
	}
	cur := t.Hour()*60 + t.Minute()
	if w.Start <= w.End {
		return w.Start <= cur && cur <= w.End
	}
	return cur >= w.Start || cur <= w.End
}

func (w Window) String() string {
	if !w.set {
		return ""
	}
	return fmt.Sprintf("%02d:%02d-%02d:%02d", w.Start/60, w.Start%60, w.End/60, w.End%60)
}
