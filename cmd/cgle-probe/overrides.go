package main

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"cgle/internal/core"
)

type kvList []string

func (l *kvList) String() string {
	return strings.Join(*l, ",")
}

func (l *kvList) Set(value string) error {
	*l = append(*l, value)
	return nil
}

type override struct {
	frame int
	key   string
	value float64
}

// schedule holds overrides ordered by the frame they apply before.
type schedule []override

func (s schedule) at(frame int) []override {
	i := sort.Search(len(s), func(i int) bool { return s[i].frame >= frame })
	j := i
	for j < len(s) && s[j].frame == frame {
		j++
	}
	return s[i:j]
}

// parseOverrides accepts key=value (applied before the first frame) and
// frame:key=value entries.
func parseOverrides(list []string) (schedule, error) {
	var out schedule
	for _, kv := range list {
		frame := 0
		body := kv
		if at, rest, ok := strings.Cut(kv, ":"); ok {
			n, err := strconv.Atoi(strings.TrimSpace(at))
			if err != nil || n < 0 {
				return nil, fmt.Errorf("override %q: bad frame %q", kv, at)
			}
			frame, body = n, rest
		}
		key, raw, ok := strings.Cut(body, "=")
		if !ok {
			return nil, fmt.Errorf("override %q: want key=value", kv)
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil {
			return nil, fmt.Errorf("override %q: %w", kv, err)
		}
		out = append(out, override{frame: frame, key: strings.TrimSpace(key), value: v})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].frame < out[j].frame })
	return out, nil
}

// parsePress reads "x,y" surface pixel coordinates into a press event.
func parsePress(s string) (core.PointerEvent, error) {
	xs, ys, ok := strings.Cut(s, ",")
	if !ok {
		return core.PointerEvent{}, fmt.Errorf("press %q: want x,y", s)
	}
	x, err := strconv.ParseFloat(strings.TrimSpace(xs), 64)
	if err != nil {
		return core.PointerEvent{}, fmt.Errorf("press %q: %w", s, err)
	}
	y, err := strconv.ParseFloat(strings.TrimSpace(ys), 64)
	if err != nil {
		return core.PointerEvent{}, fmt.Errorf("press %q: %w", s, err)
	}
	return core.PointerEvent{Kind: core.PointerPress, X: x, Y: y}, nil
}

// brushEvents returns the events to post before frame n for a press held
// for hold frames. A hold below one releases on the frame after the press.
func brushEvents(press core.PointerEvent, hold, n int) []core.PointerEvent {
	if hold < 1 {
		hold = 1
	}
	var evs []core.PointerEvent
	if n == 0 {
		evs = append(evs, press)
	}
	if n == hold {
		evs = append(evs, core.PointerEvent{Kind: core.PointerRelease, X: press.X, Y: press.Y})
	}
	return evs
}
