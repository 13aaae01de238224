package availability

import "time"

// SlotStep is the granularity of offered start times.
const SlotStep = 15 * time.Minute

type Interval struct {
	Start time.Time
	End   time.Time
}

// FreeStarts returns start times in [open, close) where a booking of length d fits without
// touching any busy interval. Starts before now are skipped.
func FreeStarts(open, close time.Time, d, step time.Duration, busy []Interval, now time.Time) []time.Time {
	if d <= 0 || step <= 0 || open.Add(d).After(close) {
		return nil
	}

	var out []time.Time
	for t := open; !t.Add(d).After(close); t = t.Add(step) {
		if t.Before(now) {
			continue
		}
		if !overlapsAny(t, t.Add(d), busy) {
			out = append(out, t)
		}
	}
	return out
}

func overlapsAny(start, end time.Time, busy []Interval) bool {
	for _, b := range busy {
		if start.Before(b.End) && b.Start.Before(end) {
			return true
		}
	}
	return false
}
