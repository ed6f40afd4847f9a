package strategy

import "time"

// referenceDate anchors time.Format when rendering a seconds-of-day offset,
// the way the source system's datetime(1900, 1, 1, ...) anchor did for
// bare time-of-day values.
var referenceDate = time.Date(1900, 1, 1, 0, 0, 0, 0, time.UTC)

// parseTimeLayout parses a time-only string against layout with plain
// time.Parse (no referenceDate anchoring); callers read only
// Hour/Minute/Second off the result.
func parseTimeLayout(raw, layout string) (time.Time, error) {
	return time.Parse(layout, raw)
}

// formatSecondsOfDay renders a seconds-since-midnight offset (0..86399)
// using layout, via the same fixed reference date.
func formatSecondsOfDay(seconds int, layout string) string {
	t := referenceDate.Add(time.Duration(seconds) * time.Second)
	return t.Format(layout)
}
