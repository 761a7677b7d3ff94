package score

import "math"

// Notation names written to MusicXML <type> elements.
const (
	Sixteenth = "16th"
	Eighth    = "eighth"
	Quarter   = "quarter"
	Half      = "half"
	Whole     = "whole"
)

// Durations lists the supported duration values, shortest first.
// The unit is an eighth note: 1 = eighth, 2 = quarter, 8 = whole.
var Durations = []float64{0.5, 1, 2, 4, 8}

var durationNames = map[float64]string{
	0.5: Sixteenth,
	1:   Eighth,
	2:   Quarter,
	4:   Half,
	8:   Whole,
}

// DurationName maps a duration value to its notation name.
// Values outside Durations fall back to "quarter".
func DurationName(d float64) string {
	if name, ok := durationNames[d]; ok {
		return name
	}
	return Quarter
}

// IsStandardDuration reports whether d is one of Durations.
func IsStandardDuration(d float64) bool {
	_, ok := durationNames[d]
	return ok
}

// dotFactor returns the length multiplier for n augmentation dots (1, 1.5, 1.75, ...).
func dotFactor(n int) float64 {
	f := 1.0
	add := 0.5
	for i := 0; i < n; i++ {
		f += add
		add /= 2
	}
	return f
}

// QuarterLength is the event's length in quarter notes with dots applied.
func QuarterLength(duration float64, dotted int) float64 {
	return duration / 2 * dotFactor(dotted)
}

// MaxTicks is the largest tick count Ticks returns. It is the largest
// delta time a MIDI file can hold.
const MaxTicks = 1<<28 - 1

// Ticks converts a duration to an integer tick count at the given
// resolution (ticks per quarter note). Fractions are rounded and the result
// is clamped to [0, MaxTicks].
func Ticks(duration float64, dotted, perQuarter int) int {
	t := math.Round(QuarterLength(duration, dotted) * float64(perQuarter))
	switch {
	case t < 0 || math.IsNaN(t):
		return 0
	case t > MaxTicks:
		return MaxTicks
	}
	return int(t)
}
