package score

// Measure is an ordered run of events. Order is performance order.
// The total duration is not checked against any time signature.
type Measure []Event

// Clone returns an independent copy. A nil measure clones to an empty one
// so it encodes as [] rather than null.
func (m Measure) Clone() Measure {
	out := make(Measure, len(m))
	copy(out, m)
	return out
}

// At returns the event at i, or false if i is out of range.
func (m Measure) At(i int) (Event, bool) {
	if i < 0 || i >= len(m) {
		return Event{}, false
	}
	return m[i], true
}

// Insert places e at index i (0..len). It reports false for any other index.
func (m *Measure) Insert(i int, e Event) bool {
	if i < 0 || i > len(*m) {
		return false
	}
	*m = append(*m, Event{})
	copy((*m)[i+1:], (*m)[i:])
	(*m)[i] = e
	return true
}

// Remove deletes the event at i. It reports false if i is out of range.
func (m *Measure) Remove(i int) bool {
	if i < 0 || i >= len(*m) {
		return false
	}
	*m = append((*m)[:i], (*m)[i+1:]...)
	return true
}

// QuarterLength sums the event lengths in quarter notes. Informational only.
func (m Measure) QuarterLength() float64 {
	var total float64
	for _, e := range m {
		total += e.QuarterLength()
	}
	return total
}
