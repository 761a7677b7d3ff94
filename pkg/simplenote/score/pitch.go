package score

// Steps are the pitch letters in scale order.
var Steps = []string{"C", "D", "E", "F", "G", "A", "B"}

var stepSemitones = map[string]int{
	"C": 0, "D": 2, "E": 4, "F": 5, "G": 7, "A": 9, "B": 11,
}

var stepNumbers = map[string]string{
	"C": "1", "D": "2", "E": "3", "F": "4", "G": "5", "A": "6", "B": "7",
}

// IsStep reports whether s is a valid pitch letter.
func IsStep(s string) bool {
	_, ok := stepSemitones[s]
	return ok
}

// PitchNumber returns the numbered-notation digit for a step ("1" for C
// through "7" for B), or "?" when the step is unknown.
func PitchNumber(step string) string {
	if n, ok := stepNumbers[step]; ok {
		return n
	}
	return "?"
}

// MIDIKey returns the MIDI key number for the event's sounding pitch,
// with the octave shift and alteration applied. Middle C (C4) is 60.
func (e Event) MIDIKey() (int, bool) {
	semi, ok := stepSemitones[e.Step]
	if !e.IsNote() || !ok {
		return 0, false
	}
	key := 12*(e.SoundingOctave()+1) + semi + e.Alter
	if key < 0 || key > 127 {
		return 0, false
	}
	return key, true
}

// SoundingOctave is the written octave moved by the octave shift marker.
func (e Event) SoundingOctave() int {
	return e.Octave + e.OctaveShift
}

// AccidentalName returns the MusicXML accidental for the alteration, if any.
func (e Event) AccidentalName() string {
	switch e.Alter {
	case 1:
		return "sharp"
	case -1:
		return "flat"
	}
	return ""
}
