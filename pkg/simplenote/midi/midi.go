// Package midi writes export payloads as Standard MIDI Files.
package midi

import (
	"bytes"
	"fmt"
	"io"

	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"

	"github.com/himanishpuri/SimpleNote/pkg/simplenote/export"
	"github.com/himanishpuri/SimpleNote/pkg/simplenote/score"
)

const (
	TicksPerQuarter = 480
	Channel         = 0
	Velocity        = 100
)

// Encode lays the payload out on a single track: title, 4/4 meter, a tempo
// event wherever the bpm changes, then every note as a note on/off pair.
// Rests only advance time. Notes whose pitch cannot be played are treated
// as rests.
func Encode(p export.Payload) (*smf.SMF, error) {
	s := smf.New()
	s.TimeFormat = smf.MetricTicks(TicksPerQuarter)

	var tr smf.Track
	tr.Add(0, smf.MetaTrackSequenceName(p.Title))
	tr.Add(0, smf.MetaMeter(4, 4))

	var delta uint32
	tempo := 0
	for _, m := range p.Measures {
		bpm := m.BPM
		if bpm <= 0 {
			bpm = export.DefaultTempo
		}
		if bpm != tempo {
			tr.Add(delta, smf.MetaTempo(float64(bpm)))
			delta = 0
			tempo = bpm
		}
		for _, e := range m.Notes {
			length := uint32(e.Ticks(TicksPerQuarter))
			key, ok := e.MIDIKey()
			if !ok || length == 0 {
				delta = min(delta+length, score.MaxTicks)
				continue
			}
			tr.Add(delta, midi.NoteOn(Channel, uint8(key), Velocity))
			tr.Add(length, midi.NoteOff(Channel, uint8(key)))
			delta = 0
		}
	}
	tr.Close(delta)

	if err := s.Add(tr); err != nil {
		return nil, fmt.Errorf("add midi track: %w", err)
	}
	return s, nil
}

// Write encodes p and writes the file to w.
func Write(w io.Writer, p export.Payload) error {
	s, err := Encode(p)
	if err != nil {
		return err
	}
	if _, err := s.WriteTo(w); err != nil {
		return fmt.Errorf("write midi: %w", err)
	}
	return nil
}

// Bytes returns the encoded file.
func Bytes(p export.Payload) ([]byte, error) {
	var buf bytes.Buffer
	if err := Write(&buf, p); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
