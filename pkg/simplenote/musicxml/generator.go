// Package musicxml writes export payloads as MusicXML 3.1 partwise
// documents and as compressed .mxl archives.
package musicxml

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/himanishpuri/SimpleNote/pkg/simplenote/export"
	"github.com/himanishpuri/SimpleNote/pkg/simplenote/notation"
	"github.com/himanishpuri/SimpleNote/pkg/simplenote/score"
)

// Divisions per quarter note. Sixteen keeps double-dotted sixteenths whole.
const Divisions = 16

const docType = `<!DOCTYPE score-partwise PUBLIC "-//Recordare//DTD MusicXML 3.1 Partwise//EN" "http://www.musicxml.org/dtds/partwise.dtd">`

// Generator renders payloads. The zero value is usable.
type Generator struct {
	// Software is written to identification/encoding.
	Software string
	// Now stamps the encoding date; time.Now when nil.
	Now func() time.Time
}

// New returns a generator with the default software name.
func New() *Generator {
	return &Generator{Software: "SimpleNote"}
}

// Generate renders p with a default generator.
func Generate(p export.Payload) ([]byte, error) {
	return New().MusicXML(p)
}

// MusicXML renders p as an uncompressed MusicXML document.
func (g *Generator) MusicXML(p export.Payload) ([]byte, error) {
	body, err := xml.MarshalIndent(g.document(p), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal musicxml: %w", err)
	}

	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	buf.WriteString(docType)
	buf.WriteByte('\n')
	buf.Write(body)
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

// MXL renders p and packs it into a compressed MusicXML archive.
func (g *Generator) MXL(p export.Payload) ([]byte, error) {
	doc, err := g.MusicXML(p)
	if err != nil {
		return nil, err
	}
	return PackMXL(doc)
}

func (g *Generator) document(p export.Payload) scorePartwise {
	software := g.Software
	if software == "" {
		software = "SimpleNote"
	}
	now := time.Now
	if g.Now != nil {
		now = g.Now
	}

	doc := scorePartwise{
		Version: "3.1",
		Work:    work{Title: p.Title},
		Identification: identification{
			Creators: creatorsOf(p),
			Rights:   p.Rights,
			Encoding: encoding{
				Software: software,
				Date:     now().Format("2006-01-02"),
				Supports: []supports{
					{Element: "accidental", Type: "yes"},
					{Element: "beam", Type: "yes"},
					{Element: "print", Type: "yes", Attribute: "new-page", Value: "yes"},
					{Element: "print", Type: "yes", Attribute: "new-system", Value: "yes"},
					{Element: "stem", Type: "yes"},
				},
			},
		},
		Defaults: pageDefaults(),
		Credits:  credits(p),
		PartList: partList{ScorePart: scorePart{
			ID:           "P1",
			Name:         "Piano",
			Abbreviation: "Pno.",
			Instrument:   instrument{ID: "P1-I1", Name: "Piano"},
			Device:       midiDevice{ID: "P1-I1", Port: 1},
			MIDI:         midiInstrument{ID: "P1-I1", Channel: 1, Program: 1, Volume: "78.7402"},
		}},
	}

	pt := part{ID: "P1", Measures: make([]measure, len(p.Measures))}
	for i, m := range p.Measures {
		pt.Measures[i] = buildMeasure(i, m)
	}
	doc.Parts = []part{pt}
	return doc
}

func creatorsOf(p export.Payload) []creator {
	var out []creator
	if c := p.Creators; !c.IsZero() {
		for _, kv := range [][2]string{
			{"composer", c.Composer},
			{"lyricist", c.Lyricist},
			{"translator", c.Translator},
		} {
			if kv[1] != "" {
				out = append(out, creator{Type: kv[0], Name: kv[1]})
			}
		}
	}
	if p.Artist != "" {
		out = append(out, creator{Type: "artist", Name: p.Artist})
	}
	return out
}

func pageDefaults() defaults {
	margins := func(t string) pageMargins {
		return pageMargins{Type: t, Left: "56.6929", Right: "56.6929", Top: "56.6929", Bottom: "113.386"}
	}
	return defaults{
		Scaling: scaling{Millimeters: "7.05556", Tenths: "40"},
		PageLayout: pageLayout{
			Height:  "1584",
			Width:   "1224",
			Margins: []pageMargins{margins("even"), margins("odd")},
		},
		WordFont:  font{Family: "FreeSerif", Size: "10"},
		LyricFont: font{Family: "FreeSerif", Size: "11"},
	}
}

func credits(p export.Payload) []credit {
	out := []credit{{
		Page:  1,
		Words: creditWords{X: "612", Y: "1527.31", Justify: "center", Valign: "top", FontSize: "24", Text: p.Title},
	}}
	if by := byline(p); by != "" {
		out = append(out, credit{
			Page:  1,
			Words: creditWords{X: "1167.31", Y: "1402.31", Justify: "right", Valign: "bottom", FontSize: "12", Text: by},
		})
	}
	if p.Rights != "" {
		out = append(out, credit{
			Page:  1,
			Words: creditWords{X: "612", Y: "113.386", Justify: "center", Valign: "bottom", FontSize: "8", Text: p.Rights},
		})
	}
	return out
}

func byline(p export.Payload) string {
	var parts []string
	if c := p.Creators; !c.IsZero() {
		if c.Composer != "" {
			parts = append(parts, "Music: "+c.Composer)
		}
		if c.Lyricist != "" {
			parts = append(parts, "Lyrics: "+c.Lyricist)
		}
		if c.Translator != "" {
			parts = append(parts, "Translation: "+c.Translator)
		}
	}
	if p.Artist != "" {
		parts = append(parts, p.Artist)
	}
	return strings.Join(parts, "\n")
}

func buildMeasure(i int, m export.MeasureRecord) measure {
	number := m.Number
	if number <= 0 {
		number = i + 1
	}
	bpm := m.BPM
	if bpm <= 0 {
		bpm = export.DefaultTempo
	}

	out := measure{Number: strconv.Itoa(number)}
	if m.NewSystem {
		out.Print = &printHint{NewSystem: "yes"}
	}
	if i == 0 {
		out.Attributes = &attributes{
			Divisions: Divisions,
			Time:      timeSig{Beats: 4, BeatType: 4},
			Clef:      clef{Sign: "G", Line: 2},
		}
		out.Direction = &direction{
			Placement: "above",
			Type:      directionType{Metronome: metronome{Parentheses: "no", BeatUnit: "quarter", PerMinute: bpm}},
			Sound:     sound{Tempo: bpm},
		}
	}

	beams := notation.BeamStates(m.Notes)
	slurs := notation.SlurRoles(m.Notes)
	out.Notes = make([]note, len(m.Notes))
	for j, e := range m.Notes {
		out.Notes[j] = buildNote(e, beams[j], slurs[j])
	}
	return out
}

func buildNote(e score.Event, b notation.BeamState, s notation.SlurRole) note {
	n := note{
		Duration: e.Ticks(Divisions),
		Voice:    "1",
		Type:     e.XMLType(),
	}
	if e.Dotted > 0 {
		n.Dots = make([]empty, e.Dotted)
	}
	if e.IsRest() {
		n.Rest = &empty{}
		return n
	}

	n.Pitch = &pitch{Step: e.Step, Alter: e.Alter, Octave: e.SoundingOctave()}
	n.Accidental = e.AccidentalName()
	n.Stem = e.Stem
	if n.Stem == "" {
		n.Stem = "up"
	}
	if b != notation.BeamNone {
		n.Beams = []beam{{Number: 1, Value: string(b)}}
	}

	var nt notations
	if e.TieStart {
		n.Ties = append(n.Ties, tie{Type: "start"})
		nt.Tied = append(nt.Tied, tie{Type: "start"})
	}
	if e.TieStop {
		n.Ties = append(n.Ties, tie{Type: "stop"})
		nt.Tied = append(nt.Tied, tie{Type: "stop"})
	}
	if s.Stop {
		nt.Slurs = append(nt.Slurs, slur{Number: 1, Type: "stop"})
	}
	if s.Start {
		nt.Slurs = append(nt.Slurs, slur{Number: 1, Type: "start"})
	}
	if len(nt.Tied) > 0 || len(nt.Slurs) > 0 {
		n.Notations = &nt
	}
	if e.Lyric != "" {
		n.Lyric = &lyric{Number: "1", Syllabic: "single", Text: e.Lyric}
	}
	return n
}
