package musicxml

import "encoding/xml"

// The types below mirror the subset of MusicXML 3.1 partwise that a
// single-staff melody needs. Field order is element order.

type scorePartwise struct {
	XMLName        xml.Name       `xml:"score-partwise"`
	Version        string         `xml:"version,attr"`
	Work           work           `xml:"work"`
	Identification identification `xml:"identification"`
	Defaults       defaults       `xml:"defaults"`
	Credits        []credit       `xml:"credit"`
	PartList       partList       `xml:"part-list"`
	Parts          []part         `xml:"part"`
}

type work struct {
	Title string `xml:"work-title"`
}

type identification struct {
	Creators []creator `xml:"creator"`
	Rights   string    `xml:"rights,omitempty"`
	Encoding encoding  `xml:"encoding"`
}

type creator struct {
	Type string `xml:"type,attr"`
	Name string `xml:",chardata"`
}

type encoding struct {
	Software string     `xml:"software"`
	Date     string     `xml:"encoding-date"`
	Supports []supports `xml:"supports"`
}

type supports struct {
	Element   string `xml:"element,attr"`
	Type      string `xml:"type,attr"`
	Attribute string `xml:"attribute,attr,omitempty"`
	Value     string `xml:"value,attr,omitempty"`
}

type defaults struct {
	Scaling    scaling    `xml:"scaling"`
	PageLayout pageLayout `xml:"page-layout"`
	WordFont   font       `xml:"word-font"`
	LyricFont  font       `xml:"lyric-font"`
}

type scaling struct {
	Millimeters string `xml:"millimeters"`
	Tenths      string `xml:"tenths"`
}

type pageLayout struct {
	Height  string        `xml:"page-height"`
	Width   string        `xml:"page-width"`
	Margins []pageMargins `xml:"page-margins"`
}

type pageMargins struct {
	Type   string `xml:"type,attr"`
	Left   string `xml:"left-margin"`
	Right  string `xml:"right-margin"`
	Top    string `xml:"top-margin"`
	Bottom string `xml:"bottom-margin"`
}

type font struct {
	Family string `xml:"font-family,attr"`
	Size   string `xml:"font-size,attr"`
}

type credit struct {
	Page  int         `xml:"page,attr"`
	Words creditWords `xml:"credit-words"`
}

type creditWords struct {
	X        string `xml:"default-x,attr"`
	Y        string `xml:"default-y,attr"`
	Justify  string `xml:"justify,attr"`
	Valign   string `xml:"valign,attr"`
	FontSize string `xml:"font-size,attr"`
	Text     string `xml:",chardata"`
}

type partList struct {
	ScorePart scorePart `xml:"score-part"`
}

type scorePart struct {
	ID           string         `xml:"id,attr"`
	Name         string         `xml:"part-name"`
	Abbreviation string         `xml:"part-abbreviation"`
	Instrument   instrument     `xml:"score-instrument"`
	Device       midiDevice     `xml:"midi-device"`
	MIDI         midiInstrument `xml:"midi-instrument"`
}

type instrument struct {
	ID   string `xml:"id,attr"`
	Name string `xml:"instrument-name"`
}

type midiDevice struct {
	ID   string `xml:"id,attr"`
	Port int    `xml:"port,attr"`
}

type midiInstrument struct {
	ID      string `xml:"id,attr"`
	Channel int    `xml:"midi-channel"`
	Program int    `xml:"midi-program"`
	Volume  string `xml:"volume"`
	Pan     int    `xml:"pan"`
}

type part struct {
	ID       string    `xml:"id,attr"`
	Measures []measure `xml:"measure"`
}

type measure struct {
	Number     string      `xml:"number,attr"`
	Print      *printHint  `xml:"print,omitempty"`
	Attributes *attributes `xml:"attributes,omitempty"`
	Direction  *direction  `xml:"direction,omitempty"`
	Notes      []note      `xml:"note"`
}

type printHint struct {
	NewSystem string `xml:"new-system,attr,omitempty"`
}

type attributes struct {
	Divisions int     `xml:"divisions"`
	Key       key     `xml:"key"`
	Time      timeSig `xml:"time"`
	Clef      clef    `xml:"clef"`
}

type key struct {
	Fifths int `xml:"fifths"`
}

type timeSig struct {
	Beats    int `xml:"beats"`
	BeatType int `xml:"beat-type"`
}

type clef struct {
	Sign string `xml:"sign"`
	Line int    `xml:"line"`
}

type direction struct {
	Placement string        `xml:"placement,attr"`
	Type      directionType `xml:"direction-type"`
	Sound     sound         `xml:"sound"`
}

type directionType struct {
	Metronome metronome `xml:"metronome"`
}

type metronome struct {
	Parentheses string `xml:"parentheses,attr"`
	BeatUnit    string `xml:"beat-unit"`
	PerMinute   int    `xml:"per-minute"`
}

type sound struct {
	Tempo int `xml:"tempo,attr"`
}

type note struct {
	Rest       *empty     `xml:"rest,omitempty"`
	Pitch      *pitch     `xml:"pitch,omitempty"`
	Duration   int        `xml:"duration"`
	Ties       []tie      `xml:"tie"`
	Voice      string     `xml:"voice"`
	Type       string     `xml:"type"`
	Dots       []empty    `xml:"dot"`
	Accidental string     `xml:"accidental,omitempty"`
	Stem       string     `xml:"stem,omitempty"`
	Beams      []beam     `xml:"beam"`
	Notations  *notations `xml:"notations,omitempty"`
	Lyric      *lyric     `xml:"lyric,omitempty"`
}

type empty struct{}

type pitch struct {
	Step   string `xml:"step"`
	Alter  int    `xml:"alter,omitempty"`
	Octave int    `xml:"octave"`
}

type tie struct {
	Type string `xml:"type,attr"`
}

type beam struct {
	Number int    `xml:"number,attr"`
	Value  string `xml:",chardata"`
}

type notations struct {
	Tied  []tie  `xml:"tied"`
	Slurs []slur `xml:"slur"`
}

type slur struct {
	Number int    `xml:"number,attr"`
	Type   string `xml:"type,attr"`
}

type lyric struct {
	Number   string `xml:"number,attr"`
	Syllabic string `xml:"syllabic"`
	Text     string `xml:"text"`
}
