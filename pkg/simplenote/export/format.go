package export

import (
	"errors"
	"fmt"
	"strings"
)

// Format is a file format the generation service can produce.
type Format string

const (
	FormatMXL      Format = "mxl"
	FormatMusicXML Format = "musicxml"
	FormatMIDI     Format = "mid"
)

var ErrUnknownFormat = errors.New("unknown export format")

// Formats lists the supported formats, default first.
var Formats = []Format{FormatMXL, FormatMusicXML, FormatMIDI}

// ParseFormat reads a fmt query value. Empty means mxl.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "mxl":
		return FormatMXL, nil
	case "musicxml", "xml":
		return FormatMusicXML, nil
	case "mid", "midi":
		return FormatMIDI, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

// Ext is the file extension, without the dot.
func (f Format) Ext() string { return string(f) }

// ContentType is the media type of a generated file.
func (f Format) ContentType() string {
	switch f {
	case FormatMusicXML:
		return "application/vnd.recordare.musicxml+xml"
	case FormatMIDI:
		return "audio/midi"
	default:
		return "application/vnd.recordare.musicxml+zip"
	}
}
