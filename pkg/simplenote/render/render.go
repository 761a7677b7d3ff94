// Package render produces export files in-process, without the generation
// service.
package render

import (
	"context"
	"fmt"

	"github.com/himanishpuri/SimpleNote/pkg/simplenote/export"
	"github.com/himanishpuri/SimpleNote/pkg/simplenote/midi"
	"github.com/himanishpuri/SimpleNote/pkg/simplenote/musicxml"
)

// Render produces the file bytes of p in the given format.
func Render(p export.Payload, format export.Format) ([]byte, error) {
	return (&Local{}).render(p, format)
}

// Local renders in-process. It satisfies the same contract as the HTTP
// generation client, so either can back an export.
type Local struct {
	MusicXML *musicxml.Generator
}

// NewLocal returns a renderer using the default MusicXML generator.
func NewLocal() *Local {
	return &Local{MusicXML: musicxml.New()}
}

func (l *Local) Generate(ctx context.Context, p export.Payload, format export.Format) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return l.render(p, format)
}

func (l *Local) render(p export.Payload, format export.Format) ([]byte, error) {
	g := l.MusicXML
	if g == nil {
		g = musicxml.New()
	}
	p = p.Normalized()

	switch format {
	case export.FormatMXL, "":
		return g.MXL(p)
	case export.FormatMusicXML:
		return g.MusicXML(p)
	case export.FormatMIDI:
		return midi.Bytes(p)
	}
	return nil, fmt.Errorf("%w: %q", export.ErrUnknownFormat, string(format))
}
