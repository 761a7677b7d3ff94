package render

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/himanishpuri/SimpleNote/pkg/simplenote/export"
	"github.com/himanishpuri/SimpleNote/pkg/simplenote/score"
)

func payload() export.Payload {
	s := &score.Score{Title: "R", Measures: []score.Measure{{score.NewNote("C", 4, 2)}}}
	return export.Build(s, export.DefaultOptions())
}

func TestRenderFormats(t *testing.T) {
	mxl, err := Render(payload(), export.FormatMXL)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(mxl, []byte("PK")))

	xml, err := Render(payload(), export.FormatMusicXML)
	require.NoError(t, err)
	assert.Contains(t, string(xml), "<score-partwise")

	mid, err := Render(payload(), export.FormatMIDI)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(mid, []byte("MThd")))
}

func TestRenderUnknownFormat(t *testing.T) {
	_, err := Render(payload(), export.Format("pdf"))
	assert.True(t, errors.Is(err, export.ErrUnknownFormat))
}

func TestLocalHonoursContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewLocal().Generate(ctx, payload(), export.FormatMusicXML)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRenderFillsMissingMeasureFields(t *testing.T) {
	p := export.Payload{Title: "raw", Measures: []export.MeasureRecord{{}}}
	data, err := Render(p, export.FormatMusicXML)
	require.NoError(t, err)
	assert.Contains(t, string(data), `<measure number="1">`)
	assert.Contains(t, string(data), "<per-minute>120</per-minute>")
}
