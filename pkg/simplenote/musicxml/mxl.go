package musicxml

import (
	"archive/zip"
	"bytes"
	"fmt"
)

const (
	mxlMimetype  = "application/vnd.recordare.musicxml"
	mxlRootfile  = "score.xml"
	containerXML = `<?xml version="1.0" encoding="UTF-8"?>
<container>
  <rootfiles>
    <rootfile full-path="score.xml" media-type="application/vnd.recordare.musicxml+xml"/>
  </rootfiles>
</container>
`
)

// PackMXL wraps a MusicXML document in a compressed .mxl archive. The
// mimetype entry comes first and is stored uncompressed.
func PackMXL(doc []byte) ([]byte, error) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	w, err := zw.CreateHeader(&zip.FileHeader{Name: "mimetype", Method: zip.Store})
	if err != nil {
		return nil, fmt.Errorf("mxl mimetype: %w", err)
	}
	if _, err := w.Write([]byte(mxlMimetype)); err != nil {
		return nil, fmt.Errorf("mxl mimetype: %w", err)
	}

	for _, f := range []struct {
		name string
		data []byte
	}{
		{"META-INF/container.xml", []byte(containerXML)},
		{mxlRootfile, doc},
	} {
		w, err := zw.CreateHeader(&zip.FileHeader{Name: f.name, Method: zip.Deflate})
		if err != nil {
			return nil, fmt.Errorf("mxl %s: %w", f.name, err)
		}
		if _, err := w.Write(f.data); err != nil {
			return nil, fmt.Errorf("mxl %s: %w", f.name, err)
		}
	}

	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("mxl close: %w", err)
	}
	return buf.Bytes(), nil
}
