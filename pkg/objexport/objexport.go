// Package objexport writes decoded preinstanced meshes as Wavefront OBJ,
// plus a JSON dump of both UV channels for inspection tooling.
//
// The decoder leaves geometry in the game's coordinate frame; consumers of
// the old import pipeline expect it rotated 90 degrees about X. That
// reorientation is applied here, on the way out, so the decoder itself
// stays a pure read of the file.
package objexport

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/Faultbox/simpsons-mesh/pkg/preinstanced"
)

// Writer appends meshes to one OBJ stream. OBJ indices are global and
// 1-based, so the writer tracks a running vertex offset across meshes.
type Writer struct {
	w        *bufio.Writer
	closer   io.Closer
	vtxCount int
}

// NewWriter wraps w. Close flushes but does not close w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: bufio.NewWriter(w)}
}

// Create opens path for writing, truncating any existing file.
func Create(path string) (*Writer, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("creating obj file: %w", err)
	}
	return &Writer{w: bufio.NewWriter(f), closer: f}, nil
}

// WriteMesh appends one mesh as an OBJ object: positions (reoriented),
// the primary UV channel as vt lines, and v/vt faces.
func (e *Writer) WriteMesh(m preinstanced.Mesh) error {
	if _, err := fmt.Fprintf(e.w, "o %s\n", m.Name); err != nil {
		return err
	}
	for _, v := range m.Vertices {
		x, y, z := reorient(v.Position)
		fmt.Fprintf(e.w, "v %g %g %g\n", x, y, z)
		fmt.Fprintf(e.w, "vt %g %g\n", v.UV[0], v.UV[1])
	}
	for _, t := range m.Triangles {
		a := int(t[0]) + 1 + e.vtxCount
		b := int(t[1]) + 1 + e.vtxCount
		c := int(t[2]) + 1 + e.vtxCount
		if _, err := fmt.Fprintf(e.w, "f %d/%d %d/%d %d/%d\n", a, a, b, b, c, c); err != nil {
			return err
		}
	}
	e.vtxCount += len(m.Vertices)
	return nil
}

// Close flushes the stream and closes the underlying file, if any.
func (e *Writer) Close() error {
	if err := e.w.Flush(); err != nil {
		return err
	}
	if e.closer != nil {
		return e.closer.Close()
	}
	return nil
}

// WriteFile writes all meshes to a single OBJ file at path.
func WriteFile(path string, meshes []preinstanced.Mesh) error {
	e, err := Create(path)
	if err != nil {
		return err
	}
	for _, m := range meshes {
		if err := e.WriteMesh(m); err != nil {
			e.Close()
			return fmt.Errorf("writing mesh %s: %w", m.Name, err)
		}
	}
	return e.Close()
}

// reorient rotates a position 90 degrees about X, the fixed post-step the
// downstream pipeline applies to every imported mesh.
func reorient(p [3]float32) (x, y, z float32) {
	return p[0], -p[2], p[1]
}
