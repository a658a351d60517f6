package preinstanced

import "math"

// Vertex is one decoded vertex record. The on-disk layout is position
// first, metadata in the middle, and the two UV channels in the final 16
// bytes of the stride block. Both channels are stored with the V coordinate
// flipped (1 - v), matching what downstream tooling expects.
type Vertex struct {
	Position [3]float32
	UV       [2]float32 // primary texture channel ("uvmap")
	CM       [2]float32 // secondary channel ("CM_uv"), lightmap-like
}

// VertexDiag counts the corrections applied while reading a vertex stream.
type VertexDiag struct {
	SanitizedUVs     int // non-finite UV pairs replaced with (0, 0)
	ZeroFilledFields int // fields zeroed because the buffer ran out
}

// ReadVertices extracts count vertices of the given stride starting at
// start. A vertex whose bytes run past the buffer gets zeroed fields rather
// than aborting the stream; downstream tooling prefers a geometrically
// complete mesh over a missing one. Non-finite UV components never escape:
// they are replaced with (0, 0) at read time.
func ReadVertices(data []byte, start, count, stride int) ([]Vertex, VertexDiag) {
	var diag VertexDiag
	if count < 0 {
		return nil, diag
	}
	c := newCursor(data)
	verts := make([]Vertex, count)
	for v := 0; v < count; v++ {
		base := start + v*stride
		vert := &verts[v]

		if err := c.seek(base); err == nil {
			if pos, ok := readVec3(c); ok {
				vert.Position = pos
			} else {
				diag.ZeroFilledFields++
			}
		} else {
			diag.ZeroFilledFields++
		}

		vert.UV = readUVPair(c, base+stride-16, &diag)
		vert.CM = readUVPair(c, base+stride-8, &diag)
	}
	return verts, diag
}

func readVec3(c *cursor) ([3]float32, bool) {
	var out [3]float32
	for i := range out {
		f, err := c.float32be()
		if err != nil {
			return [3]float32{}, false
		}
		out[i] = f
	}
	return out, true
}

// readUVPair reads a raw (u, v) pair at off and stores it v-flipped. Bounds
// failures and non-finite values both collapse to (0, 0).
func readUVPair(c *cursor, off int, diag *VertexDiag) [2]float32 {
	if err := c.seek(off); err != nil {
		diag.ZeroFilledFields++
		return [2]float32{}
	}
	u, err := c.float32be()
	if err != nil {
		diag.ZeroFilledFields++
		return [2]float32{}
	}
	v, err := c.float32be()
	if err != nil {
		diag.ZeroFilledFields++
		return [2]float32{}
	}
	if !finite(u) || !finite(v) {
		diag.SanitizedUVs++
		return [2]float32{}
	}
	return [2]float32{u, 1 - v}
}

func finite(f float32) bool {
	f64 := float64(f)
	return !math.IsNaN(f64) && !math.IsInf(f64, 0)
}
