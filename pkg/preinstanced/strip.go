package preinstanced

// StripSentinel is the reserved index value that terminates a triangle
// strip in the index stream.
const StripSentinel = 0xFFFF

// Triangle is an ordered triple of vertex indices defining one face.
type Triangle [3]uint16

// Strip is a run of vertex indices between two sentinels.
type Strip []uint16

// SplitStrips splits a flat index stream into strips on the sentinel value.
// Consecutive sentinels produce no empty strips, and a trailing strip needs
// no terminator.
func SplitStrips(indices []uint16) []Strip {
	var strips []Strip
	var cur Strip
	for _, idx := range indices {
		if idx == StripSentinel {
			if len(cur) > 0 {
				strips = append(strips, cur)
				cur = nil
			}
			continue
		}
		cur = append(cur, idx)
	}
	if len(cur) > 0 {
		strips = append(strips, cur)
	}
	return strips
}

// Triangulate converts the strip into a triangle list. Winding alternates
// per position, starting non-flipped. A degenerate triple (two indices
// equal) emits no triangle but still advances the alternation so the
// following triangles keep the correct orientation.
func (s Strip) Triangulate() []Triangle {
	if len(s) < 3 {
		return nil
	}
	tris := make([]Triangle, 0, len(s)-2)
	flipped := false
	for x := 0; x+2 < len(s); x++ {
		a, b, c := s[x], s[x+1], s[x+2]
		if a == b || a == c || b == c {
			flipped = !flipped
			continue
		}
		if flipped {
			tris = append(tris, Triangle{c, b, a})
		} else {
			tris = append(tris, Triangle{b, c, a})
		}
		flipped = !flipped
	}
	return tris
}

// DecodeStrips splits indices on the sentinel and triangulates each strip,
// concatenating the results in strip order.
func DecodeStrips(indices []uint16) []Triangle {
	var tris []Triangle
	for _, s := range SplitStrips(indices) {
		tris = append(tris, s.Triangulate()...)
	}
	return tris
}
