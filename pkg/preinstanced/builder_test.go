package preinstanced

import (
	"encoding/binary"
	"math"
)

// testVert is one vertex worth of raw values before the V flip.
type testVert struct {
	pos [3]float32
	uv  [2]float32
	cm  [2]float32
}

type testSubMesh struct {
	stride       int
	verts        []testVert
	indices      []uint16
	rawFaceCount uint32 // 0 means the honest value, len(indices)*2
}

// buildTestFile lays out one chunk with the given sub-meshes, offsets wired
// the way shipped files wire them: a 12-byte signature with wildcard bytes,
// little-endian face base and size, a skipped 8-byte table entry, then per
// sub-mesh a 12-byte table entry pointing (via the +0xC link) at a 52-byte
// descriptor followed by vertex and index data.
func buildTestFile(faceDataBase uint32, subs ...testSubMesh) []byte {
	const pad = 8
	sig := pad
	chunkBase := sig + SignatureLen + 12
	tableCount := 1
	subTable := chunkBase + headerReservedLen + 8 + tableCount*tableEntryLen

	type layout struct{ link, desc, vtx, face int }
	lays := make([]layout, len(subs))
	cur := subTable + len(subs)*subMeshEntryLen
	for i, s := range subs {
		lays[i].link = cur
		cur += 4
		lays[i].desc = cur
		cur += 52
		lays[i].vtx = cur
		cur += len(s.verts) * s.stride
		lays[i].face = cur
		cur += len(s.indices) * 2
	}

	buf := make([]byte, cur)
	for i := 0; i < pad; i++ {
		buf[i] = 0xAA
	}
	copy(buf[sig:], []byte{0x33, 0xEA, 0x00, 0x00, 0xDE, 0xAD, 0xBE, 0xEF, 0x2D, 0x00, 0x02, 0x1C})
	binary.LittleEndian.PutUint32(buf[sig+16:], faceDataBase)
	binary.LittleEndian.PutUint32(buf[sig+20:], uint32(cur-chunkBase))
	binary.BigEndian.PutUint32(buf[chunkBase+headerReservedLen:], uint32(tableCount))
	binary.BigEndian.PutUint32(buf[chunkBase+headerReservedLen+4:], uint32(len(subs)))

	putF32 := func(off int, f float32) {
		binary.BigEndian.PutUint32(buf[off:], math.Float32bits(f))
	}

	for i, s := range subs {
		entry := subTable + i*subMeshEntryLen
		binary.BigEndian.PutUint32(buf[entry+8:], uint32(lays[i].link-chunkBase-0xC))
		binary.BigEndian.PutUint32(buf[lays[i].link:], uint32(lays[i].desc-chunkBase))

		d := lays[i].desc
		binary.BigEndian.PutUint32(buf[d:], uint32(len(s.verts)*s.stride))
		binary.BigEndian.PutUint32(buf[d+4:], uint32(s.stride))
		binary.BigEndian.PutUint32(buf[d+16:], uint32(lays[i].vtx-chunkBase-int(faceDataBase)))
		raw := s.rawFaceCount
		if raw == 0 {
			raw = uint32(len(s.indices) * 2)
		}
		binary.BigEndian.PutUint32(buf[d+40:], raw)
		binary.BigEndian.PutUint32(buf[d+48:], uint32(lays[i].face-chunkBase-int(faceDataBase)))

		for v, vert := range s.verts {
			base := lays[i].vtx + v*s.stride
			putF32(base, vert.pos[0])
			putF32(base+4, vert.pos[1])
			putF32(base+8, vert.pos[2])
			putF32(base+s.stride-16, vert.uv[0])
			putF32(base+s.stride-12, vert.uv[1])
			putF32(base+s.stride-8, vert.cm[0])
			putF32(base+s.stride-4, vert.cm[1])
		}
		for f, idx := range s.indices {
			binary.BigEndian.PutUint16(buf[lays[i].face+f*2:], idx)
		}
	}
	return buf
}

// quadVerts is the 4-vertex fixture shared by several tests.
func quadVerts() []testVert {
	return []testVert{
		{pos: [3]float32{0, 0, 0}, uv: [2]float32{0.25, 0.75}, cm: [2]float32{0.1, 0.2}},
		{pos: [3]float32{1, 0, 0}, uv: [2]float32{1, 1}, cm: [2]float32{0.3, 0.4}},
		{pos: [3]float32{1, 1, 0}, uv: [2]float32{0, 1}, cm: [2]float32{0.5, 0.6}},
		{pos: [3]float32{0, 1, 0}, uv: [2]float32{0.5, 0.5}, cm: [2]float32{0.7, 0.8}},
	}
}
