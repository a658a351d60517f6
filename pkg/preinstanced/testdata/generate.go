//go:build ignore

// This program generates a small .preinstanced fixture for manual testing
// of the meshtool CLI. Run with: go run generate.go
//
// The file holds one chunk with a single quad sub-mesh (4 vertices,
// stride 32, two strips).
package main

import (
	"encoding/binary"
	"math"
	"os"
)

const (
	sigOff    = 8
	chunkBase = sigOff + 24
	reserved  = 0x14
	stride    = 32
)

func main() {
	subTable := chunkBase + reserved + 8 + 8 // one 8-byte table entry
	link := subTable + 12
	desc := link + 4
	vtx := desc + 52

	verts := [][7]float32{
		// x, y, z, u, v, cu, cv
		{0, 0, 0, 0, 0, 0, 0},
		{1, 0, 0, 1, 0, 0.5, 0},
		{1, 1, 0, 1, 1, 0.5, 0.5},
		{0, 1, 0, 0, 1, 0, 0.5},
	}
	indices := []uint16{0, 1, 2, 0xFFFF, 1, 2, 3}

	face := vtx + len(verts)*stride
	total := face + len(indices)*2

	buf := make([]byte, total)
	copy(buf[sigOff:], []byte{0x33, 0xEA, 0x00, 0x00, 0xDE, 0xAD, 0xBE, 0xEF, 0x2D, 0x00, 0x02, 0x1C})
	binary.LittleEndian.PutUint32(buf[sigOff+16:], 0) // face data base
	binary.LittleEndian.PutUint32(buf[sigOff+20:], uint32(total-chunkBase))
	binary.BigEndian.PutUint32(buf[chunkBase+reserved:], 1)   // table entries
	binary.BigEndian.PutUint32(buf[chunkBase+reserved+4:], 1) // sub-meshes

	binary.BigEndian.PutUint32(buf[subTable+8:], uint32(link-chunkBase-0xC))
	binary.BigEndian.PutUint32(buf[link:], uint32(desc-chunkBase))

	binary.BigEndian.PutUint32(buf[desc:], uint32(len(verts)*stride))
	binary.BigEndian.PutUint32(buf[desc+4:], stride)
	binary.BigEndian.PutUint32(buf[desc+16:], uint32(vtx-chunkBase))
	binary.BigEndian.PutUint32(buf[desc+40:], uint32(len(indices)*2))
	binary.BigEndian.PutUint32(buf[desc+48:], uint32(face-chunkBase))

	putF32 := func(off int, f float32) {
		binary.BigEndian.PutUint32(buf[off:], math.Float32bits(f))
	}
	for i, v := range verts {
		base := vtx + i*stride
		putF32(base, v[0])
		putF32(base+4, v[1])
		putF32(base+8, v[2])
		putF32(base+stride-16, v[3])
		putF32(base+stride-12, v[4])
		putF32(base+stride-8, v[5])
		putF32(base+stride-4, v[6])
	}
	for i, idx := range indices {
		binary.BigEndian.PutUint16(buf[face+i*2:], idx)
	}

	if err := os.WriteFile("sample.rws.preinstanced", buf, 0644); err != nil {
		panic(err)
	}
}
