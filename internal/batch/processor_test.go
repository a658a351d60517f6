package batch

import (
	"encoding/binary"
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"testing"
)

// sampleFile builds a minimal one-chunk, one-sub-mesh .preinstanced image:
// 4 vertices at stride 32 and two strips.
func sampleFile() []byte {
	const (
		sigOff    = 8
		chunkBase = sigOff + 24
		reserved  = 0x14
		stride    = 32
	)
	subTable := chunkBase + reserved + 8
	link := subTable + 12
	desc := link + 4
	vtx := desc + 52

	verts := [][3]float32{{0, 0, 0}, {1, 0, 0}, {1, 1, 0}, {0, 1, 0}}
	indices := []uint16{0, 1, 2, 0xFFFF, 1, 2, 3}
	face := vtx + len(verts)*stride
	total := face + len(indices)*2

	buf := make([]byte, total)
	copy(buf[sigOff:], []byte{0x33, 0xEA, 0x00, 0x00, 0, 0, 0, 0, 0x2D, 0x00, 0x02, 0x1C})
	binary.LittleEndian.PutUint32(buf[sigOff+20:], uint32(total-chunkBase))
	binary.BigEndian.PutUint32(buf[chunkBase+reserved+4:], 1) // sub-mesh count
	binary.BigEndian.PutUint32(buf[subTable+8:], uint32(link-chunkBase-0xC))
	binary.BigEndian.PutUint32(buf[link:], uint32(desc-chunkBase))
	binary.BigEndian.PutUint32(buf[desc:], uint32(len(verts)*stride))
	binary.BigEndian.PutUint32(buf[desc+4:], stride)
	binary.BigEndian.PutUint32(buf[desc+16:], uint32(vtx-chunkBase))
	binary.BigEndian.PutUint32(buf[desc+40:], uint32(len(indices)*2))
	binary.BigEndian.PutUint32(buf[desc+48:], uint32(face-chunkBase))
	for i, v := range verts {
		base := vtx + i*stride
		for j, f := range v {
			binary.BigEndian.PutUint32(buf[base+j*4:], math.Float32bits(f))
		}
	}
	for i, idx := range indices {
		binary.BigEndian.PutUint16(buf[face+i*2:], idx)
	}
	return buf
}

func TestRun(t *testing.T) {
	root := t.TempDir()
	out := filepath.Join(t.TempDir(), "out")
	writeTree(t, root, map[string][]byte{
		"maps/level1/good.rws.preinstanced":  sampleFile(),
		"maps/level1/empty.rws.preinstanced": make([]byte, 64), // no chunks
		"maps/level2/also.dff.preinstanced":  sampleFile(),
	})

	m, err := BuildMapping(root, out, []string{".preinstanced"}, true)
	if err != nil {
		t.Fatalf("BuildMapping: %v", err)
	}

	results := Run(m, Options{Workers: 2, UVJSON: true})
	if len(results) != 3 {
		t.Fatalf("got %d results, want 3", len(results))
	}

	// Result order follows the sorted mapping, not completion order.
	wantOrder := []string{
		"maps/level1/empty.rws.preinstanced",
		"maps/level1/good.rws.preinstanced",
		"maps/level2/also.dff.preinstanced",
	}
	for i, want := range wantOrder {
		if results[i].RelPath != want {
			t.Errorf("result %d: got %q, want %q", i, results[i].RelPath, want)
		}
	}

	if results[0].Error == "" {
		t.Error("chunkless file should report an error")
	}
	for _, i := range []int{1, 2} {
		r := results[i]
		if r.Error != "" {
			t.Errorf("%s: unexpected error %q", r.RelPath, r.Error)
		}
		if r.Meshes != 1 || r.Triangles != 2 {
			t.Errorf("%s: got %d meshes / %d triangles, want 1 / 2", r.RelPath, r.Meshes, r.Triangles)
		}
	}

	// The good assets produced their OBJ and UV files.
	good := m[assetID("maps/level1/good.rws.preinstanced")]
	if _, err := os.Stat(good.OBJPath); err != nil {
		t.Errorf("missing OBJ output: %v", err)
	}
	if _, err := os.Stat(good.UVPath); err != nil {
		t.Errorf("missing UV output: %v", err)
	}
}

func TestRunDeterministicAcrossWorkerCounts(t *testing.T) {
	root := t.TempDir()
	files := map[string][]byte{}
	for _, name := range []string{"a", "b", "c", "d", "e", "f"} {
		files[name+".preinstanced"] = sampleFile()
	}
	writeTree(t, root, files)

	m, err := BuildMapping(root, filepath.Join(t.TempDir(), "out"), []string{".preinstanced"}, false)
	if err != nil {
		t.Fatalf("BuildMapping: %v", err)
	}

	serial := Run(m, Options{Workers: 1})
	parallel := Run(m, Options{Workers: 4})
	if len(serial) != len(parallel) {
		t.Fatalf("result counts differ: %d vs %d", len(serial), len(parallel))
	}
	for i := range serial {
		if serial[i].RelPath != parallel[i].RelPath {
			t.Errorf("result %d: %q vs %q", i, serial[i].RelPath, parallel[i].RelPath)
		}
	}
}

func TestWriteResults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reports", "results.json")
	in := []Result{
		{ID: "x", RelPath: "a.preinstanced", Meshes: 2, Triangles: 10},
		{ID: "y", RelPath: "b.preinstanced", Error: "no meshes decoded"},
	}
	if err := WriteResults(path, in); err != nil {
		t.Fatalf("WriteResults: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading results: %v", err)
	}
	var out []Result
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("decoding results: %v", err)
	}
	if len(out) != 2 || out[0].Meshes != 2 || out[1].Error == "" {
		t.Errorf("round trip: %+v", out)
	}
}

func TestSummary(t *testing.T) {
	results := []Result{
		{Meshes: 2},
		{Meshes: 3},
		{Error: "boom"},
	}
	converted, failed, meshes := Summary(results)
	if converted != 2 || failed != 1 || meshes != 5 {
		t.Errorf("got %d/%d/%d, want 2/1/5", converted, failed, meshes)
	}
	if got := len(FailedResults(results)); got != 1 {
		t.Errorf("failed results: got %d, want 1", got)
	}
}
