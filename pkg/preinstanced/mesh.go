package preinstanced

import (
	"fmt"
	"os"

	"go.uber.org/zap"
)

// Mesh is one successfully decoded sub-mesh. Immutable after construction;
// ownership passes to the caller.
type Mesh struct {
	Name         string
	ChunkIndex   int
	SubMeshIndex int
	Vertices     []Vertex
	Triangles    []Triangle
}

// Stats describes everything a decode run skipped, clamped or corrected.
// Nothing the decoder encounters is fatal; these counters plus the log are
// the full account of what was lost.
type Stats struct {
	Chunks             int // signature matches found
	AbandonedChunks    int // unreadable headers or guard trips
	SubMeshes          int // decoded into a Mesh
	SkippedSubMeshes   int // unreadable descriptors or zero stride
	SuppressedMeshes   int // decoded empty, not emitted
	ClampedFaceRuns    int // index runs cut at the buffer end
	ClampedVertexRuns  int // vertex runs cut at the buffer end
	SanitizedUVs       int // non-finite UV pairs replaced with (0, 0)
	ZeroFilledVertices int // vertex fields zeroed for missing bytes
	DroppedTriangles   int // triangles referencing out-of-range vertices
}

// DefaultMaxSubMeshes caps the per-chunk sub-mesh count. A corrupt header
// claiming billions of sub-meshes abandons the chunk instead of spinning.
const DefaultMaxSubMeshes = 4096

// Decoder extracts meshes from .preinstanced file images. The zero value is
// not usable; construct with NewDecoder. A Decoder is stateless between
// calls apart from its configuration and may be reused across files.
type Decoder struct {
	log *zap.Logger

	// MaxSubMeshes overrides DefaultMaxSubMeshes when non-zero.
	MaxSubMeshes uint32
}

// NewDecoder returns a Decoder logging through log. A nil log disables
// logging.
func NewDecoder(log *zap.Logger) *Decoder {
	if log == nil {
		log = zap.NewNop()
	}
	return &Decoder{log: log, MaxSubMeshes: DefaultMaxSubMeshes}
}

// Decode extracts every mesh from data, one Mesh per decodable sub-mesh, in
// (chunk, sub-mesh) order. Malformed regions are contained at the smallest
// unit that can be skipped: triangle, then vertex field, then sub-mesh,
// then chunk. The returned meshes are whatever survived; Stats says what
// did not.
func (d *Decoder) Decode(data []byte) ([]Mesh, Stats) {
	var (
		meshes []Mesh
		stats  Stats
	)

	limit := d.MaxSubMeshes
	if limit == 0 {
		limit = DefaultMaxSubMeshes
	}

	for chunkIdx, sig := range FindChunks(data) {
		stats.Chunks++

		h, err := ReadChunkHeader(data, sig)
		if err != nil {
			stats.AbandonedChunks++
			d.log.Warn("abandoning chunk",
				zap.Int("chunk", chunkIdx),
				zap.Int("signature_offset", sig),
				zap.Error(err))
			continue
		}
		if h.SubMeshCount > limit {
			stats.AbandonedChunks++
			d.log.Warn("abandoning chunk: sub-mesh count over guard",
				zap.Int("chunk", chunkIdx),
				zap.Uint32("sub_meshes", h.SubMeshCount),
				zap.Uint32("guard", limit))
			continue
		}

		for i := 0; i < int(h.SubMeshCount); i++ {
			if m, ok := d.decodeSubMesh(data, h, chunkIdx, i, &stats); ok {
				meshes = append(meshes, m)
			}
		}
	}
	return meshes, stats
}

func (d *Decoder) decodeSubMesh(data []byte, h *ChunkHeader, chunkIdx, idx int, stats *Stats) (Mesh, bool) {
	sm, err := ReadSubMesh(data, h, idx)
	if err != nil {
		stats.SkippedSubMeshes++
		d.log.Warn("skipping sub-mesh",
			zap.Int("chunk", chunkIdx),
			zap.Int("submesh", idx),
			zap.Error(err))
		return Mesh{}, false
	}
	if sm.FaceClamped {
		stats.ClampedFaceRuns++
		d.log.Warn("face index run clamped to buffer end",
			zap.Int("chunk", chunkIdx),
			zap.Int("submesh", idx),
			zap.Int("face_start", sm.FaceStart),
			zap.Uint32("face_indices", sm.FaceIndexCount))
	}
	if sm.VertexClamped {
		stats.ClampedVertexRuns++
		d.log.Warn("vertex run clamped to buffer end",
			zap.Int("chunk", chunkIdx),
			zap.Int("submesh", idx),
			zap.Int("vertex_start", sm.VertexStart),
			zap.Uint32("vertices", sm.VertexCount))
	}

	tris := DecodeStrips(sm.Indices(data))

	verts, diag := ReadVertices(data, sm.VertexStart, int(sm.VertexCount), int(sm.VertexStride))
	stats.SanitizedUVs += diag.SanitizedUVs
	stats.ZeroFilledVertices += diag.ZeroFilledFields
	if diag.SanitizedUVs > 0 || diag.ZeroFilledFields > 0 {
		d.log.Debug("vertex stream corrections",
			zap.Int("chunk", chunkIdx),
			zap.Int("submesh", idx),
			zap.Int("sanitized_uvs", diag.SanitizedUVs),
			zap.Int("zero_filled", diag.ZeroFilledFields))
	}

	valid := make([]Triangle, 0, len(tris))
	for _, t := range tris {
		if int(t[0]) >= len(verts) || int(t[1]) >= len(verts) || int(t[2]) >= len(verts) {
			stats.DroppedTriangles++
			d.log.Warn("dropping triangle with out-of-range vertex index",
				zap.Int("chunk", chunkIdx),
				zap.Int("submesh", idx),
				zap.Uint16s("indices", t[:]),
				zap.Int("vertices", len(verts)))
			continue
		}
		valid = append(valid, t)
	}

	if len(verts) == 0 || len(valid) == 0 {
		stats.SuppressedMeshes++
		d.log.Debug("suppressing empty mesh",
			zap.Int("chunk", chunkIdx),
			zap.Int("submesh", idx),
			zap.Int("vertices", len(verts)),
			zap.Int("triangles", len(valid)))
		return Mesh{}, false
	}

	stats.SubMeshes++
	return Mesh{
		Name:         fmt.Sprintf("Mesh_%d_%d", chunkIdx, idx),
		ChunkIndex:   chunkIdx,
		SubMeshIndex: idx,
		Vertices:     verts,
		Triangles:    valid,
	}, true
}

// DecodeFile reads path fully into memory and decodes it.
func (d *Decoder) DecodeFile(path string) ([]Mesh, Stats, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, Stats{}, fmt.Errorf("reading preinstanced file: %w", err)
	}
	meshes, stats := d.Decode(data)
	return meshes, stats, nil
}

// Decode extracts meshes from data without logging.
func Decode(data []byte) ([]Mesh, Stats) {
	return NewDecoder(nil).Decode(data)
}
