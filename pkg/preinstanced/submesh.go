package preinstanced

import "errors"

// ErrZeroStride marks a sub-mesh whose vertex record size is zero. The
// sub-mesh is unusable; the rest of the chunk is not.
var ErrZeroStride = errors.New("sub-mesh vertex stride is zero")

// SubMesh locates one drawable part inside a chunk after the descriptor
// offset chain has been resolved. VertexCount and FaceIndexCount are
// derived, never stored on disk directly.
type SubMesh struct {
	Index          int
	VertexStride   uint32
	VertexCount    uint32
	VertexStart    int  // absolute offset of the vertex buffer
	VertexClamped  bool // vertex run was cut to what the buffer holds
	FaceIndexCount uint32
	FaceStart      int  // absolute offset of the 16-bit index buffer
	FaceClamped    bool // index run was cut to what the buffer holds
}

// ReadSubMesh chases the offset chain for the index'th sub-mesh descriptor
// of h. All stored offsets are big-endian and relative to h.ChunkBase;
// vertex and face data add h.FaceDataBase on top. An unreadable descriptor
// aborts only this sub-mesh. Vertex and face index runs that would extend
// past the buffer are clamped, not rejected; shipped files carry truncated
// trailing data, and the descriptor's counts are never trusted beyond what
// the buffer can hold.
func ReadSubMesh(data []byte, h *ChunkHeader, index int) (*SubMesh, error) {
	c := newCursor(data)
	if err := c.seek(h.SubTableBase + index*subMeshEntryLen + 8); err != nil {
		return nil, err
	}
	rel, err := c.uint32be()
	if err != nil {
		return nil, err
	}

	if err := c.seek(int(rel) + h.ChunkBase + 0xC); err != nil {
		return nil, err
	}
	vertCountDataOff, err := c.uint32be()
	if err != nil {
		return nil, err
	}

	if err := c.seek(int(vertCountDataOff) + h.ChunkBase); err != nil {
		return nil, err
	}
	totalSize, err := c.uint32be()
	if err != nil {
		return nil, err
	}
	stride, err := c.uint32be()
	if err != nil {
		return nil, err
	}
	if stride == 0 {
		return nil, ErrZeroStride
	}

	sm := &SubMesh{
		Index:        index,
		VertexStride: stride,
		VertexCount:  totalSize / stride,
	}

	// 8 unknown bytes, possibly a normals offset/size pair.
	if err := c.skip(8); err != nil {
		return nil, err
	}
	vertexStartRel, err := c.uint32be()
	if err != nil {
		return nil, err
	}
	sm.VertexStart = int(vertexStartRel) + int(h.FaceDataBase) + h.ChunkBase

	// Cut the vertex run to the records that at least start inside the
	// buffer; the trailing partial record, if any, zero-fills its missing
	// fields. Without this a corrupt total size would allocate whatever the
	// descriptor claims.
	if sm.VertexStart < 0 || sm.VertexStart >= len(data) {
		if sm.VertexCount > 0 {
			sm.VertexCount = 0
			sm.VertexClamped = true
		}
	} else if avail := uint32((len(data) - sm.VertexStart + int(stride) - 1) / int(stride)); sm.VertexCount > avail {
		sm.VertexCount = avail
		sm.VertexClamped = true
	}

	if err := c.skip(headerReservedLen); err != nil {
		return nil, err
	}
	rawFaceCount, err := c.uint32be()
	if err != nil {
		return nil, err
	}
	// The on-disk count is doubled relative to the actual 16-bit indices.
	// Halving truncates for odd values; observed behavior, cause unknown.
	sm.FaceIndexCount = rawFaceCount / 2

	if err := c.skip(4); err != nil {
		return nil, err
	}
	faceStartRel, err := c.uint32be()
	if err != nil {
		return nil, err
	}
	sm.FaceStart = int(faceStartRel) + int(h.FaceDataBase) + h.ChunkBase

	if sm.FaceStart < 0 || sm.FaceStart > len(data) {
		sm.FaceIndexCount = 0
		sm.FaceClamped = true
	} else if avail := uint32((len(data) - sm.FaceStart) / 2); sm.FaceIndexCount > avail {
		sm.FaceIndexCount = avail
		sm.FaceClamped = true
	}

	return sm, nil
}

// Indices reads the sub-mesh's raw index stream, sentinels included. The
// count has already been clamped to the buffer in ReadSubMesh.
func (sm *SubMesh) Indices(data []byte) []uint16 {
	c := newCursor(data)
	if err := c.seek(sm.FaceStart); err != nil {
		return nil
	}
	indices := make([]uint16, 0, sm.FaceIndexCount)
	for i := uint32(0); i < sm.FaceIndexCount; i++ {
		v, err := c.uint16be()
		if err != nil {
			break
		}
		indices = append(indices, v)
	}
	return indices
}
