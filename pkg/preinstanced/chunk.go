package preinstanced

// Fixed widths inside the chunk header. The reserved region and the 8-byte
// table entries are opaque; only their size matters.
const (
	headerReservedLen = 0x14
	tableEntryLen     = 8
	subMeshEntryLen   = 0xC
)

// ChunkHeader describes one mesh chunk and fixes its local coordinate
// system. All sub-mesh offsets inside the chunk are relative to ChunkBase;
// vertex and face data are additionally offset by FaceDataBase.
type ChunkHeader struct {
	SignatureOffset int    // offset of the 12-byte signature
	FaceDataBase    int32  // little-endian, base for vertex/face data offsets
	MeshDataSize    int32  // little-endian, declared size of the mesh data
	ChunkBase       int    // origin for the chunk's big-endian relative offsets
	TableEntries    uint32 // entries in the table preceding the sub-mesh table
	SubMeshCount    uint32
	SubTableBase    int // start of the sub-mesh descriptor table
}

// ReadChunkHeader reads the header that follows the signature at sigOffset.
// Any read past the buffer abandons the whole chunk; the caller resumes at
// the next signature match.
func ReadChunkHeader(data []byte, sigOffset int) (*ChunkHeader, error) {
	c := newCursor(data)
	if err := c.seek(sigOffset + SignatureLen + 4); err != nil {
		return nil, err
	}

	faceDataBase, err := c.uint32le()
	if err != nil {
		return nil, err
	}
	meshDataSize, err := c.uint32le()
	if err != nil {
		return nil, err
	}

	h := &ChunkHeader{
		SignatureOffset: sigOffset,
		FaceDataBase:    int32(faceDataBase),
		MeshDataSize:    int32(meshDataSize),
		ChunkBase:       c.off,
	}

	if err := c.skip(headerReservedLen); err != nil {
		return nil, err
	}
	if h.TableEntries, err = c.uint32be(); err != nil {
		return nil, err
	}
	if h.SubMeshCount, err = c.uint32be(); err != nil {
		return nil, err
	}

	// Skip the leading table to reach the sub-mesh descriptors.
	if err := c.skip(int(h.TableEntries) * tableEntryLen); err != nil {
		return nil, err
	}
	h.SubTableBase = c.off

	return h, nil
}
