package preinstanced

import "bytes"

// Mesh chunks are located by a fixed 12-byte signature. Bytes 4-7 vary per
// file and are not validated.
var (
	signaturePrefix = []byte{0x33, 0xEA, 0x00, 0x00}
	signatureSuffix = []byte{0x2D, 0x00, 0x02, 0x1C}
)

// SignatureLen is the length of the chunk signature in bytes.
const SignatureLen = 12

// FindChunks returns the offset of every chunk signature in data, left to
// right, non-overlapping. A file with no signatures yields an empty result;
// that is not an error, the file simply carries no mesh chunks.
func FindChunks(data []byte) []int {
	var offsets []int
	for i := 0; i <= len(data)-SignatureLen; {
		j := bytes.Index(data[i:], signaturePrefix)
		if j < 0 {
			break
		}
		at := i + j
		if at > len(data)-SignatureLen {
			break
		}
		if bytes.Equal(data[at+8:at+SignatureLen], signatureSuffix) {
			offsets = append(offsets, at)
			i = at + SignatureLen
		} else {
			i = at + 1
		}
	}
	return offsets
}
