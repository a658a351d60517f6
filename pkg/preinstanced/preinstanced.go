// Package preinstanced decodes mesh geometry from The Simpsons Game (PS3)
// .preinstanced asset containers.
//
// A container wraps an otherwise opaque RenderWare payload (.rws or .dff)
// and embeds any number of mesh chunks, each located by a fixed 12-byte
// signature. A chunk carries a table of sub-meshes; every sub-mesh is found
// by chasing big-endian offsets relative to the chunk base, and holds an
// interleaved vertex buffer plus a triangle-strip index buffer. The format
// is undocumented; the layout implemented here is what shipped files have
// been observed to contain. Files are decoded only, never written back.
package preinstanced
