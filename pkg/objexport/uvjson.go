package objexport

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/Faultbox/simpsons-mesh/pkg/preinstanced"
)

// MeshUVs holds both UV channels of one mesh, one entry per vertex. The
// JSON keys match the layer names the old Blender pipeline used.
type MeshUVs struct {
	UV [][2]float32 `json:"uvmap"`
	CM [][2]float32 `json:"cm_uv"`
}

// UVTables maps mesh name to its UV channels.
type UVTables map[string]MeshUVs

// CollectUVs gathers the UV channels of every mesh.
func CollectUVs(meshes []preinstanced.Mesh) UVTables {
	tables := make(UVTables, len(meshes))
	for _, m := range meshes {
		t := MeshUVs{
			UV: make([][2]float32, len(m.Vertices)),
			CM: make([][2]float32, len(m.Vertices)),
		}
		for i, v := range m.Vertices {
			t.UV[i] = v.UV
			t.CM[i] = v.CM
		}
		tables[m.Name] = t
	}
	return tables
}

// WriteUVJSON dumps the UV tables of all meshes to path as indented JSON.
func WriteUVJSON(path string, meshes []preinstanced.Mesh) error {
	data, err := json.MarshalIndent(CollectUVs(meshes), "", "  ")
	if err != nil {
		return fmt.Errorf("encoding uv tables: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}
