// Package batch walks an asset tree, records what it finds in a mapping
// file, and runs the decode-and-export conversion over it with a worker
// pool.
package batch

import (
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Asset is one discovered .preinstanced file and where its outputs go.
// JSON field names match the mapping files the old pipeline produced.
type Asset struct {
	Name    string `json:"filename"`           // base name without extensions
	RelPath string `json:"relative_path"`      // forward-slashed, from the root
	Source  string `json:"preinstanced_full"`  // absolute input path
	OBJPath string `json:"obj_full"`           // output OBJ path
	UVPath  string `json:"uv_full,omitempty"`  // output UV JSON path, if enabled
}

// Mapping is keyed by a stable identifier: the md5 of the forward-slashed
// relative path. The id survives re-walks and machine moves, so partial
// runs can resume against the same mapping.
type Mapping map[string]Asset

// BuildMapping walks root for files matching exts (case-insensitive suffix
// match) and lays out their output paths under outDir, mirroring the input
// tree. uvJSON also assigns UV dump paths.
func BuildMapping(root, outDir string, exts []string, uvJSON bool) (Mapping, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}

	m := make(Mapping)
	err = filepath.WalkDir(absRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !matchesExt(d.Name(), exts) {
			return nil
		}

		rel, err := filepath.Rel(absRoot, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)

		name := d.Name()
		// Strip the full extension chain: foo.rws.preinstanced -> foo.
		if i := strings.Index(name, "."); i > 0 {
			name = name[:i]
		}

		stem := strings.TrimSuffix(rel, filepath.Ext(rel))
		a := Asset{
			Name:    name,
			RelPath: rel,
			Source:  path,
			OBJPath: filepath.Join(outDir, filepath.FromSlash(stem)+".obj"),
		}
		if uvJSON {
			a.UVPath = filepath.Join(outDir, filepath.FromSlash(stem)+".uv.json")
		}

		m[assetID(rel)] = a
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", root, err)
	}
	return m, nil
}

func matchesExt(name string, exts []string) bool {
	lower := strings.ToLower(name)
	for _, ext := range exts {
		if strings.HasSuffix(lower, strings.ToLower(ext)) {
			return true
		}
	}
	return false
}

func assetID(rel string) string {
	sum := md5.Sum([]byte(rel))
	return hex.EncodeToString(sum[:])
}

// SortedIDs returns the mapping keys ordered by relative path, giving every
// run the same iteration order.
func (m Mapping) SortedIDs() []string {
	ids := make([]string, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		return m[ids[i]].RelPath < m[ids[j]].RelPath
	})
	return ids
}

// Save writes the mapping to path as indented JSON.
func (m Mapping) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// LoadMapping reads a mapping previously written by Save.
func LoadMapping(path string) (Mapping, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading mapping: %w", err)
	}
	var m Mapping
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("decoding mapping: %w", err)
	}
	return m, nil
}
