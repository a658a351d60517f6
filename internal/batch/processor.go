package batch

import (
	"encoding/json"
	"os"
	"path/filepath"
	"runtime"
	"sync"

	"github.com/schollz/progressbar/v3"
	"go.uber.org/zap"

	"github.com/Faultbox/simpsons-mesh/pkg/objexport"
	"github.com/Faultbox/simpsons-mesh/pkg/preinstanced"
)

// Options configures a conversion run.
type Options struct {
	Workers      int // 0 = one per CPU
	MaxSubMeshes uint32
	UVJSON       bool
	Progress     bool // draw a progress bar on stderr
	Logger       *zap.Logger
}

// Result is the outcome of converting one asset.
type Result struct {
	ID        string             `json:"id"`
	RelPath   string             `json:"relative_path"`
	Meshes    int                `json:"meshes"`
	Triangles int                `json:"triangles"`
	Stats     preinstanced.Stats `json:"stats"`
	Error     string             `json:"error,omitempty"`
}

// Run converts every asset in the mapping. Each file decodes independently;
// one worker per file, results pinned to pre-assigned slots so the output
// order matches Mapping.SortedIDs regardless of completion order. A failed
// file never stops the run.
func Run(m Mapping, opts Options) []Result {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	ids := m.SortedIDs()
	results := make([]Result, len(ids))

	var bar *progressbar.ProgressBar
	if opts.Progress {
		bar = progressbar.Default(int64(len(ids)), "converting")
	}

	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				results[idx] = convert(ids[idx], m[ids[idx]], opts, log)
				if bar != nil {
					bar.Add(1)
				}
			}
		}()
	}
	for i := range ids {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	if bar != nil {
		bar.Finish()
	}
	return results
}

func convert(id string, a Asset, opts Options, log *zap.Logger) Result {
	res := Result{ID: id, RelPath: a.RelPath}

	dec := preinstanced.NewDecoder(log.With(zap.String("asset", a.RelPath)))
	if opts.MaxSubMeshes > 0 {
		dec.MaxSubMeshes = opts.MaxSubMeshes
	}

	meshes, stats, err := dec.DecodeFile(a.Source)
	res.Stats = stats
	if err != nil {
		res.Error = err.Error()
		return res
	}
	if len(meshes) == 0 {
		res.Error = "no meshes decoded"
		return res
	}
	res.Meshes = len(meshes)
	for _, mesh := range meshes {
		res.Triangles += len(mesh.Triangles)
	}

	if err := os.MkdirAll(filepath.Dir(a.OBJPath), 0755); err != nil {
		res.Error = err.Error()
		return res
	}
	if err := objexport.WriteFile(a.OBJPath, meshes); err != nil {
		res.Error = err.Error()
		return res
	}
	if opts.UVJSON && a.UVPath != "" {
		if err := objexport.WriteUVJSON(a.UVPath, meshes); err != nil {
			res.Error = err.Error()
			return res
		}
	}

	log.Debug("converted asset",
		zap.String("asset", a.RelPath),
		zap.Int("meshes", res.Meshes),
		zap.Int("triangles", res.Triangles))
	return res
}

// WriteResults writes the run results to path as indented JSON.
func WriteResults(path string, results []Result) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Summary tallies a run for the closing log line.
func Summary(results []Result) (converted, failed, meshes int) {
	for _, r := range results {
		if r.Error != "" {
			failed++
			continue
		}
		converted++
		meshes += r.Meshes
	}
	return
}

// FailedResults returns only the results that carry an error, for reporting.
func FailedResults(results []Result) []Result {
	var out []Result
	for _, r := range results {
		if r.Error != "" {
			out = append(out, r)
		}
	}
	return out
}
