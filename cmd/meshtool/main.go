// meshtool is a CLI utility for extracting mesh geometry from The Simpsons
// Game (PS3) .preinstanced asset containers.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/Faultbox/simpsons-mesh/internal/batch"
	"github.com/Faultbox/simpsons-mesh/internal/config"
	"github.com/Faultbox/simpsons-mesh/internal/logger"
	"github.com/Faultbox/simpsons-mesh/pkg/objexport"
	"github.com/Faultbox/simpsons-mesh/pkg/preinstanced"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "info":
		cmdInfo(args)
	case "extract", "x":
		cmdExtract(args)
	case "map":
		cmdMap(args)
	case "batch":
		cmdBatch(args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`meshtool - Simpsons Game .preinstanced mesh extractor

Usage:
  meshtool <command> [options]

Commands:
  info <file>                    Show chunk and mesh summary for one file
  extract <file> [-o dir] [-uv]  Decode one file and write OBJ (and UV JSON)
  map <root> [-o mapping.json]   Walk an asset tree and write the mapping file
  batch [options]                Convert a whole tree (see -help for flags)

Examples:
  meshtool info maps/level1/chair.rws.preinstanced
  meshtool extract chair.rws.preinstanced -o ./out -uv
  meshtool map ./USRDIR -o asset_mapping.json
  meshtool batch -root ./USRDIR -out ./extracted -workers 8`)
}

func cmdInfo(args []string) {
	fs := flag.NewFlagSet("info", flag.ExitOnError)
	debug := fs.Bool("debug", false, "Log every recovered decode fault")
	fs.Parse(args)

	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Usage: meshtool info <file.preinstanced>")
		os.Exit(1)
	}

	data, err := os.ReadFile(fs.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	level := "warn"
	if *debug {
		level = "debug"
	}
	log := logger.New(level, logger.FileConfig{}, true)
	defer log.Sync()

	dec := preinstanced.NewDecoder(log)
	meshes, stats := dec.Decode(data)

	var triangles, vertices int
	for _, m := range meshes {
		triangles += len(m.Triangles)
		vertices += len(m.Vertices)
	}

	fmt.Printf("File:      %s (%d bytes)\n", fs.Arg(0), len(data))
	fmt.Printf("Chunks:    %d (%d abandoned)\n", stats.Chunks, stats.AbandonedChunks)
	fmt.Printf("Meshes:    %d (%d vertices, %d triangles)\n", len(meshes), vertices, triangles)
	fmt.Println()
	for _, m := range meshes {
		fmt.Printf("  %-20s %6d verts %6d tris\n", m.Name, len(m.Vertices), len(m.Triangles))
	}

	if stats.ClampedFaceRuns+stats.ClampedVertexRuns+stats.SanitizedUVs+
		stats.ZeroFilledVertices+stats.DroppedTriangles+stats.SkippedSubMeshes+
		stats.SuppressedMeshes > 0 {
		fmt.Println()
		fmt.Println("Recovered faults:")
		printIfNonzero("skipped sub-meshes", stats.SkippedSubMeshes)
		printIfNonzero("suppressed empty meshes", stats.SuppressedMeshes)
		printIfNonzero("clamped face runs", stats.ClampedFaceRuns)
		printIfNonzero("clamped vertex runs", stats.ClampedVertexRuns)
		printIfNonzero("sanitized UVs", stats.SanitizedUVs)
		printIfNonzero("zero-filled vertex fields", stats.ZeroFilledVertices)
		printIfNonzero("dropped triangles", stats.DroppedTriangles)
	}
}

func printIfNonzero(label string, n int) {
	if n > 0 {
		fmt.Printf("  %-26s %d\n", label, n)
	}
}

func cmdExtract(args []string) {
	fs := flag.NewFlagSet("extract", flag.ExitOnError)
	outDir := fs.String("o", ".", "Output directory")
	uvJSON := fs.Bool("uv", false, "Also dump both UV channels as JSON")
	debug := fs.Bool("debug", false, "Log every recovered decode fault")
	fs.Parse(args)

	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Usage: meshtool extract <file.preinstanced> [-o dir] [-uv]")
		os.Exit(1)
	}

	level := "warn"
	if *debug {
		level = "debug"
	}
	log := logger.New(level, logger.FileConfig{}, true)
	defer log.Sync()

	dec := preinstanced.NewDecoder(log)
	meshes, _, err := dec.DecodeFile(fs.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if len(meshes) == 0 {
		fmt.Fprintln(os.Stderr, "No meshes decoded")
		os.Exit(1)
	}

	stem := filepath.Base(fs.Arg(0))
	stem = strings.TrimSuffix(stem, filepath.Ext(stem))
	objPath := filepath.Join(*outDir, stem+".obj")

	if err := os.MkdirAll(*outDir, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "Error creating directory: %v\n", err)
		os.Exit(1)
	}
	if err := objexport.WriteFile(objPath, meshes); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing OBJ: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Extracted: %s (%d meshes)\n", objPath, len(meshes))

	if *uvJSON {
		uvPath := filepath.Join(*outDir, stem+".uv.json")
		if err := objexport.WriteUVJSON(uvPath, meshes); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing UV JSON: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Extracted: %s\n", uvPath)
	}
}

func cmdMap(args []string) {
	fs := flag.NewFlagSet("map", flag.ExitOnError)
	outPath := fs.String("o", "asset_mapping.json", "Mapping file to write")
	objDir := fs.String("d", "extracted", "Output directory recorded in the mapping")
	uvJSON := fs.Bool("uv", false, "Also assign UV JSON output paths")
	fs.Parse(args)

	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Usage: meshtool map <root> [-o mapping.json] [-d out_dir] [-uv]")
		os.Exit(1)
	}

	m, err := batch.BuildMapping(fs.Arg(0), *objDir, []string{".preinstanced"}, *uvJSON)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if err := m.Save(*outPath); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing mapping: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Mapped %d assets to %s\n", len(m), *outPath)
}

func cmdBatch(args []string) {
	if err := config.ParseArgs(args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if cfg.Input.Root == "" {
		fmt.Fprintln(os.Stderr, "Usage: meshtool batch -root <dir> [-out dir] [-workers n] [-uvjson] [-config file]")
		os.Exit(1)
	}

	var fileCfg logger.FileConfig
	if cfg.Logging.LogFile != "" {
		fileCfg = logger.DefaultFileConfig(cfg.Logging.LogFile)
	}
	log := logger.New(cfg.Logging.Level, fileCfg, true)
	defer log.Sync()

	m, err := batch.BuildMapping(cfg.Input.Root, cfg.Output.Dir, cfg.Input.Extensions, cfg.Output.UVJSON)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if len(m) == 0 {
		fmt.Fprintf(os.Stderr, "No assets found under %s\n", cfg.Input.Root)
		os.Exit(1)
	}
	if err := m.Save(filepath.Join(cfg.Output.Dir, cfg.Output.Mapping)); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing mapping: %v\n", err)
		os.Exit(1)
	}
	log.Info("mapped assets", zap.Int("count", len(m)))

	results := batch.Run(m, batch.Options{
		Workers:      cfg.Batch.Workers,
		MaxSubMeshes: cfg.Decode.MaxSubMeshes,
		UVJSON:       cfg.Output.UVJSON,
		Progress:     true,
		Logger:       log,
	})

	if err := batch.WriteResults(filepath.Join(cfg.Output.Dir, cfg.Output.Results), results); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing results: %v\n", err)
		os.Exit(1)
	}

	converted, failed, meshes := batch.Summary(results)
	fmt.Printf("\nConverted %d/%d files (%d meshes)\n", converted, len(results), meshes)
	if failed > 0 {
		fmt.Printf("Failed %d files:\n", failed)
		for _, r := range batch.FailedResults(results) {
			fmt.Printf("  %s: %s\n", r.RelPath, r.Error)
		}
	}
}
