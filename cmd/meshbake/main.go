// meshbake converts cooked polygon geometry into triangle lists and glTF files.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/polytri/internal/config"
	"github.com/Faultbox/polytri/internal/export"
	"github.com/Faultbox/polytri/internal/logger"
	"github.com/Faultbox/polytri/internal/session"
	"github.com/Faultbox/polytri/pkg/formats"
	"github.com/Faultbox/polytri/pkg/mesh"
)

func main() {
	config.ParseFlags()
	args := config.Args()
	if len(args) < 1 {
		printUsage()
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()
	logger.Sugar.Debugf("Config: %+v", cfg)

	command, rest := args[0], args[1:]
	switch command {
	case "info":
		err = cmdInfo(cfg, rest)
	case "bake":
		err = cmdBake(cfg, rest)
	case "check":
		err = cmdCheck(cfg, rest)
	case "convert":
		err = cmdConvert(rest)
	case "help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
	if err != nil {
		logger.Error("command failed", zap.String("command", command), zap.Error(err))
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		logger.Sync()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`meshbake - polygon to triangle-list converter

Usage:
  meshbake [flags] <command> [args]

Commands:
  info <geometry>              Show topology, channels and triangle count
  check <geometry>             Validate geometry and extract without writing
  bake <geometry> <out.glb>    Extract triangles and write binary glTF
  convert <in.obj> <out.yaml>  Rewrite an OBJ file as a YAML cook dump

Geometry files ending in .obj are read as Wavefront OBJ, others as YAML cook dumps.

Flags:
  --config <path>   Config file (default ./polytri.yaml)
  --debug           Debug logging
  --log-file <path> Also log to a rotating file
  --workers <n>     Parallel fill workers (-1 = all CPUs)
  --alpha <a>       Alpha for RGB colors (default from config, 0)
  --uv-fallback     Allow point-rate uv

Examples:
  meshbake info rock.yaml
  meshbake --alpha 1 bake rock.yaml rock.glb
  meshbake --workers -1 check city.obj`)
}

func cmdInfo(cfg *config.Config, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: meshbake info <geometry>")
	}

	snap, err := session.LoadSnapshot(args[0])
	if err != nil {
		return err
	}

	hist := make(map[int32]int)
	for _, n := range snap.Faces {
		hist[n]++
	}
	degenerate := hist[0] + hist[1] + hist[2]

	fmt.Printf("File:      %s\n", args[0])
	fmt.Printf("Points:    %d\n", snap.Points)
	fmt.Printf("Faces:     %d (%d degenerate)\n", len(snap.Faces), degenerate)
	fmt.Printf("Vertices:  %d\n", len(snap.Vertices))
	fmt.Printf("Triangles: %d\n", mesh.TriangleCount(snap.Faces))
	fmt.Println()
	fmt.Println("Attributes:")
	for _, c := range snap.Channels {
		fmt.Printf("  %-10s %-7s size=%d tuples=%d\n", c.Name, c.Rate, c.TupleSize, c.Len())
	}
	fmt.Println()
	fmt.Println("Resolution:")
	opts := cfg.Options()
	for _, p := range mesh.NewBuilder(opts).Policies() {
		fmt.Printf("  %-9s %q probe=%v required=%v\n", p.Kind, p.Name, p.Probe, p.Required)
	}
	return nil
}

func cmdCheck(cfg *config.Config, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: meshbake check <geometry>")
	}
	buf, elapsed, err := extract(cfg, args[0])
	if err != nil {
		return err
	}
	printReport(buf, elapsed)
	return nil
}

func cmdBake(cfg *config.Config, args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("usage: meshbake bake <geometry> <out.glb>")
	}
	buf, elapsed, err := extract(cfg, args[0])
	if err != nil {
		return err
	}

	opts := export.Options{Generator: cfg.Export.Generator, MeshName: cfg.Export.MeshName}
	if err := export.WriteGLB(args[1], buf, opts); err != nil {
		return fmt.Errorf("writing %s: %w", args[1], err)
	}
	logger.Info("baked", zap.String("in", args[0]), zap.String("out", args[1]), zap.Int("triangles", buf.Triangles))

	printReport(buf, elapsed)
	fmt.Printf("Written:   %s\n", args[1])
	return nil
}

func cmdConvert(args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("usage: meshbake convert <in.obj> <out.yaml>")
	}
	snap, err := formats.ParseOBJFile(args[0])
	if err != nil {
		return err
	}
	data, err := formats.NewGeo(args[0], snap).Marshal()
	if err != nil {
		return err
	}
	return os.WriteFile(args[1], data, 0644)
}

func extract(cfg *config.Config, path string) (*mesh.Buffers, time.Duration, error) {
	start := time.Now()
	s := session.New(&session.FileEvaluator{Path: path}, cfg.Options())
	buf, err := s.Extract(context.Background())
	if err != nil {
		return nil, 0, err
	}
	return buf, time.Since(start), nil
}

func printReport(buf *mesh.Buffers, elapsed time.Duration) {
	fmt.Printf("Triangles: %d\n", buf.Triangles)
	fmt.Printf("Corners:   %d\n", buf.VertexCount())
	fmt.Printf("Channels:  %v\n", session.Channels(buf))
	if b, ok := buf.Bounds(); ok {
		fmt.Printf("Bounds:    %v - %v\n", b.Min, b.Max)
	}
	fmt.Printf("Time:      %v\n", elapsed)
}
