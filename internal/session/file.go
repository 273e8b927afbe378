package session

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/Faultbox/polytri/pkg/formats"
	"github.com/Faultbox/polytri/pkg/mesh"
)

// FileEvaluator treats a geometry file on disk as an evaluator: each cook
// re-reads the file. Files ending in .obj are read as Wavefront OBJ, all
// others as YAML cook dumps.
type FileEvaluator struct {
	Path string

	snap *mesh.Snapshot
}

// Cook implements Evaluator.
func (f *FileEvaluator) Cook(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	snap, err := LoadSnapshot(f.Path)
	if err != nil {
		return err
	}
	f.snap = snap
	return nil
}

// Geometry implements Evaluator.
func (f *FileEvaluator) Geometry() (mesh.Source, error) {
	if f.snap == nil {
		return nil, ErrNoGeometry
	}
	return f.snap, nil
}

// LoadSnapshot reads a geometry file, picking the reader by extension.
func LoadSnapshot(path string) (*mesh.Snapshot, error) {
	if strings.EqualFold(filepath.Ext(path), ".obj") {
		return formats.ParseOBJFile(path)
	}
	g, err := formats.ParseGeoFile(path)
	if err != nil {
		return nil, err
	}
	return g.Snapshot(), nil
}
