// Package session drives extraction passes against an external geometry evaluator.
package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/polytri/internal/gpu"
	"github.com/Faultbox/polytri/internal/logger"
	"github.com/Faultbox/polytri/pkg/mesh"
)

// ErrNoGeometry is returned when a cook succeeds but yields no geometry.
var ErrNoGeometry = errors.New("evaluator returned no geometry")

// Evaluator is the external procedural geometry engine.
type Evaluator interface {
	// Cook recomputes geometry. It must run before every extraction.
	Cook(ctx context.Context) error
	// Geometry returns the result of the last cook. The arrays stay valid
	// and unchanged until the next Cook.
	Geometry() (mesh.Source, error)
}

// Session pairs an evaluator with extraction options.
type Session struct {
	eval    Evaluator
	builder *mesh.Builder
	log     *zap.Logger
}

// New creates a session over eval.
func New(eval Evaluator, opts mesh.Options) *Session {
	return &Session{
		eval:    eval,
		builder: mesh.NewBuilder(opts),
		log:     logger.Named("session"),
	}
}

// Extract cooks the evaluator and expands the fresh geometry into buffers.
// Every call cooks again; nothing is cached between calls.
func (s *Session) Extract(ctx context.Context) (*mesh.Buffers, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	start := time.Now()
	if err := s.eval.Cook(ctx); err != nil {
		return nil, fmt.Errorf("cooking geometry: %w", err)
	}
	cooked := time.Since(start)

	src, err := s.eval.Geometry()
	if err != nil {
		return nil, fmt.Errorf("reading geometry: %w", err)
	}
	if src == nil {
		return nil, ErrNoGeometry
	}

	view, err := mesh.NewView(src)
	if err != nil {
		s.log.Error("geometry failed validation", zap.Error(err))
		return nil, fmt.Errorf("validating geometry: %w", err)
	}

	buf, err := s.builder.Build(view)
	if err != nil {
		s.log.Error("extraction failed", zap.Error(err))
		return nil, fmt.Errorf("extracting triangles: %w", err)
	}

	s.log.Debug("extracted",
		zap.Int("faces", len(view.FaceSizes())),
		zap.Int("points", view.NumPoints()),
		zap.Int("triangles", buf.Triangles),
		zap.Strings("channels", Channels(buf)),
		zap.Duration("cook", cooked),
		zap.Duration("total", time.Since(start)),
	)
	return buf, nil
}

// Upload extracts fresh geometry and uploads it to dev. The caller owns
// the returned mesh and must release it with Delete on the same device.
func (s *Session) Upload(ctx context.Context, dev gpu.Device) (*gpu.Mesh, error) {
	buf, err := s.Extract(ctx)
	if err != nil {
		return nil, err
	}
	m, err := gpu.Upload(dev, buf)
	if err != nil {
		return nil, fmt.Errorf("uploading mesh: %w", err)
	}
	s.log.Debug("uploaded", zap.Uint32("vao", m.VAO), zap.Int32("vertices", m.VertexCount))
	return m, nil
}

// Channels describes the channels present in b as "kind:rate" strings.
func Channels(b *mesh.Buffers) []string {
	var out []string
	for _, k := range []mesh.Kind{mesh.KindPosition, mesh.KindNormal, mesh.KindColor, mesh.KindUV} {
		if rate, ok := b.Rates[k]; ok {
			out = append(out, k.String()+":"+rate.String())
		}
	}
	return out
}
