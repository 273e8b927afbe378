// Package formats provides readers that turn geometry files into mesh snapshots.
package formats

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/Faultbox/polytri/pkg/mesh"
)

// Cook dump errors.
var (
	ErrUnknownRate  = errors.New("unknown attribute rate")
	ErrEmptyGeo     = errors.New("empty geometry dump")
	ErrMissingPoint = errors.New("points count missing")
)

// GeoAttribute is one attribute entry in a cook dump.
type GeoAttribute struct {
	Name      string    `yaml:"name"`
	Rate      string    `yaml:"rate"` // "point" or "vertex"
	TupleSize int       `yaml:"tuple_size"`
	Data      []float32 `yaml:"data,flow"`
}

// Geo is a cook dump: the arrays an evaluator hands over after one cook.
type Geo struct {
	Name          string         `yaml:"name,omitempty"`
	Points        int            `yaml:"points"`
	FaceSizes     []int32        `yaml:"face_sizes,flow"`
	VertexToPoint []int32        `yaml:"vertex_to_point,flow"`
	Attributes    []GeoAttribute `yaml:"attributes"`
}

// ParseGeo decodes a YAML cook dump.
func ParseGeo(data []byte) (*Geo, error) {
	if len(data) == 0 {
		return nil, ErrEmptyGeo
	}
	var g Geo
	if err := yaml.Unmarshal(data, &g); err != nil {
		return nil, fmt.Errorf("decoding geometry dump: %w", err)
	}
	if g.Points == 0 && len(g.VertexToPoint) > 0 {
		return nil, ErrMissingPoint
	}
	for _, a := range g.Attributes {
		if _, ok := mesh.ParseRate(a.Rate); !ok {
			return nil, fmt.Errorf("%w: %q on attribute %q", ErrUnknownRate, a.Rate, a.Name)
		}
	}
	return &g, nil
}

// ParseGeoFile reads and decodes a YAML cook dump from disk.
func ParseGeoFile(path string) (*Geo, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseGeo(data)
}

// Snapshot converts the dump into a mesh snapshot. The snapshot shares the
// dump's slices.
func (g *Geo) Snapshot() *mesh.Snapshot {
	s := &mesh.Snapshot{
		Faces:    g.FaceSizes,
		Vertices: g.VertexToPoint,
		Points:   g.Points,
	}
	for _, a := range g.Attributes {
		rate, _ := mesh.ParseRate(a.Rate)
		s.AddChannel(mesh.Channel{
			Name:      a.Name,
			Rate:      rate,
			TupleSize: a.TupleSize,
			Data:      a.Data,
		})
	}
	return s
}

// NewGeo builds a dump from a snapshot, for writing back to disk.
func NewGeo(name string, s *mesh.Snapshot) *Geo {
	g := &Geo{
		Name:          name,
		Points:        s.Points,
		FaceSizes:     s.Faces,
		VertexToPoint: s.Vertices,
	}
	for _, c := range s.Channels {
		g.Attributes = append(g.Attributes, GeoAttribute{
			Name:      c.Name,
			Rate:      c.Rate.String(),
			TupleSize: c.TupleSize,
			Data:      c.Data,
		})
	}
	return g
}

// Marshal encodes the dump as YAML.
func (g *Geo) Marshal() ([]byte, error) {
	return yaml.Marshal(g)
}
