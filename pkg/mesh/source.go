// Package mesh converts polygon meshes with point- or vertex-rate attributes
// into non-indexed triangle lists ready for GPU upload.
//
// A Source describes a cooked polygon surface as flat arrays: one size per
// face, a flat vertex-to-point incidence list and named attribute channels.
// NewView validates a Source once; Builder expands a validated view into
// co-indexed per-channel Buffers using fan triangulation.
package mesh

import "fmt"

// Rate says which entity an attribute channel is indexed by.
type Rate uint8

const (
	// RatePoint channels hold one tuple per point, shared by every corner
	// that references the point.
	RatePoint Rate = iota
	// RateVertex channels hold one tuple per corner, indexed by the corner's
	// offset in the incidence list.
	RateVertex
)

func (r Rate) String() string {
	switch r {
	case RatePoint:
		return "point"
	case RateVertex:
		return "vertex"
	default:
		return fmt.Sprintf("Rate(%d)", uint8(r))
	}
}

// ParseRate converts "point" or "vertex" to a Rate.
func ParseRate(s string) (Rate, bool) {
	switch s {
	case "point":
		return RatePoint, true
	case "vertex":
		return RateVertex, true
	}
	return 0, false
}

// Channel is a named attribute plane over points or vertices.
// Data holds TupleSize floats per element.
type Channel struct {
	Name      string
	Rate      Rate
	TupleSize int
	Data      []float32
}

// Len returns the number of tuples stored in the channel.
func (c Channel) Len() int {
	if c.TupleSize <= 0 {
		return 0
	}
	return len(c.Data) / c.TupleSize
}

// Source is a read-only view of one cooked polygon surface.
//
// Implementations borrow the evaluator's arrays; they must stay unchanged
// for the duration of one extraction.
type Source interface {
	FaceSizes() []int32
	VertexToPoint() []int32
	NumPoints() int
	// Attribute returns the channel with the given name stored at the
	// given rate, or false when there is none.
	Attribute(name string, rate Rate) (Channel, bool)
}

// Snapshot is a Source backed by plain slices.
type Snapshot struct {
	Faces    []int32
	Vertices []int32
	Points   int
	Channels []Channel
}

// FaceSizes implements Source. A nil snapshot has no faces.
func (s *Snapshot) FaceSizes() []int32 {
	if s == nil {
		return nil
	}
	return s.Faces
}

// VertexToPoint implements Source.
func (s *Snapshot) VertexToPoint() []int32 {
	if s == nil {
		return nil
	}
	return s.Vertices
}

// NumPoints implements Source.
func (s *Snapshot) NumPoints() int {
	if s == nil {
		return 0
	}
	return s.Points
}

// Attribute implements Source.
func (s *Snapshot) Attribute(name string, rate Rate) (Channel, bool) {
	if s == nil {
		return Channel{}, false
	}
	for _, c := range s.Channels {
		if c.Name == name && c.Rate == rate {
			return c, true
		}
	}
	return Channel{}, false
}

// AddChannel appends a channel, replacing any existing one with the same
// name and rate.
func (s *Snapshot) AddChannel(c Channel) {
	for i := range s.Channels {
		if s.Channels[i].Name == c.Name && s.Channels[i].Rate == c.Rate {
			s.Channels[i] = c
			return
		}
	}
	s.Channels = append(s.Channels, c)
}

// View is a Source whose topology has been checked.
type View struct {
	src       Source
	faces     []int32
	vertices  []int32
	numPoints int
	triangles int
}

// NewView validates the topology of src and returns a view over it.
//
// It checks that no face size is negative, that the incidence list is
// exactly as long as the sum of face sizes and that every point id lies in
// [0, NumPoints). A nil source, including a nil *Snapshot, yields
// ErrNilSource. Attribute channels are checked when they are resolved.
func NewView(src Source) (*View, error) {
	if src == nil {
		return nil, ErrNilSource
	}
	if s, ok := src.(*Snapshot); ok && s == nil {
		return nil, ErrNilSource
	}
	faces := src.FaceSizes()
	vertices := src.VertexToPoint()
	numPoints := src.NumPoints()

	total := 0
	for i, n := range faces {
		if n < 0 {
			return nil, &IntegrityError{Field: "face_sizes", Index: i, Want: 0, Got: int(n), Err: ErrNegativeFaceSize}
		}
		total += int(n)
	}
	if total != len(vertices) {
		return nil, &IntegrityError{Field: "vertex_to_point", Index: -1, Want: total, Got: len(vertices), Err: ErrIncidenceLength}
	}
	for i, p := range vertices {
		if p < 0 || int(p) >= numPoints {
			return nil, &IntegrityError{Field: "vertex_to_point", Index: i, Want: numPoints, Got: int(p), Err: ErrPointIndex}
		}
	}

	return &View{
		src:       src,
		faces:     faces,
		vertices:  vertices,
		numPoints: numPoints,
		triangles: TriangleCount(faces),
	}, nil
}

// FaceSizes implements Source.
func (v *View) FaceSizes() []int32 { return v.faces }

// VertexToPoint implements Source.
func (v *View) VertexToPoint() []int32 { return v.vertices }

// NumPoints implements Source.
func (v *View) NumPoints() int { return v.numPoints }

// NumVertices returns the length of the incidence list.
func (v *View) NumVertices() int { return len(v.vertices) }

// TriangleCount returns the number of triangles the view expands to.
func (v *View) TriangleCount() int { return v.triangles }

// Attribute implements Source.
func (v *View) Attribute(name string, rate Rate) (Channel, bool) {
	c, ok := v.src.Attribute(name, rate)
	if !ok {
		return Channel{}, false
	}
	c.Name = name
	c.Rate = rate
	return c, true
}

// elements returns how many tuples a channel of the given rate must hold.
func (v *View) elements(rate Rate) int {
	if rate == RateVertex {
		return len(v.vertices)
	}
	return v.numPoints
}

// checkChannel validates the shape of c against the view.
func (v *View) checkChannel(c Channel, minWidth int) error {
	if c.TupleSize < minWidth {
		return &ChannelError{
			Channel: c.Name, Rate: c.Rate, Err: ErrTupleSize,
			Detail: fmt.Sprintf("tuple size %d, need at least %d", c.TupleSize, minWidth),
		}
	}
	want := c.TupleSize * v.elements(c.Rate)
	if len(c.Data) != want {
		return &ChannelError{
			Channel: c.Name, Rate: c.Rate, Err: ErrChannelLength,
			Detail: fmt.Sprintf("want %d floats, got %d", want, len(c.Data)),
		}
	}
	return nil
}
