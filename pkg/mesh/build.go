package mesh

import (
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Buffers holds one extracted triangle list. Every present channel has
// exactly 3*Triangles entries and entry i of each channel belongs to the
// same corner. Absent channels are nil.
type Buffers struct {
	Positions [][3]float32
	Normals   [][3]float32
	Colors    [][4]float32
	UVs       [][2]float32
	Triangles int
	// Rates records the rate each present channel was resolved at.
	Rates map[Kind]Rate
}

// VertexCount returns the number of emitted corners.
func (b *Buffers) VertexCount() int { return 3 * b.Triangles }

// Has reports whether the channel was resolved.
func (b *Buffers) Has(k Kind) bool {
	_, ok := b.Rates[k]
	return ok
}

// Bounds is an axis-aligned bounding box.
type Bounds struct {
	Min [3]float32
	Max [3]float32
}

// Bounds returns the box around all positions. ok is false when the
// buffers are empty.
func (b *Buffers) Bounds() (bounds Bounds, ok bool) {
	if len(b.Positions) == 0 {
		return Bounds{}, false
	}
	bounds = Bounds{Min: b.Positions[0], Max: b.Positions[0]}
	for _, p := range b.Positions[1:] {
		for i := range 3 {
			if p[i] < bounds.Min[i] {
				bounds.Min[i] = p[i]
			}
			if p[i] > bounds.Max[i] {
				bounds.Max[i] = p[i]
			}
		}
	}
	return bounds, true
}

// Options controls extraction.
type Options struct {
	// Names maps output channels to evaluator attribute names.
	Names AttributeNames
	// UVPointFallback lets uv resolve at point rate when no vertex-rate uv
	// exists.
	UVPointFallback bool
	// ColorAlpha is the alpha used when widening RGB colors.
	ColorAlpha float32
	// Workers bounds the goroutines used to fill faces. Values below 2 keep
	// the fill sequential; negative values use GOMAXPROCS.
	Workers int
	// ParallelThreshold is the triangle count below which the fill stays
	// sequential even when Workers > 1.
	ParallelThreshold int
}

// DefaultParallelThreshold is the triangle count at which parallel fill
// starts to pay off.
const DefaultParallelThreshold = 4096

// DefaultOptions returns the established extraction behavior.
func DefaultOptions() Options {
	return Options{
		Names:             DefaultAttributeNames(),
		ColorAlpha:        DefaultColorAlpha,
		Workers:           1,
		ParallelThreshold: DefaultParallelThreshold,
	}
}

// Builder expands validated views into Buffers.
type Builder struct {
	opts     Options
	policies []Policy
}

// NewBuilder returns a builder using opts. A zero Names falls back to
// DefaultAttributeNames.
func NewBuilder(opts Options) *Builder {
	if opts.Names == (AttributeNames{}) {
		opts.Names = DefaultAttributeNames()
	}
	return &Builder{
		opts:     opts,
		policies: DefaultPolicies(opts.Names, opts.UVPointFallback),
	}
}

// Policies returns the resolution policies the builder applies.
func (b *Builder) Policies() []Policy { return b.policies }

// Extract validates src and builds its buffers with opts.
func Extract(src Source, opts Options) (*Buffers, error) {
	v, err := NewView(src)
	if err != nil {
		return nil, err
	}
	return NewBuilder(opts).Build(v)
}

// Build resolves channels on v and expands every face into triangles.
func (b *Builder) Build(v *View) (*Buffers, error) {
	resolved, err := Resolve(v, b.policies)
	if err != nil {
		return nil, err
	}

	n := 3 * v.TriangleCount()
	out := &Buffers{Triangles: v.TriangleCount(), Rates: make(map[Kind]Rate, len(resolved))}
	w := &writer{out: out, alpha: b.opts.ColorAlpha}
	for _, r := range resolved {
		if !r.Found {
			continue
		}
		out.Rates[r.Kind] = r.Channel.Rate
		s := NewSampler(r.Channel)
		switch r.Kind {
		case KindPosition:
			w.pos = s
			out.Positions = make([][3]float32, n)
		case KindNormal:
			w.nrm = s
			out.Normals = make([][3]float32, n)
		case KindColor:
			w.col = s
			out.Colors = make([][4]float32, n)
		case KindUV:
			w.uv = s
			out.UVs = make([][2]float32, n)
		}
	}

	if workers := b.workers(); workers > 1 && out.Triangles >= b.threshold() {
		if err := b.fillParallel(v, w, workers); err != nil {
			return nil, err
		}
	} else {
		i := 0
		for c := range Corners(Triangulate(v.FaceSizes(), v.VertexToPoint())) {
			w.put(i, c)
			i++
		}
	}
	return out, nil
}

func (b *Builder) workers() int {
	if b.opts.Workers < 0 {
		return runtime.GOMAXPROCS(0)
	}
	return b.opts.Workers
}

func (b *Builder) threshold() int {
	if b.opts.ParallelThreshold <= 0 {
		return DefaultParallelThreshold
	}
	return b.opts.ParallelThreshold
}

// fillParallel splits faces into chunks; each face writes only its own
// output range, so chunks share nothing. A panicking chunk is reported as
// ErrFill.
func (b *Builder) fillParallel(v *View, w *writer, workers int) error {
	ranges := FaceOffsets(v.FaceSizes())
	vertexToPoint := v.VertexToPoint()

	chunk := len(ranges) / (workers * 4)
	if chunk < 1 {
		chunk = 1
	}

	var g errgroup.Group
	g.SetLimit(workers)
	for start := 0; start < len(ranges); start += chunk {
		end := min(start+chunk, len(ranges))
		g.Go(func() (err error) {
			defer func() {
				if r := recover(); r != nil {
					err = fmt.Errorf("%w: faces %d-%d: %v", ErrFill, start, end-1, r)
				}
			}()
			for f := start; f < end; f++ {
				r := ranges[f]
				for k := range r.Triangles() {
					t := faceTriangle(f, r, k, vertexToPoint)
					i := 3 * (r.FirstTriangle + k)
					for j, c := range t.Corners {
						w.put(i+j, c)
					}
				}
			}
			return nil
		})
	}
	return g.Wait()
}

// writer samples every present channel for a corner and stores the result
// at output index i.
type writer struct {
	out   *Buffers
	alpha float32

	pos, nrm, col, uv Sampler
}

func (w *writer) put(i int, c Corner) {
	w.out.Positions[i] = w.pos.Vec3(c)
	if w.out.Normals != nil {
		w.out.Normals[i] = w.nrm.Vec3(c)
	}
	if w.out.Colors != nil {
		w.out.Colors[i] = w.col.Color(c, w.alpha)
	}
	if w.out.UVs != nil {
		w.out.UVs[i] = w.uv.UV(c)
	}
}
