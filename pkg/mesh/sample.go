package mesh

// DefaultColorAlpha is the alpha given to three-component colors when they
// are widened to RGBA. Existing viewers write 0 here; set Options.ColorAlpha
// to override it.
const DefaultColorAlpha float32 = 0.0

// Sampler reads one tuple per corner from a resolved channel.
type Sampler struct {
	rate  Rate
	width int
	data  []float32
}

// NewSampler returns a sampler over c.
func NewSampler(c Channel) Sampler {
	return Sampler{rate: c.Rate, width: c.TupleSize, data: c.Data}
}

// Rate returns the rate the sampler indexes by.
func (s Sampler) Rate() Rate { return s.rate }

// Tuple returns the raw tuple for the corner: indexed by point id for
// point-rate channels and by global offset for vertex-rate channels.
func (s Sampler) Tuple(c Corner) []float32 {
	i := c.Point
	if s.rate == RateVertex {
		i = c.Offset
	}
	start := i * s.width
	return s.data[start : start+s.width : start+s.width]
}

// Vec3 samples a position or normal.
func (s Sampler) Vec3(c Corner) [3]float32 {
	t := s.Tuple(c)
	return [3]float32{t[0], t[1], t[2]}
}

// Color samples an RGBA color. Three-component tuples get the given alpha.
func (s Sampler) Color(c Corner, alpha float32) [4]float32 {
	t := s.Tuple(c)
	if len(t) >= 4 {
		return [4]float32{t[0], t[1], t[2], t[3]}
	}
	return [4]float32{t[0], t[1], t[2], alpha}
}

// UV samples a texture coordinate, reading the first two components and
// flipping v to the renderer's top-left origin.
func (s Sampler) UV(c Corner) [2]float32 {
	t := s.Tuple(c)
	return [2]float32{t[0], 1 - t[1]}
}
