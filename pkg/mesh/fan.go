package mesh

import "iter"

// Corner is one emitted triangle corner.
type Corner struct {
	Face   int // owning face
	Local  int // offset within the face
	Offset int // global offset in the incidence list
	Point  int // referenced point id
}

// Triangle is one fan triangle of a face.
type Triangle struct {
	Face    int
	Index   int // triangle number within the face
	Corners [3]Corner
}

// FaceRange locates a face in the incidence list and in the output.
type FaceRange struct {
	Base          int // first vertex offset of the face
	Size          int
	FirstTriangle int // index of the face's first output triangle
}

// Triangles returns how many triangles the face contributes.
func (r FaceRange) Triangles() int {
	return fanCount(r.Size)
}

func fanCount(n int) int {
	if n < 3 {
		return 0
	}
	return n - 2
}

// TriangleCount returns the sum of max(n-2, 0) over all face sizes.
func TriangleCount(faceSizes []int32) int {
	total := 0
	for _, n := range faceSizes {
		total += fanCount(int(n))
	}
	return total
}

// FaceOffsets returns the prefix sums needed to process each face on its
// own: the vertex base and the first output triangle of every face.
func FaceOffsets(faceSizes []int32) []FaceRange {
	ranges := make([]FaceRange, len(faceSizes))
	base, tri := 0, 0
	for f, n := range faceSizes {
		ranges[f] = FaceRange{Base: base, Size: int(n), FirstTriangle: tri}
		base += int(n)
		tri += fanCount(int(n))
	}
	return ranges
}

// FanLocal returns the face-local corner offsets of the k-th fan triangle.
//
// The moving corners come before the anchor, (k+2, k+1, 0). This flips the
// evaluator's winding into the renderer's convention and must not change.
func FanLocal(k int) [3]int {
	return [3]int{k + 2, k + 1, 0}
}

// faceTriangle builds the k-th triangle of face f.
func faceTriangle(f int, r FaceRange, k int, vertexToPoint []int32) Triangle {
	t := Triangle{Face: f, Index: k}
	for i, local := range FanLocal(k) {
		off := r.Base + local
		t.Corners[i] = Corner{
			Face:   f,
			Local:  local,
			Offset: off,
			Point:  int(vertexToPoint[off]),
		}
	}
	return t
}

// Triangulate yields the fan triangles of every face in order. Faces with
// fewer than three vertices yield nothing.
//
// vertexToPoint must hold at least sum(faceSizes) entries.
func Triangulate(faceSizes, vertexToPoint []int32) iter.Seq[Triangle] {
	return func(yield func(Triangle) bool) {
		base := 0
		for f, n := range faceSizes {
			r := FaceRange{Base: base, Size: int(n)}
			for k := range r.Triangles() {
				if !yield(faceTriangle(f, r, k, vertexToPoint)) {
					return
				}
			}
			base += int(n)
		}
	}
}

// Corners flattens a triangle sequence into its corners, three per triangle.
func Corners(tris iter.Seq[Triangle]) iter.Seq[Corner] {
	return func(yield func(Corner) bool) {
		for t := range tris {
			for _, c := range t.Corners {
				if !yield(c) {
					return
				}
			}
		}
	}
}
