package formats

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/Faultbox/polytri/pkg/mesh"
)

// OBJ format errors.
var (
	ErrOBJSyntax = errors.New("invalid OBJ syntax")
	ErrOBJIndex  = errors.New("OBJ index out of range")
)

// OBJ attribute names. They match mesh.DefaultAttributeNames.
const (
	objPosition = "P"
	objNormal   = "N"
	objColor    = "Cd"
	objUV       = "uv"
)

type objCorner struct {
	point, uv, normal int // -1 when absent
}

// ParseOBJ reads a Wavefront OBJ file into a snapshot.
//
// Positions become a point-rate channel. Texture coordinates and normals
// are expanded per corner into vertex-rate channels; they are only emitted
// when every corner references one. Per-vertex colors ("v x y z r g b")
// become a point-rate color channel when every vertex carries one.
func ParseOBJ(data []byte) (*mesh.Snapshot, error) {
	var (
		positions, colors []float32
		uvs               [][2]float32
		nrm3              [][3]float32
		faces             []int32
		corners           []objCorner
		withColor         = true
	)

	sc := bufio.NewScanner(bytes.NewReader(data))
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" || line[0] == '#' {
			continue
		}
		fields := strings.Fields(line)
		args := fields[1:]

		switch fields[0] {
		case "v":
			vals, err := parseFloats(args, 3)
			if err != nil {
				return nil, fmt.Errorf("%w: line %d: %v", ErrOBJSyntax, lineNo, err)
			}
			positions = append(positions, vals[0], vals[1], vals[2])
			if len(vals) >= 6 {
				colors = append(colors, vals[3], vals[4], vals[5])
			} else {
				withColor = false
			}
		case "vt":
			vals, err := parseFloats(args, 1)
			if err != nil {
				return nil, fmt.Errorf("%w: line %d: %v", ErrOBJSyntax, lineNo, err)
			}
			uv := [2]float32{vals[0], 0}
			if len(vals) > 1 {
				uv[1] = vals[1]
			}
			uvs = append(uvs, uv)
		case "vn":
			vals, err := parseFloats(args, 3)
			if err != nil {
				return nil, fmt.Errorf("%w: line %d: %v", ErrOBJSyntax, lineNo, err)
			}
			nrm3 = append(nrm3, [3]float32{vals[0], vals[1], vals[2]})
		case "f":
			if len(args) == 0 {
				return nil, fmt.Errorf("%w: line %d: empty face", ErrOBJSyntax, lineNo)
			}
			numPoints := len(positions) / 3
			for _, a := range args {
				c, err := parseCorner(a, numPoints, len(uvs), len(nrm3))
				if err != nil {
					return nil, fmt.Errorf("line %d: %w", lineNo, err)
				}
				corners = append(corners, c)
			}
			faces = append(faces, int32(len(args)))
		default:
			// Groups, materials, smoothing and line elements carry no
			// surface data.
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}

	numPoints := len(positions) / 3
	s := &mesh.Snapshot{
		Faces:    faces,
		Vertices: make([]int32, len(corners)),
		Points:   numPoints,
	}
	hasUV, hasNormal := len(corners) > 0, len(corners) > 0
	for i, c := range corners {
		s.Vertices[i] = int32(c.point)
		hasUV = hasUV && c.uv >= 0
		hasNormal = hasNormal && c.normal >= 0
	}

	s.AddChannel(mesh.Channel{Name: objPosition, Rate: mesh.RatePoint, TupleSize: 3, Data: positions})
	if withColor && numPoints > 0 {
		s.AddChannel(mesh.Channel{Name: objColor, Rate: mesh.RatePoint, TupleSize: 3, Data: colors})
	}
	if hasUV {
		data := make([]float32, 0, 2*len(corners))
		for _, c := range corners {
			data = append(data, uvs[c.uv][0], uvs[c.uv][1])
		}
		s.AddChannel(mesh.Channel{Name: objUV, Rate: mesh.RateVertex, TupleSize: 2, Data: data})
	}
	if hasNormal {
		data := make([]float32, 0, 3*len(corners))
		for _, c := range corners {
			n := nrm3[c.normal]
			data = append(data, n[0], n[1], n[2])
		}
		s.AddChannel(mesh.Channel{Name: objNormal, Rate: mesh.RateVertex, TupleSize: 3, Data: data})
	}
	return s, nil
}

// ParseOBJFile reads an OBJ file from disk.
func ParseOBJFile(path string) (*mesh.Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseOBJ(data)
}

func parseFloats(args []string, want int) ([]float32, error) {
	if len(args) < want {
		return nil, fmt.Errorf("want at least %d values, got %d", want, len(args))
	}
	out := make([]float32, len(args))
	for i, a := range args {
		f, err := strconv.ParseFloat(a, 32)
		if err != nil {
			return nil, err
		}
		out[i] = float32(f)
	}
	return out, nil
}

// parseCorner decodes "p", "p/t", "p//n" or "p/t/n".
func parseCorner(s string, numPoints, numUV, numNormal int) (objCorner, error) {
	c := objCorner{point: -1, uv: -1, normal: -1}
	parts := strings.Split(s, "/")
	if len(parts) > 3 {
		return c, fmt.Errorf("%w: corner %q", ErrOBJSyntax, s)
	}

	var err error
	if c.point, err = objIndex(parts[0], numPoints); err != nil {
		return c, err
	}
	if len(parts) > 1 && parts[1] != "" {
		if c.uv, err = objIndex(parts[1], numUV); err != nil {
			return c, err
		}
	}
	if len(parts) > 2 && parts[2] != "" {
		if c.normal, err = objIndex(parts[2], numNormal); err != nil {
			return c, err
		}
	}
	return c, nil
}

// objIndex resolves a 1-based or negative (relative) OBJ index.
func objIndex(s string, count int) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: index %q", ErrOBJSyntax, s)
	}
	idx := n - 1
	if n < 0 {
		idx = count + n
	}
	if n == 0 || idx < 0 || idx >= count {
		return 0, fmt.Errorf("%w: %d of %d", ErrOBJIndex, n, count)
	}
	return idx, nil
}
