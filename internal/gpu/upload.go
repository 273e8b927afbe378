// Package gpu uploads extracted triangle lists into OpenGL buffers.
package gpu

import (
	"errors"
	"unsafe"

	"github.com/Faultbox/polytri/pkg/mesh"
)

// ErrEmptyMesh is returned when there is nothing to upload.
var ErrEmptyMesh = errors.New("gpu: mesh has no triangles")

// Attribute locations shared with the viewer shaders.
const (
	LocPosition uint32 = 0
	LocNormal   uint32 = 1
	LocColor    uint32 = 2
	LocUV       uint32 = 3
)

// Attrib describes one vertex attribute stream.
type Attrib struct {
	Kind       mesh.Kind
	Location   uint32
	Components int32
	Bytes      int // size of the stream in bytes
	data       unsafe.Pointer
}

// Layout lists the attribute streams for the channels present in b, in
// location order. Each present channel gets its own tightly packed buffer.
func Layout(b *mesh.Buffers) []Attrib {
	var out []Attrib
	if n := len(b.Positions); n > 0 {
		out = append(out, Attrib{Kind: mesh.KindPosition, Location: LocPosition, Components: 3, Bytes: n * 12, data: unsafe.Pointer(&b.Positions[0])})
	}
	if n := len(b.Normals); n > 0 {
		out = append(out, Attrib{Kind: mesh.KindNormal, Location: LocNormal, Components: 3, Bytes: n * 12, data: unsafe.Pointer(&b.Normals[0])})
	}
	if n := len(b.Colors); n > 0 {
		out = append(out, Attrib{Kind: mesh.KindColor, Location: LocColor, Components: 4, Bytes: n * 16, data: unsafe.Pointer(&b.Colors[0])})
	}
	if n := len(b.UVs); n > 0 {
		out = append(out, Attrib{Kind: mesh.KindUV, Location: LocUV, Components: 2, Bytes: n * 8, data: unsafe.Pointer(&b.UVs[0])})
	}
	return out
}

// Mesh is an uploaded triangle list.
type Mesh struct {
	VAO         uint32
	VBOs        []uint32
	VertexCount int32
}

// Upload creates a VAO on dev with one VBO per present channel. Absent
// channels leave their attribute location disabled. Both bindings are reset
// to zero before returning.
func Upload(dev Device, b *mesh.Buffers) (*Mesh, error) {
	if b.Triangles == 0 {
		return nil, ErrEmptyMesh
	}
	layout := Layout(b)

	m := &Mesh{VertexCount: int32(b.VertexCount())}
	m.VAO = dev.GenVertexArray()
	dev.BindVertexArray(m.VAO)

	m.VBOs = dev.GenBuffers(len(layout))
	for i, a := range layout {
		dev.BindArrayBuffer(m.VBOs[i])
		dev.BufferData(a.Bytes, a.data)
		dev.AttribPointer(a.Location, a.Components)
		dev.EnableAttrib(a.Location)
	}

	dev.BindVertexArray(0)
	dev.BindArrayBuffer(0)
	return m, nil
}

// Delete releases the GL objects owned by m.
func (m *Mesh) Delete(dev Device) {
	if len(m.VBOs) > 0 {
		dev.DeleteBuffers(m.VBOs)
		m.VBOs = nil
	}
	if m.VAO != 0 {
		dev.DeleteVertexArray(m.VAO)
		m.VAO = 0
	}
}
