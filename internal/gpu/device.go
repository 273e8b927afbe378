package gpu

import (
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// Device is the subset of the GL API used to upload a mesh.
type Device interface {
	GenVertexArray() uint32
	BindVertexArray(vao uint32)
	GenBuffers(n int) []uint32
	BindArrayBuffer(vbo uint32)
	// BufferData fills the bound array buffer with size bytes from data.
	BufferData(size int, data unsafe.Pointer)
	// AttribPointer points location at tightly packed float components of
	// the bound array buffer.
	AttribPointer(location uint32, components int32)
	EnableAttrib(location uint32)
	DeleteBuffers(vbos []uint32)
	DeleteVertexArray(vao uint32)
}

// OpenGL drives the current GL 4.1 core context through go-gl. gl.Init must
// have succeeded on the calling thread.
type OpenGL struct{}

var _ Device = OpenGL{}

func (OpenGL) GenVertexArray() uint32 {
	var vao uint32
	gl.GenVertexArrays(1, &vao)
	return vao
}

func (OpenGL) BindVertexArray(vao uint32) { gl.BindVertexArray(vao) }

func (OpenGL) GenBuffers(n int) []uint32 {
	if n <= 0 {
		return nil
	}
	vbos := make([]uint32, n)
	gl.GenBuffers(int32(n), &vbos[0])
	return vbos
}

func (OpenGL) BindArrayBuffer(vbo uint32) { gl.BindBuffer(gl.ARRAY_BUFFER, vbo) }

func (OpenGL) BufferData(size int, data unsafe.Pointer) {
	gl.BufferData(gl.ARRAY_BUFFER, size, data, gl.STATIC_DRAW)
}

func (OpenGL) AttribPointer(location uint32, components int32) {
	gl.VertexAttribPointerWithOffset(location, components, gl.FLOAT, false, 0, 0)
}

func (OpenGL) EnableAttrib(location uint32) { gl.EnableVertexAttribArray(location) }

func (OpenGL) DeleteBuffers(vbos []uint32) {
	if len(vbos) > 0 {
		gl.DeleteBuffers(int32(len(vbos)), &vbos[0])
	}
}

func (OpenGL) DeleteVertexArray(vao uint32) { gl.DeleteVertexArrays(1, &vao) }
