package gpu

import (
	"fmt"
	"unsafe"
)

// FakeDevice records GL calls instead of issuing them. Object names are
// handed out sequentially starting at 1.
type FakeDevice struct {
	Calls []string
	// Uploaded holds a copy of every BufferData payload as floats.
	Uploaded [][]float32

	next uint32
}

var _ Device = (*FakeDevice)(nil)

func (d *FakeDevice) record(format string, args ...any) {
	d.Calls = append(d.Calls, fmt.Sprintf(format, args...))
}

func (d *FakeDevice) name() uint32 {
	d.next++
	return d.next
}

func (d *FakeDevice) GenVertexArray() uint32 {
	vao := d.name()
	d.record("GenVertexArray %d", vao)
	return vao
}

func (d *FakeDevice) BindVertexArray(vao uint32) { d.record("BindVertexArray %d", vao) }

func (d *FakeDevice) GenBuffers(n int) []uint32 {
	d.record("GenBuffers %d", n)
	vbos := make([]uint32, n)
	for i := range vbos {
		vbos[i] = d.name()
	}
	return vbos
}

func (d *FakeDevice) BindArrayBuffer(vbo uint32) { d.record("BindArrayBuffer %d", vbo) }

func (d *FakeDevice) BufferData(size int, data unsafe.Pointer) {
	d.record("BufferData %d", size)
	floats := unsafe.Slice((*float32)(data), size/4)
	d.Uploaded = append(d.Uploaded, append([]float32(nil), floats...))
}

func (d *FakeDevice) AttribPointer(location uint32, components int32) {
	d.record("AttribPointer %d %d", location, components)
}

func (d *FakeDevice) EnableAttrib(location uint32) { d.record("EnableAttrib %d", location) }

func (d *FakeDevice) DeleteBuffers(vbos []uint32) { d.record("DeleteBuffers %d", len(vbos)) }

func (d *FakeDevice) DeleteVertexArray(vao uint32) { d.record("DeleteVertexArray %d", vao) }
