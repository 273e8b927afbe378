// Package export writes extracted triangle lists to glTF.
package export

import (
	"errors"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"github.com/Faultbox/polytri/pkg/mesh"
)

// ErrEmptyMesh is returned for buffers without triangles; glTF accessors
// must not be empty.
var ErrEmptyMesh = errors.New("export: mesh has no triangles")

// Options controls document metadata.
type Options struct {
	Generator string
	MeshName  string
}

// Document builds a glTF document holding b as one non-indexed triangle
// primitive. Absent channels are left out of the primitive.
func Document(b *mesh.Buffers, opts Options) (*gltf.Document, error) {
	if b.Triangles == 0 || len(b.Positions) == 0 {
		return nil, ErrEmptyMesh
	}

	doc := gltf.NewDocument()
	doc.Asset.Generator = opts.Generator

	attrs := map[string]uint32{
		gltf.POSITION: uint32(modeler.WritePosition(doc, b.Positions)),
	}
	if b.Normals != nil {
		attrs[gltf.NORMAL] = uint32(modeler.WriteNormal(doc, b.Normals))
	}
	if b.Colors != nil {
		attrs[gltf.COLOR_0] = uint32(modeler.WriteColor(doc, b.Colors))
	}
	if b.UVs != nil {
		attrs[gltf.TEXCOORD_0] = uint32(modeler.WriteTextureCoord(doc, b.UVs))
	}

	doc.Materials = []*gltf.Material{{
		Name:      "vertex",
		AlphaMode: gltf.AlphaOpaque,
		PBRMetallicRoughness: &gltf.PBRMetallicRoughness{
			BaseColorFactor: &[4]float32{1, 1, 1, 1},
			MetallicFactor:  gltf.Float(0),
			RoughnessFactor: gltf.Float(1),
		},
	}}

	prim := &gltf.Primitive{
		Attributes: attrs,
		Material:   gltf.Index(0),
	}
	doc.Meshes = []*gltf.Mesh{{Name: opts.MeshName, Primitives: []*gltf.Primitive{prim}}}
	doc.Nodes = []*gltf.Node{{Name: opts.MeshName, Mesh: gltf.Index(0)}}
	doc.Scenes[0].Nodes = append(doc.Scenes[0].Nodes, uint32(0))
	return doc, nil
}

// WriteGLB writes b to path as a binary glTF file.
func WriteGLB(path string, b *mesh.Buffers, opts Options) error {
	doc, err := Document(b, opts)
	if err != nil {
		return err
	}
	return gltf.SaveBinary(doc, path)
}
