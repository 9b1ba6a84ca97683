package loader

import (
	"fmt"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"github.com/avluzzati/swraster/imageio"
	"github.com/avluzzati/swraster/raster"
	"github.com/avluzzati/swraster/shader"
)

// LoadGLTF walks a glTF 2.0 document's meshes and materials, decoding
// POSITION/NORMAL/TANGENT/TEXCOORD_0/COLOR_0 accessors into
// raster.Vertex values. It returns one raster.Mesh per glTF mesh (all of
// its primitives together) and one shader.PBRMaterial per glTF material,
// each in document order; the meshes carry no link to their materials.
// A material with no PBRMetallicRoughness block gets a white base color,
// metallic and roughness factors of 1, and no textures. This
// supplements the distilled spec (spec.md has no glTF section); the
// teacher repo's gltf.go loadMeshes/loadMaterials are the model.
func LoadGLTF(path string) ([]*raster.Mesh, []shader.PBRMaterial, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("loader: open gltf: %w", err)
	}

	materials := make([]shader.PBRMaterial, len(doc.Materials))
	for i, m := range doc.Materials {
		materials[i] = decodeMaterial(doc, m)
	}

	meshes := make([]*raster.Mesh, 0, len(doc.Meshes))
	for _, gltfMesh := range doc.Meshes {
		mesh, err := decodeMesh(doc, &gltfMesh)
		if err != nil {
			return nil, nil, fmt.Errorf("loader: decode gltf mesh: %w", err)
		}
		meshes = append(meshes, mesh)
	}

	return meshes, materials, nil
}

func decodeMaterial(doc *gltf.Document, m *gltf.Material) shader.PBRMaterial {
	var mat shader.PBRMaterial
	mat.MetallicFactor = 1
	mat.RoughnessFactor = 1
	mat.BaseColorFactor = raster.Color{R: 1, G: 1, B: 1, A: 1}

	if m.PBRMetallicRoughness == nil {
		return mat
	}
	pbr := m.PBRMetallicRoughness
	if pbr.BaseColorFactor != nil {
		mat.BaseColorFactor = raster.Color{
			R: float64(pbr.BaseColorFactor[0]),
			G: float64(pbr.BaseColorFactor[1]),
			B: float64(pbr.BaseColorFactor[2]),
			A: float64(pbr.BaseColorFactor[3]),
		}
	}
	if pbr.MetallicFactor != nil {
		mat.MetallicFactor = float64(*pbr.MetallicFactor)
	}
	if pbr.RoughnessFactor != nil {
		mat.RoughnessFactor = float64(*pbr.RoughnessFactor)
	}

	if pbr.BaseColorTexture != nil {
		mat.BaseColorMap = loadGLTFTexture(doc, int(pbr.BaseColorTexture.Index), true)
	}
	if pbr.MetallicRoughnessTexture != nil {
		mat.MetallicRoughnessOcclusionMap = loadGLTFTexture(doc, int(pbr.MetallicRoughnessTexture.Index), false)
	}
	if m.NormalTexture != nil {
		mat.NormalMap = loadGLTFTexture(doc, int(*m.NormalTexture.Index), false)
	}
	return mat
}

// loadGLTFTexture resolves a glTF texture index to an image URI and
// decodes it through imageio; embedded (data-URI/bufferview) images are
// skipped, matching the teacher's "skip embedded images for now".
func loadGLTFTexture(doc *gltf.Document, textureIndex int, gammaCorrect bool) *raster.Texture {
	if textureIndex < 0 || textureIndex >= len(doc.Textures) {
		return nil
	}
	tex := doc.Textures[textureIndex]
	if tex.Source == nil {
		return nil
	}
	srcIndex := int(*tex.Source)
	if srcIndex >= len(doc.Images) {
		return nil
	}
	img := doc.Images[srcIndex]
	if img.URI == "" {
		return nil
	}
	t, err := imageio.LoadImage(img.URI, gammaCorrect)
	if err != nil {
		return nil
	}
	t.GenerateMipmaps()
	return t
}

func decodeMesh(doc *gltf.Document, gltfMesh *gltf.Mesh) (*raster.Mesh, error) {
	mesh := raster.NewEmptyMesh()

	for _, primitive := range gltfMesh.Primitives {
		positions, err := modeler.ReadPosition(doc, doc.Accessors[primitive.Attributes[gltf.POSITION]], nil)
		if err != nil {
			return nil, err
		}

		var normals [][3]float32
		if idx, ok := primitive.Attributes[gltf.NORMAL]; ok {
			normals, err = modeler.ReadNormal(doc, doc.Accessors[idx], nil)
			if err != nil {
				return nil, err
			}
		}

		var tangents [][4]float32
		if idx, ok := primitive.Attributes[gltf.TANGENT]; ok {
			tangents, err = modeler.ReadTangent(doc, doc.Accessors[idx], nil)
			if err != nil {
				return nil, err
			}
		}

		var uvs [][2]float32
		if idx, ok := primitive.Attributes[gltf.TEXCOORD_0]; ok {
			uvs, err = modeler.ReadTextureCoord(doc, doc.Accessors[idx], nil)
			if err != nil {
				return nil, err
			}
		}

		var colors [][4]float32
		hasColor := false
		if idx, ok := primitive.Attributes[gltf.COLOR_0]; ok {
			colors, err = modeler.ReadColor(doc, doc.Accessors[idx], nil)
			if err == nil {
				hasColor = true
			}
		}

		var indices []uint32
		if primitive.Indices != nil {
			indices, err = modeler.ReadIndices(doc, doc.Accessors[*primitive.Indices], nil)
			if err != nil {
				return nil, err
			}
		} else {
			indices = make([]uint32, len(positions))
			for i := range indices {
				indices[i] = uint32(i)
			}
		}

		buildVertex := func(i uint32) raster.Vertex {
			v := raster.Vertex{Color: raster.Color{R: 1, G: 1, B: 1, A: 1}}
			v.Position = raster.V(float64(positions[i][0]), float64(positions[i][1]), float64(positions[i][2]))
			if normals != nil {
				v.Normal = raster.V(float64(normals[i][0]), float64(normals[i][1]), float64(normals[i][2])).W(0)
			}
			if tangents != nil {
				v.Tangent = raster.VW(float64(tangents[i][0]), float64(tangents[i][1]), float64(tangents[i][2]), float64(tangents[i][3]))
			}
			if uvs != nil {
				v.UV = [2]float64{float64(uvs[i][0]), float64(uvs[i][1])}
			}
			if hasColor {
				v.Color = raster.Color{
					R: float64(colors[i][0]),
					G: float64(colors[i][1]),
					B: float64(colors[i][2]),
					A: float64(colors[i][3]),
				}
			}
			return v
		}

		for i := 0; i+2 < len(indices); i += 3 {
			v1 := buildVertex(indices[i])
			v2 := buildVertex(indices[i+1])
			v3 := buildVertex(indices[i+2])

			if tangents == nil {
				t, b := raster.FaceTangentBitangent(v1, v2, v3, v1.Normal.XYZ())
				v1.Tangent, v2.Tangent, v3.Tangent = t.W(0), t.W(0), t.W(0)
				v1.Bitangent, v2.Bitangent, v3.Bitangent = b.W(0), b.W(0), b.W(0)
			}
			mesh.Add(raster.Triangle{V1: v1, V2: v2, V3: v3})
		}
	}

	return mesh, nil
}
