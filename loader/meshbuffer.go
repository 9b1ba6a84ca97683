// Package loader reads the on-disk asset formats from spec.md §6 into
// raster types: mesh buffers, raw texture/cubemap-face buffers, and
// glTF documents. A failed load never panics and never leaves a half
// mutated destination (spec.md §7).
package loader

import (
	"encoding/binary"
	"io"
	"math"
	"os"

	"github.com/avluzzati/swraster/raster"
)

const vertexRecordSize = 60
const triangleRecordSize = 3 * vertexRecordSize

// LoadMeshBuffer reads the headerless 180-byte-per-triangle format of
// spec.md §6. The triangle count is file size / 180; trailing bytes are
// ignored. A missing or unreadable file yields an empty mesh rather than
// an error, matching the asset-load-failure taxonomy of spec.md §7.
func LoadMeshBuffer(path string) (*raster.Mesh, error) {
	f, err := os.Open(path)
	if err != nil {
		return raster.NewEmptyMesh(), nil
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return raster.NewEmptyMesh(), nil
	}

	count := len(data) / triangleRecordSize
	mesh := raster.NewEmptyMesh()
	for i := 0; i < count; i++ {
		base := data[i*triangleRecordSize:]
		tri := raster.Triangle{
			V1: decodeVertex(base[0*vertexRecordSize:]),
			V2: decodeVertex(base[1*vertexRecordSize:]),
			V3: decodeVertex(base[2*vertexRecordSize:]),
		}
		mesh.Add(tri)
	}
	return mesh, nil
}

func decodeVertex(b []byte) raster.Vertex {
	var v raster.Vertex
	off := 0

	v.Position = raster.V(readF32(b, off), readF32(b, off+4), readF32(b, off+8))
	off += 12

	r := float64(b[off]) / 255
	g := float64(b[off+1]) / 255
	bch := float64(b[off+2]) / 255
	a := float64(b[off+3]) / 255
	v.Color = raster.Color{R: r, G: g, B: bch, A: a}
	off += 4

	v.Normal = raster.V(readF32(b, off), readF32(b, off+4), readF32(b, off+8)).W(0)
	off += 12

	v.UV = [2]float64{float64(readF32(b, off)), float64(readF32(b, off+4))}
	off += 8

	v.Tangent = raster.V(readF32(b, off), readF32(b, off+4), readF32(b, off+8)).W(0)
	off += 12

	v.Bitangent = raster.V(readF32(b, off), readF32(b, off+4), readF32(b, off+8)).W(0)

	return v
}

func readF32(b []byte, off int) float64 {
	bits := binary.LittleEndian.Uint32(b[off : off+4])
	return float64(math.Float32frombits(bits))
}
