package loader

import (
	"encoding/binary"
	"math"
	"os"
	"path/filepath"
	"testing"
)

func putF32(buf []byte, off int, v float32) {
	binary.LittleEndian.PutUint32(buf[off:], math.Float32bits(v))
}

func encodeVertex(buf []byte, pos [3]float32, col [4]byte, normal [3]float32, uv [2]float32, tangent, bitangent [3]float32) {
	off := 0
	for _, v := range pos {
		putF32(buf, off, v)
		off += 4
	}
	copy(buf[off:off+4], col[:])
	off += 4
	for _, v := range normal {
		putF32(buf, off, v)
		off += 4
	}
	for _, v := range uv {
		putF32(buf, off, v)
		off += 4
	}
	for _, v := range tangent {
		putF32(buf, off, v)
		off += 4
	}
	for _, v := range bitangent {
		putF32(buf, off, v)
		off += 4
	}
}

func TestLoadMeshBufferDecodesOneTriangle(t *testing.T) {
	buf := make([]byte, triangleRecordSize)
	encodeVertex(buf[0:60], [3]float32{0, 0, 0}, [4]byte{255, 0, 0, 255}, [3]float32{0, 0, 1}, [2]float32{0, 0}, [3]float32{1, 0, 0}, [3]float32{0, 1, 0})
	encodeVertex(buf[60:120], [3]float32{1, 0, 0}, [4]byte{0, 255, 0, 255}, [3]float32{0, 0, 1}, [2]float32{1, 0}, [3]float32{1, 0, 0}, [3]float32{0, 1, 0})
	encodeVertex(buf[120:180], [3]float32{0, 1, 0}, [4]byte{0, 0, 255, 255}, [3]float32{0, 0, 1}, [2]float32{0, 1}, [3]float32{1, 0, 0}, [3]float32{0, 1, 0})

	path := filepath.Join(t.TempDir(), "mesh.buff")
	if err := os.WriteFile(path, buf, 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	mesh, err := LoadMeshBuffer(path)
	if err != nil {
		t.Fatalf("LoadMeshBuffer: %v", err)
	}
	if len(mesh.Triangles) != 1 {
		t.Fatalf("want 1 triangle, got %d", len(mesh.Triangles))
	}
	tri := mesh.Triangles[0]
	if tri.V1.Color.R != 1 || tri.V1.Color.G != 0 {
		t.Fatalf("V1 color decode mismatch: %v", tri.V1.Color)
	}
	if tri.V2.Position.X != 1 {
		t.Fatalf("V2 position decode mismatch: %v", tri.V2.Position)
	}
	if tri.V3.UV != [2]float64{0, 1} {
		t.Fatalf("V3 uv decode mismatch: %v", tri.V3.UV)
	}
}

func TestLoadMeshBufferIgnoresTrailingBytes(t *testing.T) {
	buf := make([]byte, triangleRecordSize+37)
	path := filepath.Join(t.TempDir(), "mesh.buff")
	if err := os.WriteFile(path, buf, 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	mesh, err := LoadMeshBuffer(path)
	if err != nil {
		t.Fatalf("LoadMeshBuffer: %v", err)
	}
	if len(mesh.Triangles) != 1 {
		t.Fatalf("want 1 triangle from %d whole + trailing bytes, got %d", triangleRecordSize+37, len(mesh.Triangles))
	}
}

func TestLoadMeshBufferMissingFileReturnsEmptyMesh(t *testing.T) {
	mesh, err := LoadMeshBuffer(filepath.Join(t.TempDir(), "missing.buff"))
	if err != nil {
		t.Fatalf("LoadMeshBuffer should never error on missing file, got %v", err)
	}
	if len(mesh.Triangles) != 0 {
		t.Fatalf("want empty mesh, got %d triangles", len(mesh.Triangles))
	}
}
