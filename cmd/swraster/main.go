// Command swraster renders a mesh through the software pipeline and
// writes the backbuffer to an image file, driven entirely by CLI flags
// rather than the reference's hardcoded animation loop.
package main

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alecthomas/kingpin/v2"
	"github.com/alecthomas/units"

	"github.com/avluzzati/swraster/imageio"
	"github.com/avluzzati/swraster/loader"
	"github.com/avluzzati/swraster/raster"
	"github.com/avluzzati/swraster/shader"
)

var (
	app = kingpin.New("swraster", "Software rasterizer CLI driver")

	meshPath = app.Flag("mesh", "Mesh buffer (.buff) or glTF (.gltf/.glb) path").String()
	outPath  = app.Flag("out", "Output image path (.bmp or .png)").Default("out.png").String()

	width  = app.Flag("width", "Framebuffer width").Default("1024").Int()
	height = app.Flag("height", "Framebuffer height").Default("1024").Int()
	fov    = app.Flag("fov", "Vertical field of view, in degrees").Default("60").Float64()

	eyeFlag    = app.Flag("eye", "Camera eye position as x,y,z").Default("2,2,2").String()
	targetFlag = app.Flag("target", "Camera look-at target as x,y,z").Default("0,0,0").String()

	cullFlag = app.Flag("cull", "Face culling mode: none, cw, ccw").Default("ccw").Enum("none", "cw", "ccw")

	lodFactor = app.Flag("lod", "Mesh simplification factor in (0,1); 0 disables").Default("0").Float64()

	thumbnailPath = app.Flag("thumbnail", "Write a downsized preview alongside --out").String()

	assetBudget = app.Flag("asset-budget", "Soft cap on decoded texture memory, logged not enforced (e.g. 256MiB)").Bytes()

	deadline = app.Flag("deadline", "Log a warning if rendering exceeds this duration").Duration()
)

func main() {
	kingpin.MustParse(app.Parse(os.Args[1:]))

	if *assetBudget > 0 {
		fmt.Fprintf(os.Stderr, "swraster: asset budget set to %s (soft cap, not enforced)\n", units.Base2Bytes(*assetBudget))
	}

	start := time.Now()
	var deadlineTimer *time.Timer
	if *deadline > 0 {
		deadlineTimer = time.AfterFunc(*deadline, func() {
			fmt.Fprintf(os.Stderr, "swraster: warning: deadline of %s elapsed, render still running\n", *deadline)
		})
	}

	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "swraster:", err)
		os.Exit(1)
	}

	if deadlineTimer != nil {
		deadlineTimer.Stop()
	}
	fmt.Fprintf(os.Stderr, "swraster: rendered in %s\n", time.Since(start))
}

func run() error {
	mesh, material, err := loadMesh(*meshPath)
	if err != nil {
		return err
	}

	if *lodFactor > 0 {
		mesh = loader.Simplify(mesh, *lodFactor)
	}

	eye, err := parseVector(*eyeFlag)
	if err != nil {
		return fmt.Errorf("--eye: %w", err)
	}
	target, err := parseVector(*targetFlag)
	if err != nil {
		return fmt.Errorf("--target: %w", err)
	}

	aspect := float64(*width) / float64(*height)
	fovRad := *fov * math.Pi / 180

	pipeline := raster.NewPipeline(*width, *height)
	pipeline.Clear(raster.Color{A: 1})

	model := raster.Identity()
	view := raster.LookAt(eye, target, raster.V(0, 0, 1))
	projection := raster.Perspective(fovRad, aspect, 0.01, 1000)

	forward := target.Sub(eye).Normalize()
	up := raster.V(0, 0, 1)
	up = raster.RemoveParallelComponent(up, forward).Normalize()
	right := forward.Cross(up).Normalize()

	var sh raster.Shader
	if material.BaseColorMap != nil {
		pbr := &shader.PBRShader{
			Model:          model,
			View:           view,
			Projection:     projection,
			CameraPosition: eye,
			Forward:        forward,
			Up:             up,
			Right:          right,
			NearPlane:      0.01,
			FovX:           fovRad * aspect,
			FovY:           fovRad,
			Material:       material,
		}
		sh = pbr
		for _, t := range []*raster.Texture{material.BaseColorMap, material.NormalMap, material.MetallicRoughnessOcclusionMap} {
			if t != nil {
				pipeline.Samplers = append(pipeline.Samplers, t)
			}
		}
	} else {
		sh = shader.NewSolidColorShader(projection.Mul(view.Mul(model)), raster.Color{R: 0.8, G: 0.8, B: 0.8, A: 1})
	}
	pipeline.Shader = sh

	cull := raster.CullCounterClockwise
	switch *cullFlag {
	case "none":
		cull = raster.CullNone
	case "cw":
		cull = raster.CullClockwise
	}

	pipeline.SubmitMesh(mesh, cull)

	if err := imageio.SaveImage(*outPath, pipeline.Backbuffer, 0); err != nil {
		return fmt.Errorf("save output: %w", err)
	}

	if *thumbnailPath != "" {
		if err := imageio.SaveThumbnail(*thumbnailPath, pipeline.Backbuffer, 256); err != nil {
			return fmt.Errorf("save thumbnail: %w", err)
		}
	}

	return nil
}

func loadMesh(path string) (*raster.Mesh, shader.PBRMaterial, error) {
	if path == "" {
		return raster.NewCube(), shader.PBRMaterial{}, nil
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".gltf", ".glb":
		meshes, materials, err := loader.LoadGLTF(path)
		if err != nil {
			return nil, shader.PBRMaterial{}, err
		}
		merged := raster.NewEmptyMesh()
		for _, m := range meshes {
			merged.Append(m)
		}
		var mat shader.PBRMaterial
		if len(materials) > 0 {
			mat = materials[0]
		}
		return merged, mat, nil
	default:
		mesh, err := loader.LoadMeshBuffer(path)
		if err != nil {
			return nil, shader.PBRMaterial{}, err
		}
		return mesh, shader.PBRMaterial{}, nil
	}
}

func parseVector(s string) (raster.Vector, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return raster.Vector{}, fmt.Errorf("expected x,y,z, got %q", s)
	}
	var v [3]float64
	for i, p := range parts {
		if _, err := fmt.Sscanf(strings.TrimSpace(p), "%g", &v[i]); err != nil {
			return raster.Vector{}, fmt.Errorf("invalid component %q: %w", p, err)
		}
	}
	return raster.V(v[0], v[1], v[2]), nil
}
