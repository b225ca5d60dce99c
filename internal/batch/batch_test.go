package batch

import (
	"context"
	"encoding/json"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wireframe-renderer/internal/pipeline"
	"wireframe-renderer/internal/scene"
	"wireframe-renderer/internal/scenefile"
)

const axesYAML = `
camera: {projection: ortho}
positions:
  - name: axes
    transform:
      - scale: [0.5]
    model: {shape: axes}
`

func testConfig(t *testing.T, src string) Config {
	t.Helper()
	doc, err := scenefile.Parse([]byte(src), "yaml")
	require.NoError(t, err)
	return Config{
		Doc:        doc,
		Name:       "axes",
		Format:     "png",
		Width:      16,
		Height:     16,
		Background: scene.Black,
		Render:     pipeline.Options{Gamma: true},
		Frames:     1,
		Workers:    2,
	}
}

func lit(img *image.NRGBA) int {
	n := 0
	for i := 0; i < len(img.Pix); i += 4 {
		if img.Pix[i] != 0 || img.Pix[i+1] != 0 || img.Pix[i+2] != 0 {
			n++
		}
	}
	return n
}

func litIn(img *image.NRGBA, r image.Rectangle) int {
	n := 0
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			if c := img.NRGBAAt(x, y); c.R != 0 || c.G != 0 || c.B != 0 {
				n++
			}
		}
	}
	return n
}

func TestAngleAndFileName(t *testing.T) {
	cfg := Config{Name: "orbit", Format: "webp", Frames: 8, StartAngle: 10}
	assert.InDelta(t, 10, cfg.Angle(0), 1e-12)
	assert.InDelta(t, 55, cfg.Angle(1), 1e-12)
	assert.InDelta(t, 325, cfg.Angle(7), 1e-12)
	assert.Equal(t, "orbit_0003.webp", cfg.FileName(3))

	cfg.Frames = 1
	assert.InDelta(t, 10, cfg.Angle(5), 1e-12)
	assert.Equal(t, "orbit.webp", cfg.FileName(0))

	cfg.Name = ""
	assert.Equal(t, "frame.webp", cfg.FileName(0))
}

func TestRunWritesFrames(t *testing.T) {
	dir := t.TempDir()
	cfg := testConfig(t, axesYAML)
	cfg.OutputDir = dir
	cfg.Frames = 4

	results := Run(context.Background(), cfg)
	require.Len(t, results, 4)
	for i, r := range results {
		require.True(t, r.Success, r.Error)
		assert.Equal(t, i, r.Frame)
		assert.InDelta(t, 90*float64(i), r.Angle, 1e-12)
		assert.Equal(t, 1, r.Stats.Models)
		assert.Equal(t, 3, r.Stats.Segments)
		assert.Nil(t, r.Img)
		assert.FileExists(t, filepath.Join(dir, r.Image))
	}
	assert.Equal(t, "axes_0002.png", results[2].Image)
}

func TestRunKeepsImagesInMemory(t *testing.T) {
	cfg := testConfig(t, axesYAML)
	cfg.KeepImages = true
	cfg.Supersample = 3
	cfg.Annotate = true

	results := Run(context.Background(), cfg)
	require.Len(t, results, 1)
	r := results[0]
	require.True(t, r.Success, r.Error)
	assert.Empty(t, r.Image)
	require.NotNil(t, r.Img)
	assert.Equal(t, image.Rect(0, 0, 16, 16), r.Img.Bounds())
	assert.Positive(t, lit(r.Img))
}

func TestRenderFrameMatchesDirectRender(t *testing.T) {
	cfg := testConfig(t, axesYAML)
	r := pipeline.New(cfg.Render)

	a, stats, err := RenderFrame(&cfg, r, 0)
	require.NoError(t, err)
	b, _, err := RenderFrame(&cfg, r, 0)
	require.NoError(t, err)
	assert.Equal(t, a.Pix, b.Pix)
	assert.Equal(t, 3, stats.Segments)
	assert.Positive(t, lit(a))
}

func TestRenderFrameBackdrop(t *testing.T) {
	cfg := testConfig(t, axesYAML)
	bd := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	for i := 0; i < len(bd.Pix); i += 4 {
		copy(bd.Pix[i:], []uint8{200, 0, 0, 255})
	}
	cfg.Backdrop = bd

	img, _, err := RenderFrame(&cfg, pipeline.New(cfg.Render), 0)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 16, 16), img.Bounds())
	assert.Equal(t, color.NRGBA{200, 0, 0, 255}, img.NRGBAAt(0, 0))
	assert.Equal(t, color.NRGBA{200, 0, 0, 255}, img.NRGBAAt(15, 15))
}

func TestRenderFrameViewport(t *testing.T) {
	cfg := testConfig(t, axesYAML)
	cfg.Supersample = 2
	cfg.Viewport = image.Rect(8, 0, 16, 16)

	img, stats, err := RenderFrame(&cfg, pipeline.New(cfg.Render), 0)
	require.NoError(t, err)
	assert.Equal(t, 3, stats.Segments)

	assert.Zero(t, litIn(img, image.Rect(0, 0, 8, 16)), "nothing drawn outside the viewport")
	assert.Positive(t, litIn(img, cfg.Viewport))
}

func TestRunReportsBuildErrors(t *testing.T) {
	cfg := testConfig(t, `
positions:
  - model: {shape: dodecahedron}
`)
	cfg.Frames = 2
	results := Run(context.Background(), cfg)
	require.Len(t, results, 2)
	for _, r := range results {
		assert.False(t, r.Success)
		assert.Contains(t, r.Error, "dodecahedron")
	}
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	cfg := testConfig(t, axesYAML)
	cfg.OutputDir = t.TempDir()
	cfg.Frames = 3
	results := Run(ctx, cfg)
	require.Len(t, results, 3)
	for _, r := range results {
		assert.False(t, r.Success)
		assert.Equal(t, context.Canceled.Error(), r.Error)
	}
	entries, err := os.ReadDir(cfg.OutputDir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestWriteManifest(t *testing.T) {
	cfg := testConfig(t, axesYAML)
	results := []Result{
		{Frame: 0, Angle: 0, Image: "axes_0000.png", Success: true, Stats: pipeline.Stats{Models: 1, Segments: 3, Accepted: 3}},
		{Frame: 1, Angle: 180, Error: "boom"},
	}
	path := filepath.Join(t.TempDir(), "manifest.json")
	m := NewManifest("scene.yaml", cfg, results)
	m.Animation = "axes.webp"
	require.NoError(t, WriteManifest(path, m))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var got Manifest
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, "scene.yaml", got.Scene)
	assert.Equal(t, 16, got.Width)
	assert.Equal(t, "axes.webp", got.Animation)
	require.Len(t, got.Frames, 2)
	assert.Equal(t, "axes_0000.png", got.Frames[0].Image)
	assert.Equal(t, 3, got.Frames[0].Segments)
	assert.Equal(t, "boom", got.Frames[1].Error)
	assert.NotContains(t, string(data), "skipped_models")
}
