// Package batch renders the frames of an orbit animation in parallel.
package batch

import (
	"context"
	"fmt"
	"image"
	"log/slog"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/image/draw"

	"wireframe-renderer/internal/imageio"
	"wireframe-renderer/internal/logging"
	"wireframe-renderer/internal/pipeline"
	"wireframe-renderer/internal/postprocess"
	"wireframe-renderer/internal/raster"
	"wireframe-renderer/internal/scene"
	"wireframe-renderer/internal/scenefile"
)

// Config holds all shared resources for a batch run.
type Config struct {
	Doc         *scenefile.Document
	Name        string // output file stem
	OutputDir   string // empty: keep frames in memory only
	Format      string
	Width       int
	Height      int
	Supersample int
	Background  scene.Color
	Backdrop    *image.NRGBA    // optional image behind every frame
	Viewport    image.Rectangle // output-pixel region to draw into; empty: whole frame
	Render      pipeline.Options
	Frames      int
	StartAngle  float64
	Annotate    bool
	KeepImages  bool // return each frame's image in Result.Img
	Workers     int
	Logger      *slog.Logger
}

// Result holds the outcome of rendering one frame.
type Result struct {
	Frame   int
	Angle   float64
	Image   string // path relative to OutputDir
	Stats   pipeline.Stats
	Success bool
	Error   string
	Img     *image.NRGBA
}

// Angle returns the orbit angle in degrees of frame i.
func (c *Config) Angle(i int) float64 {
	if c.Frames <= 1 {
		return c.StartAngle
	}
	return c.StartAngle + 360*float64(i)/float64(c.Frames)
}

// FileName returns the output file name of frame i.
func (c *Config) FileName(i int) string {
	name := c.Name
	if name == "" {
		name = "frame"
	}
	if c.Frames <= 1 {
		return fmt.Sprintf("%s.%s", name, c.Format)
	}
	return fmt.Sprintf("%s_%04d.%s", name, i, c.Format)
}

// Run renders every frame using a worker pool. Each worker owns its
// renderer and every frame builds its own scene, so frames never share
// mutable state.
// Frames not started when ctx is cancelled are reported as failed.
func Run(ctx context.Context, cfg Config) []Result {
	log := logging.OrNop(cfg.Logger)
	total := max(cfg.Frames, 1)
	workers := max(cfg.Workers, 1)
	results := make([]Result, total)
	var processed atomic.Int64

	start := time.Now()

	// Progress reporter
	done := make(chan struct{})
	go func() {
		ticker := time.NewTicker(2 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				p := processed.Load()
				if p > 0 {
					elapsed := time.Since(start).Seconds()
					rate := float64(p) / elapsed
					log.Info("batch: progress", "done", p, "total", total, "frames_per_sec", fmt.Sprintf("%.1f", rate))
				}
			}
		}
	}()

	// Worker pool
	frameChan := make(chan int, workers*2)
	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r := pipeline.New(cfg.Render)
			for idx := range frameChan {
				results[idx] = processFrame(ctx, &cfg, r, idx)
				processed.Add(1)
			}
		}()
	}

	// Send work
	for i := 0; i < total; i++ {
		frameChan <- i
	}
	close(frameChan)

	wg.Wait()
	close(done)

	log.Info("batch: done", "frames", total, "elapsed", time.Since(start).Round(time.Millisecond))
	return results
}

func processFrame(ctx context.Context, cfg *Config, r *pipeline.Renderer, i int) Result {
	res := Result{Frame: i, Angle: cfg.Angle(i)}
	if err := ctx.Err(); err != nil {
		res.Error = err.Error()
		return res
	}

	img, stats, err := RenderFrame(cfg, r, res.Angle)
	res.Stats = stats
	if err != nil {
		res.Error = err.Error()
		return res
	}

	if cfg.Annotate {
		postprocess.Annotate(img, []string{
			fmt.Sprintf("frame %d/%d  %.1f deg", i+1, max(cfg.Frames, 1), res.Angle),
			fmt.Sprintf("segs %d clip %d rej %d", stats.Segments, stats.Clipped, stats.Rejected),
		}, contrast(cfg.Background))
	}

	if cfg.OutputDir != "" {
		res.Image = cfg.FileName(i)
		if err := imageio.Save(filepath.Join(cfg.OutputDir, res.Image), img); err != nil {
			res.Error = err.Error()
			return res
		}
	}
	if cfg.KeepImages {
		res.Img = img
	}
	res.Success = true
	return res
}

// RenderFrame builds the scene at the given orbit angle and renders it at
// Supersample times the output size, downsampling afterwards.
func RenderFrame(cfg *Config, r *pipeline.Renderer, angle float64) (*image.NRGBA, pipeline.Stats, error) {
	s, err := cfg.Doc.Build(angle)
	if err != nil {
		return nil, pipeline.Stats{}, err
	}

	ss := max(cfg.Supersample, 1)
	rw, rh := cfg.Width*ss, cfg.Height*ss

	// Allocate framebuffer
	var fb *raster.FrameBuffer
	if cfg.Backdrop != nil {
		bd := image.NewNRGBA(image.Rect(0, 0, rw, rh))
		draw.ApproxBiLinear.Scale(bd, bd.Bounds(), cfg.Backdrop, cfg.Backdrop.Bounds(), draw.Src, nil)
		fb = raster.NewFrameBufferFromImage(bd, cfg.Background)
	} else {
		fb = raster.NewFrameBuffer(rw, rh, cfg.Background)
	}

	vp := fb.View()
	if !cfg.Viewport.Empty() {
		v := cfg.Viewport
		vp = fb.NewView(v.Min.X*ss, v.Min.Y*ss, v.Dx()*ss, v.Dy()*ss, cfg.Background)
	}
	stats := r.Render(s, vp)

	img := fb.Image()
	if ss > 1 {
		img = postprocess.Downsample(img, cfg.Width, cfg.Height)
	}
	return img, stats, nil
}

// contrast picks black or white, whichever stands out against bg.
func contrast(bg scene.Color) scene.Color {
	if 0.299*bg[0]+0.587*bg[1]+0.114*bg[2] > 0.5 {
		return scene.Black
	}
	return scene.White
}
