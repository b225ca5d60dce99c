package main

import (
	"context"
	"flag"
	"fmt"
	"image"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"wireframe-renderer/internal/batch"
	"wireframe-renderer/internal/config"
	"wireframe-renderer/internal/imageio"
	"wireframe-renderer/internal/logging"
	"wireframe-renderer/internal/pipeline"
	"wireframe-renderer/internal/scene"
	"wireframe-renderer/internal/scenefile"
	"wireframe-renderer/internal/watch"
)

func main() {
	// CLI flags
	configFile := flag.String("config", "", "Path to a config.json or config.toml file")
	sceneFile := flag.String("scene", "", "Scene file (.yaml, .yml or .json); may also be given as the first argument")
	outputDir := flag.String("output", "", "Output directory (default: renders)")
	format := flag.String("format", "", "Output format: webp, png or tga (default: webp)")
	size := flag.Int("size", 0, "Output width and height in pixels (default: 256)")
	supersample := flag.Int("ss", 0, "Supersampling factor (default: 1)")
	antialias := flag.Bool("aa", false, "Antialiased lines")
	gamma := flag.Bool("gamma", true, "Gamma-encode line colors")
	background := flag.String("bg", "", "Background color #rrggbb (default: the scene's)")
	backdrop := flag.String("backdrop", "", "Image drawn behind every frame")
	viewport := flag.String("viewport", "", "Draw only into the region x,y,w,h of each frame")
	workers := flag.Int("workers", 0, "Number of worker goroutines (default: NumCPU)")
	frames := flag.Int("frames", 0, "Number of orbit frames over one full turn (default: 1)")
	animate := flag.Bool("animate", false, "Also write an animated WebP of all frames")
	annotate := flag.Bool("annotate", false, "Stamp frame number and statistics on each frame")
	logLevel := flag.String("log", "", "Log level: debug, info, warn or error")
	debug := flag.Bool("debug", false, "Trace every model through the pipeline")
	watchMode := flag.Bool("watch", false, "Render again whenever the scene or its model files change")

	flag.Parse()

	// Load config
	var cfg config.Config
	if *configFile != "" {
		var err error
		cfg, err = config.Load(*configFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
	}

	flags := config.Flags{
		Scene:       *sceneFile,
		OutputDir:   *outputDir,
		Format:      *format,
		Size:        *size,
		Supersample: *supersample,
		Background:  *background,
		Backdrop:    *backdrop,
		Workers:     *workers,
		Frames:      *frames,
		Animate:     *animate,
		Annotate:    *annotate,
		LogLevel:    *logLevel,
		Debug:       *debug,
	}
	if *viewport != "" {
		v, err := parseInts(*viewport)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: -viewport: %v\n", err)
			os.Exit(1)
		}
		flags.Viewport = v
	}
	if flags.Scene == "" && flag.NArg() > 0 {
		flags.Scene = flag.Arg(0)
	}
	// Boolean flags with a default only override the config when given.
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "aa":
			flags.Antialias = config.Bool(*antialias)
		case "gamma":
			flags.Gamma = config.Bool(*gamma)
		}
	})

	// CLI flags override config file
	cfg.Resolve(flags)
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		flag.Usage()
		os.Exit(1)
	}

	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	log, err := logging.New(os.Stderr, level, cfg.LogFormat)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if *watchMode {
		fmt.Printf("Watching %s (Ctrl-C to stop)\n", cfg.Scene)
		err := watch.Watch(ctx, 200*time.Millisecond, log, func() []string {
			paths, _, err := renderAll(ctx, &cfg, log)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			}
			return paths
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	_, failed, err := renderAll(ctx, &cfg, log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if failed > 0 {
		os.Exit(1)
	}
}

// renderAll renders every frame of the configured scene and writes the
// manifest. It returns the input files the render depended on and the
// number of frames that failed.
func renderAll(ctx context.Context, cfg *config.Config, log *slog.Logger) ([]string, int, error) {
	inputs := []string{cfg.Scene}
	if cfg.Backdrop != "" {
		inputs = append(inputs, cfg.Backdrop)
	}

	doc, err := scenefile.Load(cfg.Scene)
	if err != nil {
		return inputs, 0, err
	}
	inputs = append(inputs, doc.Files()...)

	bg, err := doc.BackgroundColor()
	if err != nil {
		return inputs, 0, err
	}
	if cfg.Background != "" {
		if bg, err = scene.ParseHex(cfg.Background); err != nil {
			return inputs, 0, fmt.Errorf("background: %w", err)
		}
	}

	var backdrop *image.NRGBA
	if cfg.Backdrop != "" {
		if backdrop, err = imageio.Load(cfg.Backdrop); err != nil {
			return inputs, 0, fmt.Errorf("backdrop: %w", err)
		}
	}

	name := strings.TrimSuffix(filepath.Base(cfg.Scene), filepath.Ext(cfg.Scene))

	// Print summary
	fmt.Printf("Wireframe renderer → %s\n", strings.ToUpper(cfg.Format))
	fmt.Printf("Scene: %s, Frames: %d, Size: %dx%d (x%d), Workers: %d\n",
		cfg.Scene, cfg.Frames, cfg.Width, cfg.Height, cfg.Supersample, cfg.Workers)
	fmt.Printf("Output: %s\n", cfg.OutputDir)
	fmt.Println("------------------------------------------------------------")

	start := time.Now()

	// Run batch
	batchCfg := batch.Config{
		Doc:         doc,
		Name:        name,
		OutputDir:   cfg.OutputDir,
		Format:      cfg.Format,
		Width:       cfg.Width,
		Height:      cfg.Height,
		Supersample: cfg.Supersample,
		Background:  bg,
		Backdrop:    backdrop,
		Viewport:    cfg.ViewportRect(),
		Render: pipeline.Options{
			Antialias: *cfg.Antialias,
			Gamma:     *cfg.Gamma,
			Debug:     cfg.Debug,
			Logger:    log,
		},
		Frames:     cfg.Frames,
		StartAngle: cfg.StartAngle,
		Annotate:   cfg.Annotate,
		KeepImages: cfg.Animate,
		Workers:    cfg.Workers,
		Logger:     log,
	}

	results := batch.Run(ctx, batchCfg)

	elapsed := time.Since(start)
	fmt.Println("------------------------------------------------------------")
	fmt.Printf("Done in %.1fs\n", elapsed.Seconds())

	// Count results
	var failed []batch.Result
	var total pipeline.Stats
	var images []*image.NRGBA
	for _, r := range results {
		total.Add(r.Stats)
		if !r.Success {
			failed = append(failed, r)
			continue
		}
		if r.Img != nil {
			images = append(images, r.Img)
		}
	}

	fmt.Printf("Rendered: %d/%d\n", len(results)-len(failed), len(results))
	fmt.Printf("Totals: %s\n", total)

	if len(failed) > 0 {
		fmt.Printf("\nFailed (%d):\n", len(failed))
		limit := min(len(failed), 20)
		for _, e := range failed[:limit] {
			fmt.Printf("  frame %d: %s\n", e.Frame, e.Error)
		}
	}

	manifest := batch.NewManifest(cfg.Scene, batchCfg, results)

	if cfg.Animate && len(images) > 0 {
		animPath := filepath.Join(cfg.OutputDir, name+"_anim.webp")
		if err := imageio.SaveAnimation(animPath, images, cfg.Delay(), bg); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: animation write failed: %v\n", err)
		} else {
			manifest.Animation = filepath.Base(animPath)
			fmt.Printf("Animation: %s\n", animPath)
		}
	}

	// Write manifest
	manifestPath := filepath.Join(cfg.OutputDir, "manifest.json")
	if err := os.MkdirAll(cfg.OutputDir, 0755); err != nil {
		return inputs, len(failed), err
	}
	if err := batch.WriteManifest(manifestPath, manifest); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: manifest write failed: %v\n", err)
	} else {
		fmt.Printf("Manifest: %s\n", manifestPath)
	}

	return inputs, len(failed), nil
}

// parseInts parses a comma-separated list of integers.
func parseInts(s string) ([]int, error) {
	var out []int
	for _, f := range strings.Split(s, ",") {
		n, err := strconv.Atoi(strings.TrimSpace(f))
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, nil
}
