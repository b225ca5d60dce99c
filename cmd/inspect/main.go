package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"wireframe-renderer/internal/modelfile"
	"wireframe-renderer/internal/models"
	"wireframe-renderer/internal/scene"
	"wireframe-renderer/internal/scenefile"
)

func main() {
	verbose := flag.Bool("v", false, "Print every vertex, color and segment")
	shape := flag.String("shape", "", "Inspect a built-in shape instead of a file")
	params := flag.String("params", "", "Comma-separated shape parameters")
	dump := flag.Bool("dump", false, "Re-encode a scene file as YAML")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: inspect [flags] scene.yaml|model.obj|model.grs\n")
		fmt.Fprintf(os.Stderr, "       inspect -shape name [-params a,b,c]\n\nShapes:\n")
		for _, n := range models.Names() {
			fmt.Fprintf(os.Stderr, "  %s\n", models.Usage(n))
		}
		fmt.Fprintln(os.Stderr)
		flag.PrintDefaults()
	}
	flag.Parse()

	var err error
	switch {
	case *shape != "":
		err = inspectShape(*shape, *params, *verbose)
	case flag.NArg() == 1 && modelfile.Supported(flag.Arg(0)):
		err = inspectModelFile(flag.Arg(0), *verbose)
	case flag.NArg() == 1:
		err = inspectScene(flag.Arg(0), *verbose, *dump)
	default:
		flag.Usage()
		os.Exit(2)
	}
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}

func inspectShape(name, params string, verbose bool) error {
	var ps []float64
	for _, f := range strings.Split(params, ",") {
		if f = strings.TrimSpace(f); f == "" {
			continue
		}
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return fmt.Errorf("bad parameter %q: %w", f, err)
		}
		ps = append(ps, v)
	}
	m, err := models.ByName(name, ps)
	if err != nil {
		return err
	}
	printModel(m, "", verbose)
	return nil
}

func inspectModelFile(path string, verbose bool) error {
	m, err := modelfile.Load(path)
	if err != nil {
		return err
	}
	printModel(m, "", verbose)
	return nil
}

func inspectScene(path string, verbose, dump bool) error {
	doc, err := scenefile.Load(path)
	if err != nil {
		return err
	}
	if dump {
		return doc.Encode(os.Stdout)
	}
	s, err := doc.Build(0)
	if err != nil {
		return err
	}
	if verbose {
		fmt.Print(s.String())
		return nil
	}

	fmt.Print(s.Camera.String())
	bg, err := doc.BackgroundColor()
	if err != nil {
		return err
	}
	fmt.Printf("Background: %v\n", bg)

	positions, segments := 0, 0
	s.Walk(func(p *scene.Position, depth int) {
		positions++
		indent := strings.Repeat("  ", depth+1)
		state := ""
		if !p.Visible {
			state = " (hidden)"
		}
		fmt.Printf("%sPosition %d%s\n", indent[2:], positions-1, state)
		if p.Model != nil {
			printModel(p.Model, indent, false)
			segments += len(p.Model.Segments)
		}
	})
	fmt.Printf("Positions: %d, Segments: %d\n", positions, segments)
	if files := doc.Files(); len(files) > 0 {
		fmt.Printf("Files: %s\n", strings.Join(files, ", "))
	}
	return nil
}

func printModel(m *scene.Model, indent string, verbose bool) {
	if verbose {
		fmt.Print(m.String())
	} else {
		fmt.Printf("%sModel %q: verts=%d, colors=%d, segments=%d\n",
			indent, m.Name, len(m.Vertices), len(m.Colors), len(m.Segments))
	}
	if lo, hi, ok := m.Bounds(); ok {
		fmt.Printf("%s  BBox: X[%.3f, %.3f] Y[%.3f, %.3f] Z[%.3f, %.3f]\n",
			indent, lo[0], hi[0], lo[1], hi[1], lo[2], hi[2])
	}
	if empty := m.Empty(); len(empty) > 0 {
		fmt.Printf("%s  Empty: %s\n", indent, strings.Join(empty, ", "))
	}
	if err := m.Validate(); err != nil {
		fmt.Printf("%s  Invalid: %v\n", indent, err)
	}
}
