package modelfile

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"wireframe-renderer/internal/mathutil"
	"wireframe-renderer/internal/scene"
)

// Extent is the drawing's bounding box as declared in a GRS header.
type Extent struct {
	Left, Top, Right, Bottom float64
}

// ParseGRS reads a GRS polyline drawing.
//
// The file starts with free-form comment lines, ended by a line beginning
// with '*'. Then come the extent (left top right bottom), the number of
// polylines, and each polyline as a point count followed by that many x y
// pairs. Every pair of consecutive points becomes one segment in z = 0.
func ParseGRS(r io.Reader) (*scene.Model, Extent, error) {
	var ext Extent
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)

	line := 0
	for {
		if !sc.Scan() {
			if err := sc.Err(); err != nil {
				return nil, ext, fmt.Errorf("modelfile: grs: %w", err)
			}
			return nil, ext, fmt.Errorf("modelfile: grs: missing '*' line ending the comments")
		}
		line++
		if strings.HasPrefix(sc.Text(), "*") {
			break
		}
	}

	tok := &tokens{sc: sc, line: line}
	var err error
	for _, f := range []*float64{&ext.Left, &ext.Top, &ext.Right, &ext.Bottom} {
		if *f, err = tok.float("extent"); err != nil {
			return nil, ext, err
		}
	}
	n, err := tok.count("polyline count")
	if err != nil {
		return nil, ext, err
	}

	m := scene.NewModel("GRS")
	for j := 0; j < n; j++ {
		k, err := tok.count(fmt.Sprintf("polyline %d point count", j))
		if err != nil {
			return nil, ext, err
		}
		for i := 0; i < k; i++ {
			x, err := tok.float(fmt.Sprintf("polyline %d x", j))
			if err != nil {
				return nil, ext, err
			}
			y, err := tok.float(fmt.Sprintf("polyline %d y", j))
			if err != nil {
				return nil, ext, err
			}
			m.AddVertex(mathutil.Point(x, y, 0))
			if i > 0 {
				last := len(m.Vertices) - 1
				m.AddSegment(scene.Segment(last-1, last))
			}
		}
	}
	return m, ext, nil
}

// tokens splits the remaining input into whitespace separated words and
// remembers the line each came from.
type tokens struct {
	sc    *bufio.Scanner
	line  int
	words []string
}

func (t *tokens) next(what string) (string, error) {
	for len(t.words) == 0 {
		if !t.sc.Scan() {
			if err := t.sc.Err(); err != nil {
				return "", fmt.Errorf("modelfile: grs: line %d: %w", t.line, err)
			}
			return "", fmt.Errorf("modelfile: grs: unexpected end of file reading %s", what)
		}
		t.line++
		t.words = strings.Fields(t.sc.Text())
	}
	w := t.words[0]
	t.words = t.words[1:]
	return w, nil
}

func (t *tokens) float(what string) (float64, error) {
	w, err := t.next(what)
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseFloat(w, 64)
	if err != nil {
		return 0, fmt.Errorf("modelfile: grs: line %d: bad %s %q", t.line, what, w)
	}
	return v, nil
}

func (t *tokens) count(what string) (int, error) {
	w, err := t.next(what)
	if err != nil {
		return 0, err
	}
	v, err := strconv.Atoi(w)
	if err != nil || v < 0 {
		return 0, fmt.Errorf("modelfile: grs: line %d: bad %s %q", t.line, what, w)
	}
	return v, nil
}
