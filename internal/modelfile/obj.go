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

// ParseOBJ reads the geometry of a Wavefront OBJ file as a wireframe.
//
// Only v, f and l records are used. A face becomes the closed loop through
// its vertices and a line element the open polyline. Indices are 1-based;
// negative indices count back from the most recent vertex. Texture and
// normal references (f 1/2/3) are ignored.
func ParseOBJ(r io.Reader) (*scene.Model, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)
	m := scene.NewModel("OBJ")

	line := 0
	for sc.Scan() {
		line++
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
			continue
		}
		switch fields[0] {
		case "v":
			if len(fields) < 4 {
				return nil, fmt.Errorf("modelfile: obj: line %d: vertex needs 3 coordinates", line)
			}
			var p [3]float64
			for k := range p {
				v, err := strconv.ParseFloat(fields[k+1], 64)
				if err != nil {
					return nil, fmt.Errorf("modelfile: obj: line %d: bad coordinate %q", line, fields[k+1])
				}
				p[k] = v
			}
			m.AddVertex(mathutil.Point(p[0], p[1], p[2]))

		case "f", "l":
			idx := make([]int, 0, len(fields)-1)
			for _, f := range fields[1:] {
				i, err := objIndex(f, len(m.Vertices))
				if err != nil {
					return nil, fmt.Errorf("modelfile: obj: line %d: %w", line, err)
				}
				idx = append(idx, i)
			}
			if len(idx) < 2 {
				return nil, fmt.Errorf("modelfile: obj: line %d: %s needs at least 2 vertices", line, fields[0])
			}
			for k := 0; k+1 < len(idx); k++ {
				m.AddSegment(scene.Segment(idx[k], idx[k+1]))
			}
			if fields[0] == "f" && len(idx) > 2 {
				m.AddSegment(scene.Segment(idx[len(idx)-1], idx[0]))
			}
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("modelfile: obj: line %d: %w", line, err)
	}
	return m, nil
}

// objIndex resolves one face or line reference to a 0-based vertex index.
func objIndex(ref string, nverts int) (int, error) {
	if i := strings.IndexByte(ref, '/'); i >= 0 {
		ref = ref[:i]
	}
	i, err := strconv.Atoi(ref)
	if err != nil {
		return 0, fmt.Errorf("bad vertex reference %q", ref)
	}
	switch {
	case i > 0:
		i--
	case i < 0:
		i += nverts
	default:
		return 0, fmt.Errorf("vertex index 0 is not valid")
	}
	if i < 0 || i >= nverts {
		return 0, fmt.Errorf("vertex reference %s out of range (have %d vertices)", ref, nverts)
	}
	return i, nil
}
