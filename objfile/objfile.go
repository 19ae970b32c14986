// Package objfile reads the geometry subset of Wavefront OBJ files: vertex
// positions ("v") and polygon faces ("f"). Everything else in the format is
// skipped.
package objfile

import (
	"bufio"
	"errors"
	"fmt"
	"image/color"
	"io"
	"os"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/wireframe/mesh"
)

// ErrMalformed is wrapped by every syntax error returned from Parse.
var ErrMalformed = errors.New("malformed obj")

// Data is the decoded geometry. Face indices are 0-based.
type Data struct {
	Vertices []r3.Vec
	Faces    [][]int
}

type decoder struct {
	data Data
	line int
}

// Parse decodes OBJ text from r.
func Parse(r io.Reader) (*Data, error) {
	dec := &decoder{}
	bufin := bufio.NewReader(r)
	dec.line = 1
	for {
		line, err := bufin.ReadString('\n')
		if err != nil && err != io.EOF {
			return nil, fmt.Errorf("reading obj: %w", err)
		}
		if perr := dec.parseLine(line); perr != nil {
			return nil, perr
		}
		if err == io.EOF {
			break
		}
		dec.line++
	}

	n := len(dec.data.Vertices)
	for _, f := range dec.data.Faces {
		for _, idx := range f {
			if idx < 0 || idx >= n {
				return nil, fmt.Errorf("%w: face index %d out of range (%d vertices)", ErrMalformed, idx+1, n)
			}
		}
	}
	return &dec.data, nil
}

func (dec *decoder) parseLine(line string) error {
	fields := strings.Fields(line)
	if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
		return nil
	}
	switch fields[0] {
	case "v":
		return dec.parseVertex(fields[1:])
	case "f":
		return dec.parseFace(fields[1:])
	}
	return nil
}

func (dec *decoder) parseVertex(fields []string) error {
	if len(fields) < 3 {
		return dec.formatError("vertex with less than 3 coordinates")
	}
	var xyz [3]float64
	for i := range xyz {
		val, err := strconv.ParseFloat(fields[i], 64)
		if err != nil {
			return dec.formatError(fmt.Sprintf("bad vertex coordinate %q", fields[i]))
		}
		xyz[i] = val
	}
	dec.data.Vertices = append(dec.data.Vertices, r3.Vec{X: xyz[0], Y: xyz[1], Z: xyz[2]})
	return nil
}

func (dec *decoder) parseFace(fields []string) error {
	if len(fields) < 3 {
		return dec.formatError("face with less than 3 vertices")
	}
	face := make([]int, len(fields))
	for pos, f := range fields {
		// v, v/vt, v//vn or v/vt/vn; only the position index matters.
		vfield, _, _ := strings.Cut(f, "/")
		val, err := strconv.Atoi(vfield)
		if err != nil {
			return dec.formatError(fmt.Sprintf("bad face index %q", f))
		}
		switch {
		case val > 0:
			face[pos] = val - 1
		case val < 0:
			// Relative to the last vertex parsed so far.
			face[pos] = len(dec.data.Vertices) + val
		default:
			return dec.formatError("face vertex index equal to 0")
		}
	}
	dec.data.Faces = append(dec.data.Faces, face)
	return nil
}

func (dec *decoder) formatError(msg string) error {
	return fmt.Errorf("%w: %s in line %d", ErrMalformed, msg, dec.line)
}

// Load opens and parses the OBJ file at path.
func Load(path string) (*Data, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening obj file: %w", err)
	}
	defer f.Close()

	data, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return data, nil
}

// Mesh builds a centred mesh of the given size from decoded data.
func (d *Data) Mesh(size float64, c color.RGBA, position r3.Vec) *mesh.Mesh {
	return mesh.FromFaces(d.Vertices, d.Faces, size, c, position)
}

// LoadMesh loads the OBJ file at path and builds a mesh from it.
func LoadMesh(path string, size float64, c color.RGBA, position r3.Vec) (*mesh.Mesh, error) {
	data, err := Load(path)
	if err != nil {
		return nil, err
	}
	return data.Mesh(size, c, position), nil
}
