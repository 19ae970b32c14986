package objfile

import (
	"errors"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"
)

const square = `# a unit square
o square
v 0 0 0
v 1 0 0
v 1 1 0
v 0 1 0
vn 0 0 1
vt 0 0
usemtl none
s off
f 1/1/1 2//1 3 4/1
`

func TestParse(t *testing.T) {
	data, err := Parse(strings.NewReader(square))
	require.NoError(t, err)
	require.Len(t, data.Vertices, 4)
	assert.Equal(t, r3.Vec{X: 1, Y: 1}, data.Vertices[2])
	assert.Equal(t, [][]int{{0, 1, 2, 3}}, data.Faces)
}

func TestParseNegativeIndices(t *testing.T) {
	src := "v 0 0 0\nv 1 0 0\nv 0 1 0\nf -3 -2 -1\n"
	data, err := Parse(strings.NewReader(src))
	require.NoError(t, err)
	assert.Equal(t, [][]int{{0, 1, 2}}, data.Faces)
}

func TestParseNoTrailingNewline(t *testing.T) {
	data, err := Parse(strings.NewReader("v 1 2 3"))
	require.NoError(t, err)
	assert.Equal(t, []r3.Vec{{X: 1, Y: 2, Z: 3}}, data.Vertices)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"short vertex", "v 1 2\n"},
		{"bad coordinate", "v 1 x 3\n"},
		{"short face", "v 0 0 0\nv 1 0 0\nf 1 2\n"},
		{"zero index", "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 0 1 2\n"},
		{"out of range", "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1 2 4\n"},
		{"bad index", "v 0 0 0\nf a b c\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tt.src))
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrMalformed), "got %v", err)
		})
	}
}

func TestLoadMesh(t *testing.T) {
	path := filepath.Join(t.TempDir(), "square.obj")
	require.NoError(t, os.WriteFile(path, []byte(square), 0o644))

	m, err := LoadMesh(path, 2, color.RGBA{G: 255, A: 255}, r3.Vec{Z: -3})
	require.NoError(t, err)
	assert.Len(t, m.Edges, 4)
	assert.InDelta(t, -1, m.Vertices[0].X, 1e-9)
	assert.InDelta(t, 1, m.Vertices[2].Y, 1e-9)
	assert.Equal(t, r3.Vec{Z: -3}, m.Position)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.obj"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}
