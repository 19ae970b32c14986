// Package assets embeds the built-in wireframe models.
package assets

import (
	"embed"
	"fmt"
	"image/color"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/wireframe/mesh"
	"github.com/pthm-cable/wireframe/objfile"
)

//go:embed models/*.obj
var models embed.FS

// Sphere and Cube are the built-in model names the demos rely on.
const (
	Sphere = "sphere"
	Cube   = "cube"
)

// Names lists the embedded models, sorted.
func Names() []string {
	entries, _ := fs.ReadDir(models, "models")
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, strings.TrimSuffix(e.Name(), ".obj"))
	}
	sort.Strings(names)
	return names
}

// Load resolves ref to OBJ geometry. A ref naming an existing file on disk is
// loaded from there; anything else is looked up among the embedded models.
func Load(ref string) (*objfile.Data, error) {
	if st, err := os.Stat(ref); err == nil && !st.IsDir() {
		return objfile.Load(ref)
	}
	name := strings.TrimSuffix(path.Base(ref), ".obj")
	f, err := models.Open("models/" + name + ".obj")
	if err != nil {
		return nil, fmt.Errorf("model %q: not a file and not built in: %w", ref, err)
	}
	defer f.Close()

	data, err := objfile.Parse(f)
	if err != nil {
		return nil, fmt.Errorf("parsing built-in model %s: %w", name, err)
	}
	return data, nil
}

// LoadMesh resolves ref with Load and builds a mesh from it.
func LoadMesh(ref string, size float64, c color.RGBA, position r3.Vec) (*mesh.Mesh, error) {
	data, err := Load(ref)
	if err != nil {
		return nil, err
	}
	return data.Mesh(size, c, position), nil
}
