// Command objstat prints the wireframe statistics of OBJ models as CSV: the
// vertex and deduplicated edge counts, and the collision radius a body built
// from the model would get.
//
// Usage: go run ./cmd/objstat [-size 1] [model.obj | builtin-name ...]
//
// With no arguments every built-in model is listed.
package main

import (
	"flag"
	"image/color"
	"log"
	"os"

	"github.com/gocarina/gocsv"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/wireframe/assets"
	"github.com/pthm-cable/wireframe/physics"
)

// modelStats is one CSV row.
type modelStats struct {
	Model    string  `csv:"model"`
	Vertices int     `csv:"vertices"`
	Faces    int     `csv:"faces"`
	Edges    int     `csv:"edges"`
	Size     float64 `csv:"size"`
	Radius   float64 `csv:"radius"`
}

func main() {
	size := flag.Float64("size", 1, "Scale applied when building the mesh")
	flag.Parse()

	refs := flag.Args()
	if len(refs) == 0 {
		refs = assets.Names()
	}

	rows := make([]modelStats, 0, len(refs))
	for _, ref := range refs {
		data, err := assets.Load(ref)
		if err != nil {
			log.Fatalf("loading %s: %v", ref, err)
		}
		m := data.Mesh(*size, color.RGBA{A: 255}, r3.Vec{})
		rows = append(rows, modelStats{
			Model:    ref,
			Vertices: len(m.Vertices),
			Faces:    len(data.Faces),
			Edges:    len(m.Edges),
			Size:     *size,
			Radius:   physics.AverageRadius(m.Vertices),
		})
	}

	if err := gocsv.Marshal(rows, os.Stdout); err != nil {
		log.Fatalf("writing csv: %v", err)
	}
}
