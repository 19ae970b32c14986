package renderer

import (
	"image/color"
	"testing"

	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/wireframe/camera"
	"github.com/pthm-cable/wireframe/mesh"
)

type segment struct {
	a, b r2.Vec
	c    color.RGBA
}

type recorder struct {
	segments []segment
}

func (r *recorder) DrawLine(a, b r2.Vec, c color.RGBA) {
	r.segments = append(r.segments, segment{a, b, c})
}

func testCamera() *camera.Camera {
	return camera.New(camera.Options{
		Position:         r3.Vec{Z: 5},
		MaxVerticalAngle: 1.5,
		FieldOfView:      600,
		Width:            1920,
		Height:           1080,
	})
}

func TestDrawMeshProjectsEdges(t *testing.T) {
	red := color.RGBA{R: 255, A: 255}
	m := mesh.New([]r3.Vec{{X: -1}, {X: 1}, {Y: 1}}, []mesh.Edge{{U: 0, V: 1}, {U: 1, V: 2}}, red, r3.Vec{})

	rec := &recorder{}
	n := DrawMesh(testCamera(), m, rec)

	if n != 2 || len(rec.segments) != 2 {
		t.Fatalf("expected 2 segments, got n=%d recorded=%d", n, len(rec.segments))
	}
	first := rec.segments[0]
	if first.a != (r2.Vec{X: 840, Y: 540}) || first.b != (r2.Vec{X: 1080, Y: 540}) {
		t.Errorf("unexpected first segment %v -> %v", first.a, first.b)
	}
	if first.c != red {
		t.Errorf("expected mesh color, got %v", first.c)
	}
}

func TestDrawMeshUsesPosition(t *testing.T) {
	m := mesh.New([]r3.Vec{{}, {X: 1}}, []mesh.Edge{{U: 0, V: 1}}, color.RGBA{}, r3.Vec{X: 1})

	rec := &recorder{}
	DrawMesh(testCamera(), m, rec)

	if len(rec.segments) != 1 || rec.segments[0].a != (r2.Vec{X: 1080, Y: 540}) {
		t.Errorf("vertex 0 should be drawn at the mesh position, got %v", rec.segments)
	}
}

func TestDrawMeshClipsBehindCamera(t *testing.T) {
	// Second vertex is behind the camera, third is far off to the side.
	m := mesh.New([]r3.Vec{{}, {Z: 10}, {X: 100, Z: 4}}, []mesh.Edge{{U: 0, V: 1}, {U: 0, V: 2}}, color.RGBA{}, r3.Vec{})

	rec := &recorder{}
	if n := DrawMesh(testCamera(), m, rec); n != 0 {
		t.Errorf("expected no segments, got %d: %v", n, rec.segments)
	}
}

func TestWireframeReusesBuffer(t *testing.T) {
	rec := &recorder{}
	w := NewWireframe(testCamera(), rec)
	big := mesh.New(make([]r3.Vec, 10), nil, color.RGBA{}, r3.Vec{})
	small := mesh.New([]r3.Vec{{X: -1}, {X: 1}}, []mesh.Edge{{U: 0, V: 1}}, color.RGBA{}, r3.Vec{})

	w.Draw(big)
	if n := w.Draw(small); n != 1 {
		t.Errorf("expected 1 segment, got %d", n)
	}
	green := color.RGBA{G: 255, A: 255}
	w.DrawColored(small, green)
	if got := rec.segments[len(rec.segments)-1].c; got != green {
		t.Errorf("expected override color, got %v", got)
	}
}
