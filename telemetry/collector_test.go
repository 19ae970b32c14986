package telemetry

import (
	"image/color"
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/wireframe/mesh"
	"github.com/pthm-cable/wireframe/physics"
	"github.com/pthm-cable/wireframe/scene"
)

func testBody(pos, vel r3.Vec) *physics.Body {
	m := mesh.New([]r3.Vec{{X: 1}, {X: -1}}, []mesh.Edge{{U: 0, V: 1}}, color.RGBA{A: 255}, pos)
	return physics.NewBody(m, 1, vel, r3.Vec{})
}

func TestCollector_Windows(t *testing.T) {
	s := scene.New(physics.DefaultParams())
	s.AddBody(testBody(r3.Vec{}, r3.Vec{X: 2}))
	s.AddBody(testBody(r3.Vec{X: 10}, r3.Vec{}))

	c := NewCollector("run", 1.0)
	if c.Pending() {
		t.Fatal("nothing recorded yet")
	}

	c.Record(physics.StepReport{BodyCollisions: 1, PlaneCollisions: 2}, 0.5)
	c.Record(physics.StepReport{Skipped: true}, 0.5)
	if c.ShouldFlush() {
		t.Fatal("window should not be complete after 0.5s")
	}
	c.Record(physics.StepReport{BodyCollisions: 1}, 0.5)
	if !c.ShouldFlush() {
		t.Fatal("window should be complete after 1.0s")
	}

	stats := c.Flush(s)

	if stats.RunID != "run" {
		t.Errorf("RunID = %q", stats.RunID)
	}
	if stats.WindowStartFrame != 0 || stats.WindowEndFrame != 3 {
		t.Errorf("frames = %d..%d, want 0..3", stats.WindowStartFrame, stats.WindowEndFrame)
	}
	if math.Abs(stats.SimTimeSec-1.0) > 1e-9 {
		t.Errorf("SimTimeSec = %v, want 1 (skipped steps do not count)", stats.SimTimeSec)
	}
	if stats.Bodies != 2 || stats.Planes != 0 {
		t.Errorf("counts = %d bodies %d planes", stats.Bodies, stats.Planes)
	}
	if stats.Steps != 2 || stats.SkippedSteps != 1 {
		t.Errorf("steps = %d skipped = %d", stats.Steps, stats.SkippedSteps)
	}
	if stats.BodyCollisions != 2 || stats.PlaneCollisions != 2 {
		t.Errorf("collisions = %d body %d plane", stats.BodyCollisions, stats.PlaneCollisions)
	}
	if math.Abs(stats.KineticEnergy-2) > 1e-9 {
		t.Errorf("KineticEnergy = %v, want 2", stats.KineticEnergy)
	}
	if math.Abs(stats.Momentum-2) > 1e-9 {
		t.Errorf("Momentum = %v, want 2", stats.Momentum)
	}
	if math.Abs(stats.SpeedMean-1) > 1e-9 || math.Abs(stats.SpeedStd-1) > 1e-9 {
		t.Errorf("speed mean/std = %v/%v, want 1/1", stats.SpeedMean, stats.SpeedStd)
	}
	if stats.Digest != FormatDigest(s.Digest()) {
		t.Errorf("Digest = %q", stats.Digest)
	}

	if c.ShouldFlush() || c.Pending() {
		t.Error("a new window starts after Flush")
	}
	next := c.Flush(s)
	if next.WindowStartFrame != 3 || next.Steps != 0 || next.BodyCollisions != 0 {
		t.Errorf("counters not reset: %+v", next)
	}
}

func TestCollector_DefaultWindow(t *testing.T) {
	c := NewCollector("run", 0)
	c.Record(physics.StepReport{}, 0.75)
	if c.ShouldFlush() {
		t.Error("non-positive windows fall back to one second")
	}
	c.Record(physics.StepReport{}, 0.25)
	if !c.ShouldFlush() {
		t.Error("expected flush after one second")
	}
	if c.Frame() != 2 {
		t.Errorf("Frame = %d, want 2", c.Frame())
	}
}
