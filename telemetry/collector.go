// Package telemetry collects per-window simulation statistics and frame
// timings, and writes them as CSV next to the run's config.
package telemetry

import (
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/wireframe/physics"
	"github.com/pthm-cable/wireframe/scene"
)

// Collector accumulates step reports within windows of simulated time and
// produces WindowStats.
type Collector struct {
	runID  string
	window float64 // seconds of simulated time per window

	frame       int32
	simTime     float64
	windowFrame int32
	windowTime  float64

	steps           int
	skipped         int
	bodyCollisions  int
	planeCollisions int

	speeds []float64
}

// NewCollector creates a collector that flushes every windowSec seconds of
// simulated time. Skipped steps do not advance simulated time.
func NewCollector(runID string, windowSec float64) *Collector {
	if windowSec <= 0 {
		windowSec = 1
	}
	return &Collector{runID: runID, window: windowSec}
}

// Record adds one frame's step report.
func (c *Collector) Record(r physics.StepReport, dt float64) {
	c.frame++
	if r.Skipped {
		c.skipped++
		return
	}
	c.steps++
	c.simTime += dt
	c.bodyCollisions += r.BodyCollisions
	c.planeCollisions += r.PlaneCollisions
}

// Frame returns the number of frames recorded.
func (c *Collector) Frame() int32 {
	return c.frame
}

// SimTime returns the simulated time so far.
func (c *Collector) SimTime() float64 {
	return c.simTime
}

// Pending reports whether frames were recorded since the last Flush.
func (c *Collector) Pending() bool {
	return c.frame > c.windowFrame
}

// ShouldFlush reports whether the current window is complete.
func (c *Collector) ShouldFlush() bool {
	return c.simTime-c.windowTime >= c.window
}

// Flush produces the stats for the current window from the scene's state and
// starts the next window.
func (c *Collector) Flush(s *scene.Scene) WindowStats {
	counts := s.Counts()
	bodies := s.Bodies()

	var energy float64
	var momentum r3.Vec
	c.speeds = c.speeds[:0]
	for _, b := range bodies {
		energy += b.KineticEnergy()
		momentum = r3.Add(momentum, b.Momentum())
		c.speeds = append(c.speeds, b.Speed())
	}
	mean, std, p10, p50, p90 := ComputeSpeedStats(c.speeds)

	stats := WindowStats{
		RunID:            c.runID,
		WindowStartFrame: c.windowFrame,
		WindowEndFrame:   c.frame,
		SimTimeSec:       c.simTime,

		Bodies: counts.Bodies,
		Planes: counts.Planes,
		Props:  counts.Props,

		KineticEnergy: energy,
		Momentum:      r3.Norm(momentum),

		SpeedMean: mean,
		SpeedStd:  std,
		SpeedP10:  p10,
		SpeedP50:  p50,
		SpeedP90:  p90,

		Steps:           c.steps,
		SkippedSteps:    c.skipped,
		BodyCollisions:  c.bodyCollisions,
		PlaneCollisions: c.planeCollisions,

		Digest: FormatDigest(s.Digest()),
	}

	c.windowFrame = c.frame
	c.windowTime = c.simTime
	c.steps = 0
	c.skipped = 0
	c.bodyCollisions = 0
	c.planeCollisions = 0

	return stats
}
