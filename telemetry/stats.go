package telemetry

import (
	"fmt"
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated statistics for a window of simulated time.
type WindowStats struct {
	RunID            string  `csv:"run_id"`
	WindowStartFrame int32   `csv:"-"`
	WindowEndFrame   int32   `csv:"window_end"`
	SimTimeSec       float64 `csv:"sim_time"`

	// Scene contents at window end
	Bodies int `csv:"bodies"`
	Planes int `csv:"planes"`
	Props  int `csv:"props"`

	// Totals at window end
	KineticEnergy float64 `csv:"kinetic_energy"`
	Momentum      float64 `csv:"momentum"` // magnitude of the summed momentum

	SpeedMean float64 `csv:"speed_mean"`
	SpeedStd  float64 `csv:"speed_std"`
	SpeedP10  float64 `csv:"speed_p10"`
	SpeedP50  float64 `csv:"speed_p50"`
	SpeedP90  float64 `csv:"speed_p90"`

	// Events during the window
	Steps           int `csv:"steps"`
	SkippedSteps    int `csv:"skipped_steps"`
	BodyCollisions  int `csv:"body_collisions"`
	PlaneCollisions int `csv:"plane_collisions"`

	Digest string `csv:"digest"` // scene fingerprint, hex
}

// Percentile calculates the p-th percentile of a sorted slice.
// p should be in [0, 1]. Returns 0 if slice is empty.
func Percentile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if p <= 0 {
		return sorted[0]
	}
	if p >= 1 {
		return sorted[n-1]
	}

	idx := p * float64(n-1)
	lo := int(idx)
	if lo+1 >= n {
		return sorted[n-1]
	}
	frac := idx - float64(lo)
	return sorted[lo]*(1-frac) + sorted[lo+1]*frac
}

// ComputeSpeedStats returns the population mean and standard deviation of
// values along with their 10th, 50th and 90th percentiles.
func ComputeSpeedStats(values []float64) (mean, std, p10, p50, p90 float64) {
	if len(values) == 0 {
		return 0, 0, 0, 0, 0
	}
	mean, std = stat.PopMeanStdDev(values, nil)

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	return mean, std, Percentile(sorted, 0.10), Percentile(sorted, 0.50), Percentile(sorted, 0.90)
}

// FormatDigest renders a scene digest the way it appears in logs and CSV.
func FormatDigest(d uint64) string {
	return fmt.Sprintf("%016x", d)
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("window_start", int(s.WindowStartFrame)),
		slog.Int("window_end", int(s.WindowEndFrame)),
		slog.Float64("sim_time", s.SimTimeSec),
		slog.Int("bodies", s.Bodies),
		slog.Int("planes", s.Planes),
		slog.Int("props", s.Props),
		slog.Float64("kinetic_energy", s.KineticEnergy),
		slog.Float64("momentum", s.Momentum),
		slog.Float64("speed_mean", s.SpeedMean),
		slog.Float64("speed_std", s.SpeedStd),
		slog.Float64("speed_p50", s.SpeedP50),
		slog.Int("steps", s.Steps),
		slog.Int("skipped_steps", s.SkippedSteps),
		slog.Int("body_collisions", s.BodyCollisions),
		slog.Int("plane_collisions", s.PlaneCollisions),
		slog.String("digest", s.Digest),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats", "run_id", s.RunID, "window", s)
}
