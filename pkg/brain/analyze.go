// Package brain turns one bundle of sensor readings into a safety
// recommendation and applies text commands to the robot state.
//
// Both operations are pure: Analyze depends only on its bundle, and Execute
// takes the current State by value and returns the next one.
package brain

import (
	"encoding/json"
	"math"

	"github.com/teslashibe/go-atlas/pkg/sensors"
)

// Decision thresholds. Both comparisons are strict.
const (
	MaxGravityDeviation = 0.3 // m/s², stable iff deviation < this
	MinClearDistance    = 1.5 // meters, clear iff nearest > this
)

// PersonLabel is the detection label that signals a human nearby.
const PersonLabel = "person"

// Recommendation is the single safety judgment for a bundle.
type Recommendation string

const (
	Stop    Recommendation = "STOP"
	Slow    Recommendation = "SLOW"
	Caution Recommendation = "CAUTION"
	Proceed Recommendation = "PROCEED"
)

// String renders the recommendation the way the console report shows it.
func (r Recommendation) String() string {
	switch r {
	case Stop:
		return "🔴 STOP — Stabilize first!"
	case Slow:
		return "🟡 SLOW — Human nearby"
	case Caution:
		return "🟡 CAUTION — Obstacle ahead"
	case Proceed:
		return "🟢 PROCEED — Path clear"
	}
	return string(r)
}

// Analysis is derived from one bundle; nothing is retained between calls.
type Analysis struct {
	Stable          bool           `json:"stable"`
	PathClear       bool           `json:"path_clear"`
	NearestObstacle float64        `json:"nearest_obstacle"`
	PersonDetected  bool           `json:"person_detected"`
	ObjectCount     int            `json:"object_count"`
	Recommendation  Recommendation `json:"recommendation"`
}

// MarshalJSON encodes an infinite NearestObstacle (empty scan) as null.
func (a Analysis) MarshalJSON() ([]byte, error) {
	type plain Analysis
	out := struct {
		plain
		NearestObstacle *float64 `json:"nearest_obstacle"`
	}{plain: plain(a)}
	if !math.IsInf(a.NearestObstacle, 0) {
		out.NearestObstacle = &a.NearestObstacle
	}
	return json.Marshal(out)
}

// UnmarshalJSON maps a null or missing nearest_obstacle back to +Inf.
func (a *Analysis) UnmarshalJSON(data []byte) error {
	type plain Analysis
	var in struct {
		plain
		NearestObstacle *float64 `json:"nearest_obstacle"`
	}
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	*a = Analysis(in.plain)
	a.NearestObstacle = math.Inf(1)
	if in.NearestObstacle != nil {
		a.NearestObstacle = *in.NearestObstacle
	}
	return nil
}

// Analyze computes stability, path clearance and human presence for b.
// An empty scan has no nearest obstacle (+Inf) and counts as clear.
func Analyze(b sensors.Bundle) Analysis {
	stable := IsStable(b.Inertial)
	nearest := NearestObstacle(b.Scan)
	clear := nearest > MinClearDistance
	person := PersonDetected(b.Vision)

	return Analysis{
		Stable:          stable,
		PathClear:       clear,
		NearestObstacle: nearest,
		PersonDetected:  person,
		ObjectCount:     len(b.Vision),
		Recommendation:  Recommend(stable, clear, person),
	}
}

// IsStable reports whether the y-axis reading is within MaxGravityDeviation
// of standard gravity.
func IsStable(s sensors.InertialSample) bool {
	return math.Abs(s.Accel.Y-sensors.Gravity) < MaxGravityDeviation
}

// NearestObstacle returns the minimum distance across the scan.
func NearestObstacle(scan []sensors.ScanEntry) float64 {
	nearest := math.Inf(1)
	for _, e := range scan {
		if e.Distance < nearest {
			nearest = e.Distance
		}
	}
	return nearest
}

// PersonDetected reports whether any detection is labelled exactly "person".
func PersonDetected(dets []sensors.Detection) bool {
	for _, d := range dets {
		if d.Label == PersonLabel {
			return true
		}
	}
	return false
}

// Recommend applies the priority chain: instability, then a human nearby,
// then a blocked path. Exactly one recommendation is produced.
func Recommend(stable, clear, person bool) Recommendation {
	switch {
	case !stable:
		return Stop
	case person:
		return Slow
	case !clear:
		return Caution
	default:
		return Proceed
	}
}
