package brain

import (
	"encoding/json"
	"math"
	"strings"
	"testing"

	"github.com/teslashibe/go-atlas/pkg/sensors"
)

func bundle(y float64, distances []float64, labels ...string) sensors.Bundle {
	b := sensors.Bundle{Inertial: sensors.InertialSample{Accel: sensors.Vec3{Y: y}}}
	for i, d := range distances {
		b.Scan = append(b.Scan, sensors.ScanEntry{Angle: i * sensors.ScanStep, Distance: d})
	}
	for _, l := range labels {
		b.Vision = append(b.Vision, sensors.Detection{Label: l, Confidence: 0.9, Distance: 2})
	}
	return b
}

func TestIsStable(t *testing.T) {
	tests := []struct {
		name string
		y    float64
		want bool
	}{
		{"exact gravity", -9.81, true},
		{"small noise", -9.79, true},
		{"just inside", -9.5101, true},
		{"boundary is unstable", -9.51, false},
		{"well below gravity", -10.2, false},
		{"far off", -5.0, false},
		{"free fall", 0, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := sensors.InertialSample{Accel: sensors.Vec3{Y: tc.y}}
			if got := IsStable(s); got != tc.want {
				t.Errorf("IsStable(y=%v) = %v, want %v", tc.y, got, tc.want)
			}
		})
	}
}

func TestNearestObstacle(t *testing.T) {
	got := NearestObstacle(bundle(0, []float64{4, 0.9, 3.2}).Scan)
	if got != 0.9 {
		t.Errorf("NearestObstacle = %v, want 0.9", got)
	}

	if got := NearestObstacle(nil); !math.IsInf(got, 1) {
		t.Errorf("NearestObstacle(nil) = %v, want +Inf", got)
	}
}

func TestAnalyze_PathClear(t *testing.T) {
	tests := []struct {
		name      string
		distances []float64
		want      bool
	}{
		{"all far", []float64{3, 4, 5}, true},
		{"threshold is blocked", []float64{1.5, 4}, false},
		{"just above", []float64{1.5001, 4}, true},
		{"obstacle", []float64{0.8, 6}, false},
		{"empty scan", nil, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			a := Analyze(bundle(sensors.Gravity, tc.distances))
			if a.PathClear != tc.want {
				t.Errorf("PathClear = %v, want %v (nearest %.3f)", a.PathClear, tc.want, a.NearestObstacle)
			}
		})
	}
}

func TestPersonDetected(t *testing.T) {
	tests := []struct {
		name   string
		labels []string
		want   bool
	}{
		{"none", nil, false},
		{"objects only", []string{"chair", "cup"}, false},
		{"person", []string{"chair", "person"}, true},
		{"case sensitive", []string{"Person", "PERSON"}, false},
		{"substring does not count", []string{"personal"}, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			a := Analyze(bundle(sensors.Gravity, []float64{5}, tc.labels...))
			if a.PersonDetected != tc.want {
				t.Errorf("PersonDetected = %v, want %v", a.PersonDetected, tc.want)
			}
			if a.ObjectCount != len(tc.labels) {
				t.Errorf("ObjectCount = %d, want %d", a.ObjectCount, len(tc.labels))
			}
		})
	}
}

func TestRecommend_Priority(t *testing.T) {
	tests := []struct {
		stable, clear, person bool
		want                  Recommendation
	}{
		{false, true, false, Stop},
		{false, false, true, Stop},
		{false, false, false, Stop},
		{false, true, true, Stop},
		{true, true, true, Slow},
		{true, false, true, Slow},
		{true, false, false, Caution},
		{true, true, false, Proceed},
	}

	for _, tc := range tests {
		if got := Recommend(tc.stable, tc.clear, tc.person); got != tc.want {
			t.Errorf("Recommend(stable=%v, clear=%v, person=%v) = %s, want %s",
				tc.stable, tc.clear, tc.person, got, tc.want)
		}
	}
}

func TestAnalyze_SeededBundles(t *testing.T) {
	// Generated scans always carry the obstacle window, so the path is never clear.
	for seed := uint64(0); seed < 50; seed++ {
		b := sensors.NewSeeded(seed).Read()
		a := Analyze(b)

		if !a.Stable {
			t.Errorf("seed %d: generated inertial sample should be stable (y=%.3f)", seed, b.Inertial.Accel.Y)
		}
		if a.PathClear {
			t.Errorf("seed %d: path should be blocked, nearest %.3f", seed, a.NearestObstacle)
		}
		want := Caution
		if a.PersonDetected {
			want = Slow
		}
		if a.Recommendation != want {
			t.Errorf("seed %d: recommendation %s, want %s", seed, a.Recommendation, want)
		}
	}
}

func TestRecommendation_String(t *testing.T) {
	if got := Stop.String(); got != "🔴 STOP — Stabilize first!" {
		t.Errorf("Stop.String() = %q", got)
	}
	if got := Proceed.String(); got != "🟢 PROCEED — Path clear" {
		t.Errorf("Proceed.String() = %q", got)
	}
	if got := Recommendation("OTHER").String(); got != "OTHER" {
		t.Errorf("unknown recommendation = %q", got)
	}
}

func TestAnalysis_MarshalJSON(t *testing.T) {
	data, err := json.Marshal(Analyze(bundle(sensors.Gravity, nil)))
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if !strings.Contains(string(data), `"nearest_obstacle":null`) {
		t.Errorf("empty scan should encode null nearest obstacle: %s", data)
	}

	data, _ = json.Marshal(Analyze(bundle(sensors.Gravity, []float64{2.5})))
	if !strings.Contains(string(data), `"nearest_obstacle":2.5`) || !strings.Contains(string(data), `"recommendation":"PROCEED"`) {
		t.Errorf("unexpected encoding: %s", data)
	}
}

func TestAnalysis_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name    string
		scan    []float64
		nearest float64
	}{
		{"empty scan", nil, math.Inf(1)},
		{"blocked", []float64{0.9, 4}, 0.9},
		{"clear", []float64{2.5}, 2.5},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			sent := Analyze(bundle(sensors.Gravity, tc.scan))
			data, err := json.Marshal(sent)
			if err != nil {
				t.Fatalf("Marshal: %v", err)
			}

			var got Analysis
			if err := json.Unmarshal(data, &got); err != nil {
				t.Fatalf("Unmarshal: %v", err)
			}
			if got != sent {
				t.Errorf("decoded %+v, want %+v", got, sent)
			}
			if got.NearestObstacle != tc.nearest {
				t.Errorf("NearestObstacle = %v, want %v", got.NearestObstacle, tc.nearest)
			}
			if got.PathClear != (got.NearestObstacle > MinClearDistance) {
				t.Errorf("PathClear = %v disagrees with nearest %v", got.PathClear, got.NearestObstacle)
			}
		})
	}
}
