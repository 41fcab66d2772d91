package report

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/mattn/go-runewidth"

	"github.com/teslashibe/go-atlas/pkg/brain"
	"github.com/teslashibe/go-atlas/pkg/sensors"
)

func TestPrinter_Final(t *testing.T) {
	tests := []struct {
		name    string
		battery float64
		want    string
	}{
		{"whole", 100, "🔋 Battery: 100%"},
		{"half", 99.5, "🔋 Battery: 99.5%"},
		{"negative", -2.5, "🔋 Battery: -2.5%"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var buf bytes.Buffer
			s := brain.NewState()
			s.Battery = tc.battery
			s.Position = brain.Position{X: 1, Y: -1}

			New(&buf).Final("Atlas-7", s)

			out := buf.String()
			if !strings.Contains(out, tc.want) {
				t.Errorf("output missing %q:\n%s", tc.want, out)
			}
			if !strings.Contains(out, "📍 Position: (1, -1)") {
				t.Errorf("output missing position:\n%s", out)
			}
		})
	}
}

func TestPrinter_Sensors(t *testing.T) {
	var buf bytes.Buffer
	b := sensors.Bundle{
		Scan:     make([]sensors.ScanEntry, 24),
		Inertial: sensors.InertialSample{Accel: sensors.Vec3{Y: -9.8123}},
		Vision: []sensors.Detection{
			{Label: "person", Confidence: 0.876, Distance: 2.34},
		},
	}

	New(&buf).Sensors(b)

	out := buf.String()
	for _, want := range []string{
		"📡 LiDAR: 24 readings captured",
		"Gravity = -9.812 m/s²",
		"1 objects detected",
		"• person (88% confidence, 2.3m away)",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestPrinter_Analysis(t *testing.T) {
	var buf bytes.Buffer
	New(&buf).Analysis(brain.Analysis{
		Stable:          true,
		PathClear:       false,
		NearestObstacle: 0.91234,
		Recommendation:  brain.Caution,
	})

	out := buf.String()
	for _, want := range []string{
		"Stability: ✅ Stable",
		"Path: ⚠️ Blocked",
		"Nearest obstacle: 0.91m",
		"Human nearby: ❌ No",
		"Recommendation: 🟡 CAUTION — Obstacle ahead",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestPrinter_Outcome(t *testing.T) {
	var buf bytes.Buffer
	p := New(&buf)
	p.Outcome("dance", brain.Result{Action: brain.ActionDance, Success: true, Note: brain.DanceNote})
	p.Outcome("blah", brain.Result{Action: brain.ActionUnknown})

	out := buf.String()
	if !strings.Contains(out, `"dance" → DANCE ✅ 🕺 Robot is vibing!`) {
		t.Errorf("missing dance outcome:\n%s", out)
	}
	if !strings.Contains(out, `"blah" → UNKNOWN ❌`) {
		t.Errorf("missing unknown outcome:\n%s", out)
	}
}

type failWriter struct{ n int }

func (f *failWriter) Write(p []byte) (int, error) {
	f.n++
	return 0, errors.New("disk full")
}

func TestPrinter_StickyError(t *testing.T) {
	w := &failWriter{}
	p := New(w)
	p.Banner()
	p.Closing()

	if p.Err() == nil {
		t.Fatal("expected write error")
	}
	if w.n != 1 {
		t.Errorf("writer called %d times after failure, want 1", w.n)
	}
}

func TestBoxed_Width(t *testing.T) {
	tests := []struct {
		name string
		in   string
		pad  int
	}{
		{"ascii", "abc", width - 3},
		{"empty", "", width},
		{"trailing emoji", "  Now go build something awesome! 🚀", 26},
		{"leading emoji", "                    ✅ DEMO COMPLETE", 26},
		{"too long", strings.Repeat("x", width+5), 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			want := "║" + tc.in + strings.Repeat(" ", tc.pad) + "║"
			if got := boxed(tc.in); got != want {
				t.Errorf("boxed(%q) = %q, want %q", tc.in, got, want)
			}
		})
	}
}

func TestPrinter_BoxesAligned(t *testing.T) {
	var buf bytes.Buffer
	p := New(&buf)
	p.Banner()
	p.Closing()

	for _, l := range strings.Split(buf.String(), "\n") {
		if l == "" {
			continue
		}
		if w := runewidth.StringWidth(l); w != width+2 {
			t.Errorf("line %q is %d columns, want %d", l, w, width+2)
		}
	}
}

func TestPrinter_Initializing(t *testing.T) {
	var buf bytes.Buffer
	New(&buf).Initializing()
	if got := buf.String(); got != "🔌 Initializing sensor suite...\n" {
		t.Errorf("Initializing() wrote %q", got)
	}
}
