// Package report renders the demo's console output.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/mattn/go-runewidth"

	"github.com/teslashibe/go-atlas/pkg/brain"
	"github.com/teslashibe/go-atlas/pkg/sensors"
)

const width = 62

var (
	rule   = strings.Repeat("═", width+1)
	boxTop = "╔" + strings.Repeat("═", width) + "╗"
	boxMid = "╠" + strings.Repeat("═", width) + "╣"
	boxBot = "╚" + strings.Repeat("═", width) + "╝"
)

// Printer writes report blocks to an io.Writer. The first write error is
// kept and every later call becomes a no-op; check Err when done.
type Printer struct {
	w   io.Writer
	err error
}

// New creates a Printer writing to w.
func New(w io.Writer) *Printer {
	return &Printer{w: w}
}

// Err returns the first write error, if any.
func (p *Printer) Err() error {
	return p.err
}

func (p *Printer) printf(format string, args ...any) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, format, args...)
}

func (p *Printer) line(s string) {
	p.printf("%s\n", s)
}

// boxed pads s to the inner box width in terminal columns; emoji take two.
func boxed(s string) string {
	pad := width - runewidth.StringWidth(s)
	if pad < 0 {
		pad = 0
	}
	return "║" + s + strings.Repeat(" ", pad) + "║"
}

// Banner prints the opening title box.
func (p *Printer) Banner() {
	p.line("")
	p.line(boxTop)
	p.line(boxed("     🤖 PHYSICAL AI & HUMANOID ROBOTICS — LIVE DEMO"))
	p.line(boxBot)
	p.line("")
}

// Initializing announces the sensor suite coming online.
func (p *Printer) Initializing() {
	p.line("🔌 Initializing sensor suite...")
}

// Step prints a numbered section header.
func (p *Printer) Step(n int, title string) {
	p.line(rule)
	p.printf("   STEP %d: %s\n", n, title)
	p.line(rule)
	p.line("")
}

// Sensors prints a summary of one bundle.
func (p *Printer) Sensors(b sensors.Bundle) {
	p.printf("📡 LiDAR: %d readings captured\n", len(b.Scan))
	p.printf("🎯 IMU: Gravity = %.3f m/s²\n", b.Inertial.Accel.Y)
	p.printf("👁️  Camera: %d objects detected:\n", len(b.Vision))
	for _, d := range b.Vision {
		p.printf("     • %s (%.0f%% confidence, %.1fm away)\n", d.Label, d.Confidence*100, d.Distance)
	}
}

// Analysis prints the decision summary.
func (p *Printer) Analysis(a brain.Analysis) {
	p.printf("   Stability: %s\n", pick(a.Stable, "✅ Stable", "❌ Unstable"))
	p.printf("   Path: %s\n", pick(a.PathClear, "✅ Clear", "⚠️ Blocked"))
	p.printf("   Nearest obstacle: %.2fm\n", a.NearestObstacle)
	p.printf("   Human nearby: %s\n", pick(a.PersonDetected, "👤 Yes", "❌ No"))
	p.printf("\n   💡 Recommendation: %s\n", a.Recommendation)
}

// Outcome prints one command and its result.
func (p *Printer) Outcome(cmd string, r brain.Result) {
	p.printf("   🎤 %q → %s %s %s\n", cmd, r.Action, pick(r.Success, "✅", "❌"), r.Note)
}

// Final prints the robot's name and state.
func (p *Printer) Final(name string, s brain.State) {
	p.printf("   🤖 %s\n", name)
	p.printf("   📍 Position: (%d, %d)\n", s.Position.X, s.Position.Y)
	p.printf("   📊 Status: %s\n", s.Status)
	p.printf("   🔋 Battery: %s%%\n", humanize.Ftoa(s.Battery))
	p.printf("   😊 Mood: %s\n", s.Mood)
}

// Closing prints the summary box.
func (p *Printer) Closing() {
	p.line("")
	p.line(boxTop)
	p.line(boxed("                    ✅ DEMO COMPLETE"))
	p.line(boxMid)
	p.line(boxed("  This demo showed you:"))
	p.line(boxed("    1. How robots collect sensor data (LiDAR, IMU, Camera)"))
	p.line(boxed("    2. How the brain fuses data and makes decisions"))
	p.line(boxed("    3. How voice commands become robot actions"))
	p.line(boxed(""))
	p.line(boxed("  Now go build something awesome! 🚀"))
	p.line(boxBot)
	p.line("")
}

// Blank prints an empty line.
func (p *Printer) Blank() {
	p.line("")
}

func pick(ok bool, yes, no string) string {
	if ok {
		return yes
	}
	return no
}
