// Package demo runs the single-shot sensor-to-decision walkthrough:
// read sensors, analyze, apply a fixed command list, report the final state.
package demo

import (
	"io"

	"github.com/teslashibe/go-atlas/pkg/brain"
	"github.com/teslashibe/go-atlas/pkg/report"
	"github.com/teslashibe/go-atlas/pkg/sensors"
)

// RobotName is shown in the final state block.
const RobotName = "Atlas-7"

// DefaultCommands is the fixed command list the demo applies.
var DefaultCommands = []string{"move forward", "turn left", "dance", "stop"}

// Run executes the demo against src, writing the report to w, and returns the
// final robot state. The only error is a failed write.
func Run(w io.Writer, src sensors.Reader, name string, commands []string) (brain.State, error) {
	p := report.New(w)
	p.Banner()
	p.Initializing()

	p.Step(1, "SENSOR DATA ACQUISITION")
	bundle := src.Read()
	p.Sensors(bundle)

	p.Blank()
	p.Step(2, "BRAIN ANALYSIS")
	p.Analysis(brain.Analyze(bundle))

	p.Blank()
	p.Step(3, "COMMAND PROCESSING")
	state, results := brain.ExecuteAll(brain.NewState(), commands)
	for i, r := range results {
		p.Outcome(commands[i], r)
	}

	p.Blank()
	p.Step(4, "FINAL ROBOT STATE")
	p.Final(name, state)

	p.Closing()
	return state, p.Err()
}
