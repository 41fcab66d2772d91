// Demo - sensor-to-decision walkthrough
//
// Fabricates one bundle of sensor readings, prints the robot's analysis,
// applies a fixed list of commands and prints the final state.
package main

import (
	"os"

	"github.com/teslashibe/go-atlas/internal/log"
	"github.com/teslashibe/go-atlas/pkg/demo"
	"github.com/teslashibe/go-atlas/pkg/sensors"
)

func main() {
	log.Init(log.Options{Level: "warn"})

	if _, err := demo.Run(os.Stdout, sensors.New(), demo.RobotName, demo.DefaultCommands); err != nil {
		log.Error("writing report", "err", err)
	}
}
