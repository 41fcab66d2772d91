package brain

import "strings"

// Action tags an executed command.
type Action string

const (
	ActionMove      Action = "MOVE"
	ActionTurnLeft  Action = "TURN_LEFT"
	ActionTurnRight Action = "TURN_RIGHT"
	ActionStop      Action = "STOP"
	ActionDance     Action = "DANCE"
	ActionUnknown   Action = "UNKNOWN"
)

// BatteryPerMove is drained by every forward move.
const BatteryPerMove = 0.5

// DanceNote accompanies a successful dance.
const DanceNote = "🕺 Robot is vibing!"

// Position is the robot's grid position.
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// State is the robot record mutated by commands. Battery and position are
// deliberately unbounded.
type State struct {
	Position Position `json:"position"`
	Status   string   `json:"status"`
	Battery  float64  `json:"battery"`
	Mood     string   `json:"mood"`
}

// NewState returns the startup state.
func NewState() State {
	return State{
		Status:  "idle",
		Battery: 100,
		Mood:    "happy",
	}
}

// Result is the outcome of one command.
type Result struct {
	Action  Action `json:"action"`
	Success bool   `json:"success"`
	Note    string `json:"note,omitempty"`
}

// keywords are matched in order; the first hit wins.
var keywords = []struct {
	word   string
	action Action
}{
	{"forward", ActionMove},
	{"left", ActionTurnLeft},
	{"right", ActionTurnRight},
	{"stop", ActionStop},
	{"dance", ActionDance},
}

// Match resolves text to an action by case-insensitive substring match.
// A string containing several keywords resolves to the earliest in the order
// forward, left, right, stop, dance.
func Match(text string) Action {
	lower := strings.ToLower(text)
	for _, k := range keywords {
		if strings.Contains(lower, k.word) {
			return k.action
		}
	}
	return ActionUnknown
}

// Execute applies text to s and returns the next state. Unrecognized text
// yields an UNKNOWN result and s unchanged.
func Execute(s State, text string) (State, Result) {
	action := Match(text)
	switch action {
	case ActionMove:
		s.Position.X++
		s.Status = "moving"
		s.Battery -= BatteryPerMove
	case ActionTurnLeft:
		s.Position.Y--
	case ActionTurnRight:
		s.Position.Y++
	case ActionStop:
		s.Status = "stopped"
	case ActionDance:
		s.Mood = "excited"
		return s, Result{Action: action, Success: true, Note: DanceNote}
	default:
		return s, Result{Action: ActionUnknown, Success: false}
	}
	return s, Result{Action: action, Success: true}
}

// ExecuteAll applies each command in order and returns the final state with
// one result per command.
func ExecuteAll(s State, commands []string) (State, []Result) {
	results := make([]Result, 0, len(commands))
	for _, cmd := range commands {
		var r Result
		s, r = Execute(s, cmd)
		results = append(results, r)
	}
	return s, results
}
