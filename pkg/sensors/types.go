// Package sensors fabricates synthetic readings for the three sensor modalities
// of the demo robot: a rotating range scanner, an inertial unit and a camera.
//
// Every generator draws from an injectable random source so callers can seed it
// and get reproducible bundles in tests.
package sensors

// Gravity is standard gravity as seen on the inertial y-axis (m/s²).
const Gravity = -9.81

// Range scan geometry.
const (
	ScanStep       = 15 // degrees between entries
	ScanRotation   = 360
	ObstacleMinDeg = 30 // obstacle window, inclusive
	ObstacleMaxDeg = 75
)

// Distance bands (meters). Max values are exclusive.
const (
	ObstacleMinDist = 0.8
	ObstacleMaxDist = 1.3
	FarMinDist      = 3.0
	FarMaxDist      = 8.0
)

// Vision bounds.
const (
	MinDetections = 2
	MaxDetections = 4
	MinConfidence = 0.7
	MaxConfidence = 0.99
	MinObjectDist = 1.0
	MaxObjectDist = 5.0
)

// Labels is the fixed vocabulary the simulated camera recognizes.
var Labels = []string{"chair", "table", "person", "door", "cup", "phone", "plant"}

// ScanEntry is one angular distance sample.
type ScanEntry struct {
	Angle    int     `json:"angle"`    // degrees
	Distance float64 `json:"distance"` // meters
}

// Vec3 is a linear acceleration vector (m/s²).
type Vec3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// AngularRate is gyroscope output (rad/s).
type AngularRate struct {
	Pitch float64 `json:"pitch"`
	Roll  float64 `json:"roll"`
	Yaw   float64 `json:"yaw"`
}

// InertialSample is simulated accelerometer and gyroscope output.
type InertialSample struct {
	Accel Vec3        `json:"accelerometer"`
	Gyro  AngularRate `json:"gyroscope"`
}

// Detection is one recognized object.
type Detection struct {
	Label      string  `json:"label"`
	Confidence float64 `json:"confidence"` // 0-1
	Distance   float64 `json:"distance"`   // meters
}

// Bundle is one synchronized set of readings for a single analysis cycle.
type Bundle struct {
	Scan     []ScanEntry    `json:"lidar"`
	Inertial InertialSample `json:"imu"`
	Vision   []Detection    `json:"camera"`
}

// InObstacleWindow reports whether angle falls inside the simulated obstacle band.
func InObstacleWindow(angle int) bool {
	return angle >= ObstacleMinDeg && angle <= ObstacleMaxDeg
}
