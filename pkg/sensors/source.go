package sensors

import (
	"math/rand/v2"
	"time"
)

// Reader provides reading bundles. Consumers depend on this rather than on
// Source so fixed bundles can be injected.
type Reader interface {
	Read() Bundle
}

// Source generates randomized readings around fixed centers.
// It is not safe for concurrent use.
type Source struct {
	rng *rand.Rand
}

var _ Reader = (*Source)(nil)

// NewSource creates a source drawing from rng.
func NewSource(rng *rand.Rand) *Source {
	return &Source{rng: rng}
}

// NewSeeded creates a source with a deterministic PCG generator.
func NewSeeded(seed uint64) *Source {
	return NewSource(rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)))
}

// New creates a source seeded from the clock.
func New() *Source {
	return NewSeeded(uint64(time.Now().UnixNano()))
}

// between returns a value in [lo, hi).
func (s *Source) between(lo, hi float64) float64 {
	return lo + s.rng.Float64()*(hi-lo)
}

// noise returns a value in [-span/2, span/2).
func (s *Source) noise(span float64) float64 {
	return (s.rng.Float64() - 0.5) * span
}

// RangeScan returns a full rotation at ScanStep increments. Entries inside the
// obstacle window report a short distance, all others a long one.
func (s *Source) RangeScan() []ScanEntry {
	scan := make([]ScanEntry, 0, ScanRotation/ScanStep)
	for angle := 0; angle < ScanRotation; angle += ScanStep {
		var d float64
		if InObstacleWindow(angle) {
			d = s.between(ObstacleMinDist, ObstacleMaxDist)
		} else {
			d = s.between(FarMinDist, FarMaxDist)
		}
		scan = append(scan, ScanEntry{Angle: angle, Distance: d})
	}
	return scan
}

// Inertial returns one sample: gravity with noise on y, small noise elsewhere.
func (s *Source) Inertial() InertialSample {
	return InertialSample{
		Accel: Vec3{
			X: s.noise(0.1),
			Y: Gravity + s.noise(0.08),
			Z: s.noise(0.1),
		},
		Gyro: AngularRate{
			Pitch: s.noise(0.02),
			Roll:  s.noise(0.02),
			Yaw:   s.noise(0.01),
		},
	}
}

// Vision returns between MinDetections and MaxDetections random detections.
func (s *Source) Vision() []Detection {
	n := MinDetections + s.rng.IntN(MaxDetections-MinDetections+1)
	dets := make([]Detection, n)
	for i := range dets {
		dets[i] = Detection{
			Label:      Labels[s.rng.IntN(len(Labels))],
			Confidence: s.between(MinConfidence, MaxConfidence),
			Distance:   s.between(MinObjectDist, MaxObjectDist),
		}
	}
	return dets
}

// Read gathers one bundle from all three modalities.
func (s *Source) Read() Bundle {
	return Bundle{
		Scan:     s.RangeScan(),
		Inertial: s.Inertial(),
		Vision:   s.Vision(),
	}
}

// Fixed is a Reader that always returns the same bundle.
type Fixed Bundle

// Read returns the fixed bundle.
func (f Fixed) Read() Bundle {
	return Bundle(f)
}
