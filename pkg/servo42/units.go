package servo42

import "math"

const (
	// StepsPerRevolution is the number of full steps of a 1.8° motor.
	StepsPerRevolution = 200.0
	// EncoderResolution is the number of encoder units per turn.
	EncoderResolution = 65536.0
)

// AngleToSteps calculates the pulses needed to turn angle degrees with the
// given microsteps per full step. The result is rounded half up and clamped
// to the uint32 range.
func AngleToSteps(angle, microsteps float64) uint32 {
	steps := math.Floor(angle/360*StepsPerRevolution*microsteps + 0.5)
	switch {
	case math.IsNaN(steps) || steps <= 0:
		return 0
	case steps >= math.MaxUint32:
		return math.MaxUint32
	}
	return uint32(steps)
}

// EncoderRawToDegrees converts a single-turn encoder value to degrees.
func EncoderRawToDegrees(raw uint16) float64 {
	return float64(raw) / EncoderResolution * 360
}
