package sim

import (
	"math"
	"time"
)

// pulsesPerGear is the pulse rate added by one speed gear.
// The controller runs at gear*30000/(microsteps*200) RPM, which is
// gear*500 microstep pulses per second regardless of subdivision.
const pulsesPerGear = 500.0

// motion integrates a constant-rate move, optionally bounded by a distance.
type motion struct {
	start     float64
	startTime time.Time
	rate      float64
	distance  float64
	bounded   bool
}

func newMotion(pos float64, now time.Time, rate float64) *motion {
	return &motion{start: pos, startTime: now, rate: rate}
}

func newBoundedMotion(pos float64, now time.Time, rate, distance float64) *motion {
	m := newMotion(pos, now, rate)
	m.distance, m.bounded = math.Abs(distance), true
	if distance < 0 {
		m.rate = -math.Abs(rate)
	} else {
		m.rate = math.Abs(rate)
	}
	return m
}

// estimate returns the position at now and whether the move completed.
func (m *motion) estimate(now time.Time) (float64, bool) {
	secs := now.Sub(m.startTime).Seconds()
	if secs < 0 {
		secs = 0
	}
	travel := secs * m.rate
	if m.bounded && math.Abs(travel) >= m.distance {
		return m.start + math.Copysign(m.distance, m.rate), true
	}
	if m.rate == 0 {
		return m.start, true
	}
	return m.start + travel, false
}
