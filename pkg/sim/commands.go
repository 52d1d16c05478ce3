package sim

import (
	"encoding/binary"
	"math"

	"github.com/robotalks/servo42.go/pkg/servo42"
)

// command handles one opcode. A nil reply means the controller stays silent.
type command struct {
	payload int
	trailer []byte
	handle  func(c *Controller, payload []byte) []byte
}

var commands = map[byte]command{
	0x30: {handle: (*Controller).readEncoder},
	0x33: {handle: (*Controller).readPulseCount},
	0x36: {handle: (*Controller).readShaftAngle},
	0x39: {trailer: []byte{0x00}, handle: (*Controller).readShaftAngleError},
	0x3A: {handle: (*Controller).readEnPin},
	0x3D: {handle: (*Controller).releaseProtection},
	0x3E: {handle: (*Controller).readShaftStatus},

	0x80: {payload: 1, handle: (*Controller).calibrate},
	0x81: {payload: 1, handle: validated(func(b []byte) bool { _, err := servo42.MotorTypeFromByte(b[0]); return err == nil })},
	0x82: {payload: 1, handle: validated(func(b []byte) bool { _, err := servo42.WorkModeFromByte(b[0]); return err == nil })},
	0x83: {payload: 1, handle: validated(func(b []byte) bool { return b[0] <= servo42.MaxCurrentIndex })},
	0x84: {payload: 1, handle: (*Controller).setSubdivision},
	0x85: {payload: 1, handle: validated(func(b []byte) bool { _, err := servo42.EnLogicFromByte(b[0]); return err == nil })},
	0x86: {payload: 1, handle: validated(isBool)},
	0x87: {payload: 1, handle: validated(isBool)},
	0x88: {payload: 1, handle: validated(isBool)},
	0x89: {payload: 1, handle: validated(isBool)},
	0x8A: {payload: 1, handle: validated(func(b []byte) bool { _, err := servo42.BaudRateFromByte(b[0]); return err == nil })},
	0x8B: {payload: 1, handle: (*Controller).setSlaveAddress},
	0x90: {payload: 1, handle: validated(func(b []byte) bool { _, err := servo42.ZeroModeFromByte(b[0]); return err == nil })},
	0x91: {payload: 1, handle: (*Controller).setCurrentAsZero},
	0x92: {payload: 1, handle: (*Controller).setZeroSpeed},
	0x93: {payload: 1, handle: validated(isBool)},
	0x94: {payload: 1, handle: (*Controller).goToZero},
	0xA1: {payload: 2, handle: validated(nil)},
	0xA2: {payload: 2, handle: validated(nil)},
	0xA3: {payload: 2, handle: validated(nil)},
	0xA4: {payload: 2, handle: validated(nil)},
	0xA5: {payload: 2, handle: validated(func(b []byte) bool { return binary.BigEndian.Uint16(b) <= servo42.MaxTorqueLimit })},

	0xF3: {payload: 1, handle: (*Controller).enable},
	0xF6: {payload: 1, handle: (*Controller).runSpeed},
	0xF7: {handle: (*Controller).stop},
	0xFD: {payload: 5, handle: (*Controller).runPosition},
	0xFF: {payload: 1, handle: validated(func(b []byte) bool {
		return b[0] == byte(servo42.StatusSave) || b[0] == byte(servo42.StatusClear)
	})},
}

func isBool(b []byte) bool {
	return b[0] <= 1
}

// validated stores the payload of a plain setting when valid accepts it.
func validated(valid func([]byte) bool) func(*Controller, []byte) []byte {
	return func(c *Controller, payload []byte) []byte {
		if valid != nil && !valid(payload) {
			return status(false)
		}
		c.store(payload)
		return status(true)
	}
}

// store records the payload under the opcode currently being handled.
func (c *Controller) store(payload []byte) {
	c.settings[c.rx[1]] = append([]byte(nil), payload...)
}

func (c *Controller) readEncoder([]byte) []byte {
	turns := c.turns()
	carry := math.Floor(turns)
	value := math.Min((turns-carry)*servo42.EncoderResolution, math.MaxUint16)
	body := make([]byte, 6)
	binary.BigEndian.PutUint32(body[0:4], uint32(saturateInt32(carry)))
	binary.BigEndian.PutUint16(body[4:6], uint16(value))
	return body
}

func (c *Controller) readPulseCount([]byte) []byte {
	return uint32Bytes(uint32(saturateInt32(math.Round(c.pulses))))
}

func (c *Controller) readShaftAngle([]byte) []byte {
	return uint32Bytes(uint32(saturateInt32(c.turns() * servo42.EncoderResolution)))
}

func (c *Controller) readShaftAngleError([]byte) []byte {
	return []byte{0x00, 0x00}
}

func (c *Controller) readEnPin([]byte) []byte {
	if c.enabled {
		return []byte{byte(servo42.EnPinEnabled)}
	}
	return []byte{byte(servo42.EnPinDisabled)}
}

func (c *Controller) readShaftStatus([]byte) []byte {
	if c.blocked {
		return []byte{byte(servo42.ShaftBlocked)}
	}
	return []byte{byte(servo42.ShaftUnblocked)}
}

func (c *Controller) releaseProtection([]byte) []byte {
	c.blocked = false
	return status(true)
}

func (c *Controller) calibrate([]byte) []byte {
	return status(c.move == nil)
}

func (c *Controller) setSubdivision(payload []byte) []byte {
	if payload[0] > servo42.MaxSubdivisionIndex {
		return status(false)
	}
	c.microsteps = float64(payload[0])
	if c.microsteps == 0 {
		c.microsteps = 256
	}
	c.store(payload)
	return status(true)
}

func (c *Controller) setSlaveAddress(payload []byte) []byte {
	addr := servo42.MinAddress + payload[0]
	if payload[0] > servo42.MaxAddress-servo42.MinAddress {
		return status(false)
	}
	c.address = addr
	return status(true)
}

func (c *Controller) setCurrentAsZero([]byte) []byte {
	if c.move != nil {
		return status(false)
	}
	c.zero = c.pulses
	return status(true)
}

func (c *Controller) setZeroSpeed(payload []byte) []byte {
	if payload[0] > servo42.MaxZeroSpeed {
		return status(false)
	}
	c.zeroSpeed = payload[0]
	c.store(payload)
	return status(true)
}

func (c *Controller) goToZero([]byte) []byte {
	if !c.canMove() {
		return status(false)
	}
	rate := float64(servo42.MaxZeroSpeed+1-c.zeroSpeed) * zeroRateStep
	c.move = newBoundedMotion(c.pulses, c.Now(), rate, c.zero-c.pulses)
	return status(true)
}

func (c *Controller) enable(payload []byte) []byte {
	if !isBool(payload) {
		return status(false)
	}
	c.enabled = payload[0] == 1
	if !c.enabled {
		c.move = nil
	}
	return status(true)
}

func speedRate(b byte) float64 {
	rate := float64(b&servo42.MaxSpeed) * pulsesPerGear
	if servo42.Direction(b&^servo42.MaxSpeed) == servo42.Reverse {
		rate = -rate
	}
	return rate
}

func (c *Controller) runSpeed(payload []byte) []byte {
	if !c.canMove() {
		return status(false)
	}
	c.move = newMotion(c.pulses, c.Now(), speedRate(payload[0]))
	return status(true)
}

func (c *Controller) stop([]byte) []byte {
	c.move = nil
	return status(true)
}

func (c *Controller) runPosition(payload []byte) []byte {
	if !c.canMove() || payload[0]&servo42.MaxSpeed == 0 {
		return status(false)
	}
	rate := speedRate(payload[0])
	distance := float64(binary.BigEndian.Uint32(payload[1:5]))
	if rate < 0 {
		distance = -distance
	}
	c.move = newBoundedMotion(c.pulses, c.Now(), rate, distance)
	return status(true)
}
