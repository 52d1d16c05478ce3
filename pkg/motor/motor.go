// Package motor drives a single SERVO42 controller over a comm.Link.
package motor

import (
	"context"
	"errors"
	"math"
	"sync"

	"github.com/robotalks/servo42.go/pkg/comm"
	"github.com/robotalks/servo42.go/pkg/servo42"
)

// BuildFunc builds a command frame with a Driver.
type BuildFunc func(*servo42.Driver) ([]byte, error)

// Frame adapts a builder which cannot fail, e.g. (*servo42.Driver).Stop.
func Frame(fn func(*servo42.Driver) []byte) BuildFunc {
	return func(d *servo42.Driver) ([]byte, error) {
		return fn(d), nil
	}
}

// Motor is one controller reachable over a Link.
type Motor struct {
	Driver *servo42.Driver
	Link   *comm.Link

	lock sync.Mutex
}

// New creates a Motor.
func New(driver *servo42.Driver, link *comm.Link) *Motor {
	return &Motor{Driver: driver, Link: link}
}

func completeWith(parse func([]byte) error) comm.CompleteFunc {
	return func(data []byte) bool {
		return !errors.Is(parse(data), servo42.ErrInvalidPacket)
	}
}

func statusComplete(data []byte) error {
	_, err := servo42.ParseStatusResponse(data)
	return err
}

// exchange builds a frame and sends it while holding the Driver buffer.
func (m *Motor) exchange(ctx context.Context, build BuildFunc, parse func([]byte) error) ([]byte, byte, error) {
	m.lock.Lock()
	defer m.lock.Unlock()
	frame, err := build(m.Driver)
	if err != nil {
		return nil, 0, err
	}
	opcode := frame[1]
	reply, err := m.Link.Exchange(ctx, frame, completeWith(parse))
	return reply, opcode, err
}

// Exec sends a setting or motion command and checks the acknowledgement.
// A failure acknowledgement is reported as *comm.CommandError.
func (m *Motor) Exec(ctx context.Context, build BuildFunc) error {
	reply, opcode, err := m.exchange(ctx, build, statusComplete)
	if err != nil {
		return err
	}
	resp, err := servo42.ParseStatusResponse(reply)
	if err != nil {
		return err
	}
	if resp.IsFailure() {
		return &comm.CommandError{Opcode: opcode}
	}
	return nil
}

// Enable enables or disables the motor.
func (m *Motor) Enable(ctx context.Context, enable bool) error {
	return m.Exec(ctx, Frame(func(d *servo42.Driver) []byte { return d.EnableMotor(enable) }))
}

// Stop stops the motor.
func (m *Motor) Stop(ctx context.Context) error {
	return m.Exec(ctx, Frame((*servo42.Driver).Stop))
}

// RunSpeed runs the motor at a constant speed gear.
func (m *Motor) RunSpeed(ctx context.Context, dir servo42.Direction, speed byte) error {
	return m.Exec(ctx, func(d *servo42.Driver) ([]byte, error) { return d.RunSpeed(dir, speed) })
}

// RunPosition moves the motor by pulses.
func (m *Motor) RunPosition(ctx context.Context, dir servo42.Direction, speed byte, pulses uint32) error {
	return m.Exec(ctx, func(d *servo42.Driver) ([]byte, error) { return d.RunPosition(dir, speed, pulses) })
}

// Turn moves the motor by degrees, negative values turn in reverse.
// microsteps must match the subdivision configured on the controller.
func (m *Motor) Turn(ctx context.Context, degrees float64, speed byte, microsteps float64) error {
	return m.Exec(ctx, TurnFrame(degrees, speed, microsteps))
}

// TurnFrame builds the RunPosition frame moving by degrees, negative
// values turn in reverse.
func TurnFrame(degrees float64, speed byte, microsteps float64) BuildFunc {
	dir := servo42.Forward
	if degrees < 0 {
		dir = servo42.Reverse
	}
	pulses := servo42.AngleToSteps(math.Abs(degrees), microsteps)
	return func(d *servo42.Driver) ([]byte, error) {
		return d.RunPosition(dir, speed, pulses)
	}
}

// GoToZero starts the return-to-zero sequence.
func (m *Motor) GoToZero(ctx context.Context) error {
	return m.Exec(ctx, Frame((*servo42.Driver).GoToZero))
}

// SaveClearStatus saves or clears the run state.
func (m *Motor) SaveClearStatus(ctx context.Context, op servo42.SaveClearStatus) error {
	return m.Exec(ctx, Frame(func(d *servo42.Driver) []byte { return d.SaveClearStatus(op) }))
}

// ReleaseProtection releases locked-rotor protection.
func (m *Motor) ReleaseProtection(ctx context.Context) error {
	return m.Exec(ctx, Frame((*servo42.Driver).ReadReleaseStatus))
}

// ReadEncoder reads the multi-turn encoder value.
func (m *Motor) ReadEncoder(ctx context.Context) (v servo42.EncoderValue, err error) {
	reply, _, err := m.exchange(ctx, Frame((*servo42.Driver).ReadEncoderValue), func(b []byte) (err error) {
		_, err = servo42.ParseEncoderResponse(b)
		return
	})
	if err != nil {
		return
	}
	return servo42.ParseEncoderResponse(reply)
}

// ReadPulseCount reads the number of received pulses.
func (m *Motor) ReadPulseCount(ctx context.Context) (c servo42.PulseCount, err error) {
	reply, _, err := m.exchange(ctx, Frame((*servo42.Driver).ReadPulseCount), func(b []byte) (err error) {
		_, err = servo42.ParsePulseCountResponse(b)
		return
	})
	if err != nil {
		return
	}
	return servo42.ParsePulseCountResponse(reply)
}

// ReadShaftAngle reads the shaft angle.
func (m *Motor) ReadShaftAngle(ctx context.Context) (a servo42.ShaftAngle, err error) {
	reply, _, err := m.exchange(ctx, Frame((*servo42.Driver).ReadMotorShaftAngle), func(b []byte) (err error) {
		_, err = servo42.ParseShaftAngleResponse(b)
		return
	})
	if err != nil {
		return
	}
	return servo42.ParseShaftAngleResponse(reply)
}

// ReadShaftAngleError reads the shaft angle error.
func (m *Motor) ReadShaftAngleError(ctx context.Context) (e servo42.ShaftAngleError, err error) {
	reply, _, err := m.exchange(ctx, Frame((*servo42.Driver).ReadMotorShaftAngleError), func(b []byte) (err error) {
		_, err = servo42.ParseShaftAngleErrorResponse(b)
		return
	})
	if err != nil {
		return
	}
	return servo42.ParseShaftAngleErrorResponse(reply)
}

// ReadEnPinStatus reads the EN pin status.
func (m *Motor) ReadEnPinStatus(ctx context.Context) (s servo42.EnPinStatus, err error) {
	reply, _, err := m.exchange(ctx, Frame((*servo42.Driver).ReadEnPinStatus), func(b []byte) (err error) {
		_, err = servo42.ParseEnPinStatusResponse(b)
		return
	})
	if err != nil {
		return
	}
	return servo42.ParseEnPinStatusResponse(reply)
}

// ReadShaftStatus reads whether the shaft is blocked.
func (m *Motor) ReadShaftStatus(ctx context.Context) (s servo42.ShaftStatus, err error) {
	reply, _, err := m.exchange(ctx, Frame((*servo42.Driver).ReadShaftStatus), func(b []byte) (err error) {
		_, err = servo42.ParseShaftStatusResponse(b)
		return
	})
	if err != nil {
		return
	}
	return servo42.ParseShaftStatusResponse(reply)
}
