package read

import (
	"context"
	"fmt"

	"github.com/abiosoft/ishell"

	"github.com/robotalks/servo42.go/pkg/cli/sh"
	"github.com/robotalks/servo42.go/pkg/motor"
	"github.com/robotalks/servo42.go/pkg/servo42"
)

// EncoderReading is printed by the encoder command.
type EncoderReading struct {
	Carry   int32   `json:"carry"`
	Value   uint16  `json:"value"`
	Degrees float64 `json:"degrees"`
}

func (r EncoderReading) String() string {
	return fmt.Sprintf("carry=%d value=%d (%.2f deg)", r.Carry, r.Value, r.Degrees)
}

// PulsesReading is printed by the pulses command.
type PulsesReading struct {
	Pulses int32 `json:"pulses"`
}

func (r PulsesReading) String() string {
	return fmt.Sprintf("%d", r.Pulses)
}

// AngleReading is printed by the angle and angle-err commands.
type AngleReading struct {
	Raw     int32   `json:"raw"`
	Degrees float64 `json:"degrees"`
}

func (r AngleReading) String() string {
	return fmt.Sprintf("%d (%.2f deg)", r.Raw, r.Degrees)
}

// StatusReading is printed by the en and shaft commands.
type StatusReading struct {
	Status string `json:"status"`
}

func (r StatusReading) String() string {
	return r.Status
}

func readCmd(name, help string, aliases []string, build func(*servo42.Driver) []byte, read func(context.Context, *motor.Motor) (sh.Reading, error)) ishell.Cmd {
	return ishell.Cmd{
		Name:    name,
		Aliases: aliases,
		Help:    help,
		Func: sh.MustBeOpen(func(c *ishell.Context) {
			sh.Read(c, motor.Frame(build), read)
		}),
	}
}

var (
	// EncoderCmd exposes ReadEncoderValue command.
	EncoderCmd = readCmd("encoder", "read encoder value", []string{"enc"},
		(*servo42.Driver).ReadEncoderValue,
		func(ctx context.Context, m *motor.Motor) (sh.Reading, error) {
			v, err := m.ReadEncoder(ctx)
			if err != nil {
				return nil, err
			}
			return EncoderReading{Carry: v.Carry, Value: v.Value, Degrees: v.Degrees()}, nil
		})

	// PulsesCmd exposes ReadPulseCount command.
	PulsesCmd = readCmd("pulses", "read received pulses", nil,
		(*servo42.Driver).ReadPulseCount,
		func(ctx context.Context, m *motor.Motor) (sh.Reading, error) {
			v, err := m.ReadPulseCount(ctx)
			if err != nil {
				return nil, err
			}
			return PulsesReading{Pulses: v.Value}, nil
		})

	// AngleCmd exposes ReadMotorShaftAngle command.
	AngleCmd = readCmd("angle", "read shaft angle", []string{"a"},
		(*servo42.Driver).ReadMotorShaftAngle,
		func(ctx context.Context, m *motor.Motor) (sh.Reading, error) {
			v, err := m.ReadShaftAngle(ctx)
			if err != nil {
				return nil, err
			}
			return AngleReading{Raw: v.Value, Degrees: v.Degrees()}, nil
		})

	// AngleErrCmd exposes ReadMotorShaftAngleError command.
	AngleErrCmd = readCmd("angle-err", "read shaft angle error", nil,
		(*servo42.Driver).ReadMotorShaftAngleError,
		func(ctx context.Context, m *motor.Motor) (sh.Reading, error) {
			v, err := m.ReadShaftAngleError(ctx)
			if err != nil {
				return nil, err
			}
			return AngleReading{Raw: int32(v.Value), Degrees: v.Degrees()}, nil
		})

	// EnPinCmd exposes ReadEnPinStatus command.
	EnPinCmd = readCmd("en", "read EN pin status", nil,
		(*servo42.Driver).ReadEnPinStatus,
		func(ctx context.Context, m *motor.Motor) (sh.Reading, error) {
			v, err := m.ReadEnPinStatus(ctx)
			if err != nil {
				return nil, err
			}
			return StatusReading{Status: v.String()}, nil
		})

	// ShaftCmd exposes ReadShaftStatus command.
	ShaftCmd = readCmd("shaft", "read shaft blocked status", nil,
		(*servo42.Driver).ReadShaftStatus,
		func(ctx context.Context, m *motor.Motor) (sh.Reading, error) {
			v, err := m.ReadShaftStatus(ctx)
			if err != nil {
				return nil, err
			}
			return StatusReading{Status: v.String()}, nil
		})

	// ReleaseCmd releases the locked-rotor protection.
	ReleaseCmd = ishell.Cmd{
		Name: "release",
		Help: "release locked-rotor protection",
		Func: sh.MustBeOpen(func(c *ishell.Context) {
			sh.Exec(c, motor.Frame((*servo42.Driver).ReadReleaseStatus))
		}),
	}
)

func init() {
	sh.AddCmds(
		&EncoderCmd,
		&PulsesCmd,
		&AngleCmd,
		&AngleErrCmd,
		&EnPinCmd,
		&ShaftCmd,
		&ReleaseCmd,
	)
}
