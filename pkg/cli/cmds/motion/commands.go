package motion

import (
	"fmt"

	"github.com/abiosoft/ishell"

	"github.com/robotalks/servo42.go/pkg/cli/sh"
	"github.com/robotalks/servo42.go/pkg/motor"
	"github.com/robotalks/servo42.go/pkg/servo42"
)

var (
	// EnableCmd exposes EnableMotor command.
	EnableCmd = ishell.Cmd{
		Name: "enable",
		Help: "on|off",
		Func: sh.MustBeOpen(func(c *ishell.Context) {
			if len(c.Args) < 1 {
				c.Err(fmt.Errorf("STATE required"))
				return
			}
			on, err := sh.ParseOnOff("STATE", c.Args[0])
			if err != nil {
				c.Err(err)
				return
			}
			sh.Exec(c, motor.Frame(func(d *servo42.Driver) []byte { return d.EnableMotor(on) }))
		}),
	}

	// StopCmd exposes Stop command.
	StopCmd = ishell.Cmd{
		Name:    "stop",
		Aliases: []string{"s"},
		Help:    "",
		Func: sh.MustBeOpen(func(c *ishell.Context) {
			sh.Exec(c, motor.Frame((*servo42.Driver).Stop))
		}),
	}

	// SpeedCmd exposes RunSpeed command.
	SpeedCmd = ishell.Cmd{
		Name:    "speed",
		Aliases: []string{"run"},
		Help:    "fwd|rev SPEED(0-127)",
		Func: sh.MustBeOpen(func(c *ishell.Context) {
			if len(c.Args) < 2 {
				c.Err(fmt.Errorf("DIR and SPEED required"))
				return
			}
			dir, err := sh.ParseDirection(c.Args[0])
			if err != nil {
				c.Err(err)
				return
			}
			speed, err := sh.ParseByte("SPEED", c.Args[1])
			if err != nil {
				c.Err(err)
				return
			}
			sh.Exec(c, func(d *servo42.Driver) ([]byte, error) { return d.RunSpeed(dir, speed) })
		}),
	}

	// MoveCmd exposes RunPosition command.
	MoveCmd = ishell.Cmd{
		Name:    "move",
		Aliases: []string{"mv"},
		Help:    "fwd|rev SPEED(0-127) PULSES",
		Func: sh.MustBeOpen(func(c *ishell.Context) {
			if len(c.Args) < 3 {
				c.Err(fmt.Errorf("DIR, SPEED and PULSES required"))
				return
			}
			dir, err := sh.ParseDirection(c.Args[0])
			if err != nil {
				c.Err(err)
				return
			}
			speed, err := sh.ParseByte("SPEED", c.Args[1])
			if err != nil {
				c.Err(err)
				return
			}
			pulses, err := sh.ParseUint32("PULSES", c.Args[2])
			if err != nil {
				c.Err(err)
				return
			}
			sh.Exec(c, func(d *servo42.Driver) ([]byte, error) { return d.RunPosition(dir, speed, pulses) })
		}),
	}

	// TurnCmd moves by an angle.
	TurnCmd = ishell.Cmd{
		Name:    "turn",
		Aliases: []string{"t"},
		Help:    "DEGREES SPEED(0-127) [MICROSTEPS]",
		Func: sh.MustBeOpen(func(c *ishell.Context) {
			if len(c.Args) < 2 {
				c.Err(fmt.Errorf("DEGREES and SPEED required"))
				return
			}
			degrees, err := sh.ParseFloat("DEGREES", c.Args[0])
			if err != nil {
				c.Err(err)
				return
			}
			speed, err := sh.ParseByte("SPEED", c.Args[1])
			if err != nil {
				c.Err(err)
				return
			}
			microsteps := 16.0
			if len(c.Args) > 2 {
				if microsteps, err = sh.ParseFloat("MICROSTEPS", c.Args[2]); err != nil {
					c.Err(err)
					return
				}
			}
			sh.Exec(c, motor.TurnFrame(degrees, speed, microsteps))
		}),
	}

	// ZeroCmd exposes return-to-zero commands.
	ZeroCmd = ishell.Cmd{
		Name:    "zero",
		Aliases: []string{"z"},
		Help:    "go | set | mode disable|dir|near | speed 0-4 | dir cw|ccw",
		Func: sh.MustBeOpen(func(c *ishell.Context) {
			if len(c.Args) < 1 {
				c.Err(fmt.Errorf("ACTION required"))
				return
			}
			switch c.Args[0] {
			case "go":
				sh.Exec(c, motor.Frame((*servo42.Driver).GoToZero))
				return
			case "set":
				sh.Exec(c, motor.Frame((*servo42.Driver).SetCurrentAsZero))
				return
			}
			if len(c.Args) < 2 {
				c.Err(fmt.Errorf("VALUE required"))
				return
			}
			switch c.Args[0] {
			case "mode":
				mode, err := parseZeroMode(c.Args[1])
				if err != nil {
					c.Err(err)
					return
				}
				sh.Exec(c, motor.Frame(func(d *servo42.Driver) []byte { return d.SetZeroMode(mode) }))
			case "speed":
				speed, err := sh.ParseByte("SPEED", c.Args[1])
				if err != nil {
					c.Err(err)
					return
				}
				sh.Exec(c, func(d *servo42.Driver) ([]byte, error) { return d.SetZeroSpeed(speed) })
			case "dir":
				cw, err := sh.ParseClockwise(c.Args[1])
				if err != nil {
					c.Err(err)
					return
				}
				sh.Exec(c, motor.Frame(func(d *servo42.Driver) []byte { return d.SetZeroDirection(cw) }))
			default:
				c.Err(fmt.Errorf("Unknown ACTION: %q", c.Args[0]))
			}
		}),
	}
)

func parseZeroMode(s string) (servo42.ZeroMode, error) {
	for _, m := range []servo42.ZeroMode{servo42.ZeroModeDisable, servo42.ZeroModeDirMode, servo42.ZeroModeNearMode} {
		if m.String() == s {
			return m, nil
		}
	}
	return 0, fmt.Errorf("Invalid MODE: %q", s)
}

func init() {
	sh.AddCmds(
		&EnableCmd,
		&StopCmd,
		&SpeedCmd,
		&MoveCmd,
		&TurnCmd,
		&ZeroCmd,
	)
}
