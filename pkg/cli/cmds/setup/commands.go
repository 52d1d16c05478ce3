package setup

import (
	"fmt"
	"strings"

	"github.com/abiosoft/ishell"

	"github.com/robotalks/servo42.go/pkg/cli/sh"
	"github.com/robotalks/servo42.go/pkg/motor"
	"github.com/robotalks/servo42.go/pkg/port"
	"github.com/robotalks/servo42.go/pkg/servo42"
)

const dangerousHelp = " (dangerous, requires --force)"

func forced(c *ishell.Context, name string, args int) bool {
	if len(c.Args) > args && c.Args[args] == "--force" {
		return true
	}
	c.Err(fmt.Errorf("%s changes how the controller talks, append --force to confirm", name))
	return false
}

func onOffCmd(name, help string, build func(*servo42.Driver, bool) []byte) ishell.Cmd {
	return ishell.Cmd{
		Name: name,
		Help: help,
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
			sh.Exec(c, motor.Frame(func(d *servo42.Driver) []byte { return build(d, on) }))
		}),
	}
}

var (
	// CalibrateCmd exposes CalibrateEncoder command.
	CalibrateCmd = ishell.Cmd{
		Name: "cal",
		Help: "calibrate encoder, motor must be unloaded",
		Func: sh.MustBeOpen(func(c *ishell.Context) {
			sh.Exec(c, motor.Frame((*servo42.Driver).CalibrateEncoder))
		}),
	}

	// CurrentCmd exposes SetCurrentLimit command.
	CurrentCmd = ishell.Cmd{
		Name: "current",
		Help: "INDEX(0-15)|<N>mA",
		Func: sh.MustBeOpen(func(c *ishell.Context) {
			if len(c.Args) < 1 {
				c.Err(fmt.Errorf("CURRENT required"))
				return
			}
			var index byte
			var err error
			if ma := strings.TrimSuffix(strings.ToLower(c.Args[0]), "ma"); ma != strings.ToLower(c.Args[0]) {
				var v uint16
				if v, err = sh.ParseUint16("CURRENT", ma); err == nil {
					index, err = servo42.CurrentIndexFromMilliamps(v)
				}
			} else {
				index, err = sh.ParseByte("CURRENT", c.Args[0])
			}
			if err != nil {
				c.Err(err)
				return
			}
			sh.Exec(c, func(d *servo42.Driver) ([]byte, error) { return d.SetCurrentLimit(index) })
		}),
	}

	// SubdivisionCmd exposes SetSubdivision command.
	SubdivisionCmd = ishell.Cmd{
		Name: "subdiv",
		Help: "INDEX(0-8)",
		Func: sh.MustBeOpen(func(c *ishell.Context) {
			if len(c.Args) < 1 {
				c.Err(fmt.Errorf("INDEX required"))
				return
			}
			index, err := sh.ParseByte("INDEX", c.Args[0])
			if err != nil {
				c.Err(err)
				return
			}
			sh.Exec(c, func(d *servo42.Driver) ([]byte, error) { return d.SetSubdivision(index) })
		}),
	}

	// EnLogicCmd exposes SetEnableLogic command.
	EnLogicCmd = ishell.Cmd{
		Name: "enlogic",
		Help: "low|high|always-on",
		Func: sh.MustBeOpen(func(c *ishell.Context) {
			if len(c.Args) < 1 {
				c.Err(fmt.Errorf("LOGIC required"))
				return
			}
			var logic servo42.EnLogic
			switch c.Args[0] {
			case "low":
				logic = servo42.EnLogicLow
			case "high":
				logic = servo42.EnLogicHigh
			case "always-on", "on":
				logic = servo42.EnLogicAlwaysOn
			default:
				c.Err(fmt.Errorf("Invalid LOGIC: %q", c.Args[0]))
				return
			}
			sh.Exec(c, motor.Frame(func(d *servo42.Driver) []byte { return d.SetEnableLogic(logic) }))
		}),
	}

	// DirectionCmd exposes SetDirection command.
	DirectionCmd = ishell.Cmd{
		Name: "dir",
		Help: "cw|ccw",
		Func: sh.MustBeOpen(func(c *ishell.Context) {
			if len(c.Args) < 1 {
				c.Err(fmt.Errorf("DIR required"))
				return
			}
			cw, err := sh.ParseClockwise(c.Args[0])
			if err != nil {
				c.Err(err)
				return
			}
			sh.Exec(c, motor.Frame(func(d *servo42.Driver) []byte { return d.SetDirection(cw) }))
		}),
	}

	// ScreenOffCmd exposes SetAutoScreenOff command.
	ScreenOffCmd = onOffCmd("screenoff", "on|off", (*servo42.Driver).SetAutoScreenOff)
	// ProtectCmd exposes SetStallProtection command.
	ProtectCmd = onOffCmd("protect", "on|off", (*servo42.Driver).SetStallProtection)
	// InterpolationCmd exposes SetInterpolation command.
	InterpolationCmd = onOffCmd("interp", "on|off", (*servo42.Driver).SetInterpolation)

	// PIDCmd exposes position PID parameters.
	PIDCmd = ishell.Cmd{
		Name: "pid",
		Help: "kp|ki|kd VALUE",
		Func: sh.MustBeOpen(func(c *ishell.Context) {
			if len(c.Args) < 2 {
				c.Err(fmt.Errorf("PARAM and VALUE required"))
				return
			}
			var build func(*servo42.Driver, uint16) []byte
			switch c.Args[0] {
			case "kp":
				build = (*servo42.Driver).SetPositionKp
			case "ki":
				build = (*servo42.Driver).SetPositionKi
			case "kd":
				build = (*servo42.Driver).SetPositionKd
			default:
				c.Err(fmt.Errorf("Invalid PARAM: %q", c.Args[0]))
				return
			}
			v, err := sh.ParseUint16("VALUE", c.Args[1])
			if err != nil {
				c.Err(err)
				return
			}
			sh.Exec(c, motor.Frame(func(d *servo42.Driver) []byte { return build(d, v) }))
		}),
	}

	// AccelCmd exposes SetAcceleration command.
	AccelCmd = ishell.Cmd{
		Name: "accel",
		Help: "VALUE",
		Func: sh.MustBeOpen(func(c *ishell.Context) {
			if len(c.Args) < 1 {
				c.Err(fmt.Errorf("VALUE required"))
				return
			}
			v, err := sh.ParseUint16("VALUE", c.Args[0])
			if err != nil {
				c.Err(err)
				return
			}
			sh.Exec(c, motor.Frame(func(d *servo42.Driver) []byte { return d.SetAcceleration(v) }))
		}),
	}

	// TorqueCmd exposes SetMaxTorque command.
	TorqueCmd = ishell.Cmd{
		Name: "torque",
		Help: "VALUE(0-1200)",
		Func: sh.MustBeOpen(func(c *ishell.Context) {
			if len(c.Args) < 1 {
				c.Err(fmt.Errorf("VALUE required"))
				return
			}
			v, err := sh.ParseUint16("VALUE", c.Args[0])
			if err != nil {
				c.Err(err)
				return
			}
			sh.Exec(c, func(d *servo42.Driver) ([]byte, error) { return d.SetMaxTorque(v) })
		}),
	}

	// StatusCmd exposes SaveClearStatus command.
	StatusCmd = ishell.Cmd{
		Name: "status",
		Help: "save|clear",
		Func: sh.MustBeOpen(func(c *ishell.Context) {
			if len(c.Args) < 1 {
				c.Err(fmt.Errorf("ACTION required"))
				return
			}
			var op servo42.SaveClearStatus
			switch c.Args[0] {
			case "save":
				op = servo42.StatusSave
			case "clear":
				op = servo42.StatusClear
			default:
				c.Err(fmt.Errorf("Invalid ACTION: %q", c.Args[0]))
				return
			}
			sh.Exec(c, motor.Frame(func(d *servo42.Driver) []byte { return d.SaveClearStatus(op) }))
		}),
	}

	// MotorTypeCmd exposes SetMotorType command.
	MotorTypeCmd = ishell.Cmd{
		Name: "motortype",
		Help: "0.9|1.8" + dangerousHelp,
		Func: sh.MustBeOpen(func(c *ishell.Context) {
			if len(c.Args) < 1 {
				c.Err(fmt.Errorf("TYPE required"))
				return
			}
			if !forced(c, "motortype", 1) {
				return
			}
			var t servo42.MotorType
			switch c.Args[0] {
			case "0.9":
				t = servo42.MotorDeg09
			case "1.8":
				t = servo42.MotorDeg18
			default:
				c.Err(fmt.Errorf("Invalid TYPE: %q", c.Args[0]))
				return
			}
			sh.Exec(c, motor.Frame(func(d *servo42.Driver) []byte { return d.SetMotorType(t) }))
		}),
	}

	// WorkModeCmd exposes SetWorkMode command.
	WorkModeCmd = ishell.Cmd{
		Name: "workmode",
		Help: "open|vfoc|uart" + dangerousHelp,
		Func: sh.MustBeOpen(func(c *ishell.Context) {
			if len(c.Args) < 1 {
				c.Err(fmt.Errorf("MODE required"))
				return
			}
			if !forced(c, "workmode", 1) {
				return
			}
			var m servo42.WorkMode
			switch c.Args[0] {
			case "open":
				m = servo42.WorkModeOpen
			case "vfoc":
				m = servo42.WorkModeVfoc
			case "uart":
				m = servo42.WorkModeUart
			default:
				c.Err(fmt.Errorf("Invalid MODE: %q", c.Args[0]))
				return
			}
			sh.Exec(c, motor.Frame(func(d *servo42.Driver) []byte { return d.SetWorkMode(m) }))
		}),
	}

	// BaudCmd exposes SetBaudRate command.
	BaudCmd = ishell.Cmd{
		Name: "baud",
		Help: "BPS" + dangerousHelp,
		Func: sh.MustBeOpen(func(c *ishell.Context) {
			if len(c.Args) < 1 {
				c.Err(fmt.Errorf("BPS required"))
				return
			}
			if !forced(c, "baud", 1) {
				return
			}
			bps, err := sh.ParseUint32("BPS", c.Args[0])
			if err != nil {
				c.Err(err)
				return
			}
			rate, err := servo42.BaudRateFromBps(int(bps))
			if err != nil {
				c.Err(fmt.Errorf("Invalid BPS %d: %w", bps, err))
				return
			}
			sh.Exec(c, motor.Frame(func(d *servo42.Driver) []byte { return d.SetBaudRate(rate) }))
		}),
	}

	// AddrCmd exposes SetSlaveAddress command.
	AddrCmd = ishell.Cmd{
		Name: "addr",
		Help: "ADDR(0xe0-0xe9)" + dangerousHelp,
		Func: sh.MustBeOpen(func(c *ishell.Context) {
			if len(c.Args) < 1 {
				c.Err(fmt.Errorf("ADDR required"))
				return
			}
			if !forced(c, "addr", 1) {
				return
			}
			addr, err := port.ParseAddress(c.Args[0])
			if err != nil {
				c.Err(err)
				return
			}
			sh.Exec(c, func(d *servo42.Driver) ([]byte, error) { return d.SetSlaveAddress(addr) })
		}),
	}
)

func init() {
	sh.AddCmds(
		&CalibrateCmd,
		&CurrentCmd,
		&SubdivisionCmd,
		&EnLogicCmd,
		&DirectionCmd,
		&ScreenOffCmd,
		&ProtectCmd,
		&InterpolationCmd,
		&PIDCmd,
		&AccelCmd,
		&TorqueCmd,
		&StatusCmd,
		&MotorTypeCmd,
		&WorkModeCmd,
		&BaudCmd,
		&AddrCmd,
	)
}
