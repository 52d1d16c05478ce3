package servo42

import "fmt"

// Direction is OR'd into the speed byte of run commands.
type Direction byte

// Directions.
const (
	Forward Direction = 0x80
	Reverse Direction = 0x00
)

func (d Direction) String() string {
	if d == Forward {
		return "forward"
	}
	return "reverse"
}

// MotorType selects the step angle of the attached motor.
type MotorType byte

// Motor types.
const (
	MotorDeg09 MotorType = 0x00
	MotorDeg18 MotorType = 0x01
)

// MotorTypeFromByte validates b as a MotorType.
func MotorTypeFromByte(b byte) (MotorType, error) {
	switch t := MotorType(b); t {
	case MotorDeg09, MotorDeg18:
		return t, nil
	}
	return 0, ErrInvalidValue
}

func (t MotorType) String() string {
	switch t {
	case MotorDeg09:
		return "0.9deg"
	case MotorDeg18:
		return "1.8deg"
	}
	return fmt.Sprintf("MotorType(0x%02x)", byte(t))
}

// WorkMode selects how the controller receives motion commands.
type WorkMode byte

// Work modes.
const (
	WorkModeOpen WorkMode = 0x00
	WorkModeVfoc WorkMode = 0x01
	WorkModeUart WorkMode = 0x02
)

// WorkModeFromByte validates b as a WorkMode.
func WorkModeFromByte(b byte) (WorkMode, error) {
	switch m := WorkMode(b); m {
	case WorkModeOpen, WorkModeVfoc, WorkModeUart:
		return m, nil
	}
	return 0, ErrInvalidValue
}

func (m WorkMode) String() string {
	switch m {
	case WorkModeOpen:
		return "open"
	case WorkModeVfoc:
		return "vfoc"
	case WorkModeUart:
		return "uart"
	}
	return fmt.Sprintf("WorkMode(0x%02x)", byte(m))
}

// EnLogic is the active level of the EN pin.
type EnLogic byte

// EN pin logic levels.
const (
	EnLogicLow      EnLogic = 0x00
	EnLogicHigh     EnLogic = 0x01
	EnLogicAlwaysOn EnLogic = 0x02
)

// EnLogicFromByte validates b as an EnLogic.
func EnLogicFromByte(b byte) (EnLogic, error) {
	switch l := EnLogic(b); l {
	case EnLogicLow, EnLogicHigh, EnLogicAlwaysOn:
		return l, nil
	}
	return 0, ErrInvalidValue
}

func (l EnLogic) String() string {
	switch l {
	case EnLogicLow:
		return "low"
	case EnLogicHigh:
		return "high"
	case EnLogicAlwaysOn:
		return "always-on"
	}
	return fmt.Sprintf("EnLogic(0x%02x)", byte(l))
}

// BaudRate is the UART speed selector.
type BaudRate byte

// Baud rates.
const (
	Baud9600   BaudRate = 0x01
	Baud19200  BaudRate = 0x02
	Baud25000  BaudRate = 0x03
	Baud38400  BaudRate = 0x04
	Baud57600  BaudRate = 0x05
	Baud115200 BaudRate = 0x06
)

var baudRateBps = map[BaudRate]int{
	Baud9600:   9600,
	Baud19200:  19200,
	Baud25000:  25000,
	Baud38400:  38400,
	Baud57600:  57600,
	Baud115200: 115200,
}

// BaudRateFromByte validates b as a BaudRate.
func BaudRateFromByte(b byte) (BaudRate, error) {
	if _, ok := baudRateBps[BaudRate(b)]; ok {
		return BaudRate(b), nil
	}
	return 0, ErrInvalidValue
}

// BaudRateFromBps finds the selector for a bits-per-second value.
func BaudRateFromBps(bps int) (BaudRate, error) {
	for r, v := range baudRateBps {
		if v == bps {
			return r, nil
		}
	}
	return 0, ErrInvalidValue
}

// Bps returns bits per second, or 0 for an unknown selector.
func (r BaudRate) Bps() int {
	return baudRateBps[r]
}

func (r BaudRate) String() string {
	if bps, ok := baudRateBps[r]; ok {
		return fmt.Sprintf("%d", bps)
	}
	return fmt.Sprintf("BaudRate(0x%02x)", byte(r))
}

// ZeroMode selects the return-to-zero behavior.
type ZeroMode byte

// Zero modes.
const (
	ZeroModeDisable  ZeroMode = 0x00
	ZeroModeDirMode  ZeroMode = 0x01
	ZeroModeNearMode ZeroMode = 0x02
)

// ZeroModeFromByte validates b as a ZeroMode.
func ZeroModeFromByte(b byte) (ZeroMode, error) {
	switch m := ZeroMode(b); m {
	case ZeroModeDisable, ZeroModeDirMode, ZeroModeNearMode:
		return m, nil
	}
	return 0, ErrInvalidValue
}

func (m ZeroMode) String() string {
	switch m {
	case ZeroModeDisable:
		return "disable"
	case ZeroModeDirMode:
		return "dir"
	case ZeroModeNearMode:
		return "near"
	}
	return fmt.Sprintf("ZeroMode(0x%02x)", byte(m))
}

// SaveClearStatus is the operand of the save/clear status command.
// After a successful save the controller disables itself and must be
// re-enabled.
type SaveClearStatus byte

// Save/clear operations.
const (
	StatusSave  SaveClearStatus = 0xC8
	StatusClear SaveClearStatus = 0xCA
)

func (s SaveClearStatus) String() string {
	switch s {
	case StatusSave:
		return "save"
	case StatusClear:
		return "clear"
	}
	return fmt.Sprintf("SaveClearStatus(0x%02x)", byte(s))
}

// EnPinStatus is the reply of the read EN pin status command.
type EnPinStatus byte

// EN pin states.
const (
	EnPinError    EnPinStatus = 0x00
	EnPinEnabled  EnPinStatus = 0x01
	EnPinDisabled EnPinStatus = 0x02
)

func enPinStatusFromByte(b byte) (EnPinStatus, bool) {
	switch s := EnPinStatus(b); s {
	case EnPinError, EnPinEnabled, EnPinDisabled:
		return s, true
	}
	return 0, false
}

func (s EnPinStatus) String() string {
	switch s {
	case EnPinError:
		return "error"
	case EnPinEnabled:
		return "enabled"
	case EnPinDisabled:
		return "disabled"
	}
	return fmt.Sprintf("EnPinStatus(0x%02x)", byte(s))
}

// ShaftStatus is the reply of the read shaft status command.
type ShaftStatus byte

// Shaft states.
const (
	ShaftError     ShaftStatus = 0x00
	ShaftBlocked   ShaftStatus = 0x01
	ShaftUnblocked ShaftStatus = 0x02
)

func shaftStatusFromByte(b byte) (ShaftStatus, bool) {
	switch s := ShaftStatus(b); s {
	case ShaftError, ShaftBlocked, ShaftUnblocked:
		return s, true
	}
	return 0, false
}

func (s ShaftStatus) String() string {
	switch s {
	case ShaftError:
		return "error"
	case ShaftBlocked:
		return "blocked"
	case ShaftUnblocked:
		return "unblocked"
	}
	return fmt.Sprintf("ShaftStatus(0x%02x)", byte(s))
}

// Response is the generic acknowledgement of setting commands.
type Response byte

// Responses.
const (
	Failure Response = 0x00
	Success Response = 0x01
)

// ResponseFromByte converts a status byte into a Response.
func ResponseFromByte(b byte) (Response, error) {
	switch r := Response(b); r {
	case Failure, Success:
		return r, nil
	}
	return 0, ErrInvalidResponse
}

// IsSuccess checks if the command succeeded.
func (r Response) IsSuccess() bool {
	return r == Success
}

// IsFailure checks if the command failed.
func (r Response) IsFailure() bool {
	return r == Failure
}

func (r Response) String() string {
	switch r {
	case Failure:
		return "failure"
	case Success:
		return "success"
	}
	return fmt.Sprintf("Response(0x%02x)", byte(r))
}
