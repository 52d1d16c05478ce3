package servo42

import "encoding/binary"

// Driver builds command frames for one slave address.
//
// Every build method returns a slice of the Driver's internal buffer which
// stays valid until the next build call. A Driver must not be shared between
// goroutines; use one per goroutine.
type Driver struct {
	address byte
	buf     [cmdBufferSize]byte
}

// NewDriver creates a Driver targeting DefaultAddress.
func NewDriver() *Driver {
	return NewDriverWithAddress(DefaultAddress)
}

// NewDriverWithAddress creates a Driver targeting addr.
// The address is not validated.
func NewDriverWithAddress(addr byte) *Driver {
	return &Driver{address: addr}
}

// Address returns the target slave address.
func (d *Driver) Address() byte {
	return d.address
}

// Checksum calculates the 8-bit wraparound sum of b.
func Checksum(b []byte) byte {
	var sum byte
	for _, v := range b {
		sum += v
	}
	return sum
}

func (d *Driver) build(opcode byte, payload ...byte) []byte {
	d.buf[0], d.buf[1] = d.address, opcode
	n := 2 + copy(d.buf[2:len(d.buf)-1], payload)
	d.buf[n] = Checksum(d.buf[:n])
	return d.buf[:n+1]
}

func (d *Driver) buildUint16(opcode byte, v uint16) []byte {
	var b [2]byte
	binary.BigEndian.PutUint16(b[:], v)
	return d.build(opcode, b[:]...)
}

func inverted(v bool) byte {
	if v {
		return 0
	}
	return 1
}

func boolByte(v bool) byte {
	if v {
		return 1
	}
	return 0
}

// EnableMotor enables or disables the motor.
func (d *Driver) EnableMotor(enable bool) []byte {
	return d.build(cmdEnableMotor, boolByte(enable))
}

// RunSpeed runs the motor at a constant speed gear until stopped.
func (d *Driver) RunSpeed(dir Direction, speed byte) ([]byte, error) {
	if speed > MaxSpeed {
		return nil, ErrInvalidValue
	}
	return d.build(cmdRunSpeed, speed|byte(dir)), nil
}

// Stop stops the motor immediately.
func (d *Driver) Stop() []byte {
	return d.build(cmdStop)
}

// SaveClearStatus saves or clears the state set by RunSpeed.
func (d *Driver) SaveClearStatus(op SaveClearStatus) []byte {
	return d.build(cmdSaveClearStatus, byte(op))
}

// RunPosition moves the motor by a relative number of pulses.
func (d *Driver) RunPosition(dir Direction, speed byte, pulses uint32) ([]byte, error) {
	if speed > MaxSpeed {
		return nil, ErrInvalidValue
	}
	var b [5]byte
	b[0] = speed | byte(dir)
	binary.BigEndian.PutUint32(b[1:], pulses)
	return d.build(cmdRunPosition, b[:]...), nil
}

// CalibrateEncoder starts encoder calibration. The motor must be unloaded.
func (d *Driver) CalibrateEncoder() []byte {
	return d.build(cmdCalibrateEncoder, 0x00)
}

// SetMotorType sets the step angle of the attached motor.
func (d *Driver) SetMotorType(t MotorType) []byte {
	return d.build(cmdSetMotorType, byte(t))
}

// SetWorkMode sets the control mode.
// Switching away from WorkModeUart stops serial control.
func (d *Driver) SetWorkMode(m WorkMode) []byte {
	return d.build(cmdSetWorkMode, byte(m))
}

// SetCurrentLimit sets the current limit index.
// Each index step is CurrentStepMilliamps.
func (d *Driver) SetCurrentLimit(index byte) ([]byte, error) {
	if index > MaxCurrentIndex {
		return nil, ErrInvalidValue
	}
	return d.build(cmdSetCurrentLimit, index), nil
}

// CurrentIndexFromMilliamps converts a current in mA to a current limit index.
func CurrentIndexFromMilliamps(ma uint16) (byte, error) {
	index := ma / CurrentStepMilliamps
	if index > uint16(MaxCurrentIndex) {
		return 0, ErrInvalidValue
	}
	return byte(index), nil
}

// SetSubdivision sets the microstepping index.
func (d *Driver) SetSubdivision(index byte) ([]byte, error) {
	if index > MaxSubdivisionIndex {
		return nil, ErrInvalidValue
	}
	return d.build(cmdSetSubdivision, index), nil
}

// SetEnableLogic sets the active level of the EN pin.
func (d *Driver) SetEnableLogic(logic EnLogic) []byte {
	return d.build(cmdSetEnLogic, byte(logic))
}

// SetDirection sets the positive rotation direction.
func (d *Driver) SetDirection(clockwise bool) []byte {
	return d.build(cmdSetDirection, inverted(clockwise))
}

// SetAutoScreenOff enables or disables automatic screen off.
func (d *Driver) SetAutoScreenOff(enable bool) []byte {
	return d.build(cmdSetAutoScreenOff, inverted(enable))
}

// SetStallProtection enables or disables locked-rotor protection.
func (d *Driver) SetStallProtection(enable bool) []byte {
	return d.build(cmdSetProtection, inverted(enable))
}

// SetInterpolation enables or disables step interpolation.
func (d *Driver) SetInterpolation(enable bool) []byte {
	return d.build(cmdSetInterpolation, inverted(enable))
}

// SetBaudRate sets the UART speed. The new speed applies immediately.
func (d *Driver) SetBaudRate(rate BaudRate) []byte {
	return d.build(cmdSetBaudRate, byte(rate))
}

// SetSlaveAddress changes the slave address of the target to addr.
// The Driver keeps its current address.
func (d *Driver) SetSlaveAddress(addr byte) ([]byte, error) {
	if !IsValidAddress(addr) {
		return nil, ErrInvalidValue
	}
	return d.build(cmdSetSlaveAddress, addr-MinAddress), nil
}

// SetZeroMode sets the return-to-zero mode.
func (d *Driver) SetZeroMode(mode ZeroMode) []byte {
	return d.build(cmdSetZeroMode, byte(mode))
}

// SetCurrentAsZero marks the current position as zero.
func (d *Driver) SetCurrentAsZero() []byte {
	return d.build(cmdSetCurrentAsZero, 0x00)
}

// SetZeroSpeed sets the return-to-zero speed index.
func (d *Driver) SetZeroSpeed(speed byte) ([]byte, error) {
	if speed > MaxZeroSpeed {
		return nil, ErrInvalidValue
	}
	return d.build(cmdSetZeroSpeed, speed), nil
}

// SetZeroDirection sets the return-to-zero direction.
func (d *Driver) SetZeroDirection(clockwise bool) []byte {
	return d.build(cmdSetZeroDirection, inverted(clockwise))
}

// GoToZero starts the return-to-zero sequence.
func (d *Driver) GoToZero() []byte {
	return d.build(cmdGoToZero, 0x00)
}

// SetPositionKp sets the position loop proportional coefficient.
func (d *Driver) SetPositionKp(v uint16) []byte {
	return d.buildUint16(cmdSetPositionKp, v)
}

// SetPositionKi sets the position loop integral coefficient.
func (d *Driver) SetPositionKi(v uint16) []byte {
	return d.buildUint16(cmdSetPositionKi, v)
}

// SetPositionKd sets the position loop derivative coefficient.
func (d *Driver) SetPositionKd(v uint16) []byte {
	return d.buildUint16(cmdSetPositionKd, v)
}

// SetAcceleration sets the motor acceleration.
func (d *Driver) SetAcceleration(v uint16) []byte {
	return d.buildUint16(cmdSetAcceleration, v)
}

// SetMaxTorque sets the torque limit.
func (d *Driver) SetMaxTorque(v uint16) ([]byte, error) {
	if v > MaxTorqueLimit {
		return nil, ErrInvalidValue
	}
	return d.buildUint16(cmdSetMaxTorque, v), nil
}

// ReadEncoderValue requests the multi-turn encoder value.
// Decode the reply with ParseEncoderResponse.
func (d *Driver) ReadEncoderValue() []byte {
	return d.build(cmdReadEncoderValue)
}

// ReadPulseCount requests the number of received pulses.
// Decode the reply with ParsePulseCountResponse.
func (d *Driver) ReadPulseCount() []byte {
	return d.build(cmdReadPulseCount)
}

// ReadMotorShaftAngle requests the shaft angle in encoder units.
// Decode the reply with ParseShaftAngleResponse.
func (d *Driver) ReadMotorShaftAngle() []byte {
	return d.build(cmdReadMotorShaftAngle)
}

// ReadMotorShaftAngleError requests the shaft angle error.
// Decode the reply with ParseShaftAngleErrorResponse.
func (d *Driver) ReadMotorShaftAngleError() []byte {
	return d.build(cmdReadMotorShaftAngleError)
}

// ReadEnPinStatus requests the EN pin status.
// Decode the reply with ParseEnPinStatusResponse.
func (d *Driver) ReadEnPinStatus() []byte {
	return d.build(cmdReadEnPinStatus)
}

// ReadReleaseStatus releases locked-rotor protection and reports the result.
// Decode the reply with ParseStatusResponse.
func (d *Driver) ReadReleaseStatus() []byte {
	return d.build(cmdReadReleaseStatus)
}

// ReadShaftStatus requests the blocked/unblocked status of the shaft.
// Decode the reply with ParseShaftStatusResponse.
func (d *Driver) ReadShaftStatus() []byte {
	return d.build(cmdReadShaftStatus)
}
