package servo42

const (
	// DefaultAddress is the factory slave address.
	DefaultAddress byte = 0xE0
	// MinAddress is the lowest valid slave address.
	MinAddress byte = 0xE0
	// MaxAddress is the highest valid slave address.
	MaxAddress byte = 0xE9

	// MaxSpeed is the highest speed gear for run commands.
	MaxSpeed byte = 0x7F
	// MaxCurrentIndex is the highest current limit index.
	MaxCurrentIndex byte = 0x0F
	// MaxSubdivisionIndex is the highest microstepping index.
	MaxSubdivisionIndex byte = 0x08
	// MaxZeroSpeed is the highest return-to-zero speed index.
	MaxZeroSpeed byte = 0x04
	// MaxTorqueLimit is the highest accepted torque limit.
	MaxTorqueLimit uint16 = 0x4B0

	// CurrentStepMilliamps is the current per unit of current limit index.
	CurrentStepMilliamps uint16 = 200
)

const cmdBufferSize = 10

// Opcodes.
const (
	cmdReadEncoderValue         byte = 0x30
	cmdReadPulseCount           byte = 0x33
	cmdReadMotorShaftAngle      byte = 0x36
	cmdReadMotorShaftAngleError byte = 0x39
	cmdReadEnPinStatus          byte = 0x3A
	cmdReadReleaseStatus        byte = 0x3D
	cmdReadShaftStatus          byte = 0x3E

	cmdCalibrateEncoder byte = 0x80
	cmdSetMotorType     byte = 0x81
	cmdSetWorkMode      byte = 0x82
	cmdSetCurrentLimit  byte = 0x83
	cmdSetSubdivision   byte = 0x84
	cmdSetEnLogic       byte = 0x85
	cmdSetDirection     byte = 0x86
	cmdSetAutoScreenOff byte = 0x87
	cmdSetProtection    byte = 0x88
	cmdSetInterpolation byte = 0x89
	cmdSetBaudRate      byte = 0x8A
	cmdSetSlaveAddress  byte = 0x8B
	cmdSetZeroMode      byte = 0x90
	cmdSetCurrentAsZero byte = 0x91
	cmdSetZeroSpeed     byte = 0x92
	cmdSetZeroDirection byte = 0x93
	cmdGoToZero         byte = 0x94
	cmdSetPositionKp    byte = 0xA1
	cmdSetPositionKi    byte = 0xA2
	cmdSetPositionKd    byte = 0xA3
	cmdSetAcceleration  byte = 0xA4
	cmdSetMaxTorque     byte = 0xA5
	cmdEnableMotor      byte = 0xF3
	cmdRunSpeed         byte = 0xF6
	cmdStop             byte = 0xF7
	cmdRunPosition      byte = 0xFD
	cmdSaveClearStatus  byte = 0xFF
)

// IsValidAddress checks if addr is within MinAddress..MaxAddress.
func IsValidAddress(addr byte) bool {
	return addr >= MinAddress && addr <= MaxAddress
}
