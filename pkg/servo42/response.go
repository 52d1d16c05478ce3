package servo42

import "encoding/binary"

// EncoderValue is the multi-turn absolute encoder reading.
type EncoderValue struct {
	// Carry is the number of full turns, signed.
	Carry int32
	// Value is the position within the current turn.
	Value uint16
}

// Degrees converts the reading to total degrees including full turns.
func (v EncoderValue) Degrees() float64 {
	return float64(v.Carry)*360 + EncoderRawToDegrees(v.Value)
}

// ShaftAngle is the shaft angle in encoder units, 65536 per turn.
type ShaftAngle struct {
	Value int32
}

// Degrees converts the angle to degrees.
func (a ShaftAngle) Degrees() float64 {
	return float64(a.Value) / EncoderResolution * 360
}

// ShaftAngleError is the difference between target and actual angle.
type ShaftAngleError struct {
	Value int16
}

// Degrees converts the error to degrees.
//
// The scale differs from ShaftAngle.Degrees. It matches how the controller
// reports the error and is kept as-is.
func (e ShaftAngleError) Degrees() float64 {
	return float64(e.Value) / 360
}

// PulseCount is the number of step pulses received by the controller.
type PulseCount struct {
	Value int32
}

// ParseEncoderResponse decodes the reply of ReadEncoderValue.
//
//	[addr][carry(4)][value(2)][sum]
func ParseEncoderResponse(data []byte) (EncoderValue, error) {
	frame, err := scan(data, encoderShape)
	if err != nil {
		return EncoderValue{}, err
	}
	return EncoderValue{
		Carry: int32(binary.BigEndian.Uint32(frame[1:5])),
		Value: binary.BigEndian.Uint16(frame[5:7]),
	}, nil
}

// ParseShaftAngleResponse decodes the reply of ReadMotorShaftAngle.
//
//	[addr][angle(4)][sum]
func ParseShaftAngleResponse(data []byte) (ShaftAngle, error) {
	frame, err := scan(data, shaftAngleShape)
	if err != nil {
		return ShaftAngle{}, err
	}
	return ShaftAngle{Value: int32(binary.BigEndian.Uint32(frame[1:5]))}, nil
}

// ParsePulseCountResponse decodes the reply of ReadPulseCount.
//
//	[addr][pulses(4)][sum]
func ParsePulseCountResponse(data []byte) (PulseCount, error) {
	frame, err := scan(data, shaftAngleShape)
	if err != nil {
		return PulseCount{}, err
	}
	return PulseCount{Value: int32(binary.BigEndian.Uint32(frame[1:5]))}, nil
}

// ParseShaftAngleErrorResponse decodes the reply of ReadMotorShaftAngleError.
//
//	[addr][error(2)][sum][0x00]
func ParseShaftAngleErrorResponse(data []byte) (ShaftAngleError, error) {
	frame, err := scan(data, shaftAngleErrorShape)
	if err != nil {
		return ShaftAngleError{}, err
	}
	return ShaftAngleError{Value: int16(binary.BigEndian.Uint16(frame[1:3]))}, nil
}

// ParseEnPinStatusResponse decodes the reply of ReadEnPinStatus.
//
//	[addr][status][sum]
func ParseEnPinStatusResponse(data []byte) (EnPinStatus, error) {
	frame, err := scan(data, statusShape)
	if err != nil {
		return 0, err
	}
	status, ok := enPinStatusFromByte(frame[1])
	if !ok {
		return 0, ErrInvalidPacket
	}
	return status, nil
}

// ParseShaftStatusResponse decodes the reply of ReadShaftStatus.
//
//	[addr][status][sum]
func ParseShaftStatusResponse(data []byte) (ShaftStatus, error) {
	frame, err := scan(data, statusShape)
	if err != nil {
		return 0, err
	}
	status, ok := shaftStatusFromByte(frame[1])
	if !ok {
		return 0, ErrInvalidPacket
	}
	return status, nil
}

// ParseStatusResponse decodes the success/failure acknowledgement sent for
// setting and motion commands.
//
//	[addr][status][sum]
func ParseStatusResponse(data []byte) (Response, error) {
	frame, err := scan(data, statusShape)
	if err != nil {
		return 0, err
	}
	return ResponseFromByte(frame[1])
}
