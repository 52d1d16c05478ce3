package servo42

import "errors"

var (
	// ErrInvalidValue indicates a command parameter exceeds its maximum.
	ErrInvalidValue = errors.New("invalid value")
	// ErrInvalidPacket indicates no valid reply frame was found in the data.
	ErrInvalidPacket = errors.New("invalid packet")
	// ErrInvalidResponse indicates a status byte is neither success nor failure.
	ErrInvalidResponse = errors.New("invalid response")
)
