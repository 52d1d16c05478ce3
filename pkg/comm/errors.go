package comm

import (
	"errors"
	"fmt"
)

var (
	// ErrNotReady indicates the Link is not running.
	ErrNotReady = errors.New("not ready")
	// ErrNoReply indicates no complete reply arrived within the timeout.
	ErrNoReply = errors.New("no reply")
)

// CommandError reports a command acknowledged with failure.
type CommandError struct {
	Opcode byte
}

// Error implements error.
func (e *CommandError) Error() string {
	return fmt.Sprintf("command 0x%02x failed", e.Opcode)
}
