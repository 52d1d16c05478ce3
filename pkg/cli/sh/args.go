package sh

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/robotalks/servo42.go/pkg/servo42"
)

// ParseByte parses a decimal or 0x-prefixed byte argument.
func ParseByte(name, s string) (byte, error) {
	v, err := strconv.ParseUint(s, 0, 8)
	if err != nil {
		return 0, fmt.Errorf("Invalid %s: %v", name, err)
	}
	return byte(v), nil
}

// ParseUint16 parses a decimal or 0x-prefixed 16-bit argument.
func ParseUint16(name, s string) (uint16, error) {
	v, err := strconv.ParseUint(s, 0, 16)
	if err != nil {
		return 0, fmt.Errorf("Invalid %s: %v", name, err)
	}
	return uint16(v), nil
}

// ParseUint32 parses a decimal or 0x-prefixed 32-bit argument.
func ParseUint32(name, s string) (uint32, error) {
	v, err := strconv.ParseUint(s, 0, 32)
	if err != nil {
		return 0, fmt.Errorf("Invalid %s: %v", name, err)
	}
	return uint32(v), nil
}

// ParseFloat parses a float argument.
func ParseFloat(name, s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("Invalid %s: %v", name, err)
	}
	return v, nil
}

// ParseOnOff parses on/off style switches.
func ParseOnOff(name, s string) (bool, error) {
	switch strings.ToLower(s) {
	case "on", "1", "true", "yes", "enable":
		return true, nil
	case "off", "0", "false", "no", "disable":
		return false, nil
	}
	return false, fmt.Errorf("Invalid %s: %q, expect on or off", name, s)
}

// ParseClockwise parses cw/ccw.
func ParseClockwise(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "cw":
		return true, nil
	case "ccw":
		return false, nil
	}
	return false, fmt.Errorf("Invalid DIR: %q, expect cw or ccw", s)
}

// ParseDirection parses fwd/rev.
func ParseDirection(s string) (servo42.Direction, error) {
	switch strings.ToLower(s) {
	case "fwd", "forward", "+":
		return servo42.Forward, nil
	case "rev", "reverse", "-":
		return servo42.Reverse, nil
	}
	return 0, fmt.Errorf("Invalid DIR: %q, expect fwd or rev", s)
}
