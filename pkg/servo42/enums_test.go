package servo42

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEnumFromByte(t *testing.T) {
	for b := 0; b < 0x100; b++ {
		_, err := MotorTypeFromByte(byte(b))
		require.Equal(t, b <= 0x01, err == nil, "motor type 0x%02x", b)
		_, err = WorkModeFromByte(byte(b))
		require.Equal(t, b <= 0x02, err == nil, "work mode 0x%02x", b)
		_, err = EnLogicFromByte(byte(b))
		require.Equal(t, b <= 0x02, err == nil, "en logic 0x%02x", b)
		_, err = ZeroModeFromByte(byte(b))
		require.Equal(t, b <= 0x02, err == nil, "zero mode 0x%02x", b)
		_, err = BaudRateFromByte(byte(b))
		require.Equal(t, b >= 0x01 && b <= 0x06, err == nil, "baud rate 0x%02x", b)
	}
	_, err := WorkModeFromByte(0x03)
	require.Equal(t, ErrInvalidValue, err)
}

func TestBaudRate(t *testing.T) {
	r, err := BaudRateFromBps(38400)
	require.NoError(t, err)
	require.Equal(t, Baud38400, r)
	require.Equal(t, 115200, Baud115200.Bps())
	require.Equal(t, "9600", Baud9600.String())
	require.Equal(t, 0, BaudRate(0x07).Bps())
	_, err = BaudRateFromBps(4800)
	require.Equal(t, ErrInvalidValue, err)
}

func TestEnumStrings(t *testing.T) {
	require.Equal(t, "forward", Forward.String())
	require.Equal(t, "reverse", Reverse.String())
	require.Equal(t, "always-on", EnLogicAlwaysOn.String())
	require.Equal(t, "near", ZeroModeNearMode.String())
	require.Equal(t, "clear", StatusClear.String())
	require.Equal(t, "blocked", ShaftBlocked.String())
	require.Equal(t, "ShaftStatus(0x07)", ShaftStatus(7).String())
	require.Equal(t, "success", Success.String())
}
