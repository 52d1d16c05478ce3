package servo42

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// reply appends the checksum of the first sumLen bytes after them.
func reply(sumLen int, b ...byte) []byte {
	frame := append([]byte{}, b[:sumLen]...)
	frame = append(frame, Checksum(frame))
	return append(frame, b[sumLen:]...)
}

func TestScan(t *testing.T) {
	shape := frameShape{size: 4, sumLen: 3}
	frame := reply(3, 0xE1, 0x10, 0x20)
	testCases := []struct {
		name   string
		data   []byte
		expect []byte
	}{
		{"exact", frame, frame},
		{"leading garbage", append([]byte{0xFF, 0xE0, 0x00}, frame...), frame},
		{"trailing garbage", append(append([]byte{}, frame...), 0xE0, 0xE0), frame},
		{"first match wins", append(append([]byte{}, frame...), reply(3, 0xE2, 0x01, 0x02)...), frame},
		{"empty", nil, nil},
		{"too short", frame[:3], nil},
		{"address below range", reply(3, 0xDF, 0x10, 0x20), nil},
		{"address above range", reply(3, 0xEA, 0x10, 0x20), nil},
		{"bad checksum", []byte{0xE1, 0x10, 0x20, 0x00}, nil},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			b, err := scan(tc.data, shape)
			if tc.expect == nil {
				require.Equal(t, ErrInvalidPacket, err)
				require.Nil(t, b)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tc.expect, b)
		})
	}
}

func TestScanTrailer(t *testing.T) {
	shape := frameShape{size: 4, sumLen: 2, trailer: zeroTrailer}
	_, err := scan(reply(2, 0xE0, 0x01, 0x00), shape)
	require.NoError(t, err)
	_, err = scan(reply(2, 0xE0, 0x01, 0x01), shape)
	require.Equal(t, ErrInvalidPacket, err)
}

func TestParseEncoderResponse(t *testing.T) {
	data := []byte{0xE0, 0x00, 0x00, 0x00, 0x00, 0x40, 0x00, 0x20}
	v, err := ParseEncoderResponse(data)
	require.NoError(t, err)
	require.Equal(t, EncoderValue{Carry: 0, Value: 0x4000}, v)
	require.Equal(t, 90.0, v.Degrees())

	v, err = ParseEncoderResponse(append([]byte{0xFF, 0xFE}, data...))
	require.NoError(t, err)
	require.Equal(t, EncoderValue{Carry: 0, Value: 0x4000}, v)

	v, err = ParseEncoderResponse(reply(7, 0xE0, 0xFF, 0xFF, 0xFF, 0xFE, 0x80, 0x00))
	require.NoError(t, err)
	require.Equal(t, EncoderValue{Carry: -2, Value: 0x8000}, v)
	require.Equal(t, -540.0, v.Degrees())
}

func TestParseEncoderResponseInvalid(t *testing.T) {
	testCases := []struct {
		name string
		data []byte
	}{
		{"bad checksum", []byte{0xE0, 0x00, 0x00, 0x00, 0x00, 0x40, 0x00, 0x21}},
		{"flipped checksum bit", []byte{0xE0, 0x00, 0x00, 0x00, 0x00, 0x40, 0x00, 0x20 ^ 0x01}},
		{"flipped payload bit", []byte{0xE0, 0x00, 0x00, 0x00, 0x00, 0x41, 0x00, 0x20}},
		{"truncated", []byte{0xE0, 0x00, 0x00, 0x00, 0x00, 0x40, 0x00}},
		{"truncated with garbage", []byte{0xFF, 0xE0, 0x00, 0x00, 0x00, 0x00, 0x40}},
		{"invalid address", []byte{0xDF, 0x00, 0x00, 0x00, 0x00, 0x40, 0x00, 0x1F}},
		{"empty", []byte{}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseEncoderResponse(tc.data)
			require.Equal(t, ErrInvalidPacket, err)
		})
	}
}

func TestEncoderRoundTrip(t *testing.T) {
	values := []EncoderValue{
		{Carry: 0, Value: 0},
		{Carry: 1, Value: 0xFFFF},
		{Carry: -1, Value: 0x1234},
		{Carry: 0x7FFFFFFF, Value: 0x8000},
		{Carry: -0x80000000, Value: 1},
	}
	for _, v := range values {
		c := uint32(v.Carry)
		data := reply(7, 0xE5, byte(c>>24), byte(c>>16), byte(c>>8), byte(c), byte(v.Value>>8), byte(v.Value))
		parsed, err := ParseEncoderResponse(data)
		require.NoError(t, err)
		require.Equal(t, v, parsed)
	}
}

func TestParseShaftAngleResponse(t *testing.T) {
	testCases := []struct {
		name    string
		data    []byte
		value   int32
		degrees float64
	}{
		{"90", []byte{0xE0, 0x00, 0x00, 0x40, 0x00, 0x20}, 0x4000, 90},
		{"zero", []byte{0xE0, 0x00, 0x00, 0x00, 0x00, 0xE0}, 0, 0},
		{"180", []byte{0xE0, 0x00, 0x00, 0x80, 0x00, 0x60}, 0x8000, 180},
		{"negative", []byte{0xE0, 0xFF, 0xFF, 0xC0, 0x00, 0x9E}, -16384, -90},
		{"multi-turn", reply(5, 0xE2, 0x00, 0x02, 0x00, 0x00), 0x20000, 720},
		{"prefix", []byte{0xFF, 0xFE, 0xE0, 0x00, 0x00, 0x40, 0x00, 0x20}, 0x4000, 90},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			a, err := ParseShaftAngleResponse(tc.data)
			require.NoError(t, err)
			require.Equal(t, tc.value, a.Value)
			require.Equal(t, tc.degrees, a.Degrees())
		})
	}
}

func TestParseShaftAngleResponseInvalid(t *testing.T) {
	for _, data := range [][]byte{
		{0xE0, 0x00, 0x00, 0x40, 0x00, 0x21},
		{0xE0, 0x00, 0x00, 0x40, 0x00},
		{0xDF, 0x00, 0x00, 0x40, 0x00, 0x20},
	} {
		_, err := ParseShaftAngleResponse(data)
		require.Equal(t, ErrInvalidPacket, err)
	}
}

func TestParsePulseCountResponse(t *testing.T) {
	c, err := ParsePulseCountResponse(reply(5, 0xE0, 0x00, 0x00, 0x0C, 0x80))
	require.NoError(t, err)
	require.Equal(t, PulseCount{Value: 3200}, c)
	c, err = ParsePulseCountResponse(reply(5, 0xE0, 0xFF, 0xFF, 0xFF, 0x9C))
	require.NoError(t, err)
	require.Equal(t, PulseCount{Value: -100}, c)
	_, err = ParsePulseCountResponse([]byte{0xE0, 0x00, 0x00, 0x0C, 0x80, 0x00})
	require.Equal(t, ErrInvalidPacket, err)
}

func TestParseShaftAngleErrorResponse(t *testing.T) {
	testCases := []struct {
		name  string
		data  []byte
		value int16
	}{
		{"one degree", []byte{0xE0, 0x00, 0xB7, 0x97, 0x00}, 183},
		{"negative", []byte{0xE0, 0xFF, 0x4A, 0x29, 0x00}, -182},
		{"zero", []byte{0xE0, 0x00, 0x00, 0xE0, 0x00}, 0},
		{"max", []byte{0xE0, 0x7F, 0xFF, 0x5E, 0x00}, 32767},
		{"prefix", []byte{0xFF, 0xFE, 0xE0, 0x00, 0xB7, 0x97, 0x00}, 183},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			e, err := ParseShaftAngleErrorResponse(tc.data)
			require.NoError(t, err)
			require.Equal(t, ShaftAngleError{Value: tc.value}, e)
		})
	}
}

func TestParseShaftAngleErrorResponseInvalid(t *testing.T) {
	testCases := []struct {
		name string
		data []byte
	}{
		{"bad checksum", []byte{0xE0, 0x00, 0xB7, 0x98, 0x00}},
		{"missing trailing zero", []byte{0xE0, 0x00, 0xB7, 0x97, 0x01}},
		{"too short", []byte{0xE0, 0x00, 0xB7, 0x97}},
		{"invalid address", []byte{0xDF, 0x00, 0xB7, 0x97, 0x00}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseShaftAngleErrorResponse(tc.data)
			require.Equal(t, ErrInvalidPacket, err)
		})
	}
}

func TestShaftAngleErrorDegrees(t *testing.T) {
	require.Equal(t, 0.5, ShaftAngleError{Value: 180}.Degrees())
	require.Equal(t, -1.0, ShaftAngleError{Value: -360}.Degrees())
}

func TestParseEnPinStatusResponse(t *testing.T) {
	testCases := []struct {
		data   []byte
		expect EnPinStatus
	}{
		{[]byte{0xE0, 0x01, 0xE1}, EnPinEnabled},
		{[]byte{0xE0, 0x02, 0xE2}, EnPinDisabled},
		{[]byte{0xE0, 0x00, 0xE0}, EnPinError},
		{[]byte{0xFF, 0xFE, 0xE0, 0x01, 0xE1}, EnPinEnabled},
	}
	for _, tc := range testCases {
		t.Run(tc.expect.String(), func(t *testing.T) {
			s, err := ParseEnPinStatusResponse(tc.data)
			require.NoError(t, err)
			require.Equal(t, tc.expect, s)
		})
	}
	for _, data := range [][]byte{
		{0xE0, 0x01, 0xE2},
		{0xE0, 0x03, 0xE3},
		{0xE0, 0x01},
		{0xDF, 0x01, 0xE0},
	} {
		_, err := ParseEnPinStatusResponse(data)
		require.Equal(t, ErrInvalidPacket, err)
	}
}

func TestParseStatusStopsAtFirstFrame(t *testing.T) {
	// a valid frame after one with an unknown status is not considered
	data := []byte{0xE0, 0x05, 0xE5, 0xE0, 0x01, 0xE1}
	_, err := ParseEnPinStatusResponse(data)
	require.Equal(t, ErrInvalidPacket, err)
	_, err = ParseShaftStatusResponse(data)
	require.Equal(t, ErrInvalidPacket, err)
	_, err = ParseStatusResponse([]byte{0xE0, 0x05, 0xE5, 0xE0, 0x01, 0xE1})
	require.Equal(t, ErrInvalidResponse, err)
}

func TestParseShaftStatusResponse(t *testing.T) {
	testCases := []struct {
		data   []byte
		expect ShaftStatus
	}{
		{[]byte{0xE0, 0x01, 0xE1}, ShaftBlocked},
		{[]byte{0xE0, 0x02, 0xE2}, ShaftUnblocked},
		{[]byte{0xE0, 0x00, 0xE0}, ShaftError},
		{[]byte{0xFF, 0xFE, 0xE0, 0x01, 0xE1}, ShaftBlocked},
	}
	for _, tc := range testCases {
		t.Run(tc.expect.String(), func(t *testing.T) {
			s, err := ParseShaftStatusResponse(tc.data)
			require.NoError(t, err)
			require.Equal(t, tc.expect, s)
		})
	}
	for _, data := range [][]byte{
		{},
		{0xE0, 0x01},
		{0xE0, 0x01, 0xE2},
		{0xDF, 0x01, 0xE0},
		{0xE0, 0x03, 0xE3},
	} {
		_, err := ParseShaftStatusResponse(data)
		require.Equal(t, ErrInvalidPacket, err)
	}
}

func TestParseStatusResponse(t *testing.T) {
	r, err := ParseStatusResponse([]byte{0x00, 0xE0, 0x01, 0xE1})
	require.NoError(t, err)
	require.True(t, r.IsSuccess())
	r, err = ParseStatusResponse([]byte{0xE3, 0x00, 0xE3})
	require.NoError(t, err)
	require.True(t, r.IsFailure())
	_, err = ParseStatusResponse([]byte{0xE0, 0x02, 0xE2})
	require.Equal(t, ErrInvalidResponse, err)
	_, err = ParseStatusResponse([]byte{0xE0, 0x01, 0xE2})
	require.Equal(t, ErrInvalidPacket, err)
}

func TestResponseFromByte(t *testing.T) {
	r, err := ResponseFromByte(0x01)
	require.NoError(t, err)
	require.Equal(t, Success, r)
	require.True(t, r.IsSuccess())
	require.False(t, r.IsFailure())
	r, err = ResponseFromByte(0x00)
	require.NoError(t, err)
	require.Equal(t, Failure, r)
	require.True(t, r.IsFailure())
	_, err = ResponseFromByte(0x02)
	require.Equal(t, ErrInvalidResponse, err)
}

func TestParseIdempotent(t *testing.T) {
	data := []byte{0xFF, 0xE0, 0x00, 0x00, 0x00, 0x00, 0x40, 0x00, 0x20}
	v1, err1 := ParseEncoderResponse(data)
	v2, err2 := ParseEncoderResponse(data)
	require.Equal(t, v1, v2)
	require.Equal(t, err1, err2)
	require.Equal(t, []byte{0xFF, 0xE0, 0x00, 0x00, 0x00, 0x00, 0x40, 0x00, 0x20}, data)
}
