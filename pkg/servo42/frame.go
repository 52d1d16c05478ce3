package servo42

// frameShape describes a reply frame of a single message family.
// The checksum byte directly follows the first sumLen bytes.
type frameShape struct {
	size    int
	sumLen  int
	trailer func(frame []byte) bool
}

var (
	encoderShape         = frameShape{size: 8, sumLen: 7}
	shaftAngleShape      = frameShape{size: 6, sumLen: 5}
	shaftAngleErrorShape = frameShape{size: 5, sumLen: 3, trailer: zeroTrailer}
	statusShape          = frameShape{size: 3, sumLen: 2}
)

// The angle error reply ends with an undocumented 0x00 byte.
func zeroTrailer(frame []byte) bool {
	return frame[len(frame)-1] == 0x00
}

// match checks if data starts with a valid frame of this shape.
func (s frameShape) match(data []byte) bool {
	if len(data) < s.size || !IsValidAddress(data[0]) {
		return false
	}
	frame := data[:s.size]
	if Checksum(frame[:s.sumLen]) != frame[s.sumLen] {
		return false
	}
	return s.trailer == nil || s.trailer(frame)
}

// scan returns the first valid frame of shape in data.
func scan(data []byte, shape frameShape) ([]byte, error) {
	for off := 0; off+shape.size <= len(data); off++ {
		if shape.match(data[off:]) {
			return data[off : off+shape.size], nil
		}
	}
	return nil, ErrInvalidPacket
}
