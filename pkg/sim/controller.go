package sim

import (
	"encoding/binary"
	"io"
	"math"
	"sync"
	"time"

	"github.com/golang/glog"

	"github.com/robotalks/servo42.go/pkg/servo42"
)

const (
	defaultMicrosteps = 16
	replyQueueSize    = 16
	zeroRateStep      = 1000.0
)

// Controller simulates a SERVO42 controller attached to a serial line.
// Writes carry command frames, replies are returned by Read.
type Controller struct {
	// Now is the time source of the motion model.
	Now func() time.Time

	lock    sync.Mutex
	address byte
	rx      []byte
	pending []byte
	replies chan []byte
	closeCh chan struct{}
	closed  sync.Once

	enabled    bool
	blocked    bool
	microsteps float64
	pulses     float64
	zero       float64
	zeroSpeed  byte
	move       *motion
	settings   map[byte][]byte
}

// New creates a simulated controller listening on address.
func New(address byte) *Controller {
	return &Controller{
		Now:        time.Now,
		address:    address,
		replies:    make(chan []byte, replyQueueSize),
		closeCh:    make(chan struct{}),
		microsteps: defaultMicrosteps,
		settings:   make(map[byte][]byte),
	}
}

// Address returns the current slave address.
func (c *Controller) Address() byte {
	c.lock.Lock()
	defer c.lock.Unlock()
	return c.address
}

// Enabled reports if the motor is energized.
func (c *Controller) Enabled() bool {
	c.lock.Lock()
	defer c.lock.Unlock()
	return c.enabled
}

// Position returns received pulses relative to the zero point.
func (c *Controller) Position() float64 {
	c.lock.Lock()
	defer c.lock.Unlock()
	c.settle()
	return c.pulses - c.zero
}

// Moving reports if a move is in progress.
func (c *Controller) Moving() bool {
	c.lock.Lock()
	defer c.lock.Unlock()
	c.settle()
	return c.move != nil
}

// Setting returns the last payload accepted for a setting opcode.
func (c *Controller) Setting(opcode byte) ([]byte, bool) {
	c.lock.Lock()
	defer c.lock.Unlock()
	v, ok := c.settings[opcode]
	return v, ok
}

// Block simulates a locked rotor: the move stops and further
// motion is refused until the protection is released.
func (c *Controller) Block() {
	c.lock.Lock()
	defer c.lock.Unlock()
	c.settle()
	c.move, c.blocked = nil, true
}

// Write implements io.Writer.
func (c *Controller) Write(p []byte) (int, error) {
	select {
	case <-c.closeCh:
		return 0, io.ErrClosedPipe
	default:
	}
	c.lock.Lock()
	c.rx = append(c.rx, p...)
	c.processLocked()
	c.lock.Unlock()
	return len(p), nil
}

// Read implements io.Reader.
func (c *Controller) Read(p []byte) (int, error) {
	if len(c.pending) == 0 {
		select {
		case reply := <-c.replies:
			c.pending = reply
		case <-c.closeCh:
			return 0, io.EOF
		}
	}
	n := copy(p, c.pending)
	c.pending = c.pending[n:]
	return n, nil
}

// Close implements io.Closer.
func (c *Controller) Close() error {
	c.closed.Do(func() { close(c.closeCh) })
	return nil
}

func (c *Controller) processLocked() {
	for len(c.rx) > 0 {
		if !servo42.IsValidAddress(c.rx[0]) {
			c.drop(1)
			continue
		}
		if len(c.rx) < 2 {
			return
		}
		cmd, ok := commands[c.rx[1]]
		if !ok {
			c.drop(1)
			continue
		}
		size := cmd.payload + 3
		if len(c.rx) < size {
			return
		}
		frame := c.rx[:size]
		if servo42.Checksum(frame[:size-1]) != frame[size-1] {
			c.drop(1)
			continue
		}
		if frame[0] == c.address {
			c.settle()
			addr := c.address
			if reply := cmd.handle(c, frame[2:size-1]); reply != nil {
				c.reply(addr, reply, cmd.trailer)
			}
		} else {
			glog.V(3).Infof("sim 0x%02x: ignore frame for 0x%02x", c.address, frame[0])
		}
		c.rx = c.rx[size:]
	}
}

func (c *Controller) drop(n int) {
	glog.V(3).Infof("sim 0x%02x: drop % x", c.address, c.rx[:n])
	c.rx = c.rx[n:]
}

func (c *Controller) reply(addr byte, body, trailer []byte) {
	frame := make([]byte, 0, len(body)+len(trailer)+2)
	frame = append(frame, addr)
	frame = append(frame, body...)
	frame = append(frame, servo42.Checksum(frame))
	frame = append(frame, trailer...)
	select {
	case c.replies <- frame:
	default:
		glog.Warningf("sim 0x%02x: reply queue full, drop % x", addr, frame)
	}
}

// settle advances the motion model to now.
func (c *Controller) settle() {
	if c.move == nil {
		return
	}
	pos, done := c.move.estimate(c.Now())
	c.pulses = pos
	if done {
		c.move = nil
	}
}

func (c *Controller) pulsesPerRevolution() float64 {
	return servo42.StepsPerRevolution * c.microsteps
}

// turns is the shaft position in revolutions from the zero point.
func (c *Controller) turns() float64 {
	return (c.pulses - c.zero) / c.pulsesPerRevolution()
}

func (c *Controller) canMove() bool {
	return c.enabled && !c.blocked
}

func status(ok bool) []byte {
	if ok {
		return []byte{byte(servo42.Success)}
	}
	return []byte{byte(servo42.Failure)}
}

func uint32Bytes(v uint32) []byte {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], v)
	return b[:]
}

func saturateInt32(v float64) int32 {
	switch {
	case v >= math.MaxInt32:
		return math.MaxInt32
	case v <= math.MinInt32:
		return math.MinInt32
	}
	return int32(v)
}
