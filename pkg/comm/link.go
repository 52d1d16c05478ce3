package comm

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/golang/glog"
)

// CompleteFunc reports whether the bytes received so far contain a
// complete reply.
type CompleteFunc func(data []byte) bool

// Link exchanges frames over a ReadWriter, one exchange at a time.
// A Link must be created with NewLink.
type Link struct {
	ReadWriter io.ReadWriter
	// Timeout is the reply window of a single exchange.
	Timeout time.Duration

	lock    sync.Mutex
	rxCh    chan []byte
	running bool
	runLock sync.RWMutex
}

// DefaultTimeout is the reply window used by NewLink.
const DefaultTimeout = 100 * time.Millisecond

// NewLink creates a Link.
func NewLink(rw io.ReadWriter) *Link {
	return &Link{
		ReadWriter: rw,
		Timeout:    DefaultTimeout,
		rxCh:       make(chan []byte, 64),
	}
}

// IsRunning indicates if Run is receiving bytes.
func (l *Link) IsRunning() bool {
	l.runLock.RLock()
	defer l.runLock.RUnlock()
	return l.running
}

func (l *Link) setRunning(running bool) {
	l.runLock.Lock()
	l.running = running
	l.runLock.Unlock()
}

// Run receives bytes in the background until ctx is done or the
// ReadWriter fails.
func (l *Link) Run(ctx context.Context) error {
	if l.rxCh == nil {
		return ErrNotReady
	}
	errCh := make(chan error, 1)
	subCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	l.setRunning(true)
	defer l.setRunning(false)
	go l.readLoop(subCtx, errCh)
	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (l *Link) readLoop(ctx context.Context, errCh chan error) {
	buf := make([]byte, 64)
	for {
		n, err := l.ReadWriter.Read(buf)
		if n > 0 {
			chunk := make([]byte, n)
			copy(chunk, buf[:n])
			select {
			case l.rxCh <- chunk:
			case <-ctx.Done():
				return
			}
		}
		if err != nil {
			errCh <- err
			return
		}
		select {
		case <-ctx.Done():
			return
		default:
		}
	}
}

// Send writes a frame without waiting for a reply.
func (l *Link) Send(frame []byte) error {
	l.lock.Lock()
	defer l.lock.Unlock()
	return l.write(frame)
}

// Exchange writes a frame and collects reply bytes until complete accepts
// them. On timeout the bytes received so far are returned with ErrNoReply.
func (l *Link) Exchange(ctx context.Context, frame []byte, complete CompleteFunc) ([]byte, error) {
	if l.rxCh == nil || !l.IsRunning() {
		return nil, ErrNotReady
	}
	l.lock.Lock()
	defer l.lock.Unlock()

	l.drain()
	if err := l.write(frame); err != nil {
		return nil, err
	}

	timer := time.NewTimer(l.Timeout)
	defer timer.Stop()
	var reply []byte
	for {
		select {
		case chunk := <-l.rxCh:
			reply = append(reply, chunk...)
			if complete(reply) {
				glog.V(2).Infof("RX % x", reply)
				return reply, nil
			}
		case <-timer.C:
			glog.V(2).Infof("RX timeout % x", reply)
			return reply, ErrNoReply
		case <-ctx.Done():
			return reply, ctx.Err()
		}
	}
}

func (l *Link) write(frame []byte) error {
	glog.V(2).Infof("TX % x", frame)
	_, err := l.ReadWriter.Write(frame)
	return err
}

// drain drops bytes received outside of an exchange.
func (l *Link) drain() {
	for {
		select {
		case chunk := <-l.rxCh:
			glog.V(3).Infof("drop % x", chunk)
		default:
			return
		}
	}
}
