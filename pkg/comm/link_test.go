package comm

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// fakePort replies to each write with the next canned reply.
type fakePort struct {
	readCh  chan []byte
	writeCh chan []byte
	replies [][]byte
}

func newFakePort(replies ...[]byte) *fakePort {
	return &fakePort{
		readCh:  make(chan []byte, 16),
		writeCh: make(chan []byte, 16),
		replies: replies,
	}
}

func (p *fakePort) Read(b []byte) (int, error) {
	chunk, ok := <-p.readCh
	if !ok {
		return 0, io.EOF
	}
	return copy(b, chunk), nil
}

func (p *fakePort) Write(b []byte) (int, error) {
	p.writeCh <- append([]byte{}, b...)
	if len(p.replies) > 0 {
		reply := p.replies[0]
		p.replies = p.replies[1:]
		// deliver the reply in two chunks like a slow UART would.
		if len(reply) > 1 {
			p.readCh <- reply[:1]
			p.readCh <- reply[1:]
		} else if len(reply) > 0 {
			p.readCh <- reply
		}
	}
	return len(b), nil
}

func minLen(n int) CompleteFunc {
	return func(b []byte) bool { return len(b) >= n }
}

func runLink(t *testing.T, l *Link) (context.Context, func()) {
	ctx, cancel := context.WithCancel(context.Background())
	go l.Run(ctx)
	for deadline := time.Now().Add(time.Second); !l.IsRunning(); {
		if time.Now().After(deadline) {
			t.Fatal("link not running")
		}
		time.Sleep(time.Millisecond)
	}
	return ctx, cancel
}

func TestLinkExchange(t *testing.T) {
	port := newFakePort([]byte{0xE0, 0x01, 0xE1})
	l := NewLink(port)
	ctx, cancel := runLink(t, l)
	defer cancel()

	reply, err := l.Exchange(ctx, []byte{0xE0, 0xF3, 0x01, 0xD4}, minLen(3))
	require.NoError(t, err)
	require.Equal(t, []byte{0xE0, 0x01, 0xE1}, reply)
	require.Equal(t, []byte{0xE0, 0xF3, 0x01, 0xD4}, <-port.writeCh)
}

func TestLinkExchangeTimeout(t *testing.T) {
	port := newFakePort([]byte{0xE0})
	l := NewLink(port)
	l.Timeout = 10 * time.Millisecond
	ctx, cancel := runLink(t, l)
	defer cancel()

	reply, err := l.Exchange(ctx, []byte{0xE0, 0xF7, 0xD7}, minLen(3))
	require.Equal(t, ErrNoReply, err)
	require.Equal(t, []byte{0xE0}, reply)
}

func TestLinkDropsStaleBytes(t *testing.T) {
	port := newFakePort(nil, []byte{0xE0, 0x02, 0xE2})
	l := NewLink(port)
	ctx, cancel := runLink(t, l)
	defer cancel()

	require.NoError(t, l.Send([]byte{0xE0, 0xF7, 0xD7}))
	port.readCh <- []byte{0xAA, 0xBB}
	// give the read loop a chance to queue the stale bytes.
	for deadline := time.Now().Add(time.Second); len(l.rxCh) == 0 && time.Now().Before(deadline); {
		time.Sleep(time.Millisecond)
	}
	reply, err := l.Exchange(ctx, []byte{0xE0, 0x3A, 0x1A}, minLen(3))
	require.NoError(t, err)
	require.Equal(t, []byte{0xE0, 0x02, 0xE2}, reply)
}

func TestLinkNotReady(t *testing.T) {
	l := NewLink(newFakePort())
	_, err := l.Exchange(context.Background(), []byte{0xE0, 0xF7, 0xD7}, minLen(3))
	require.Equal(t, ErrNotReady, err)
}

func TestLinkZeroValue(t *testing.T) {
	l := &Link{ReadWriter: newFakePort(), Timeout: time.Second}
	require.Equal(t, ErrNotReady, l.Run(context.Background()))
	_, err := l.Exchange(context.Background(), []byte{0xE0, 0xF7, 0xD7}, minLen(3))
	require.Equal(t, ErrNotReady, err)
}

func TestLinkCanceled(t *testing.T) {
	l := NewLink(newFakePort())
	l.Timeout = time.Minute
	ctx, cancel := runLink(t, l)
	defer cancel()

	exCtx, exCancel := context.WithCancel(ctx)
	exCancel()
	_, err := l.Exchange(exCtx, []byte{0xE0, 0xF7, 0xD7}, minLen(3))
	require.True(t, errors.Is(err, context.Canceled))
}

func TestLinkRunStopsOnReadError(t *testing.T) {
	port := newFakePort()
	l := NewLink(port)
	close(port.readCh)
	require.Equal(t, io.EOF, l.Run(context.Background()))
	require.False(t, l.IsRunning())
}

func TestCommandError(t *testing.T) {
	var err error = &CommandError{Opcode: 0xF3}
	require.Equal(t, "command 0xf3 failed", err.Error())
}
