package motor

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/robotalks/servo42.go/pkg/comm"
	"github.com/robotalks/servo42.go/pkg/servo42"
	"github.com/robotalks/servo42.go/pkg/sim"
)

func TestMotorWithSimulator(t *testing.T) {
	ctrl := sim.New(servo42.DefaultAddress)
	defer ctrl.Close()
	link := comm.NewLink(ctrl)
	link.Timeout = time.Second
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go link.Run(ctx)
	for deadline := time.Now().Add(time.Second); !link.IsRunning(); {
		if time.Now().After(deadline) {
			t.Fatal("link not running")
		}
		time.Sleep(time.Millisecond)
	}
	m := New(servo42.NewDriver(), link)

	err := m.Turn(ctx, 90, 10, 16)
	var cmdErr *comm.CommandError
	require.True(t, errors.As(err, &cmdErr))
	require.Equal(t, byte(0xFD), cmdErr.Opcode)

	require.NoError(t, m.Enable(ctx, true))
	status, err := m.ReadEnPinStatus(ctx)
	require.NoError(t, err)
	require.Equal(t, servo42.EnPinEnabled, status)

	require.NoError(t, m.RunSpeed(ctx, servo42.Forward, 1))
	require.NoError(t, m.Stop(ctx))

	shaft, err := m.ReadShaftStatus(ctx)
	require.NoError(t, err)
	require.Equal(t, servo42.ShaftUnblocked, shaft)

	ctrl.Block()
	shaft, err = m.ReadShaftStatus(ctx)
	require.NoError(t, err)
	require.Equal(t, servo42.ShaftBlocked, shaft)
	require.NoError(t, m.ReleaseProtection(ctx))

	_, err = m.ReadEncoder(ctx)
	require.NoError(t, err)
	_, err = m.ReadShaftAngleError(ctx)
	require.NoError(t, err)
}
