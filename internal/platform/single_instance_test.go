package platform

import (
	"errors"
	"net"
	"strconv"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func uniqueAppName(t *testing.T) string {
	return "TimeKeeperTest-" + t.Name() + "-" + strconv.FormatInt(time.Now().UnixNano(), 10)
}

func TestPortFromName_IsStableAndInRange(t *testing.T) {
	first := portFromName("TimeKeeper")
	assert.Equal(t, first, portFromName("TimeKeeper"))
	assert.GreaterOrEqual(t, first, 20000)
	assert.LessOrEqual(t, first, 39999)
}

func TestAcquireSingleInstance_SecondAcquireFails(t *testing.T) {
	name := uniqueAppName(t)
	lock, err := AcquireSingleInstance(name)
	require.NoError(t, err)
	t.Cleanup(func() { _ = lock.Release() })

	_, err = AcquireSingleInstance(name)
	assert.ErrorIs(t, err, ErrAlreadyRunning)
}

func TestInstanceLock_ActivationReachesHolder(t *testing.T) {
	name := uniqueAppName(t)
	lock, err := AcquireSingleInstance(name)
	require.NoError(t, err)

	var activations atomic.Int32
	served := make(chan struct{})
	go func() {
		lock.Serve(func() { activations.Add(1) })
		close(served)
	}()

	require.NoError(t, ActivateRunningInstance(name))
	require.Eventually(t, func() bool { return activations.Load() == 1 }, time.Second, 10*time.Millisecond)

	require.NoError(t, lock.Release())
	require.NoError(t, lock.Release())
	select {
	case <-served:
	case <-time.After(time.Second):
		t.Fatal("Serve did not return after Release")
	}
}

type failingListener struct {
	accepts atomic.Int32
	closed  atomic.Bool
}

func (listener *failingListener) Accept() (net.Conn, error) {
	listener.accepts.Add(1)
	if listener.closed.Load() {
		return nil, net.ErrClosed
	}
	return nil, errors.New("too many open files")
}

func (listener *failingListener) Close() error {
	listener.closed.Store(true)
	return nil
}

func (listener *failingListener) Addr() net.Addr {
	return &net.TCPAddr{IP: net.IPv4(127, 0, 0, 1)}
}

func TestInstanceLock_ServeBacksOffOnAcceptErrors(t *testing.T) {
	previous := acceptBackoff
	acceptBackoff = 20 * time.Millisecond
	t.Cleanup(func() { acceptBackoff = previous })

	listener := &failingListener{}
	lock := &InstanceLock{listener: listener}
	served := make(chan struct{})
	go func() {
		lock.Serve(nil)
		close(served)
	}()

	time.Sleep(200 * time.Millisecond)
	require.NoError(t, lock.Release())
	select {
	case <-served:
	case <-time.After(time.Second):
		t.Fatal("Serve did not return after Release")
	}

	assert.LessOrEqual(t, listener.accepts.Load(), int32(15))
}
