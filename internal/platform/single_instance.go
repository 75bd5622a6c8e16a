package platform

import (
	"errors"
	"fmt"
	"hash/fnv"
	"net"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// ErrAlreadyRunning indicates another instance already holds the lock.
var ErrAlreadyRunning = errors.New("instance already running")

// acceptBackoff is the pause after a failed Accept.
var acceptBackoff = 250 * time.Millisecond

// InstanceLock holds the single-instance lock: a listener on a localhost port
// derived from the app name. A second instance connects to it to ask the first
// one to show itself.
type InstanceLock struct {
	listener net.Listener
	address  string
	once     sync.Once
}

// AcquireSingleInstance binds the app's localhost port or reports
// ErrAlreadyRunning.
func AcquireSingleInstance(appName string) (*InstanceLock, error) {
	address := instanceAddress(appName)
	listener, err := net.Listen("tcp", address)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAlreadyRunning, err)
	}
	return &InstanceLock{listener: listener, address: address}, nil
}

// Serve calls onActivate for every connection made by ActivateRunningInstance.
// It returns when the lock is released.
func (lock *InstanceLock) Serve(onActivate func()) {
	if lock == nil || lock.listener == nil {
		return
	}
	for {
		conn, err := lock.listener.Accept()
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				return
			}
			log.Warn().Err(err).Msg("instance lock accept failed")
			time.Sleep(acceptBackoff)
			continue
		}
		_ = conn.Close()
		log.Info().Msg("activation requested by another instance")
		if onActivate != nil {
			onActivate()
		}
	}
}

// Release frees the single instance lock.
func (lock *InstanceLock) Release() error {
	if lock == nil || lock.listener == nil {
		return nil
	}
	var err error
	lock.once.Do(func() {
		err = lock.listener.Close()
	})
	return err
}

// Address returns the bound address.
func (lock *InstanceLock) Address() string {
	if lock == nil {
		return ""
	}
	return lock.address
}

// ActivateRunningInstance asks the instance holding the lock to show itself.
func ActivateRunningInstance(appName string) error {
	conn, err := net.DialTimeout("tcp", instanceAddress(appName), time.Second)
	if err != nil {
		return fmt.Errorf("activate running instance: %w", err)
	}
	return conn.Close()
}

func instanceAddress(appName string) string {
	return fmt.Sprintf("127.0.0.1:%d", portFromName(appName))
}

func portFromName(appName string) int {
	const (
		minPort = 20000
		maxPort = 39999
	)
	hash := fnv.New32a()
	_, _ = hash.Write([]byte(appName))
	rangeSize := maxPort - minPort + 1
	return minPort + int(hash.Sum32()%uint32(rangeSize))
}
