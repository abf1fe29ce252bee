// internal/motor/homing.go
package motor

import "time"

// HomingChecker is the part of Motor WaitHoming polls.
type HomingChecker interface {
	IsHoming() (bool, error)
}

// WaitHoming blocks until m stops reporting a homing run, querying it
// every interval.
//
// With timeout == 0 the wait is unbounded: a controller that never leaves
// homing blocks the caller forever. A positive timeout returns
// ErrHomingTimeout once exceeded. A failed IsHoming query ends the wait
// with that error; WaitHoming does not retry.
func WaitHoming(m HomingChecker, interval, timeout time.Duration) error {
	if interval <= 0 {
		interval = DefaultHomingInterval
	}

	var deadline time.Time
	if timeout > 0 {
		deadline = time.Now().Add(timeout)
	}

	for {
		homing, err := m.IsHoming()
		if err != nil {
			return err
		}
		if !homing {
			return nil
		}
		if !deadline.IsZero() && !time.Now().Before(deadline) {
			return ErrHomingTimeout
		}
		time.Sleep(interval)
	}
}

// Home starts the homing sequence and waits for it to finish.
func Home(m Motor, interval, timeout time.Duration) error {
	if err := m.StartHoming(); err != nil {
		return err
	}
	return WaitHoming(m, interval, timeout)
}
