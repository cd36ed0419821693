// Package clock provides the timer primitive used by stage playback, with a
// wall-clock implementation and a virtual one for tests.
package clock

import "time"

// Timer is a handle to a scheduled callback.
type Timer interface {
	// Stop prevents the callback from running. It reports whether the call
	// stopped the timer before it fired.
	Stop() bool
}

// Scheduler runs callbacks after a delay.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Timer
	Now() time.Time
}

type realScheduler struct{}

// Real returns a Scheduler backed by time.AfterFunc.
func Real() Scheduler {
	return realScheduler{}
}

func (realScheduler) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

func (realScheduler) Now() time.Time {
	return time.Now()
}

// Scaled divides every delay by speed. Speeds <= 0 are treated as 1.
func Scaled(s Scheduler, speed float64) Scheduler {
	if speed <= 0 || speed == 1 {
		return s
	}
	return scaledScheduler{inner: s, speed: speed}
}

type scaledScheduler struct {
	inner Scheduler
	speed float64
}

func (s scaledScheduler) AfterFunc(d time.Duration, f func()) Timer {
	return s.inner.AfterFunc(time.Duration(float64(d)/s.speed), f)
}

func (s scaledScheduler) Now() time.Time {
	return s.inner.Now()
}
