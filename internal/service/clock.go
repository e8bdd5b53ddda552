package service

import "time"

// Clock abstracts the wall clock so expiry boundaries can be simulated in
// tests.
type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now()
}
