// Copyright 2023 individual contributors. All rights reserved.
// Use of this source code is governed by a Zero-Clause BSD-style
// license that can be found in the LICENSE file.

// Package clock wraps the monotonic time primitives colite's dispatchers
// use to decide when a delayed job becomes ready. It exists so that
// dispatchers never read the current time through time.Now directly,
// keeping them substitutable in tests.
package clock

import "time"

// Duration is a span of time, as understood by dispatchers and jobs.
type Duration = time.Duration

// Instant is a point on the monotonic clock. Instants are only ever
// compared to other Instants produced by the same Clock.
type Instant struct {
	t time.Time
}

// Add returns the Instant d later than i. d may be negative.
func (i Instant) Add(d Duration) Instant {
	return Instant{t: i.t.Add(d)}
}

// Sub returns the Duration between i and u (i - u).
func (i Instant) Sub(u Instant) Duration {
	return i.t.Sub(u.t)
}

// Before reports whether i occurs before u.
func (i Instant) Before(u Instant) bool {
	return i.t.Before(u.t)
}

// After reports whether i occurs after u.
func (i Instant) After(u Instant) bool {
	return i.t.After(u.t)
}

// IsZero reports whether i is the zero Instant.
func (i Instant) IsZero() bool {
	return i.t.IsZero()
}

// Clock produces Instants. Dispatchers use System; a test can
// substitute another implementation.
type Clock interface {
	Now() Instant
}

// System is the Clock backed by the operating system's monotonic clock.
var System Clock = systemClock{}

type systemClock struct{}

func (systemClock) Now() Instant { return Instant{t: time.Now()} }

// Now is a convenience for System.Now().
func Now() Instant { return System.Now() }
