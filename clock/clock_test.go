// Copyright 2023 individual contributors. All rights reserved.
// Use of this source code is governed by a Zero-Clause BSD-style
// license that can be found in the LICENSE file.

package clock_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/0x5a17ed/colite/clock"
)

func TestInstantArithmetic(t *testing.T) {
	base := clock.Now()
	later := base.Add(time.Second)

	assert.True(t, later.After(base))
	assert.True(t, base.Before(later))
	assert.Equal(t, time.Second, later.Sub(base))
}

func TestZeroInstant(t *testing.T) {
	var i clock.Instant
	assert.True(t, i.IsZero())
	assert.False(t, clock.Now().IsZero())
}
