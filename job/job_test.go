// Copyright 2023 individual contributors. All rights reserved.
// Use of this source code is governed by a Zero-Clause BSD-style
// license that can be found in the LICENSE file.

package job_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/0x5a17ed/colite/callable"
	"github.com/0x5a17ed/colite/clock"
	"github.com/0x5a17ed/colite/job"
)

func TestReadyRespectsDelay(t *testing.T) {
	var pool callable.Pool
	now := clock.Now()

	j := &job.Job{
		ID:      job.NewID(),
		ReadyAt: now.Add(time.Second),
		Fn:      pool.Get(func() {}, nil),
	}

	assert.False(t, j.Ready(now))
	assert.True(t, j.Ready(now.Add(2*time.Second)))
}

func TestCanceledNeverReady(t *testing.T) {
	var pool callable.Pool
	now := clock.Now()

	j := &job.Job{ID: job.NewID(), ReadyAt: now, Fn: pool.Get(func() {}, nil)}
	j.Cancel()

	assert.True(t, j.Canceled())
	assert.False(t, j.Ready(now))
}

func TestIDsAreUnique(t *testing.T) {
	a, b := job.NewID(), job.NewID()
	assert.NotEqual(t, a, b)
}

func TestRunInvokesAndReleases(t *testing.T) {
	var pool callable.Pool
	var ran bool

	j := &job.Job{ID: job.NewID(), ReadyAt: clock.Now(), Fn: pool.Get(func() { ran = true }, nil)}
	j.Run()

	assert.True(t, ran)
}
