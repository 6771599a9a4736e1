// Copyright 2023 individual contributors. All rights reserved.
// Use of this source code is governed by a Zero-Clause BSD-style
// license that can be found in the LICENSE file.

package eventloop_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/goleak"

	"github.com/0x5a17ed/colite/dispatcher/eventloop"
	"github.com/0x5a17ed/colite/job"
)

func TestFIFOAmongReadyJobs(t *testing.T) {
	defer goleak.VerifyNone(t)

	d := eventloop.New()
	var order []int

	for i := 0; i < 5; i++ {
		i := i
		d.Dispatch(0, 0, func() { order = append(order, i) })
	}
	d.Dispatch(0, 0, func() { d.CancelJobs(0) }) // no-op, exercises reentrancy

	done := job.NewID()
	d.Dispatch(done, 0, func() {})
	d.CancelJobs(done) // cancel before it ever runs

	d.Run()

	assert.Equal(t, []int{0, 1, 2, 3, 4}, order)
}

func TestDelayOrdersAfterImmediateWork(t *testing.T) {
	defer goleak.VerifyNone(t)

	d := eventloop.New()
	var order []string

	d.Dispatch(0, 20*time.Millisecond, func() { order = append(order, "late") })
	d.Dispatch(0, 0, func() { order = append(order, "early") })

	d.Run()

	assert.Equal(t, []string{"early", "late"}, order)
}

func TestReentrantDispatchFromRunningJob(t *testing.T) {
	defer goleak.VerifyNone(t)

	d := eventloop.New()
	var ran int

	var second func()
	second = func() { ran++ }

	d.Dispatch(0, 0, func() {
		ran++
		d.Dispatch(0, 0, second)
	})

	d.Run()

	assert.Equal(t, 2, ran)
}

func TestCancelJobsDropsPending(t *testing.T) {
	defer goleak.VerifyNone(t)

	d := eventloop.New()
	id := job.NewID()
	ran := false

	d.Dispatch(id, time.Hour, func() { ran = true })
	d.CancelJobs(id)

	d.Dispatch(0, 0, func() {})
	d.Run()

	assert.False(t, ran)
}
