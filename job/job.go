// Copyright 2023 individual contributors. All rights reserved.
// Use of this source code is governed by a Zero-Clause BSD-style
// license that can be found in the LICENSE file.

// Package job defines the unit dispatchers schedule and run: an id used
// for bulk cancellation, a ready time, and the callable action/predicate
// pair from package callable.
package job

import (
	"sync/atomic"

	"github.com/0x5a17ed/colite/callable"
	"github.com/0x5a17ed/colite/clock"
)

// ID groups jobs for bulk cancellation via a dispatcher's CancelJobs.
// Tasks mint one ID per coroutine state so that cancelling a task
// cancels every job it has outstanding, regardless of which dispatcher
// queue holds them.
type ID uint64

var nextID atomic.Uint64

// NewID returns a fresh, process-unique ID.
func NewID() ID {
	return ID(nextID.Add(1))
}

// Job is one entry in a dispatcher's queue.
type Job struct {
	ID      ID
	ReadyAt clock.Instant
	Fn      *callable.Func

	canceled bool
}

// Ready reports whether the job's delay has elapsed and its predicate,
// if any, currently allows it to run.
func (j *Job) Ready(now clock.Instant) bool {
	if j.canceled {
		return false
	}
	if j.ReadyAt.After(now) {
		return false
	}
	return j.Fn.Ready()
}

// Canceled reports whether Cancel has been called on this job.
func (j *Job) Canceled() bool {
	return j.canceled
}

// Cancel marks the job so a dispatcher's run loop drops it without
// invoking its action. Cancelling a job already in flight does not
// interrupt the in-flight action; it only prevents future (re-)delivery.
func (j *Job) Cancel() {
	j.canceled = true
}

// Run invokes the job's action and releases its callable wrapper back
// to its pool. Callers that already re-evaluated the job's predicate
// themselves (or that never cross a thread boundary between the check
// and the call, like the event loop) can call Run directly.
func (j *Job) Run() {
	defer j.Fn.Release()
	j.Fn.Invoke()
}

// TryRun re-evaluates the job's predicate and, only if it still allows
// the action to run, invokes it and releases the callable wrapper back
// to its pool. It reports whether the action ran. Dispatchers that hand
// a job off across a thread boundary between the operator's readiness
// check and the actual call — the worker pool, in particular — must use
// TryRun rather than Run, since the predicate may have flipped false in
// the meantime.
func (j *Job) TryRun() (ran bool) {
	if !j.Fn.Ready() {
		return false
	}
	defer j.Fn.Release()
	j.Fn.Invoke()
	return true
}
