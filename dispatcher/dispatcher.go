// Copyright 2023 individual contributors. All rights reserved.
// Use of this source code is governed by a Zero-Clause BSD-style
// license that can be found in the LICENSE file.

// Package dispatcher defines the scheduling abstraction colite's tasks
// run on. Concrete dispatchers live in dispatcher/eventloop and
// dispatcher/workerpool; both satisfy this interface, so the rest of
// colite never depends on which one a task was launched with.
package dispatcher

import (
	"time"

	"github.com/0x5a17ed/colite/job"
)

// Dispatcher schedules and runs jobs. Implementations decide where and
// when a dispatched action actually executes; callers only get FIFO
// ordering among jobs that are simultaneously ready.
type Dispatcher interface {
	// Dispatch schedules action to run after delay has elapsed,
	// grouped under id for later cancellation. It returns the id
	// actually used, which is id when id is nonzero and a fresh one
	// otherwise.
	Dispatch(id job.ID, delay time.Duration, action func()) job.ID

	// DispatchPred is Dispatch with an additional readiness gate:
	// action will not run, even once delay has elapsed, until
	// predicate returns true. The dispatcher polls predicate on its
	// own schedule; it does not promise to notice the instant the
	// predicate flips.
	DispatchPred(id job.ID, delay time.Duration, action func(), predicate func() bool) job.ID

	// CancelJobs drops every pending job scheduled under id that has
	// not yet started running. It does not wait for, or interrupt,
	// jobs already in flight.
	CancelJobs(id job.ID)
}
