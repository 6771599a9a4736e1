// Copyright 2023 individual contributors. All rights reserved.
// Use of this source code is governed by a Zero-Clause BSD-style
// license that can be found in the LICENSE file.

package colite

// Task is a handle to a running (or finished) coroutine. It may be
// Awaited at most once — a second Await, or one made after Detach,
// fails with an ErrInvalidUse variant instead of blocking, the same
// way co_await consumes a suspend<T> by moving from it.
type Task[T any] struct {
	state *coroState[T]
}

// Status reports the task's current lifecycle stage.
func (t *Task[T]) Status() Status {
	return t.state.load()
}

// IsDone reports whether the task has finished or been canceled,
// without blocking.
func (t *Task[T]) IsDone() bool {
	s := t.state.load()
	return s == StatusFinished || s == StatusCanceled
}

// Detach lets the task keep running after its handle is discarded: the
// frame completes on its own, driven entirely by dispatcher jobs, and
// nothing ever reads its result. A detached task can no longer be
// Awaited or Canceled through this handle.
func (t *Task[T]) Detach() {
	t.state.detach()
}

// Cancel requests early termination. It marks the task canceled and
// drops any dispatcher job still pending under the task's own id, but
// — matching CancelJobs's contract — does not wait for, or interrupt,
// whatever part of the task's body is already running. A task that
// finishes the instant before Cancel observes it keeps its real
// result; Cancel never overwrites a finish that happened first.
func (t *Task[T]) Cancel() {
	if t.state.isDetached() {
		return
	}
	t.state.disp.CancelJobs(t.state.id)
	t.state.cancel()
}
