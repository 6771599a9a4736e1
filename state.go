// Copyright 2023 individual contributors. All rights reserved.
// Use of this source code is governed by a Zero-Clause BSD-style
// license that can be found in the LICENSE file.

package colite

import (
	"sync"
	"sync/atomic"

	"github.com/0x5a17ed/colite/dispatcher"
	"github.com/0x5a17ed/colite/job"
)

// Status is a coroutine's lifecycle stage.
type Status int32

const (
	StatusCreated  Status = iota // launched but not yet stepped
	StatusStarted                // has run at least once, not yet finished
	StatusFinished               // returned normally or panicked
	StatusCanceled               // canceled before it finished, if ever started at all
)

func (s Status) String() string {
	switch s {
	case StatusCreated:
		return "created"
	case StatusStarted:
		return "started"
	case StatusFinished:
		return "finished"
	case StatusCanceled:
		return "canceled"
	default:
		return "unknown"
	}
}

// coroState is the data a Task's handle and its dispatcher jobs share.
// It holds an ordinary reference to the dispatcher the task runs on,
// so the dispatcher stays reachable for as long as the state is.
type coroState[T any] struct {
	mu     sync.Mutex
	status atomic.Int32

	disp dispatcher.Dispatcher
	id   job.ID

	result T
	err    error

	detached bool
	awaited  bool

	onComplete func()

	// stop tears down the frame's parked goroutine. cancel invokes it
	// once, off the caller's goroutine: the frame may currently be
	// blocked waiting for a resume job that CancelJobs just removed
	// from the dispatcher's queue, and nothing else would ever unpark
	// it again.
	stop func()
}

func newState[T any](d dispatcher.Dispatcher, id job.ID) *coroState[T] {
	return &coroState[T]{disp: d, id: id}
}

func (st *coroState[T]) setStarted() {
	st.status.CompareAndSwap(int32(StatusCreated), int32(StatusStarted))
}

func (st *coroState[T]) load() Status {
	return Status(st.status.Load())
}

func (st *coroState[T]) isDoneLocked() bool {
	s := Status(st.status.Load())
	return s == StatusFinished || s == StatusCanceled
}

// complete latches a normal (possibly erroring) finish and fires the
// registered awaiter callback, if any. A finish that loses a race
// against an earlier cancel is dropped silently: canceled status wins.
func (st *coroState[T]) complete(result T, err error) {
	st.mu.Lock()
	if st.isDoneLocked() {
		st.mu.Unlock()
		return
	}
	st.result = result
	st.err = err
	st.status.Store(int32(StatusFinished))
	cb := st.onComplete
	st.onComplete = nil
	st.mu.Unlock()

	if cb != nil {
		cb()
	}
}

func (st *coroState[T]) cancel() {
	st.mu.Lock()
	if st.isDoneLocked() {
		st.mu.Unlock()
		return
	}
	st.err = ErrCanceled
	st.status.Store(int32(StatusCanceled))
	cb := st.onComplete
	st.onComplete = nil
	stop := st.stop
	st.mu.Unlock()

	if cb != nil {
		cb()
	}
	if stop != nil {
		// A frame that hasn't reached its own final suspension yet may
		// still be running body code; stop blocks until it reaches a
		// suspension point or returns, so it runs on its own goroutine
		// rather than making the caller of Cancel wait on it.
		go stop()
	}
}

func (st *coroState[T]) detach() {
	st.mu.Lock()
	st.detached = true
	st.mu.Unlock()
}

func (st *coroState[T]) isDetached() bool {
	st.mu.Lock()
	defer st.mu.Unlock()
	return st.detached
}

// tryBeginAwait claims the task's single await slot and, if the state
// hasn't finished yet, registers onDone to run once it does.
//
// claimErr is non-nil if the slot couldn't be claimed at all (the task
// was detached, or already has an awaiter) — in that case done and
// onDone's registration are both meaningless and the caller must not
// block. Otherwise done reports whether the result is already latched,
// so the caller can skip suspending and read it immediately.
func (st *coroState[T]) tryBeginAwait(onDone func()) (done bool, claimErr error) {
	st.mu.Lock()
	defer st.mu.Unlock()

	if st.detached {
		return false, ErrAwaitDetached
	}
	if st.awaited {
		return false, ErrAlreadyAwaited
	}
	st.awaited = true

	if st.isDoneLocked() {
		return true, nil
	}
	st.onComplete = onDone
	return false, nil
}
