// Copyright 2023 individual contributors. All rights reserved.
// Use of this source code is governed by a Zero-Clause BSD-style
// license that can be found in the LICENSE file.

package colite

import (
	"time"

	"github.com/0x5a17ed/colite/dispatcher"
	"github.com/0x5a17ed/colite/job"
)

// Ctx is passed to every async body in place of a compiler-generated
// coroutine handle. It carries the dispatcher the body is running on
// and the two hooks the package-level Await and Sleep functions need:
// suspend parks the body's own goroutine at an await point; resume
// steps the body's frame forward again from whatever dispatcher job
// eventually notices the await is satisfied.
type Ctx struct {
	disp    dispatcher.Dispatcher
	id      job.ID
	suspend func()
	resume  func()
}

// Dispatcher returns the dispatcher the calling task is running on —
// the Go rendition of discovering "the current dispatcher" through the
// awaiter's promise at await time, since colite never keeps a
// process-global current dispatcher.
func (c *Ctx) Dispatcher() dispatcher.Dispatcher {
	return c.disp
}

// Await suspends the calling async body until t finishes, then returns
// its result. A Task may be awaited at most once; awaiting it again,
// or awaiting a Task that has been Detached, returns an ErrInvalidUse
// variant instead of blocking.
func Await[T any](ctx *Ctx, t *Task[T]) (T, error) {
	st := t.state

	done, claimErr := st.tryBeginAwait(func() {
		ctx.disp.Dispatch(ctx.id, 0, ctx.resume)
	})
	if claimErr != nil {
		var zero T
		return zero, claimErr
	}

	if !done {
		ctx.suspend()
	}

	return st.result, st.err
}

// Sleep suspends the calling async body for at least d before letting
// it continue, without blocking the dispatcher thread it runs on.
func Sleep(ctx *Ctx, d time.Duration) {
	ctx.disp.Dispatch(ctx.id, d, ctx.resume)
	ctx.suspend()
}
