// Copyright 2023 individual contributors. All rights reserved.
// Use of this source code is governed by a Zero-Clause BSD-style
// license that can be found in the LICENSE file.

package colite

import (
	"github.com/0x5a17ed/colite/dispatcher"
	"github.com/0x5a17ed/colite/internal/frame"
	"github.com/0x5a17ed/colite/job"
)

// AsyncFunc is the shape of a colite async body.
type AsyncFunc[T any] func(ctx *Ctx) T

// LaunchOption configures a single Launch call.
type LaunchOption func(*launchConfig)

type launchConfig struct {
	id job.ID
}

// WithID groups the launched task's dispatcher jobs under an
// id the caller already controls, instead of a freshly minted one.
// Canceling that id through the dispatcher then reaches this task too.
func WithID(id job.ID) LaunchOption {
	return func(c *launchConfig) { c.id = id }
}

// Launch starts fn as a coroutine on d and returns a handle to it. fn
// does not run synchronously inside Launch: its first step is
// scheduled as a dispatcher job. On the event loop, Launch therefore
// returns before fn's body has executed at all; on a worker pool, a
// worker may start the body before Launch returns.
func Launch[T any](d dispatcher.Dispatcher, fn AsyncFunc[T], opts ...LaunchOption) *Task[T] {
	cfg := launchConfig{id: job.NewID()}
	for _, opt := range opts {
		opt(&cfg)
	}

	st := newState[T](d, cfg.id)
	ctx := &Ctx{disp: d, id: cfg.id}

	fr := frame.New(func(f *frame.Frame[T]) T {
		return fn(ctx)
	})
	ctx.suspend = fr.Suspend
	st.stop = fr.Stop

	var step func()
	step = func() {
		st.setStarted()
		if fr.Resume() {
			result, err := fr.Result()
			st.complete(result, err)
		}
	}
	ctx.resume = step

	d.Dispatch(cfg.id, 0, step)

	return &Task[T]{state: st}
}
