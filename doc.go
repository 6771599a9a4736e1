// Copyright 2023 individual contributors. All rights reserved.
// Use of this source code is governed by a Zero-Clause BSD-style
// license that can be found in the LICENSE file.

// Package colite provides a small cooperative coroutine runtime:
// suspendable tasks, launched onto a pluggable dispatcher, that await
// each other's results instead of blocking a thread.
//
// A task is started with Launch, which schedules the task's body as a
// dispatcher job and returns a Task[T] handle. The body receives a *Ctx and calls
// the package-level Await and Sleep functions at its suspension
// points; everything in between runs as ordinary synchronous Go code.
//
//	task := colite.Launch(loop, func(ctx *colite.Ctx) int {
//	    colite.Sleep(ctx, 10*time.Millisecond)
//	    return 42
//	})
//	result, err := colite.Await(rootCtx, task)
//
// Two dispatchers are provided: dispatcher/eventloop runs every task on
// a single goroutine, in FIFO order among jobs that are simultaneously
// ready; dispatcher/workerpool spreads ready jobs across a bounded set
// of worker goroutines. Both satisfy the dispatcher.Dispatcher
// interface, so code written against a *Ctx never depends on which one
// it ends up running under.
//
// Based on the colite C++ coroutine library, reworked around Go's
// goroutines in place of compiler-generated coroutine frames.
package colite
