// Copyright 2023 individual contributors. All rights reserved.
// Use of this source code is governed by a Zero-Clause BSD-style
// license that can be found in the LICENSE file.

// Package eventloop implements a single-threaded dispatcher: every job
// it runs executes on whichever goroutine calls Run, one at a time, in
// arrival order among jobs that are simultaneously ready. It is the
// default choice for tasks that don't need their own thread pool.
package eventloop

import (
	"container/list"
	"sync"
	"time"

	"github.com/petermattis/goid"

	"github.com/0x5a17ed/colite/callable"
	"github.com/0x5a17ed/colite/clock"
	"github.com/0x5a17ed/colite/job"
)

// Dispatcher is a single-threaded, reentrant event loop. The zero value
// is not usable; construct one with New.
type Dispatcher struct {
	clock clock.Clock
	pool  callable.Pool

	mu      reentrantMutex
	jobs    *list.List // of *job.Job
	woken   chan struct{}
	running bool
}

// New returns an idle Dispatcher. Call Run to start it; Run blocks
// until its job queue is empty.
func New() *Dispatcher {
	return &Dispatcher{
		clock: clock.System,
		jobs:  list.New(),
		woken: make(chan struct{}, 1),
	}
}

// Dispatch implements dispatcher.Dispatcher.
func (d *Dispatcher) Dispatch(id job.ID, delay time.Duration, action func()) job.ID {
	return d.DispatchPred(id, delay, action, nil)
}

// DispatchPred implements dispatcher.Dispatcher.
func (d *Dispatcher) DispatchPred(id job.ID, delay time.Duration, action func(), predicate func() bool) job.ID {
	if id == 0 {
		id = job.NewID()
	}

	d.mu.Lock()
	j := &job.Job{
		ID:      id,
		ReadyAt: d.clock.Now().Add(delay),
		Fn:      d.pool.Get(action, predicate),
	}
	d.jobs.PushBack(j)
	d.mu.Unlock()

	d.wake()
	return id
}

// CancelJobs implements dispatcher.Dispatcher. It marks every pending
// job under id as canceled; the run loop drops them the next time it
// scans past them, rather than walking the list a second time here.
func (d *Dispatcher) CancelJobs(id job.ID) {
	d.mu.Lock()
	defer d.mu.Unlock()

	for e := d.jobs.Front(); e != nil; e = e.Next() {
		if j := e.Value.(*job.Job); j.ID == id {
			j.Cancel()
		}
	}
}

func (d *Dispatcher) wake() {
	select {
	case d.woken <- struct{}{}:
	default:
	}
}

// Run drains the job queue on the calling goroutine until it has been
// empty for one full pass and no timers remain pending, then returns.
// A job's action may itself call Dispatch or CancelJobs on this same
// Dispatcher, from this same goroutine or from another one entirely —
// runOnce always releases the lock before invoking the action, so
// neither case can deadlock against Run's own scan.
func (d *Dispatcher) Run() {
	d.mu.Lock()
	if d.running {
		d.mu.Unlock()
		panic("eventloop: Run called while already running")
	}
	d.running = true
	d.mu.Unlock()

	defer func() {
		d.mu.Lock()
		d.running = false
		d.mu.Unlock()
	}()

	for {
		wait, ok := d.runOnce()
		if !ok {
			return
		}
		if wait > 0 {
			t := time.NewTimer(wait)
			select {
			case <-d.woken:
			case <-t.C:
			}
			t.Stop()
		}
	}
}

// runOnce runs one ready job, if any, and reports how long the caller
// should wait before trying again, and whether any jobs remain at all.
// The job's action always runs after the lock has been released: an
// async body's Sleep, Await, or nested Launch call reaches Dispatch or
// CancelJobs on this same Dispatcher from the frame's own goroutine,
// not from whichever goroutine is running Run, so holding the lock
// across the call — even a reentrant one keyed on goroutine identity —
// would deadlock that goroutine against this one. Scoping the lock to
// just the scan, the way eventloop_dispatcher.h's run_once scopes its
// lock_guard to a nested block before calling job.value()(), is what
// makes both the cross-goroutine case and a same-goroutine nested
// Dispatch safe.
func (d *Dispatcher) runOnce() (wait time.Duration, more bool) {
	picked, wait, more := d.pickReady()
	if picked != nil {
		picked.Run()
		return 0, true
	}
	return wait, more
}

// pickReady scans the queue under lock, dropping canceled jobs and
// rotating not-yet-ready ones to the back, and removes+returns the
// first ready job it finds without running it.
func (d *Dispatcher) pickReady() (picked *job.Job, wait time.Duration, more bool) {
	d.mu.Lock()
	defer d.mu.Unlock()

	now := d.clock.Now()
	scanned := 0
	total := d.jobs.Len()
	var soonest time.Duration = -1

	for e := d.jobs.Front(); e != nil && scanned < total; {
		next := e.Next()
		j := e.Value.(*job.Job)

		if j.Canceled() {
			d.jobs.Remove(e)
			e = next
			scanned++
			continue
		}

		if j.Ready(now) {
			d.jobs.Remove(e)
			return j, 0, true
		}

		if until := j.ReadyAt.Sub(now); soonest < 0 || until < soonest {
			soonest = until
		}

		d.jobs.MoveToBack(e)
		e = next
		scanned++
	}

	more = d.jobs.Len() > 0

	if soonest < 0 {
		soonest = 10 * time.Millisecond
	}
	return nil, soonest, more
}

// reentrantMutex lets the goroutine that already holds the lock take it
// again without blocking, matching the recursive lock the original
// event loop relies on so a job's action can schedule more work on the
// same loop.
type reentrantMutex struct {
	mu    sync.Mutex
	cond  *sync.Cond
	owner int64
	count int
}

func (m *reentrantMutex) Lock() {
	id := goid.Get()

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.cond == nil {
		m.cond = sync.NewCond(&m.mu)
	}

	if m.count > 0 && m.owner == id {
		m.count++
		return
	}
	for m.count > 0 {
		m.cond.Wait()
	}
	m.owner = id
	m.count = 1
}

func (m *reentrantMutex) Unlock() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.count--
	if m.count == 0 {
		m.owner = 0
		if m.cond != nil {
			m.cond.Signal()
		}
	}
}
