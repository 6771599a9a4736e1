// Copyright 2023 individual contributors. All rights reserved.
// Use of this source code is governed by a Zero-Clause BSD-style
// license that can be found in the LICENSE file.

// Package workerpool implements a bounded, multi-goroutine dispatcher.
// A single operator goroutine owns the job queue and hands ready jobs
// to a pool of worker goroutines sized between min and max; workers
// beyond min retire themselves after sitting idle.
package workerpool

import (
	"container/list"
	"context"
	"errors"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/0x5a17ed/colite/callable"
	"github.com/0x5a17ed/colite/clock"
	"github.com/0x5a17ed/colite/job"
)

// ErrConstruction is returned by New when the requested pool shape is
// unsatisfiable. It is the dispatcher-construction failure from
// colite's error taxonomy: it surfaces before any goroutine has been
// started, so a failed New leaks nothing.
var ErrConstruction = errors.New("workerpool: invalid construction parameters")

const idleRetire = 2 * time.Second

// predicateRetryLimit and predicateRetryDelay bound how hard a worker
// spins on a job's predicate before giving up and handing the job back
// to the operator, per spec.md §4.4's "if false, the worker re-yields
// (bounded spin)".
const (
	predicateRetryLimit = 50
	predicateRetryDelay = time.Millisecond
)

// Dispatcher is a bounded worker-pool dispatcher.
type Dispatcher struct {
	clock clock.Clock
	pool  callable.Pool

	mu   sync.Mutex
	jobs *list.List // of *job.Job

	minWorkers int
	maxWorkers int

	work    chan *job.Job
	wake    chan struct{}
	closing chan struct{}
	closed  bool

	grp    *errgroup.Group
	active sync.WaitGroup // in-flight job actions, for Close to wait on
}

// New returns a running Dispatcher with min permanent workers and room
// to grow to max workers under load. It returns ErrConstruction if
// min <= 0 or max < min; no upper bound on either is checked.
func New(min, max int) (*Dispatcher, error) {
	if min <= 0 || max < min {
		return nil, ErrConstruction
	}

	d := &Dispatcher{
		clock:      clock.System,
		jobs:       list.New(),
		minWorkers: min,
		maxWorkers: max,
		work:       make(chan *job.Job),
		wake:       make(chan struct{}, 1),
		closing:    make(chan struct{}),
	}

	grp, _ := errgroup.WithContext(context.Background())
	d.grp = grp

	for i := 0; i < min; i++ {
		d.grp.Go(d.permanentWorker)
	}
	d.grp.Go(d.operate)

	return d, nil
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
	if d.closed {
		d.mu.Unlock()
		return id
	}
	j := &job.Job{
		ID:      id,
		ReadyAt: d.clock.Now().Add(delay),
		Fn:      d.pool.Get(action, predicate),
	}
	d.jobs.PushBack(j)
	d.mu.Unlock()

	select {
	case d.wake <- struct{}{}:
	default:
	}
	return id
}

// CancelJobs implements dispatcher.Dispatcher. It marks every pending
// job under id as canceled; drainReady drops them the next time it
// scans past them.
func (d *Dispatcher) CancelJobs(id job.ID) {
	d.mu.Lock()
	defer d.mu.Unlock()

	for e := d.jobs.Front(); e != nil; e = e.Next() {
		if j := e.Value.(*job.Job); j.ID == id {
			j.Cancel()
		}
	}
}

// operate is the single goroutine that owns the job list: it scans for
// ready jobs and hands them to whichever worker goroutine picks them up
// from the work channel, spinning up extra workers up to maxWorkers
// when the permanent ones are all busy.
func (d *Dispatcher) operate() error {
	extra := 0
	var extraMu sync.Mutex

	for {
		select {
		case <-d.closing:
			return nil
		default:
		}

		wait := d.drainReady(&extra, &extraMu)

		t := time.NewTimer(wait)
		select {
		case <-d.wake:
		case <-t.C:
		case <-d.closing:
			t.Stop()
			return nil
		}
		t.Stop()
	}
}

func (d *Dispatcher) drainReady(extra *int, extraMu *sync.Mutex) time.Duration {
	for {
		d.mu.Lock()
		now := d.clock.Now()

		var picked *job.Job
		var e *list.Element
		var soonest time.Duration = -1

		for cur := d.jobs.Front(); cur != nil; cur = cur.Next() {
			j := cur.Value.(*job.Job)
			if j.Canceled() {
				e = cur
				break
			}
			if j.Ready(now) {
				picked, e = j, cur
				break
			}
			if until := j.ReadyAt.Sub(now); soonest < 0 || until < soonest {
				soonest = until
			}
		}
		if e != nil {
			d.jobs.Remove(e)
		}
		d.mu.Unlock()

		if e == nil {
			if soonest < 0 {
				return 50 * time.Millisecond
			}
			return soonest
		}
		if picked == nil {
			continue // was a canceled job, already dropped
		}

		d.active.Add(1)
		select {
		case d.work <- picked:
		default:
			extraMu.Lock()
			spawn := *extra < d.maxWorkers-d.minWorkers
			if spawn {
				*extra++
			}
			extraMu.Unlock()

			if spawn {
				d.grp.Go(func() error {
					defer func() {
						extraMu.Lock()
						*extra--
						extraMu.Unlock()
					}()
					return d.transientWorker(picked)
				})
			} else {
				d.work <- picked
			}
		}
	}
}

func (d *Dispatcher) permanentWorker() error {
	for {
		select {
		case j := <-d.work:
			d.runJob(j)
		case <-d.closing:
			return nil
		}
	}
}

func (d *Dispatcher) transientWorker(first *job.Job) error {
	d.runJob(first)

	idle := time.NewTimer(idleRetire)
	defer idle.Stop()
	for {
		select {
		case j := <-d.work:
			idle.Reset(idleRetire)
			d.runJob(j)
		case <-idle.C:
			return nil
		case <-d.closing:
			return nil
		}
	}
}

// runJob re-evaluates j's predicate on the worker before running it —
// the operator already checked readiness once, but the job crossed a
// goroutine boundary to get here, and the predicate may have flipped
// false in between. A predicate that stays false is retried locally, up
// to predicateRetryLimit times, before the job is handed back to the
// operator's queue rather than dropped.
func (d *Dispatcher) runJob(j *job.Job) {
	defer d.active.Done()

	for i := 0; i < predicateRetryLimit; i++ {
		if j.TryRun() {
			return
		}
		time.Sleep(predicateRetryDelay)
	}

	d.mu.Lock()
	if !d.closed {
		d.jobs.PushBack(j)
	}
	d.mu.Unlock()

	select {
	case d.wake <- struct{}{}:
	default:
	}
}

// Close stops accepting new jobs, waits for every job already handed
// to a worker to finish, then waits for every worker goroutine to
// exit. Jobs still sitting in the queue, never handed to a worker, are
// dropped rather than run. Close blocks until ctx is done or shutdown
// completes, whichever is first.
func (d *Dispatcher) Close(ctx context.Context) error {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return nil
	}
	d.closed = true
	d.mu.Unlock()

	done := make(chan struct{})
	go func() {
		d.active.Wait()
		close(d.closing)
		d.grp.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
