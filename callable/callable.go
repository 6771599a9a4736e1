// Copyright 2023 individual contributors. All rights reserved.
// Use of this source code is governed by a Zero-Clause BSD-style
// license that can be found in the LICENSE file.

// Package callable provides the pooled, type-erased function containers
// dispatchers use to hold a job's action and readiness predicate. Go
// closures already manage their own storage, so this package's job is
// narrower than its C++ counterpart: it gives jobs a recyclable wrapper
// so a steady stream of short-lived dispatches doesn't churn the
// allocator on every tick.
package callable

import "sync"

// Action is a zero-argument, no-result unit of work.
type Action func()

// Predicate reports whether an Action is allowed to run yet.
// A nil Predicate is always ready.
type Predicate func() bool

// Func is a pooled holder for an Action paired with an optional
// Predicate. Acquire one from a Pool, fill it in, and Release it back
// once the action has run; the pool recycles the wrapper instead of
// letting it escape to garbage collection.
type Func struct {
	action    Action
	predicate Predicate
	pool      *Pool
}

// Populated reports whether the container currently holds an action.
func (f *Func) Populated() bool {
	return f.action != nil
}

// Ready reports whether the container's predicate (if any) currently
// allows the action to run.
func (f *Func) Ready() bool {
	return f.predicate == nil || f.predicate()
}

// Invoke calls the held action. It panics if the container is empty,
// mirroring the precondition that callers must check Populated first.
func (f *Func) Invoke() {
	if f.action == nil {
		panic("callable: invoke on empty Func")
	}
	f.action()
}

// Release clears the container and returns it to the Pool it was
// acquired from, if any. Safe to call on a Func not owned by a pool.
func (f *Func) Release() {
	f.action = nil
	f.predicate = nil
	if p := f.pool; p != nil {
		f.pool = nil
		p.put(f)
	}
}

// Pool recycles Func wrappers. The zero value is ready to use.
type Pool struct {
	sync.Pool
}

// Get returns a populated Func, reusing a recycled wrapper when one is
// available.
func (p *Pool) Get(action Action, predicate Predicate) *Func {
	v := p.Pool.Get()
	var f *Func
	if v == nil {
		f = &Func{}
	} else {
		f = v.(*Func)
	}
	f.action = action
	f.predicate = predicate
	f.pool = p
	return f
}

func (p *Pool) put(f *Func) {
	p.Pool.Put(f)
}
