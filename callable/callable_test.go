// Copyright 2023 individual contributors. All rights reserved.
// Use of this source code is governed by a Zero-Clause BSD-style
// license that can be found in the LICENSE file.

package callable_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/0x5a17ed/colite/callable"
)

func TestFuncInvoke(t *testing.T) {
	var ran bool
	var pool callable.Pool

	f := pool.Get(func() { ran = true }, nil)
	assert.True(t, f.Populated())
	assert.True(t, f.Ready())

	f.Invoke()
	assert.True(t, ran)

	f.Release()
	assert.False(t, f.Populated())
}

func TestFuncPredicateGatesReady(t *testing.T) {
	var pool callable.Pool
	allowed := false

	f := pool.Get(func() {}, func() bool { return allowed })
	assert.False(t, f.Ready())

	allowed = true
	assert.True(t, f.Ready())

	f.Release()
}

func TestFuncRecycled(t *testing.T) {
	var pool callable.Pool

	f1 := pool.Get(func() {}, nil)
	f1.Release()

	f2 := pool.Get(func() {}, nil)
	assert.Same(t, f1, f2)
}

func TestInvokeEmptyPanics(t *testing.T) {
	f := &callable.Func{}
	assert.Panics(t, func() { f.Invoke() })
}
