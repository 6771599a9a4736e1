// Copyright 2023 individual contributors. All rights reserved.
// Use of this source code is governed by a Zero-Clause BSD-style
// license that can be found in the LICENSE file.

package frame_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/goleak"

	"github.com/0x5a17ed/colite/internal/frame"
)

func TestResumeDrivesToSuspendAndReturn(t *testing.T) {
	defer goleak.VerifyNone(t)

	var trace []string
	f := frame.New(func(fr *frame.Frame[int]) int {
		trace = append(trace, "enter")
		fr.Suspend()
		trace = append(trace, "resumed once")
		fr.Suspend()
		trace = append(trace, "resumed twice")
		return 42
	})

	assert.False(t, f.Resume()) // runs to first Suspend
	assert.Equal(t, []string{"enter"}, trace)

	assert.False(t, f.Resume()) // runs to second Suspend
	assert.Equal(t, []string{"enter", "resumed once"}, trace)

	assert.True(t, f.Resume()) // runs to return
	assert.Equal(t, []string{"enter", "resumed once", "resumed twice"}, trace)

	v, err := f.Result()
	assert.NoError(t, err)
	assert.Equal(t, 42, v)
	assert.True(t, f.Done())
}

func TestResumeAfterDoneIsNoop(t *testing.T) {
	defer goleak.VerifyNone(t)

	f := frame.New(func(fr *frame.Frame[int]) int { return 7 })
	assert.True(t, f.Resume())
	assert.True(t, f.Resume())

	v, err := f.Result()
	assert.NoError(t, err)
	assert.Equal(t, 7, v)
}

func TestPanicPropagatesAsError(t *testing.T) {
	defer goleak.VerifyNone(t)

	f := frame.New(func(fr *frame.Frame[int]) int {
		fr.Suspend()
		panic("yikes!")
	})

	assert.False(t, f.Resume())
	assert.True(t, f.Resume())

	_, err := f.Result()
	var pe *frame.PanicError
	assert.ErrorAs(t, err, &pe)
	assert.Equal(t, "yikes!", pe.Value)
	assert.NotEmpty(t, pe.Stack)
}

func TestStopBeforeFirstResume(t *testing.T) {
	defer goleak.VerifyNone(t)

	var ran bool
	f := frame.New(func(fr *frame.Frame[int]) int {
		ran = true
		return 0
	})

	f.Stop()
	assert.False(t, ran)
	assert.True(t, f.Done())
}

func TestStopUnwindsFromSuspend(t *testing.T) {
	defer goleak.VerifyNone(t)

	cleaned := false
	f := frame.New(func(fr *frame.Frame[int]) int {
		defer func() { cleaned = true }()
		fr.Suspend()
		return 0 // never reached; Stop unwinds from inside Suspend
	})

	assert.False(t, f.Resume())
	f.Stop()

	assert.True(t, cleaned)
	assert.True(t, f.Done())
	_, err := f.Result()
	assert.NoError(t, err) // an intentional Stop is not a frame error
}

func TestStopTwiceIsSafe(t *testing.T) {
	defer goleak.VerifyNone(t)

	completed := make(chan struct{})
	go func() {
		defer close(completed)
		f := frame.New(func(fr *frame.Frame[int]) int { return 0 })
		f.Stop()
		f.Stop()
	}()

	select {
	case <-completed:
	case <-time.After(5 * time.Second):
		t.Fatal("timed out")
	}
}
