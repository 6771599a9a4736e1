// Copyright 2023 individual contributors. All rights reserved.
// Use of this source code is governed by a Zero-Clause BSD-style
// license that can be found in the LICENSE file.

package colite

import (
	"errors"
	"fmt"

	"github.com/0x5a17ed/colite/internal/frame"
)

// ErrInvalidUse is the sentinel every InvalidUse-class error wraps —
// double-await, awaiting a detached task, and awaiting a canceled one.
// Match it with errors.Is to tell these apart from a failed async body,
// which surfaces as a *FrameError instead.
var ErrInvalidUse = errors.New("colite: invalid use")

// ErrAlreadyAwaited is returned by Await when the Task has already
// been consumed by a previous Await call. A Task
// handle is single-use, the same way a suspend<T> is moved-from after
// co_await consumes it.
var ErrAlreadyAwaited = fmt.Errorf("%w: task handle already consumed", ErrInvalidUse)

// ErrAwaitDetached is returned by Await when the Task was detached
// before being awaited. Detach transfers ownership of the running
// frame to its own completion job; the original handle can no longer
// observe the result.
var ErrAwaitDetached = fmt.Errorf("%w: cannot await a detached task", ErrInvalidUse)

// ErrCanceled is the result of awaiting a canceled Task. Cancellation
// itself is not an error — it is observed synchronously as
// StatusCanceled — but spec.md §7 classes the act of awaiting a
// canceled task as InvalidUse, the same family as double-await or
// awaiting a detached task, so ErrCanceled wraps ErrInvalidUse too.
var ErrCanceled = fmt.Errorf("%w: task was canceled", ErrInvalidUse)

// FrameError is returned by Await when an async body panicked instead
// of returning normally. It is colite's rendition of the original's
// latched frame exception: the panic value and a captured stack are
// preserved rather than discarded.
type FrameError = frame.PanicError
