// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package wye

import (
	"errors"
	"fmt"
)

// Sentinel errors surfaced by Cause.AsError and the output stream.
var (
	// ErrEnd reports graceful termination of a wye or a side.
	ErrEnd = errors.New("wye: stream ended")
	// ErrKilled reports externally requested termination.
	ErrKilled = errors.New("wye: killed")
)

// Cause is the reason a side or a wye terminated.
// Concrete causes are End (graceful), Kill (forced, wraps the cause
// that triggered it) and Error (unexpected failure).
type Cause interface {
	cause()
	// AsError converts the cause to an error for reporting:
	// End → ErrEnd, Kill → ErrKilled (or the wrapped error payload),
	// Error → the payload.
	AsError() error
	fmt.Stringer
}

// End is the graceful completion cause.
type End struct{}

func (End) cause()         {}
func (End) AsError() error { return ErrEnd }
func (End) String() string { return "End" }

// Kill is the forced-termination cause. Underlying is the cause that
// triggered the kill; it is never itself a Kill (KillCause flattens).
type Kill struct {
	Underlying Cause
}

func (Kill) cause() {}

func (k Kill) AsError() error {
	if e, ok := k.Underlying.(Error); ok {
		return e.Err
	}
	return ErrKilled
}

func (k Kill) String() string { return fmt.Sprintf("Kill(%v)", k.Underlying) }

// Error is the unexpected-failure cause, carrying the error payload.
type Error struct {
	Err error
}

func (Error) cause()           {}
func (e Error) AsError() error { return e.Err }
func (e Error) String() string { return fmt.Sprintf("Error(%v)", e.Err) }

// KillCause normalizes a cause for forced termination. Non-kill causes
// are wrapped in Kill; nested kills are flattened so that
// KillCause(KillCause(c)) == KillCause(c).
func KillCause(c Cause) Cause {
	switch k := c.(type) {
	case nil:
		return Kill{Underlying: End{}}
	case Kill:
		for {
			ik, ok := k.Underlying.(Kill)
			if !ok {
				break
			}
			k = ik
		}
		if k.Underlying == nil {
			k.Underlying = End{}
		}
		return k
	default:
		return Kill{Underlying: c}
	}
}

// Graceful reports whether c represents a non-error termination:
// End itself, or a Kill triggered by End.
func Graceful(c Cause) bool {
	switch k := c.(type) {
	case End:
		return true
	case Kill:
		_, end := k.Underlying.(End)
		return end || k.Underlying == nil
	default:
		return false
	}
}

// orEnd rewrites a halt observed from a peer side into the cause the
// wye itself should halt with: graceful halts become End, killed
// errors resurface as the error, everything else passes through.
func orEnd(c Cause) Cause {
	if Graceful(c) {
		return End{}
	}
	if k, ok := c.(Kill); ok {
		if e, ok := k.Underlying.(Error); ok {
			return e
		}
	}
	if c == nil {
		return End{}
	}
	return c
}

// recoveredCause converts a recovered panic value into an Error cause.
func recoveredCause(r any) Cause {
	if err, ok := r.(error); ok {
		return Error{Err: err}
	}
	return Error{Err: fmt.Errorf("wye: receiver panic: %v", r)}
}

// CauseOf converts an error into a cause: nil and ErrEnd map to End,
// ErrKilled to Kill, anything else to Error.
func CauseOf(err error) Cause {
	switch {
	case err == nil, errors.Is(err, ErrEnd):
		return End{}
	case errors.Is(err, ErrKilled):
		return Kill{Underlying: End{}}
	default:
		return Error{Err: err}
	}
}
