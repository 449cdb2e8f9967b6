// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package wye

import (
	"code.hybscloud.com/kont"
)

type nodeTag uint8

const (
	tagEmit nodeTag = iota
	tagAwait
	tagHalt
	tagOnHalt
)

// Wye describes a two-input merging state machine producing a single
// output stream. L and R are the input element types, O the output
// element type.
//
// A Wye is an immutable tree of suspended continuations; every
// operation (Step, FeedL, KillR, ...) leaves its argument intact and
// returns a fresh successor. Receivers are plain functions; panics
// raised inside them are recovered at the stepping boundary and
// converted to Error causes.
type Wye[L, R, O any] struct {
	tag nodeTag

	// tagEmit
	batch []O
	next  *Wye[L, R, O]

	// tagAwait
	side  Side
	recvL func(kont.Either[Cause, L]) *Wye[L, R, O]
	recvR func(kont.Either[Cause, R]) *Wye[L, R, O]
	recvY func(ReceiveY[L, R]) *Wye[L, R, O]

	// tagHalt
	cause Cause

	// tagOnHalt
	inner  *Wye[L, R, O]
	handle func(Cause) *Wye[L, R, O]
}

// Emit produces batch downstream and continues with next.
// The batch is owned by the wye after the call; callers must not
// mutate it.
func Emit[L, R, O any](batch []O, next *Wye[L, R, O]) *Wye[L, R, O] {
	return &Wye[L, R, O]{tag: tagEmit, batch: batch, next: next}
}

// emit1 is Emit of a single value.
func emit1[L, R, O any](o O, next *Wye[L, R, O]) *Wye[L, R, O] {
	return &Wye[L, R, O]{tag: tagEmit, batch: []O{o}, next: next}
}

// Halt is the terminal wye carrying the given cause.
func Halt[L, R, O any](c Cause) *Wye[L, R, O] {
	if c == nil {
		c = End{}
	}
	return &Wye[L, R, O]{tag: tagHalt, cause: c}
}

// AwaitL requests one value from the left side. The receiver is called
// with Right(value) when the side delivers, or Left(cause) when the
// side has terminated (the fallback path).
func AwaitL[L, R, O any](recv func(kont.Either[Cause, L]) *Wye[L, R, O]) *Wye[L, R, O] {
	return &Wye[L, R, O]{tag: tagAwait, side: SideL, recvL: recv}
}

// AwaitR requests one value from the right side; see AwaitL.
func AwaitR[L, R, O any](recv func(kont.Either[Cause, R]) *Wye[L, R, O]) *Wye[L, R, O] {
	return &Wye[L, R, O]{tag: tagAwait, side: SideR, recvR: recv}
}

// AwaitBoth requests a value from whichever side delivers first.
// The receiver observes values and halts of either side as a ReceiveY.
func AwaitBoth[L, R, O any](recv func(ReceiveY[L, R]) *Wye[L, R, O]) *Wye[L, R, O] {
	return &Wye[L, R, O]{tag: tagAwait, side: SideBoth, recvY: recv}
}

// OnHalt attaches a halt handler to w. When w halts, on its own or
// forced from outside, the handler receives the cause and yields the
// wye to continue with (typically cleanup or a final emit).
func OnHalt[L, R, O any](w *Wye[L, R, O], handler func(Cause) *Wye[L, R, O]) *Wye[L, R, O] {
	return &Wye[L, R, O]{tag: tagOnHalt, inner: w, handle: handler}
}

// emitAll prepends a collected batch in front of w.
func emitAll[L, R, O any](batch []O, w *Wye[L, R, O]) *Wye[L, R, O] {
	if len(batch) == 0 {
		return w
	}
	return Emit(batch, w)
}
