// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package wye

import (
	"code.hybscloud.com/kont"
)

// StepResult is the step form of a wye: either a pending Emit or Await
// node together with the composed halt continuation, or a terminal
// cause. Accessors return receivers that already carry the surrounding
// OnHalt context and the panic-recovery policy, so Feed/Kill loops and
// drivers never touch raw receivers.
type StepResult[L, R, O any] struct {
	node  *Wye[L, R, O]               // emit or await node, bare
	hs    []func(Cause) *Wye[L, R, O] // handler stack, outermost first
	cause Cause                       // non-nil when halted
}

// Step evaluates w to its step form: it descends through OnHalt
// wrappers, skips empty emits, runs halt handlers for terminal inner
// nodes, and stops at the first Emit, Await or bare terminal.
func (w *Wye[L, R, O]) Step() StepResult[L, R, O] {
	var hs []func(Cause) *Wye[L, R, O]
	cur := w
	for {
		if cur == nil {
			cur = Halt[L, R, O](End{})
		}
		switch cur.tag {
		case tagEmit:
			if len(cur.batch) == 0 {
				cur = cur.next
				continue
			}
			return StepResult[L, R, O]{node: cur, hs: hs}
		case tagAwait:
			return StepResult[L, R, O]{node: cur, hs: hs}
		case tagHalt:
			if len(hs) == 0 {
				return StepResult[L, R, O]{cause: cur.cause}
			}
			h := hs[len(hs)-1]
			hs = hs[:len(hs)-1]
			cur = safeHandle(h, cur.cause)
		case tagOnHalt:
			hs = append(hs, cur.handle)
			cur = cur.inner
		}
	}
}

// Halted returns the terminal cause when the wye is done.
// A wye that reaches this state never transitions again.
func (s StepResult[L, R, O]) Halted() (Cause, bool) {
	if s.cause != nil {
		return s.cause, true
	}
	return nil, false
}

// AsEmit returns the pending batch and the continuation wye.
func (s StepResult[L, R, O]) AsEmit() ([]O, *Wye[L, R, O], bool) {
	if s.cause != nil || s.node.tag != tagEmit {
		return nil, nil, false
	}
	return s.node.batch, wrapHalt(s.node.next, s.hs), true
}

// AwaitSide returns the requested side tag of a pending Await.
func (s StepResult[L, R, O]) AwaitSide() (Side, bool) {
	if s.cause != nil || s.node.tag != tagAwait {
		return 0, false
	}
	return s.node.side, true
}

// AsAwaitL projects a pending left await into its receiver. The
// returned receiver recovers panics per the fallback policy and
// re-attaches the surrounding halt handlers.
func (s StepResult[L, R, O]) AsAwaitL() (func(kont.Either[Cause, L]) *Wye[L, R, O], bool) {
	if s.cause != nil || s.node.tag != tagAwait || s.node.side != SideL {
		return nil, false
	}
	recv, hs := s.node.recvL, s.hs
	return func(e kont.Either[Cause, L]) *Wye[L, R, O] {
		return wrapHalt(safeRecv(recv, e), hs)
	}, true
}

// AsAwaitR projects a pending right await into its receiver; see AsAwaitL.
func (s StepResult[L, R, O]) AsAwaitR() (func(kont.Either[Cause, R]) *Wye[L, R, O], bool) {
	if s.cause != nil || s.node.tag != tagAwait || s.node.side != SideR {
		return nil, false
	}
	recv, hs := s.node.recvR, s.hs
	return func(e kont.Either[Cause, R]) *Wye[L, R, O] {
		return wrapHalt(safeRecv(recv, e), hs)
	}, true
}

// AsAwaitBoth projects a pending both-sides await into its receiver;
// see AsAwaitL.
func (s StepResult[L, R, O]) AsAwaitBoth() (func(ReceiveY[L, R]) *Wye[L, R, O], bool) {
	if s.cause != nil || s.node.tag != tagAwait || s.node.side != SideBoth {
		return nil, false
	}
	recv, hs := s.node.recvY, s.hs
	return func(y ReceiveY[L, R]) *Wye[L, R, O] {
		return wrapHalt(safeRecvY(recv, y), hs)
	}, true
}

// Self reconstructs the wye at this step, halt handlers included.
// Stepping Self reaches the same step form again.
func (s StepResult[L, R, O]) Self() *Wye[L, R, O] {
	if s.cause != nil {
		return Halt[L, R, O](s.cause)
	}
	return wrapHalt(s.node, s.hs)
}

// Halt forces the wye to halt from outside with cause c: the innermost
// halt handler consumes c, the remaining handlers stay attached to the
// result. A wye that already halted keeps its original cause.
func (s StepResult[L, R, O]) Halt(c Cause) *Wye[L, R, O] {
	if s.cause != nil {
		return Halt[L, R, O](s.cause)
	}
	if len(s.hs) == 0 {
		return Halt[L, R, O](c)
	}
	h := s.hs[len(s.hs)-1]
	return wrapHalt(safeHandle(h, c), s.hs[:len(s.hs)-1])
}

// wrapHalt re-attaches a handler stack (outermost first) around w.
func wrapHalt[L, R, O any](w *Wye[L, R, O], hs []func(Cause) *Wye[L, R, O]) *Wye[L, R, O] {
	for i := len(hs) - 1; i >= 0; i-- {
		w = OnHalt(w, hs[i])
	}
	return w
}

// safeHandle applies a halt handler, converting panics to Error halts.
func safeHandle[L, R, O any](h func(Cause) *Wye[L, R, O], c Cause) (w *Wye[L, R, O]) {
	if h == nil {
		return Halt[L, R, O](c)
	}
	defer func() {
		if r := recover(); r != nil {
			w = Halt[L, R, O](recoveredCause(r))
		}
	}()
	return h(c)
}

// safeRecv applies a single-side receiver. A panic while consuming a
// value re-enters the receiver on its fallback path with the thrown
// cause; a panic on the fallback path halts with Error.
func safeRecv[L, R, O, V any](recv func(kont.Either[Cause, V]) *Wye[L, R, O], e kont.Either[Cause, V]) *Wye[L, R, O] {
	w, pc := tryRecv(recv, e)
	if pc == nil {
		return w
	}
	if e.IsRight() {
		w, pc2 := tryRecv(recv, kont.Left[Cause, V](pc))
		if pc2 == nil {
			return w
		}
		return Halt[L, R, O](pc2)
	}
	return Halt[L, R, O](pc)
}

func tryRecv[L, R, O, V any](recv func(kont.Either[Cause, V]) *Wye[L, R, O], e kont.Either[Cause, V]) (w *Wye[L, R, O], pc Cause) {
	defer func() {
		if r := recover(); r != nil {
			w, pc = nil, recoveredCause(r)
		}
	}()
	if recv == nil {
		return Halt[L, R, O](End{}), nil
	}
	return recv(e), nil
}

// safeRecvY applies an AwaitBoth receiver. A panic while consuming a
// value re-enters the receiver with the matching side halt carrying
// the thrown cause; a panic on a halt path halts with Error.
func safeRecvY[L, R, O any](recv func(ReceiveY[L, R]) *Wye[L, R, O], y ReceiveY[L, R]) *Wye[L, R, O] {
	w, pc := tryRecvY(recv, y)
	if pc == nil {
		return w
	}
	var fallback ReceiveY[L, R]
	switch y.tag {
	case receiveTagL:
		fallback = HaltL[L, R](pc)
	case receiveTagR:
		fallback = HaltR[L, R](pc)
	default:
		return Halt[L, R, O](pc)
	}
	w, pc2 := tryRecvY(recv, fallback)
	if pc2 == nil {
		return w
	}
	return Halt[L, R, O](pc2)
}

func tryRecvY[L, R, O any](recv func(ReceiveY[L, R]) *Wye[L, R, O], y ReceiveY[L, R]) (w *Wye[L, R, O], pc Cause) {
	defer func() {
		if r := recover(); r != nil {
			w, pc = nil, recoveredCause(r)
		}
	}()
	if recv == nil {
		return Halt[L, R, O](End{}), nil
	}
	return recv(y), nil
}
