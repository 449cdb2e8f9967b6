// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package wye

import (
	"code.hybscloud.com/kont"
)

// KillL marks the left side as terminated with cause c (wrapped in
// Kill unless it already is one). Every pending or future AwaitL is
// resolved through its fallback with the kill cause, every AwaitBoth
// through HaltL; output already in the tree is preserved in order.
// The returned wye never requests from the left side again.
func (w *Wye[L, R, O]) KillL(c Cause) *Wye[L, R, O] {
	return disconnectL(KillCause(c), w)
}

// KillR is the right-side counterpart of KillL.
func (w *Wye[L, R, O]) KillR(c Cause) *Wye[L, R, O] {
	return disconnectR(KillCause(c), w)
}

// Kill forces the whole wye to halt with cause c: the pending action
// is abandoned, the halt handlers run with the kill cause, and both
// sides are disconnected. Killing an already-halted wye keeps the
// original cause.
func (w *Wye[L, R, O]) Kill(c Cause) *Wye[L, R, O] {
	k := KillCause(c)
	st := w.Step()
	if _, ok := st.Halted(); ok {
		return st.Self()
	}
	return disconnectR(k, disconnectL(k, st.Halt(k)))
}

// disconnectL rewrites the tree so the left side is never awaited:
// pending AwaitL nodes resolve immediately through their fallback,
// AwaitBoth nodes observe HaltL, and live right awaits stay
// disconnected in their continuations. k must already be a Kill.
func disconnectL[L, R, O any](k Cause, w *Wye[L, R, O]) *Wye[L, R, O] {
	for {
		if w == nil {
			return Halt[L, R, O](End{})
		}
		switch w.tag {
		case tagHalt:
			return w
		case tagEmit:
			return Emit(w.batch, disconnectL(k, w.next))
		case tagOnHalt:
			inner, handle := w.inner, w.handle
			return OnHalt(disconnectL(k, inner), func(c Cause) *Wye[L, R, O] {
				return disconnectL(k, safeHandle(handle, c))
			})
		case tagAwait:
			switch w.side {
			case SideL:
				w = safeRecv(w.recvL, kont.Left[Cause, L](k))
			case SideBoth:
				w = safeRecvY(w.recvY, HaltL[L, R](k))
			default:
				recv := w.recvR
				return AwaitR(func(e kont.Either[Cause, R]) *Wye[L, R, O] {
					return disconnectL(k, safeRecv(recv, e))
				})
			}
		}
	}
}

// disconnectR is the right-side counterpart of disconnectL.
func disconnectR[L, R, O any](k Cause, w *Wye[L, R, O]) *Wye[L, R, O] {
	for {
		if w == nil {
			return Halt[L, R, O](End{})
		}
		switch w.tag {
		case tagHalt:
			return w
		case tagEmit:
			return Emit(w.batch, disconnectR(k, w.next))
		case tagOnHalt:
			inner, handle := w.inner, w.handle
			return OnHalt(disconnectR(k, inner), func(c Cause) *Wye[L, R, O] {
				return disconnectR(k, safeHandle(handle, c))
			})
		case tagAwait:
			switch w.side {
			case SideR:
				w = safeRecv(w.recvR, kont.Left[Cause, R](k))
			case SideBoth:
				w = safeRecvY(w.recvY, HaltR[L, R](k))
			default:
				recv := w.recvL
				return AwaitL(func(e kont.Either[Cause, L]) *Wye[L, R, O] {
					return disconnectR(k, safeRecv(recv, e))
				})
			}
		}
	}
}
