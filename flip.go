// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package wye

import (
	"code.hybscloud.com/kont"
)

// Flip swaps the two sides of the wye: left awaits become right
// awaits, left receives and halts become right ones, and vice versa.
// Output passes through unchanged. Flip is an involution:
// w.Flip().Flip() is output-equivalent to w on all inputs.
func (w *Wye[L, R, O]) Flip() *Wye[R, L, O] {
	if w == nil {
		return Halt[R, L, O](End{})
	}
	switch w.tag {
	case tagHalt:
		return Halt[R, L, O](w.cause)
	case tagEmit:
		return Emit(w.batch, w.next.Flip())
	case tagOnHalt:
		inner, handle := w.inner, w.handle
		return OnHalt(inner.Flip(), func(c Cause) *Wye[R, L, O] {
			return safeHandle(handle, c).Flip()
		})
	default:
		switch w.side {
		case SideL:
			recv := w.recvL
			return AwaitR(func(e kont.Either[Cause, L]) *Wye[R, L, O] {
				return safeRecv(recv, e).Flip()
			})
		case SideR:
			recv := w.recvR
			return AwaitL(func(e kont.Either[Cause, R]) *Wye[R, L, O] {
				return safeRecv(recv, e).Flip()
			})
		default:
			recv := w.recvY
			return AwaitBoth(func(y ReceiveY[R, L]) *Wye[R, L, O] {
				return safeRecvY(recv, y.Flip()).Flip()
			})
		}
	}
}
