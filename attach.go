// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package wye

import (
	"code.hybscloud.com/kont"
)

// AttachL pre-composes the transformer p onto the left side of w: the
// resulting wye awaits I0 on the left, runs each value through p, and
// feeds p's output into w. Right awaits pass through untouched. When w
// awaits both sides, whichever input arrives decides who is driven:
// left values feed p (and p's output is fed into w in bulk), right
// values feed w directly. When p ends, the left side of w is killed
// with p's end cause.
func AttachL[I0, I, R, O any](p *Process1[I0, I], w *Wye[I, R, O]) *Wye[I0, R, O] {
	st := w.Step()
	if c, ok := st.Halted(); ok {
		return Halt[I0, R, O](c)
	}
	if b, next, ok := st.AsEmit(); ok {
		return Emit(b, AttachL(p, next))
	}
	side, _ := st.AwaitSide()
	switch side {
	case SideR:
		recv, _ := st.AsAwaitR()
		return AwaitR(func(e kont.Either[Cause, R]) *Wye[I0, R, O] {
			return AttachL(p, recv(e))
		})
	case SideL:
		ps := p.Step()
		if pc, ok := ps.Halted(); ok {
			return retypeL[I0](st.Self().KillL(pc))
		}
		if os, pnext, ok := ps.AsEmit(); ok {
			return AttachL(pnext, st.Self().FeedL(os))
		}
		precv, _ := ps.AsAwait()
		self := st.Self()
		return AwaitL(func(e kont.Either[Cause, I0]) *Wye[I0, R, O] {
			return AttachL(precv(e), self)
		})
	default: // SideBoth
		ps := p.Step()
		if pc, ok := ps.Halted(); ok {
			return retypeL[I0](st.Self().KillL(pc))
		}
		if os, pnext, ok := ps.AsEmit(); ok {
			return AttachL(pnext, st.Self().FeedL(os))
		}
		precv, _ := ps.AsAwait()
		self := st.Self()
		pself := ps.Self()
		return AwaitBoth(func(y ReceiveY[I0, R]) *Wye[I0, R, O] {
			if i0, ok := y.GetL(); ok {
				return AttachL(precv(kont.Right[Cause](i0)), self)
			}
			if r, ok := y.GetR(); ok {
				return AttachL(pself, self.Feed1R(r))
			}
			if c, ok := y.HaltedL(); ok {
				return AttachL(precv(kont.Left[Cause, I0](c)), self)
			}
			c, _ := y.HaltedR()
			return AttachL(pself, self.KillR(c))
		})
	}
}

// AttachR pre-composes p onto the right side of w; defined through
// Flip as the mirror image of AttachL.
func AttachR[I0, I, L, O any](p *Process1[I0, I], w *Wye[L, I, O]) *Wye[L, I0, O] {
	return AttachL(p, w.Flip()).Flip()
}

// retypeL rebrands the left input type of a wye whose left side is
// already disconnected. A stray left await cannot be forwarded across
// the type change and resolves through its fallback as killed.
func retypeL[I0, I, R, O any](w *Wye[I, R, O]) *Wye[I0, R, O] {
	if w == nil {
		return Halt[I0, R, O](End{})
	}
	switch w.tag {
	case tagHalt:
		return Halt[I0, R, O](w.cause)
	case tagEmit:
		return Emit(w.batch, retypeL[I0](w.next))
	case tagOnHalt:
		inner, handle := w.inner, w.handle
		return OnHalt(retypeL[I0](inner), func(c Cause) *Wye[I0, R, O] {
			return retypeL[I0](safeHandle(handle, c))
		})
	default:
		switch w.side {
		case SideL:
			return retypeL[I0](safeRecv(w.recvL, kont.Left[Cause, I](KillCause(nil))))
		case SideR:
			recv := w.recvR
			return AwaitR(func(e kont.Either[Cause, R]) *Wye[I0, R, O] {
				return retypeL[I0](safeRecv(recv, e))
			})
		default:
			recv := w.recvY
			return AwaitBoth(func(y ReceiveY[I0, R]) *Wye[I0, R, O] {
				if _, ok := y.GetL(); ok {
					return retypeL[I0](safeRecvY(recv, HaltL[I, R](KillCause(nil))))
				}
				if r, ok := y.GetR(); ok {
					return retypeL[I0](safeRecvY(recv, ReceiveR[I, R](r)))
				}
				if c, ok := y.HaltedL(); ok {
					return retypeL[I0](safeRecvY(recv, HaltL[I, R](c)))
				}
				c, _ := y.HaltedR()
				return retypeL[I0](safeRecvY(recv, HaltR[I, R](c)))
			})
		}
	}
}
