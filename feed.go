// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package wye

import (
	"code.hybscloud.com/kont"
)

// FeedL delivers a batch of left-side values into the wye, stepping it
// until the batch is exhausted, the wye halts, or the wye awaits only
// the right side. In that case the unconsumed remainder is dropped:
// it was never requested. Output emitted along the way is prepended to
// the returned wye so the caller can consume it immediately.
func (w *Wye[L, R, O]) FeedL(batch []L) *Wye[L, R, O] {
	var out []O
	in := batch
	cur := w
	for {
		st := cur.Step()
		if _, ok := st.Halted(); ok {
			return emitAll(out, st.Self())
		}
		if b, next, ok := st.AsEmit(); ok {
			out = append(out, b...)
			cur = next
			continue
		}
		if len(in) == 0 {
			return emitAll(out, st.Self())
		}
		if recv, ok := st.AsAwaitL(); ok {
			cur = recv(kont.Right[Cause](in[0]))
			in = in[1:]
			continue
		}
		if recv, ok := st.AsAwaitBoth(); ok {
			cur = recv(ReceiveL[L, R](in[0]))
			in = in[1:]
			continue
		}
		// Awaiting R only: the remainder was never requested.
		return emitAll(out, st.Self())
	}
}

// FeedR delivers a batch of right-side values into the wye; see FeedL.
func (w *Wye[L, R, O]) FeedR(batch []R) *Wye[L, R, O] {
	var out []O
	in := batch
	cur := w
	for {
		st := cur.Step()
		if _, ok := st.Halted(); ok {
			return emitAll(out, st.Self())
		}
		if b, next, ok := st.AsEmit(); ok {
			out = append(out, b...)
			cur = next
			continue
		}
		if len(in) == 0 {
			return emitAll(out, st.Self())
		}
		if recv, ok := st.AsAwaitR(); ok {
			cur = recv(kont.Right[Cause](in[0]))
			in = in[1:]
			continue
		}
		if recv, ok := st.AsAwaitBoth(); ok {
			cur = recv(ReceiveR[L, R](in[0]))
			in = in[1:]
			continue
		}
		// Awaiting L only: the remainder was never requested.
		return emitAll(out, st.Self())
	}
}

// Feed1L delivers a single left-side value.
func (w *Wye[L, R, O]) Feed1L(l L) *Wye[L, R, O] {
	return w.FeedL([]L{l})
}

// Feed1R delivers a single right-side value.
func (w *Wye[L, R, O]) Feed1R(r R) *Wye[L, R, O] {
	return w.FeedR([]R{r})
}
