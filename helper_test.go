// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package wye_test

import (
	"code.hybscloud.com/kont"
	"code.hybscloud.com/wye"
)

// runPure drives a wye against two in-memory inputs without any
// concurrency: values are handed over one at a time as the wye
// requests them, left-biased on AwaitBoth, and exhausted sides halt
// with a graceful kill exactly like a driver would deliver it.
// Returns the collected output and the terminal cause.
func runPure[L, R, O any](w *wye.Wye[L, R, O], ls []L, rs []R) ([]O, wye.Cause) {
	var out []O
	lDone, rDone := false, false
	halted := wye.KillCause(wye.End{})
	for {
		st := w.Step()
		if c, ok := st.Halted(); ok {
			return out, c
		}
		if b, next, ok := st.AsEmit(); ok {
			out = append(out, b...)
			w = next
			continue
		}
		side, _ := st.AwaitSide()
		switch side {
		case wye.SideL:
			recv, _ := st.AsAwaitL()
			if len(ls) > 0 {
				w = recv(kont.Right[wye.Cause](ls[0]))
				ls = ls[1:]
			} else {
				lDone = true
				w = recv(kont.Left[wye.Cause, L](halted))
			}
		case wye.SideR:
			recv, _ := st.AsAwaitR()
			if len(rs) > 0 {
				w = recv(kont.Right[wye.Cause](rs[0]))
				rs = rs[1:]
			} else {
				rDone = true
				w = recv(kont.Left[wye.Cause, R](halted))
			}
		default:
			recv, _ := st.AsAwaitBoth()
			switch {
			case len(ls) > 0:
				w = recv(wye.ReceiveL[L, R](ls[0]))
				ls = ls[1:]
			case len(rs) > 0:
				w = recv(wye.ReceiveR[L, R](rs[0]))
				rs = rs[1:]
			case !lDone:
				lDone = true
				w = recv(wye.HaltL[L, R](halted))
			default:
				rDone = true
				w = recv(wye.HaltR[L, R](halted))
			}
		}
	}
}

// collectL is a left-only echo wye used by feed tests: it emits every
// left value until the left side halts.
func collectL[T any]() *wye.Wye[T, T, T] {
	return wye.AwaitL(func(e kont.Either[wye.Cause, T]) *wye.Wye[T, T, T] {
		if _, ok := e.GetLeft(); ok {
			return wye.Halt[T, T, T](wye.End{})
		}
		v, _ := e.GetRight()
		return wye.Emit([]T{v}, collectL[T]())
	})
}

// drainOutput steps w collecting output until the first await or halt.
func drainOutput[L, R, O any](w *wye.Wye[L, R, O]) ([]O, *wye.Wye[L, R, O]) {
	var out []O
	for {
		st := w.Step()
		if _, ok := st.Halted(); ok {
			return out, st.Self()
		}
		b, next, ok := st.AsEmit()
		if !ok {
			return out, st.Self()
		}
		out = append(out, b...)
		w = next
	}
}

// multiset counts occurrences; used by merge commutativity checks.
func multiset[T comparable](vs []T) map[T]int {
	m := make(map[T]int, len(vs))
	for _, v := range vs {
		m[v]++
	}
	return m
}

// isSubsequence reports whether sub appears in vs in order.
func isSubsequence[T comparable](sub, vs []T) bool {
	i := 0
	for _, v := range vs {
		if i < len(sub) && v == sub[i] {
			i++
		}
	}
	return i == len(sub)
}
