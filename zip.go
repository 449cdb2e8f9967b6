// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package wye

import (
	"code.hybscloud.com/kont"
)

// Pair is the output element of Yip and YipL.
type Pair[A, B any] struct {
	L A
	R B
}

// YipWith zips the two sides pairwise through f. Both sides are
// requested in parallel for the first element of each pair; the wye
// halts as soon as either side halts.
func YipWith[A, B, O any](f func(A, B) O) *Wye[A, B, O] {
	return AwaitBoth(func(y ReceiveY[A, B]) *Wye[A, B, O] {
		if a, ok := y.GetL(); ok {
			return AwaitR(func(e kont.Either[Cause, B]) *Wye[A, B, O] {
				if c, ok := e.GetLeft(); ok {
					return Halt[A, B, O](orEnd(c))
				}
				b, _ := e.GetRight()
				return emit1(f(a, b), YipWith(f))
			})
		}
		if b, ok := y.GetR(); ok {
			return AwaitL(func(e kont.Either[Cause, A]) *Wye[A, B, O] {
				if c, ok := e.GetLeft(); ok {
					return Halt[A, B, O](orEnd(c))
				}
				a, _ := e.GetRight()
				return emit1(f(a, b), YipWith(f))
			})
		}
		c, _ := y.Halted()
		return Halt[A, B, O](orEnd(c))
	})
}

// Yip is YipWith pairing.
func Yip[A, B any]() *Wye[A, B, Pair[A, B]] {
	return YipWith(func(a A, b B) Pair[A, B] {
		return Pair[A, B]{L: a, R: b}
	})
}

// YipWithL is a left-biased buffered zip: up to n left values are
// buffered ahead of the right side. With an empty buffer only the left
// is read; with a full buffer only the right; in between both sides
// are raced. Each right value is combined with the oldest buffered
// left value.
func YipWithL[A, B, O any](n int, f func(A, B) O) *Wye[A, B, O] {
	return yipWithL(nil, n, f)
}

func yipWithL[A, B, O any](buf []A, n int, f func(A, B) O) *Wye[A, B, O] {
	switch {
	case len(buf) == 0:
		return AwaitL(func(e kont.Either[Cause, A]) *Wye[A, B, O] {
			if c, ok := e.GetLeft(); ok {
				return Halt[A, B, O](orEnd(c))
			}
			a, _ := e.GetRight()
			return yipWithL([]A{a}, n, f)
		})
	case len(buf) >= n:
		return AwaitR(func(e kont.Either[Cause, B]) *Wye[A, B, O] {
			if c, ok := e.GetLeft(); ok {
				return Halt[A, B, O](orEnd(c))
			}
			b, _ := e.GetRight()
			return emit1(f(buf[0], b), yipWithL(buf[1:], n, f))
		})
	default:
		return AwaitBoth(func(y ReceiveY[A, B]) *Wye[A, B, O] {
			if a, ok := y.GetL(); ok {
				grown := make([]A, len(buf), len(buf)+1)
				copy(grown, buf)
				return yipWithL(append(grown, a), n, f)
			}
			if b, ok := y.GetR(); ok {
				return emit1(f(buf[0], b), yipWithL(buf[1:], n, f))
			}
			c, _ := y.Halted()
			return Halt[A, B, O](orEnd(c))
		})
	}
}

// YipL is YipWithL pairing.
func YipL[A, B any](n int) *Wye[A, B, Pair[A, B]] {
	return YipWithL(n, func(a A, b B) Pair[A, B] {
		return Pair[A, B]{L: a, R: b}
	})
}

// DrainR echoes the left side and drains the right, allowing the left
// to run at most n values ahead of the right.
func DrainR[I any](n int) *Wye[I, any, I] {
	return YipWithL(n, func(i I, _ any) I { return i })
}

// DrainL is the flipped DrainR: echo right, drain left, bound n.
func DrainL[I any](n int) *Wye[any, I, I] {
	return DrainR[I](n).Flip()
}
