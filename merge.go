// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package wye

import (
	"code.hybscloud.com/kont"
)

// passR drains the right side, ignoring the left entirely.
func passR[L, T any]() *Wye[L, T, T] {
	return AwaitR(func(e kont.Either[Cause, T]) *Wye[L, T, T] {
		if c, ok := e.GetLeft(); ok {
			return Halt[L, T, T](orEnd(c))
		}
		v, _ := e.GetRight()
		return emit1(v, passR[L, T]())
	})
}

// passL drains the left side, ignoring the right entirely.
func passL[T, R any]() *Wye[T, R, T] {
	return AwaitL(func(e kont.Either[Cause, T]) *Wye[T, R, T] {
		if c, ok := e.GetLeft(); ok {
			return Halt[T, R, T](orEnd(c))
		}
		v, _ := e.GetRight()
		return emit1(v, passL[T, R]())
	})
}

// Merge emits values from whichever side delivers first. When one side
// ends gracefully the other is drained alone; the wye halts once both
// sides have halted, or immediately on an error.
func Merge[T any]() *Wye[T, T, T] {
	return AwaitBoth(func(y ReceiveY[T, T]) *Wye[T, T, T] {
		if v, ok := y.GetL(); ok {
			return emit1(v, Merge[T]())
		}
		if v, ok := y.GetR(); ok {
			return emit1(v, Merge[T]())
		}
		if c, ok := y.HaltedL(); ok {
			if Graceful(c) {
				return passR[T, T]()
			}
			return Halt[T, T, T](orEnd(c))
		}
		c, _ := y.HaltedR()
		if Graceful(c) {
			return passL[T, T]()
		}
		return Halt[T, T, T](orEnd(c))
	})
}

// MergeHaltBoth is Merge, except it halts as soon as either side halts.
func MergeHaltBoth[T any]() *Wye[T, T, T] {
	return AwaitBoth(func(y ReceiveY[T, T]) *Wye[T, T, T] {
		if v, ok := y.GetL(); ok {
			return emit1(v, MergeHaltBoth[T]())
		}
		if v, ok := y.GetR(); ok {
			return emit1(v, MergeHaltBoth[T]())
		}
		c, _ := y.Halted()
		return Halt[T, T, T](orEnd(c))
	})
}

// MergeHaltL is Merge, except it halts as soon as the left side halts;
// a graceful right halt leaves the left side draining alone.
func MergeHaltL[T any]() *Wye[T, T, T] {
	return AwaitBoth(func(y ReceiveY[T, T]) *Wye[T, T, T] {
		if v, ok := y.GetL(); ok {
			return emit1(v, MergeHaltL[T]())
		}
		if v, ok := y.GetR(); ok {
			return emit1(v, MergeHaltL[T]())
		}
		if c, ok := y.HaltedL(); ok {
			return Halt[T, T, T](orEnd(c))
		}
		c, _ := y.HaltedR()
		if Graceful(c) {
			return passL[T, T]()
		}
		return Halt[T, T, T](orEnd(c))
	})
}

// Either merges the two sides losslessly, tagging left values as
// kont.Left and right values as kont.Right. Halts once both sides
// have halted.
func Either[A, B any]() *Wye[A, B, kont.Either[A, B]] {
	return AwaitBoth(func(y ReceiveY[A, B]) *Wye[A, B, kont.Either[A, B]] {
		if a, ok := y.GetL(); ok {
			return emit1(kont.Left[A, B](a), Either[A, B]())
		}
		if b, ok := y.GetR(); ok {
			return emit1(kont.Right[A, B](b), Either[A, B]())
		}
		if c, ok := y.HaltedL(); ok {
			if Graceful(c) {
				return eitherR[A, B]()
			}
			return Halt[A, B, kont.Either[A, B]](orEnd(c))
		}
		c, _ := y.HaltedR()
		if Graceful(c) {
			return eitherL[A, B]()
		}
		return Halt[A, B, kont.Either[A, B]](orEnd(c))
	})
}

// eitherR drains the right side alone, still tagging.
func eitherR[A, B any]() *Wye[A, B, kont.Either[A, B]] {
	return AwaitR(func(e kont.Either[Cause, B]) *Wye[A, B, kont.Either[A, B]] {
		if c, ok := e.GetLeft(); ok {
			return Halt[A, B, kont.Either[A, B]](orEnd(c))
		}
		b, _ := e.GetRight()
		return emit1(kont.Right[A, B](b), eitherR[A, B]())
	})
}

// eitherL drains the left side alone, still tagging.
func eitherL[A, B any]() *Wye[A, B, kont.Either[A, B]] {
	return AwaitL(func(e kont.Either[Cause, A]) *Wye[A, B, kont.Either[A, B]] {
		if c, ok := e.GetLeft(); ok {
			return Halt[A, B, kont.Either[A, B]](orEnd(c))
		}
		a, _ := e.GetRight()
		return emit1(kont.Left[A, B](a), eitherL[A, B]())
	})
}
