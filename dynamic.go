// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package wye

import (
	"code.hybscloud.com/kont"
)

// EchoLeft seeds on the first left value, emitting it once; from then
// on every right arrival re-emits the most recent left value. Halts
// when either side halts.
func EchoLeft[A any]() *Wye[A, any, A] {
	return AwaitL(func(e kont.Either[Cause, A]) *Wye[A, any, A] {
		if c, ok := e.GetLeft(); ok {
			return Halt[A, any, A](orEnd(c))
		}
		a, _ := e.GetRight()
		return emit1(a, echoLoop(a))
	})
}

func echoLoop[A any](last A) *Wye[A, any, A] {
	return AwaitBoth(func(y ReceiveY[A, any]) *Wye[A, any, A] {
		if a, ok := y.GetL(); ok {
			return echoLoop(a)
		}
		if _, ok := y.GetR(); ok {
			return emit1(last, echoLoop(last))
		}
		c, _ := y.Halted()
		return Halt[A, any, A](orEnd(c))
	})
}

// Interrupt passes right values through until the left side emits
// true, which halts the wye (and, under a driver, kills the right
// source). A graceful left halt leaves the right side flowing
// uninterruptible.
func Interrupt[I any]() *Wye[bool, I, I] {
	return AwaitBoth(func(y ReceiveY[bool, I]) *Wye[bool, I, I] {
		if stop, ok := y.GetL(); ok {
			if stop {
				return Halt[bool, I, I](End{})
			}
			return Interrupt[I]()
		}
		if i, ok := y.GetR(); ok {
			return emit1(i, Interrupt[I]())
		}
		if c, ok := y.HaltedL(); ok {
			if Graceful(c) {
				return passR[bool, I]()
			}
			return Halt[bool, I, I](orEnd(c))
		}
		c, _ := y.HaltedR()
		return Halt[bool, I, I](orEnd(c))
	})
}

// Dynamic reads the left side first and emits every arrival tagged as
// a ReceiveY. After each left value the selector f names the next side
// to query, after each right value the selector g does.
func Dynamic[I, J any](f func(I) Request, g func(J) Request) *Wye[I, J, ReceiveY[I, J]] {
	return dynamicLoop(RequestL, f, g)
}

func dynamicLoop[I, J any](req Request, f func(I) Request, g func(J) Request) *Wye[I, J, ReceiveY[I, J]] {
	switch req {
	case RequestL:
		return AwaitL(func(e kont.Either[Cause, I]) *Wye[I, J, ReceiveY[I, J]] {
			if c, ok := e.GetLeft(); ok {
				return Halt[I, J, ReceiveY[I, J]](orEnd(c))
			}
			i, _ := e.GetRight()
			return emit1(ReceiveL[I, J](i), dynamicLoop(f(i), f, g))
		})
	case RequestR:
		return AwaitR(func(e kont.Either[Cause, J]) *Wye[I, J, ReceiveY[I, J]] {
			if c, ok := e.GetLeft(); ok {
				return Halt[I, J, ReceiveY[I, J]](orEnd(c))
			}
			j, _ := e.GetRight()
			return emit1(ReceiveR[I, J](j), dynamicLoop(g(j), f, g))
		})
	default:
		return AwaitBoth(func(y ReceiveY[I, J]) *Wye[I, J, ReceiveY[I, J]] {
			if i, ok := y.GetL(); ok {
				return emit1(ReceiveL[I, J](i), dynamicLoop(f(i), f, g))
			}
			if j, ok := y.GetR(); ok {
				return emit1(ReceiveR[I, J](j), dynamicLoop(g(j), f, g))
			}
			c, _ := y.Halted()
			return Halt[I, J, ReceiveY[I, J]](orEnd(c))
		})
	}
}

// Dynamic1 is Dynamic with both sides carrying the same element type,
// emitting the bare values instead of ReceiveY tags.
func Dynamic1[I any](f func(I) Request) *Wye[I, I, I] {
	return dynamic1Loop(RequestL, f)
}

func dynamic1Loop[I any](req Request, f func(I) Request) *Wye[I, I, I] {
	switch req {
	case RequestL:
		return AwaitL(func(e kont.Either[Cause, I]) *Wye[I, I, I] {
			if c, ok := e.GetLeft(); ok {
				return Halt[I, I, I](orEnd(c))
			}
			i, _ := e.GetRight()
			return emit1(i, dynamic1Loop(f(i), f))
		})
	case RequestR:
		return AwaitR(func(e kont.Either[Cause, I]) *Wye[I, I, I] {
			if c, ok := e.GetLeft(); ok {
				return Halt[I, I, I](orEnd(c))
			}
			i, _ := e.GetRight()
			return emit1(i, dynamic1Loop(f(i), f))
		})
	default:
		return AwaitBoth(func(y ReceiveY[I, I]) *Wye[I, I, I] {
			if i, ok := y.GetL(); ok {
				return emit1(i, dynamic1Loop(f(i), f))
			}
			if i, ok := y.GetR(); ok {
				return emit1(i, dynamic1Loop(f(i), f))
			}
			c, _ := y.Halted()
			return Halt[I, I, I](orEnd(c))
		})
	}
}
