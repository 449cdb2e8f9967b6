// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package wye

import (
	"time"

	"code.hybscloud.com/kont"
)

// BoundedQueue passes right values through while allowing up to n
// unacknowledged left values: each right value acknowledges the oldest
// outstanding left one. YipWithL with the left value discarded.
func BoundedQueue[I any](n int) *Wye[any, I, I] {
	return YipWithL(n, func(_ any, i I) I { return i })
}

// UnboundedQueue emits everything from the right side without
// backpressure. The left side is a kill-switch: the first left value
// terminates the queue immediately. This is deliberate: feeding the
// left side is how an owner closes the queue from outside.
func UnboundedQueue[A, I any]() *Wye[A, I, I] {
	return AwaitBoth(func(y ReceiveY[A, I]) *Wye[A, I, I] {
		if _, ok := y.GetL(); ok {
			return Halt[A, I, I](End{})
		}
		if i, ok := y.GetR(); ok {
			return emit1(i, UnboundedQueue[A, I]())
		}
		if c, ok := y.HaltedL(); ok {
			if Graceful(c) {
				return passR[A, I]()
			}
			return Halt[A, I, I](orEnd(c))
		}
		c, _ := y.HaltedR()
		return Halt[A, I, I](orEnd(c))
	})
}

// TimedQueue passes right values through, paced by left-side
// timestamps. Each left value is the enqueue timestamp of one pending
// item; each right value answers the oldest pending timestamp. The
// right side is blocked only while the oldest unanswered timestamp is
// older than d relative to the newest one, or more than maxSize
// timestamps are pending.
func TimedQueue[I any](d time.Duration, maxSize int) *Wye[time.Duration, I, I] {
	return timedQueue[I](nil, d, maxSize)
}

func timedQueue[I any](pending []time.Duration, d time.Duration, maxSize int) *Wye[time.Duration, I, I] {
	if len(pending) > 0 && (pending[len(pending)-1]-pending[0] > d || len(pending) > maxSize) {
		return AwaitL(func(e kont.Either[Cause, time.Duration]) *Wye[time.Duration, I, I] {
			if c, ok := e.GetLeft(); ok {
				if Graceful(c) {
					return passR[time.Duration, I]()
				}
				return Halt[time.Duration, I, I](orEnd(c))
			}
			ts, _ := e.GetRight()
			return timedQueue[I](pushTS(pending, ts), d, maxSize)
		})
	}
	return AwaitBoth(func(y ReceiveY[time.Duration, I]) *Wye[time.Duration, I, I] {
		if ts, ok := y.GetL(); ok {
			return timedQueue[I](pushTS(pending, ts), d, maxSize)
		}
		if i, ok := y.GetR(); ok {
			rest := pending
			if len(rest) > 0 {
				rest = rest[1:]
			}
			return emit1(i, timedQueue[I](rest, d, maxSize))
		}
		if c, ok := y.HaltedL(); ok {
			if Graceful(c) {
				return passR[time.Duration, I]()
			}
			return Halt[time.Duration, I, I](orEnd(c))
		}
		c, _ := y.HaltedR()
		return Halt[time.Duration, I, I](orEnd(c))
	})
}

func pushTS(pending []time.Duration, ts time.Duration) []time.Duration {
	grown := make([]time.Duration, len(pending), len(pending)+1)
	copy(grown, pending)
	return append(grown, ts)
}
