// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package wye provides a nondeterministic two-input stream combinator:
// a pure merging state machine plus a lock-free concurrent driver.
//
// A [Wye] decides, step by step, whether it wants the next element from
// the left input, the right input, or whichever arrives first, and how
// to react when either side terminates. The driver binds two effectful
// producers to a wye and exposes the merged result as a demand-driven
// [Stream].
//
// # Architecture
//
//   - Algebra: [Wye] values are immutable trees stepped one action at a
//     time: Emit, Await(L|R|Both) or a terminal [Cause]. Value-or-halt
//     delivery uses [code.hybscloud.com/kont.Either]. Operations: Step,
//     FeedL/FeedR, KillL/KillR/Kill, Flip, [AttachL]/[AttachR].
//   - Driver: single-actor engine on bounded lock-free SPSC mailbox
//     lanes via [code.hybscloud.com/lfq]. Producers and the downstream
//     caller post messages; one actor turn at a time owns the wye.
//     Blocking paths wait with [code.hybscloud.com/iox.Backoff].
//   - Library: [Merge], [MergeHaltBoth], [MergeHaltL], [Either], [Yip],
//     [YipWith], [YipWithL], [BoundedQueue], [UnboundedQueue],
//     [DrainR], [DrainL], [EchoLeft], [Interrupt], [TimedQueue],
//     [Dynamic], [Dynamic1].
//
// # Ordering
//
// Within one side, values reach the wye in producer order. Between
// sides, interleaving is arbitrary: the combinator is deliberately
// nondeterministic, with only a coarse bias alternation after each
// delivered batch. Actor turns are strictly serialized, so wye
// transitions form a total order, and each demand callback fires at
// most once (enforced with [code.hybscloud.com/kont.Affine]).
//
// # Termination
//
// Causes are [End] (graceful), [Kill] (forced, idempotent under
// [KillCause]) and [Error]. When a side ends, the wye is rewritten so
// it never requests from that side again; when the wye ends, both
// sides are shut down and the stream reports the terminal cause after
// their cleanup completed: ErrEnd, ErrKilled, or the error payload.
//
// # Example
//
//	y := wye.Merge[int]()
//	s := wye.Run(
//		wye.ProduceSlice([]int{1, 2, 3}, 1),
//		wye.ProduceSlice([]int{10, 20}, 1),
//		y, wye.GoStrategy(),
//	)
//	out, err := s.Collect() // all five values, sides interleaved
package wye
