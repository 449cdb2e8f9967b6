// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package wye_test

import (
	"reflect"
	"testing"
	"time"

	"code.hybscloud.com/wye"
)

func TestBoundedQueuePassesRightThrough(t *testing.T) {
	// The right values flow; left tokens are the queued items that each
	// right value acknowledges.
	out, c := runPure(
		wye.BoundedQueue[string](2),
		[]any{"a", "b", "c", "d", "e", "f", "g"},
		[]string{"x", "y", "z"},
	)
	if !reflect.DeepEqual(out, []string{"x", "y", "z"}) {
		t.Fatalf("boundedQueue got %v", out)
	}
	if _, ok := c.(wye.End); !ok {
		t.Fatalf("expected End, got %v", c)
	}
}

func TestBoundedQueueThrottlesLeft(t *testing.T) {
	w := wye.BoundedQueue[int](2)
	taken := 0
	for {
		side, ok := w.Step().AwaitSide()
		if !ok {
			t.Fatal("queue halted unexpectedly")
		}
		if side == wye.SideR {
			break
		}
		w = w.Feed1L(struct{}{})
		taken++
		if taken > 3 {
			t.Fatalf("left side not throttled: %d unacked", taken)
		}
	}
	if taken > 3 {
		t.Fatalf("more than n+1 unacked left items: %d", taken)
	}
}

func TestUnboundedQueueEmitsRight(t *testing.T) {
	w := wye.UnboundedQueue[struct{}, int]()
	out, rest := drainOutput(w.FeedR([]int{1, 2, 3}))
	if !reflect.DeepEqual(out, []int{1, 2, 3}) {
		t.Fatalf("unboundedQueue got %v", out)
	}
	if side, ok := rest.Step().AwaitSide(); !ok || side != wye.SideBoth {
		t.Fatalf("queue must keep racing both sides, got %v ok=%v", side, ok)
	}
}

func TestUnboundedQueueLeftIsKillSwitch(t *testing.T) {
	w := wye.UnboundedQueue[struct{}, int]().Feed1L(struct{}{})
	c, ok := w.Step().Halted()
	if !ok {
		t.Fatal("a left value must terminate the queue")
	}
	if _, ok := c.(wye.End); !ok {
		t.Fatalf("kill-switch must end gracefully, got %v", c)
	}
}

func TestTimedQueueBlocksRightWhenStale(t *testing.T) {
	const d = 10 * time.Millisecond
	w := wye.TimedQueue[int](d, 8)
	// Two timestamps far apart: the oldest is now stale.
	w = w.FeedL([]time.Duration{0, 25 * time.Millisecond})
	if side, ok := w.Step().AwaitSide(); !ok || side != wye.SideL {
		t.Fatalf("stale queue must block the right side, got %v ok=%v", side, ok)
	}
}

func TestTimedQueueBlocksRightWhenOverSize(t *testing.T) {
	w := wye.TimedQueue[int](time.Hour, 2)
	w = w.FeedL([]time.Duration{1, 2, 3})
	if side, ok := w.Step().AwaitSide(); !ok || side != wye.SideL {
		t.Fatalf("oversized queue must block the right side, got %v ok=%v", side, ok)
	}
}

func TestTimedQueueAnswersShrinkPending(t *testing.T) {
	// At exactly maxSize the queue still races both sides; each right
	// value answers the oldest timestamp and keeps it that way.
	w := wye.TimedQueue[int](time.Hour, 3)
	w = w.FeedL([]time.Duration{1, 2, 3})
	if side, ok := w.Step().AwaitSide(); !ok || side != wye.SideBoth {
		t.Fatalf("queue at maxSize must still race, got %v ok=%v", side, ok)
	}
	out, rest := drainOutput(w.Feed1R(42))
	if !reflect.DeepEqual(out, []int{42}) {
		t.Fatalf("timedQueue must pass right through, got %v", out)
	}
	if side, ok := rest.Step().AwaitSide(); !ok || side != wye.SideBoth {
		t.Fatalf("answered queue must race both sides, got %v ok=%v", side, ok)
	}
}

func TestTimedQueuePassesThrough(t *testing.T) {
	out, c := runPure(
		wye.TimedQueue[int](time.Hour, 8),
		[]time.Duration{1, 2, 3},
		[]int{7, 8, 9},
	)
	if !reflect.DeepEqual(out, []int{7, 8, 9}) {
		t.Fatalf("timedQueue got %v", out)
	}
	if _, ok := c.(wye.End); !ok {
		t.Fatalf("expected End, got %v", c)
	}
}
