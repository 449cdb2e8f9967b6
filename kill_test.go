// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package wye_test

import (
	"errors"
	"reflect"
	"testing"

	"code.hybscloud.com/wye"
)

func TestKillLPreservesPendingEmits(t *testing.T) {
	w := wye.Emit([]int{1, 2}, collectL[int]())
	out, rest := drainOutput(w.KillL(wye.End{}))
	if !reflect.DeepEqual(out, []int{1, 2}) {
		t.Fatalf("emits before the kill must survive, got %v", out)
	}
	if _, ok := rest.Step().Halted(); !ok {
		t.Fatal("left-only wye must halt once its side is killed")
	}
}

func TestKillLNeverRequestsLeftAgain(t *testing.T) {
	w := wye.Merge[int]().KillL(wye.End{})
	// The merge survives on the right side only.
	for i := 0; i < 4; i++ {
		side, ok := w.Step().AwaitSide()
		if !ok {
			t.Fatalf("step %d: expected await, wye halted", i)
		}
		if side != wye.SideR {
			t.Fatalf("step %d: killed side requested again (side=%v)", i, side)
		}
		w = w.Feed1R(i)
		out, rest := drainOutput(w)
		if !reflect.DeepEqual(out, []int{i}) {
			t.Fatalf("step %d: right value lost, got %v", i, out)
		}
		w = rest
	}
}

func TestKillLFirstKillWins(t *testing.T) {
	boom := errors.New("boom")
	w := wye.Merge[int]()
	once := w.KillL(wye.End{})
	twice := once.KillL(wye.Error{Err: boom})
	a, ca := runPure(once, nil, []int{1, 2})
	b, cb := runPure(twice, nil, []int{1, 2})
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("double kill changed output: %v vs %v", a, b)
	}
	if reflect.TypeOf(ca) != reflect.TypeOf(cb) {
		t.Fatalf("double kill changed cause: %v vs %v", ca, cb)
	}
}

func TestKillRMirrorsKillL(t *testing.T) {
	w := wye.Merge[int]().KillR(wye.End{})
	side, ok := w.Step().AwaitSide()
	if !ok || side != wye.SideL {
		t.Fatalf("expected left await after KillR, got %v ok=%v", side, ok)
	}
}

func TestKillAbandonsPendingAwaitAndRunsCleanup(t *testing.T) {
	cleaned := false
	w := wye.OnHalt(
		wye.Merge[int](),
		func(c wye.Cause) *wye.Wye[int, int, int] {
			cleaned = true
			return wye.Emit([]int{-1}, wye.Halt[int, int, int](c))
		},
	)
	out, rest := drainOutput(w.Kill(wye.End{}))
	if !cleaned {
		t.Fatal("halt handler must run on Kill")
	}
	if !reflect.DeepEqual(out, []int{-1}) {
		t.Fatalf("cleanup output got %v", out)
	}
	c, ok := rest.Step().Halted()
	if !ok {
		t.Fatal("expected terminal wye after Kill")
	}
	if !wye.Graceful(c) {
		t.Fatalf("expected graceful kill cause, got %v", c)
	}
}

func TestKillOnHaltedKeepsCause(t *testing.T) {
	boom := errors.New("boom")
	w := wye.Halt[int, int, int](wye.Error{Err: boom})
	c, ok := w.Kill(wye.End{}).Step().Halted()
	if !ok {
		t.Fatal("expected halt")
	}
	if e, ok := c.(wye.Error); !ok || !errors.Is(e.Err, boom) {
		t.Fatalf("kill must not replace a terminal cause, got %v", c)
	}
}

func TestKillLAfterErrorPropagates(t *testing.T) {
	boom := errors.New("boom")
	_, c := runPure(wye.Merge[int]().KillL(wye.Error{Err: boom}), nil, nil)
	e, ok := c.(wye.Error)
	if !ok || !errors.Is(e.Err, boom) {
		t.Fatalf("expected Error(boom) to surface, got %v", c)
	}
}
