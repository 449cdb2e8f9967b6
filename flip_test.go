// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package wye_test

import (
	"reflect"
	"testing"
	"testing/quick"

	"code.hybscloud.com/wye"
)

func TestFlipSwapsSides(t *testing.T) {
	// A left-only pass flipped is a right-only pass.
	w := wye.Dynamic1(func(int) wye.Request { return wye.RequestL }).Flip()
	out, c := runPure(w, nil, []int{1, 2, 3})
	if !reflect.DeepEqual(out, []int{1, 2, 3}) {
		t.Fatalf("flipped left pass must read right, got %v", out)
	}
	if _, ok := c.(wye.End); !ok {
		t.Fatalf("expected End, got %v", c)
	}
}

func TestFlipInvolution(t *testing.T) {
	property := func(ls, rs []int) bool {
		w := wye.Merge[int]()
		a, _ := runPure(w, ls, rs)
		b, _ := runPure(w.Flip().Flip(), ls, rs)
		return reflect.DeepEqual(a, b)
	}
	if err := quick.Check(property, nil); err != nil {
		t.Error(err)
	}
}

func TestFlipInvolutionZip(t *testing.T) {
	property := func(ls, rs []int16) bool {
		w := wye.YipWith(func(a, b int16) int32 { return int32(a) - int32(b) })
		a, _ := runPure(w, ls, rs)
		b, _ := runPure(w.Flip().Flip(), ls, rs)
		return reflect.DeepEqual(a, b)
	}
	if err := quick.Check(property, nil); err != nil {
		t.Error(err)
	}
}

func TestFlipPreservesEmitsAndCause(t *testing.T) {
	w := wye.Emit([]int{1}, wye.Halt[int, int, int](wye.End{}))
	out, c := runPure(w.Flip(), nil, nil)
	if !reflect.DeepEqual(out, []int{1}) {
		t.Fatalf("flip must pass output through, got %v", out)
	}
	if _, ok := c.(wye.End); !ok {
		t.Fatalf("flip must keep the cause, got %v", c)
	}
}

func TestFlipEchoLeftReadsRight(t *testing.T) {
	// EchoLeft flipped: seed from the right, echo on left arrivals.
	w := wye.EchoLeft[int]().Flip()
	side, ok := w.Step().AwaitSide()
	if !ok || side != wye.SideR {
		t.Fatalf("flipped EchoLeft must start on the right, got %v", side)
	}
}
