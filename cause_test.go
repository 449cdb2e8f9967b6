// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package wye_test

import (
	"errors"
	"testing"

	"code.hybscloud.com/wye"
)

func TestKillCauseWrapsNonKill(t *testing.T) {
	k := wye.KillCause(wye.End{})
	kill, ok := k.(wye.Kill)
	if !ok {
		t.Fatalf("expected Kill, got %T", k)
	}
	if _, ok := kill.Underlying.(wye.End); !ok {
		t.Fatalf("expected Kill(End), got %v", kill)
	}
}

func TestKillCauseIdempotent(t *testing.T) {
	boom := errors.New("boom")
	for _, c := range []wye.Cause{wye.End{}, wye.Error{Err: boom}} {
		once := wye.KillCause(c)
		twice := wye.KillCause(once)
		if once != twice {
			t.Fatalf("KillCause not idempotent: %v vs %v", once, twice)
		}
	}
}

func TestKillCauseFlattensNested(t *testing.T) {
	nested := wye.Kill{Underlying: wye.Kill{Underlying: wye.End{}}}
	k := wye.KillCause(nested).(wye.Kill)
	if _, ok := k.Underlying.(wye.End); !ok {
		t.Fatalf("expected flattened Kill(End), got %v", k)
	}
}

func TestGraceful(t *testing.T) {
	if !wye.Graceful(wye.End{}) {
		t.Fatal("End must be graceful")
	}
	if !wye.Graceful(wye.Kill{Underlying: wye.End{}}) {
		t.Fatal("Kill(End) must be graceful")
	}
	if wye.Graceful(wye.Error{Err: errors.New("x")}) {
		t.Fatal("Error must not be graceful")
	}
	if wye.Graceful(wye.Kill{Underlying: wye.Error{Err: errors.New("x")}}) {
		t.Fatal("Kill(Error) must not be graceful")
	}
}

func TestAsError(t *testing.T) {
	boom := errors.New("boom")
	if err := (wye.End{}).AsError(); !errors.Is(err, wye.ErrEnd) {
		t.Fatalf("End.AsError got %v", err)
	}
	if err := (wye.Kill{Underlying: wye.End{}}).AsError(); !errors.Is(err, wye.ErrKilled) {
		t.Fatalf("Kill(End).AsError got %v", err)
	}
	if err := (wye.Kill{Underlying: wye.Error{Err: boom}}).AsError(); !errors.Is(err, boom) {
		t.Fatalf("Kill(Error).AsError got %v", err)
	}
	if err := (wye.Error{Err: boom}).AsError(); !errors.Is(err, boom) {
		t.Fatalf("Error.AsError got %v", err)
	}
}

func TestCauseOfRoundTrip(t *testing.T) {
	if _, ok := wye.CauseOf(nil).(wye.End); !ok {
		t.Fatal("CauseOf(nil) must be End")
	}
	if _, ok := wye.CauseOf(wye.ErrEnd).(wye.End); !ok {
		t.Fatal("CauseOf(ErrEnd) must be End")
	}
	if _, ok := wye.CauseOf(wye.ErrKilled).(wye.Kill); !ok {
		t.Fatal("CauseOf(ErrKilled) must be Kill")
	}
	boom := errors.New("boom")
	e, ok := wye.CauseOf(boom).(wye.Error)
	if !ok || !errors.Is(e.Err, boom) {
		t.Fatalf("CauseOf(err) got %v", e)
	}
}
