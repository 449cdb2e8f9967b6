// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package wye

import (
	"code.hybscloud.com/kont"
)

// Process1 is a single-input stream transformer with the same step
// shape as a wye: Emit, Await (on its only input) or a terminal cause.
// It is the unit pre-composed onto a wye side by AttachL and AttachR.
type Process1[I, O any] struct {
	tag    nodeTag
	batch  []O
	next   *Process1[I, O]
	recv   func(kont.Either[Cause, I]) *Process1[I, O]
	cause  Cause
	inner  *Process1[I, O]
	handle func(Cause) *Process1[I, O]
}

// P1Emit produces batch downstream and continues with next.
func P1Emit[I, O any](batch []O, next *Process1[I, O]) *Process1[I, O] {
	return &Process1[I, O]{tag: tagEmit, batch: batch, next: next}
}

// P1Halt is the terminal transformer carrying the given cause.
func P1Halt[I, O any](c Cause) *Process1[I, O] {
	if c == nil {
		c = End{}
	}
	return &Process1[I, O]{tag: tagHalt, cause: c}
}

// P1Await requests one input value. The receiver is called with
// Right(value), or Left(cause) when the input has terminated.
func P1Await[I, O any](recv func(kont.Either[Cause, I]) *Process1[I, O]) *Process1[I, O] {
	return &Process1[I, O]{tag: tagAwait, recv: recv}
}

// P1OnHalt attaches a halt handler to p; see OnHalt.
func P1OnHalt[I, O any](p *Process1[I, O], handler func(Cause) *Process1[I, O]) *Process1[I, O] {
	return &Process1[I, O]{tag: tagOnHalt, inner: p, handle: handler}
}

// Step1 is the step form of a Process1; see StepResult.
type Step1[I, O any] struct {
	node  *Process1[I, O]
	hs    []func(Cause) *Process1[I, O]
	cause Cause
}

// Step evaluates p to its step form.
func (p *Process1[I, O]) Step() Step1[I, O] {
	var hs []func(Cause) *Process1[I, O]
	cur := p
	for {
		if cur == nil {
			cur = P1Halt[I, O](End{})
		}
		switch cur.tag {
		case tagEmit:
			if len(cur.batch) == 0 {
				cur = cur.next
				continue
			}
			return Step1[I, O]{node: cur, hs: hs}
		case tagAwait:
			return Step1[I, O]{node: cur, hs: hs}
		case tagHalt:
			if len(hs) == 0 {
				return Step1[I, O]{cause: cur.cause}
			}
			h := hs[len(hs)-1]
			hs = hs[:len(hs)-1]
			cur = p1SafeHandle(h, cur.cause)
		case tagOnHalt:
			hs = append(hs, cur.handle)
			cur = cur.inner
		}
	}
}

// Halted returns the terminal cause when the transformer is done.
func (s Step1[I, O]) Halted() (Cause, bool) {
	if s.cause != nil {
		return s.cause, true
	}
	return nil, false
}

// AsEmit returns the pending batch and the continuation.
func (s Step1[I, O]) AsEmit() ([]O, *Process1[I, O], bool) {
	if s.cause != nil || s.node.tag != tagEmit {
		return nil, nil, false
	}
	return s.node.batch, p1Wrap(s.node.next, s.hs), true
}

// AsAwait projects a pending await into its receiver, with the
// panic-recovery policy and halt context attached.
func (s Step1[I, O]) AsAwait() (func(kont.Either[Cause, I]) *Process1[I, O], bool) {
	if s.cause != nil || s.node.tag != tagAwait {
		return nil, false
	}
	recv, hs := s.node.recv, s.hs
	return func(e kont.Either[Cause, I]) *Process1[I, O] {
		return p1Wrap(p1SafeRecv(recv, e), hs)
	}, true
}

// Self reconstructs the transformer at this step.
func (s Step1[I, O]) Self() *Process1[I, O] {
	if s.cause != nil {
		return P1Halt[I, O](s.cause)
	}
	return p1Wrap(s.node, s.hs)
}

// Feed delivers a batch of input values, collecting output emitted
// along the way; the remainder is dropped once the transformer halts.
func (p *Process1[I, O]) Feed(batch []I) *Process1[I, O] {
	var out []O
	in := batch
	cur := p
	for {
		st := cur.Step()
		if _, ok := st.Halted(); ok {
			return p1EmitAll(out, st.Self())
		}
		if b, next, ok := st.AsEmit(); ok {
			out = append(out, b...)
			cur = next
			continue
		}
		if len(in) == 0 {
			return p1EmitAll(out, st.Self())
		}
		recv, _ := st.AsAwait()
		cur = recv(kont.Right[Cause](in[0]))
		in = in[1:]
	}
}

// Kill terminates the transformer with cause c: pending awaits resolve
// through their fallback, halt handlers run, output is preserved.
func (p *Process1[I, O]) Kill(c Cause) *Process1[I, O] {
	k := KillCause(c)
	var out []O
	cur := p
	for {
		st := cur.Step()
		if _, ok := st.Halted(); ok {
			return p1EmitAll(out, st.Self())
		}
		if b, next, ok := st.AsEmit(); ok {
			out = append(out, b...)
			cur = next
			continue
		}
		recv, _ := st.AsAwait()
		cur = recv(kont.Left[Cause, I](k))
	}
}

// P1Identity echoes every input value until the input ends.
func P1Identity[I any]() *Process1[I, I] {
	return P1Await(func(e kont.Either[Cause, I]) *Process1[I, I] {
		if c, ok := e.GetLeft(); ok {
			return P1Halt[I, I](orEnd(c))
		}
		i, _ := e.GetRight()
		return P1Emit([]I{i}, P1Identity[I]())
	})
}

// P1Lift maps every input value through f.
func P1Lift[I, O any](f func(I) O) *Process1[I, O] {
	return P1Await(func(e kont.Either[Cause, I]) *Process1[I, O] {
		if c, ok := e.GetLeft(); ok {
			return P1Halt[I, O](orEnd(c))
		}
		i, _ := e.GetRight()
		return P1Emit([]O{f(i)}, P1Lift(f))
	})
}

// P1Take echoes the first n input values, then ends.
func P1Take[I any](n int) *Process1[I, I] {
	if n <= 0 {
		return P1Halt[I, I](End{})
	}
	return P1Await(func(e kont.Either[Cause, I]) *Process1[I, I] {
		if c, ok := e.GetLeft(); ok {
			return P1Halt[I, I](orEnd(c))
		}
		i, _ := e.GetRight()
		return P1Emit([]I{i}, P1Take[I](n-1))
	})
}

func p1EmitAll[I, O any](batch []O, p *Process1[I, O]) *Process1[I, O] {
	if len(batch) == 0 {
		return p
	}
	return P1Emit(batch, p)
}

func p1Wrap[I, O any](p *Process1[I, O], hs []func(Cause) *Process1[I, O]) *Process1[I, O] {
	for i := len(hs) - 1; i >= 0; i-- {
		p = P1OnHalt(p, hs[i])
	}
	return p
}

func p1SafeHandle[I, O any](h func(Cause) *Process1[I, O], c Cause) (p *Process1[I, O]) {
	if h == nil {
		return P1Halt[I, O](c)
	}
	defer func() {
		if r := recover(); r != nil {
			p = P1Halt[I, O](recoveredCause(r))
		}
	}()
	return h(c)
}

func p1SafeRecv[I, O any](recv func(kont.Either[Cause, I]) *Process1[I, O], e kont.Either[Cause, I]) *Process1[I, O] {
	p, pc := p1TryRecv(recv, e)
	if pc == nil {
		return p
	}
	if e.IsRight() {
		p, pc2 := p1TryRecv(recv, kont.Left[Cause, I](pc))
		if pc2 == nil {
			return p
		}
		return P1Halt[I, O](pc2)
	}
	return P1Halt[I, O](pc)
}

func p1TryRecv[I, O any](recv func(kont.Either[Cause, I]) *Process1[I, O], e kont.Either[Cause, I]) (p *Process1[I, O], pc Cause) {
	defer func() {
		if r := recover(); r != nil {
			p, pc = nil, recoveredCause(r)
		}
	}()
	if recv == nil {
		return P1Halt[I, O](End{}), nil
	}
	return recv(e), nil
}
