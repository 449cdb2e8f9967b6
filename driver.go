// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package wye

import (
	"code.hybscloud.com/atomix"
	"code.hybscloud.com/iox"
	"code.hybscloud.com/kont"
	"code.hybscloud.com/lfq"
)

// mailboxCapacity bounds each driver mailbox lane. Every lane has a
// single producer with at most one completion in flight, so a small
// ring keeps buffers within a cache line; enqueue retries on the rare
// overlap between a late completion and its replacement.
const mailboxCapacity = 4

type sideTag uint8

const (
	sideReady sideTag = iota
	sideRunning
	sideDone
)

// sideState tracks one input source: Ready holds the producer for the
// next pull, Running holds the interrupt handle of the pull in flight,
// Done holds the terminal cause.
type sideState[A any] struct {
	tag         sideTag
	producer    Producer[A]
	interrupt   Interrupt
	cause       Cause
	terminating bool
}

// Mailbox messages. Each lane is posted by exactly one producer: source
// completions (msgReady or msgDone) on the side lanes, downstream
// demand (msgGet) and cancellation (msgTerminate) on the control lanes.
type msgReady[A any] struct {
	batch []A
	next  Producer[A]
}

type msgDone struct {
	cause Cause
}

type outCallback[O any] = kont.Affine[struct{}, kont.Either[Cause, []O]]

type msgGet[O any] struct {
	out *outCallback[O]
}

type msgTerminate[O any] struct {
	cause Cause
	out   *outCallback[O]
}

// driver binds two producers and a wye to an output stream. It is a
// single-actor design: all state below the mailbox lanes is owned by
// whichever goroutine currently holds the wake flag; producers and the
// downstream caller only post messages.
type driver[L, R, O any] struct {
	strategy Strategy
	serial   Serial

	leftQ  lfq.SPSC[any] // left source completions
	rightQ lfq.SPSC[any] // right source completions
	getQ   lfq.SPSC[any] // downstream demand
	haltQ  lfq.SPSC[any] // downstream cancellation

	wake atomix.Uint32

	// Actor-owned state: touched only inside drain.
	yy       *Wye[L, R, O]
	out      *outCallback[O]
	left     sideState[L]
	right    sideState[R]
	leftBias bool
	halting  Cause // terminal cause once the wye halted or Terminate arrived
	haltOut  *outCallback[O]
	closed   bool // terminal cause delivered, both sides done
}

// Run binds the left and right producers to the wye y and returns the
// merged output stream. Producers are pulled only on downstream
// demand; they run concurrently with each other and with the actor.
func Run[L, R, O any](left Producer[L], right Producer[R], y *Wye[L, R, O], strategy Strategy) *Stream[O] {
	if strategy == nil {
		strategy = GoStrategy()
	}
	d := &driver[L, R, O]{
		strategy: strategy,
		serial:   nextSerial(),
		yy:       y,
		left:     sideState[L]{tag: sideReady, producer: left},
		right:    sideState[R]{tag: sideReady, producer: right},
		leftBias: true,
	}
	d.leftQ.Init(mailboxCapacity)
	d.rightQ.Init(mailboxCapacity)
	d.getQ.Init(mailboxCapacity)
	d.haltQ.Init(mailboxCapacity)
	return &Stream[O]{d: d}
}

// post enqueues a message on a lane and wakes the actor. Retries with
// adaptive backoff when the bounded ring is momentarily full.
func (d *driver[L, R, O]) post(q *lfq.SPSC[any], m any) {
	var bo iox.Backoff
	for {
		if err := q.Enqueue(&m); err == nil {
			break
		}
		bo.Wait()
	}
	d.schedule()
}

// schedule hands the drain loop to the strategy unless an actor turn
// is already running; the running turn observes the bumped wake count
// and processes the new message before it exits.
func (d *driver[L, R, O]) schedule() {
	if d.wake.Add(1) == 1 {
		d.strategy(d.drain)
	}
}

// drain is one actor turn: it processes every queued message and exits
// only when the wake count is unchanged, guaranteeing that no posted
// message is left behind without a scheduled turn.
func (d *driver[L, R, O]) drain() {
	for {
		pending := d.wake.Load()
		d.process()
		if d.wake.CompareAndSwap(pending, 0) {
			return
		}
	}
}

func (d *driver[L, R, O]) process() {
	for {
		m, err := d.leftQ.Dequeue()
		if err != nil {
			break
		}
		switch msg := m.(type) {
		case *msgReady[L]:
			d.onReadyL(msg)
		case *msgDone:
			d.onDoneL(msg)
		}
	}
	for {
		m, err := d.rightQ.Dequeue()
		if err != nil {
			break
		}
		switch msg := m.(type) {
		case *msgReady[R]:
			d.onReadyR(msg)
		case *msgDone:
			d.onDoneR(msg)
		}
	}
	for {
		m, err := d.getQ.Dequeue()
		if err != nil {
			break
		}
		d.onGet(m.(*msgGet[O]))
	}
	for {
		m, err := d.haltQ.Dequeue()
		if err != nil {
			break
		}
		d.onTerminate(m.(*msgTerminate[O]))
	}
	d.tryComplete()
}

func (d *driver[L, R, O]) onReadyL(m *msgReady[L]) {
	d.left = sideState[L]{tag: sideReady, producer: m.next}
	d.leftBias = false
	if d.halting != nil {
		d.terminateL(d.halting)
		return
	}
	d.yy = d.yy.FeedL(m.batch)
}

func (d *driver[L, R, O]) onReadyR(m *msgReady[R]) {
	d.right = sideState[R]{tag: sideReady, producer: m.next}
	d.leftBias = true
	if d.halting != nil {
		d.terminateR(d.halting)
		return
	}
	d.yy = d.yy.FeedR(m.batch)
}

func (d *driver[L, R, O]) onDoneL(m *msgDone) {
	d.left = sideState[L]{tag: sideDone, cause: m.cause}
	d.leftBias = false
	if d.halting == nil {
		d.yy = d.yy.KillL(m.cause)
	}
}

func (d *driver[L, R, O]) onDoneR(m *msgDone) {
	d.right = sideState[R]{tag: sideDone, cause: m.cause}
	d.leftBias = true
	if d.halting == nil {
		d.yy = d.yy.KillR(m.cause)
	}
}

func (d *driver[L, R, O]) onGet(m *msgGet[O]) {
	if d.closed {
		m.out.TryResume(kont.Left[Cause, []O](d.halting))
		return
	}
	if d.out != nil {
		// At most one outstanding Get; a second one is a caller bug.
		m.out.TryResume(kont.Left[Cause, []O](Error{Err: ErrBusy}))
		return
	}
	d.out = m.out
}

func (d *driver[L, R, O]) onTerminate(m *msgTerminate[O]) {
	if d.closed {
		m.out.TryResume(kont.Left[Cause, []O](d.halting))
		return
	}
	if d.halting != nil {
		// Already terminating: the first cause wins, answer when done.
		if d.haltOut == nil {
			d.haltOut = m.out
		} else {
			m.out.TryResume(kont.Left[Cause, []O](d.halting))
		}
		return
	}
	d.halting = m.cause
	d.haltOut = m.out
	d.yy = d.yy.Kill(m.cause)
}

// tryComplete advances the wye as far as current demand and side
// states allow: flush emits into the pending Get, launch the sides the
// wye awaits, settle termination.
func (d *driver[L, R, O]) tryComplete() {
	if d.closed {
		return
	}
	for {
		st := d.yy.Step()
		if c, ok := st.Halted(); ok {
			d.onWyeHalt(c)
			return
		}
		if batch, next, ok := st.AsEmit(); ok {
			if d.halting != nil {
				// Terminating: cleanup output is not delivered; the
				// pending Get is answered with the terminal cause.
				d.yy = next
				continue
			}
			if d.out == nil {
				d.yy = st.Self()
				return
			}
			d.out.TryResume(kont.Right[Cause, []O](batch))
			d.out = nil
			d.yy = next
			return
		}
		side, _ := st.AwaitSide()
		switch side {
		case SideL:
			if d.left.tag == sideDone {
				recv, _ := st.AsAwaitL()
				d.yy = recv(kont.Left[Cause, L](KillCause(d.left.cause)))
				continue
			}
			if d.left.tag == sideReady && d.out != nil {
				d.runL()
			}
		case SideR:
			if d.right.tag == sideDone {
				recv, _ := st.AsAwaitR()
				d.yy = recv(kont.Left[Cause, R](KillCause(d.right.cause)))
				continue
			}
			if d.right.tag == sideReady && d.out != nil {
				d.runR()
			}
		default: // SideBoth
			if d.left.tag == sideDone && d.right.tag == sideDone {
				d.yy = st.Self().Kill(d.left.cause)
				continue
			}
			if d.out != nil {
				if d.leftBias {
					d.runL()
					d.runR()
				} else {
					d.runR()
					d.runL()
				}
			}
		}
		d.yy = st.Self()
		return
	}
}

// onWyeHalt settles termination: both sides are told to shut down, and
// once both have reported done the terminal cause is delivered to the
// pending Get and Terminate callbacks.
func (d *driver[L, R, O]) onWyeHalt(c Cause) {
	d.yy = Halt[L, R, O](c)
	if d.halting == nil {
		d.halting = c
	}
	d.terminateL(d.halting)
	d.terminateR(d.halting)
	if d.left.tag == sideDone && d.right.tag == sideDone {
		d.closed = true
		if d.out != nil {
			d.out.TryResume(kont.Left[Cause, []O](d.halting))
			d.out = nil
		}
		if d.haltOut != nil {
			d.haltOut.TryResume(kont.Left[Cause, []O](d.halting))
			d.haltOut = nil
		}
	}
}

// runL launches a pull on the left source: Ready(producer) becomes
// Running(interrupt), and the completion posts back to the mailbox.
func (d *driver[L, R, O]) runL() {
	if d.left.tag != sideReady {
		return
	}
	p := d.left.producer
	d.left = sideState[L]{tag: sideRunning, interrupt: noInterrupt}
	h := p(nil, func(step ProducerStep[L]) {
		if step.Cause != nil {
			d.post(&d.leftQ, &msgDone{cause: step.Cause})
			return
		}
		d.post(&d.leftQ, &msgReady[L]{batch: step.Batch, next: step.Next})
	})
	if d.left.tag == sideRunning {
		d.left.interrupt = h
	}
}

func (d *driver[L, R, O]) runR() {
	if d.right.tag != sideReady {
		return
	}
	p := d.right.producer
	d.right = sideState[R]{tag: sideRunning, interrupt: noInterrupt}
	h := p(nil, func(step ProducerStep[R]) {
		if step.Cause != nil {
			d.post(&d.rightQ, &msgDone{cause: step.Cause})
			return
		}
		d.post(&d.rightQ, &msgReady[R]{batch: step.Batch, next: step.Next})
	})
	if d.right.tag == sideRunning {
		d.right.interrupt = h
	}
}

// terminateL requests shutdown of the left source: an idle producer is
// run down its kill-path, an in-flight read is interrupted. Either way
// the source still reports its terminal Done message.
func (d *driver[L, R, O]) terminateL(c Cause) {
	switch d.left.tag {
	case sideDone:
		return
	case sideReady:
		p := d.left.producer
		d.left = sideState[L]{tag: sideRunning, interrupt: noInterrupt, terminating: true}
		p(KillCause(c), func(step ProducerStep[L]) {
			cause := step.Cause
			if cause == nil {
				cause = KillCause(c)
			}
			d.post(&d.leftQ, &msgDone{cause: cause})
		})
	case sideRunning:
		if d.left.terminating {
			return
		}
		d.left.terminating = true
		d.left.interrupt(KillCause(c))
	}
}

func (d *driver[L, R, O]) terminateR(c Cause) {
	switch d.right.tag {
	case sideDone:
		return
	case sideReady:
		p := d.right.producer
		d.right = sideState[R]{tag: sideRunning, interrupt: noInterrupt, terminating: true}
		p(KillCause(c), func(step ProducerStep[R]) {
			cause := step.Cause
			if cause == nil {
				cause = KillCause(c)
			}
			d.post(&d.rightQ, &msgDone{cause: cause})
		})
	case sideRunning:
		if d.right.terminating {
			return
		}
		d.right.terminating = true
		d.right.interrupt(KillCause(c))
	}
}

func (d *driver[L, R, O]) serialNo() Serial {
	return d.serial
}

func (d *driver[L, R, O]) postGet(out *outCallback[O]) {
	d.post(&d.getQ, &msgGet[O]{out: out})
}

func (d *driver[L, R, O]) postTerminate(c Cause, out *outCallback[O]) {
	d.post(&d.haltQ, &msgTerminate[O]{cause: c, out: out})
}
