// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package wye

import (
	"errors"

	"code.hybscloud.com/atomix"
	"code.hybscloud.com/iox"
	"code.hybscloud.com/kont"
)

// ErrBusy reports a Get posted while another one was outstanding.
// Stream is single-consumer; Next must not be called concurrently.
var ErrBusy = errors.New("wye: concurrent next on stream")

// streamDriver is the driver surface a stream pulls from; it erases
// the driver's input types.
type streamDriver[O any] interface {
	postGet(out *outCallback[O])
	postTerminate(c Cause, out *outCallback[O])
	serialNo() Serial
}

// Stream is the merged output of a driven wye. It is a demand-driven
// pull surface: each Next posts one Get to the driver and blocks until
// a batch or the terminal cause arrives.
//
// A Stream is single-consumer: Next must not be called concurrently
// with itself. Terminate may be called from any goroutine.
type Stream[O any] struct {
	d     streamDriver[O]
	done  bool
	cause Cause
}

// Serial returns the serial number assigned to this driven wye.
func (s *Stream[O]) Serial() Serial {
	return s.d.serialNo()
}

// Next returns the next output batch. It blocks until the wye emits,
// using adaptive backoff. On termination it returns the terminal
// error: ErrEnd after a graceful end, ErrKilled after cancellation, or
// the error payload itself.
func (s *Stream[O]) Next() ([]O, error) {
	if s.done {
		return nil, s.cause.AsError()
	}
	var slot getSlot[O]
	s.d.postGet(slot.callback())
	slot.wait()
	if slot.cause != nil {
		s.done = true
		s.cause = slot.cause
		return nil, s.cause.AsError()
	}
	return slot.batch, nil
}

// Terminate cancels the stream with cause c (wrapped in Kill unless it
// already is one), shuts both sources down, and blocks until their
// cleanup completed. It returns the stream's terminal error.
func (s *Stream[O]) Terminate(c Cause) error {
	var slot getSlot[O]
	s.d.postTerminate(KillCause(c), slot.callback())
	slot.wait()
	if slot.cause == nil {
		slot.cause = Kill{Underlying: End{}}
	}
	// The stream's own done flag is left to Next: a Terminate racing a
	// blocked Next must not write fields the consumer goroutine owns.
	return slot.cause.AsError()
}

// Halt is Terminate with a plain kill.
func (s *Stream[O]) Halt() error {
	return s.Terminate(Kill{Underlying: End{}})
}

// Collect drains the stream to a slice. A graceful end returns a nil
// error; any other termination returns the output collected so far
// together with the terminal error.
func (s *Stream[O]) Collect() ([]O, error) {
	var all []O
	for {
		batch, err := s.Next()
		if err != nil {
			if errors.Is(err, ErrEnd) {
				return all, nil
			}
			return all, err
		}
		all = append(all, batch...)
	}
}

// getSlot is the one-shot landing place for a Get or Terminate
// answer. The driver resolves it through a kont.Affine callback, which
// enforces the at-most-once contract; ready flips only after the
// payload fields are written.
type getSlot[O any] struct {
	batch []O
	cause Cause
	ready atomix.Uint32
}

func (g *getSlot[O]) callback() *outCallback[O] {
	return kont.Once(func(e kont.Either[Cause, []O]) struct{} {
		if c, ok := e.GetLeft(); ok {
			g.cause = c
		} else {
			g.batch, _ = e.GetRight()
		}
		g.ready.Store(1)
		return struct{}{}
	})
}

func (g *getSlot[O]) wait() {
	var bo iox.Backoff
	for g.ready.Load() == 0 {
		bo.Wait()
	}
}
