// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package wye

import (
	"code.hybscloud.com/atomix"
)

// ProducerStep is the outcome of one producer pull: either a batch
// plus the producer for the following pull, or a terminal cause.
type ProducerStep[A any] struct {
	Batch []A
	Next  Producer[A]
	Cause Cause
}

// Interrupt cancels an in-flight producer read. The producer must
// still report a terminal outcome so the driver can finish cleanup.
type Interrupt func(Cause)

// Producer is one pull step of an effectful source. Invoking it starts
// a read; done must be called exactly once with the outcome, possibly
// synchronously, possibly from another goroutine. A non-nil kill
// requests the clean-shutdown path instead of a read: the producer
// releases its resources and reports a terminal step.
type Producer[A any] func(kill Cause, done func(ProducerStep[A])) Interrupt

func noInterrupt(Cause) {}

// ProduceEmpty is the producer that ends immediately.
func ProduceEmpty[A any]() Producer[A] {
	return func(kill Cause, done func(ProducerStep[A])) Interrupt {
		if kill != nil {
			done(ProducerStep[A]{Cause: KillCause(kill)})
		} else {
			done(ProducerStep[A]{Cause: End{}})
		}
		return noInterrupt
	}
}

// ProduceErr is the producer that fails immediately with err.
func ProduceErr[A any](err error) Producer[A] {
	return func(kill Cause, done func(ProducerStep[A])) Interrupt {
		if kill != nil {
			done(ProducerStep[A]{Cause: KillCause(kill)})
		} else {
			done(ProducerStep[A]{Cause: Error{Err: err}})
		}
		return noInterrupt
	}
}

// ProduceSlice yields the values of vs in order, chunk values per
// pull. Pulls complete synchronously on the calling goroutine.
func ProduceSlice[A any](vs []A, chunk int) Producer[A] {
	if chunk <= 0 {
		chunk = 1
	}
	return func(kill Cause, done func(ProducerStep[A])) Interrupt {
		if kill != nil {
			done(ProducerStep[A]{Cause: KillCause(kill)})
			return noInterrupt
		}
		if len(vs) == 0 {
			done(ProducerStep[A]{Cause: End{}})
			return noInterrupt
		}
		n := chunk
		if n > len(vs) {
			n = len(vs)
		}
		done(ProducerStep[A]{Batch: vs[:n], Next: ProduceSlice(vs[n:], chunk)})
		return noInterrupt
	}
}

// chanSource adapts a Go channel to the producer contract. Each pull
// blocks on the channel in its own goroutine, then opportunistically
// drains already-buffered values up to max per batch.
type chanSource[A any] struct {
	ch     <-chan A
	max    int
	stop   chan struct{}
	closed atomix.Uint32
}

// ProduceChan yields values received from ch, at most max per batch.
// The producer ends when ch is closed; interrupting it abandons the
// pending receive.
func ProduceChan[A any](ch <-chan A, max int) Producer[A] {
	if max <= 0 {
		max = 1
	}
	s := &chanSource[A]{ch: ch, max: max, stop: make(chan struct{})}
	return s.pull
}

func (s *chanSource[A]) cancel() {
	if s.closed.Add(1) == 1 {
		close(s.stop)
	}
}

func (s *chanSource[A]) pull(kill Cause, done func(ProducerStep[A])) Interrupt {
	if kill != nil {
		s.cancel()
		done(ProducerStep[A]{Cause: KillCause(kill)})
		return noInterrupt
	}
	go func() {
		select {
		case v, ok := <-s.ch:
			if !ok {
				done(ProducerStep[A]{Cause: End{}})
				return
			}
			batch := []A{v}
		drain:
			for len(batch) < s.max {
				select {
				case v2, ok2 := <-s.ch:
					if !ok2 {
						break drain
					}
					batch = append(batch, v2)
				default:
					break drain
				}
			}
			done(ProducerStep[A]{Batch: batch, Next: s.pull})
		case <-s.stop:
			done(ProducerStep[A]{Cause: Kill{Underlying: End{}}})
		}
	}()
	return func(Cause) { s.cancel() }
}
