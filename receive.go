// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package wye

// Side tags one of the two inputs of a wye, or both at once.
type Side uint8

const (
	// SideL is the left input.
	SideL Side = iota
	// SideR is the right input.
	SideR
	// SideBoth requests whichever input arrives first.
	SideBoth
)

func (s Side) String() string {
	switch s {
	case SideL:
		return "L"
	case SideR:
		return "R"
	default:
		return "Both"
	}
}

// Request is the next-side selector used by Dynamic wyes.
type Request uint8

const (
	// RequestL asks for the next value from the left.
	RequestL Request = iota
	// RequestR asks for the next value from the right.
	RequestR
	// RequestBoth asks for whichever side produces first.
	RequestBoth
)

type receiveTag uint8

const (
	receiveTagL receiveTag = iota
	receiveTagR
	receiveTagHaltL
	receiveTagHaltR
)

// ReceiveY is the input delivered to an AwaitBoth receiver: a value
// from either side, or a halt notification for either side.
type ReceiveY[L, R any] struct {
	tag   receiveTag
	l     L
	r     R
	cause Cause
}

// ReceiveL wraps a left-side value.
func ReceiveL[L, R any](l L) ReceiveY[L, R] {
	return ReceiveY[L, R]{tag: receiveTagL, l: l}
}

// ReceiveR wraps a right-side value.
func ReceiveR[L, R any](r R) ReceiveY[L, R] {
	return ReceiveY[L, R]{tag: receiveTagR, r: r}
}

// HaltL signals that the left side terminated with the given cause.
func HaltL[L, R any](c Cause) ReceiveY[L, R] {
	return ReceiveY[L, R]{tag: receiveTagHaltL, cause: c}
}

// HaltR signals that the right side terminated with the given cause.
func HaltR[L, R any](c Cause) ReceiveY[L, R] {
	return ReceiveY[L, R]{tag: receiveTagHaltR, cause: c}
}

// GetL returns the left value, if any.
func (y ReceiveY[L, R]) GetL() (L, bool) {
	if y.tag == receiveTagL {
		return y.l, true
	}
	var zero L
	return zero, false
}

// GetR returns the right value, if any.
func (y ReceiveY[L, R]) GetR() (R, bool) {
	if y.tag == receiveTagR {
		return y.r, true
	}
	var zero R
	return zero, false
}

// HaltedL returns the left halt cause, if any.
func (y ReceiveY[L, R]) HaltedL() (Cause, bool) {
	if y.tag == receiveTagHaltL {
		return y.cause, true
	}
	return nil, false
}

// HaltedR returns the right halt cause, if any.
func (y ReceiveY[L, R]) HaltedR() (Cause, bool) {
	if y.tag == receiveTagHaltR {
		return y.cause, true
	}
	return nil, false
}

// Halted returns the halt cause of whichever side terminated.
// This is the coarse HaltOne view: callers that do not care which side
// ended match on this alone.
func (y ReceiveY[L, R]) Halted() (Cause, bool) {
	if y.tag == receiveTagHaltL || y.tag == receiveTagHaltR {
		return y.cause, true
	}
	return nil, false
}

// Flip swaps the side tags: left values and halts become right ones
// and vice versa.
func (y ReceiveY[L, R]) Flip() ReceiveY[R, L] {
	switch y.tag {
	case receiveTagL:
		return ReceiveY[R, L]{tag: receiveTagR, r: y.l}
	case receiveTagR:
		return ReceiveY[R, L]{tag: receiveTagL, l: y.r}
	case receiveTagHaltL:
		return ReceiveY[R, L]{tag: receiveTagHaltR, cause: y.cause}
	default:
		return ReceiveY[R, L]{tag: receiveTagHaltL, cause: y.cause}
	}
}
