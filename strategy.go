// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package wye

// Strategy executes driver tasks. It must be stack-safe: the driver
// always re-enters through the strategy instead of recursing, so any
// strategy that eventually runs the task terminates.
type Strategy func(task func())

// GoStrategy runs each task on its own goroutine.
func GoStrategy() Strategy {
	return func(task func()) { go task() }
}

// CallerStrategy runs tasks synchronously on the posting goroutine.
// The driver's drain loop is iterative, so this is stack-safe; with
// synchronous producers it keeps every wye transition on the calling
// goroutine, without spawning goroutines or creating channels.
func CallerStrategy() Strategy {
	return func(task func()) { task() }
}
