package game

import "time"

// Step is an asynchronous unit of work: it calls next once it has finished.
// Steps stand in for awaiting: they are chained instead of blocking the game loop.
type Step func(next func())

// Chain returns a Step running steps one after the other.
func Chain(steps ...Step) Step {
	return func(done func()) {
		var run func(i int)
		run = func(i int) {
			if i == len(steps) {
				if done != nil {
					done()
				}
				return
			}
			steps[i](func() { run(i + 1) })
		}
		run(0)
	}
}

// Run starts step with no continuation.
func (step Step) Run() {
	step(func() {})
}

// Delay returns a Step that waits d on the scheduler.
func Delay(sched Scheduler, d time.Duration) Step {
	return func(next func()) {
		sched.AfterFunc(d, next)
	}
}

// Join returns a function that calls done on its n-th invocation. Further invocations are
// ignored. With n <= 0 done is called immediately.
func Join(n int, done func()) func() {
	if n <= 0 {
		done()
		return func() {}
	}
	remaining := n
	return func() {
		if remaining <= 0 {
			return
		}
		remaining--
		if remaining == 0 {
			done()
		}
	}
}
