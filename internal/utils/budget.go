package utils

import (
	"context"
	"sync"
	"time"
)

// Budget keeps track of the time that passes between `Budget.Resume()` and
// `Budget.Pause()` calls.
//
// Once the summary running time reaches the limit, the provided callback is
// called exactly once. Time spent paused is not counted.
//
// `Budget.Close()` should be called when the budget is no longer needed.
type Budget struct {
	mu          sync.Mutex
	limit       time.Duration
	spent       time.Duration
	lastResume  time.Time
	timer       *time.Timer
	running     bool
	exhausted   bool
	closed      bool
	onExhausted func()
}

// Creates Budget with given limit and callback.
//
// Created Budget is in PAUSED state.
func NewBudget(limit time.Duration, onExhausted func()) *Budget {
	return &Budget{
		limit:       limit,
		onExhausted: onExhausted,
	}
}

func (b *Budget) Resume() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.running || b.closed || b.exhausted {
		return
	}

	b.running = true
	b.lastResume = time.Now()
	b.timer = time.AfterFunc(b.limit-b.spent, b.exhaust)
}

func (b *Budget) Pause() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.running {
		return
	}

	b.running = false
	b.timer.Stop()
	b.spent += time.Since(b.lastResume)
}

func (b *Budget) exhaust() {
	b.mu.Lock()
	if b.exhausted || b.closed {
		b.mu.Unlock()
		return
	}
	b.exhausted = true
	b.mu.Unlock()

	b.onExhausted()
}

// Spent returns the time counted so far, including the current running
// interval.
func (b *Budget) Spent() time.Duration {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.running {
		return b.spent + time.Since(b.lastResume)
	}
	return b.spent
}

func (b *Budget) Exhausted() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.exhausted
}

func (b *Budget) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.closed = true
	if b.timer != nil {
		b.timer.Stop()
	}
}

// Creates context and budget bound together.
//
// When the budget runs out, the context is cancelled with `cause`. Closing
// the budget releases the context.
func NewBudgetContext(parent context.Context, limit time.Duration, cause error) (context.Context, *ContextBudget) {
	ctx, cancel := context.WithCancelCause(parent)

	b := &ContextBudget{
		Budget: NewBudget(limit, func() {
			cancel(cause)
		}),
		cancel: cancel,
	}

	return ctx, b
}

// ContextBudget is a Budget that owns the context it cancels.
type ContextBudget struct {
	*Budget
	cancel context.CancelCauseFunc
}

func (b *ContextBudget) Close() {
	b.Budget.Close()
	b.cancel(nil)
}
