// Package itemstore serializes access to each entity collection through one actor per type.
package itemstore

import (
	"context"
	"errors"
	"sync"
)

// ErrClosed is returned for operations submitted after Close.
var ErrClosed = errors.New("item store closed")

// actor runs submitted operations one at a time in submission order.
type actor struct {
	name    string
	ops     chan func()
	quit    chan struct{}
	stopped chan struct{}
	once    sync.Once
}

func newActor(name string) *actor {
	a := &actor{
		name:    name,
		ops:     make(chan func(), 64),
		quit:    make(chan struct{}),
		stopped: make(chan struct{}),
	}
	go a.loop()
	return a
}

func (a *actor) loop() {
	defer close(a.stopped)
	for {
		select {
		case op := <-a.ops:
			op()
		case <-a.quit:
			return
		}
	}
}

func (a *actor) close() {
	a.once.Do(func() {
		close(a.quit)
	})
	<-a.stopped
}

type result[T any] struct {
	val T
	err error
}

// call submits fn to the actor and waits for its result.
// An operation that was already queued keeps running if ctx is canceled.
func call[T any](ctx context.Context, a *actor, fn func(ctx context.Context) (T, error)) (T, error) {
	var zero T
	if err := ctx.Err(); err != nil {
		return zero, err
	}

	done := make(chan result[T], 1)
	op := func() {
		v, err := fn(context.WithoutCancel(ctx))
		done <- result[T]{val: v, err: err}
	}

	select {
	case a.ops <- op:
	case <-a.quit:
		return zero, ErrClosed
	case <-ctx.Done():
		return zero, ctx.Err()
	}

	select {
	case r := <-done:
		return r.val, r.err
	case <-a.stopped:
		// The loop may have run op just before stopping.
		select {
		case r := <-done:
			return r.val, r.err
		default:
			return zero, ErrClosed
		}
	case <-ctx.Done():
		return zero, ctx.Err()
	}
}

// exec is call for operations without a result value.
func exec(ctx context.Context, a *actor, fn func(ctx context.Context) error) error {
	_, err := call(ctx, a, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, fn(ctx)
	})
	return err
}
