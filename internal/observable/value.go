// Package observable holds published state that readers can poll or follow.
package observable

import (
	"context"
	"sync"
)

// Value is a single published value with conflated change delivery: a slow
// subscriber only ever sees the latest value, never a backlog.
type Value[T any] struct {
	mu   sync.RWMutex
	v    T
	subs map[chan T]struct{}
}

func New[T any](initial T) *Value[T] {
	return &Value[T]{
		v:    initial,
		subs: make(map[chan T]struct{}),
	}
}

func (o *Value[T]) Get() T {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.v
}

func (o *Value[T]) Set(v T) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.v = v
	o.notify()
}

// Update applies fn to the current value under the write lock.
func (o *Value[T]) Update(fn func(T) T) T {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.v = fn(o.v)
	o.notify()
	return o.v
}

// Subscribe delivers the current value and then every later one until ctx
// is done, at which point the channel is closed.
func (o *Value[T]) Subscribe(ctx context.Context) <-chan T {
	ch := make(chan T, 1)

	o.mu.Lock()
	ch <- o.v
	o.subs[ch] = struct{}{}
	o.mu.Unlock()

	go func() {
		<-ctx.Done()
		o.mu.Lock()
		delete(o.subs, ch)
		close(ch)
		o.mu.Unlock()
	}()
	return ch
}

// notify must run with o.mu held for writing.
func (o *Value[T]) notify() {
	for ch := range o.subs {
		select {
		case <-ch:
		default:
		}
		ch <- o.v
	}
}

// Readable is the consumer side of a Value.
type Readable[T any] interface {
	Get() T
	Subscribe(ctx context.Context) <-chan T
}

var _ Readable[int] = (*Value[int])(nil)
