// Package hooks provides typed extension points.
//
// A hook point holds an ordered chain of interceptors. Filter folds a value
// through every interceptor; Bypass lets the first interceptor that supplies
// a value replace the whole downstream computation. Both run synchronously
// in registration order and recover interceptor panics, keeping the running
// value.
package hooks

import (
	"sync"

	"github.com/rs/zerolog"
)

// FilterFunc receives the running value and a read-only context and returns
// the replacement value.
type FilterFunc[T, C any] func(value T, ctx C) T

// BypassFunc returns a replacement value and true to short-circuit, or false
// to defer to the next interceptor.
type BypassFunc[T, C any] func(ctx C) (T, bool)

// Filter is a hook point whose interceptors all run and fold the value.
type Filter[T, C any] struct {
	name  string
	log   zerolog.Logger
	mu    sync.RWMutex
	chain []FilterFunc[T, C]
}

// NewFilter creates an empty filter chain.
func NewFilter[T, C any](name string, log zerolog.Logger) *Filter[T, C] {
	return &Filter[T, C]{
		name: name,
		log:  log.With().Str("hook", name).Logger(),
	}
}

// Name returns the hook point name.
func (f *Filter[T, C]) Name() string { return f.name }

// Register appends an interceptor. Nil interceptors are ignored.
func (f *Filter[T, C]) Register(fn FilterFunc[T, C]) {
	if fn == nil {
		return
	}
	f.mu.Lock()
	f.chain = append(f.chain, fn)
	f.mu.Unlock()
}

// Len returns the number of registered interceptors.
func (f *Filter[T, C]) Len() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return len(f.chain)
}

// Apply runs every interceptor in order and returns the folded value.
func (f *Filter[T, C]) Apply(value T, ctx C) T {
	return f.ApplyUntil(value, ctx, nil)
}

// ApplyUntil runs interceptors in order, stopping early once stop reports
// true for the running value. A nil stop runs the whole chain.
func (f *Filter[T, C]) ApplyUntil(value T, ctx C, stop func(T) bool) T {
	for _, fn := range f.snapshot() {
		value = f.call(fn, value, ctx)
		if stop != nil && stop(value) {
			break
		}
	}
	return value
}

func (f *Filter[T, C]) snapshot() []FilterFunc[T, C] {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.chain
}

func (f *Filter[T, C]) call(fn FilterFunc[T, C], value T, ctx C) (out T) {
	out = value
	defer func() {
		if r := recover(); r != nil {
			f.log.Error().Interface("panic", r).Msg("Hook interceptor panicked")
			out = value
		}
	}()
	return fn(value, ctx)
}

// Bypass is a hook point where the first interceptor to supply a value wins.
type Bypass[T, C any] struct {
	name  string
	log   zerolog.Logger
	mu    sync.RWMutex
	chain []BypassFunc[T, C]
}

// NewBypass creates an empty bypass chain.
func NewBypass[T, C any](name string, log zerolog.Logger) *Bypass[T, C] {
	return &Bypass[T, C]{
		name: name,
		log:  log.With().Str("hook", name).Logger(),
	}
}

// Name returns the hook point name.
func (b *Bypass[T, C]) Name() string { return b.name }

// Register appends an interceptor. Nil interceptors are ignored.
func (b *Bypass[T, C]) Register(fn BypassFunc[T, C]) {
	if fn == nil {
		return
	}
	b.mu.Lock()
	b.chain = append(b.chain, fn)
	b.mu.Unlock()
}

// Len returns the number of registered interceptors.
func (b *Bypass[T, C]) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.chain)
}

// Invoke returns the first supplied value, or the zero value and false when
// no interceptor supplies one.
func (b *Bypass[T, C]) Invoke(ctx C) (T, bool) {
	b.mu.RLock()
	chain := b.chain
	b.mu.RUnlock()

	for _, fn := range chain {
		if v, ok := b.call(fn, ctx); ok {
			return v, true
		}
	}
	var zero T
	return zero, false
}

func (b *Bypass[T, C]) call(fn BypassFunc[T, C], ctx C) (v T, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			b.log.Error().Interface("panic", r).Msg("Hook interceptor panicked")
			var zero T
			v, ok = zero, false
		}
	}()
	return fn(ctx)
}
