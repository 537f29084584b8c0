package query

import "context"

// Iterator provides pull-based sequential access to a stream of values.
type Iterator[T any] interface {
	// Next returns the next value. Returns (zero, false, nil) when exhausted.
	Next(ctx context.Context) (T, bool, error)
	// Close releases any resources held by the iterator and stops pulling
	// from upstream stages.
	Close() error
}

// Sequence is a lazy, pull-based, restartable series of values.
// No work happens until values are pulled. Every enumeration calls the
// factory again, so each run recomputes its upstream stages from scratch.
type Sequence[T any] struct {
	create func(ctx context.Context) Iterator[T]
}

// Runnable is a fully-configured evaluation ready to execute.
type Runnable struct {
	run func(ctx context.Context) error
}

// Run drives the sequence until it is exhausted or the sink fails.
func (r *Runnable) Run(ctx context.Context) error {
	return r.run(ctx)
}

// --- Constructors ---

// From creates a sequence from an existing Iterator. The result can only be
// enumerated once; later enumerations see an exhausted iterator.
func From[T any](iter Iterator[T]) *Sequence[T] {
	return &Sequence[T]{
		create: func(_ context.Context) Iterator[T] {
			return iter
		},
	}
}

// FromSlice creates a restartable sequence over a slice of values.
func FromSlice[T any](items []T) *Sequence[T] {
	return &Sequence[T]{
		create: func(_ context.Context) Iterator[T] {
			return &sliceIter[T]{items: items}
		},
	}
}

// FromFunc creates a sequence from a factory that produces an Iterator per
// enumeration.
func FromFunc[T any](fn func(ctx context.Context) Iterator[T]) *Sequence[T] {
	return &Sequence[T]{create: fn}
}

// Empty returns a sequence with no elements.
func Empty[T any]() *Sequence[T] {
	return FromSlice[T](nil)
}

// Range returns the sequence start, start+1, ..., start+count-1.
func Range(start, count int) *Sequence[int] {
	return &Sequence[int]{
		create: func(_ context.Context) Iterator[int] {
			return &rangeIter{next: start, end: start + count}
		},
	}
}

// --- Terminals ---

// Drain creates a Runnable that pulls all values and sends each to sink.
func Drain[T any](p *Sequence[T], sink func(context.Context, T) error) *Runnable {
	return &Runnable{
		run: func(ctx context.Context) error {
			iter := p.create(ctx)
			defer iter.Close()
			for {
				val, ok, err := iter.Next(ctx)
				if err != nil {
					return err
				}
				if !ok {
					return nil
				}
				if err := sink(ctx, val); err != nil {
					return err
				}
			}
		},
	}
}

// Collect evaluates the sequence and returns all values as a slice. On error
// the values pulled before the failure are returned alongside it.
func Collect[T any](ctx context.Context, p *Sequence[T]) ([]T, error) {
	iter := p.create(ctx)
	defer iter.Close()
	var result []T
	for {
		val, ok, err := iter.Next(ctx)
		if err != nil {
			return result, err
		}
		if !ok {
			return result, nil
		}
		result = append(result, val)
	}
}

// ForEach pulls all values and calls fn for each. Convenience wrapper around Drain.
func ForEach[T any](ctx context.Context, p *Sequence[T], fn func(context.Context, T) error) error {
	return Drain(p, fn).Run(ctx)
}

// Iter returns the raw Iterator for one enumeration. The caller must Close() it.
func (p *Sequence[T]) Iter(ctx context.Context) Iterator[T] {
	return p.create(ctx)
}

// --- Internal iterators ---

type sliceIter[T any] struct {
	items []T
	index int
}

func (it *sliceIter[T]) Next(ctx context.Context) (T, bool, error) {
	var zero T
	if err := ctx.Err(); err != nil {
		return zero, false, err
	}
	if it.index >= len(it.items) {
		return zero, false, nil
	}
	val := it.items[it.index]
	it.index++
	return val, true, nil
}

func (it *sliceIter[T]) Close() error { return nil }

type rangeIter struct {
	next, end int
}

func (it *rangeIter) Next(ctx context.Context) (int, bool, error) {
	if err := ctx.Err(); err != nil {
		return 0, false, err
	}
	if it.next >= it.end {
		return 0, false, nil
	}
	val := it.next
	it.next++
	return val, true, nil
}

func (it *rangeIter) Close() error { return nil }

// drain pulls every remaining value from iter and closes it. Materializing
// operators use it to fill their owned buffers.
func drain[T any](ctx context.Context, iter Iterator[T]) ([]T, error) {
	defer iter.Close()
	var buf []T
	for {
		val, ok, err := iter.Next(ctx)
		if err != nil {
			return nil, err
		}
		if !ok {
			return buf, nil
		}
		buf = append(buf, val)
	}
}
