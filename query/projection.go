package query

import "context"

// Map transforms each value using fn, one output per input, preserving
// order. Streaming.
//
// Mapping to a *Sequence keeps the nesting: Map(courses, tagsOf) yields a
// sequence of tag sequences, where FlatMap(courses, tagsOf) yields tags.
func Map[I, O any](p *Sequence[I], fn func(I) O) *Sequence[O] {
	return &Sequence[O]{
		create: func(ctx context.Context) Iterator[O] {
			return &mapIter[I, O]{source: p.create(ctx), fn: fn}
		},
	}
}

// FlatMap transforms each value into a sequence and concatenates the results
// in order. A nil sub-sequence counts as empty. Streaming.
func FlatMap[I, O any](p *Sequence[I], fn func(I) *Sequence[O]) *Sequence[O] {
	return &Sequence[O]{
		create: func(ctx context.Context) Iterator[O] {
			return &flatMapIter[I, O]{source: p.create(ctx), fn: fn}
		},
	}
}

// FlatMapWith is FlatMap with a result selector that sees both the outer
// value and each inner value. Streaming over the outer sequence; the inner
// sequence is enumerated once per outer value.
func FlatMapWith[I, M, O any](p *Sequence[I], fn func(I) *Sequence[M], combine func(I, M) O) *Sequence[O] {
	return FlatMap(p, func(outer I) *Sequence[O] {
		inner := fn(outer)
		if inner == nil {
			return nil
		}
		return Map(inner, func(m M) O { return combine(outer, m) })
	})
}

// Tap calls fn as a side-effect for each value, then passes the value through unchanged.
// Use for logging or tracing between stages.
func Tap[T any](p *Sequence[T], fn func(context.Context, T) error) *Sequence[T] {
	return &Sequence[T]{
		create: func(ctx context.Context) Iterator[T] {
			return &tapIter[T]{source: p.create(ctx), fn: fn}
		},
	}
}

type mapIter[I, O any] struct {
	source Iterator[I]
	fn     func(I) O
}

func (it *mapIter[I, O]) Next(ctx context.Context) (result O, ok bool, err error) {
	val, ok, err := it.source.Next(ctx)
	if err != nil || !ok {
		var zero O
		return zero, false, err
	}
	return it.fn(val), true, nil
}

func (it *mapIter[I, O]) Close() error { return it.source.Close() }

type flatMapIter[I, O any] struct {
	source  Iterator[I]
	fn      func(I) *Sequence[O]
	current Iterator[O]
}

func (it *flatMapIter[I, O]) Next(ctx context.Context) (result O, ok bool, err error) {
	for {
		if it.current != nil {
			val, ok, err := it.current.Next(ctx)
			if err != nil {
				var zero O
				return zero, false, err
			}
			if ok {
				return val, true, nil
			}
			_ = it.current.Close()
			it.current = nil
		}
		in, ok, err := it.source.Next(ctx)
		if err != nil || !ok {
			var zero O
			return zero, false, err
		}
		if inner := it.fn(in); inner != nil {
			it.current = inner.create(ctx)
		}
	}
}

func (it *flatMapIter[I, O]) Close() error {
	if it.current != nil {
		_ = it.current.Close()
		it.current = nil
	}
	return it.source.Close()
}

type tapIter[T any] struct {
	source Iterator[T]
	fn     func(context.Context, T) error
}

func (it *tapIter[T]) Next(ctx context.Context) (result T, ok bool, err error) {
	val, ok, err := it.source.Next(ctx)
	if err != nil || !ok {
		return val, ok, err
	}
	if err := it.fn(ctx, val); err != nil {
		var zero T
		return zero, false, err
	}
	return val, true, nil
}

func (it *tapIter[T]) Close() error { return it.source.Close() }
