package query

import "context"

// Filter keeps only values that satisfy the predicate, in their original
// order. Streaming.
func Filter[T any](p *Sequence[T], fn func(T) bool) *Sequence[T] {
	return &Sequence[T]{
		create: func(ctx context.Context) Iterator[T] {
			return &filterIter[T]{source: p.create(ctx), fn: fn}
		},
	}
}

// And combines predicates into their conjunction, evaluated left to right.
// With no predicates it matches everything.
func And[T any](preds ...func(T) bool) func(T) bool {
	switch len(preds) {
	case 0:
		return func(T) bool { return true }
	case 1:
		return preds[0]
	}
	return func(v T) bool {
		for _, pred := range preds {
			if !pred(v) {
				return false
			}
		}
		return true
	}
}

// Not negates a predicate.
func Not[T any](pred func(T) bool) func(T) bool {
	return func(v T) bool { return !pred(v) }
}

type filterIter[T any] struct {
	source Iterator[T]
	fn     func(T) bool
}

func (it *filterIter[T]) Next(ctx context.Context) (result T, ok bool, err error) {
	for {
		val, ok, err := it.source.Next(ctx)
		if err != nil || !ok {
			return val, false, err
		}
		if it.fn(val) {
			return val, true, nil
		}
	}
}

func (it *filterIter[T]) Close() error { return it.source.Close() }
