package query

import (
	"cmp"
	"context"
	"slices"
)

// SortKey is one component of a composite ordering: a key extractor paired
// with a direction, expressed as a three-way comparison.
type SortKey[T any] struct {
	compare func(a, b T) int
}

// Asc orders by key ascending.
func Asc[T any, K cmp.Ordered](key func(T) K) SortKey[T] {
	return SortKey[T]{compare: func(a, b T) int {
		return cmp.Compare(key(a), key(b))
	}}
}

// Desc orders by key descending.
func Desc[T any, K cmp.Ordered](key func(T) K) SortKey[T] {
	return SortKey[T]{compare: func(a, b T) int {
		return cmp.Compare(key(b), key(a))
	}}
}

// By orders with a custom three-way comparison.
func By[T any](compare func(a, b T) int) SortKey[T] {
	return SortKey[T]{compare: compare}
}

// OrderBy sorts the sequence by the composite key, primary key first. Ties
// on one key fall through to the next; elements equal on every key keep
// their input order.
//
// Materializing: the whole input is buffered and sorted on the first pull.
func OrderBy[T any](p *Sequence[T], keys ...SortKey[T]) *Sequence[T] {
	compare := func(a, b T) int {
		for _, k := range keys {
			if c := k.compare(a, b); c != 0 {
				return c
			}
		}
		return 0
	}
	return &Sequence[T]{
		create: func(ctx context.Context) Iterator[T] {
			return &orderIter[T]{source: p.create(ctx), compare: compare}
		},
	}
}

type orderIter[T any] struct {
	source  Iterator[T]
	compare func(a, b T) int
	buf     []T
	pos     int
	loaded  bool
}

func (it *orderIter[T]) Next(ctx context.Context) (result T, ok bool, err error) {
	if !it.loaded {
		buf, err := drain(ctx, it.source)
		it.loaded = true
		if err != nil {
			var zero T
			return zero, false, err
		}
		slices.SortStableFunc(buf, it.compare)
		it.buf = buf
	}
	if it.pos >= len(it.buf) {
		var zero T
		return zero, false, nil
	}
	val := it.buf[it.pos]
	it.pos++
	return val, true, nil
}

func (it *orderIter[T]) Close() error {
	if it.loaded {
		return nil
	}
	return it.source.Close()
}
