package query

import "context"

// Distinct yields each distinct value once, in first-encountered order.
//
// Output is emitted as soon as a new value is seen; the membership index
// grows with the number of distinct values and is owned by the enumeration.
func Distinct[T comparable](p *Sequence[T]) *Sequence[T] {
	return DistinctBy(p, func(v T) T { return v })
}

// DistinctBy yields the first element for each distinct key, in
// first-encountered order. Use it for records that are not comparable or
// whose equality is key-based.
func DistinctBy[T any, K comparable](p *Sequence[T], key func(T) K) *Sequence[T] {
	return &Sequence[T]{
		create: func(ctx context.Context) Iterator[T] {
			return &distinctIter[T, K]{source: p.create(ctx), key: key, seen: make(map[K]struct{})}
		},
	}
}

// Concat joins multiple sequences sequentially.
// All values from the first sequence are yielded before the second, etc.
func Concat[T any](seqs ...*Sequence[T]) *Sequence[T] {
	return &Sequence[T]{
		create: func(ctx context.Context) Iterator[T] {
			iters := make([]Iterator[T], len(seqs))
			for i, p := range seqs {
				iters[i] = p.create(ctx)
			}
			return &concatIter[T]{iters: iters}
		},
	}
}

type distinctIter[T any, K comparable] struct {
	source Iterator[T]
	key    func(T) K
	seen   map[K]struct{}
}

func (it *distinctIter[T, K]) Next(ctx context.Context) (result T, ok bool, err error) {
	for {
		val, ok, err := it.source.Next(ctx)
		if err != nil || !ok {
			var zero T
			return zero, false, err
		}
		k := it.key(val)
		if _, dup := it.seen[k]; dup {
			continue
		}
		it.seen[k] = struct{}{}
		return val, true, nil
	}
}

func (it *distinctIter[T, K]) Close() error { return it.source.Close() }

type concatIter[T any] struct {
	iters []Iterator[T]
	index int
}

func (it *concatIter[T]) Next(ctx context.Context) (result T, ok bool, err error) {
	for it.index < len(it.iters) {
		val, ok, err := it.iters[it.index].Next(ctx)
		if err != nil {
			return val, false, err
		}
		if ok {
			return val, true, nil
		}
		it.index++
	}
	var zero T
	return zero, false, nil
}

func (it *concatIter[T]) Close() error {
	var firstErr error
	for _, iter := range it.iters {
		if err := iter.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
