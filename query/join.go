package query

import "context"

// Join correlates left and right on equal keys and yields combine(l, r) for
// every matching pair. Left elements without a match produce nothing.
// Output follows left order, then right order within each left element.
//
// Streams the left side; the right side is materialized into a hash index
// on the first pull.
func Join[L, R any, K comparable, O any](
	left *Sequence[L], right *Sequence[R],
	leftKey func(L) K, rightKey func(R) K,
	combine func(L, R) O,
) *Sequence[O] {
	return &Sequence[O]{
		create: func(ctx context.Context) Iterator[O] {
			return &joinIter[L, R, K, O]{
				source: left.create(ctx), right: right,
				leftKey: leftKey, rightKey: rightKey, combine: combine,
			}
		},
	}
}

// GroupJoin correlates left and right on equal keys and yields exactly one
// combine(l, group) per left element, where group holds the matching right
// elements in right order. Unmatched left elements get an empty group.
//
// Streams the left side; the right side is materialized into a hash index
// on the first pull.
func GroupJoin[L, R any, K comparable, O any](
	left *Sequence[L], right *Sequence[R],
	leftKey func(L) K, rightKey func(R) K,
	combine func(L, *Group[K, R]) O,
) *Sequence[O] {
	return &Sequence[O]{
		create: func(ctx context.Context) Iterator[O] {
			return &groupJoinIter[L, R, K, O]{
				source: left.create(ctx), right: right,
				leftKey: leftKey, rightKey: rightKey, combine: combine,
			}
		},
	}
}

// CrossJoin yields combine(l, r) for every l in left and every r in right,
// outer loop over left.
//
// Streams the left side; the right side is buffered once on the first pull.
func CrossJoin[L, R, O any](left *Sequence[L], right *Sequence[R], combine func(L, R) O) *Sequence[O] {
	return &Sequence[O]{
		create: func(ctx context.Context) Iterator[O] {
			return &crossJoinIter[L, R, O]{source: left.create(ctx), right: right, combine: combine}
		},
	}
}

type joinIter[L, R any, K comparable, O any] struct {
	source   Iterator[L]
	right    *Sequence[R]
	leftKey  func(L) K
	rightKey func(R) K
	combine  func(L, R) O

	index   lookup[K, R]
	current L
	matches []R
	pos     int
}

func (it *joinIter[L, R, K, O]) Next(ctx context.Context) (result O, ok bool, err error) {
	var zero O
	if it.index == nil {
		index, err := buildLookup(ctx, it.right, it.rightKey)
		if err != nil {
			return zero, false, err
		}
		it.index = index
	}
	for it.pos >= len(it.matches) {
		l, ok, err := it.source.Next(ctx)
		if err != nil || !ok {
			return zero, false, err
		}
		it.current = l
		it.matches = it.index[it.leftKey(l)]
		it.pos = 0
	}
	r := it.matches[it.pos]
	it.pos++
	return it.combine(it.current, r), true, nil
}

func (it *joinIter[L, R, K, O]) Close() error { return it.source.Close() }

type groupJoinIter[L, R any, K comparable, O any] struct {
	source   Iterator[L]
	right    *Sequence[R]
	leftKey  func(L) K
	rightKey func(R) K
	combine  func(L, *Group[K, R]) O

	index lookup[K, R]
}

func (it *groupJoinIter[L, R, K, O]) Next(ctx context.Context) (result O, ok bool, err error) {
	var zero O
	if it.index == nil {
		index, err := buildLookup(ctx, it.right, it.rightKey)
		if err != nil {
			return zero, false, err
		}
		it.index = index
	}
	l, ok, err := it.source.Next(ctx)
	if err != nil || !ok {
		return zero, false, err
	}
	k := it.leftKey(l)
	return it.combine(l, &Group[K, R]{Key: k, items: it.index[k]}), true, nil
}

func (it *groupJoinIter[L, R, K, O]) Close() error { return it.source.Close() }

type crossJoinIter[L, R, O any] struct {
	source  Iterator[L]
	right   *Sequence[R]
	combine func(L, R) O

	buf     []R
	loaded  bool
	current L
	pos     int
}

func (it *crossJoinIter[L, R, O]) Next(ctx context.Context) (result O, ok bool, err error) {
	var zero O
	if !it.loaded {
		buf, err := drain(ctx, it.right.create(ctx))
		if err != nil {
			return zero, false, err
		}
		it.buf = buf
		it.loaded = true
		it.pos = len(buf)
	}
	if len(it.buf) == 0 {
		return zero, false, nil
	}
	if it.pos >= len(it.buf) {
		l, ok, err := it.source.Next(ctx)
		if err != nil || !ok {
			return zero, false, err
		}
		it.current = l
		it.pos = 0
	}
	r := it.buf[it.pos]
	it.pos++
	return it.combine(it.current, r), true, nil
}

func (it *crossJoinIter[L, R, O]) Close() error { return it.source.Close() }
