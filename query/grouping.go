package query

import "context"

// Group is a key plus the ordered members of the source sharing that key.
// Members keep their source order. A Group belongs to the enumeration that
// produced it and must not be modified.
type Group[K comparable, T any] struct {
	Key   K
	items []T
}

// Items returns the members in source order.
func (g *Group[K, T]) Items() []T { return g.items }

// Len returns the number of members.
func (g *Group[K, T]) Len() int { return len(g.items) }

// Sequence returns the members as a restartable sequence, so every operator
// and aggregate in this package applies to a group.
func (g *Group[K, T]) Sequence() *Sequence[T] { return FromSlice(g.items) }

// GroupBy buckets the sequence by key. Groups are yielded in the order their
// key was first encountered, not sorted.
//
// Materializing: the whole input is consumed before the first group is
// yielded, because a later element can extend any earlier group.
func GroupBy[T any, K comparable](p *Sequence[T], key func(T) K) *Sequence[*Group[K, T]] {
	return GroupByInto(p, key, func(v T) T { return v })
}

// GroupByInto is GroupBy with an element selector applied to each member.
func GroupByInto[T any, K comparable, E any](p *Sequence[T], key func(T) K, elem func(T) E) *Sequence[*Group[K, E]] {
	return &Sequence[*Group[K, E]]{
		create: func(ctx context.Context) Iterator[*Group[K, E]] {
			return &groupIter[T, K, E]{source: p.create(ctx), key: key, elem: elem}
		},
	}
}

type groupIter[T any, K comparable, E any] struct {
	source Iterator[T]
	key    func(T) K
	elem   func(T) E
	groups []*Group[K, E]
	pos    int
	loaded bool
}

func (it *groupIter[T, K, E]) Next(ctx context.Context) (result *Group[K, E], ok bool, err error) {
	if !it.loaded {
		it.loaded = true
		groups, err := bucket(ctx, it.source, it.key, it.elem)
		if err != nil {
			return nil, false, err
		}
		it.groups = groups
	}
	if it.pos >= len(it.groups) {
		return nil, false, nil
	}
	g := it.groups[it.pos]
	it.pos++
	return g, true, nil
}

func (it *groupIter[T, K, E]) Close() error {
	if it.loaded {
		return nil
	}
	return it.source.Close()
}

// bucket drains iter into groups in first-encountered key order.
func bucket[T any, K comparable, E any](ctx context.Context, iter Iterator[T], key func(T) K, elem func(T) E) ([]*Group[K, E], error) {
	defer iter.Close()
	var groups []*Group[K, E]
	index := make(map[K]*Group[K, E])
	for {
		val, ok, err := iter.Next(ctx)
		if err != nil {
			return nil, err
		}
		if !ok {
			return groups, nil
		}
		k := key(val)
		g, found := index[k]
		if !found {
			g = &Group[K, E]{Key: k}
			index[k] = g
			groups = append(groups, g)
		}
		g.items = append(g.items, elem(val))
	}
}

// lookup is a key→bucket hash index over one side of a join.
type lookup[K comparable, T any] map[K][]T

func buildLookup[K comparable, T any](ctx context.Context, p *Sequence[T], key func(T) K) (lookup[K, T], error) {
	iter := p.create(ctx)
	defer iter.Close()
	index := make(lookup[K, T])
	for {
		val, ok, err := iter.Next(ctx)
		if err != nil {
			return nil, err
		}
		if !ok {
			return index, nil
		}
		k := key(val)
		index[k] = append(index[k], val)
	}
}
