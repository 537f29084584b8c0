package query

import "context"

// Skip discards the first n values and yields the rest. Streaming.
func Skip[T any](p *Sequence[T], n int) *Sequence[T] {
	return &Sequence[T]{
		create: func(ctx context.Context) Iterator[T] {
			return &skipIter[T]{source: p.create(ctx), remaining: n}
		},
	}
}

// Take yields at most n values. Once n values have been yielded it stops
// pulling and closes its upstream, however much remains there. Streaming.
func Take[T any](p *Sequence[T], n int) *Sequence[T] {
	return &Sequence[T]{
		create: func(ctx context.Context) Iterator[T] {
			return &takeIter[T]{source: p.create(ctx), remaining: n}
		},
	}
}

// Page returns page number page (1-based) of the given size, i.e.
// Take(Skip(p, (page-1)*size), size). Pages below 1 are treated as 1.
func Page[T any](p *Sequence[T], page, size int) *Sequence[T] {
	if page < 1 {
		page = 1
	}
	return Take(Skip(p, (page-1)*size), size)
}

// SkipWhile discards values while pred holds, then yields everything after,
// including later values that match pred again. Streaming.
func SkipWhile[T any](p *Sequence[T], pred func(T) bool) *Sequence[T] {
	return &Sequence[T]{
		create: func(ctx context.Context) Iterator[T] {
			return &skipWhileIter[T]{source: p.create(ctx), pred: pred}
		},
	}
}

// TakeWhile yields values while pred holds and stops at the first value that
// fails it. Streaming.
func TakeWhile[T any](p *Sequence[T], pred func(T) bool) *Sequence[T] {
	return &Sequence[T]{
		create: func(ctx context.Context) Iterator[T] {
			return &takeWhileIter[T]{source: p.create(ctx), pred: pred}
		},
	}
}

// Chunk groups consecutive values into slices of size values; the last chunk
// may be shorter. size <= 0 is treated as 1. Streaming: a chunk is emitted as
// soon as it is full.
func Chunk[T any](p *Sequence[T], size int) *Sequence[[]T] {
	if size <= 0 {
		size = 1
	}
	return &Sequence[[]T]{
		create: func(ctx context.Context) Iterator[[]T] {
			return &chunkIter[T]{source: p.create(ctx), size: size}
		},
	}
}

type skipIter[T any] struct {
	source    Iterator[T]
	remaining int
}

func (it *skipIter[T]) Next(ctx context.Context) (result T, ok bool, err error) {
	for it.remaining > 0 {
		_, ok, err := it.source.Next(ctx)
		if err != nil || !ok {
			var zero T
			return zero, false, err
		}
		it.remaining--
	}
	return it.source.Next(ctx)
}

func (it *skipIter[T]) Close() error { return it.source.Close() }

type takeIter[T any] struct {
	source    Iterator[T]
	remaining int
	closed    bool
}

func (it *takeIter[T]) Next(ctx context.Context) (result T, ok bool, err error) {
	if it.remaining <= 0 {
		var zero T
		return zero, false, it.Close()
	}
	val, ok, err := it.source.Next(ctx)
	if err != nil || !ok {
		return val, false, err
	}
	it.remaining--
	return val, true, nil
}

func (it *takeIter[T]) Close() error {
	if it.closed {
		return nil
	}
	it.closed = true
	return it.source.Close()
}

type skipWhileIter[T any] struct {
	source  Iterator[T]
	pred    func(T) bool
	yielded bool
}

func (it *skipWhileIter[T]) Next(ctx context.Context) (result T, ok bool, err error) {
	if it.yielded {
		return it.source.Next(ctx)
	}
	for {
		val, ok, err := it.source.Next(ctx)
		if err != nil || !ok {
			return val, false, err
		}
		if !it.pred(val) {
			it.yielded = true
			return val, true, nil
		}
	}
}

func (it *skipWhileIter[T]) Close() error { return it.source.Close() }

type takeWhileIter[T any] struct {
	source Iterator[T]
	pred   func(T) bool
	done   bool
	closed bool
}

func (it *takeWhileIter[T]) Next(ctx context.Context) (result T, ok bool, err error) {
	var zero T
	if it.done {
		return zero, false, nil
	}
	val, ok, err := it.source.Next(ctx)
	if err != nil || !ok {
		return zero, false, err
	}
	if !it.pred(val) {
		it.done = true
		return zero, false, it.Close()
	}
	return val, true, nil
}

func (it *takeWhileIter[T]) Close() error {
	if it.closed {
		return nil
	}
	it.closed = true
	return it.source.Close()
}

type chunkIter[T any] struct {
	source Iterator[T]
	size   int
	done   bool
}

func (it *chunkIter[T]) Next(ctx context.Context) (result []T, ok bool, err error) {
	if it.done {
		return nil, false, nil
	}
	batch := make([]T, 0, it.size)
	for len(batch) < it.size {
		val, ok, err := it.source.Next(ctx)
		if err != nil {
			return nil, false, err
		}
		if !ok {
			it.done = true
			break
		}
		batch = append(batch, val)
	}
	if len(batch) == 0 {
		return nil, false, nil
	}
	return batch, true, nil
}

func (it *chunkIter[T]) Close() error { return it.source.Close() }
