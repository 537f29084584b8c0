package query

import (
	"cmp"
	"context"

	"golang.org/x/exp/constraints"

	apperrors "github.com/kbukum/coursequery/errors"
)

// Number is the constraint for values that Sum and Average accept.
type Number interface {
	constraints.Integer | constraints.Float
}

// All reports whether every value satisfies pred. It stops at the first
// value that does not. True for an empty sequence.
func All[T any](ctx context.Context, p *Sequence[T], pred func(T) bool) (bool, error) {
	_, found, err := firstMatch(ctx, p, []func(T) bool{Not(pred)})
	if err != nil {
		return false, err
	}
	return !found, nil
}

// Any reports whether at least one value matches, or with no predicate
// whether the sequence is non-empty. It stops at the first match.
func Any[T any](ctx context.Context, p *Sequence[T], preds ...func(T) bool) (bool, error) {
	_, found, err := firstMatch(ctx, p, preds)
	return found, err
}

// Contains reports whether value occurs in the sequence.
func Contains[T comparable](ctx context.Context, p *Sequence[T], value T) (bool, error) {
	return Any(ctx, p, func(v T) bool { return v == value })
}

// Count returns the number of (matching) values; 0 for an empty sequence.
func Count[T any](ctx context.Context, p *Sequence[T], preds ...func(T) bool) (int, error) {
	match := And(preds...)
	n := 0
	err := ForEach(ctx, p, func(_ context.Context, v T) error {
		if match(v) {
			n++
		}
		return nil
	})
	return n, err
}

// Sum adds value(v) over the sequence; 0 for an empty sequence.
func Sum[T any, N Number](ctx context.Context, p *Sequence[T], value func(T) N) (N, error) {
	return Aggregate(ctx, p, N(0), func(acc N, v T) N { return acc + value(v) })
}

// Max returns the largest value(v). Fails with EMPTY_SEQUENCE on an empty
// sequence.
func Max[T any, K cmp.Ordered](ctx context.Context, p *Sequence[T], value func(T) K) (K, error) {
	return extreme(ctx, p, "Max", value, func(candidate, best K) bool { return candidate > best })
}

// Min returns the smallest value(v). Fails with EMPTY_SEQUENCE on an empty
// sequence.
func Min[T any, K cmp.Ordered](ctx context.Context, p *Sequence[T], value func(T) K) (K, error) {
	return extreme(ctx, p, "Min", value, func(candidate, best K) bool { return candidate < best })
}

// Average returns the arithmetic mean of value(v). Fails with EMPTY_SEQUENCE
// on an empty sequence, the same kind Max and Min report.
func Average[T any, N Number](ctx context.Context, p *Sequence[T], value func(T) N) (float64, error) {
	var sum float64
	n := 0
	err := ForEach(ctx, p, func(_ context.Context, v T) error {
		sum += float64(value(v))
		n++
		return nil
	})
	if err != nil {
		return 0, err
	}
	if n == 0 {
		return 0, apperrors.EmptySequence("Average")
	}
	return sum / float64(n), nil
}

// Aggregate folds the sequence into a single result starting from seed.
func Aggregate[T, R any](ctx context.Context, p *Sequence[T], seed R, fn func(R, T) R) (R, error) {
	return First(ctx, Reduce(p, seed, fn))
}

// Reduce accumulates all values into a single result.
// The sequence yields exactly one value: the final accumulator.
func Reduce[T, R any](p *Sequence[T], init R, fn func(R, T) R) *Sequence[R] {
	return &Sequence[R]{
		create: func(ctx context.Context) Iterator[R] {
			return &reduceIter[T, R]{source: p.create(ctx), acc: init, fn: fn}
		},
	}
}

func extreme[T any, K cmp.Ordered](ctx context.Context, p *Sequence[T], op string, value func(T) K, better func(candidate, best K) bool) (K, error) {
	var best K
	found := false
	err := ForEach(ctx, p, func(_ context.Context, v T) error {
		k := value(v)
		if !found || better(k, best) {
			best = k
			found = true
		}
		return nil
	})
	if err != nil {
		var zero K
		return zero, err
	}
	if !found {
		return best, apperrors.EmptySequence(op)
	}
	return best, nil
}

type reduceIter[T, R any] struct {
	source Iterator[T]
	acc    R
	fn     func(R, T) R
	done   bool
}

func (it *reduceIter[T, R]) Next(ctx context.Context) (result R, ok bool, err error) {
	if it.done {
		var zero R
		return zero, false, nil
	}
	for {
		val, ok, err := it.source.Next(ctx)
		if err != nil {
			var zero R
			return zero, false, err
		}
		if !ok {
			it.done = true
			return it.acc, true, nil
		}
		it.acc = it.fn(it.acc, val)
	}
}

func (it *reduceIter[T, R]) Close() error { return it.source.Close() }
