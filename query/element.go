package query

import (
	"context"

	apperrors "github.com/kbukum/coursequery/errors"
)

// Element-access operators are terminals: they evaluate the sequence and
// return one value. Optional predicates are combined with And. The "empty"
// value returned by the ...OrDefault variants is the zero value of T.

// First returns the first (matching) value. It stops pulling as soon as one
// is found. Fails with EMPTY_SEQUENCE when there is none.
func First[T any](ctx context.Context, p *Sequence[T], preds ...func(T) bool) (T, error) {
	val, found, err := firstMatch(ctx, p, preds)
	if err != nil {
		return val, err
	}
	if !found {
		return val, apperrors.EmptySequence("First")
	}
	return val, nil
}

// FirstOrDefault is First returning the zero value instead of failing when
// nothing matches.
func FirstOrDefault[T any](ctx context.Context, p *Sequence[T], preds ...func(T) bool) (T, error) {
	val, _, err := firstMatch(ctx, p, preds)
	return val, err
}

// Last returns the last (matching) value in sequence order. It walks the
// whole sequence keeping only the latest match. Fails with EMPTY_SEQUENCE
// when there is none.
func Last[T any](ctx context.Context, p *Sequence[T], preds ...func(T) bool) (T, error) {
	val, found, err := lastMatch(ctx, p, preds)
	if err != nil {
		return val, err
	}
	if !found {
		return val, apperrors.EmptySequence("Last")
	}
	return val, nil
}

// LastOrDefault is Last returning the zero value instead of failing when
// nothing matches.
func LastOrDefault[T any](ctx context.Context, p *Sequence[T], preds ...func(T) bool) (T, error) {
	val, _, err := lastMatch(ctx, p, preds)
	return val, err
}

// Single returns the only (matching) value. Fails with MULTIPLE_MATCHES as
// soon as a second match is seen and with EMPTY_SEQUENCE when there is none.
func Single[T any](ctx context.Context, p *Sequence[T], preds ...func(T) bool) (T, error) {
	val, found, err := singleMatch(ctx, p, "Single", preds)
	if err != nil {
		return val, err
	}
	if !found {
		return val, apperrors.EmptySequence("Single")
	}
	return val, nil
}

// SingleOrDefault is Single returning the zero value when nothing matches.
// More than one match still fails with MULTIPLE_MATCHES.
func SingleOrDefault[T any](ctx context.Context, p *Sequence[T], preds ...func(T) bool) (T, error) {
	val, _, err := singleMatch(ctx, p, "SingleOrDefault", preds)
	return val, err
}

// ElementAt returns the value at a zero-based position. Fails with
// EMPTY_SEQUENCE when the sequence is shorter and INVALID_INPUT for a
// negative index.
func ElementAt[T any](ctx context.Context, p *Sequence[T], index int) (T, error) {
	if index < 0 {
		var zero T
		return zero, apperrors.InvalidInput("index", "must not be negative").WithDetail("index", index)
	}
	val, found, err := firstMatch(ctx, Skip(p, index), nil)
	if err != nil {
		return val, err
	}
	if !found {
		return val, apperrors.EmptySequence("ElementAt").WithDetail("index", index)
	}
	return val, nil
}

// ElementAtOrDefault is ElementAt returning the zero value for any position
// outside the sequence.
func ElementAtOrDefault[T any](ctx context.Context, p *Sequence[T], index int) (T, error) {
	if index < 0 {
		var zero T
		return zero, nil
	}
	val, _, err := firstMatch(ctx, Skip(p, index), nil)
	return val, err
}

func firstMatch[T any](ctx context.Context, p *Sequence[T], preds []func(T) bool) (T, bool, error) {
	match := And(preds...)
	iter := p.create(ctx)
	defer iter.Close()
	var zero T
	for {
		val, ok, err := iter.Next(ctx)
		if err != nil {
			return zero, false, err
		}
		if !ok {
			return zero, false, nil
		}
		if match(val) {
			return val, true, nil
		}
	}
}

func lastMatch[T any](ctx context.Context, p *Sequence[T], preds []func(T) bool) (T, bool, error) {
	match := And(preds...)
	iter := p.create(ctx)
	defer iter.Close()
	var last T
	found := false
	for {
		val, ok, err := iter.Next(ctx)
		if err != nil {
			var zero T
			return zero, false, err
		}
		if !ok {
			return last, found, nil
		}
		if match(val) {
			last = val
			found = true
		}
	}
}

func singleMatch[T any](ctx context.Context, p *Sequence[T], op string, preds []func(T) bool) (T, bool, error) {
	match := And(preds...)
	iter := p.create(ctx)
	defer iter.Close()
	var zero, result T
	found := false
	for {
		val, ok, err := iter.Next(ctx)
		if err != nil {
			return zero, false, err
		}
		if !ok {
			return result, found, nil
		}
		if !match(val) {
			continue
		}
		if found {
			return zero, false, apperrors.MultipleMatches(op)
		}
		result = val
		found = true
	}
}
