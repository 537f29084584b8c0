package query

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// countingSeq wraps a slice and records how many values were pulled and how
// many iterators were created and closed.
type counter struct {
	created, pulled, closed int
}

func countingSeq[T any](c *counter, items []T) *Sequence[T] {
	return FromFunc(func(_ context.Context) Iterator[T] {
		c.created++
		return &countingIter[T]{c: c, items: items}
	})
}

type countingIter[T any] struct {
	c     *counter
	items []T
	index int
}

func (it *countingIter[T]) Next(_ context.Context) (T, bool, error) {
	if it.index >= len(it.items) {
		var zero T
		return zero, false, nil
	}
	it.c.pulled++
	val := it.items[it.index]
	it.index++
	return val, true, nil
}

func (it *countingIter[T]) Close() error {
	it.c.closed++
	return nil
}

// failingIter yields its items then fails.
type failingIter[T any] struct {
	items []T
	index int
	err   error
}

func (it *failingIter[T]) Next(_ context.Context) (T, bool, error) {
	if it.index >= len(it.items) {
		var zero T
		return zero, false, it.err
	}
	val := it.items[it.index]
	it.index++
	return val, true, nil
}

func (it *failingIter[T]) Close() error { return nil }

func failingSeq[T any](err error, items ...T) *Sequence[T] {
	return FromFunc(func(_ context.Context) Iterator[T] {
		return &failingIter[T]{items: items, err: err}
	})
}

func mustCollect[T any](t *testing.T, p *Sequence[T]) []T {
	t.Helper()
	got, err := Collect(context.Background(), p)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return got
}

func TestFromSlice_Collect(t *testing.T) {
	got := mustCollect(t, FromSlice([]int{1, 2, 3}))
	if diff := cmp.Diff([]int{1, 2, 3}, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestEmpty(t *testing.T) {
	got := mustCollect(t, Empty[string]())
	if len(got) != 0 {
		t.Errorf("expected empty, got %v", got)
	}
}

func TestRange(t *testing.T) {
	got := mustCollect(t, Range(3, 4))
	if diff := cmp.Diff([]int{3, 4, 5, 6}, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
	if got := mustCollect(t, Range(0, 0)); len(got) != 0 {
		t.Errorf("expected empty range, got %v", got)
	}
}

func TestFrom_SinglePass(t *testing.T) {
	p := From[string](&sliceIter[string]{items: []string{"a", "b"}})
	first := mustCollect(t, p)
	if diff := cmp.Diff([]string{"a", "b"}, first); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
	if second := mustCollect(t, p); len(second) != 0 {
		t.Errorf("expected exhausted iterator on second run, got %v", second)
	}
}

func TestSequence_Restartable(t *testing.T) {
	var c counter
	p := Map(countingSeq(&c, []int{1, 2, 3}), func(n int) int { return n * 10 })

	for run := 0; run < 2; run++ {
		got := mustCollect(t, p)
		if diff := cmp.Diff([]int{10, 20, 30}, got); diff != "" {
			t.Errorf("run %d mismatch (-want +got):\n%s", run, diff)
		}
	}
	if c.created != 2 {
		t.Errorf("expected one upstream enumeration per run, got %d", c.created)
	}
	if c.closed != 2 {
		t.Errorf("expected upstream closed after each run, got %d", c.closed)
	}
}

func TestComposition_IsLazy(t *testing.T) {
	var c counter
	src := countingSeq(&c, []int{1, 2, 3})
	_ = Take(OrderBy(Filter(src, func(int) bool { return true }), Asc(func(n int) int { return n })), 1)
	if c.created != 0 || c.pulled != 0 {
		t.Errorf("expected no work before evaluation, got created=%d pulled=%d", c.created, c.pulled)
	}
}

func TestCollect_ReturnsPartialOnError(t *testing.T) {
	boom := errors.New("boom")
	got, err := Collect(context.Background(), failingSeq(boom, 1, 2))
	if !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
	if diff := cmp.Diff([]int{1, 2}, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestDrain_SinkError(t *testing.T) {
	var c counter
	stop := errors.New("stop")
	var seen []int
	err := Drain(countingSeq(&c, []int{1, 2, 3}), func(_ context.Context, n int) error {
		seen = append(seen, n)
		if n == 2 {
			return stop
		}
		return nil
	}).Run(context.Background())
	if !errors.Is(err, stop) {
		t.Fatalf("expected stop, got %v", err)
	}
	if diff := cmp.Diff([]int{1, 2}, seen); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
	if c.closed != 1 {
		t.Errorf("expected iterator closed, got %d", c.closed)
	}
}

func TestForEach(t *testing.T) {
	sum := 0
	err := ForEach(context.Background(), Range(1, 4), func(_ context.Context, n int) error {
		sum += n
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
	if sum != 10 {
		t.Errorf("expected 10, got %d", sum)
	}
}

func TestIter_Raw(t *testing.T) {
	ctx := context.Background()
	iter := FromSlice([]string{"x"}).Iter(ctx)
	defer iter.Close()
	v, ok, err := iter.Next(ctx)
	if err != nil || !ok || v != "x" {
		t.Fatalf("expected x, got %q ok=%v err=%v", v, ok, err)
	}
	if _, ok, _ := iter.Next(ctx); ok {
		t.Error("expected exhaustion")
	}
}

func TestCollect_StopsOnCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	got, err := Collect(ctx, Map(Range(0, 10), func(n int) int { return n * 2 }))
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected no values, got %v", got)
	}
}
