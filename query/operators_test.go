package query

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

type row struct {
	ID    int
	Name  string
	Level int
}

var rows = []row{
	{1, "delta", 2},
	{2, "alpha", 1},
	{3, "charlie", 2},
	{4, "bravo", 1},
	{5, "alpha", 3},
}

func ids(rs []row) []int {
	out := make([]int, len(rs))
	for i, r := range rs {
		out[i] = r.ID
	}
	return out
}

func TestFilter(t *testing.T) {
	got := mustCollect(t, Filter(FromSlice(rows), func(r row) bool { return r.Level == 1 }))
	if diff := cmp.Diff([]int{2, 4}, ids(got)); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestFilter_None(t *testing.T) {
	got := mustCollect(t, Filter(FromSlice(rows), func(r row) bool { return r.Level > 10 }))
	if len(got) != 0 {
		t.Errorf("expected empty, got %v", got)
	}
}

func TestFilter_MultiCondition(t *testing.T) {
	levelTwo := func(r row) bool { return r.Level == 2 }
	startsWithC := func(r row) bool { return strings.HasPrefix(r.Name, "c") }
	got := mustCollect(t, Filter(FromSlice(rows), And(levelTwo, startsWithC)))
	if diff := cmp.Diff([]int{3}, ids(got)); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestAnd_NoPredicates(t *testing.T) {
	if !And[int]()(42) {
		t.Error("expected empty conjunction to match")
	}
	if Not(And[int]())(42) {
		t.Error("expected negated empty conjunction to fail")
	}
}

func TestOrderBy_MultiKey(t *testing.T) {
	p := OrderBy(FromSlice(rows),
		Desc(func(r row) int { return r.Level }),
		Asc(func(r row) string { return r.Name }),
	)
	got := mustCollect(t, p)
	if diff := cmp.Diff([]int{5, 3, 1, 2, 4}, ids(got)); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestOrderBy_StableOnTies(t *testing.T) {
	got := mustCollect(t, OrderBy(FromSlice(rows), Asc(func(r row) int { return r.Level })))
	// level 1: 2, 4; level 2: 1, 3; level 3: 5; input order within ties
	if diff := cmp.Diff([]int{2, 4, 1, 3, 5}, ids(got)); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestOrderBy_ResortIsIdentity(t *testing.T) {
	keys := []SortKey[row]{
		Asc(func(r row) string { return r.Name }),
		Desc(func(r row) int { return r.Level }),
	}
	once := mustCollect(t, OrderBy(FromSlice(rows), keys...))
	twice := mustCollect(t, OrderBy(FromSlice(once), keys...))
	if diff := cmp.Diff(ids(once), ids(twice)); diff != "" {
		t.Errorf("re-sorting changed order (-once +twice):\n%s", diff)
	}
}

func TestOrderBy_CustomComparer(t *testing.T) {
	byNameLength := By(func(a, b row) int { return len(a.Name) - len(b.Name) })
	got := mustCollect(t, OrderBy(FromSlice(rows), byNameLength))
	if diff := cmp.Diff([]int{1, 2, 4, 5, 3}, ids(got)); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestOrderBy_MaterializesOnFirstPull(t *testing.T) {
	var c counter
	p := OrderBy(countingSeq(&c, []int{3, 1, 2}), Asc(func(n int) int { return n }))
	ctx := context.Background()
	iter := p.Iter(ctx)
	defer iter.Close()
	v, ok, err := iter.Next(ctx)
	if err != nil || !ok || v != 1 {
		t.Fatalf("expected 1, got %d ok=%v err=%v", v, ok, err)
	}
	if c.pulled != 3 {
		t.Errorf("expected whole input buffered on first pull, pulled %d", c.pulled)
	}
}

func TestOrderBy_Error(t *testing.T) {
	boom := errors.New("boom")
	_, err := Collect(context.Background(), OrderBy(failingSeq(boom, 2, 1), Asc(func(n int) int { return n })))
	if !errors.Is(err, boom) {
		t.Errorf("expected boom, got %v", err)
	}
}

func TestMap(t *testing.T) {
	got := mustCollect(t, Map(FromSlice(rows), func(r row) string { return fmt.Sprintf("%d:%s", r.ID, r.Name) }))
	want := []string{"1:delta", "2:alpha", "3:charlie", "4:bravo", "5:alpha"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestFlatMap(t *testing.T) {
	expanded := FlatMap(FromSlice([]int{1, 2, 3}), func(n int) *Sequence[int] {
		return FromSlice([]int{n, n * 10})
	})
	got := mustCollect(t, expanded)
	if diff := cmp.Diff([]int{1, 10, 2, 20, 3, 30}, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestFlatMap_EmptyAndNilInner(t *testing.T) {
	expanded := FlatMap(FromSlice([]int{1, 2, 3, 4}), func(n int) *Sequence[int] {
		switch n {
		case 2:
			return Empty[int]()
		case 3:
			return nil
		}
		return FromSlice([]int{n})
	})
	got := mustCollect(t, expanded)
	if diff := cmp.Diff([]int{1, 4}, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestMap_NestedVersusFlatMap(t *testing.T) {
	owners := [][]string{{"a", "b"}, {}, {"c"}}
	tagsOf := func(tags []string) *Sequence[string] { return FromSlice(tags) }

	nested := mustCollect(t, Map(FromSlice(owners), tagsOf))
	if len(nested) != 3 {
		t.Fatalf("expected one sub-sequence per owner, got %d", len(nested))
	}
	var lens []int
	for _, sub := range nested {
		lens = append(lens, len(mustCollect(t, sub)))
	}
	if diff := cmp.Diff([]int{2, 0, 1}, lens); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}

	flat := mustCollect(t, FlatMap(FromSlice(owners), tagsOf))
	if diff := cmp.Diff([]string{"a", "b", "c"}, flat); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestFlatMapWith(t *testing.T) {
	pairs := FlatMapWith(FromSlice([]string{"x", "y"}),
		func(string) *Sequence[int] { return Range(1, 2) },
		func(s string, n int) string { return fmt.Sprintf("%s%d", s, n) },
	)
	got := mustCollect(t, pairs)
	if diff := cmp.Diff([]string{"x1", "x2", "y1", "y2"}, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestTap(t *testing.T) {
	var tapped []int
	observed := Tap(FromSlice([]int{1, 2, 3}), func(_ context.Context, n int) error {
		tapped = append(tapped, n)
		return nil
	})
	got := mustCollect(t, observed)
	if diff := cmp.Diff(got, tapped); diff != "" {
		t.Errorf("tap saw different values (-got +tapped):\n%s", diff)
	}
}

func TestTap_Error(t *testing.T) {
	boom := errors.New("tap failed")
	_, err := Collect(context.Background(), Tap(FromSlice([]int{1}), func(context.Context, int) error { return boom }))
	if !errors.Is(err, boom) {
		t.Errorf("expected tap error, got %v", err)
	}
}

func TestDistinct(t *testing.T) {
	got := mustCollect(t, Distinct(FromSlice([]string{"b", "a", "b", "c", "a"})))
	if diff := cmp.Diff([]string{"b", "a", "c"}, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestDistinct_Idempotent(t *testing.T) {
	src := FromSlice([]int{3, 1, 3, 2, 1, 3})
	once := mustCollect(t, Distinct(src))
	twice := mustCollect(t, Distinct(Distinct(src)))
	if diff := cmp.Diff(once, twice); diff != "" {
		t.Errorf("mismatch (-once +twice):\n%s", diff)
	}
}

func TestDistinctBy(t *testing.T) {
	got := mustCollect(t, DistinctBy(FromSlice(rows), func(r row) string { return r.Name }))
	if diff := cmp.Diff([]int{1, 2, 3, 4}, ids(got)); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestDistinct_FreshIndexPerEnumeration(t *testing.T) {
	p := Distinct(FromSlice([]int{1, 1, 2}))
	for run := 0; run < 2; run++ {
		got := mustCollect(t, p)
		if diff := cmp.Diff([]int{1, 2}, got); diff != "" {
			t.Errorf("run %d mismatch (-want +got):\n%s", run, diff)
		}
	}
}

func TestConcat(t *testing.T) {
	got := mustCollect(t, Concat(FromSlice([]int{1, 2}), Empty[int](), FromSlice([]int{3})))
	if diff := cmp.Diff([]int{1, 2, 3}, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}
