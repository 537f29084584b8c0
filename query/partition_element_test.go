package query

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	apperrors "github.com/kbukum/coursequery/errors"
)

func TestSkipTake(t *testing.T) {
	got := mustCollect(t, Take(Skip(FromSlice([]string{"A", "B", "C"}), 1), 1))
	if diff := cmp.Diff([]string{"B"}, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestSkipTake_SliceProperty(t *testing.T) {
	for n := 0; n <= 6; n++ {
		for a := 0; a <= 7; a++ {
			for b := 0; b <= 7; b++ {
				got := mustCollect(t, Take(Skip(Range(0, n), a), b))
				want := max(0, min(b, n-a))
				if len(got) != want {
					t.Fatalf("n=%d skip=%d take=%d: expected %d values, got %d", n, a, b, want, len(got))
				}
				for i, v := range got {
					if v != a+i {
						t.Fatalf("n=%d skip=%d take=%d: position %d holds %d, want %d", n, a, b, i, v, a+i)
					}
				}
			}
		}
	}
}

func TestTake_ShortCircuits(t *testing.T) {
	var c counter
	got := mustCollect(t, Take(countingSeq(&c, []int{1, 2, 3, 4, 5}), 2))
	if diff := cmp.Diff([]int{1, 2}, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
	if c.pulled != 2 {
		t.Errorf("expected only 2 upstream pulls, got %d", c.pulled)
	}
	if c.closed != 1 {
		t.Errorf("expected upstream closed exactly once, got %d", c.closed)
	}
}

func TestTake_Zero(t *testing.T) {
	var c counter
	got := mustCollect(t, Take(countingSeq(&c, []int{1, 2}), 0))
	if len(got) != 0 {
		t.Errorf("expected empty, got %v", got)
	}
	if c.pulled != 0 {
		t.Errorf("expected no pulls, got %d", c.pulled)
	}
}

func TestPage(t *testing.T) {
	tests := []struct {
		name       string
		page, size int
		want       []int
	}{
		{"first page", 1, 3, []int{0, 1, 2}},
		{"second page", 2, 3, []int{3, 4, 5}},
		{"partial last page", 4, 3, []int{9}},
		{"past the end", 5, 3, nil},
		{"page below one", 0, 3, []int{0, 1, 2}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := mustCollect(t, Page(Range(0, 10), tc.page, tc.size))
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSkipWhileTakeWhile(t *testing.T) {
	src := FromSlice([]int{1, 2, 5, 1, 6})
	lessThan3 := func(n int) bool { return n < 3 }

	skipped := mustCollect(t, SkipWhile(src, lessThan3))
	if diff := cmp.Diff([]int{5, 1, 6}, skipped); diff != "" {
		t.Errorf("SkipWhile mismatch (-want +got):\n%s", diff)
	}
	taken := mustCollect(t, TakeWhile(src, lessThan3))
	if diff := cmp.Diff([]int{1, 2}, taken); diff != "" {
		t.Errorf("TakeWhile mismatch (-want +got):\n%s", diff)
	}
}

func TestChunk(t *testing.T) {
	got := mustCollect(t, Chunk(Range(1, 5), 2))
	want := [][]int{{1, 2}, {3, 4}, {5}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
	if got := mustCollect(t, Chunk(Empty[int](), 3)); len(got) != 0 {
		t.Errorf("expected no chunks, got %v", got)
	}
	if got := mustCollect(t, Chunk(Range(0, 2), 0)); len(got) != 2 {
		t.Errorf("expected size 0 to behave as 1, got %v", got)
	}
}

func TestFirst(t *testing.T) {
	ctx := context.Background()
	v, err := First(ctx, FromSlice(rows))
	if err != nil || v.ID != 1 {
		t.Errorf("expected row 1, got %+v err=%v", v, err)
	}
	v, err = First(ctx, FromSlice(rows), func(r row) bool { return r.Level == 1 })
	if err != nil || v.ID != 2 {
		t.Errorf("expected row 2, got %+v err=%v", v, err)
	}
	_, err = First(ctx, FromSlice(rows), func(r row) bool { return r.Level == 9 })
	if !errors.Is(err, apperrors.ErrEmptySequence) {
		t.Errorf("expected EMPTY_SEQUENCE, got %v", err)
	}
	_, err = First(ctx, Empty[row]())
	if !errors.Is(err, apperrors.ErrEmptySequence) {
		t.Errorf("expected EMPTY_SEQUENCE on empty input, got %v", err)
	}
}

func TestFirst_ShortCircuits(t *testing.T) {
	var c counter
	_, err := First(context.Background(), countingSeq(&c, []int{1, 2, 3}))
	if err != nil {
		t.Fatal(err)
	}
	if c.pulled != 1 || c.closed != 1 {
		t.Errorf("expected 1 pull and close, got pulled=%d closed=%d", c.pulled, c.closed)
	}
}

func TestFirstOrDefault(t *testing.T) {
	ctx := context.Background()
	v, err := FirstOrDefault(ctx, FromSlice(rows), func(r row) bool { return r.Level == 9 })
	if err != nil {
		t.Fatal(err)
	}
	if v != (row{}) {
		t.Errorf("expected zero value sentinel, got %+v", v)
	}
	v, err = FirstOrDefault(ctx, FromSlice(rows), func(r row) bool { return r.Name == "bravo" })
	if err != nil || v.ID != 4 {
		t.Errorf("expected row 4, got %+v err=%v", v, err)
	}
}

func TestLast(t *testing.T) {
	ctx := context.Background()
	v, err := Last(ctx, FromSlice(rows))
	if err != nil || v.ID != 5 {
		t.Errorf("expected row 5, got %+v err=%v", v, err)
	}
	v, err = Last(ctx, FromSlice(rows), func(r row) bool { return r.Level == 2 })
	if err != nil || v.ID != 3 {
		t.Errorf("expected row 3, got %+v err=%v", v, err)
	}
	_, err = Last(ctx, Empty[row]())
	if !errors.Is(err, apperrors.ErrEmptySequence) {
		t.Errorf("expected EMPTY_SEQUENCE, got %v", err)
	}
	v, err = LastOrDefault(ctx, Empty[row]())
	if err != nil || v != (row{}) {
		t.Errorf("expected zero value, got %+v err=%v", v, err)
	}
}

func TestSingle(t *testing.T) {
	ctx := context.Background()
	tests := []struct {
		name    string
		pred    func(row) bool
		wantID  int
		wantErr error
	}{
		{"exactly one", func(r row) bool { return r.ID == 1 }, 1, nil},
		{"many", func(r row) bool { return r.Level == 1 }, 0, apperrors.ErrMultipleMatches},
		{"none", func(r row) bool { return r.ID == 99 }, 0, apperrors.ErrEmptySequence},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			v, err := Single(ctx, FromSlice(rows), tc.pred)
			if tc.wantErr != nil {
				if !errors.Is(err, tc.wantErr) {
					t.Fatalf("expected %v, got %v", tc.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if v.ID != tc.wantID {
				t.Errorf("expected id %d, got %d", tc.wantID, v.ID)
			}
		})
	}
}

func TestSingleOrDefault(t *testing.T) {
	ctx := context.Background()
	v, err := SingleOrDefault(ctx, FromSlice(rows), func(r row) bool { return r.ID == 99 })
	if err != nil || v != (row{}) {
		t.Errorf("expected zero value, got %+v err=%v", v, err)
	}
	_, err = SingleOrDefault(ctx, FromSlice(rows), func(r row) bool { return r.Name == "alpha" })
	if !apperrors.HasCode(err, apperrors.ErrCodeMultipleMatches) {
		t.Errorf("expected MULTIPLE_MATCHES, got %v", err)
	}
}

func TestSingle_StopsAtSecondMatch(t *testing.T) {
	var c counter
	_, err := Single(context.Background(), countingSeq(&c, []int{1, 1, 2, 3}))
	if !errors.Is(err, apperrors.ErrMultipleMatches) {
		t.Fatalf("expected MULTIPLE_MATCHES, got %v", err)
	}
	if c.pulled != 2 {
		t.Errorf("expected 2 pulls, got %d", c.pulled)
	}
}

func TestElementAt(t *testing.T) {
	ctx := context.Background()
	v, err := ElementAt(ctx, Range(10, 5), 2)
	if err != nil || v != 12 {
		t.Errorf("expected 12, got %d err=%v", v, err)
	}
	_, err = ElementAt(ctx, Range(10, 5), 5)
	if !errors.Is(err, apperrors.ErrEmptySequence) {
		t.Errorf("expected EMPTY_SEQUENCE, got %v", err)
	}
	_, err = ElementAt(ctx, Range(10, 5), -1)
	if !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Errorf("expected INVALID_INPUT, got %v", err)
	}
	v, err = ElementAtOrDefault(ctx, Range(10, 5), 7)
	if err != nil || v != 0 {
		t.Errorf("expected zero value, got %d err=%v", v, err)
	}
}

func TestElementAccess_PropagatesUpstreamError(t *testing.T) {
	boom := errors.New("boom")
	ctx := context.Background()
	if _, err := FirstOrDefault(ctx, failingSeq[int](boom)); !errors.Is(err, boom) {
		t.Errorf("FirstOrDefault: expected boom, got %v", err)
	}
	if _, err := LastOrDefault(ctx, failingSeq(boom, 1)); !errors.Is(err, boom) {
		t.Errorf("LastOrDefault: expected boom, got %v", err)
	}
	if _, err := SingleOrDefault(ctx, failingSeq(boom, 1)); !errors.Is(err, boom) {
		t.Errorf("SingleOrDefault: expected boom, got %v", err)
	}
}
