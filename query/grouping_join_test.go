package query

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
)

type member struct {
	ID      int
	OwnerID int
}

type owner struct {
	ID   int
	Name string
}

func TestGroupBy_FirstEncounteredOrder(t *testing.T) {
	groups := mustCollect(t, GroupBy(FromSlice(rows), func(r row) int { return r.Level }))

	var keys []int
	members := map[int][]int{}
	for _, g := range groups {
		keys = append(keys, g.Key)
		members[g.Key] = ids(g.Items())
	}
	if diff := cmp.Diff([]int{2, 1, 3}, keys); diff != "" {
		t.Errorf("key order mismatch (-want +got):\n%s", diff)
	}
	want := map[int][]int{2: {1, 3}, 1: {2, 4}, 3: {5}}
	if diff := cmp.Diff(want, members); diff != "" {
		t.Errorf("members mismatch (-want +got):\n%s", diff)
	}
}

func TestGroupBy_Completeness(t *testing.T) {
	src := mustCollect(t, Map(Range(0, 50), func(n int) row {
		return row{ID: n, Level: (n * 7) % 5}
	}))
	key := func(r row) int { return r.Level }
	groups := mustCollect(t, GroupBy(FromSlice(src), key))

	seen := map[int]int{}
	for _, g := range groups {
		for _, r := range g.Items() {
			if key(r) != g.Key {
				t.Errorf("row %d with key %d landed in group %d", r.ID, key(r), g.Key)
			}
			seen[r.ID]++
		}
	}
	if len(seen) != len(src) {
		t.Errorf("expected %d grouped rows, got %d", len(src), len(seen))
	}
	for id, n := range seen {
		if n != 1 {
			t.Errorf("row %d appeared in %d groups", id, n)
		}
	}
}

func TestGroup_AggregatesOverMembers(t *testing.T) {
	ctx := context.Background()
	groups := mustCollect(t, GroupBy(FromSlice(rows), func(r row) int { return r.Level }))
	g := groups[0] // level 2: ids 1 and 3

	if g.Len() != 2 {
		t.Fatalf("expected 2 members, got %d", g.Len())
	}
	n, err := Count(ctx, g.Sequence())
	if err != nil || n != 2 {
		t.Errorf("expected count 2, got %d err=%v", n, err)
	}
	sum, err := Sum(ctx, g.Sequence(), func(r row) int { return r.ID })
	if err != nil || sum != 4 {
		t.Errorf("expected sum 4, got %d err=%v", sum, err)
	}
	maxID, err := Max(ctx, g.Sequence(), func(r row) int { return r.ID })
	if err != nil || maxID != 3 {
		t.Errorf("expected max 3, got %d err=%v", maxID, err)
	}
	avg, err := Average(ctx, g.Sequence(), func(r row) int { return r.ID })
	if err != nil || avg != 2 {
		t.Errorf("expected average 2, got %v err=%v", avg, err)
	}
}

func TestGroupByInto(t *testing.T) {
	groups := mustCollect(t, GroupByInto(FromSlice(rows),
		func(r row) int { return r.Level },
		func(r row) string { return r.Name },
	))
	got := map[int][]string{}
	for _, g := range groups {
		got[g.Key] = g.Items()
	}
	want := map[int][]string{2: {"delta", "charlie"}, 1: {"alpha", "bravo"}, 3: {"alpha"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestGroupBy_Empty(t *testing.T) {
	groups := mustCollect(t, GroupBy(Empty[row](), func(r row) int { return r.Level }))
	if len(groups) != 0 {
		t.Errorf("expected no groups, got %d", len(groups))
	}
}

func TestGroupBy_Error(t *testing.T) {
	boom := errors.New("boom")
	_, err := Collect(context.Background(), GroupBy(failingSeq(boom, 1, 2), func(n int) int { return n % 2 }))
	if !errors.Is(err, boom) {
		t.Errorf("expected boom, got %v", err)
	}
}

var (
	owners  = []owner{{1, "x"}, {2, "y"}, {3, "z"}}
	members = []member{{10, 1}, {11, 2}, {12, 1}, {13, 9}}
)

func TestJoin_Inner(t *testing.T) {
	joined := Join(FromSlice(members), FromSlice(owners),
		func(m member) int { return m.OwnerID },
		func(o owner) int { return o.ID },
		func(m member, o owner) string { return fmt.Sprintf("%d-%s", m.ID, o.Name) },
	)
	got := mustCollect(t, joined)
	// member 13 has no owner and is dropped
	if diff := cmp.Diff([]string{"10-x", "11-y", "12-x"}, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestJoin_OrderFollowsLeftThenRight(t *testing.T) {
	joined := Join(FromSlice(owners), FromSlice(members),
		func(o owner) int { return o.ID },
		func(m member) int { return m.OwnerID },
		func(o owner, m member) [2]int { return [2]int{o.ID, m.ID} },
	)
	got := mustCollect(t, joined)
	want := [][2]int{{1, 10}, {1, 12}, {2, 11}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestJoin_KeysAlwaysEqual(t *testing.T) {
	left := mustCollect(t, Map(Range(0, 30), func(n int) member { return member{ID: n, OwnerID: n % 4} }))
	right := mustCollect(t, Map(Range(0, 6), func(n int) owner { return owner{ID: n % 3} }))
	pairs := mustCollect(t, Join(FromSlice(left), FromSlice(right),
		func(m member) int { return m.OwnerID },
		func(o owner) int { return o.ID },
		func(m member, o owner) [2]int { return [2]int{m.OwnerID, o.ID} },
	))
	if len(pairs) == 0 {
		t.Fatal("expected matches")
	}
	for _, p := range pairs {
		if p[0] != p[1] {
			t.Errorf("joined unequal keys %v", p)
		}
	}
}

func TestJoin_EmptyRight(t *testing.T) {
	got := mustCollect(t, Join(FromSlice(members), Empty[owner](),
		func(m member) int { return m.OwnerID },
		func(o owner) int { return o.ID },
		func(m member, _ owner) int { return m.ID },
	))
	if len(got) != 0 {
		t.Errorf("expected no rows, got %v", got)
	}
}

func TestJoin_RightError(t *testing.T) {
	boom := errors.New("index failed")
	_, err := Collect(context.Background(), Join(FromSlice(members), failingSeq[owner](boom),
		func(m member) int { return m.OwnerID },
		func(o owner) int { return o.ID },
		func(m member, _ owner) int { return m.ID },
	))
	if !errors.Is(err, boom) {
		t.Errorf("expected index error, got %v", err)
	}
}

func TestGroupJoin_KeepsUnmatchedLeft(t *testing.T) {
	type ownerCount struct {
		Name  string
		Count int
		IDs   []int
	}
	joined := GroupJoin(FromSlice(owners), FromSlice(members),
		func(o owner) int { return o.ID },
		func(m member) int { return m.OwnerID },
		func(o owner, g *Group[int, member]) ownerCount {
			var memberIDs []int
			for _, m := range g.Items() {
				memberIDs = append(memberIDs, m.ID)
			}
			return ownerCount{Name: o.Name, Count: g.Len(), IDs: memberIDs}
		},
	)
	got := mustCollect(t, joined)
	want := []ownerCount{
		{Name: "x", Count: 2, IDs: []int{10, 12}},
		{Name: "y", Count: 1, IDs: []int{11}},
		{Name: "z", Count: 0},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestCrossJoin(t *testing.T) {
	got := mustCollect(t, CrossJoin(FromSlice([]string{"a", "b"}), FromSlice([]int{1, 2, 3}),
		func(s string, n int) string { return fmt.Sprintf("%s%d", s, n) },
	))
	want := []string{"a1", "a2", "a3", "b1", "b2", "b3"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestCrossJoin_RightEnumeratedOnce(t *testing.T) {
	var c counter
	got := mustCollect(t, CrossJoin(Range(0, 4), countingSeq(&c, []int{1, 2}),
		func(a, b int) int { return a*10 + b },
	))
	if len(got) != 8 {
		t.Errorf("expected 8 pairs, got %d", len(got))
	}
	if c.created != 1 {
		t.Errorf("expected right side enumerated once, got %d", c.created)
	}
}

func TestCrossJoin_EmptySide(t *testing.T) {
	if got := mustCollect(t, CrossJoin(Empty[int](), Range(0, 3), func(a, b int) int { return a + b })); len(got) != 0 {
		t.Errorf("expected empty product, got %v", got)
	}
	if got := mustCollect(t, CrossJoin(Range(0, 3), Empty[int](), func(a, b int) int { return a + b })); len(got) != 0 {
		t.Errorf("expected empty product, got %v", got)
	}
}
