package queries

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/kbukum/coursequery/catalog"
	apperrors "github.com/kbukum/coursequery/errors"
	"github.com/kbukum/coursequery/eval"
	"github.com/kbukum/coursequery/logger"
	"github.com/kbukum/coursequery/validation"
)

func testEvaluator() *eval.Evaluator {
	return eval.New(
		eval.WithLogger(logger.Nop()),
		eval.WithIDGenerator(func() string { return "run-1" }),
	)
}

func run(t *testing.T, name string, p Params) Result {
	t.Helper()
	def, err := Lookup(name)
	if err != nil {
		t.Fatal(err)
	}
	res, err := def.Execute(context.Background(), testEvaluator(), catalog.Sample(), p)
	if err != nil {
		t.Fatalf("%s: unexpected error: %v", name, err)
	}
	return res
}

func TestAll_UniqueNamesAndComplete(t *testing.T) {
	seen := map[string]bool{}
	for _, d := range All() {
		if seen[d.Name] {
			t.Errorf("duplicate query name %q", d.Name)
		}
		seen[d.Name] = true
		if d.Description == "" || d.Category == "" || d.Run == nil {
			t.Errorf("query %q is incomplete", d.Name)
		}
	}
	if len(seen) != 27 {
		t.Errorf("expected 27 queries, got %d", len(seen))
	}
}

func TestAll_EveryQueryRunsOnSample(t *testing.T) {
	for _, d := range All() {
		t.Run(d.Name, func(t *testing.T) {
			res, err := d.Execute(context.Background(), testEvaluator(), catalog.Sample(), DefaultParams())
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if res.Stats.Name != d.Name || res.Stats.RunID != "run-1" {
				t.Errorf("unexpected stats %+v", res.Stats)
			}
			for i, row := range res.Rows {
				if len(row) != len(res.Header) {
					t.Errorf("row %d has %d cells, header has %d", i, len(row), len(res.Header))
				}
			}
		})
	}
}

func TestLookup_Unknown(t *testing.T) {
	_, err := Lookup("no-such-query")
	if !errors.Is(err, apperrors.ErrNotFound) {
		t.Errorf("expected NOT_FOUND, got %v", err)
	}
}

func TestRun_RendersRows(t *testing.T) {
	tests := []struct {
		name string
		want [][]string
	}{
		{"level-counts", [][]string{{"1", "4", "1(4)"}, {"2", "6", "2(6)"}, {"3", "2", "3(2)"}}},
		{"level-distinct-tags", [][]string{{"c#"}, {"oop"}, {"javascript"}}},
		{"level-tag-lists", [][]string{{"c#"}, {"oop"}, {"javascript"}, {"c#"}}},
		{"all-priced-above", [][]string{{"true"}}},
		{"price-summary", [][]string{{"12", "956.00", "150.00", "20.00", "79.67"}}},
		{"course-page", [][]string{
			{"11", "Clean Code", "1", "39.00", "Mosh Hamedani", "oop"},
			{"12", "Entity Framework in Depth", "2", "79.00", "Mosh Hamedani", "c#, linq"},
		}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			res := run(t, tc.name, DefaultParams())
			if diff := cmp.Diff(tc.want, res.Rows); diff != "" {
				t.Errorf("mismatch (-want +got):\n%s", diff)
			}
			if res.Stats.Count != len(res.Rows) {
				t.Errorf("expected count %d, got %d", len(res.Rows), res.Stats.Count)
			}
		})
	}
}

func TestRun_DefaultRendersNone(t *testing.T) {
	p := DefaultParams()
	p.CourseID = 99
	res := run(t, "course-by-id-or-default", p)
	if len(res.Rows) != 1 || res.Rows[0][1] != "(none)" {
		t.Errorf("expected a none row, got %v", res.Rows)
	}
}

func TestRun_SurfacesEvaluationError(t *testing.T) {
	def, err := Lookup("course-by-id")
	if err != nil {
		t.Fatal(err)
	}
	p := DefaultParams()
	p.CourseID = 99
	res, err := def.Execute(context.Background(), testEvaluator(), catalog.Sample(), p)
	if !apperrors.HasCode(err, apperrors.ErrCodeEmptySequence) {
		t.Fatalf("expected EMPTY_SEQUENCE, got %v", err)
	}
	if len(res.Rows) != 0 || res.Stats.Name != "course-by-id" {
		t.Errorf("unexpected result %+v", res)
	}
}

func TestExecute_RejectsInvalidParams(t *testing.T) {
	def, err := Lookup("course-page")
	if err != nil {
		t.Fatal(err)
	}
	p := DefaultParams()
	p.PageSize = 0
	_, err = def.Execute(context.Background(), testEvaluator(), catalog.Sample(), p)
	if !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Errorf("expected INVALID_INPUT, got %v", err)
	}
}

func TestParams_Validate(t *testing.T) {
	if err := DefaultParams().Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
	p := DefaultParams()
	p.Page = 0
	p.PriceFloor = -1
	err := p.Validate()
	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("expected AppError, got %v", err)
	}
	fieldErrs, ok := appErr.Details["fields"].([]validation.FieldError)
	if !ok {
		t.Fatalf("expected field errors in details, got %#v", appErr.Details)
	}
	var fields []string
	for _, fe := range fieldErrs {
		fields = append(fields, fe.Field)
	}
	if diff := cmp.Diff([]string{"page", "price_floor"}, fields); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestExecute_ValidatesOnlyParamsItReads(t *testing.T) {
	p := DefaultParams()
	p.Page = 0
	p.Level = 0

	tests := []struct {
		name    string
		wantErr bool
	}{
		{name: "level-counts"},
		{name: "price-summary"},
		{name: "course-by-id"},
		{name: "course-page", wantErr: true},
		{name: "courses-at-level", wantErr: true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			def, err := Lookup(tc.name)
			if err != nil {
				t.Fatal(err)
			}
			_, err = def.Execute(context.Background(), testEvaluator(), catalog.Sample(), p)
			if tc.wantErr {
				if !errors.Is(err, apperrors.ErrInvalidInput) {
					t.Errorf("expected INVALID_INPUT, got %v", err)
				}
				return
			}
			if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestParams_ValidateFields(t *testing.T) {
	p := DefaultParams()
	p.Page = 0
	p.PageSize = MaxPageSize + 1
	p.PriceFloor = -1

	err := p.ValidateFields(ParamPageSize, ParamLevel)
	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("expected AppError, got %v", err)
	}
	fieldErrs, _ := appErr.Details["fields"].([]validation.FieldError)
	var fields []string
	for _, fe := range fieldErrs {
		fields = append(fields, fe.Field)
	}
	if diff := cmp.Diff([]string{"page_size"}, fields); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}

	if err := p.ValidateFields(); err != nil {
		t.Errorf("no fields should validate, got %v", err)
	}
}
