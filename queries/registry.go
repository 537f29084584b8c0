package queries

import (
	"context"
	"strconv"

	"github.com/kbukum/coursequery/catalog"
	"github.com/kbukum/coursequery/errors"
	"github.com/kbukum/coursequery/eval"
	"github.com/kbukum/coursequery/model"
	"github.com/kbukum/coursequery/query"
)

// Category groups the named queries the way they are listed.
type Category string

const (
	CategoryRestriction  Category = "restriction"
	CategoryOrdering     Category = "ordering"
	CategoryProjection   Category = "projection"
	CategoryGrouping     Category = "grouping"
	CategoryJoining      Category = "joining"
	CategoryPartitioning Category = "partitioning"
	CategoryElement      Category = "element"
	CategoryQuantifier   Category = "quantifier"
	CategoryAggregate    Category = "aggregate"
)

// Result is a rendered query result: a header and one row of cells per
// element, plus the evaluation stats.
type Result struct {
	Header []string
	Rows   [][]string
	Stats  eval.Stats
}

// RunFunc evaluates a named query against a catalog.
type RunFunc func(ctx context.Context, ev *eval.Evaluator, cat *catalog.Catalog, p Params) (Result, error)

// Definition is a named, runnable query. Params lists the parameters Run
// reads.
type Definition struct {
	Name        string
	Category    Category
	Description string
	Params      []Param
	Run         RunFunc
}

// Execute validates the parameters the query reads and runs it.
func (d Definition) Execute(ctx context.Context, ev *eval.Evaluator, cat *catalog.Catalog, p Params) (Result, error) {
	if err := p.ValidateFields(d.Params...); err != nil {
		return Result{}, err
	}
	return d.Run(ctx, ev, cat, p)
}

// rows streams seq through ev, rendering each element with row.
func rows[T any](name string, header []string, build func(*catalog.Catalog, Params) *query.Sequence[T], row func(context.Context, T) ([]string, error)) RunFunc {
	return func(ctx context.Context, ev *eval.Evaluator, cat *catalog.Catalog, p Params) (Result, error) {
		res := Result{Header: header}
		stats, err := eval.Run(ctx, ev, name, build(cat, p), func(ctx context.Context, v T) error {
			cells, err := row(ctx, v)
			if err != nil {
				return err
			}
			res.Rows = append(res.Rows, cells)
			return nil
		})
		res.Stats = stats
		return res, err
	}
}

func plain[T any](fn func(T) []string) func(context.Context, T) ([]string, error) {
	return func(_ context.Context, v T) ([]string, error) { return fn(v), nil }
}

// scalar evaluates a single-value query through ev and renders it as one row.
func scalar[T any](name string, header []string, fn func(context.Context, *catalog.Catalog, Params) (T, error), row func(T) []string) RunFunc {
	return func(ctx context.Context, ev *eval.Evaluator, cat *catalog.Catalog, p Params) (Result, error) {
		v, stats, err := eval.Scalar(ctx, ev, name, func(ctx context.Context) (T, error) {
			return fn(ctx, cat, p)
		})
		res := Result{Header: header, Stats: stats}
		if err != nil {
			return res, err
		}
		res.Rows = [][]string{row(v)}
		return res, nil
	}
}

func courseRows(name string, build func(*catalog.Catalog, Params) *query.Sequence[model.Course]) RunFunc {
	return rows(name, courseHeader, build, plain(courseRow))
}

func courseScalar(name string, fn func(context.Context, *catalog.Catalog, Params) (model.Course, error)) RunFunc {
	return scalar(name, courseHeader, fn, courseOrNone)
}

var (
	courseAuthorHeader = []string{"Course", "Author"}
	authorCourseHeader = []string{"Author", "Course"}
)

func courseAuthorRow(ca CourseAuthor) []string { return []string{ca.CourseName, ca.AuthorName} }
func authorCourseRow(ac AuthorCourse) []string { return []string{ac.AuthorName, ac.CourseName} }

func boolRow(b bool) []string { return []string{strconv.FormatBool(b)} }

var definitions = []Definition{
	{
		Name: "level-courses-by-author", Category: CategoryRestriction, Params: []Param{ParamLevel, ParamAuthorID},
		Description: "courses at a level written by an author",
		Run: courseRows("level-courses-by-author", func(cat *catalog.Catalog, p Params) *query.Sequence[model.Course] {
			return CoursesAtLevelBy(cat, p.Level, p.AuthorID)
		}),
	},
	{
		Name: "courses-at-level", Category: CategoryRestriction, Params: []Param{ParamLevel},
		Description: "courses at a level",
		Run: courseRows("courses-at-level", func(cat *catalog.Catalog, p Params) *query.Sequence[model.Course] {
			return CoursesAtLevel(cat, p.Level)
		}),
	},
	{
		Name: "author-courses-hardest-first", Category: CategoryOrdering, Params: []Param{ParamAuthorID},
		Description: "an author's courses by level descending, then name",
		Run: courseRows("author-courses-hardest-first", func(cat *catalog.Catalog, p Params) *query.Sequence[model.Course] {
			return AuthorCoursesHardestFirst(cat, p.AuthorID)
		}),
	},
	{
		Name: "level-courses-by-name", Category: CategoryOrdering, Params: []Param{ParamLevel},
		Description: "courses at a level by name, then level",
		Run: courseRows("level-courses-by-name", func(cat *catalog.Catalog, p Params) *query.Sequence[model.Course] {
			return LevelCoursesByName(cat, p.Level)
		}),
	},
	{
		Name: "level-courses-by-name-desc", Category: CategoryOrdering, Params: []Param{ParamLevel},
		Description: "courses at a level by name, then level, descending",
		Run: courseRows("level-courses-by-name-desc", func(cat *catalog.Catalog, p Params) *query.Sequence[model.Course] {
			return LevelCoursesByNameDesc(cat, p.Level)
		}),
	},
	{
		Name: "author-course-names", Category: CategoryProjection, Params: []Param{ParamAuthorID},
		Description: "an author's courses projected to course and author name",
		Run: rows("author-course-names", courseAuthorHeader, func(cat *catalog.Catalog, p Params) *query.Sequence[CourseAuthor] {
			return AuthorCourseNames(cat, p.AuthorID)
		}, plain(courseAuthorRow)),
	},
	{
		Name: "level-course-authors", Category: CategoryProjection, Params: []Param{ParamLevel},
		Description: "courses at a level projected to course and author name",
		Run: rows("level-course-authors", courseAuthorHeader, func(cat *catalog.Catalog, p Params) *query.Sequence[CourseAuthor] {
			return LevelCourseAuthors(cat, p.Level)
		}, plain(courseAuthorRow)),
	},
	{
		Name: "level-tag-lists", Category: CategoryProjection, Params: []Param{ParamLevel},
		Description: "one tag list per course at a level",
		Run: rows("level-tag-lists", []string{"Tags"}, func(cat *catalog.Catalog, p Params) *query.Sequence[*query.Sequence[model.Tag]] {
			return LevelTagLists(cat, p.Level)
		}, func(ctx context.Context, tags *query.Sequence[model.Tag]) ([]string, error) {
			items, err := query.Collect(ctx, tags)
			if err != nil {
				return nil, err
			}
			return []string{tagNames(items)}, nil
		}),
	},
	{
		Name: "level-tags", Category: CategoryProjection, Params: []Param{ParamLevel},
		Description: "tags of the courses at a level, flattened",
		Run: rows("level-tags", []string{"Tag"}, func(cat *catalog.Catalog, p Params) *query.Sequence[model.Tag] {
			return LevelTags(cat, p.Level)
		}, plain(func(t model.Tag) []string { return []string{t.Name} })),
	},
	{
		Name: "level-distinct-tags", Category: CategoryProjection, Params: []Param{ParamLevel},
		Description: "distinct tags of the courses at a level",
		Run: rows("level-distinct-tags", []string{"Tag"}, func(cat *catalog.Catalog, p Params) *query.Sequence[model.Tag] {
			return LevelDistinctTags(cat, p.Level)
		}, plain(func(t model.Tag) []string { return []string{t.Name} })),
	},
	{
		Name: "courses-by-level", Category: CategoryGrouping,
		Description: "courses grouped by level",
		Run: rows("courses-by-level", []string{"Level", "Courses"}, func(cat *catalog.Catalog, _ Params) *query.Sequence[*query.Group[int, model.Course]] {
			return CoursesByLevel(cat)
		}, plain(func(g *query.Group[int, model.Course]) []string {
			return []string{strconv.Itoa(g.Key), courseNames(g.Items())}
		})),
	},
	{
		Name: "level-counts", Category: CategoryGrouping,
		Description: "number of courses per level",
		Run: rows("level-counts", []string{"Level", "Count", "Label"}, func(cat *catalog.Catalog, _ Params) *query.Sequence[LevelCount] {
			return LevelCounts(cat)
		}, plain(func(lc LevelCount) []string {
			return []string{strconv.Itoa(lc.Level), strconv.Itoa(lc.Count), lc.Label()}
		})),
	},
	{
		Name: "course-authors-navigation", Category: CategoryJoining,
		Description: "every course with its author through the author navigation",
		Run: rows("course-authors-navigation", courseAuthorHeader, func(cat *catalog.Catalog, _ Params) *query.Sequence[CourseAuthor] {
			return CourseAuthorsByNavigation(cat)
		}, plain(courseAuthorRow)),
	},
	{
		Name: "course-authors-join", Category: CategoryJoining,
		Description: "courses inner-joined to authors on author id",
		Run: rows("course-authors-join", courseAuthorHeader, func(cat *catalog.Catalog, _ Params) *query.Sequence[CourseAuthor] {
			return CourseAuthorsByJoin(cat)
		}, plain(courseAuthorRow)),
	},
	{
		Name: "author-course-counts", Category: CategoryJoining,
		Description: "every author with the number of courses they wrote",
		Run: rows("author-course-counts", []string{"Author", "Courses"}, func(cat *catalog.Catalog, _ Params) *query.Sequence[AuthorCourseCount] {
			return AuthorCourseCounts(cat)
		}, plain(func(ac AuthorCourseCount) []string {
			return []string{ac.AuthorName, strconv.Itoa(ac.Courses)}
		})),
	},
	{
		Name: "author-course-pairs", Category: CategoryJoining,
		Description: "cross product of authors and courses",
		Run: rows("author-course-pairs", authorCourseHeader, func(cat *catalog.Catalog, _ Params) *query.Sequence[AuthorCourse] {
			return AuthorCoursePairs(cat)
		}, plain(authorCourseRow)),
	},
	{
		Name: "author-course-pairs-flat", Category: CategoryJoining,
		Description: "cross product of authors and courses built with a flat map",
		Run: rows("author-course-pairs-flat", authorCourseHeader, func(cat *catalog.Catalog, _ Params) *query.Sequence[AuthorCourse] {
			return AuthorCoursePairsFlat(cat)
		}, plain(authorCourseRow)),
	},
	{
		Name: "course-page", Category: CategoryPartitioning, Params: []Param{ParamPage, ParamPageSize},
		Description: "one page of courses",
		Run: courseRows("course-page", func(cat *catalog.Catalog, p Params) *query.Sequence[model.Course] {
			return CoursePage(cat, p.Page, p.PageSize)
		}),
	},
	{
		Name: "easiest-course", Category: CategoryElement,
		Description: "first course by level; fails on an empty catalog",
		Run: courseScalar("easiest-course", func(ctx context.Context, cat *catalog.Catalog, _ Params) (model.Course, error) {
			return EasiestCourse(ctx, cat)
		}),
	},
	{
		Name: "easiest-course-or-default", Category: CategoryElement,
		Description: "first course by level, or none",
		Run: courseScalar("easiest-course-or-default", func(ctx context.Context, cat *catalog.Catalog, _ Params) (model.Course, error) {
			return EasiestCourseOrDefault(ctx, cat)
		}),
	},
	{
		Name: "easiest-course-above", Category: CategoryElement, Params: []Param{ParamPriceAbove},
		Description: "first course by level priced above price_above, or none",
		Run: courseScalar("easiest-course-above", func(ctx context.Context, cat *catalog.Catalog, p Params) (model.Course, error) {
			return EasiestCourseAbove(ctx, cat, p.PriceAbove)
		}),
	},
	{
		Name: "hardest-course", Category: CategoryElement,
		Description: "last course by level",
		Run: courseScalar("hardest-course", func(ctx context.Context, cat *catalog.Catalog, _ Params) (model.Course, error) {
			return HardestCourse(ctx, cat)
		}),
	},
	{
		Name: "course-by-id", Category: CategoryElement, Params: []Param{ParamCourseID},
		Description: "the only course with course_id; fails when none or several match",
		Run: courseScalar("course-by-id", func(ctx context.Context, cat *catalog.Catalog, p Params) (model.Course, error) {
			return CourseByID(ctx, cat, p.CourseID)
		}),
	},
	{
		Name: "course-by-id-or-default", Category: CategoryElement, Params: []Param{ParamCourseID},
		Description: "the only course with course_id, or none",
		Run: courseScalar("course-by-id-or-default", func(ctx context.Context, cat *catalog.Catalog, p Params) (model.Course, error) {
			return CourseByIDOrDefault(ctx, cat, p.CourseID)
		}),
	},
	{
		Name: "all-priced-above", Category: CategoryQuantifier, Params: []Param{ParamPriceFloor},
		Description: "whether every course costs more than price_floor",
		Run: scalar("all-priced-above", []string{"All"}, func(ctx context.Context, cat *catalog.Catalog, p Params) (bool, error) {
			return AllPricedAbove(ctx, cat, p.PriceFloor)
		}, boolRow),
	},
	{
		Name: "any-at-level", Category: CategoryQuantifier, Params: []Param{ParamLevel},
		Description: "whether some course is at the level",
		Run: scalar("any-at-level", []string{"Any"}, func(ctx context.Context, cat *catalog.Catalog, p Params) (bool, error) {
			return AnyAtLevel(ctx, cat, p.Level)
		}, boolRow),
	},
	{
		Name: "price-summary", Category: CategoryAggregate,
		Description: "course count with total, max, min and average price",
		Run: scalar("price-summary", []string{"Count", "Total", "Max", "Min", "Average"}, func(ctx context.Context, cat *catalog.Catalog, _ Params) (PriceSummary, error) {
			return SummarizePrices(ctx, cat)
		}, func(s PriceSummary) []string {
			return []string{strconv.Itoa(s.Count), formatPrice(s.Total), formatPrice(s.Max), formatPrice(s.Min), formatPrice(s.Average)}
		}),
	},
}

// All returns every named query in listing order.
func All() []Definition {
	out := make([]Definition, len(definitions))
	copy(out, definitions)
	return out
}

// Lookup returns the query with the given name.
func Lookup(name string) (Definition, error) {
	for _, d := range definitions {
		if d.Name == name {
			return d, nil
		}
	}
	return Definition{}, errors.NotFound("query", name)
}
