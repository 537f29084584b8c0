package queries

import (
	"context"

	"github.com/kbukum/coursequery/catalog"
	"github.com/kbukum/coursequery/model"
	"github.com/kbukum/coursequery/query"
)

// Result types for projections.

// CourseAuthor pairs a course with its author's name.
type CourseAuthor struct {
	CourseName string `json:"course_name"`
	AuthorName string `json:"author_name"`
}

// AuthorCourse is one row of the author x course cross product.
type AuthorCourse struct {
	AuthorName string `json:"author_name"`
	CourseName string `json:"course_name"`
}

// AuthorCourseCount is an author with the number of courses they wrote.
type AuthorCourseCount struct {
	AuthorName string `json:"author_name"`
	Courses    int    `json:"courses"`
}

// LevelCount is a level with the number of courses at it.
type LevelCount struct {
	Level int `json:"level"`
	Count int `json:"count"`
}

// PriceSummary aggregates course prices.
type PriceSummary struct {
	Count   int     `json:"count"`
	Total   float64 `json:"total"`
	Max     float64 `json:"max"`
	Min     float64 `json:"min"`
	Average float64 `json:"average"`
}

// Key extractors and predicates shared by the queries below.

func level(c model.Course) int { return c.Level }
func name(c model.Course) string { return c.Name }
func price(c model.Course) float64 { return c.FullPrice }
func courseAuthorID(c model.Course) int { return c.AuthorID }
func authorID(a model.Author) int { return a.ID }

func atLevel(l int) func(model.Course) bool {
	return func(c model.Course) bool { return c.Level == l }
}

// writtenBy navigates to the course's author rather than comparing AuthorID,
// so courses with an unresolved author never match.
func writtenBy(id int) func(model.Course) bool {
	return func(c model.Course) bool { return c.Author != nil && c.Author.ID == id }
}

// --- Restriction ---

// CoursesAtLevelBy returns the author's courses at the given level.
func CoursesAtLevelBy(cat *catalog.Catalog, level, authorID int) *query.Sequence[model.Course] {
	return query.Filter(cat.Courses(), query.And(atLevel(level), writtenBy(authorID)))
}

// CoursesAtLevel returns the courses at the given level.
func CoursesAtLevel(cat *catalog.Catalog, level int) *query.Sequence[model.Course] {
	return query.Filter(cat.Courses(), atLevel(level))
}

// --- Ordering ---

// AuthorCoursesHardestFirst returns the author's courses by level descending,
// then name ascending.
func AuthorCoursesHardestFirst(cat *catalog.Catalog, authorID int) *query.Sequence[model.Course] {
	return query.OrderBy(query.Filter(cat.Courses(), writtenBy(authorID)),
		query.Desc(level),
		query.Asc(name),
	)
}

// LevelCoursesByName returns the courses at a level by name, then level.
func LevelCoursesByName(cat *catalog.Catalog, lvl int) *query.Sequence[model.Course] {
	return query.OrderBy(CoursesAtLevel(cat, lvl), query.Asc(name), query.Asc(level))
}

// LevelCoursesByNameDesc returns the courses at a level by name, then level,
// both descending.
func LevelCoursesByNameDesc(cat *catalog.Catalog, lvl int) *query.Sequence[model.Course] {
	return query.OrderBy(CoursesAtLevel(cat, lvl), query.Desc(name), query.Desc(level))
}

// --- Projection ---

func toCourseAuthor(c model.Course) CourseAuthor {
	return CourseAuthor{CourseName: c.Name, AuthorName: c.AuthorName()}
}

// AuthorCourseNames projects the author's courses, hardest first, to
// course and author names.
func AuthorCourseNames(cat *catalog.Catalog, authorID int) *query.Sequence[CourseAuthor] {
	return query.Map(AuthorCoursesHardestFirst(cat, authorID), toCourseAuthor)
}

// LevelCourseAuthors projects the courses at a level, by name, to course and
// author names.
func LevelCourseAuthors(cat *catalog.Catalog, lvl int) *query.Sequence[CourseAuthor] {
	return query.Map(LevelCoursesByName(cat, lvl), toCourseAuthor)
}

func tagsOf(c model.Course) *query.Sequence[model.Tag] {
	return query.FromSlice(c.Tags)
}

// LevelTagLists returns one tag sequence per course at the level. The result
// is nested: each element is itself a sequence.
func LevelTagLists(cat *catalog.Catalog, lvl int) *query.Sequence[*query.Sequence[model.Tag]] {
	return query.Map(LevelCoursesByName(cat, lvl), tagsOf)
}

// LevelTags returns the tags of the courses at the level as one flat sequence.
func LevelTags(cat *catalog.Catalog, lvl int) *query.Sequence[model.Tag] {
	return query.FlatMap(LevelCoursesByName(cat, lvl), tagsOf)
}

// LevelDistinctTags is LevelTags without repeats, in first-seen order.
func LevelDistinctTags(cat *catalog.Catalog, lvl int) *query.Sequence[model.Tag] {
	return query.Distinct(LevelTags(cat, lvl))
}

// --- Grouping ---

// CoursesByLevel groups the courses by level in first-seen level order.
func CoursesByLevel(cat *catalog.Catalog) *query.Sequence[*query.Group[int, model.Course]] {
	return query.GroupBy(cat.Courses(), level)
}

// LevelCounts counts the courses per level.
func LevelCounts(cat *catalog.Catalog) *query.Sequence[LevelCount] {
	return query.Map(CoursesByLevel(cat), func(g *query.Group[int, model.Course]) LevelCount {
		return LevelCount{Level: g.Key, Count: g.Len()}
	})
}

// --- Joining ---

// CourseAuthorsByNavigation projects every course through its Author
// navigation. Courses with an unresolved author keep an empty author name.
func CourseAuthorsByNavigation(cat *catalog.Catalog) *query.Sequence[CourseAuthor] {
	return query.Map(cat.Courses(), toCourseAuthor)
}

// CourseAuthorsByJoin inner-joins courses to authors on AuthorID. Courses
// with an unknown author are dropped.
func CourseAuthorsByJoin(cat *catalog.Catalog) *query.Sequence[CourseAuthor] {
	return query.Join(cat.Courses(), cat.Authors(), courseAuthorID, authorID,
		func(c model.Course, a model.Author) CourseAuthor {
			return CourseAuthor{CourseName: c.Name, AuthorName: a.Name}
		},
	)
}

// AuthorCourseCounts group-joins authors to their courses. Authors without
// courses are kept with a count of zero.
func AuthorCourseCounts(cat *catalog.Catalog) *query.Sequence[AuthorCourseCount] {
	return query.GroupJoin(cat.Authors(), cat.Courses(), authorID, courseAuthorID,
		func(a model.Author, g *query.Group[int, model.Course]) AuthorCourseCount {
			return AuthorCourseCount{AuthorName: a.Name, Courses: g.Len()}
		},
	)
}

func toAuthorCourse(a model.Author, c model.Course) AuthorCourse {
	return AuthorCourse{AuthorName: a.Name, CourseName: c.Name}
}

// AuthorCoursePairs is the cross product of authors and courses.
func AuthorCoursePairs(cat *catalog.Catalog) *query.Sequence[AuthorCourse] {
	return query.CrossJoin(cat.Authors(), cat.Courses(), toAuthorCourse)
}

// AuthorCoursePairsFlat builds the same cross product by flat-mapping every
// author onto the full course sequence.
func AuthorCoursePairsFlat(cat *catalog.Catalog) *query.Sequence[AuthorCourse] {
	return query.FlatMapWith(cat.Authors(),
		func(model.Author) *query.Sequence[model.Course] { return cat.Courses() },
		toAuthorCourse,
	)
}

// --- Partitioning ---

// CoursePage returns one page of courses in catalog order. Pages start at 1.
func CoursePage(cat *catalog.Catalog, page, size int) *query.Sequence[model.Course] {
	return query.Page(cat.Courses(), page, size)
}

// --- Element operators ---

// ByLevel orders the courses by level, keeping catalog order within a level.
func ByLevel(cat *catalog.Catalog) *query.Sequence[model.Course] {
	return query.OrderBy(cat.Courses(), query.Asc(level))
}

// EasiestCourse returns the first course by level.
func EasiestCourse(ctx context.Context, cat *catalog.Catalog) (model.Course, error) {
	return query.First(ctx, ByLevel(cat))
}

// EasiestCourseOrDefault is EasiestCourse returning the zero Course when the
// catalog is empty.
func EasiestCourseOrDefault(ctx context.Context, cat *catalog.Catalog) (model.Course, error) {
	return query.FirstOrDefault(ctx, ByLevel(cat))
}

// EasiestCourseAbove returns the first course by level priced above minPrice,
// or the zero Course when there is none.
func EasiestCourseAbove(ctx context.Context, cat *catalog.Catalog, minPrice float64) (model.Course, error) {
	return query.FirstOrDefault(ctx, ByLevel(cat), func(c model.Course) bool { return c.FullPrice > minPrice })
}

// HardestCourse returns the last course by level.
func HardestCourse(ctx context.Context, cat *catalog.Catalog) (model.Course, error) {
	return query.Last(ctx, ByLevel(cat))
}

func withID(id int) func(model.Course) bool {
	return func(c model.Course) bool { return c.ID == id }
}

// CourseByID returns the only course with the ID.
func CourseByID(ctx context.Context, cat *catalog.Catalog, id int) (model.Course, error) {
	return query.Single(ctx, cat.Courses(), withID(id))
}

// CourseByIDOrDefault is CourseByID returning the zero Course when no course
// has the ID.
func CourseByIDOrDefault(ctx context.Context, cat *catalog.Catalog, id int) (model.Course, error) {
	return query.SingleOrDefault(ctx, cat.Courses(), withID(id))
}

// --- Quantifiers ---

// AllPricedAbove reports whether every course costs more than floor.
func AllPricedAbove(ctx context.Context, cat *catalog.Catalog, floor float64) (bool, error) {
	return query.All(ctx, cat.Courses(), func(c model.Course) bool { return c.FullPrice > floor })
}

// AnyAtLevel reports whether some course is at the level.
func AnyAtLevel(ctx context.Context, cat *catalog.Catalog, lvl int) (bool, error) {
	return query.Any(ctx, cat.Courses(), atLevel(lvl))
}

// --- Aggregates ---

// SummarizePrices counts the courses and aggregates their prices. An empty
// catalog fails with EMPTY_SEQUENCE from Max.
func SummarizePrices(ctx context.Context, cat *catalog.Catalog) (PriceSummary, error) {
	var s PriceSummary
	var err error
	if s.Count, err = query.Count(ctx, cat.Courses()); err != nil {
		return PriceSummary{}, err
	}
	if s.Total, err = query.Sum(ctx, cat.Courses(), price); err != nil {
		return PriceSummary{}, err
	}
	if s.Max, err = query.Max(ctx, cat.Courses(), price); err != nil {
		return PriceSummary{}, err
	}
	if s.Min, err = query.Min(ctx, cat.Courses(), price); err != nil {
		return PriceSummary{}, err
	}
	if s.Average, err = query.Average(ctx, cat.Courses(), price); err != nil {
		return PriceSummary{}, err
	}
	return s, nil
}
