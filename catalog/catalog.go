package catalog

import (
	"fmt"
	"slices"
	"strconv"

	"github.com/cespare/xxhash/v2"

	"github.com/kbukum/coursequery/errors"
	"github.com/kbukum/coursequery/logger"
	"github.com/kbukum/coursequery/model"
	"github.com/kbukum/coursequery/query"
	"github.com/kbukum/coursequery/validation"
)

// Catalog is an immutable snapshot of authors and courses.
type Catalog struct {
	authors []model.Author
	courses []model.Course
	index   map[int]int // author ID -> position in authors
	digest  uint64
	source  string
}

// Stats summarizes a catalog.
type Stats struct {
	Source     string `json:"source"`
	Authors    int    `json:"authors"`
	Courses    int    `json:"courses"`
	Tags       int    `json:"tags"`
	Unresolved int    `json:"unresolved"`
	Digest     string `json:"digest"`
}

type options struct {
	log    *logger.Logger
	source string
}

// Option configures catalog construction.
type Option func(*options)

// WithLogger sets the logger used for load diagnostics.
func WithLogger(l *logger.Logger) Option {
	return func(o *options) { o.log = l }
}

// WithSource names where the records came from, e.g. a file path.
func WithSource(source string) Option {
	return func(o *options) { o.source = source }
}

// New validates and copies the records into a catalog.
//
// Every record must pass struct validation and IDs must be unique per
// collection. A course whose AuthorID matches no author is kept with a nil
// Author navigation; inner joins on author drop it.
func New(authors []model.Author, courses []model.Course, opts ...Option) (*Catalog, error) {
	o := options{source: "memory"}
	for _, opt := range opts {
		opt(&o)
	}
	if o.log == nil {
		o.log = logger.Get("catalog")
	}

	c := &Catalog{
		authors: make([]model.Author, len(authors)),
		courses: make([]model.Course, len(courses)),
		index:   make(map[int]int, len(authors)),
		source:  o.source,
	}

	for i, a := range authors {
		if err := validation.Validate(a); err != nil {
			return nil, recordError(err, "author", i)
		}
		if _, dup := c.index[a.ID]; dup {
			return nil, errors.AlreadyExists("author", strconv.Itoa(a.ID)).WithDetail("index", i)
		}
		c.index[a.ID] = i
		c.authors[i] = a
	}

	seen := make(map[int]struct{}, len(courses))
	for i, course := range courses {
		if err := validation.Validate(course); err != nil {
			return nil, recordError(err, "course", i)
		}
		if _, dup := seen[course.ID]; dup {
			return nil, errors.AlreadyExists("course", strconv.Itoa(course.ID)).WithDetail("index", i)
		}
		seen[course.ID] = struct{}{}

		course.Tags = append([]model.Tag(nil), course.Tags...)
		course.Author = nil
		if pos, ok := c.index[course.AuthorID]; ok {
			course.Author = &c.authors[pos]
		} else {
			o.log.Warn("course references unknown author", logger.Fields(
				"course_id", course.ID,
				"author_id", course.AuthorID,
			))
		}
		c.courses[i] = course
	}

	c.digest = digest(c.authors, c.courses)
	o.log.Debug("catalog built", logger.Fields(
		logger.FieldDataset, c.source,
		"authors", len(c.authors),
		"courses", len(c.courses),
		logger.FieldDigest, c.Snapshot(),
	))
	return c, nil
}

// MustNew is like New but panics on invalid records. Use it for fixed datasets.
func MustNew(authors []model.Author, courses []model.Course, opts ...Option) *Catalog {
	c, err := New(authors, courses, opts...)
	if err != nil {
		panic(err)
	}
	return c
}

func recordError(err error, record string, index int) error {
	appErr, ok := errors.AsAppError(err)
	if !ok {
		return errors.Internal(err)
	}
	appErr.Message = fmt.Sprintf("%s[%d]: %s", record, index, appErr.Message)
	return appErr.WithDetail("record", record).WithDetail("index", index)
}

// Courses returns a restartable sequence over the courses in input order.
// Each yielded course has its own Tags slice and Author, so writes through
// them leave the snapshot untouched.
func (c *Catalog) Courses() *query.Sequence[model.Course] {
	return query.Map(query.FromSlice(c.courses), detach)
}

func detach(course model.Course) model.Course {
	course.Tags = slices.Clone(course.Tags)
	if course.Author != nil {
		author := *course.Author
		course.Author = &author
	}
	return course
}

// Authors returns a restartable sequence over the authors in input order.
func (c *Catalog) Authors() *query.Sequence[model.Author] {
	return query.FromSlice(c.authors)
}

// AuthorByID returns the author with the given ID.
func (c *Catalog) AuthorByID(id int) (model.Author, error) {
	pos, ok := c.index[id]
	if !ok {
		return model.Author{}, errors.NotFound("author", strconv.Itoa(id))
	}
	return c.authors[pos], nil
}

// Snapshot returns the hex digest identifying the catalog contents.
// Catalogs built from equal records share a snapshot.
func (c *Catalog) Snapshot() string {
	return fmt.Sprintf("%016x", c.digest)
}

// Source returns where the records were loaded from.
func (c *Catalog) Source() string {
	return c.source
}

// Stats returns record counts and the snapshot digest.
func (c *Catalog) Stats() Stats {
	s := Stats{
		Source:  c.source,
		Authors: len(c.authors),
		Courses: len(c.courses),
		Digest:  c.Snapshot(),
	}
	for _, course := range c.courses {
		s.Tags += len(course.Tags)
		if course.Author == nil {
			s.Unresolved++
		}
	}
	return s
}

// digest hashes a canonical line encoding of the records.
func digest(authors []model.Author, courses []model.Course) uint64 {
	h := xxhash.New()
	var buf []byte
	for _, a := range authors {
		buf = buf[:0]
		buf = append(buf, 'a', '|')
		buf = strconv.AppendInt(buf, int64(a.ID), 10)
		buf = append(buf, '|')
		buf = strconv.AppendQuote(buf, a.Name)
		buf = append(buf, '\n')
		_, _ = h.Write(buf)
	}
	for _, course := range courses {
		buf = buf[:0]
		buf = append(buf, 'c', '|')
		buf = strconv.AppendInt(buf, int64(course.ID), 10)
		buf = append(buf, '|')
		buf = strconv.AppendQuote(buf, course.Name)
		buf = append(buf, '|')
		buf = strconv.AppendInt(buf, int64(course.Level), 10)
		buf = append(buf, '|')
		buf = strconv.AppendFloat(buf, course.FullPrice, 'g', -1, 64)
		buf = append(buf, '|')
		buf = strconv.AppendInt(buf, int64(course.AuthorID), 10)
		for _, t := range course.Tags {
			buf = append(buf, '|')
			buf = strconv.AppendQuote(buf, t.Name)
		}
		buf = append(buf, '\n')
		_, _ = h.Write(buf)
	}
	return h.Sum64()
}
