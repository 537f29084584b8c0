package catalog

import (
	stderrors "errors"
	"io"
	"os"

	"go.yaml.in/yaml/v3"

	"github.com/kbukum/coursequery/errors"
	"github.com/kbukum/coursequery/model"
)

// Dataset is the YAML layout of a catalog file.
//
//	authors:
//	  - id: 1
//	    name: Mosh Hamedani
//	courses:
//	  - id: 1
//	    name: C# Basics
//	    level: 1
//	    full_price: 49
//	    author_id: 1
//	    tags: [{name: c#}]
type Dataset struct {
	Authors []model.Author `yaml:"authors"`
	Courses []model.Course `yaml:"courses"`
}

// Load decodes a YAML dataset from r and builds a catalog from it.
// Unknown keys are rejected. Empty input yields an empty catalog.
func Load(r io.Reader, opts ...Option) (*Catalog, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var ds Dataset
	if err := dec.Decode(&ds); err != nil && !stderrors.Is(err, io.EOF) {
		return nil, errors.InvalidInput("dataset", "malformed YAML").WithCause(err)
	}
	return New(ds.Authors, ds.Courses, opts...)
}

// LoadFile reads a YAML dataset from path.
func LoadFile(path string, opts ...Option) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		if stderrors.Is(err, os.ErrNotExist) {
			return nil, errors.NotFound("dataset", path).WithCause(err)
		}
		return nil, errors.Internal(err).WithDetail("path", path)
	}
	defer f.Close()

	return Load(f, append([]Option{WithSource(path)}, opts...)...)
}

// Dataset returns a copy of the catalog records in loadable form.
func (c *Catalog) Dataset() Dataset {
	ds := Dataset{
		Authors: append([]model.Author(nil), c.authors...),
		Courses: make([]model.Course, len(c.courses)),
	}
	for i, course := range c.courses {
		course.Author = nil
		course.Tags = append([]model.Tag(nil), course.Tags...)
		ds.Courses[i] = course
	}
	return ds
}

// WriteYAML encodes the catalog records to w in the format Load reads.
func (c *Catalog) WriteYAML(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(c.Dataset()); err != nil {
		return errors.Internal(err)
	}
	return enc.Close()
}
