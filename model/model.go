// Package model defines the immutable records the query engine reads:
// authors, the courses they write and the tags each course owns.
package model

// Author writes courses.
type Author struct {
	ID   int    `yaml:"id" json:"id" validate:"required,gt=0"`
	Name string `yaml:"name" json:"name" validate:"required"`
}

// Tag labels a course. A tag belongs to exactly one course.
type Tag struct {
	Name string `yaml:"name" json:"name" validate:"required"`
}

// Course is a catalog entry written by one author.
type Course struct {
	ID        int     `yaml:"id" json:"id" validate:"required,gt=0"`
	Name      string  `yaml:"name" json:"name" validate:"required"`
	Level     int     `yaml:"level" json:"level" validate:"gte=1"`
	FullPrice float64 `yaml:"full_price" json:"full_price" validate:"gte=0"`
	AuthorID  int     `yaml:"author_id" json:"author_id" validate:"required,gt=0"`
	Tags      []Tag   `yaml:"tags" json:"tags" validate:"dive"`

	// Author is the navigation to the author referenced by AuthorID. It is
	// resolved by the catalog and nil when no such author exists.
	Author *Author `yaml:"-" json:"-" validate:"-"`
}

// AuthorName navigates to the course's author. Unresolved authors yield "".
func (c Course) AuthorName() string {
	if c.Author == nil {
		return ""
	}
	return c.Author.Name
}

// HasTag reports whether the course carries a tag with the given name.
func (c Course) HasTag(name string) bool {
	for _, t := range c.Tags {
		if t.Name == name {
			return true
		}
	}
	return false
}

// TagNames returns the names of the course's tags in order.
func (c Course) TagNames() []string {
	names := make([]string, len(c.Tags))
	for i, t := range c.Tags {
		names[i] = t.Name
	}
	return names
}
