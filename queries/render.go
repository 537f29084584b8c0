package queries

import (
	"strconv"
	"strings"

	"github.com/kbukum/coursequery/model"
)

var courseHeader = []string{"ID", "Name", "Level", "Price", "Author", "Tags"}

func formatPrice(p float64) string {
	return strconv.FormatFloat(p, 'f', 2, 64)
}

func courseRow(c model.Course) []string {
	return []string{
		strconv.Itoa(c.ID),
		c.Name,
		strconv.Itoa(c.Level),
		formatPrice(c.FullPrice),
		c.AuthorName(),
		strings.Join(c.TagNames(), ", "),
	}
}

// courseOrNone renders the zero Course returned by the OrDefault operators
// as a single "none" cell.
func courseOrNone(c model.Course) []string {
	if c.ID == 0 {
		row := make([]string, len(courseHeader))
		row[1] = "(none)"
		return row
	}
	return courseRow(c)
}

func tagNames(tags []model.Tag) string {
	names := make([]string, len(tags))
	for i, t := range tags {
		names[i] = t.Name
	}
	return strings.Join(names, ", ")
}

func courseNames(courses []model.Course) string {
	names := make([]string, len(courses))
	for i, c := range courses {
		names[i] = c.Name
	}
	return strings.Join(names, ", ")
}

// Label renders a level count as "{level}({count})".
func (lc LevelCount) Label() string {
	return strconv.Itoa(lc.Level) + "(" + strconv.Itoa(lc.Count) + ")"
}
