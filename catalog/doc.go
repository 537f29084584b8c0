// Package catalog provides the record collections queries run against.
//
// A Catalog is built once, from Go values (New), a YAML dataset (Load,
// LoadFile) or the built-in demo data (Sample), and never changes afterwards.
// Construction validates every record, rejects duplicate IDs and resolves each
// course's Author navigation. Courses and Authors expose the records as
// restartable query sequences:
//
//	cat, err := catalog.LoadFile("courses.yml")
//	beginners := query.Filter(cat.Courses(), func(c model.Course) bool { return c.Level == 1 })
package catalog
