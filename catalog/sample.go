package catalog

import (
	"github.com/kbukum/coursequery/logger"
	"github.com/kbukum/coursequery/model"
)

func tags(names ...string) []model.Tag {
	out := make([]model.Tag, len(names))
	for i, n := range names {
		out[i] = model.Tag{Name: n}
	}
	return out
}

// SampleAuthors returns the demo authors.
func SampleAuthors() []model.Author {
	return []model.Author{
		{ID: 1, Name: "Mosh Hamedani"},
		{ID: 2, Name: "Anthony Alicea"},
		{ID: 3, Name: "Eric Wise"},
		{ID: 4, Name: "Tom Owsiak"},
		{ID: 5, Name: "John Smith"},
	}
}

// SampleCourses returns the demo courses. Author 5 has no courses.
func SampleCourses() []model.Course {
	return []model.Course{
		{ID: 1, Name: "C# Basics", Level: 1, FullPrice: 49, AuthorID: 1, Tags: tags("c#")},
		{ID: 2, Name: "C# Intermediate", Level: 2, FullPrice: 49, AuthorID: 1, Tags: tags("c#", "oop")},
		{ID: 3, Name: "C# Advanced", Level: 3, FullPrice: 69, AuthorID: 1, Tags: tags("c#", "linq")},
		{ID: 4, Name: "Javascript: Understanding the Weird Parts", Level: 2, FullPrice: 149, AuthorID: 2, Tags: tags("javascript")},
		{ID: 5, Name: "Learn AngularJS Fast", Level: 2, FullPrice: 99, AuthorID: 2, Tags: tags("javascript", "angularjs")},
		{ID: 6, Name: "Learn and Understand NodeJS", Level: 2, FullPrice: 149, AuthorID: 2, Tags: tags("javascript", "nodejs")},
		{ID: 7, Name: "Programming for Complete Beginners", Level: 1, FullPrice: 45, AuthorID: 3, Tags: tags("c#")},
		{ID: 8, Name: "A 16 Hour C# Course with Visual Studio 2013", Level: 3, FullPrice: 150, AuthorID: 4, Tags: tags("c#")},
		{ID: 9, Name: "Learn JavaScript Through Visual Studio 2013", Level: 1, FullPrice: 20, AuthorID: 4, Tags: tags("javascript")},
		{ID: 10, Name: "Unit Testing for C# Developers", Level: 2, FullPrice: 59, AuthorID: 1, Tags: tags("c#", "oop")},
		{ID: 11, Name: "Clean Code", Level: 1, FullPrice: 39, AuthorID: 1, Tags: tags("oop")},
		{ID: 12, Name: "Entity Framework in Depth", Level: 2, FullPrice: 79, AuthorID: 1, Tags: tags("c#", "linq")},
	}
}

// Sample returns the built-in demo catalog.
func Sample() *Catalog {
	return MustNew(SampleAuthors(), SampleCourses(), WithSource("sample"), WithLogger(logger.Nop()))
}
