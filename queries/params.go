package queries

import "github.com/kbukum/coursequery/validation"

// Params are the inputs the named queries read. Each query uses only the
// fields it needs.
type Params struct {
	AuthorID   int     `mapstructure:"author_id"`
	CourseID   int     `mapstructure:"course_id"`
	Level      int     `mapstructure:"level"`
	Page       int     `mapstructure:"page"`
	PageSize   int     `mapstructure:"page_size"`
	PriceAbove float64 `mapstructure:"price_above"`
	PriceFloor float64 `mapstructure:"price_floor"`
}

// DefaultParams returns the values the demo queries were written for.
func DefaultParams() Params {
	return Params{
		AuthorID:   1,
		CourseID:   1,
		Level:      1,
		Page:       2,
		PageSize:   10,
		PriceAbove: 100,
		PriceFloor: 10,
	}
}

// MaxPageSize bounds Params.PageSize.
const MaxPageSize = 1000

// Param names a Params field by its config key.
type Param string

const (
	ParamAuthorID   Param = "author_id"
	ParamCourseID   Param = "course_id"
	ParamLevel      Param = "level"
	ParamPage       Param = "page"
	ParamPageSize   Param = "page_size"
	ParamPriceAbove Param = "price_above"
	ParamPriceFloor Param = "price_floor"
)

var allParams = []Param{
	ParamAuthorID, ParamCourseID, ParamLevel, ParamPage,
	ParamPageSize, ParamPriceAbove, ParamPriceFloor,
}

// Validate checks the range of every parameter.
func (p Params) Validate() error {
	return p.ValidateFields(allParams...)
}

// ValidateFields checks the ranges of the named parameters and ignores the
// rest.
func (p Params) ValidateFields(fields ...Param) error {
	v := validation.New()
	for _, f := range fields {
		name := string(f)
		switch f {
		case ParamAuthorID:
			v.Min(name, p.AuthorID, 1)
		case ParamCourseID:
			v.Min(name, p.CourseID, 1)
		case ParamLevel:
			v.Min(name, p.Level, 1)
		case ParamPage:
			v.Min(name, p.Page, 1)
		case ParamPageSize:
			v.Range(name, p.PageSize, 1, MaxPageSize)
		case ParamPriceAbove:
			v.NonNegative(name, p.PriceAbove)
		case ParamPriceFloor:
			v.NonNegative(name, p.PriceFloor)
		}
	}
	return v.Err()
}
