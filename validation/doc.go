// Package validation provides record and configuration validation.
//
// It supports both struct tag validation (using the validator library) and
// programmatic validation with error collection. Failures are reported as
// errors.AppError with code INVALID_INPUT and the failing fields in
// Details["fields"].
//
// # Struct Tag Validation
//
//	type Course struct {
//	    Name  string `validate:"required"`
//	    Level int    `validate:"gte=1"`
//	}
//	err := validation.Validate(course)
//
// # Programmatic Validation
//
//	v := validation.New().Required("name", cfg.Name)
//	v.In("output").OneOf("format", cfg.Output.Format, []string{"table", "plain"})
//	v.In("query").Merge(cfg.Query.Validate())
//	return v.Err()
//
// In scopes field names, so the second check reports "output.format". Merge
// folds the failures of a nested Validate into the parent under its scope.
package validation
