// Package queries holds the named course catalog queries.
//
// Each query exists twice: as a typed function returning a lazy
// *query.Sequence or a scalar, for use from Go, and as a Definition in the
// registry, which evaluates it through an eval.Evaluator and renders the
// elements as string rows for the command line.
//
//	def, err := queries.Lookup("level-counts")
//	if err != nil {
//		return err
//	}
//	res, err := def.Execute(ctx, eval.New(), catalog.Sample(), queries.DefaultParams())
package queries
