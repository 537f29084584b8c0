// Package query provides lazy, pull-based query operators over in-memory
// record sequences.
//
// A Sequence is a factory of Iterators. Operators wrap the upstream
// Sequence in a new one, so composing a query never pulls a value and never
// fails. Work happens only when a terminal (Collect, ForEach, Drain, or an
// element-access / aggregate operator) enumerates the outermost stage, which
// pulls from its upstream one value at a time. Enumerating again re-runs the
// whole chain; nothing is cached between enumerations.
//
// # Operators
//
// Streaming (one upstream pull per output, no buffering):
//
//   - Filter, Map, FlatMap, FlatMapWith, Tap
//   - Skip, Take, Page, SkipWhile, TakeWhile, Chunk
//   - Concat
//   - Distinct, DistinctBy (output streams; the seen-set grows with the
//     number of distinct keys)
//
// Materializing (buffer an input on the first pull):
//
//   - OrderBy: buffers and stable-sorts the whole input
//   - GroupBy, GroupByInto: buckets the whole input before the first group
//   - Join, GroupJoin: index the right input by key; the left side streams
//   - CrossJoin: buffers the right input; the left side streams
//
// Terminals (take a context and return a value):
//
//   - Collect, ForEach, Drain
//   - First, FirstOrDefault, Last, LastOrDefault, Single, SingleOrDefault,
//     ElementAt, ElementAtOrDefault
//   - All, Any, Contains, Count, Sum, Max, Min, Average, Aggregate
//
// Take, First, Any, All, Contains and ElementAt stop pulling as soon as the
// answer is known and close their upstream.
//
// # Errors
//
// Element-access and aggregate operators fail with EMPTY_SEQUENCE when they
// need a value and find none (First, Last, Single, ElementAt, Max, Min,
// Average) and Single/SingleOrDefault fail with MULTIPLE_MATCHES. Count and
// Sum return 0 on an empty sequence. Joins never fail on missing keys.
//
// # Usage
//
//	courses := catalog.Courses()
//	beginner := query.Filter(courses, func(c model.Course) bool { return c.Level == 1 })
//	sorted := query.OrderBy(beginner,
//	    query.Desc(func(c model.Course) int { return c.Level }),
//	    query.Asc(func(c model.Course) string { return c.Name }),
//	)
//	names, err := query.Collect(ctx, query.Map(sorted, func(c model.Course) string { return c.Name }))
package query
