package logs

// Span identifies one logical unit of work, such as a single program
// run, across log records.
type Span string

type spanKeyType struct{}

var SpanKey spanKeyType
