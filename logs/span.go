package logs

// Span tags every log record emitted under one pipeline run, so the
// records of a single file's scan/parse/compile/run can be correlated.
type Span string

type spanKeyType struct{}

// SpanKey is the context key carrying the current Span.
var SpanKey spanKeyType
