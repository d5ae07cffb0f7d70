package search

// Options configures matching behavior
type Options struct {
	// CaseSensitive disables Unicode case folding
	CaseSensitive bool
}

// Span is a byte range [Start, End) of a match in the original text
type Span struct {
	Start int
	End   int
}
