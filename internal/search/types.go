// Package search finds query matches inside preview lines.
package search

// MatchSpan is a half-open rune range [Start, End) within a line.
type MatchSpan struct {
	Start int
	End   int
}

// LineMatch lists the matched spans of one line.
type LineMatch struct {
	Line  int
	Spans []MatchSpan
}
