package search

import "unicode"

// MergeMatchSpans joins overlapping or touching spans. Input must be sorted
// by Start.
func MergeMatchSpans(spans []MatchSpan) []MatchSpan {
	if len(spans) == 0 {
		return nil
	}
	merged := make([]MatchSpan, 0, len(spans))
	current := spans[0]
	for i := 1; i < len(spans); i++ {
		next := spans[i]
		if next.Start <= current.End {
			if next.End > current.End {
				current.End = next.End
			}
			continue
		}
		merged = append(merged, current)
		current = next
	}
	merged = append(merged, current)
	return merged
}

// FindInLines returns the lines containing query, compared case-insensitively.
// Spans are rune offsets so renderers can map them onto cells directly.
func FindInLines(lines []string, query string) []LineMatch {
	needle := foldRunes(query)
	if len(needle) == 0 {
		return nil
	}

	var matches []LineMatch
	for idx, line := range lines {
		hay := foldRunes(line)
		var spans []MatchSpan
		for start := 0; start+len(needle) <= len(hay); {
			if equalRunes(hay[start:start+len(needle)], needle) {
				spans = append(spans, MatchSpan{Start: start, End: start + len(needle)})
				start += len(needle)
				continue
			}
			start++
		}
		if len(spans) > 0 {
			matches = append(matches, LineMatch{Line: idx, Spans: MergeMatchSpans(spans)})
		}
	}
	return matches
}

func foldRunes(text string) []rune {
	runes := []rune(text)
	for i, r := range runes {
		runes[i] = unicode.ToLower(r)
	}
	return runes
}

func equalRunes(a, b []rune) bool {
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
