package library

import "strings"

// Splitter turns a combined artist tag value into individual artist names.
// Candidate delimiters are tried in priority order; configured exclusion
// substrings (band names that themselves contain a delimiter) survive
// splitting intact.
type Splitter struct {
	delimiters []string
	exclusions []string
	ignoreCase bool
}

// NewSplitter creates a Splitter. Empty delimiters or exclusions are ignored.
func NewSplitter(delimiters, exclusions []string, ignoreCase bool) *Splitter {
	s := &Splitter{ignoreCase: ignoreCase}
	for _, d := range delimiters {
		if d != "" {
			s.delimiters = append(s.delimiters, d)
		}
	}
	for _, e := range exclusions {
		if e != "" {
			s.exclusions = append(s.exclusions, e)
		}
	}
	return s
}

// SplitField splits a raw artist field. A field that already carries more
// than one element was delimited at the source and passes through unsplit.
// The first delimiter that yields more than one segment wins; if none does,
// the field is returned as-is.
func (s *Splitter) SplitField(field []string) []string {
	if len(field) != 1 {
		return field
	}
	for _, delim := range s.delimiters {
		if parts := s.splitWithExclusions(field[0], delim); len(parts) > 1 {
			return parts
		}
	}
	return field
}

// span is a half-open byte range [start, end) protected from splitting.
type span struct {
	start, end int
}

func (s *Splitter) equalFold(a, b string) bool {
	if s.ignoreCase {
		return strings.EqualFold(a, b)
	}
	return a == b
}

// protectedSpans locates exclusion occurrences greedily left to right: at
// each position the longest matching exclusion wins and consumes its span,
// including any delimiter it straddles.
func (s *Splitter) protectedSpans(in string) []span {
	if len(s.exclusions) == 0 {
		return nil
	}
	var spans []span
	for i := 0; i < len(in); {
		best := 0
		for _, exc := range s.exclusions {
			if len(exc) > best && i+len(exc) <= len(in) && s.equalFold(in[i:i+len(exc)], exc) {
				best = len(exc)
			}
		}
		if best > 0 {
			spans = append(spans, span{i, i + best})
			i += best
		} else {
			i++
		}
	}
	return spans
}

func overlaps(spans []span, start, end int) bool {
	for _, sp := range spans {
		if start < sp.end && sp.start < end {
			return true
		}
	}
	return false
}

// splitWithExclusions splits in on every occurrence of delim that does not
// fall inside a protected exclusion span.
func (s *Splitter) splitWithExclusions(in, delim string) []string {
	if delim == "" {
		return []string{in}
	}
	protected := s.protectedSpans(in)
	var parts []string
	start := 0
	for i := 0; i+len(delim) <= len(in); {
		if in[i:i+len(delim)] == delim && !overlaps(protected, i, i+len(delim)) {
			parts = append(parts, in[start:i])
			i += len(delim)
			start = i
			continue
		}
		i++
	}
	return append(parts, in[start:])
}
