package structure

import (
	"regexp"
	"strconv"
	"strings"
)

// HeadingType records which signal matched a heading line.
type HeadingType string

const (
	HeadingFormatted HeadingType = "formatted"
	HeadingMarker    HeadingType = "marker"
	HeadingNumbered  HeadingType = "numbered"
	HeadingKeyword   HeadingType = "keyword"
)

// Heading describes a detected heading line.
type Heading struct {
	Type     HeadingType
	Level    int
	Title    string
	Original string
	Number   string // dotted numeral for numbered headings, e.g. "2.1.3"
}

// Heading patterns. Numbered headings carry their level in the numeral
// (1. = level 1, 1.1 = level 2). Keyword headings are always level 1.
var (
	numberedHeadingRe = regexp.MustCompile(`^(\d+(?:\.\d+)*)\.?\s+(.+)$`)
	headingMarkerRe   = regexp.MustCompile(`^\[HEADING\s+(\d+)\]\s*(.+)$`)

	headingKeywordRes = []*regexp.Regexp{
		regexp.MustCompile(`(?i)^(?:chapter|unit|section|part)\s+\d+`),
		regexp.MustCompile(`(?i)^(?:introduction|conclusion|summary|overview)`),
		regexp.MustCompile(`(?i)^(?:appendix|references|bibliography)`),
	}
)

// DetectHeading classifies a single line. prevLine and nextLine are
// reserved for blank-line-context rules and currently unused. hint is the
// formatting note for this line, nil when the source carried none.
// Returns nil for non-heading lines. First matching signal wins:
// formatted, marker, numbered, keyword. There is no capitalization- or
// length-based inference.
func DetectHeading(line, prevLine, nextLine string, hint *HeadingHint) *Heading {
	_ = prevLine
	_ = nextLine

	stripped := strings.TrimSpace(line)
	if stripped == "" {
		return nil
	}

	if hint != nil && hint.IsHeading {
		level := hint.HeadingLevel
		if level <= 0 {
			level = 2
		}
		return &Heading{
			Type:     HeadingFormatted,
			Level:    level,
			Title:    stripped,
			Original: stripped,
		}
	}

	if m := headingMarkerRe.FindStringSubmatch(stripped); m != nil {
		level, _ := strconv.Atoi(m[1])
		return &Heading{
			Type:     HeadingMarker,
			Level:    level,
			Title:    strings.TrimSpace(m[2]),
			Original: stripped,
		}
	}

	if m := numberedHeadingRe.FindStringSubmatch(stripped); m != nil {
		number := m[1]
		return &Heading{
			Type:     HeadingNumbered,
			Level:    strings.Count(number, ".") + 1,
			Title:    strings.TrimSpace(m[2]),
			Original: stripped,
			Number:   number,
		}
	}

	for _, re := range headingKeywordRes {
		if re.MatchString(stripped) {
			return &Heading{
				Type:     HeadingKeyword,
				Level:    1,
				Title:    stripped,
				Original: stripped,
			}
		}
	}

	return nil
}
