package structure

import (
	"regexp"
	"strings"
)

// Definition holds the term/definition pair extracted from a definition line.
type Definition struct {
	Term       string
	Definition string
}

// Content block patterns, loaded once and shared read-only across calls.
var (
	definitionRes = []*regexp.Regexp{
		regexp.MustCompile(`^([A-Z][^:]{1,50}):\s+(.+)$`),
		regexp.MustCompile(`(?i)^([A-Z][^.]{1,50})\s+is\s+defined\s+as\s+(.+)$`),
		regexp.MustCompile(`(?i)^([A-Z][^.]{1,50})\s+refers?\s+to\s+(.+)$`),
		regexp.MustCompile(`(?i)^Definition\s+of\s+([^:]+):\s*(.*)$`),
	}

	bulletRe       = regexp.MustCompile(`^\s*[•·▪▸▹►\-\*]\s+(.+)$`)
	numberedListRe = regexp.MustCompile(`^\s*\d+[\).]\s+(.+)$`)
)

// IdentifyDefinition checks whether a line matches one of the definition
// patterns and extracts the term. Returns nil for non-definition lines.
func IdentifyDefinition(line string) *Definition {
	stripped := strings.TrimSpace(line)
	for _, re := range definitionRes {
		if m := re.FindStringSubmatch(stripped); m != nil {
			def := Definition{Term: strings.TrimSpace(m[1])}
			if len(m) > 2 {
				def.Definition = strings.TrimSpace(m[2])
			}
			return &def
		}
	}
	return nil
}

// IdentifyContentType classifies a block of non-heading lines. A block is
// a definition when its first line matches a definition pattern; otherwise
// bullet or numbered-list lines must exceed half the block to win.
func IdentifyContentType(lines []string) ContentType {
	if len(lines) == 0 {
		return ContentParagraph
	}

	if IdentifyDefinition(lines[0]) != nil {
		return ContentDefinition
	}

	bulletCount := 0
	listCount := 0
	for _, line := range lines {
		if bulletRe.MatchString(line) {
			bulletCount++
		} else if numberedListRe.MatchString(line) {
			listCount++
		}
	}

	if float64(bulletCount) > float64(len(lines))*0.5 {
		return ContentBulletBlock
	}
	if float64(listCount) > float64(len(lines))*0.5 {
		return ContentList
	}
	return ContentParagraph
}

// joinBlockContent assembles the content string for a classified block.
// Bullet and list items are stored without their markers; everything else
// keeps its raw lines.
func joinBlockContent(lines []string, ct ContentType) string {
	switch ct {
	case ContentBulletBlock:
		return joinStripped(lines, bulletRe)
	case ContentList:
		return joinStripped(lines, numberedListRe)
	default:
		return strings.Join(lines, "\n")
	}
}

func joinStripped(lines []string, marker *regexp.Regexp) string {
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		if m := marker.FindStringSubmatch(line); m != nil {
			out = append(out, m[1])
		} else {
			out = append(out, line)
		}
	}
	return strings.Join(out, "\n")
}

// blockTitle derives the title for a content block: the extracted term for
// definitions, otherwise the first line truncated to 50 runes.
func blockTitle(lines []string, ct ContentType) string {
	if len(lines) == 0 {
		return ""
	}
	if ct == ContentDefinition {
		if def := IdentifyDefinition(lines[0]); def != nil {
			return def.Term
		}
		return ""
	}
	first := []rune(lines[0])
	if len(first) > 50 {
		return string(first[:50]) + "..."
	}
	return string(first)
}
