// Package cleaner normalizes extracted document text before structure
// building: page-number artifacts, repeated headers/footers, watermarks,
// bullet styles, spacing, and mojibake.
package cleaner

import (
	"fmt"
	"regexp"
	"strings"
)

// Options selects which cleaning passes run.
type Options struct {
	RemovePageNumbers    bool
	RemoveHeadersFooters bool
	RemoveRepeatedTitles bool
	RemoveWatermarks     bool
	NormalizeBullets     bool
	NormalizeSpacing     bool
	FixEncoding          bool
}

// DefaultOptions enables every pass.
func DefaultOptions() Options {
	return Options{
		RemovePageNumbers:    true,
		RemoveHeadersFooters: true,
		RemoveRepeatedTitles: true,
		RemoveWatermarks:     true,
		NormalizeBullets:     true,
		NormalizeSpacing:     true,
		FixEncoding:          true,
	}
}

// Result reports what cleaning changed.
type Result struct {
	OriginalText string
	CleanedText  string
	RemovedItems map[string]int
	IssuesFixed  []string
}

// Page-artifact patterns: standalone labels, bare numbers, separator
// rules, bracketed page refs.
var (
	pageLabelRe        = regexp.MustCompile(`^\s*[Pp]age\s+\d+\s*$`)
	standaloneNumberRe = regexp.MustCompile(`^\s*(\d+)\s*$`)
	dashRuleRe         = regexp.MustCompile(`^\s*[-–—]+\s*$`)
	bracketNumberRe    = regexp.MustCompile(`^\s*\[\d+\]\s*$`)

	headingMarkerLineRe = regexp.MustCompile(`^\[HEADING\s+\d+\]\s+(.+)$`)

	watermarkRes = []*regexp.Regexp{
		regexp.MustCompile(`©\s*20\d{2}`),
		regexp.MustCompile(`(?i)confidential`),
		regexp.MustCompile(`(?i)draft`),
		regexp.MustCompile(`(?i)internal\s+only`),
		regexp.MustCompile(`(?i)not\s+for\s+distribution`),
		regexp.MustCompile(`(?i)proprietary`),
	}

	bulletStyleRes = []*regexp.Regexp{
		regexp.MustCompile(`^\s*[•·▪▸▹►]\s+`),
		regexp.MustCompile(`^\s*[–—]\s+`),
		regexp.MustCompile(`^\s*\*\s+`),
		regexp.MustCompile(`^\s*\++\s+`),
	}

	multiSpaceRe = regexp.MustCompile(` {2,}`)
)

var encodingFixes = []struct {
	old string
	new string
}{
	{"“", `"`}, {"”", `"`},
	{"‘", "'"}, {"’", "'"},
	{"…", "..."},
	{"ﬁ", "fi"}, {"ﬂ", "fl"},
	{"ﬀ", "ff"}, {"ﬃ", "ffi"}, {"ﬄ", "ffl"},
}

// Clean runs the enabled passes in a fixed order and reports every change.
func Clean(text string, opts Options) Result {
	result := Result{
		OriginalText: text,
		RemovedItems: make(map[string]int),
	}

	cleaned := text
	record := func(key string, n int) {
		if n > 0 {
			result.RemovedItems[key] = n
			result.IssuesFixed = append(result.IssuesFixed, fmt.Sprintf("%s: %d", key, n))
		}
	}

	if opts.RemovePageNumbers {
		var n int
		cleaned, n = removePageNumbers(cleaned)
		record("page_numbers", n)
	}
	if opts.RemoveHeadersFooters {
		var n int
		cleaned, n = removeRepeatedLines(cleaned)
		record("headers_footers", n)
	}
	if opts.RemoveRepeatedTitles {
		var n int
		cleaned, n = removeRepeatedTitles(cleaned)
		record("repeated_titles", n)
	}
	if opts.RemoveWatermarks {
		var n int
		cleaned, n = removeWatermarks(cleaned)
		record("watermarks", n)
	}
	if opts.NormalizeBullets {
		var n int
		cleaned, n = normalizeBullets(cleaned)
		record("bullets_normalized", n)
	}
	if opts.FixEncoding {
		var n int
		cleaned, n = fixEncoding(cleaned)
		record("encoding_fixes", n)
	}
	if opts.NormalizeSpacing {
		var n int
		cleaned, n = normalizeSpacing(cleaned)
		record("spacing_fixes", n)
	}

	result.CleanedText = cleaned
	return result
}

// removePageNumbers drops lines that are page labels, short standalone
// numbers, separator rules, or bracketed page references.
func removePageNumbers(text string) (string, int) {
	lines := strings.Split(text, "\n")
	kept := make([]string, 0, len(lines))
	removed := 0

	for _, line := range lines {
		switch {
		case pageLabelRe.MatchString(line),
			dashRuleRe.MatchString(line),
			bracketNumberRe.MatchString(line):
			removed++
			continue
		}
		if m := standaloneNumberRe.FindStringSubmatch(line); m != nil && len(m[1]) <= 3 {
			removed++
			continue
		}
		kept = append(kept, line)
	}
	return strings.Join(kept, "\n"), removed
}

// removeRepeatedLines removes header/footer candidates: mid-length lines
// that repeat verbatim at least three times.
func removeRepeatedLines(text string) (string, int) {
	lines := strings.Split(text, "\n")
	counts := make(map[string]int)
	for _, line := range lines {
		stripped := strings.TrimSpace(line)
		if len(stripped) > 10 && len(stripped) < 200 && !strings.Contains(stripped, "[HEADING") {
			counts[stripped]++
		}
	}

	kept := make([]string, 0, len(lines))
	removed := 0
	seen := make(map[string]bool)
	for _, line := range lines {
		stripped := strings.TrimSpace(line)
		if counts[stripped] >= 3 {
			// First occurrence stays; later ones are header/footer noise.
			if seen[stripped] {
				removed++
				continue
			}
			seen[stripped] = true
		}
		kept = append(kept, line)
	}
	return strings.Join(kept, "\n"), removed
}

// removeRepeatedTitles drops duplicate [HEADING n] lines, keeping the
// first occurrence of each title.
func removeRepeatedTitles(text string) (string, int) {
	lines := strings.Split(text, "\n")
	counts := make(map[string]int)
	for _, line := range lines {
		if m := headingMarkerLineRe.FindStringSubmatch(line); m != nil {
			counts[strings.TrimSpace(m[1])]++
		}
	}

	kept := make([]string, 0, len(lines))
	removed := 0
	seen := make(map[string]bool)
	for _, line := range lines {
		if m := headingMarkerLineRe.FindStringSubmatch(line); m != nil {
			title := strings.TrimSpace(m[1])
			if counts[title] > 1 {
				if seen[title] {
					removed++
					continue
				}
				seen[title] = true
			}
		}
		kept = append(kept, line)
	}
	return strings.Join(kept, "\n"), removed
}

func removeWatermarks(text string) (string, int) {
	removed := 0
	for _, re := range watermarkRes {
		matches := re.FindAllStringIndex(text, -1)
		if len(matches) == 0 {
			continue
		}
		removed += len(matches)
		text = re.ReplaceAllString(text, "")
	}
	return text, removed
}

// normalizeBullets rewrites every recognized bullet style to "- ".
func normalizeBullets(text string) (string, int) {
	lines := strings.Split(text, "\n")
	normalized := 0
	for i, line := range lines {
		for _, re := range bulletStyleRes {
			if re.MatchString(line) {
				lines[i] = re.ReplaceAllString(line, "- ")
				normalized++
				break
			}
		}
	}
	return strings.Join(lines, "\n"), normalized
}

// normalizeSpacing converts tabs, strips trailing whitespace, collapses
// runs of blank lines down to two, and trims trailing blank lines. Two
// blanks survive: downstream block segmentation keys on them.
func normalizeSpacing(text string) (string, int) {
	lines := strings.Split(text, "\n")
	kept := make([]string, 0, len(lines))
	fixed := 0
	blankRun := 0

	for _, line := range lines {
		original := line
		line = strings.ReplaceAll(line, "\t", "    ")
		line = strings.TrimRight(line, " ")
		if line != original {
			fixed++
		}

		if strings.TrimSpace(line) == "" {
			blankRun++
			if blankRun > 2 {
				fixed++
				continue
			}
		} else {
			blankRun = 0
		}
		kept = append(kept, line)
	}

	for len(kept) > 0 && strings.TrimSpace(kept[len(kept)-1]) == "" {
		kept = kept[:len(kept)-1]
		fixed++
	}

	return strings.Join(kept, "\n"), fixed
}

func fixEncoding(text string) (string, int) {
	fixed := 0
	for _, fix := range encodingFixes {
		if n := strings.Count(text, fix.old); n > 0 {
			fixed += n
			text = strings.ReplaceAll(text, fix.old, fix.new)
		}
	}
	if matches := multiSpaceRe.FindAllStringIndex(text, -1); len(matches) > 0 {
		fixed += len(matches)
		text = multiSpaceRe.ReplaceAllString(text, " ")
	}
	return text, fixed
}
