package extractor

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/dgallion1/docstruct/internal/structure"
	"github.com/fumiama/go-docx"
)

// DOCXExtractor handles .docx files. Heading styles become formatting
// notes keyed by line index, so the structure builder can use the native
// styling signal instead of textual patterns.
type DOCXExtractor struct{}

func (e *DOCXExtractor) Extract(r io.Reader, filename string) (*Result, error) {
	// go-docx needs a ReadSeeker+size, so write to temp file.
	tmp, err := os.CreateTemp("", "docstruct-docx-*.docx")
	if err != nil {
		return nil, fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	size, err := io.Copy(tmp, r)
	if err != nil {
		tmp.Close()
		return nil, fmt.Errorf("write temp file: %w", err)
	}
	if _, err := tmp.Seek(0, io.SeekStart); err != nil {
		tmp.Close()
		return nil, fmt.Errorf("seek temp file: %w", err)
	}

	doc, err := docx.Parse(tmp, int64(size))
	tmp.Close()
	if err != nil {
		return nil, fmt.Errorf("parse docx: %w", err)
	}

	var buf strings.Builder
	notes := structure.FormattingNotes{}
	lineIdx := 0
	headingCount := 0

	for _, item := range doc.Document.Body.Items {
		para, ok := item.(*docx.Paragraph)
		if !ok {
			continue
		}
		text := paragraphText(para)
		if text == "" {
			continue
		}

		if level := headingStyleLevel(para); level > 0 {
			notes[lineIdx] = structure.HeadingHint{IsHeading: true, HeadingLevel: level}
			headingCount++
		}

		// One paragraph per line, blank separator after each: line
		// indexes stay stable for the formatting notes.
		buf.WriteString(text)
		buf.WriteString("\n\n")
		lineIdx += 2
	}

	raw := strings.TrimSuffix(buf.String(), "\n\n")

	result := &Result{
		RawText:         raw,
		FileType:        DetectFileType(filename),
		PageCount:       1,
		ConfidenceScore: 0.98,
		FormattingNotes: notes,
		PageMapping: []PageInfo{
			{PageNumber: 1, Confidence: 0.98, CharStart: 0, CharEnd: len(raw)},
		},
	}
	if strings.TrimSpace(raw) == "" {
		result.ConfidenceScore = 0
		result.Warnings = append(result.Warnings, "No text extracted. Check if the document is empty.")
	}
	return result, nil
}

// headingStyleLevel returns the heading level of a paragraph's style,
// 0 for non-heading paragraphs.
func headingStyleLevel(para *docx.Paragraph) int {
	if para.Properties == nil || para.Properties.Style == nil {
		return 0
	}
	style := strings.ToLower(strings.ReplaceAll(para.Properties.Style.Val, " ", ""))
	if !strings.HasPrefix(style, "heading") {
		return 0
	}
	n, err := strconv.Atoi(strings.TrimPrefix(style, "heading"))
	if err != nil || n < 1 || n > 9 {
		return 0
	}
	return n
}

func paragraphText(para *docx.Paragraph) string {
	var buf strings.Builder
	for _, child := range para.Children {
		run, ok := child.(*docx.Run)
		if !ok {
			continue
		}
		for _, rc := range run.Children {
			if t, ok := rc.(*docx.Text); ok {
				buf.WriteString(t.Text)
			}
		}
	}
	return strings.TrimSpace(buf.String())
}
