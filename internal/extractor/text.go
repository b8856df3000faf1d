package extractor

import (
	"bufio"
	"io"
	"strings"
)

// TextExtractor handles plain text files. The text is already line
// structured, so extraction is a passthrough with newline normalization.
type TextExtractor struct{}

func (e *TextExtractor) Extract(r io.Reader, filename string) (*Result, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var lines []string
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	raw := strings.Join(lines, "\n")

	result := &Result{
		RawText:         raw,
		FileType:        "text",
		PageCount:       1,
		ConfidenceScore: 1.0,
		PageMapping: []PageInfo{
			{PageNumber: 1, Confidence: 1.0, CharStart: 0, CharEnd: len(raw)},
		},
	}
	if strings.TrimSpace(raw) == "" {
		result.ConfidenceScore = 0
		result.Warnings = append(result.Warnings, "No text extracted. Check if the document is empty.")
	}
	return result, nil
}
