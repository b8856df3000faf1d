package extractor

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	pdflib "github.com/ledongthuc/pdf"
)

// PDFExtractor handles PDF files. It tries the Go library first,
// then falls back to pdftotext if available.
type PDFExtractor struct {
	FallbackPdftotext bool
}

func (e *PDFExtractor) Extract(r io.Reader, filename string) (*Result, error) {
	// ledongthuc/pdf requires a ReadSeeker+size, so we write to a temp file.
	tmp, err := os.CreateTemp("", "docstruct-pdf-*.pdf")
	if err != nil {
		return nil, fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := io.Copy(tmp, r); err != nil {
		tmp.Close()
		return nil, fmt.Errorf("write temp file: %w", err)
	}
	tmp.Close()

	result, err := extractPDFPages(tmpPath)
	if err != nil && e.FallbackPdftotext {
		result, err = extractPdftotext(tmpPath)
	}
	if err != nil {
		return nil, fmt.Errorf("extract pdf text: %w", err)
	}

	result.FileType = "pdf"
	if strings.TrimSpace(result.RawText) == "" {
		result.Warnings = append(result.Warnings, "No text extracted. Check if the document is empty or scanned.")
	}
	return result, nil
}

func extractPDFPages(path string) (*Result, error) {
	f, reader, err := pdflib.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var buf strings.Builder
	var pages []PageInfo
	var totalConfidence float64

	numPages := reader.NumPage()
	for i := 1; i <= numPages; i++ {
		charStart := buf.Len()

		pageText := ""
		page := reader.Page(i)
		if !page.V.IsNull() {
			if text, err := page.GetPlainText(nil); err == nil {
				pageText = text
			}
		}

		buf.WriteString(pageText)
		buf.WriteString("\n\n")

		// Pages with text read at high confidence; empty pages are
		// suspect (likely scanned images).
		confidence := 0.95
		if strings.TrimSpace(pageText) == "" {
			confidence = 0.5
		}
		totalConfidence += confidence

		pages = append(pages, PageInfo{
			PageNumber: i,
			Confidence: confidence,
			CharStart:  charStart,
			CharEnd:    buf.Len(),
		})
	}

	avg := 0.0
	if numPages > 0 {
		avg = totalConfidence / float64(numPages)
	}

	return &Result{
		RawText:         buf.String(),
		PageCount:       numPages,
		PageMapping:     pages,
		ConfidenceScore: avg,
	}, nil
}

func extractPdftotext(path string) (*Result, error) {
	cmd := exec.Command("pdftotext", "-layout", path, "-")
	out, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("pdftotext: %w", err)
	}

	text := string(out)
	pages := strings.Split(text, "\f")
	raw := strings.Join(pages, "\n\n")

	var mapping []PageInfo
	offset := 0
	for i, page := range pages {
		mapping = append(mapping, PageInfo{
			PageNumber: i + 1,
			Confidence: 0.9,
			CharStart:  offset,
			CharEnd:    offset + len(page),
		})
		offset += len(page) + 2
	}

	return &Result{
		RawText:         raw,
		PageCount:       len(pages),
		PageMapping:     mapping,
		ConfidenceScore: 0.9,
		Warnings:        []string{"Extracted via pdftotext fallback."},
	}, nil
}
