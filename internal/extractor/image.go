package extractor

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// ImageExtractor handles scanned images via the tesseract binary,
// the same subprocess pattern the PDF fallback uses. OCR output carries
// no structural metadata, so confidence is a fixed conservative estimate.
type ImageExtractor struct{}

const ocrConfidence = 0.7

func (e *ImageExtractor) Extract(r io.Reader, filename string) (*Result, error) {
	if _, err := exec.LookPath("tesseract"); err != nil {
		return nil, fmt.Errorf("tesseract not available: %w", err)
	}

	ext := strings.ToLower(filepath.Ext(filename))
	tmp, err := os.CreateTemp("", "docstruct-ocr-*"+ext)
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

	cmd := exec.Command("tesseract", tmpPath, "stdout")
	out, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("tesseract: %w", err)
	}

	raw := strings.TrimSpace(string(out))

	result := &Result{
		RawText:         raw,
		FileType:        "image",
		PageCount:       1,
		ConfidenceScore: ocrConfidence,
		PageMapping: []PageInfo{
			{PageNumber: 1, Confidence: ocrConfidence, CharStart: 0, CharEnd: len(raw)},
		},
		Warnings: []string{"Low OCR confidence, text may be inaccurate."},
	}
	if raw == "" {
		result.ConfidenceScore = 0
		result.Warnings = append(result.Warnings, "No text extracted. Check if the image is readable.")
	}
	return result, nil
}
