package extractor

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/dgallion1/docstruct/internal/structure"
)

// Result is the output of text extraction, the input to structure building.
type Result struct {
	RawText         string
	FileType        string
	PageCount       int
	PageMapping     []PageInfo
	ConfidenceScore float64
	Warnings        []string
	FormattingNotes structure.FormattingNotes
}

// PageInfo records where each source page landed in the raw text.
type PageInfo struct {
	PageNumber int     `json:"page_number"`
	Confidence float64 `json:"confidence"`
	CharStart  int     `json:"char_start"`
	CharEnd    int     `json:"char_end"`
}

// StructureInput converts the extraction result into the builder's input.
func (r *Result) StructureInput() structure.Input {
	return structure.Input{
		RawText:         r.RawText,
		FileType:        r.FileType,
		ConfidenceScore: r.ConfidenceScore,
		Warnings:        r.Warnings,
		FormattingNotes: r.FormattingNotes,
	}
}

// Extractor converts raw document bytes into an extraction result.
type Extractor interface {
	Extract(r io.Reader, filename string) (*Result, error)
}

// fileTypes maps extensions to the file_type carried in metadata.
var fileTypes = map[string]string{
	".pdf":      "pdf",
	".docx":     "docx",
	".doc":      "doc",
	".jpg":      "image",
	".jpeg":     "image",
	".png":      "image",
	".bmp":      "image",
	".tiff":     "image",
	".gif":      "image",
	".txt":      "text",
	".md":       "markdown",
	".markdown": "markdown",
	".html":     "html",
	".htm":      "html",
}

// DetectFileType maps a filename to its file_type tag, "unknown" for
// unrecognized extensions.
func DetectFileType(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	if ft, ok := fileTypes[ext]; ok {
		return ft
	}
	return "unknown"
}

// IsSupported checks whether a filename has a supported extension.
func IsSupported(filename string) bool {
	return DetectFileType(filename) != "unknown"
}

// ForFile returns the appropriate extractor for a filename.
func ForFile(filename string) (Extractor, error) {
	switch DetectFileType(filename) {
	case "text":
		return &TextExtractor{}, nil
	case "markdown":
		return &MarkdownExtractor{}, nil
	case "html":
		return &HTMLExtractor{}, nil
	case "pdf":
		return &PDFExtractor{}, nil
	case "docx", "doc":
		return &DOCXExtractor{}, nil
	case "image":
		return &ImageExtractor{}, nil
	default:
		return nil, fmt.Errorf("unsupported file extension: %s", filepath.Ext(filename))
	}
}
