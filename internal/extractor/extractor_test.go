package extractor

import (
	"strings"
	"testing"
)

func TestDetectFileType(t *testing.T) {
	tests := []struct {
		filename string
		want     string
	}{
		{"report.pdf", "pdf"},
		{"notes.DOCX", "docx"},
		{"legacy.doc", "doc"},
		{"scan.jpg", "image"},
		{"scan.tiff", "image"},
		{"readme.md", "markdown"},
		{"page.html", "html"},
		{"plain.txt", "text"},
		{"archive.zip", "unknown"},
		{"noextension", "unknown"},
	}
	for _, tt := range tests {
		if got := DetectFileType(tt.filename); got != tt.want {
			t.Errorf("%q: expected %q, got %q", tt.filename, tt.want, got)
		}
	}
}

func TestForFile_Unsupported(t *testing.T) {
	if _, err := ForFile("archive.zip"); err == nil {
		t.Error("expected error for unsupported extension")
	}
	if IsSupported("archive.zip") {
		t.Error("expected archive.zip to be unsupported")
	}
	if !IsSupported("report.pdf") {
		t.Error("expected report.pdf to be supported")
	}
}

func TestTextExtractor_Passthrough(t *testing.T) {
	input := "1. Intro\nHello world\n\n\n2. Body\nMore text"
	e := &TextExtractor{}
	result, err := e.Extract(strings.NewReader(input), "notes.txt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.RawText != input {
		t.Errorf("expected passthrough text, got %q", result.RawText)
	}
	if result.FileType != "text" {
		t.Errorf("expected file_type text, got %q", result.FileType)
	}
	if result.ConfidenceScore != 1.0 {
		t.Errorf("expected confidence 1.0, got %f", result.ConfidenceScore)
	}
	if len(result.Warnings) != 0 {
		t.Errorf("expected no warnings, got %v", result.Warnings)
	}
}

func TestTextExtractor_EmptyInput(t *testing.T) {
	e := &TextExtractor{}
	result, err := e.Extract(strings.NewReader(""), "empty.txt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.ConfidenceScore != 0 {
		t.Errorf("expected confidence 0 for empty input, got %f", result.ConfidenceScore)
	}
	if len(result.Warnings) == 0 {
		t.Error("expected a warning for empty input")
	}
}

func TestMarkdownExtractor_EmitsHeadingMarkers(t *testing.T) {
	input := `# Title

Intro text.

## Section A

Section A content.

### Subsection A1

Deep content.
`
	e := &MarkdownExtractor{}
	result, err := e.Extract(strings.NewReader(input), "doc.md")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, want := range []string{
		"[HEADING 1] Title",
		"[HEADING 2] Section A",
		"[HEADING 3] Subsection A1",
		"Intro text.",
		"Section A content.",
	} {
		if !strings.Contains(result.RawText, want) {
			t.Errorf("expected raw text to contain %q, got:\n%s", want, result.RawText)
		}
	}
	if result.FileType != "markdown" {
		t.Errorf("expected file_type markdown, got %q", result.FileType)
	}
}

func TestMarkdownExtractor_EmptyInput(t *testing.T) {
	e := &MarkdownExtractor{}
	result, err := e.Extract(strings.NewReader(""), "empty.md")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.RawText != "" {
		t.Errorf("expected empty raw text, got %q", result.RawText)
	}
	if len(result.Warnings) == 0 {
		t.Error("expected a warning for empty input")
	}
}

func TestHTMLExtractor_EmitsHeadingMarkers(t *testing.T) {
	input := `<html><head><title>Ignored</title><style>p{}</style></head>
<body>
<nav>skip this</nav>
<h1>Main Title</h1>
<p>Opening paragraph.</p>
<h2>Details</h2>
<p>Detail paragraph.</p>
</body></html>`

	e := &HTMLExtractor{}
	result, err := e.Extract(strings.NewReader(input), "page.html")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, want := range []string{
		"[HEADING 1] Main Title",
		"[HEADING 2] Details",
		"Opening paragraph.",
		"Detail paragraph.",
	} {
		if !strings.Contains(result.RawText, want) {
			t.Errorf("expected raw text to contain %q, got:\n%s", want, result.RawText)
		}
	}
	if strings.Contains(result.RawText, "skip this") {
		t.Errorf("nav content should be skipped, got:\n%s", result.RawText)
	}
}

func TestStructureInput_CarriesFields(t *testing.T) {
	r := &Result{
		RawText:         "1. A",
		FileType:        "pdf",
		ConfidenceScore: 0.9,
		Warnings:        []string{"w"},
	}
	in := r.StructureInput()
	if in.RawText != r.RawText || in.FileType != r.FileType {
		t.Errorf("structure input mismatch: %+v", in)
	}
	if in.ConfidenceScore != 0.9 || len(in.Warnings) != 1 {
		t.Errorf("structure input metadata mismatch: %+v", in)
	}
}
