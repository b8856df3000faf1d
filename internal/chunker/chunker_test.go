package chunker

import (
	"strings"
	"testing"

	"github.com/dgallion1/docstruct/internal/structure"
)

func testConfig() Config {
	return Config{ChunkSize: 50, ChunkOverlap: 5, MinChunk: 1}
}

func buildDoc(t *testing.T, lines ...string) *structure.StructuredDocument {
	t.Helper()
	return structure.Build(structure.Input{RawText: strings.Join(lines, "\n")})
}

func TestChunkDocument_BreadcrumbsFollowHeadings(t *testing.T) {
	doc := buildDoc(t,
		"1. Payments",
		"Card networks move money.",
		"1.1 Risks",
		"Fraud is the main risk.",
	)

	chunks := ChunkDocument(doc, testConfig())
	if len(chunks) != 2 {
		t.Fatalf("expected 2 chunks, got %d", len(chunks))
	}

	first := chunks[0]
	if first.Text != "Card networks move money." {
		t.Errorf("unexpected text: %q", first.Text)
	}
	if len(first.Breadcrumb) != 1 || first.Breadcrumb[0] != "Payments" {
		t.Errorf("expected breadcrumb [Payments], got %v", first.Breadcrumb)
	}

	second := chunks[1]
	if len(second.Breadcrumb) != 2 || second.Breadcrumb[0] != "Payments" || second.Breadcrumb[1] != "Risks" {
		t.Errorf("expected breadcrumb [Payments Risks], got %v", second.Breadcrumb)
	}
	if second.LineStart != 3 || second.LineEnd != 3 {
		t.Errorf("expected line span [3,3], got [%d,%d]", second.LineStart, second.LineEnd)
	}
}

func TestChunkDocument_IndexesAreSequential(t *testing.T) {
	doc := buildDoc(t,
		"1. A",
		"first",
		"",
		"",
		"second",
		"2. B",
		"third",
	)
	chunks := ChunkDocument(doc, testConfig())
	if len(chunks) != 3 {
		t.Fatalf("expected 3 chunks, got %d", len(chunks))
	}
	for i, c := range chunks {
		if c.Index != i {
			t.Errorf("chunk %d: expected index %d, got %d", i, i, c.Index)
		}
	}
}

func TestChunkDocument_MinChunkFiltersSmallBlocks(t *testing.T) {
	doc := buildDoc(t, "1. A", "tiny")
	chunks := ChunkDocument(doc, Config{ChunkSize: 100, ChunkOverlap: 10, MinChunk: 50})
	if len(chunks) != 0 {
		t.Errorf("expected tiny block filtered out, got %d chunks", len(chunks))
	}
}

func TestChunkDocument_EmptyDocument(t *testing.T) {
	doc := buildDoc(t, "no headings here at all")
	chunks := ChunkDocument(doc, testConfig())
	if len(chunks) != 0 {
		t.Errorf("expected no chunks, got %d", len(chunks))
	}
}

func TestSplitText_LargeTextSplitsWithOverlap(t *testing.T) {
	var paras []string
	for range 10 {
		paras = append(paras, strings.Repeat("word ", 40))
	}
	text := strings.Join(paras, "\n\n")

	parts := splitText(text, 100, 10)
	if len(parts) < 2 {
		t.Fatalf("expected multiple parts, got %d", len(parts))
	}
	for i, p := range parts {
		if EstimateTokens(p) > 160 {
			t.Errorf("part %d too large: %d tokens", i, EstimateTokens(p))
		}
	}
}

func TestSplitSentences(t *testing.T) {
	sentences := splitSentences("First one. Second one! Third?")
	if len(sentences) != 3 {
		t.Fatalf("expected 3 sentences, got %d: %v", len(sentences), sentences)
	}
	if sentences[0] != "First one." {
		t.Errorf("unexpected first sentence: %q", sentences[0])
	}
}

func TestEstimateTokens(t *testing.T) {
	if EstimateTokens("") != 0 {
		t.Error("empty text should be 0 tokens")
	}
	if EstimateTokens("x") < 1 {
		t.Error("non-empty text should be at least 1 token")
	}
	long := strings.Repeat("word ", 100)
	if got := EstimateTokens(long); got < 100 || got > 150 {
		t.Errorf("expected roughly 133 tokens, got %d", got)
	}
}
