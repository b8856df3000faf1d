package structure

import (
	"strings"
	"testing"
)

func buildLines(lines ...string) *StructuredDocument {
	return Build(Input{RawText: strings.Join(lines, "\n"), FileType: "pdf", ConfidenceScore: 0.9})
}

func TestBuild_NumberedChaptersWithParagraphs(t *testing.T) {
	doc := buildLines("1. Intro", "Hello world", "", "", "2. Body", "More text")

	if len(doc.Chapters) != 2 {
		t.Fatalf("expected 2 chapters, got %d", len(doc.Chapters))
	}

	intro := doc.Chapters[0]
	if intro.Title != "Intro" {
		t.Errorf("expected title %q, got %q", "Intro", intro.Title)
	}
	if len(intro.Sections) != 1 {
		t.Fatalf("expected 1 section in Intro, got %d", len(intro.Sections))
	}
	if intro.Sections[0].ContentType != ContentParagraph {
		t.Errorf("expected paragraph, got %s", intro.Sections[0].ContentType)
	}
	if intro.Sections[0].Content != "Hello world" {
		t.Errorf("expected content %q, got %q", "Hello world", intro.Sections[0].Content)
	}

	body := doc.Chapters[1]
	if body.Title != "Body" {
		t.Errorf("expected title %q, got %q", "Body", body.Title)
	}
	if len(body.Sections) != 1 {
		t.Fatalf("expected 1 section in Body, got %d", len(body.Sections))
	}
	if body.Sections[0].Content != "More text" {
		t.Errorf("expected content %q, got %q", "More text", body.Sections[0].Content)
	}
}

func TestBuild_MarkerHeadingsAndBulletBlock(t *testing.T) {
	doc := buildLines("[HEADING 1] Chapter A", "[HEADING 2] Section A.1", "- item1", "- item2")

	if len(doc.Chapters) != 1 {
		t.Fatalf("expected 1 chapter, got %d", len(doc.Chapters))
	}
	ch := doc.Chapters[0]
	if ch.Title != "Chapter A" {
		t.Errorf("expected title %q, got %q", "Chapter A", ch.Title)
	}
	if len(ch.Sections) != 1 {
		t.Fatalf("expected 1 section, got %d", len(ch.Sections))
	}

	sec := ch.Sections[0]
	if sec.Title != "Section A.1" || sec.ContentType != ContentHeading {
		t.Errorf("expected heading topic Section A.1, got %q (%s)", sec.Title, sec.ContentType)
	}
	if len(sec.Subsections) != 1 {
		t.Fatalf("expected 1 subsection, got %d", len(sec.Subsections))
	}

	block := sec.Subsections[0]
	if block.ContentType != ContentBulletBlock {
		t.Errorf("expected bullet_block, got %s", block.ContentType)
	}
	if block.Content != "item1\nitem2" {
		t.Errorf("expected content %q, got %q", "item1\nitem2", block.Content)
	}
}

func TestBuild_DefinitionBlock(t *testing.T) {
	doc := buildLines("1. Terms", "Term: this is the definition")

	if len(doc.Chapters) != 1 {
		t.Fatalf("expected 1 chapter, got %d", len(doc.Chapters))
	}
	sections := doc.Chapters[0].Sections
	if len(sections) != 1 {
		t.Fatalf("expected 1 section, got %d", len(sections))
	}
	if sections[0].ContentType != ContentDefinition {
		t.Errorf("expected definition, got %s", sections[0].ContentType)
	}
	if sections[0].Title != "Term" {
		t.Errorf("expected extracted term %q, got %q", "Term", sections[0].Title)
	}
}

func TestBuild_NoHeadingsYieldsNoChapters(t *testing.T) {
	doc := buildLines(
		"Plain text with no structure at all.",
		"Another line of prose.",
		"",
		"And a final paragraph.",
	)
	if len(doc.Chapters) != 0 {
		t.Fatalf("expected 0 chapters, got %d", len(doc.Chapters))
	}
	if doc.Metadata.TotalChapters != 0 {
		t.Errorf("expected total_chapters 0, got %d", doc.Metadata.TotalChapters)
	}
}

func TestBuild_EmptyInput(t *testing.T) {
	doc := Build(Input{})
	if len(doc.Chapters) != 0 {
		t.Fatalf("expected 0 chapters for empty input, got %d", len(doc.Chapters))
	}
}

func TestBuild_NonMonotonicLevels(t *testing.T) {
	// Level sequence 1, 3, 2: the level-3 heading attaches directly under
	// the chapter (no level-2 ancestor exists yet), and the later level-2
	// heading pops it to become its sibling.
	doc := buildLines("1. A", "x", "1.1.1 B", "y", "1.1 C", "z")

	if len(doc.Chapters) != 1 {
		t.Fatalf("expected 1 chapter, got %d", len(doc.Chapters))
	}
	ch := doc.Chapters[0]

	var headings []*Topic
	for _, s := range ch.Sections {
		if s.ContentType == ContentHeading {
			headings = append(headings, s)
		}
	}
	if len(headings) != 2 {
		t.Fatalf("expected 2 heading topics directly under chapter, got %d", len(headings))
	}
	if headings[0].Title != "B" || headings[0].Level != 3 {
		t.Errorf("expected first sibling B at level 3, got %q level %d", headings[0].Title, headings[0].Level)
	}
	if headings[1].Title != "C" || headings[1].Level != 2 {
		t.Errorf("expected second sibling C at level 2, got %q level %d", headings[1].Title, headings[1].Level)
	}

	// Content lines land under their nearest open heading.
	if len(headings[0].Subsections) != 1 || headings[0].Subsections[0].Content != "y" {
		t.Errorf("expected content y under B, got %+v", headings[0].Subsections)
	}
	if len(headings[1].Subsections) != 1 || headings[1].Subsections[0].Content != "z" {
		t.Errorf("expected content z under C, got %+v", headings[1].Subsections)
	}
}

func TestBuild_ContentBeforeFirstChapterIsDropped(t *testing.T) {
	doc := buildLines("orphan preamble text", "[HEADING 2] Orphan Section", "more orphan content", "1. Real Chapter", "kept")

	if len(doc.Chapters) != 1 {
		t.Fatalf("expected 1 chapter, got %d", len(doc.Chapters))
	}
	ch := doc.Chapters[0]
	if ch.Title != "Real Chapter" {
		t.Errorf("expected %q, got %q", "Real Chapter", ch.Title)
	}
	if len(ch.Sections) != 1 || ch.Sections[0].Content != "kept" {
		t.Fatalf("expected only the post-chapter content to survive, got %+v", ch.Sections)
	}
}

func TestBuild_SingleBlankLineDoesNotSplit(t *testing.T) {
	doc := buildLines("1. A", "first part", "", "second part")

	sections := doc.Chapters[0].Sections
	if len(sections) != 1 {
		t.Fatalf("expected single block across one blank line, got %d", len(sections))
	}
	if sections[0].Content != "first part\nsecond part" {
		t.Errorf("unexpected content: %q", sections[0].Content)
	}
}

func TestBuild_DoubleBlankSplitsBlocks(t *testing.T) {
	doc := buildLines("1. A", "first block", "", "", "second block")

	sections := doc.Chapters[0].Sections
	if len(sections) != 2 {
		t.Fatalf("expected two blocks across a double blank, got %d", len(sections))
	}
	if sections[0].Content != "first block" || sections[1].Content != "second block" {
		t.Errorf("unexpected blocks: %q / %q", sections[0].Content, sections[1].Content)
	}
}

func TestBuild_FormattingHintsCreateHeadings(t *testing.T) {
	notes := FormattingNotes{
		0: {IsHeading: true, HeadingLevel: 1},
		1: {IsHeading: true, HeadingLevel: 2},
	}
	doc := Build(Input{
		RawText:         "Styled Chapter\nStyled Section\nbody text",
		FileType:        "docx",
		ConfidenceScore: 0.98,
		FormattingNotes: notes,
	})

	if len(doc.Chapters) != 1 {
		t.Fatalf("expected 1 chapter, got %d", len(doc.Chapters))
	}
	ch := doc.Chapters[0]
	if ch.Title != "Styled Chapter" {
		t.Errorf("expected %q, got %q", "Styled Chapter", ch.Title)
	}
	if len(ch.Sections) != 1 || ch.Sections[0].Title != "Styled Section" {
		t.Fatalf("expected styled section, got %+v", ch.Sections)
	}
	sub := ch.Sections[0].Subsections
	if len(sub) != 1 || sub[0].Content != "body text" {
		t.Errorf("expected body text under styled section, got %+v", sub)
	}
}

func TestBuild_LineSpans(t *testing.T) {
	doc := buildLines("1. A", "x", "1.1 B", "y", "", "", "2. C")

	ch := doc.Chapters[0]
	if ch.LineStart != 0 {
		t.Errorf("expected chapter A line_start 0, got %d", ch.LineStart)
	}
	// Chapter end resolves through the last-child chain: content y spans
	// lines 3..3 under heading B.
	if ch.LineEnd != 3 {
		t.Errorf("expected chapter A line_end 3, got %d", ch.LineEnd)
	}

	chC := doc.Chapters[1]
	if chC.LineStart != 6 || chC.LineEnd != 6 {
		t.Errorf("expected empty chapter C span [6,6], got [%d,%d]", chC.LineStart, chC.LineEnd)
	}

	verifySpans(t, doc)
}

func TestBuild_MetadataCarriedThrough(t *testing.T) {
	doc := Build(Input{
		RawText:         "1. Only\ncontent",
		FileType:        "image",
		ConfidenceScore: 0.7,
		Warnings:        []string{"Low OCR confidence, text may be inaccurate."},
	})
	md := doc.Metadata
	if md.TotalChapters != 1 {
		t.Errorf("expected total_chapters 1, got %d", md.TotalChapters)
	}
	if md.FileType != "image" {
		t.Errorf("expected file_type image, got %q", md.FileType)
	}
	if md.ConfidenceScore != 0.7 {
		t.Errorf("expected confidence 0.7, got %f", md.ConfidenceScore)
	}
	if len(md.Warnings) != 1 {
		t.Errorf("expected 1 warning, got %d", len(md.Warnings))
	}
}

// verifySpans checks the structural invariants: line_start <= line_end on
// every node, and siblings ordered by non-decreasing line_start.
func verifySpans(t *testing.T, doc *StructuredDocument) {
	t.Helper()
	var checkTopics func(topics []*Topic)
	checkTopics = func(topics []*Topic) {
		prev := -1
		for _, topic := range topics {
			if topic.LineStart > topic.LineEnd {
				t.Errorf("topic %q: line_start %d > line_end %d", topic.Title, topic.LineStart, topic.LineEnd)
			}
			if topic.LineStart < prev {
				t.Errorf("topic %q: sibling order violated (%d after %d)", topic.Title, topic.LineStart, prev)
			}
			prev = topic.LineStart
			checkTopics(topic.Subsections)
		}
	}
	prev := -1
	for _, ch := range doc.Chapters {
		if ch.LineStart > ch.LineEnd {
			t.Errorf("chapter %q: line_start %d > line_end %d", ch.Title, ch.LineStart, ch.LineEnd)
		}
		if ch.LineStart < prev {
			t.Errorf("chapter %q out of order", ch.Title)
		}
		prev = ch.LineStart
		checkTopics(ch.Sections)
	}
}

func TestBuild_DeepNestingSpans(t *testing.T) {
	doc := buildLines(
		"1. Root",
		"intro",
		"1.1 Mid",
		"mid content",
		"1.1.1 Leaf",
		"leaf content",
	)
	if len(doc.Chapters) != 1 {
		t.Fatalf("expected 1 chapter, got %d", len(doc.Chapters))
	}
	if doc.Chapters[0].LineEnd != 5 {
		t.Errorf("expected chapter line_end 5, got %d", doc.Chapters[0].LineEnd)
	}
	verifySpans(t, doc)
}
