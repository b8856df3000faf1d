package structure

// ContentType classifies what a content block holds.
type ContentType string

const (
	ContentHeading     ContentType = "heading"
	ContentDefinition  ContentType = "definition"
	ContentBulletBlock ContentType = "bullet_block"
	ContentList        ContentType = "list"
	ContentParagraph   ContentType = "paragraph"
)

// Topic is a subsection or classified content block within a chapter.
// Line spans are inclusive, 0-based indexes into the original line sequence.
type Topic struct {
	Title       string      `json:"title"`
	Level       int         `json:"level"`
	Content     string      `json:"content"`
	ContentType ContentType `json:"content_type"`
	LineStart   int         `json:"line_start"`
	LineEnd     int         `json:"line_end"`
	Subsections []*Topic    `json:"subsections,omitempty"`
}

// Chapter is a top-level (level 1) unit of the document.
type Chapter struct {
	Title     string   `json:"title"`
	Level     int      `json:"level"`
	Sections  []*Topic `json:"sections"`
	LineStart int      `json:"line_start"`
	LineEnd   int      `json:"line_end"`
}

// Metadata is carried through from the extraction result unmodified,
// plus the chapter count computed by the builder.
type Metadata struct {
	TotalChapters   int      `json:"total_chapters"`
	FileType        string   `json:"file_type"`
	ConfidenceScore float64  `json:"confidence_score"`
	Warnings        []string `json:"warnings"`
}

// StructuredDocument is the finished hierarchical outline.
type StructuredDocument struct {
	Chapters []*Chapter `json:"chapters"`
	Metadata Metadata   `json:"metadata"`
}

// HeadingHint is upstream formatting metadata marking a line as a heading
// independent of its textual pattern (e.g. a DOCX Heading style).
type HeadingHint struct {
	IsHeading    bool
	HeadingLevel int // 0 when the source style carried no level
}

// FormattingNotes maps 0-based line index to its formatting hint.
// Empty for sources without native structural metadata.
type FormattingNotes map[int]HeadingHint

// attachTarget is anything that can receive a child topic. Both Chapter
// and Topic qualify; they differ only in which slice holds the children.
type attachTarget interface {
	appendChild(t *Topic)
	lastChild() *Topic
}

func (c *Chapter) appendChild(t *Topic) { c.Sections = append(c.Sections, t) }

func (c *Chapter) lastChild() *Topic {
	if len(c.Sections) == 0 {
		return nil
	}
	return c.Sections[len(c.Sections)-1]
}

func (t *Topic) appendChild(child *Topic) { t.Subsections = append(t.Subsections, child) }

func (t *Topic) lastChild() *Topic {
	if len(t.Subsections) == 0 {
		return nil
	}
	return t.Subsections[len(t.Subsections)-1]
}

// ToDict projects the document into a nested map suitable for direct JSON
// encoding. Pure function: the tree is never mutated. The subsections key
// is omitted entirely for leaf topics.
func (d *StructuredDocument) ToDict() map[string]any {
	chapters := make([]map[string]any, 0, len(d.Chapters))
	for _, ch := range d.Chapters {
		sections := make([]map[string]any, 0, len(ch.Sections))
		for _, s := range ch.Sections {
			sections = append(sections, topicToDict(s))
		}
		chapters = append(chapters, map[string]any{
			"title":      ch.Title,
			"level":      ch.Level,
			"sections":   sections,
			"line_start": ch.LineStart,
			"line_end":   ch.LineEnd,
		})
	}

	warnings := d.Metadata.Warnings
	if warnings == nil {
		warnings = []string{}
	}

	return map[string]any{
		"chapters": chapters,
		"metadata": map[string]any{
			"total_chapters":   d.Metadata.TotalChapters,
			"file_type":        d.Metadata.FileType,
			"confidence_score": d.Metadata.ConfidenceScore,
			"warnings":         warnings,
		},
	}
}

func topicToDict(t *Topic) map[string]any {
	result := map[string]any{
		"title":        t.Title,
		"level":        t.Level,
		"content":      t.Content,
		"content_type": string(t.ContentType),
		"line_start":   t.LineStart,
		"line_end":     t.LineEnd,
	}
	if len(t.Subsections) > 0 {
		subs := make([]map[string]any, 0, len(t.Subsections))
		for _, sub := range t.Subsections {
			subs = append(subs, topicToDict(sub))
		}
		result["subsections"] = subs
	}
	return result
}
