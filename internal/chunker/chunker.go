// Package chunker turns a structured document into breadcrumbed,
// size-bounded text chunks for search indexing and study-aid consumers.
package chunker

import (
	"strings"

	"github.com/dgallion1/docstruct/internal/structure"
)

// Chunk is a sized text segment with structural context.
type Chunk struct {
	Text       string   `json:"text"`
	Index      int      `json:"index"`
	Breadcrumb []string `json:"breadcrumb"` // heading path, e.g. ["E-commerce", "Payments", "Risks"]
	LineStart  int      `json:"line_start"`
	LineEnd    int      `json:"line_end"`
}

// Config controls chunking behavior.
type Config struct {
	ChunkSize    int // Target chunk size in tokens.
	ChunkOverlap int // Overlap between consecutive chunks in tokens.
	MinChunk     int // Minimum chunk size to emit.
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		ChunkSize:    1500,
		ChunkOverlap: 200,
		MinChunk:     100,
	}
}

// ChunkDocument walks a structured document and produces structure-aware
// chunks. Heading topics extend the breadcrumb; content topics carry text.
func ChunkDocument(doc *structure.StructuredDocument, cfg Config) []Chunk {
	if cfg.ChunkSize <= 0 {
		cfg.ChunkSize = 1500
	}
	if cfg.ChunkOverlap <= 0 {
		cfg.ChunkOverlap = 200
	}
	if cfg.MinChunk <= 0 {
		cfg.MinChunk = 100
	}

	var chunks []Chunk
	index := 0

	for _, chapter := range doc.Chapters {
		index = walkTopics(chapter.Sections, []string{chapter.Title}, cfg, &chunks, index)
	}

	return chunks
}

func walkTopics(topics []*structure.Topic, breadcrumb []string, cfg Config, chunks *[]Chunk, index int) int {
	for _, topic := range topics {
		if topic.ContentType == structure.ContentHeading {
			bc := append(copyBreadcrumb(breadcrumb), topic.Title)
			index = walkTopics(topic.Subsections, bc, cfg, chunks, index)
			continue
		}

		if topic.Content != "" {
			tokens := EstimateTokens(topic.Content)
			if tokens <= cfg.ChunkSize {
				if tokens >= cfg.MinChunk {
					*chunks = append(*chunks, Chunk{
						Text:       topic.Content,
						Index:      index,
						Breadcrumb: copyBreadcrumb(breadcrumb),
						LineStart:  topic.LineStart,
						LineEnd:    topic.LineEnd,
					})
					index++
				}
			} else {
				for _, part := range splitText(topic.Content, cfg.ChunkSize, cfg.ChunkOverlap) {
					if EstimateTokens(part) >= cfg.MinChunk {
						*chunks = append(*chunks, Chunk{
							Text:       part,
							Index:      index,
							Breadcrumb: copyBreadcrumb(breadcrumb),
							LineStart:  topic.LineStart,
							LineEnd:    topic.LineEnd,
						})
						index++
					}
				}
			}
		}

		index = walkTopics(topic.Subsections, breadcrumb, cfg, chunks, index)
	}
	return index
}

// splitText breaks text into chunks of approximately targetTokens, with overlap.
func splitText(text string, targetTokens, overlapTokens int) []string {
	// Split by paragraphs first.
	paragraphs := splitByParagraphs(text)

	var result []string
	var current strings.Builder
	currentTokens := 0

	for _, para := range paragraphs {
		paraTokens := EstimateTokens(para)

		// If a single paragraph exceeds the target, split it further.
		if paraTokens > targetTokens {
			if currentTokens > 0 {
				result = append(result, current.String())
				current.Reset()
				currentTokens = 0
			}
			result = append(result, splitBySentences(para, targetTokens, overlapTokens)...)
			continue
		}

		if currentTokens+paraTokens > targetTokens && currentTokens > 0 {
			result = append(result, current.String())

			// Start next chunk with overlap from end of current.
			overlap := getOverlapText(current.String(), overlapTokens)
			current.Reset()
			currentTokens = 0
			if overlap != "" {
				current.WriteString(overlap)
				currentTokens = EstimateTokens(overlap)
			}
		}

		if current.Len() > 0 {
			current.WriteString("\n\n")
		}
		current.WriteString(para)
		currentTokens += paraTokens
	}

	if currentTokens > 0 {
		result = append(result, current.String())
	}

	return result
}

// splitByParagraphs splits on double-newlines.
func splitByParagraphs(text string) []string {
	parts := strings.Split(text, "\n\n")
	var result []string
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			result = append(result, p)
		}
	}
	return result
}

// splitBySentences breaks a large paragraph into sentence-based chunks.
func splitBySentences(text string, targetTokens, overlapTokens int) []string {
	sentences := splitSentences(text)

	var result []string
	var current strings.Builder
	currentTokens := 0

	for _, sent := range sentences {
		sentTokens := EstimateTokens(sent)

		if currentTokens+sentTokens > targetTokens && currentTokens > 0 {
			result = append(result, current.String())
			overlap := getOverlapText(current.String(), overlapTokens)
			current.Reset()
			currentTokens = 0
			if overlap != "" {
				current.WriteString(overlap)
				currentTokens = EstimateTokens(overlap)
			}
		}

		if current.Len() > 0 {
			current.WriteString(" ")
		}
		current.WriteString(sent)
		currentTokens += sentTokens
	}

	if currentTokens > 0 {
		result = append(result, current.String())
	}

	return result
}

// splitSentences does basic sentence splitting.
func splitSentences(text string) []string {
	var sentences []string
	var current strings.Builder

	for i, r := range text {
		current.WriteRune(r)
		if (r == '.' || r == '!' || r == '?') && i+1 < len(text) && text[i+1] == ' ' {
			sentences = append(sentences, strings.TrimSpace(current.String()))
			current.Reset()
		}
	}
	if current.Len() > 0 {
		sentences = append(sentences, strings.TrimSpace(current.String()))
	}

	return sentences
}

// getOverlapText extracts the last N tokens worth of text for overlap.
func getOverlapText(text string, targetTokens int) string {
	words := strings.Fields(text)
	// Approximate: 1.33 tokens per word.
	targetWords := int(float64(targetTokens) / 1.33)
	if targetWords <= 0 || len(words) <= targetWords {
		return ""
	}
	return strings.Join(words[len(words)-targetWords:], " ")
}

func copyBreadcrumb(bc []string) []string {
	if len(bc) == 0 {
		return nil
	}
	out := make([]string, len(bc))
	copy(out, bc)
	return out
}
