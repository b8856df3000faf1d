package extractor

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// MarkdownExtractor handles Markdown files using goldmark. Headings are
// re-emitted as [HEADING n] marker lines; the structure builder's marker
// rule picks them up with their exact level.
type MarkdownExtractor struct{}

func (e *MarkdownExtractor) Extract(r io.Reader, filename string) (*Result, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	md := goldmark.New()
	doc := md.Parser().Parse(text.NewReader(src))

	var buf strings.Builder
	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		switch node := n.(type) {
		case *ast.Heading:
			title := string(node.Text(src))
			if title == "" {
				continue
			}
			fmt.Fprintf(&buf, "[HEADING %d] %s\n\n", node.Level, title)
		default:
			if t := blockText(n, src); t != "" {
				buf.WriteString(t)
				buf.WriteString("\n\n")
			}
		}
	}

	raw := strings.TrimSuffix(buf.String(), "\n\n")

	result := &Result{
		RawText:         raw,
		FileType:        "markdown",
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

// blockText gets the text content of a goldmark AST node.
func blockText(n ast.Node, src []byte) string {
	var buf bytes.Buffer
	if n.Type() == ast.TypeBlock {
		lines := n.Lines()
		for i := 0; i < lines.Len(); i++ {
			line := lines.At(i)
			buf.Write(line.Value(src))
		}
	}
	// Also handle inline children.
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if t, ok := c.(*ast.Text); ok {
			buf.Write(t.Value(src))
			if t.HardLineBreak() || t.SoftLineBreak() {
				buf.WriteByte('\n')
			}
		} else {
			buf.WriteString(blockText(c, src))
		}
	}
	return strings.TrimSpace(buf.String())
}
