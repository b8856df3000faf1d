package structure

import "strings"

// Input is the extraction collaborator's output, fully materialized
// before the build starts.
type Input struct {
	RawText         string
	FileType        string
	ConfidenceScore float64
	Warnings        []string
	FormattingNotes FormattingNotes
}

// stackEntry is one open ancestor during the pass. Levels strictly
// increase from stack bottom to top.
type stackEntry struct {
	level int
	node  attachTarget
}

// Build folds the flat line sequence into a chapter tree in a single
// left-to-right pass. It never fails: malformed input degrades to fewer
// or shallower nodes, and text before the first level-1 heading is
// dropped rather than wrapped in a synthetic chapter.
func Build(in Input) *StructuredDocument {
	lines := strings.Split(in.RawText, "\n")
	if in.RawText == "" {
		lines = nil
	}

	var (
		chapters    []*Chapter
		stack       []stackEntry
		buffer      []string
		bufferStart int
		blankRun    int
	)

	flush := func(lineStart, lineEnd int) {
		if len(buffer) == 0 || len(stack) == 0 {
			return
		}
		top := stack[len(stack)-1]
		ct := IdentifyContentType(buffer)
		top.node.appendChild(&Topic{
			Title:       blockTitle(buffer, ct),
			Level:       top.level + 1,
			Content:     joinBlockContent(buffer, ct),
			ContentType: ct,
			LineStart:   lineStart,
			LineEnd:     lineEnd,
		})
		buffer = nil
	}

	for lineNum, line := range lines {
		prevLine := ""
		if lineNum > 0 {
			prevLine = lines[lineNum-1]
		}
		nextLine := ""
		if lineNum < len(lines)-1 {
			nextLine = lines[lineNum+1]
		}

		if strings.TrimSpace(line) == "" {
			blankRun++
			// A single blank line does not split a block; two or more do.
			if blankRun >= 2 {
				flush(bufferStart, lineNum-blankRun)
			}
			continue
		}
		blankRun = 0

		var hint *HeadingHint
		if h, ok := in.FormattingNotes[lineNum]; ok {
			hint = &h
		}

		heading := DetectHeading(line, prevLine, nextLine, hint)
		if heading == nil {
			buffer = append(buffer, line)
			continue
		}

		flush(bufferStart, lineNum-1)

		if heading.Level == 1 {
			// A new top-level chapter starts a fresh hierarchy.
			ch := &Chapter{
				Title:     heading.Title,
				Level:     1,
				LineStart: lineNum,
			}
			chapters = append(chapters, ch)
			stack = []stackEntry{{level: 1, node: ch}}
		} else {
			// Pop until the nearest ancestor with a strictly lower level.
			for len(stack) > 0 && stack[len(stack)-1].level >= heading.Level {
				stack = stack[:len(stack)-1]
			}
			topic := &Topic{
				Title:       heading.Title,
				Level:       heading.Level,
				ContentType: ContentHeading,
				LineStart:   lineNum,
				LineEnd:     lineNum,
			}
			// With no open chapter the node stays unattached and is
			// dropped from output, but it still becomes the stack top.
			if len(stack) > 0 {
				stack[len(stack)-1].node.appendChild(topic)
			}
			stack = append(stack, stackEntry{level: heading.Level, node: topic})
		}
		bufferStart = lineNum + 1
	}

	flush(bufferStart, len(lines)-1)

	for _, ch := range chapters {
		ch.LineEnd = lastLine(ch)
	}

	warnings := in.Warnings
	if warnings == nil {
		warnings = []string{}
	}

	return &StructuredDocument{
		Chapters: chapters,
		Metadata: Metadata{
			TotalChapters:   len(chapters),
			FileType:        in.FileType,
			ConfidenceScore: in.ConfidenceScore,
			Warnings:        warnings,
		},
	}
}

// lastLine resolves a chapter's end line by chasing last-child pointers.
// Iterative on purpose: the chain is as deep as the document nesting.
func lastLine(ch *Chapter) int {
	t := ch.lastChild()
	if t == nil {
		return ch.LineStart
	}
	for {
		next := t.lastChild()
		if next == nil {
			return t.LineEnd
		}
		t = next
	}
}
