package structure

import (
	"encoding/json"
	"testing"
)

func TestToDict_KeysAndShape(t *testing.T) {
	doc := buildLines("[HEADING 1] Alpha", "[HEADING 2] Beta", "some content")

	dict := doc.ToDict()

	chapters, ok := dict["chapters"].([]map[string]any)
	if !ok {
		t.Fatalf("expected chapters slice, got %T", dict["chapters"])
	}
	if len(chapters) != 1 {
		t.Fatalf("expected 1 chapter, got %d", len(chapters))
	}

	ch := chapters[0]
	for _, key := range []string{"title", "level", "sections", "line_start", "line_end"} {
		if _, ok := ch[key]; !ok {
			t.Errorf("chapter missing key %q", key)
		}
	}
	if ch["title"] != "Alpha" || ch["level"] != 1 {
		t.Errorf("unexpected chapter fields: %+v", ch)
	}

	sections := ch["sections"].([]map[string]any)
	if len(sections) != 1 {
		t.Fatalf("expected 1 section, got %d", len(sections))
	}
	beta := sections[0]
	for _, key := range []string{"title", "level", "content", "content_type", "line_start", "line_end"} {
		if _, ok := beta[key]; !ok {
			t.Errorf("topic missing key %q", key)
		}
	}
	if beta["content_type"] != "heading" {
		t.Errorf("expected content_type heading, got %v", beta["content_type"])
	}

	// Beta has one leaf child; the leaf must omit subsections entirely.
	subs := beta["subsections"].([]map[string]any)
	if len(subs) != 1 {
		t.Fatalf("expected 1 subsection, got %d", len(subs))
	}
	if _, present := subs[0]["subsections"]; present {
		t.Error("leaf topic must not carry a subsections key")
	}

	meta := dict["metadata"].(map[string]any)
	for _, key := range []string{"total_chapters", "file_type", "confidence_score", "warnings"} {
		if _, ok := meta[key]; !ok {
			t.Errorf("metadata missing key %q", key)
		}
	}
}

func TestToDict_JSONEncodes(t *testing.T) {
	doc := buildLines("1. A", "content line")
	data, err := json.Marshal(doc.ToDict())
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var round map[string]any
	if err := json.Unmarshal(data, &round); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if _, ok := round["chapters"]; !ok {
		t.Error("round-tripped JSON missing chapters")
	}
}

// nodeTuple is the identity used for the serialization round-trip check.
type nodeTuple struct {
	title       string
	level       int
	contentType string
	lineStart   int
	lineEnd     int
}

func collectTree(doc *StructuredDocument) []nodeTuple {
	var out []nodeTuple
	var walkTopics func(topics []*Topic)
	walkTopics = func(topics []*Topic) {
		for _, topic := range topics {
			out = append(out, nodeTuple{topic.Title, topic.Level, string(topic.ContentType), topic.LineStart, topic.LineEnd})
			walkTopics(topic.Subsections)
		}
	}
	for _, ch := range doc.Chapters {
		out = append(out, nodeTuple{ch.Title, ch.Level, "", ch.LineStart, ch.LineEnd})
		walkTopics(ch.Sections)
	}
	return out
}

func collectDict(dict map[string]any) []nodeTuple {
	var out []nodeTuple
	var walkTopics func(topics []map[string]any)
	walkTopics = func(topics []map[string]any) {
		for _, topic := range topics {
			out = append(out, nodeTuple{
				title:       topic["title"].(string),
				level:       topic["level"].(int),
				contentType: topic["content_type"].(string),
				lineStart:   topic["line_start"].(int),
				lineEnd:     topic["line_end"].(int),
			})
			if subs, ok := topic["subsections"].([]map[string]any); ok {
				walkTopics(subs)
			}
		}
	}
	for _, ch := range dict["chapters"].([]map[string]any) {
		out = append(out, nodeTuple{
			title:     ch["title"].(string),
			level:     ch["level"].(int),
			lineStart: ch["line_start"].(int),
			lineEnd:   ch["line_end"].(int),
		})
		walkTopics(ch["sections"].([]map[string]any))
	}
	return out
}

func TestToDict_RoundTripMatchesTree(t *testing.T) {
	doc := buildLines(
		"1. First",
		"intro text",
		"1.1 Nested",
		"- a",
		"- b",
		"",
		"",
		"2. Second",
		"Term: meaning of the term",
	)

	want := collectTree(doc)
	got := collectDict(doc.ToDict())

	if len(want) != len(got) {
		t.Fatalf("expected %d nodes, got %d", len(want), len(got))
	}
	for i := range want {
		if want[i] != got[i] {
			t.Errorf("node %d: expected %+v, got %+v", i, want[i], got[i])
		}
	}
}
