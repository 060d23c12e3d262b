package extract

import (
	"strings"
	"testing"
)

func TestMetadataText(t *testing.T) {
	m := Metadata{Title: "T", Description: "D", Author: "A"}
	got := m.Text()

	if !strings.HasPrefix(got, "Title: T\nAuthor: A\nDescription: D\n") {
		t.Errorf("unexpected prefix: %q", got)
	}
	if !strings.Contains(got, metadataDisclaimer) {
		t.Error("disclaimer missing from metadata text")
	}
}

func TestMetadataTextPartial(t *testing.T) {
	m := Metadata{Title: "Only a title"}
	got := m.Text()

	if strings.Contains(got, "Author:") || strings.Contains(got, "Description:") {
		t.Errorf("empty fields rendered: %q", got)
	}
	if !strings.Contains(got, "Title: Only a title") {
		t.Errorf("title missing: %q", got)
	}
	if !strings.Contains(got, metadataDisclaimer) {
		t.Error("disclaimer missing")
	}
}

func TestMetadataTextEmpty(t *testing.T) {
	if got := (Metadata{}).Text(); got != "" {
		t.Errorf("empty metadata rendered %q, want empty string", got)
	}
}

func TestUnavailableIsNeverEmpty(t *testing.T) {
	c := unavailable()
	if strings.TrimSpace(c.Text) == "" {
		t.Error("unavailable placeholder is empty")
	}
	if c.Source != SourceMetadata {
		t.Errorf("unavailable source = %q, want %q", c.Source, SourceMetadata)
	}
}
