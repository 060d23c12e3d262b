package extract

import (
	"fmt"
	"strings"
)

// SourceType tags the quality of an extraction result.
// Quality order: transcript > article > metadata.
type SourceType string

const (
	SourceTranscript SourceType = "transcript"
	SourceArticle    SourceType = "article"
	SourceMetadata   SourceType = "metadata"
)

// Content is the extraction result. Text is never empty: in the worst case
// it is an explicit placeholder and Source is SourceMetadata.
type Content struct {
	Text   string     `json:"text"`
	Source SourceType `json:"source_type"`
}

const metadataDisclaimer = "Note: full content could not be retrieved, only title and description metadata are available."

const unavailableText = "Content could not be retrieved from this URL. " +
	"All extraction methods failed or timed out."

// Metadata holds title/description-level information produced by the
// metadata fallback strategies
type Metadata struct {
	Title       string
	Description string
	Author      string
}

// Text formats the metadata as a degraded but valid extraction result
func (m Metadata) Text() string {
	var sb strings.Builder
	if m.Title != "" {
		sb.WriteString(fmt.Sprintf("Title: %s\n", m.Title))
	}
	if m.Author != "" {
		sb.WriteString(fmt.Sprintf("Author: %s\n", m.Author))
	}
	if m.Description != "" {
		sb.WriteString(fmt.Sprintf("Description: %s\n", m.Description))
	}
	if sb.Len() == 0 {
		return ""
	}
	sb.WriteString("\n")
	sb.WriteString(metadataDisclaimer)
	return sb.String()
}

// unavailable is the synthetic result returned when every strategy in a
// chain has failed. It keeps the no-throw contract: downstream scoring can
// proceed at reduced confidence instead of failing the request.
func unavailable() Content {
	return Content{Text: unavailableText, Source: SourceMetadata}
}
