package api

import "time"

type Report struct {
	Source                string `json:"source,omitempty"`
	LineCount             int    `json:"line_count"`
	CharacterCount        int    `json:"character_count"`
	CharacterCountNoSpace int    `json:"character_count_no_space"`
	WordCount             int    `json:"word_count"`
	ParagraphCount        int    `json:"paragraph_count"`
	SentenceCount         int    `json:"sentence_count"`
}

type ReportRecord struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	Report    Report    `json:"report"`
}

type AnalyzeTextRequest struct {
	Name string `json:"name"`
	Text string `json:"text"`
}

type AnalyzeSourceRequest struct {
	URI string `json:"uri"`
}

type AnalyzeSourcesRequest struct {
	URIs []string `json:"uris"`
}
