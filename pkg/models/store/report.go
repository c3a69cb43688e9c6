package store

import "time"

type ReportRecord struct {
	ID                    string
	Source                string
	CreatedAt             time.Time
	LineCount             int64
	CharacterCount        int64
	CharacterCountNoSpace int64
	WordCount             int64
	ParagraphCount        int64
	SentenceCount         int64
}
