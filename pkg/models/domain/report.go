package domain

// Report represents the counts produced by a single analysis
type Report struct {
	Source                string
	LineCount             int
	CharacterCount        int
	CharacterCountNoSpace int
	WordCount             int
	ParagraphCount        int
	SentenceCount         int
}

// ReportDetail represents one row of a rendered report
type ReportDetail struct {
	Name        string
	Value       int
	Unit        string
	Description string
}

// Details lists the report rows in output order. The minimal variant stops after words.
func (r Report) Details(minimal bool) []ReportDetail {
	details := []ReportDetail{
		{Name: "Lines", Value: r.LineCount, Unit: "lines", Description: "Line-break delimited records"},
		{Name: "Characters", Value: r.CharacterCount, Unit: "characters", Description: "All characters including whitespace"},
		{Name: "Non-space characters", Value: r.CharacterCountNoSpace, Unit: "characters excluding spaces", Description: "Characters other than whitespace"},
		{Name: "Words", Value: r.WordCount, Unit: "words", Description: "Whitespace delimited tokens"},
	}
	if minimal {
		return details
	}
	return append(details,
		ReportDetail{Name: "Paragraphs", Value: r.ParagraphCount, Unit: "paragraphs", Description: "Segments separated by a blank line"},
		ReportDetail{Name: "Sentences", Value: r.SentenceCount, Unit: "sentences", Description: "Segments separated by '.', '?' or '!'"},
	)
}
