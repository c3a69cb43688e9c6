// Package textstats computes line, character, word, paragraph and sentence
// counts for a text document.
//
// Segmentation is naive: words are tokens delimited by ASCII whitespace,
// paragraphs are separated by a blank line ("\n\n") and sentences by any single
// '.', '?' or '!'. Empty segments count, so "Hi. Bye!" has three sentences.
package textstats

import (
	"strings"
	"unicode/utf8"

	"github.com/de-tools/text-atlas/pkg/models/domain"
)

const (
	paragraphSeparator = "\n\n"
	sentenceDelimiters = ".?!"
)

// Analyze produces the report for doc. It never fails and keeps no state.
func Analyze(doc domain.Document) domain.Report {
	text := doc.Text()

	return domain.Report{
		Source:                doc.Name,
		LineCount:             len(doc.Lines),
		CharacterCount:        utf8.RuneCountInString(text),
		CharacterCountNoSpace: countNonSpace(text),
		WordCount:             len(strings.FieldsFunc(text, isSpace)),
		ParagraphCount:        len(strings.Split(text, paragraphSeparator)),
		SentenceCount:         countSentences(text),
	}
}

// AnalyzeText is Analyze for text that is already in memory.
func AnalyzeText(name, text string) domain.Report {
	return Analyze(domain.NewDocument(name, text))
}

// isSpace reports ASCII whitespace only: space, \t, \n, \v, \f and \r.
// NBSP and other Unicode spaces are ordinary characters.
func isSpace(r rune) bool {
	return r == ' ' || '\t' <= r && r <= '\r'
}

func countNonSpace(text string) int {
	n := 0
	for _, r := range text {
		if !isSpace(r) {
			n++
		}
	}
	return n
}

// countSentences matches the segment count of a split on every delimiter.
func countSentences(text string) int {
	n := 1
	for _, r := range text {
		if strings.ContainsRune(sentenceDelimiters, r) {
			n++
		}
	}
	return n
}
