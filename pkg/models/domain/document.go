package domain

import "strings"

// Document is the text submitted for analysis, kept as the lines it was read as.
// Every line except possibly the last one ends with "\n".
type Document struct {
	Name  string
	Lines []string
}

// NewDocument splits text into lines the same way reading it line by line would.
func NewDocument(name, text string) Document {
	var lines []string
	for len(text) > 0 {
		i := strings.IndexByte(text, '\n')
		if i < 0 {
			lines = append(lines, text)
			break
		}
		lines = append(lines, text[:i+1])
		text = text[i+1:]
	}
	return Document{Name: name, Lines: lines}
}

// Text joins the lines back into the full text.
func (d Document) Text() string {
	return strings.Join(d.Lines, "")
}
