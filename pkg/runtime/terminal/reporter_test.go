package terminal

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/de-tools/text-atlas/pkg/models/api"
	"github.com/de-tools/text-atlas/pkg/models/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var sampleReport = &domain.Report{
	Source:                "text.txt",
	LineCount:             4,
	CharacterCount:        120,
	CharacterCountNoSpace: 98,
	WordCount:             22,
	ParagraphCount:        2,
	SentenceCount:         5,
}

func TestReporter_Handle(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewReporter(&buf, false).Handle(sampleReport))

	assert.Equal(t, `4 lines
120 characters
98 characters excluding spaces
22 words
2 paragraphs
5 sentences
`, buf.String())
}

func TestReporter_Handle_Minimal(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewReporter(&buf, true).Handle(sampleReport))

	assert.Equal(t, `4 lines
120 characters
98 characters excluding spaces
22 words
`, buf.String())
}

func TestJSONReporter_Handle(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewJSONReporter(&buf).Handle(sampleReport))

	var decoded api.Report
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, api.Report{
		Source:                "text.txt",
		LineCount:             4,
		CharacterCount:        120,
		CharacterCountNoSpace: 98,
		WordCount:             22,
		ParagraphCount:        2,
		SentenceCount:         5,
	}, decoded)
	assert.Contains(t, buf.String(), `"character_count_no_space":98`)
}
