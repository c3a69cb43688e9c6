package terminal

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/template"

	"github.com/de-tools/text-atlas/pkg/adapters"
	"github.com/de-tools/text-atlas/pkg/models/domain"
)

const reportTemplate = `{{range .}}{{.Value}} {{.Unit}}
{{end}}`

// Reporter outputs reports to the console as one "<count> <unit>" line per metric
type Reporter struct {
	writer  io.Writer
	minimal bool
	tmpl    *template.Template
}

// NewReporter creates a new console reporter. A minimal reporter omits paragraphs and sentences.
func NewReporter(writer io.Writer, minimal bool) *Reporter {
	if writer == nil {
		writer = os.Stdout
	}
	return &Reporter{
		writer:  writer,
		minimal: minimal,
		tmpl:    template.Must(template.New("report").Parse(reportTemplate)),
	}
}

func (c *Reporter) Handle(report *domain.Report) error {
	if err := c.tmpl.Execute(c.writer, report.Details(c.minimal)); err != nil {
		return fmt.Errorf("failed to render report: %w", err)
	}
	return nil
}

// JSONReporter writes one JSON object per report
type JSONReporter struct {
	encoder *json.Encoder
}

func NewJSONReporter(writer io.Writer) *JSONReporter {
	if writer == nil {
		writer = os.Stdout
	}
	return &JSONReporter{encoder: json.NewEncoder(writer)}
}

func (j *JSONReporter) Handle(report *domain.Report) error {
	return j.encoder.Encode(adapters.MapDomainReportToAPIReport(*report))
}
