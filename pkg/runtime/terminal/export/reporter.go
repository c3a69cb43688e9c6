package export

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/template"

	"github.com/de-tools/text-atlas/pkg/models/domain"
)

type TableConfig struct {
	NameWidth        int
	ValueWidth       int
	UnitWidth        int
	DescriptionWidth int
}

func DefaultTableConfig() TableConfig {
	return TableConfig{
		NameWidth:        22,
		ValueWidth:       10,
		UnitWidth:        27,
		DescriptionWidth: 38,
	}
}

// Reporter renders a report as a bordered table
type Reporter struct {
	writer  io.Writer
	config  TableConfig
	minimal bool
	tmpl    *template.Template
}

func NewReporter(writer io.Writer, minimal bool) *Reporter {
	if writer == nil {
		writer = os.Stdout
	}
	r := &Reporter{
		writer:  writer,
		config:  DefaultTableConfig(),
		minimal: minimal,
	}
	r.tmpl = template.Must(template.New("report").Funcs(r.funcMap()).Parse(tableTemplate))
	return r
}

const tableTemplate = `{{if .Source}}Source: {{.Source}}
{{end}}{{separator}}
{{formatRow "Metric" "Value" "Unit" "Description"}}
{{separator}}
{{range .Details}}{{formatRow .Name .Value .Unit .Description}}
{{end}}{{separator}}
`

type tableData struct {
	Source  string
	Details []domain.ReportDetail
}

func (c *Reporter) funcMap() template.FuncMap {
	return template.FuncMap{
		"formatRow": func(name string, value interface{}, unit string, desc string) string {
			return fmt.Sprintf("| %-*s | %*v | %-*s | %-*s |",
				c.config.NameWidth, name,
				c.config.ValueWidth, value,
				c.config.UnitWidth, unit,
				c.config.DescriptionWidth, desc)
		},
		"separator": func() string {
			return fmt.Sprintf("+%s+%s+%s+%s+",
				strings.Repeat("-", c.config.NameWidth+2),
				strings.Repeat("-", c.config.ValueWidth+2),
				strings.Repeat("-", c.config.UnitWidth+2),
				strings.Repeat("-", c.config.DescriptionWidth+2))
		},
	}
}

func (c *Reporter) Handle(report *domain.Report) error {
	data := tableData{
		Source:  report.Source,
		Details: report.Details(c.minimal),
	}
	if err := c.tmpl.Execute(c.writer, data); err != nil {
		return fmt.Errorf("failed to render report table: %w", err)
	}
	return nil
}
