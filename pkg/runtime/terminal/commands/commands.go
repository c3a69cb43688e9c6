package commands

import (
	"context"
	"io"

	"github.com/de-tools/text-atlas/pkg/models/domain"
	"github.com/de-tools/text-atlas/pkg/services/analysis"
	"github.com/de-tools/text-atlas/pkg/services/config"
	"github.com/de-tools/text-atlas/pkg/services/source"
	"github.com/spf13/cobra"
)

const (
	FormatText  = "text"
	FormatTable = "table"
	FormatJSON  = "json"
)

var Formats = []string{FormatText, FormatTable, FormatJSON}

// Environment is what a command needs at run time, built after flags are parsed
type Environment struct {
	Config  *config.Config
	Sources source.Registry
	Service analysis.Service
}

type EnvironmentFactory func(ctx context.Context) (*Environment, error)

type Reporter interface {
	Handle(report *domain.Report) error
}

type ReporterFactory func(format string, minimal bool, w io.Writer) (Reporter, error)

// reportOptions resolves output flags, falling back to the config file when a flag was not given
type reportOptions struct {
	format  string
	minimal bool
}

func (o *reportOptions) bind(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&o.format, "format", "f", FormatText, "Output format: text, table or json")
	cmd.Flags().BoolVar(&o.minimal, "minimal", false, "Only report lines, characters and words")
}

func (o *reportOptions) resolve(cmd *cobra.Command, cfg *config.Config) (format string, minimal bool) {
	format, minimal = o.format, o.minimal
	if !cmd.Flags().Changed("format") && cfg.Report.Format != "" {
		format = cfg.Report.Format
	}
	if !cmd.Flags().Changed("minimal") {
		minimal = cfg.Report.Minimal
	}
	return format, minimal
}
