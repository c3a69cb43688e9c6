package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

type AnalyzeCmd struct {
	report      reportOptions
	newEnv      EnvironmentFactory
	newReporter ReporterFactory
}

func NewAnalyzeCmd(newEnv EnvironmentFactory, newReporter ReporterFactory) *cobra.Command {
	ac := &AnalyzeCmd{newEnv: newEnv, newReporter: newReporter}
	cmd := &cobra.Command{
		Use:   "analyze [file|s3://bucket/key|-]...",
		Short: "Count lines, characters, words, paragraphs and sentences",
		Long: `Analyze prints a report for every input. Inputs are local paths,
file:// or s3:// URIs, or "-" for standard input (the default).`,
		RunE: ac.run,
	}

	ac.report.bind(cmd)

	return cmd
}

func (ac *AnalyzeCmd) run(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	env, err := ac.newEnv(ctx)
	if err != nil {
		return fmt.Errorf("failed to set up analysis: %w", err)
	}

	format, minimal := ac.report.resolve(cmd, env.Config)
	reporter, err := ac.newReporter(format, minimal, cmd.OutOrStdout())
	if err != nil {
		return err
	}

	if len(args) == 0 {
		args = []string{"-"}
	}

	reports, err := env.Service.AnalyzeAll(ctx, args)
	if err != nil {
		return err
	}

	// Tables carry their own source line; JSON is one object per line.
	for i := range reports {
		if i > 0 && format != FormatJSON {
			fmt.Fprintln(cmd.OutOrStdout())
		}
		if len(reports) > 1 && format == FormatText {
			fmt.Fprintf(cmd.OutOrStdout(), "==> %s <==\n", reports[i].Source)
		}
		if err := reporter.Handle(&reports[i]); err != nil {
			return err
		}
	}

	return nil
}
