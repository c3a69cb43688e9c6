package commands

import (
	"fmt"
	"strings"

	"github.com/de-tools/text-atlas/pkg/services/source"
	"github.com/de-tools/text-atlas/pkg/services/watch"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

type WatchCmd struct {
	report      reportOptions
	newEnv      EnvironmentFactory
	newReporter ReporterFactory
}

func NewWatchCmd(newEnv EnvironmentFactory, newReporter ReporterFactory) *cobra.Command {
	wc := &WatchCmd{newEnv: newEnv, newReporter: newReporter}
	cmd := &cobra.Command{
		Use:   "watch <file>",
		Short: "Print a report every time a file changes",
		Args:  cobra.ExactArgs(1),
		RunE:  wc.run,
	}

	wc.report.bind(cmd)

	return cmd
}

func (wc *WatchCmd) run(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	logger := zerolog.Ctx(ctx)
	path := args[0]

	if scheme := source.Scheme(path); scheme != source.SchemeFile {
		return fmt.Errorf("only local files can be watched, got %s input", scheme)
	}
	path = strings.TrimPrefix(path, source.SchemeFile+"://")

	env, err := wc.newEnv(ctx)
	if err != nil {
		return fmt.Errorf("failed to set up analysis: %w", err)
	}

	format, minimal := wc.report.resolve(cmd, env.Config)
	reporter, err := wc.newReporter(format, minimal, cmd.OutOrStdout())
	if err != nil {
		return err
	}

	watcher, err := watch.NewFileWatcher(path)
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Stop()

	// Watch before the first report so that no change goes unnoticed.
	events, err := watcher.Watch(ctx)
	if err != nil {
		return fmt.Errorf("failed to watch %s: %w", path, err)
	}

	report, err := env.Service.Analyze(ctx, path)
	if err != nil {
		return err
	}
	if err := reporter.Handle(report); err != nil {
		return err
	}

	for event := range events {
		logger.Debug().Str("path", event.Path).Stringer("op", event.Operation).Msg("file changed")

		if event.Operation == watch.FileRemoved {
			logger.Info().Str("path", path).Msg("file removed, waiting for it to come back")
			continue
		}

		report, err := env.Service.Analyze(ctx, path)
		if err != nil {
			logger.Warn().Err(err).Msg("failed to analyze changed file")
			continue
		}
		fmt.Fprintln(cmd.OutOrStdout())
		if err := reporter.Handle(report); err != nil {
			return err
		}
	}

	return nil
}
