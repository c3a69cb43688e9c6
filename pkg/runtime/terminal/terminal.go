package terminal

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/de-tools/text-atlas/pkg/runtime/terminal/commands"
	"github.com/de-tools/text-atlas/pkg/runtime/terminal/export"
	"github.com/de-tools/text-atlas/pkg/services/analysis"
	"github.com/de-tools/text-atlas/pkg/services/config"
	"github.com/de-tools/text-atlas/pkg/services/source"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// CLI represents the command-line interface
type CLI struct {
	input   io.Reader
	output  io.Writer
	errOut  io.Writer
	rootCmd *cobra.Command

	verbose     bool
	configPath  string
	profileFile string
	profile     string
}

// Options contain configuration for the CLI
type Options struct {
	Input  io.Reader
	Output io.Writer
	ErrOut io.Writer
}

// NewCLI creates a new CLI instance
func NewCLI(opts Options) *CLI {
	if opts.Input == nil {
		opts.Input = os.Stdin
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.ErrOut == nil {
		opts.ErrOut = os.Stderr
	}

	cli := &CLI{
		input:  opts.Input,
		output: opts.Output,
		errOut: opts.ErrOut,
	}

	cli.rootCmd = cli.newRootCmd()
	return cli
}

func (cli *CLI) Execute() error {
	return cli.rootCmd.Execute()
}

func (cli *CLI) ExecuteContext(ctx context.Context) error {
	return cli.rootCmd.ExecuteContext(ctx)
}

// SetArgs overrides os.Args
func (cli *CLI) SetArgs(args []string) {
	cli.rootCmd.SetArgs(args)
}

func (cli *CLI) newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "text-atlas",
		Short:         "Text statistics tool",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			cmd.SetContext(cli.newLogger().WithContext(cmd.Context()))
		},
	}
	cmd.SetIn(cli.input)
	cmd.SetOut(cli.output)
	cmd.SetErr(cli.errOut)

	flags := cmd.PersistentFlags()
	flags.BoolVarP(&cli.verbose, "verbose", "v", false, "Log progress to stderr")
	flags.StringVarP(&cli.configPath, "config", "c", "", "Path to a text-atlas config file")
	flags.StringVar(&cli.profileFile, "profile-file", "", "Path to the S3 profile ini file (overrides s3.profile_file)")
	flags.StringVar(&cli.profile, "profile", "", "S3 profile to use from the profile file (overrides s3.profile)")

	cmd.AddCommand(commands.NewAnalyzeCmd(cli.newEnvironment, cli.newReporter))
	cmd.AddCommand(commands.NewWatchCmd(cli.newEnvironment, cli.newReporter))
	cmd.AddCommand(commands.NewSourcesCmd(cli.newEnvironment))

	return cmd
}

func (cli *CLI) newLogger() zerolog.Logger {
	level := zerolog.WarnLevel
	if cli.verbose {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: cli.errOut, NoColor: true}).
		Level(level).
		With().
		Timestamp().
		Logger()
}

func (cli *CLI) newEnvironment(ctx context.Context) (*commands.Environment, error) {
	cfg, err := config.LoadConfig(cli.configPath)
	if err != nil {
		return nil, err
	}
	if cli.profileFile != "" {
		cfg.S3.ProfileFile = cli.profileFile
	}
	if cli.profile != "" {
		cfg.S3.Profile = cli.profile
	}

	sources, err := NewSourceRegistry(cli.input, cfg.S3)
	if err != nil {
		return nil, err
	}

	return &commands.Environment{
		Config:  cfg,
		Sources: sources,
		Service: analysis.NewService(sources, nil),
	}, nil
}

// NewSourceRegistry registers the file, stdin and s3 sources.
// The S3 profile is only read once an s3:// input is opened.
func NewSourceRegistry(stdin io.Reader, s3cfg config.S3Config) (source.Registry, error) {
	s3Source := source.NewLazyS3Source(func(ctx context.Context) (source.S3Settings, error) {
		return config.LoadS3Settings(ctx, s3cfg)
	})

	registry := source.NewRegistry()
	for scheme, src := range map[string]source.Source{
		source.SchemeFile:  source.NewFileSource(),
		source.SchemeStdin: source.NewStdinSource(stdin),
		source.SchemeS3:    s3Source,
	} {
		if err := registry.Register(scheme, src); err != nil {
			return nil, err
		}
	}
	return registry, nil
}

func (cli *CLI) newReporter(format string, minimal bool, w io.Writer) (commands.Reporter, error) {
	switch format {
	case commands.FormatText:
		return NewReporter(w, minimal), nil
	case commands.FormatTable:
		return export.NewReporter(w, minimal), nil
	case commands.FormatJSON:
		return NewJSONReporter(w), nil
	default:
		return nil, fmt.Errorf("unsupported format %q. Supported formats: %v", format, commands.Formats)
	}
}
