package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

type SourcesCmd struct {
	newEnv EnvironmentFactory
}

func NewSourcesCmd(newEnv EnvironmentFactory) *cobra.Command {
	sc := &SourcesCmd{newEnv: newEnv}
	return &cobra.Command{
		Use:   "sources",
		Short: "List supported input URI schemes",
		Args:  cobra.NoArgs,
		RunE:  sc.run,
	}
}

func (sc *SourcesCmd) run(cmd *cobra.Command, _ []string) error {
	env, err := sc.newEnv(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to set up sources: %w", err)
	}

	schemes := env.Sources.ListSchemes()
	if len(schemes) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No input sources registered")
		return nil
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Supported input schemes:\n%s\n", strings.Join(schemes, "\n"))
	return nil
}
