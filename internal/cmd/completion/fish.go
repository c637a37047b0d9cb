package completion

import (
	"github.com/spf13/cobra"
)

// NewCmdFish creates the fish completion command.
func NewCmdFish() *cobra.Command {
	return &cobra.Command{
		Use:   "fish",
		Short: "Generate fish completion script",
		Long: `Generate fish completion script for cfx.

To load completions in your current shell session:

  cfx completion fish | source

To load completions for every new session:

  cfx completion fish > ~/.config/fish/completions/cfx.fish`,
		Example: `  # Load in current session
  cfx completion fish | source

  # Install permanently
  cfx completion fish > ~/.config/fish/completions/cfx.fish`,
		Args:                  cobra.NoArgs,
		DisableFlagsInUseLine: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Root().GenFishCompletion(cmd.OutOrStdout(), true)
		},
	}
}
