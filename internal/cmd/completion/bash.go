package completion

import (
	"github.com/spf13/cobra"
)

// NewCmdBash creates the bash completion command.
func NewCmdBash() *cobra.Command {
	return &cobra.Command{
		Use:   "bash",
		Short: "Generate bash completion script",
		Long: `Generate bash completion script for cfx.

To load completions in your current shell session:

  source <(cfx completion bash)

To load completions for every new session:

  # Linux
  cfx completion bash > /etc/bash_completion.d/cfx

  # macOS (requires bash-completion)
  cfx completion bash > $(brew --prefix)/etc/bash_completion.d/cfx`,
		Example: `  # Load in current session
  source <(cfx completion bash)

  # Install permanently (Linux)
  cfx completion bash | sudo tee /etc/bash_completion.d/cfx > /dev/null

  # Install permanently (macOS with Homebrew)
  cfx completion bash > $(brew --prefix)/etc/bash_completion.d/cfx`,
		Args:                  cobra.NoArgs,
		DisableFlagsInUseLine: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Root().GenBashCompletion(cmd.OutOrStdout())
		},
	}
}
