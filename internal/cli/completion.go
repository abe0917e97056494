package cli

import (
	"io"
	"os"

	"github.com/spf13/cobra"
)

// completionCommand creates the completion command for generating shell
// completion scripts.
func (c *CLI) completionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate a completion script for your shell.

Load it for the current session:

  bash:        source <(tilebeat completion bash)
  zsh:         source <(tilebeat completion zsh)
  fish:        tilebeat completion fish | source
  powershell:  tilebeat completion powershell | Out-String | Invoke-Expression

Or install it permanently:

  bash:        tilebeat completion bash > /etc/bash_completion.d/tilebeat
  zsh:         tilebeat completion zsh > "${fpath[1]}/_tilebeat"
  fish:        tilebeat completion fish > ~/.config/fish/completions/tilebeat.fish

Zsh users without completion enabled should first run:

  echo "autoload -U compinit; compinit" >> ~/.zshrc
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			return writeCompletion(cmd.Root(), os.Stdout, args[0])
		},
	}
}

// writeCompletion generates the script for one shell. OnlyValidArgs has
// already restricted shell to the supported set.
func writeCompletion(root *cobra.Command, w io.Writer, shell string) error {
	switch shell {
	case "bash":
		return root.GenBashCompletion(w)
	case "zsh":
		return root.GenZshCompletion(w)
	case "fish":
		return root.GenFishCompletion(w, true)
	default:
		return root.GenPowerShellCompletionWithDesc(w)
	}
}
