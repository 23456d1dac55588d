package commands

import (
	"os"

	"github.com/spf13/cobra"
)

// Completion returns the completion command for shell autocompletion.
func Completion() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for infradraft.

To load completions:

Bash:
  $ source <(infradraft completion bash)
  # To load completions for each session, execute once:
  # Linux:
  $ infradraft completion bash > /etc/bash_completion.d/infradraft
  # macOS:
  $ infradraft completion bash > $(brew --prefix)/etc/bash_completion.d/infradraft

Zsh:
  # If shell completion is not already enabled in your environment,
  # you will need to enable it. Execute the following once:
  $ echo "autoload -U compinit; compinit" >> ~/.zshrc
  # To load completions for each session, execute once:
  $ infradraft completion zsh > "${fpath[1]}/_infradraft"
  # You will need to start a new shell for this setup to take effect.

Fish:
  $ infradraft completion fish | source
  # To load completions for each session, execute once:
  $ infradraft completion fish > ~/.config/fish/completions/infradraft.fish

PowerShell:
  PS> infradraft completion powershell | Out-String | Invoke-Expression
  # To load completions for every new session, run:
  PS> infradraft completion powershell > infradraft.ps1
  # and source this file from your PowerShell profile.
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(os.Stdout)
			case "zsh":
				return cmd.Root().GenZshCompletion(os.Stdout)
			case "fish":
				return cmd.Root().GenFishCompletion(os.Stdout, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(os.Stdout)
			}
			return nil
		},
	}
	return cmd
}
