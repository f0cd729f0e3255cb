package cli

import (
	"github.com/spf13/cobra"

	"github.com/ryanphanna/Venture/pkg/catalog"
	"github.com/ryanphanna/Venture/pkg/prefs"
)

// completionCommand creates the completion command for generating shell completions.
func (c *CLI) completionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for venture.

Bash:
  $ source <(venture completion bash)
  $ venture completion bash > /etc/bash_completion.d/venture

Zsh:
  $ echo "autoload -U compinit; compinit" >> ~/.zshrc
  $ venture completion zsh > "${fpath[1]}/_venture"

Fish:
  $ venture completion fish > ~/.config/fish/completions/venture.fish

PowerShell:
  PS> venture completion powershell | Out-String | Invoke-Expression
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(out)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
			return nil
		},
	}
}

// =============================================================================
// Dynamic Completion
// =============================================================================

type completeFunc = func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective)

// completeProfiles offers the ids of locally stored profiles.
func (c *CLI) completeProfiles(cmd *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
	store, err := prefs.NewFileStore("")
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	ids, err := store.List(cmd.Context())
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	return ids, cobra.ShellCompDirectiveNoFileComp
}

// completeFromCatalog completes the first argument from names, which is
// given the catalog the command would load.
func (c *CLI) completeFromCatalog(names func(*catalog.Catalog) []string) completeFunc {
	return func(cmd *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
		if len(args) > 0 {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}
		cfg, err := c.loadConfig()
		if err != nil {
			return nil, cobra.ShellCompDirectiveError
		}
		cat, err := c.loadCatalog(cfg)
		if err != nil {
			return nil, cobra.ShellCompDirectiveError
		}
		return names(cat), cobra.ShellCompDirectiveNoFileComp
	}
}

// institutionNames returns "id\tname" pairs, which shells show as the
// completion and its description.
func institutionNames(cat *catalog.Catalog) []string {
	out := make([]string, len(cat.Institutions))
	for i, inst := range cat.Institutions {
		out[i] = inst.ID + "\t" + inst.DisplayName()
	}
	return out
}

func exhibitNames(cat *catalog.Catalog) []string {
	out := make([]string, len(cat.Exhibits))
	for i, ex := range cat.Exhibits {
		out[i] = ex.ID + "\t" + ex.Title
	}
	return out
}
