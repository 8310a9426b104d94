package cli

import (
	"io"
	"slices"
	"sort"

	"github.com/spf13/cobra"
)

var completionShells = map[string]func(root *cobra.Command, w io.Writer) error{
	"bash": func(root *cobra.Command, w io.Writer) error { return root.GenBashCompletionV2(w, true) },
	"zsh":  func(root *cobra.Command, w io.Writer) error { return root.GenZshCompletion(w) },
	"fish": func(root *cobra.Command, w io.Writer) error { return root.GenFishCompletion(w, true) },
	"powershell": func(root *cobra.Command, w io.Writer) error {
		return root.GenPowerShellCompletionWithDesc(w)
	},
}

func completionShellNames() []string {
	names := make([]string, 0, len(completionShells))
	for name := range completionShells {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (c *CLI) completionCommand() *cobra.Command {
	shells := completionShellNames()
	return &cobra.Command{
		Use:   "completion <shell>",
		Short: "Print a shell completion script",
		Long: `Print a completion script for waterfall to stdout.

  bash        source <(waterfall completion bash)
  zsh         waterfall completion zsh > "${fpath[1]}/_waterfall"
  fish        waterfall completion fish > ~/.config/fish/completions/waterfall.fish
  powershell  waterfall completion powershell | Out-String | Invoke-Expression

Completion for chart definitions is limited to the json, toml, yaml and
xlsx extensions.`,
		DisableFlagsInUseLine: true,
		ValidArgs:             shells,
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !slices.Contains(shells, args[0]) {
				return cmd.Usage()
			}
			return completionShells[args[0]](cmd.Root(), cmd.OutOrStdout())
		},
	}
}
