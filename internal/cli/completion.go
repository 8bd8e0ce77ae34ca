package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/webgraph/pkg/layout"
	"github.com/matzehuels/webgraph/pkg/render"
)

// completionCommand creates the completion command for generating shell completions.
func (c *CLI) completionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for webgraph.

Completions cover subcommands, flags and the fixed flag values: render
formats, node types and layout algorithms. Config flags complete to .toml
and .yaml files.

  $ source <(webgraph completion bash)
  $ webgraph completion zsh > "${fpath[1]}/_webgraph"
  $ webgraph completion fish > ~/.config/fish/completions/webgraph.fish
  PS> webgraph completion powershell | Out-String | Invoke-Expression`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletionV2(out, true)
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

// completeConfigFlag restricts --config completion to config files.
func completeConfigFlag(cmd *cobra.Command) {
	_ = cmd.MarkFlagFilename("config", "toml", "yaml", "yml")
}

// completeRenderFlags registers value completions for the render flags.
func completeRenderFlags(cmd *cobra.Command) {
	completeConfigFlag(cmd)
	_ = cmd.RegisterFlagCompletionFunc("format",
		cobra.FixedCompletions(renderFormats, cobra.ShellCompDirectiveNoFileComp))

	types := make([]string, len(render.NodeTypes))
	for i, t := range render.NodeTypes {
		types[i] = string(t)
	}
	_ = cmd.RegisterFlagCompletionFunc("node-type",
		cobra.FixedCompletions(types, cobra.ShellCompDirectiveNoFileComp))
}

// completeLayoutFlags registers value completions for the layout flags.
func completeLayoutFlags(cmd *cobra.Command) {
	_ = cmd.RegisterFlagCompletionFunc("algorithm",
		cobra.FixedCompletions(layout.Algorithms, cobra.ShellCompDirectiveNoFileComp))
}
