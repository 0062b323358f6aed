package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/diaglens/pkg/config"
	"github.com/matzehuels/diaglens/pkg/pipeline"
)

// profilesCommand creates the profiles listing command.
func (c *CLI) profilesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "profiles",
		Short: "List the built-in viewport profiles",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range config.ProfileNames() {
				vp, _ := config.Profile(name)
				fmt.Println(StyleTitle.Render(name))
				printKeyValue("target", fmt.Sprintf("%.0f × %.0f px", vp.TargetWidth, vp.TargetHeight))
				printKeyValue("width tiers", fmt.Sprintf("%.0f / %.0f / %.0f", vp.Width.Info, vp.Width.Warning, vp.Width.Error))
				printKeyValue("height tiers", fmt.Sprintf("%.0f / %.0f / %.0f", vp.Height.Info, vp.Height.Warning, vp.Height.Error))
				printNewline()
			}
			printDetail("Select with --profile or set profile in %s", config.FileName)
			return nil
		},
	}
}

// dialectsCommand creates the dialects listing command.
func (c *CLI) dialectsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "dialects",
		Short: "List the supported diagram dialects",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range pipeline.DialectNames() {
				printInfo("%s", name)
			}
			return nil
		},
	}
}
