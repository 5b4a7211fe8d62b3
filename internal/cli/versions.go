package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/netfile/pkg/netfile"
)

// versionsCommand creates the versions command listing known formats.
func (c *CLI) versionsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "versions",
		Short: "List the network format versions this build reads",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			registry := netfile.DefaultRegistry()
			latest := registry.Latest()
			for _, codec := range registry.Codecs() {
				label := "v" + codec.Tag
				if codec == latest {
					printSuccess("%-4s %s %s", label, codec.Family.Name, StyleSuccess.Render("(written on save)"))
					continue
				}
				printInfo("%-4s %s", label, codec.Family.Name)
			}
		},
	}
}
