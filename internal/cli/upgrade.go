package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/netfile/pkg/netfile"
)

// upgradeCommand creates the upgrade command for re-saving a network in the
// latest format.
func (c *CLI) upgradeCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "upgrade [file.net]",
		Short: "Re-save a network in the latest format",
		Long: `Re-save a network in the latest format.

The file is loaded with the codec matching its version, brought to the
current structure, and written with the newest codec. Without --output the
file is replaced in place. Empty networks are skipped.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runUpgrade(args[0], output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: overwrite input)")

	return cmd
}

func (c *CLI) runUpgrade(input, output string) error {
	store := c.newStore()
	doc, err := store.Load(input)
	if err != nil {
		return fmt.Errorf("load %s: %w", input, err)
	}
	if doc.IsEmpty() {
		printWarning("%s has no nodes, not saving", input)
		return nil
	}

	if output == "" {
		output = input
	}
	from := netfile.Describe(doc).Version

	prog := newProgress(c.Logger)
	if err := store.Save(output, doc); err != nil {
		return fmt.Errorf("save %s: %w", output, err)
	}
	prog.done("Upgraded " + input)

	printSuccess("Network v%s → v%s", from, store.LatestVersionTag())
	printFile(netfile.NormalizePath(output))
	return nil
}
