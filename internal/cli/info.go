package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/matzehuels/netfile/pkg/errors"
	"github.com/matzehuels/netfile/pkg/netfile"
)

// infoCommand creates the info command for summarizing a network file.
func (c *CLI) infoCommand() *cobra.Command {
	var (
		watch    bool
		debounce time.Duration
	)

	cmd := &cobra.Command{
		Use:   "info [file.net]",
		Short: "Show the provenance of a network file",
		Long: `Show the provenance of a network file.

The file may be in any released format. Its version, the application
version that saved it, the save date and the platform table are printed
along with node counts. Nothing is written.

With --watch the summary is printed again every time the file is saved.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.runInfo(args[0]); err != nil {
				return err
			}
			if !watch {
				return nil
			}
			return c.watchInfo(cmd.Context(), args[0], debounce)
		},
	}

	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "print the summary again after every save")
	cmd.Flags().DurationVar(&debounce, "debounce", 300*time.Millisecond, "debounce window for batching file events")

	return cmd
}

func (c *CLI) runInfo(path string) error {
	store := c.newStore()
	doc, err := store.Load(path)
	if err != nil {
		return fmt.Errorf("load %s: %w", path, err)
	}
	printSummary(path, doc, store.LatestVersionTag())
	return nil
}

// printSummary renders the provenance rows of a loaded document.
func printSummary(path string, doc netfile.Document, latest string) {
	info := netfile.Describe(doc)

	fmt.Println(StyleTitle.Render(path))
	for _, row := range info.Rows() {
		printKeyValue(row[0], row[1])
	}
	printDetail("%d nodes · %d macro nodes", info.Nodes, info.MacroNodes)

	if netfile.CompareTags(info.Version, latest) < 0 {
		printNewline()
		printNextStep("Re-save in network v"+latest, appName+" upgrade "+path)
	}
}

// watchInfo reprints the summary of path after each save until ctx ends.
// Saves land by rename, so the parent directory is watched rather than the
// file itself.
func (c *CLI) watchInfo(ctx context.Context, path string, debounce time.Duration) error {
	target, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolve %s: %w", path, err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(filepath.Dir(target)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(target), err)
	}
	printInfo("Watching %s for saves", path)

	timer := time.NewTimer(0)
	if !timer.Stop() {
		<-timer.C
	}
	pending := false

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !isSaveEvent(event, target) {
				continue
			}
			if !pending {
				timer.Reset(debounce)
				pending = true
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			c.Logger.Warn("watch error", "err", err)
		case <-timer.C:
			pending = false
			printNewline()
			if err := c.runInfo(path); err != nil {
				printError("%s", errors.UserMessage(err))
			}
		}
	}
}

// isSaveEvent reports whether event leaves a new version of target in place.
func isSaveEvent(event fsnotify.Event, target string) bool {
	if filepath.Clean(event.Name) != target {
		return false
	}
	return event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0
}
