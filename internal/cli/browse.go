package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/netfile/internal/config"
	"github.com/matzehuels/netfile/pkg/errors"
	"github.com/matzehuels/netfile/pkg/netfile"
	"github.com/matzehuels/netfile/pkg/platform"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listDirStyle      = lipgloss.NewStyle().Foreground(colorBlue)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// browseCommand creates the browse command for picking networks interactively.
func (c *CLI) browseCommand() *cobra.Command {
	var media bool

	cmd := &cobra.Command{
		Use:   "browse [dir]",
		Short: "Pick network files interactively and show their provenance",
		Long: `Pick network files interactively and show their provenance.

Without a directory argument the browser opens in net_path from the config
file. Directories can be entered; picking a network loads it and prints its
summary, then the browser reopens. With follow_cwd set the browser reopens
in the directory of the last picked network.

Use --media to start from mounted removable media instead.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			start := c.Config.NetPath
			if len(args) == 1 {
				start = args[0]
			}
			dir, err := config.TranslateFileURI(start)
			if err != nil {
				return fmt.Errorf("browse directory: %w", err)
			}
			return c.runBrowse(newBrowser(dir, c.Config.FollowCWD), media)
		},
	}

	cmd.Flags().BoolVar(&media, "media", false, "start from mounted media directories")

	return cmd
}

// browser carries the browse directory across picks.
type browser struct {
	dir    string
	follow bool
}

func newBrowser(dir string, follow bool) *browser {
	return &browser{dir: dir, follow: follow}
}

// picked records a chosen network. With follow set, the next listing opens
// in the network's directory.
func (b *browser) picked(path string) {
	if b.follow {
		b.dir = filepath.Dir(path)
	}
}

func (c *CLI) runBrowse(b *browser, media bool) error {
	store := c.newStore()
	for {
		var model FileListModel
		if media {
			model = NewMediaListModel(platform.MediaDirs())
			media = false
		} else {
			model = NewFileListModel(b.dir)
		}
		if model.Err != nil {
			return fmt.Errorf("list %s: %w", b.dir, model.Err)
		}
		if len(model.Entries) == 0 {
			printWarning("Nothing to browse in %s", model.Title)
			return nil
		}

		final, err := tea.NewProgram(model).Run()
		if err != nil {
			return fmt.Errorf("browser: %w", err)
		}
		m := final.(FileListModel)
		if m.Selected == nil {
			return nil
		}

		path := m.Selected.Path
		doc, err := store.Load(path)
		if err != nil {
			printError("%s could not be loaded: %s", path, errors.UserMessage(err))
		} else {
			printSummary(path, doc, store.LatestVersionTag())
		}
		b.picked(path)
		printNewline()
	}
}

// =============================================================================
// FileListModel - Interactive network file selection
// =============================================================================

// FileEntry is one row of the file browser.
type FileEntry struct {
	Label string
	Path  string
	Dir   bool
}

// FileListModel is the bubbletea model for picking a network file.
// Entering a directory relists in place.
type FileListModel struct {
	Title    string
	Entries  []FileEntry
	Cursor   int
	Offset   int
	Height   int
	Selected *FileEntry
	Err      error
}

// NewFileListModel lists dir's subdirectories and network files.
func NewFileListModel(dir string) FileListModel {
	m := FileListModel{Height: 15}
	m.chdir(dir)
	return m
}

// NewMediaListModel lists mounted media directories given as file:// URIs.
func NewMediaListModel(uris []string) FileListModel {
	m := FileListModel{Title: "Mounted media", Height: 15}
	for _, uri := range uris {
		path, err := config.TranslateFileURI(uri)
		if err != nil {
			continue
		}
		m.Entries = append(m.Entries, FileEntry{Label: path + "/", Path: path, Dir: true})
	}
	return m
}

func (m *FileListModel) chdir(dir string) {
	entries, err := listNetworkDir(dir)
	if err != nil {
		m.Err = err
		return
	}
	m.Title, m.Entries, m.Err = dir, entries, nil
	m.Cursor, m.Offset = 0, 0
}

// listNetworkDir returns the parent link, visible subdirectories and
// network files of dir, directories first.
func listNetworkDir(dir string) ([]FileEntry, error) {
	des, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var dirs, files []FileEntry
	if parent := filepath.Dir(dir); parent != dir {
		dirs = append(dirs, FileEntry{Label: "../", Path: parent, Dir: true})
	}
	for _, de := range des {
		name := de.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}
		path := filepath.Join(dir, name)
		switch {
		case de.IsDir():
			dirs = append(dirs, FileEntry{Label: name + "/", Path: path, Dir: true})
		case de.Type().IsRegular() && strings.HasSuffix(name, netfile.Extension):
			files = append(files, FileEntry{Label: name, Path: path})
		}
	}
	return append(dirs, files...), nil
}

func (m FileListModel) Init() tea.Cmd {
	return nil
}

func (m FileListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Entries)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter":
			if len(m.Entries) == 0 {
				return m, nil
			}
			entry := m.Entries[m.Cursor]
			if entry.Dir {
				m.chdir(entry.Path)
				return m, nil
			}
			m.Selected = &entry
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 6
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m FileListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(m.Title))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ open  q quit"))
	b.WriteString("\n\n")

	if m.Err != nil {
		b.WriteString(StyleWarning.Render(m.Err.Error()))
		b.WriteString("\n\n")
	}

	end := min(m.Offset+m.Height, len(m.Entries))
	for i := m.Offset; i < end; i++ {
		e := m.Entries[i]
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		line := cursor + e.Label

		switch {
		case i == m.Cursor:
			b.WriteString(listSelectedStyle.Render(line))
		case e.Dir:
			b.WriteString(listDirStyle.Render(line))
		default:
			b.WriteString(listNormalStyle.Render(line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Entries))))

	return b.String()
}
