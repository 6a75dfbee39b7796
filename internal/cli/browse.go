package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"neuroreport/pkg/artifact"
)

// List styles
var (
	listDimStyle = lipgloss.NewStyle().Foreground(colorDim)
)

// browseCommand creates the browse command: an interactive view of how a data
// directory would be classified, without rendering anything.
func (c *CLI) browseCommand() *cobra.Command {
	var subjectsDir, subject string

	cmd := &cobra.Command{
		Use:   "browse <data-dir>",
		Short: "Interactively inspect how a data directory is classified",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			files, err := artifact.Scan(args[0], subjectsDir, subject)
			if err != nil {
				return err
			}
			if len(files) == 0 {
				printInfo("No artifacts found in %s", args[0])
				return nil
			}

			model := NewArtifactListModel(files)
			final, err := tea.NewProgram(model).Run()
			if err != nil {
				return err
			}
			if m, ok := final.(ArtifactListModel); ok && m.Selected != nil {
				printFile(m.Selected.Path)
				printDetail("kind: %s", m.Selected.Kind)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&subjectsDir, "subjects-dir", "", "anatomical subjects directory")
	cmd.Flags().StringVar(&subject, "subject", "", "subject name under subjects-dir")

	return cmd
}

// ArtifactListModel is the bubbletea model for browsing classified artifacts.
type ArtifactListModel struct {
	Files    []artifact.File
	Cursor   int
	Selected *artifact.File
	Height   int
	Offset   int
}

// NewArtifactListModel creates a new artifact list model.
func NewArtifactListModel(files []artifact.File) ArtifactListModel {
	return ArtifactListModel{
		Files:  files,
		Height: 15,
	}
}

func (m ArtifactListModel) Init() tea.Cmd {
	return nil
}

func (m ArtifactListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
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
			if m.Cursor < len(m.Files)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter":
			f := m.Files[m.Cursor]
			m.Selected = &f
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

func (m ArtifactListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Classified Artifacts"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ select  q quit"))
	b.WriteString("\n\n")

	end := m.Offset + m.Height
	if end > len(m.Files) {
		end = len(m.Files)
	}

	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		f := m.Files[i]

		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}

		naming := "✓"
		if !artifact.Conventional(f.Path) {
			naming = iconWarning
		}

		rows = append(rows, []string{cursor, filepath.Base(f.Path), string(f.Kind), naming})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "File", "Kind", "Naming").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}

			actualIdx := m.Offset + row
			if actualIdx >= len(m.Files) {
				return lipgloss.NewStyle()
			}
			f := m.Files[actualIdx]
			isCurrent := actualIdx == m.Cursor

			base := lipgloss.NewStyle()
			if f.Kind == artifact.KindUnknown {
				base = base.Foreground(colorDim)
			}
			if isCurrent {
				return base.Foreground(colorGreen).Bold(true)
			}
			return base
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Files))))

	return b.String()
}
