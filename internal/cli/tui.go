package cli

import (
	"fmt"
	"io"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/adofai-tools/tilebeat/pkg/timing"
)

// List styles
var (
	listDimStyle = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// TileListModel - Interactive tile state browser
// =============================================================================

// TileListModel is the bubbletea model for browsing per-tile engine state.
// Each row shows the resolved state of one tile after event application and
// propagation, alongside its computed hit time.
type TileListModel struct {
	Song   string
	Tiles  []timing.Tile
	Times  []float64
	Cursor int
	Height int
	Offset int
}

// NewTileListModel creates a new tile browser model.
// Tiles and times must have equal length.
func NewTileListModel(song string, tiles []timing.Tile, times []float64) TileListModel {
	return TileListModel{
		Song:   song,
		Tiles:  tiles,
		Times:  times,
		Height: 15,
	}
}

func (m TileListModel) Init() tea.Cmd {
	return nil
}

func (m TileListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
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
			if m.Cursor < len(m.Tiles)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "pgup":
			m.Cursor -= m.Height
			if m.Cursor < 0 {
				m.Cursor = 0
			}
			if m.Cursor < m.Offset {
				m.Offset = m.Cursor
			}
		case "pgdown":
			m.Cursor += m.Height
			if m.Cursor > len(m.Tiles)-1 {
				m.Cursor = len(m.Tiles) - 1
			}
			if m.Cursor >= m.Offset+m.Height {
				m.Offset = m.Cursor - m.Height + 1
			}
		case "g", "home":
			m.Cursor = 0
			m.Offset = 0
		case "G", "end":
			m.Cursor = len(m.Tiles) - 1
			m.Offset = m.Cursor - m.Height + 1
			if m.Offset < 0 {
				m.Offset = 0
			}
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 8
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m TileListModel) View() string {
	var b strings.Builder

	title := "Tile Inspector"
	if m.Song != "" {
		title = "Tile Inspector - " + m.Song
	}
	b.WriteString(StyleTitle.Render(title))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  g/G first/last  q quit"))
	b.WriteString("\n\n")

	end := m.Offset + m.Height
	if end > len(m.Tiles) {
		end = len(m.Tiles)
	}

	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		rows = append(rows, tileRow(i, m.Tiles[i], m.Times[i], i == m.Cursor))
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Tile", "Angle", "BPM", "Dir", "Hold", "Flags", "Time (ms)").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}

			actualIdx := m.Offset + row
			if actualIdx >= len(m.Tiles) {
				return lipgloss.NewStyle()
			}

			if actualIdx == m.Cursor {
				return lipgloss.NewStyle().Foreground(colorGreen).Bold(true)
			}
			if col == 6 {
				return lipgloss.NewStyle().Foreground(colorDim)
			}
			return lipgloss.NewStyle()
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Tiles))))

	return b.String()
}

// =============================================================================
// Table Rendering
// =============================================================================

// tileRow formats one tile's state as table cells. The first cell is the
// cursor column used by the interactive browser.
func tileRow(i int, t timing.Tile, ms float64, current bool) []string {
	cursor := "  "
	if current {
		cursor = StyleSuccess.Render("▸") + " "
	}

	dir := "CW"
	if t.Direction < 0 {
		dir = "CCW"
	}

	hold := "—"
	if t.ExtraHold > 0 {
		hold = fmt.Sprintf("%.2f", t.ExtraHold)
	}

	return []string{
		cursor,
		fmt.Sprintf("%d", i+1),
		fmt.Sprintf("%.1f°", t.Angle),
		fmt.Sprintf("%.2f", t.BPM),
		dir,
		hold,
		tileFlags(t),
		fmt.Sprintf("%.2f", ms),
	}
}

// tileFlags renders the midspin and multi-planet markers for a tile.
func tileFlags(t timing.Tile) string {
	var flags []string
	if t.Midspin {
		flags = append(flags, "midspin")
	}
	if t.MultiPlanet {
		flags = append(flags, "3-planet")
	}
	if len(flags) == 0 {
		return "—"
	}
	return strings.Join(flags, ",")
}

// writeTileTable prints the full tile table without interactive controls.
func writeTileTable(w io.Writer, tiles []timing.Tile, times []float64) error {
	rows := make([][]string, 0, len(tiles))
	for i, tile := range tiles {
		rows = append(rows, tileRow(i, tile, times[i], false)[1:])
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("Tile", "Angle", "BPM", "Dir", "Hold", "Flags", "Time (ms)").
		Rows(rows...)

	_, err := fmt.Fprintln(w, t.Render())
	return err
}
