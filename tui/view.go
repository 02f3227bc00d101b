package tui

import (
	"fmt"
	"strings"

	"github.com/brensch/snekterm/game"
	"github.com/charmbracelet/lipgloss"
)

const (
	homeHelp = " [Q] Quit | [Enter] Start Game | [A/D] Difficulty "
	playHelp = " [Esc] Menu | [W/A/S/D] Move "
	title    = " GO SNAKE "
)

var (
	boardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("8"))
	statusStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			Padding(0, 1)
	menuStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("6")).
			Align(lipgloss.Center).
			Padding(1, 4)
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6"))
	hudStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("7"))
	overStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("1"))
	snakeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	foodStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
)

// Frame layout: HUD line, bordered board, status bar with its border.
const (
	hudRows    = 1
	statusRows = 3
	borderRows = 2
	borderCols = 2
)

func (m *Model) View() string {
	status := statusStyle.Width(max(m.width-borderCols, 1)).Render(m.statusText())

	var body string
	switch m.screen {
	case ScreenPlay:
		body = m.playView()
	default:
		body = m.homeView()
	}
	return lipgloss.JoinVertical(lipgloss.Left, body, status)
}

func (m *Model) statusText() string {
	if m.screen == ScreenPlay {
		return playHelp
	}
	return homeHelp
}

func (m *Model) boardSize() (cols, rows int) {
	cols = max(m.width-borderCols, 1)
	rows = max(m.height-statusRows-hudRows-borderRows, 1)
	return cols, rows
}

func (m *Model) homeView() string {
	lines := []string{
		titleStyle.Render(title),
		"",
		m.game.Difficulty().String(),
		"",
		"Press ENTER to start",
	}
	menu := menuStyle.Render(strings.Join(lines, "\n"))
	_, rows := m.boardSize()
	return lipgloss.Place(m.width, rows+hudRows+borderRows, lipgloss.Center, lipgloss.Center, menu)
}

func (m *Model) playView() string {
	snap := m.game.Snapshot()
	cols, rows := m.boardSize()
	board := colorize(drawSnapshot(snap, cols, rows).String())
	return lipgloss.JoinVertical(lipgloss.Left, hud(snap), boardStyle.Render(board))
}

func hud(snap game.Snapshot) string {
	line := fmt.Sprintf("dir: %-5s  speed: %.2f  len: %.2f  score: %d  food dist: %.2f  %s",
		snap.Direction, snap.Speed, snap.MeasuredLength, snap.Score, snap.FoodDistance(), snap.Difficulty)
	if snap.State == game.GameOver {
		return hudStyle.Render(line) + "  " + overStyle.Render("GAME OVER ("+snap.Lose.String()+")")
	}
	return hudStyle.Render(line)
}

// colorize styles snake and food glyphs. Blank cells are left alone.
func colorize(board string) string {
	var b strings.Builder
	for _, r := range board {
		switch {
		case r == glyphHead || isTrail(r):
			b.WriteString(snakeStyle.Render(string(r)))
		case r == glyphFood:
			b.WriteString(foodStyle.Render(string(r)))
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
