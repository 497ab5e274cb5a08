package calculator

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/msto63/mRechner/internal/background"
	"github.com/msto63/mRechner/internal/keymap"
)

// textShade darkens the wallpaper behind text so it stays readable
const textShade = 0.55

// View renders the UI
func (m Model) View() string {
	if m.bg.HasImage() && m.width > 0 && m.height > 0 {
		return m.backgroundView()
	}
	return m.styledView()
}

// styledView renders the calculator with lipgloss styles
func (m Model) styledView() string {
	var rows []string

	header := m.styles.Title.Render(m.tr.T("label.title"))
	if m.display.HasMemory {
		gap := bodyWidth - lipgloss.Width(header) - 1
		header += strings.Repeat(" ", max(gap, 1)) + m.styles.Memory.Render(m.tr.T("label.memory"))
	}
	rows = append(rows, header)

	result := m.styles.Result.Render(m.display.Result)
	if m.errText != "" {
		result = m.styles.Error.Render(m.errText)
	}
	rows = append(rows, m.styles.Display.Render(lipgloss.JoinVertical(lipgloss.Right,
		m.styles.Expression.Render(orSpace(m.display.Expression)),
		result,
	)))

	var mem []string
	for _, symbol := range keymap.MemoryRow {
		style := m.styles.MemoryKey
		if symbol == m.pressed {
			style = m.styles.PressedKey.Width(memoryKeyWidth)
		}
		mem = append(mem, style.Render(symbol))
	}
	rows = append(rows, strings.Join(mem, " "))

	for _, row := range keymap.Keypad {
		var cells []string
		for _, symbol := range row {
			cells = append(cells, m.styles.keyStyle(symbol, symbol == m.pressed).Render(symbol))
		}
		rows = append(rows, strings.Join(cells, " "))
	}

	calc := lipgloss.JoinVertical(lipgloss.Left, rows...)
	if m.showHistory {
		panel := m.styles.Panel.Render(lipgloss.JoinVertical(lipgloss.Left,
			m.styles.PanelTitle.Render(m.tr.T("label.history")),
			m.historyView.View(),
		))
		calc = lipgloss.JoinHorizontal(lipgloss.Top, calc, "  ", panel)
	}

	return lipgloss.JoinVertical(lipgloss.Left, calc, m.footer(), m.help.View(m.keys))
}

func (m Model) footer() string {
	if m.prompting {
		return m.styles.Prompt.Render(m.tr.T("label.background_prompt")+": ") + m.prompt.View()
	}
	return m.styles.Status.Render(orSpace(m.status))
}

// backgroundView prints the calculator as plain text over the
// half-block rendering of the background image
func (m Model) backgroundView() string {
	lines := m.plainLines()
	if m.showHistory {
		lines = sideBySide(lines, m.historyLines(len(lines)), bodyWidth+2)
	}

	lines = append(lines, "")
	if m.prompting {
		lines = append(lines, m.tr.T("label.background_prompt")+": "+m.prompt.Value()+"_")
	} else {
		lines = append(lines, m.status)
	}
	lines = append(lines, m.plainHelp())

	img := m.bg.Image(background.CellSize(m.width, m.height))
	return background.Compose(img, lines, m.width, m.height, m.theme.Foreground, textShade)
}

// plainLines lays out the calculator as unstyled text of bodyWidth cells
func (m Model) plainLines() []string {
	title := m.tr.T("label.title")
	if m.display.HasMemory {
		title = padRight(title, bodyWidth-1) + m.tr.T("label.memory")
	}

	result := m.display.Result
	if m.errText != "" {
		result = m.errText
	}

	lines := []string{
		padRight(title, bodyWidth),
		padLeft(m.display.Expression, bodyWidth),
		padLeft(result, bodyWidth),
		strings.Repeat("─", bodyWidth),
	}

	var mem []string
	for _, symbol := range keymap.MemoryRow {
		mem = append(mem, center(symbol, memoryKeyWidth))
	}
	lines = append(lines, padRight(strings.Join(mem, " "), bodyWidth))

	for _, row := range keymap.Keypad {
		var cells []string
		for _, symbol := range row {
			left, right := "[", "]"
			if symbol == m.pressed {
				left, right = "«", "»"
			}
			cells = append(cells, left+center(symbol, keyWidth-2)+right)
		}
		lines = append(lines, strings.Join(cells, " "))
	}
	return lines
}

// historyLines renders the history newest first as plain text
func (m Model) historyLines(height int) []string {
	lines := []string{m.tr.T("label.history")}
	if len(m.entries) == 0 {
		return append(lines, m.tr.T("label.history_empty"))
	}
	for i := len(m.entries) - 1; i >= 0 && len(lines) < height; i-- {
		marker := "  "
		if i == m.selected {
			marker = "› "
		}
		lines = append(lines, truncate(marker+entryText(m.entries[i].Expression, m.entries[i].Result), historyWidth))
	}
	return lines
}

// updateHistoryView refreshes the history viewport content
func (m *Model) updateHistoryView() {
	if len(m.entries) == 0 {
		m.historyView.SetContent(m.styles.HistoryItem.Render(m.tr.T("label.history_empty")))
		return
	}

	var sb strings.Builder
	line, selectedLine := 0, 0
	for i := len(m.entries) - 1; i >= 0; i-- {
		e := m.entries[i]
		text := truncate(entryText(e.Expression, e.Result), historyWidth-2)
		if i == m.selected {
			sb.WriteString(m.styles.Selected.Render(text))
			selectedLine = line
		} else {
			sb.WriteString(m.styles.HistoryItem.Render(e.Expression+" = ") + m.styles.HistoryResult.Render(e.Result))
		}
		sb.WriteByte('\n')
		line++
	}
	m.historyView.SetContent(strings.TrimSuffix(sb.String(), "\n"))

	if selectedLine < m.historyView.YOffset {
		m.historyView.SetYOffset(selectedLine)
	} else if selectedLine >= m.historyView.YOffset+m.historyView.Height {
		m.historyView.SetYOffset(selectedLine - m.historyView.Height + 1)
	}
}

func (m Model) plainHelp() string {
	var parts []string
	for _, b := range m.keys.ShortHelp() {
		h := b.Help()
		parts = append(parts, h.Key+" "+h.Desc)
	}
	return strings.Join(parts, " • ")
}

func entryText(expression, result string) string {
	return expression + " = " + result
}

// sideBySide appends right to left, padding left lines to width
func sideBySide(left, right []string, width int) []string {
	n := max(len(left), len(right))
	out := make([]string, n)
	for i := 0; i < n; i++ {
		var l, r string
		if i < len(left) {
			l = left[i]
		}
		if i < len(right) {
			r = right[i]
		}
		out[i] = padRight(l, width) + r
	}
	return out
}

func padRight(s string, width int) string {
	if w := lipgloss.Width(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}

func padLeft(s string, width int) string {
	if w := lipgloss.Width(s); w < width {
		return strings.Repeat(" ", width-w) + s
	}
	return s
}

func center(s string, width int) string {
	gap := width - lipgloss.Width(s)
	if gap <= 0 {
		return s
	}
	left := gap / 2
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", gap-left)
}

func truncate(s string, width int) string {
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	return string(r[:width-1]) + "…"
}

func orSpace(s string) string {
	if s == "" {
		return " "
	}
	return s
}
