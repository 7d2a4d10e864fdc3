package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"partpick/internal"
	"partpick/internal/catalog"
	"partpick/internal/pipeline"
)

var (
	accent  = lipgloss.Color("#6366F1")
	dimGray = lipgloss.Color("#6B7280")
	white   = lipgloss.Color("#F9FAFB")
	red     = lipgloss.Color("#EF4444")
	green   = lipgloss.Color("#10B981")
	slate   = lipgloss.Color("#374151")

	titleStyle     = lipgloss.NewStyle().Foreground(white).Bold(true)
	dimStyle       = lipgloss.NewStyle().Foreground(dimGray)
	errorStyle     = lipgloss.NewStyle().Foreground(red)
	successStyle   = lipgloss.NewStyle().Foreground(green)
	activeChip     = lipgloss.NewStyle().Foreground(white).Background(accent).Padding(0, 1)
	inactiveChip   = lipgloss.NewStyle().Foreground(dimGray).Padding(0, 1)
	selectedChip   = lipgloss.NewStyle().Foreground(white).Background(slate).Padding(0, 1)
	cursorStyle    = lipgloss.NewStyle().Foreground(accent).Bold(true)
	outputBoxStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(accent).Padding(0, 1)
)

const listHeight = 15

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("부품 선택 → 쉼표 데이터"))
	b.WriteString("\n\n")
	b.WriteString(m.search.View())
	b.WriteString("\n")
	b.WriteString(m.renderCategories())
	b.WriteString("\n\n")
	b.WriteString(m.renderList())
	b.WriteString("\n")

	if chips := m.renderSelected(); chips != "" {
		b.WriteString(chips)
		b.WriteString("\n")
	}

	output := m.store.Output()
	if output == "" {
		output = dimStyle.Render("(선택된 항목 없음)")
	}
	b.WriteString(outputBoxStyle.Render(output))
	b.WriteString("\n")

	if m.mode == modeQuantity || m.mode == modePath {
		b.WriteString(m.input.View())
		b.WriteString("\n")
	}

	if m.status != "" {
		if m.statusErr {
			b.WriteString(errorStyle.Render(m.status))
		} else {
			b.WriteString(successStyle.Render(m.status))
		}
		b.WriteString("\n")
	}
	b.WriteString(m.renderHelp())
	return b.String()
}

func (m Model) renderCategories() string {
	cats := m.store.Categories()
	parts := make([]string, 0, len(cats))
	for _, c := range cats {
		if c == m.store.Category() {
			parts = append(parts, activeChip.Render(c))
		} else {
			parts = append(parts, inactiveChip.Render(c))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (m Model) renderList() string {
	visible := m.store.Visible()
	header := dimStyle.Render(fmt.Sprintf("부품 리스트 (%d)", len(visible)))
	if len(visible) == 0 {
		lines := []string{header, dimStyle.Render("검색 결과가 없습니다.")}
		if m.store.Query() != "" && m.suggestLimit > 0 {
			pool := m.store.Filter("", m.store.Category())
			if hints := pipeline.Suggest(pool, m.store.Query(), m.suggestLimit); len(hints) > 0 {
				names := make([]string, 0, len(hints))
				for _, h := range hints {
					names = append(names, h.Name)
				}
				lines = append(lines, dimStyle.Render("혹시: "+strings.Join(names, ", ")))
			}
		}
		return strings.Join(lines, "\n")
	}

	cursor := min(max(m.cursor, 0), len(visible)-1)
	start := 0
	if cursor >= listHeight {
		start = cursor - listHeight + 1
	}
	end := min(start+listHeight, len(visible))

	lines := []string{header}
	for i := start; i < end; i++ {
		lines = append(lines, m.renderRow(visible[i], i == cursor))
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderRow(item internal.Item, focused bool) string {
	box := "[ ]"
	qty := ""
	if m.store.IsSelected(item.ID) {
		box = "[x]"
		qty = fmt.Sprintf("  수량 %d", m.store.Quantity(item.ID))
	}
	line := fmt.Sprintf("%s %s %s%s", box, dimStyle.Render("["+item.Category+"]"), item.Name, qty)
	if focused {
		return cursorStyle.Render("> ") + line
	}
	return "  " + line
}

func (m Model) renderSelected() string {
	selected := m.store.SelectedItems()
	if len(selected) == 0 {
		return ""
	}
	chips := make([]string, 0, len(selected))
	for _, item := range selected {
		chips = append(chips, selectedChip.Render(catalog.DisplayLabel(item.Name, m.store.Quantity(item.ID))))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, chips...)
}

func (m Model) renderHelp() string {
	parts := []string{}
	for _, k := range m.keys.ShortHelp() {
		h := k.Help()
		parts = append(parts, h.Key+" "+h.Desc)
	}
	parts = append(parts, "0-9 수량")
	return dimStyle.Render(strings.Join(parts, " • "))
}

func importSummary(res pipeline.ImportResult) string {
	msg := fmt.Sprintf("%s: %d개 항목을 불러왔습니다", res.Filename, res.Items)
	if res.Preselected > 0 {
		msg += fmt.Sprintf(" (%d개 수량 반영)", res.Preselected)
	}
	return msg
}
