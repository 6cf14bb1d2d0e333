// ABOUTME: Main menu screen for choosing a catalog resource to manage
// ABOUTME: Cursor-driven list that emits SelectedMsg for the app to route

package menu

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"catalogctl/internal/tui/icons"
	"catalogctl/internal/tui/styles"
)

// Item identifies a menu entry
type Item int

const (
	ItemProducts Item = iota
	ItemCategories
	ItemLogout
	ItemQuit
)

// SelectedMsg is sent when the user picks a menu entry
type SelectedMsg struct {
	Item Item
}

type entry struct {
	icon  string
	label string
	item  Item
}

// Model is the main menu screen
type Model struct {
	entries []entry
	cursor  int

	// Best-effort totals shown under the menu; countsKnown stays
	// false until the app delivers them.
	productCount  int64
	categoryCount int64
	countsKnown   bool
}

// New creates the main menu
func New() *Model {
	return &Model{
		entries: []entry{
			{icon: icons.Product.String(), label: "Products", item: ItemProducts},
			{icon: icons.Category.String(), label: "Categories", item: ItemCategories},
			{icon: icons.Lock.String(), label: "Log out", item: ItemLogout},
			{icon: icons.Quit.String(), label: "Quit", item: ItemQuit},
		},
	}
}

// SetCounts records catalog totals for the summary line
func (m *Model) SetCounts(products, categories int64) {
	m.productCount = products
	m.categoryCount = categories
	m.countsKnown = true
}

// Init implements tea.Model
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.entries)-1 {
			m.cursor++
		}
	case "enter":
		item := m.entries[m.cursor].item
		return m, func() tea.Msg { return SelectedMsg{Item: item} }
	case "q":
		return m, func() tea.Msg { return SelectedMsg{Item: ItemQuit} }
	}

	return m, nil
}

// View implements tea.Model
func (m *Model) View() string {
	var sb strings.Builder

	sb.WriteString(styles.Title.Render(icons.App.String() + " Catalog Admin"))
	sb.WriteString("\n\n")

	for i, e := range m.entries {
		line := fmt.Sprintf("%s %s", e.icon, e.label)
		if i == m.cursor {
			sb.WriteString(styles.SelectedRow.Render("> " + line))
		} else {
			sb.WriteString(styles.NormalRow.Render("  " + line))
		}
		sb.WriteString("\n")
	}

	if m.countsKnown {
		sb.WriteString("\n")
		summary := fmt.Sprintf("%d products in %d categories", m.productCount, m.categoryCount)
		sb.WriteString(styles.Subtitle.Render(summary))
	}

	return sb.String()
}
