// ABOUTME: Product list screen with paging, search, and category filtering
// ABOUTME: Emits create/edit/delete request messages for the app to gate and route

package products

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"catalogctl/internal/api"
	"catalogctl/internal/tui/listview"
	"catalogctl/internal/tui/styles"
)

// Allowed page sizes, cycled with +/-
var pageSizes = []int{5, 10, 20, 50}

// CreateRequestedMsg asks the app to open a blank product editor
type CreateRequestedMsg struct {
	Categories []api.Category
}

// EditRequestedMsg asks the app to open an editor for an existing product
type EditRequestedMsg struct {
	Product    api.Product
	Categories []api.Category
}

// DeleteRequestedMsg asks the app to confirm deleting a product
type DeleteRequestedMsg struct {
	Product api.Product
}

// BackMsg asks the app to return to the main menu
type BackMsg struct{}

// loadedMsg carries a fetched product page
type loadedMsg struct {
	gen  int
	page *api.Page[api.Product]
	err  error
}

// categoriesLoadedMsg carries the category list used for filtering
type categoriesLoadedMsg struct {
	categories []api.Category
	err        error
}

// Model is the product list screen
type Model struct {
	client     *api.Client
	list       *listview.State[api.Product]
	cursor     int
	search     textinput.Model
	searching  bool
	categories []api.Category
	catCursor  int // index into categories for the filter cycle, -1 = none
	successMsg string
	flashErr   string
	width      int
}

// New creates the product list screen
func New(client *api.Client, pageSize int) *Model {
	search := textinput.New()
	search.Placeholder = "search by name"
	search.CharLimit = 80

	return &Model{
		client:    client,
		list:      listview.New[api.Product](pageSize),
		search:    search,
		catCursor: -1,
	}
}

// Init implements tea.Model
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.load(), m.loadCategories())
}

// Reload refetches the current page, keeping filter and paging.
// The app calls this after a mutation succeeds.
func (m *Model) Reload() tea.Cmd {
	return m.load()
}

// SetSuccess shows a transient success message
func (m *Model) SetSuccess(msg string) {
	m.successMsg = msg
}

// SetError shows a transient error message, such as a failed delete
func (m *Model) SetError(msg string) {
	m.flashErr = msg
}

// SetSize records the terminal width for rendering
func (m *Model) SetSize(width int) {
	m.width = width
}

// Update implements tea.Model
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadedMsg:
		if msg.err != nil {
			if m.list.Fail(msg.gen, msg.err.Error()) {
				m.cursor = 0
			}
			return m, nil
		}
		if m.list.Apply(msg.gen, msg.page.Content, msg.page.TotalElements, msg.page.TotalPages, msg.page.Number) {
			m.clampCursor()
		}
		return m, nil

	case categoriesLoadedMsg:
		// Filtering is unavailable until this succeeds; a failure
		// leaves the list usable without the category cycle.
		if msg.err == nil {
			m.categories = msg.categories
		}
		return m, nil

	case tea.KeyMsg:
		if m.searching {
			return m.updateSearch(msg)
		}
		return m.updateKeys(msg)
	}

	return m, nil
}

func (m *Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.searching = false
		m.search.Blur()
		term := strings.TrimSpace(m.search.Value())
		m.catCursor = -1
		m.list.SetSearch(term)
		return m, m.load()
	case "esc":
		m.searching = false
		m.search.Blur()
		m.search.SetValue("")
		return m, nil
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	return m, cmd
}

func (m *Model) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.successMsg = ""
	m.flashErr = ""

	switch msg.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.list.Records())-1 {
			m.cursor++
		}
	case "n", "right":
		if m.list.NextPage() {
			m.cursor = 0
			return m, m.load()
		}
	case "p", "left":
		if m.list.PrevPage() {
			m.cursor = 0
			return m, m.load()
		}
	case "+":
		if size, ok := stepPageSize(m.list.PageSize(), 1); ok {
			m.list.SetPageSize(size)
			m.cursor = 0
			return m, m.load()
		}
	case "-":
		if size, ok := stepPageSize(m.list.PageSize(), -1); ok {
			m.list.SetPageSize(size)
			m.cursor = 0
			return m, m.load()
		}
	case "/":
		m.searching = true
		m.search.Focus()
		return m, textinput.Blink
	case "f":
		return m.cycleCategoryFilter()
	case "c":
		m.search.SetValue("")
		m.catCursor = -1
		m.list.ClearFilter()
		m.cursor = 0
		return m, m.load()
	case "r":
		return m, m.load()
	case "a":
		cats := m.categories
		return m, func() tea.Msg { return CreateRequestedMsg{Categories: cats} }
	case "e":
		if p, ok := m.selected(); ok {
			cats := m.categories
			return m, func() tea.Msg { return EditRequestedMsg{Product: p, Categories: cats} }
		}
	case "d":
		if p, ok := m.selected(); ok {
			return m, func() tea.Msg { return DeleteRequestedMsg{Product: p} }
		}
	case "x":
		m.list.DismissError()
	case "b", "esc":
		return m, func() tea.Msg { return BackMsg{} }
	}

	return m, nil
}

// cycleCategoryFilter steps through no filter and each known category
func (m *Model) cycleCategoryFilter() (tea.Model, tea.Cmd) {
	if len(m.categories) == 0 {
		return m, nil
	}

	m.catCursor++
	if m.catCursor >= len(m.categories) {
		m.catCursor = -1
		m.list.ClearFilter()
	} else {
		m.search.SetValue("")
		m.list.SetCategory(m.categories[m.catCursor].ID)
	}
	m.cursor = 0
	return m, m.load()
}

func stepPageSize(current, direction int) (int, bool) {
	for i, size := range pageSizes {
		if size == current {
			next := i + direction
			if next < 0 || next >= len(pageSizes) {
				return 0, false
			}
			return pageSizes[next], true
		}
	}
	// Unknown size, snap to the default
	return pageSizes[1], true
}

func (m *Model) selected() (api.Product, bool) {
	records := m.list.Records()
	if m.cursor < 0 || m.cursor >= len(records) {
		return api.Product{}, false
	}
	return records[m.cursor], true
}

func (m *Model) clampCursor() {
	if n := len(m.list.Records()); m.cursor >= n {
		m.cursor = 0
	}
}

// load fetches the page matching the current filter and paging
func (m *Model) load() tea.Cmd {
	gen := m.list.BeginLoad()
	filter := m.list.Filter()
	page := m.list.PageIndex()
	size := m.list.PageSize()
	client := m.client

	return func() tea.Msg {
		ctx := context.Background()

		var result *api.Page[api.Product]
		var err error
		switch filter.Kind() {
		case listview.FilterSearch:
			result, err = client.SearchProducts(ctx, filter.Term(), page, size)
		case listview.FilterCategory:
			result, err = client.ProductsByCategory(ctx, filter.CategoryID(), page, size)
		default:
			result, err = client.ListProducts(ctx, page, size)
		}

		return loadedMsg{gen: gen, page: result, err: err}
	}
}

// loadCategories fetches categories for the filter cycle and editors
func (m *Model) loadCategories() tea.Cmd {
	client := m.client
	return func() tea.Msg {
		cats, err := client.AllCategories(context.Background())
		return categoriesLoadedMsg{categories: cats, err: err}
	}
}

// View implements tea.Model
func (m *Model) View() string {
	var sb strings.Builder

	sb.WriteString(styles.Title.Render("Products"))
	sb.WriteString("\n")

	if m.searching {
		sb.WriteString(m.search.View())
		sb.WriteString("\n\n")
	} else if label := m.filterLabel(); label != "" {
		sb.WriteString(styles.Subtitle.Render(label))
		sb.WriteString("\n")
	}

	if msg := m.list.ErrMsg(); msg != "" {
		sb.WriteString(styles.ErrorBar.Render(msg))
		sb.WriteString("\n\n")
	} else if m.flashErr != "" {
		sb.WriteString(styles.ErrorBar.Render(m.flashErr))
		sb.WriteString("\n\n")
	} else if m.successMsg != "" {
		sb.WriteString(styles.SuccessBar.Render(m.successMsg))
		sb.WriteString("\n\n")
	}

	if m.list.Loading() {
		sb.WriteString(styles.Subtitle.Render("Loading..."))
		sb.WriteString("\n")
	}

	sb.WriteString(m.renderTable())
	sb.WriteString("\n")
	sb.WriteString(styles.Help.Render(m.renderFooter()))

	return sb.String()
}

func (m *Model) filterLabel() string {
	filter := m.list.Filter()
	switch filter.Kind() {
	case listview.FilterSearch:
		return fmt.Sprintf("search: %q", filter.Term())
	case listview.FilterCategory:
		for _, c := range m.categories {
			if c.ID == filter.CategoryID() {
				return "category: " + c.Name
			}
		}
		return fmt.Sprintf("category: #%d", filter.CategoryID())
	}
	return ""
}

func (m *Model) renderTable() string {
	records := m.list.Records()
	if len(records) == 0 && !m.list.Loading() {
		return styles.Subtitle.Render("No products found")
	}

	var sb strings.Builder
	header := fmt.Sprintf("%-6s %-30s %10s  %-20s", "ID", "NAME", "PRICE", "CATEGORY")
	sb.WriteString(styles.TableHeader.Render(header))
	sb.WriteString("\n")

	for i, p := range records {
		row := fmt.Sprintf("%-6d %-30s %10s  %-20s",
			p.ID, truncate(p.Name, 30), api.FormatPrice(p.Price), truncate(p.CategoryName, 20))
		if i == m.cursor {
			sb.WriteString(styles.SelectedRow.Render(row))
		} else {
			sb.WriteString(styles.NormalRow.Render(row))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

func (m *Model) renderFooter() string {
	page := fmt.Sprintf("page %d/%d (%d total, size %d)",
		m.list.PageIndex()+1, maxInt(m.list.TotalPages(), 1), m.list.TotalElements(), m.list.PageSize())
	keys := "n/p page  +/- size  / search  f filter  c clear  a add  e edit  d delete  r refresh  b back"
	return page + "\n" + keys
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	if max <= 3 {
		return s[:max]
	}
	return s[:max-3] + "..."
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
