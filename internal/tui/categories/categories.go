// ABOUTME: Category list screen with paging, search, and a product detail pane
// ABOUTME: Emits create/edit/delete request messages for the app to gate and route

package categories

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"catalogctl/internal/api"
	"catalogctl/internal/tui/icons"
	"catalogctl/internal/tui/listview"
	"catalogctl/internal/tui/styles"
)

// CreateRequestedMsg asks the app to open a blank category editor
type CreateRequestedMsg struct{}

// EditRequestedMsg asks the app to open an editor for an existing category
type EditRequestedMsg struct {
	Category api.Category
}

// DeleteRequestedMsg asks the app to confirm deleting a category
type DeleteRequestedMsg struct {
	Category api.Category
}

// BackMsg asks the app to return to the main menu
type BackMsg struct{}

// loadedMsg carries a fetched category page
type loadedMsg struct {
	gen  int
	page *api.Page[api.Category]
	err  error
}

// detailLoadedMsg carries a category with its products
type detailLoadedMsg struct {
	detail *api.CategoryWithProducts
	err    error
}

// Model is the category list screen
type Model struct {
	client    *api.Client
	list      *listview.State[api.Category]
	cursor    int
	search    textinput.Model
	searching bool

	// Detail pane state; non-nil detail switches the view
	detail        *api.CategoryWithProducts
	detailLoading bool
	flashErr      string

	successMsg string
	width      int
}

// New creates the category list screen
func New(client *api.Client, pageSize int) *Model {
	search := textinput.New()
	search.Placeholder = "search by name"
	search.CharLimit = 80

	return &Model{
		client: client,
		list:   listview.New[api.Category](pageSize),
		search: search,
	}
}

// Init implements tea.Model
func (m *Model) Init() tea.Cmd {
	return m.load()
}

// Reload refetches the current page, keeping filter and paging.
// The app calls this after a mutation succeeds.
func (m *Model) Reload() tea.Cmd {
	m.detail = nil
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
			if m.cursor >= len(m.list.Records()) {
				m.cursor = 0
			}
		}
		return m, nil

	case detailLoadedMsg:
		m.detailLoading = false
		if msg.err != nil {
			m.flashErr = msg.err.Error()
			return m, nil
		}
		m.flashErr = ""
		m.detail = msg.detail
		return m, nil

	case tea.KeyMsg:
		if m.detail != nil || m.detailLoading {
			return m.updateDetailKeys(msg)
		}
		if m.searching {
			return m.updateSearch(msg)
		}
		return m.updateKeys(msg)
	}

	return m, nil
}

func (m *Model) updateDetailKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "b", "esc", "v":
		m.detail = nil
		m.detailLoading = false
	case "q":
		return m, tea.Quit
	}
	return m, nil
}

func (m *Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.searching = false
		m.search.Blur()
		m.list.SetSearch(strings.TrimSpace(m.search.Value()))
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
	case "/":
		m.searching = true
		m.search.Focus()
		return m, textinput.Blink
	case "c":
		m.search.SetValue("")
		m.list.ClearFilter()
		m.cursor = 0
		return m, m.load()
	case "r":
		return m, m.load()
	case "v":
		if c, ok := m.selected(); ok {
			m.detailLoading = true
			return m, m.loadDetail(c.ID)
		}
	case "a":
		return m, func() tea.Msg { return CreateRequestedMsg{} }
	case "e":
		if c, ok := m.selected(); ok {
			return m, func() tea.Msg { return EditRequestedMsg{Category: c} }
		}
	case "d":
		if c, ok := m.selected(); ok {
			return m, func() tea.Msg { return DeleteRequestedMsg{Category: c} }
		}
	case "x":
		m.list.DismissError()
	case "b", "esc":
		return m, func() tea.Msg { return BackMsg{} }
	}

	return m, nil
}

func (m *Model) selected() (api.Category, bool) {
	records := m.list.Records()
	if m.cursor < 0 || m.cursor >= len(records) {
		return api.Category{}, false
	}
	return records[m.cursor], true
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

		var result *api.Page[api.Category]
		var err error
		if filter.Kind() == listview.FilterSearch {
			result, err = client.SearchCategories(ctx, filter.Term(), page, size)
		} else {
			result, err = client.ListCategories(ctx, page, size)
		}

		return loadedMsg{gen: gen, page: result, err: err}
	}
}

// loadDetail fetches a category together with its products
func (m *Model) loadDetail(id int64) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		detail, err := client.CategoryProducts(context.Background(), id)
		return detailLoadedMsg{detail: detail, err: err}
	}
}

// View implements tea.Model
func (m *Model) View() string {
	if m.detail != nil || m.detailLoading {
		return m.viewDetail()
	}

	var sb strings.Builder

	sb.WriteString(styles.Title.Render("Categories"))
	sb.WriteString("\n")

	if m.searching {
		sb.WriteString(m.search.View())
		sb.WriteString("\n\n")
	} else if filter := m.list.Filter(); filter.Kind() == listview.FilterSearch {
		sb.WriteString(styles.Subtitle.Render(fmt.Sprintf("search: %q", filter.Term())))
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

func (m *Model) renderTable() string {
	records := m.list.Records()
	if len(records) == 0 && !m.list.Loading() {
		return styles.Subtitle.Render("No categories found")
	}

	var sb strings.Builder
	header := fmt.Sprintf("%-6s %-24s %-40s", "ID", "NAME", "DESCRIPTION")
	sb.WriteString(styles.TableHeader.Render(header))
	sb.WriteString("\n")

	for i, c := range records {
		row := fmt.Sprintf("%-6d %-24s %-40s", c.ID, truncate(c.Name, 24), truncate(c.Description, 40))
		if i == m.cursor {
			sb.WriteString(styles.SelectedRow.Render(row))
		} else {
			sb.WriteString(styles.NormalRow.Render(row))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

func (m *Model) viewDetail() string {
	if m.detailLoading {
		return styles.Subtitle.Render("Loading category...")
	}

	var sb strings.Builder

	title := fmt.Sprintf("%s %s", icons.Category.String(), m.detail.Name)
	sb.WriteString(styles.Title.Render(title))
	sb.WriteString("\n")
	if m.detail.Description != "" {
		sb.WriteString(styles.Subtitle.Render(m.detail.Description))
		sb.WriteString("\n")
	}
	sb.WriteString("\n")

	if len(m.detail.Products) == 0 {
		sb.WriteString(styles.Subtitle.Render("No products in this category"))
		sb.WriteString("\n")
	} else {
		header := fmt.Sprintf("%-6s %-30s %10s", "ID", "NAME", "PRICE")
		sb.WriteString(styles.TableHeader.Render(header))
		sb.WriteString("\n")
		for _, p := range m.detail.Products {
			row := fmt.Sprintf("%-6d %-30s %10s", p.ID, truncate(p.Name, 30), api.FormatPrice(p.Price))
			sb.WriteString(styles.NormalRow.Render(row))
			sb.WriteString("\n")
		}
	}

	sb.WriteString("\n")
	sb.WriteString(styles.Help.Render("b back  q quit"))

	return sb.String()
}

func (m *Model) renderFooter() string {
	page := fmt.Sprintf("page %d/%d (%d total, size %d)",
		m.list.PageIndex()+1, maxInt(m.list.TotalPages(), 1), m.list.TotalElements(), m.list.PageSize())
	keys := "n/p page  / search  c clear  v products  a add  e edit  d delete  r refresh  b back"
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
