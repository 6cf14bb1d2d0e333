// ABOUTME: Create/edit/delete forms for products and categories
// ABOUTME: Wraps huh forms and emits typed submit messages for the app

package editor

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"catalogctl/internal/api"
	"catalogctl/internal/tui/icons"
	"catalogctl/internal/tui/styles"
)

// ProductSubmitMsg is sent when a product form completes.
// A zero ID means create, otherwise update.
type ProductSubmitMsg struct {
	ID    int64
	Draft api.ProductDraft
}

// CategorySubmitMsg is sent when a category form completes.
// A zero ID means create, otherwise update.
type CategorySubmitMsg struct {
	ID    int64
	Draft api.CategoryDraft
}

// DeleteConfirmedMsg is sent when the user confirms a delete
type DeleteConfirmedMsg struct {
	ID int64
}

// CancelledMsg is sent when the user backs out of the editor
type CancelledMsg struct{}

type formKind int

const (
	kindProduct formKind = iota
	kindCategory
	kindDelete
)

// Model is an editor screen for a single record
type Model struct {
	form   *huh.Form
	kind   formKind
	id     int64
	title  string
	errMsg string
	busy   bool

	// Product fields (strings for huh)
	name       string
	price      string
	categoryID int64
	categories []api.Category

	// Category fields
	description string

	// Delete confirm
	confirmed bool
}

// NewProduct creates a blank product form.
// The category list populates the selection field.
func NewProduct(categories []api.Category) *Model {
	m := &Model{
		kind:       kindProduct,
		title:      icons.Add.String() + " New Product",
		categories: categories,
	}
	if len(categories) > 0 {
		m.categoryID = categories[0].ID
	}
	m.form = m.createProductForm()
	return m
}

// EditProduct creates a product form pre-filled from an existing record
func EditProduct(p api.Product, categories []api.Category) *Model {
	m := &Model{
		kind:       kindProduct,
		id:         p.ID,
		title:      fmt.Sprintf("%s Edit Product #%d", icons.Edit.String(), p.ID),
		name:       p.Name,
		price:      fmt.Sprintf("%.2f", p.Price),
		categoryID: p.CategoryID,
		categories: categories,
	}
	m.form = m.createProductForm()
	return m
}

// NewCategory creates a blank category form
func NewCategory() *Model {
	m := &Model{
		kind:  kindCategory,
		title: icons.Add.String() + " New Category",
	}
	m.form = m.createCategoryForm()
	return m
}

// EditCategory creates a category form pre-filled from an existing record
func EditCategory(c api.Category) *Model {
	m := &Model{
		kind:        kindCategory,
		id:          c.ID,
		title:       fmt.Sprintf("%s Edit Category #%d", icons.Edit.String(), c.ID),
		name:        c.Name,
		description: c.Description,
	}
	m.form = m.createCategoryForm()
	return m
}

// ConfirmDelete creates a yes/no confirmation for deleting a record
func ConfirmDelete(id int64, label string) *Model {
	m := &Model{
		kind:  kindDelete,
		id:    id,
		title: icons.Delete.String() + " Delete " + label,
	}
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf("Delete %s?", label)).
				Description("This cannot be undone").
				Affirmative("Delete").
				Negative("Cancel").
				Value(&m.confirmed),
		),
	).WithTheme(styles.FormTheme())
	return m
}

func (m *Model) createProductForm() *huh.Form {
	var options []huh.Option[int64]
	for _, c := range m.categories {
		options = append(options, huh.NewOption(c.Name, c.ID))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Name").
				Placeholder("e.g., Widget").
				CharLimit(120).
				Value(&m.name).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("product name is required")
					}
					return nil
				}),
			huh.NewInput().
				Title("Price").
				Placeholder("e.g., 19.99").
				CharLimit(12).
				Value(&m.price).
				Validate(func(s string) error {
					_, err := api.ParsePrice(s)
					return err
				}),
			huh.NewSelect[int64]().
				Title("Category").
				Options(options...).
				Value(&m.categoryID),
		).Title(m.title).
			Description("Fill in the fields and confirm to save"),
	).WithTheme(styles.FormTheme())
}

func (m *Model) createCategoryForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Name").
				Placeholder("letters and spaces only").
				CharLimit(80).
				Value(&m.name).
				Validate(func(s string) error {
					return api.ValidateCategoryDraft(api.CategoryDraft{Name: s})
				}),
			huh.NewInput().
				Title("Description").
				Placeholder("optional").
				CharLimit(200).
				Value(&m.description),
		).Title(m.title).
			Description("Fill in the fields and confirm to save"),
	).WithTheme(styles.FormTheme())
}

// Init implements tea.Model
func (m *Model) Init() tea.Cmd {
	return m.form.Init()
}

// Update implements tea.Model
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "esc" {
		return m, func() tea.Msg { return CancelledMsg{} }
	}
	// Ignore everything else while a save is in flight; the form's State
	// stays Completed, so re-entering it would emit a duplicate submit.
	if m.busy {
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		return m.submit()
	}

	return m, cmd
}

func (m *Model) submit() (tea.Model, tea.Cmd) {
	if m.busy {
		return m, nil
	}
	switch m.kind {
	case kindProduct:
		price, err := api.ParsePrice(m.price)
		if err != nil {
			return m, m.Fail(err.Error())
		}
		draft := api.ProductDraft{
			Name:       strings.TrimSpace(m.name),
			Price:      price,
			CategoryID: m.categoryID,
		}
		if err := api.ValidateProductDraft(draft); err != nil {
			return m, m.Fail(err.Error())
		}
		m.busy = true
		id := m.id
		return m, func() tea.Msg { return ProductSubmitMsg{ID: id, Draft: draft} }

	case kindCategory:
		draft := api.CategoryDraft{
			Name:        strings.TrimSpace(m.name),
			Description: strings.TrimSpace(m.description),
		}
		if err := api.ValidateCategoryDraft(draft); err != nil {
			return m, m.Fail(err.Error())
		}
		m.busy = true
		id := m.id
		return m, func() tea.Msg { return CategorySubmitMsg{ID: id, Draft: draft} }

	case kindDelete:
		if !m.confirmed {
			return m, func() tea.Msg { return CancelledMsg{} }
		}
		m.busy = true
		id := m.id
		return m, func() tea.Msg { return DeleteConfirmedMsg{ID: id} }
	}

	return m, nil
}

// Fail records a failed save and re-arms the form.
// Entered values are preserved so the user can correct them.
func (m *Model) Fail(message string) tea.Cmd {
	m.busy = false
	m.errMsg = message
	switch m.kind {
	case kindProduct:
		m.form = m.createProductForm()
	case kindCategory:
		m.form = m.createCategoryForm()
	default:
		return func() tea.Msg { return CancelledMsg{} }
	}
	return m.form.Init()
}

// Busy reports whether a save is in flight
func (m *Model) Busy() bool {
	return m.busy
}

// View implements tea.Model
func (m *Model) View() string {
	var sb strings.Builder

	if m.errMsg != "" {
		sb.WriteString(styles.ErrorBar.Render(icons.Warning.String() + " " + m.errMsg))
		sb.WriteString("\n\n")
	}

	if m.busy {
		sb.WriteString(styles.Subtitle.Render("Saving..."))
		sb.WriteString("\n")
	}

	sb.WriteString(m.form.View())

	return sb.String()
}
