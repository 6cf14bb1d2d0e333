// ABOUTME: Tests for the record editor forms
// ABOUTME: Validates draft building, failure handling, and delete confirmation

package editor

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"catalogctl/internal/api"
)

var testCategories = []api.Category{
	{ID: 1, Name: "Hardware"},
	{ID: 2, Name: "Books"},
}

func TestNewProductDefaultsToFirstCategory(t *testing.T) {
	m := NewProduct(testCategories)

	if m.id != 0 {
		t.Errorf("expected zero ID for create, got %d", m.id)
	}
	if m.categoryID != 1 {
		t.Errorf("expected first category pre-selected, got %d", m.categoryID)
	}
}

func TestEditProductPrefillsFields(t *testing.T) {
	p := api.Product{ID: 5, Name: "Widget", Price: 19.9, CategoryID: 2}
	m := EditProduct(p, testCategories)

	if m.id != 5 {
		t.Errorf("expected ID 5, got %d", m.id)
	}
	if m.name != "Widget" {
		t.Errorf("expected name prefilled, got %q", m.name)
	}
	if m.price != "19.90" {
		t.Errorf("expected price formatted to two decimals, got %q", m.price)
	}
	if m.categoryID != 2 {
		t.Errorf("expected category 2, got %d", m.categoryID)
	}
}

func TestProductSubmitBuildsDraft(t *testing.T) {
	m := EditProduct(api.Product{ID: 5, Name: "Widget", Price: 10, CategoryID: 1}, testCategories)
	m.name = "  Widget Pro  "
	m.price = "24.50"
	m.categoryID = 2

	_, cmd := m.submit()
	if cmd == nil {
		t.Fatal("expected a command from submit")
	}

	sub, ok := cmd().(ProductSubmitMsg)
	if !ok {
		t.Fatal("expected ProductSubmitMsg")
	}
	if sub.ID != 5 {
		t.Errorf("expected ID 5, got %d", sub.ID)
	}
	if sub.Draft.Name != "Widget Pro" {
		t.Errorf("expected trimmed name, got %q", sub.Draft.Name)
	}
	if sub.Draft.Price != 24.5 {
		t.Errorf("expected price 24.5, got %v", sub.Draft.Price)
	}
	if sub.Draft.CategoryID != 2 {
		t.Errorf("expected category 2, got %d", sub.Draft.CategoryID)
	}
	if !m.Busy() {
		t.Error("expected editor busy after submit")
	}
}

func TestCompletedFormSubmitsOnce(t *testing.T) {
	m := NewProduct(testCategories)
	m.name = "Widget"
	m.price = "9.99"
	m.form.State = huh.StateCompleted

	_, cmd := m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	if cmd == nil {
		t.Fatal("expected a submit command from the completed form")
	}
	if _, ok := cmd().(ProductSubmitMsg); !ok {
		t.Fatal("expected ProductSubmitMsg")
	}
	if !m.Busy() {
		t.Fatal("expected editor busy after submit")
	}

	// The form stays Completed while the save is in flight; later
	// messages must not re-enter submit.
	_, cmd = m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	if cmd != nil {
		t.Error("expected no second submit while a save is in flight")
	}

	_, cmd = m.submit()
	if cmd != nil {
		t.Error("expected submit to be inert while busy")
	}
}

func TestProductSubmitRejectsBadPrice(t *testing.T) {
	m := NewProduct(testCategories)
	m.name = "Widget"
	m.price = "free"

	_, cmd := m.submit()
	if m.Busy() {
		t.Error("expected editor not busy after rejected submit")
	}
	if m.errMsg == "" {
		t.Error("expected an error message after rejected submit")
	}
	if m.name != "Widget" {
		t.Errorf("expected name preserved, got %q", m.name)
	}
	if cmd == nil {
		t.Fatal("expected form re-init command")
	}
}

func TestCategorySubmitValidatesName(t *testing.T) {
	m := NewCategory()
	m.name = "Books123"

	m.submit()
	if m.errMsg == "" {
		t.Error("expected validation error for digits in category name")
	}

	m.name = "Books"
	m.description = " reading material "
	_, cmd := m.submit()
	if cmd == nil {
		t.Fatal("expected a command from valid submit")
	}

	sub, ok := cmd().(CategorySubmitMsg)
	if !ok {
		t.Fatal("expected CategorySubmitMsg")
	}
	if sub.ID != 0 {
		t.Errorf("expected zero ID for create, got %d", sub.ID)
	}
	if sub.Draft.Description != "reading material" {
		t.Errorf("expected trimmed description, got %q", sub.Draft.Description)
	}
}

func TestDeleteConfirmFlow(t *testing.T) {
	m := ConfirmDelete(9, "product \"Widget\"")
	m.confirmed = true

	_, cmd := m.submit()
	if cmd == nil {
		t.Fatal("expected a command from confirmed delete")
	}
	del, ok := cmd().(DeleteConfirmedMsg)
	if !ok {
		t.Fatal("expected DeleteConfirmedMsg")
	}
	if del.ID != 9 {
		t.Errorf("expected ID 9, got %d", del.ID)
	}
}

func TestDeleteDeclinedCancels(t *testing.T) {
	m := ConfirmDelete(9, "product")
	m.confirmed = false

	_, cmd := m.submit()
	if cmd == nil {
		t.Fatal("expected a command from declined delete")
	}
	if _, ok := cmd().(CancelledMsg); !ok {
		t.Error("expected CancelledMsg when delete declined")
	}
}

func TestEscEmitsCancelled(t *testing.T) {
	m := NewCategory()

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if cmd == nil {
		t.Fatal("expected a command from esc")
	}
	if _, ok := cmd().(CancelledMsg); !ok {
		t.Error("expected CancelledMsg from esc")
	}
}

func TestViewShowsErrorMessage(t *testing.T) {
	m := NewCategory()
	m.errMsg = "category name is required"

	if !strings.Contains(m.View(), "category name is required") {
		t.Error("expected error message in view")
	}
}
