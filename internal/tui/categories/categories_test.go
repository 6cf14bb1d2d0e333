// ABOUTME: Tests for the category list screen
// ABOUTME: Validates loading, search, the detail pane, and request messages

package categories

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"catalogctl/internal/api"
	"catalogctl/internal/session"
)

type fakeStore struct {
	token string
}

func (s *fakeStore) Token() string                    { return s.token }
func (s *fakeStore) Clear() error                     { s.token = ""; return nil }
func (s *fakeStore) Login(sess session.Session) error { s.token = sess.Token; return nil }

func categoryPage(names ...string) map[string]interface{} {
	content := make([]map[string]interface{}, 0, len(names))
	for i, name := range names {
		content = append(content, map[string]interface{}{
			"id":          i + 1,
			"name":        name,
			"description": name + " things",
		})
	}
	return map[string]interface{}{
		"content":       content,
		"totalElements": len(names),
		"totalPages":    1,
		"number":        0,
	}
}

func newTestModel(t *testing.T, handler http.HandlerFunc) *Model {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	client := api.New(srv.URL, &fakeStore{token: "tok"})
	return New(client, 10)
}

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func TestLoadPopulatesRecords(t *testing.T) {
	m := newTestModel(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(categoryPage("Hardware", "Books"))
	})

	m.Update(m.load()())

	if len(m.list.Records()) != 2 {
		t.Fatalf("expected 2 records, got %d", len(m.list.Records()))
	}
	if !strings.Contains(m.View(), "Hardware") {
		t.Error("expected Hardware in view")
	}
}

func TestSearchAppliesQuery(t *testing.T) {
	var gotQuery string
	m := newTestModel(t, func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/categories/search") {
			gotQuery = r.URL.Query().Get("name")
		}
		json.NewEncoder(w).Encode(categoryPage("Hardware"))
	})

	m.Update(keyMsg("/"))
	m.search.SetValue("hard")
	_, cmd := m.Update(keyMsg("enter"))
	if cmd == nil {
		t.Fatal("expected load command after search")
	}
	m.Update(cmd())

	if gotQuery != "hard" {
		t.Errorf("expected query %q, got %q", "hard", gotQuery)
	}
}

func TestDetailViewShowsProducts(t *testing.T) {
	m := newTestModel(t, func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/categories/1/products") {
			json.NewEncoder(w).Encode(map[string]interface{}{
				"id":          1,
				"name":        "Hardware",
				"description": "Hardware things",
				"products": []map[string]interface{}{
					{"id": 7, "name": "Widget", "price": 19.99, "categoryId": 1},
				},
			})
			return
		}
		json.NewEncoder(w).Encode(categoryPage("Hardware"))
	})

	m.Update(m.load()())

	_, cmd := m.Update(keyMsg("v"))
	if cmd == nil {
		t.Fatal("expected detail load command")
	}
	if !m.detailLoading {
		t.Error("expected detail loading state")
	}
	m.Update(cmd())

	view := m.View()
	if !strings.Contains(view, "Widget") {
		t.Errorf("expected product in detail view:\n%s", view)
	}
	if !strings.Contains(view, "$19.99") {
		t.Errorf("expected formatted price in detail view:\n%s", view)
	}

	// b returns to the list
	m.Update(keyMsg("b"))
	if m.detail != nil {
		t.Error("expected detail cleared after back")
	}
	if !strings.Contains(m.View(), "Categories") {
		t.Error("expected list view after back")
	}
}

func TestDetailErrorSurfacesInList(t *testing.T) {
	m := newTestModel(t, func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/categories/1/products") {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		json.NewEncoder(w).Encode(categoryPage("Hardware"))
	})

	m.Update(m.load()())
	_, cmd := m.Update(keyMsg("v"))
	m.Update(cmd())

	if m.detail != nil {
		t.Error("expected no detail after failed load")
	}
	if m.flashErr == "" {
		t.Error("expected detail error recorded")
	}
	if len(m.list.Records()) != 1 {
		t.Error("expected list records untouched by detail failure")
	}
	if !strings.Contains(m.View(), m.flashErr) {
		t.Error("expected detail error in list view")
	}
}

func TestEditRequestCarriesSelection(t *testing.T) {
	m := newTestModel(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(categoryPage("Hardware", "Books"))
	})
	m.Update(m.load()())

	m.Update(keyMsg("j"))
	_, cmd := m.Update(keyMsg("e"))
	if cmd == nil {
		t.Fatal("expected a command from e")
	}

	req, ok := cmd().(EditRequestedMsg)
	if !ok {
		t.Fatal("expected EditRequestedMsg")
	}
	if req.Category.Name != "Books" {
		t.Errorf("expected selected category Books, got %q", req.Category.Name)
	}
}

func TestCreateAndBackMessages(t *testing.T) {
	m := newTestModel(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(categoryPage())
	})

	_, cmd := m.Update(keyMsg("a"))
	if cmd == nil {
		t.Fatal("expected a command from a")
	}
	if _, ok := cmd().(CreateRequestedMsg); !ok {
		t.Error("expected CreateRequestedMsg")
	}

	_, cmd = m.Update(keyMsg("esc"))
	if cmd == nil {
		t.Fatal("expected a command from esc")
	}
	if _, ok := cmd().(BackMsg); !ok {
		t.Error("expected BackMsg")
	}
}

func TestFailedLoadClearsRecords(t *testing.T) {
	var fail bool
	m := newTestModel(t, func(w http.ResponseWriter, r *http.Request) {
		if fail {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		json.NewEncoder(w).Encode(categoryPage("Hardware"))
	})

	m.Update(m.load()())
	if len(m.list.Records()) != 1 {
		t.Fatal("expected a record after first load")
	}

	fail = true
	m.Update(m.load()())
	if len(m.list.Records()) != 0 {
		t.Error("expected records cleared after failed load")
	}
	if m.list.ErrMsg() == "" {
		t.Error("expected error message after failed load")
	}
}
