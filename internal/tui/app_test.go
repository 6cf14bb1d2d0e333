// ABOUTME: Tests for the root TUI model
// ABOUTME: Validates screen routing, access control, and session expiry handling

package tui

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"catalogctl/internal/api"
	"catalogctl/internal/config"
	"catalogctl/internal/session"
	"catalogctl/internal/tui/categories"
	"catalogctl/internal/tui/menu"
	"catalogctl/internal/tui/products"
)

func emptyPageHandler(w http.ResponseWriter, r *http.Request) {
	json.NewEncoder(w).Encode(map[string]interface{}{
		"content":       []interface{}{},
		"totalElements": 0,
		"totalPages":    0,
		"number":        0,
	})
}

func newTestApp(t *testing.T, role session.Role, authenticated bool) (*App, *session.Store) {
	t.Helper()

	store := session.NewStore(t.TempDir())
	if err := store.Load(); err != nil {
		t.Fatalf("load store: %v", err)
	}
	if authenticated {
		err := store.Login(session.Session{Username: "alice", Role: role, Token: "tok"})
		if err != nil {
			t.Fatalf("seed session: %v", err)
		}
	}

	srv := httptest.NewServer(http.HandlerFunc(emptyPageHandler))
	t.Cleanup(srv.Close)

	cfg := &config.Config{APIURL: srv.URL, PageSize: 10}
	client := api.New(srv.URL, store)
	return New(client, store, cfg), store
}

func TestStartsOnLoginWhenAnonymous(t *testing.T) {
	a, _ := newTestApp(t, session.RoleUser, false)

	if a.screen != ScreenLogin {
		t.Errorf("expected login screen, got %v", a.screen)
	}
	if a.loginScreen == nil {
		t.Error("expected login screen model")
	}
}

func TestStartsOnMenuWhenAuthenticated(t *testing.T) {
	a, _ := newTestApp(t, session.RoleUser, true)

	if a.screen != ScreenMenu {
		t.Errorf("expected menu screen, got %v", a.screen)
	}
}

func TestMenuOpensProducts(t *testing.T) {
	a, _ := newTestApp(t, session.RoleUser, true)

	_, cmd := a.Update(menu.SelectedMsg{Item: menu.ItemProducts})
	if a.screen != ScreenProducts {
		t.Errorf("expected products screen, got %v", a.screen)
	}
	if a.productList == nil {
		t.Error("expected product list model")
	}
	if cmd == nil {
		t.Error("expected initial load command")
	}
}

func TestMenuQuit(t *testing.T) {
	a, _ := newTestApp(t, session.RoleUser, true)

	_, cmd := a.Update(menu.SelectedMsg{Item: menu.ItemQuit})
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg")
	}
}

func TestAdminGateBlocksUser(t *testing.T) {
	a, _ := newTestApp(t, session.RoleUser, true)
	a.Update(menu.SelectedMsg{Item: menu.ItemProducts})

	a.Update(products.CreateRequestedMsg{})
	if a.screen != ScreenUnauthorized {
		t.Errorf("expected unauthorized screen, got %v", a.screen)
	}
	if !strings.Contains(a.View(), "Unauthorized") {
		t.Error("expected unauthorized message in view")
	}

	// b returns to the list that triggered the gate
	a.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'b'}})
	if a.screen != ScreenProducts {
		t.Errorf("expected return to products screen, got %v", a.screen)
	}
}

func TestAdminGateAllowsAdmin(t *testing.T) {
	a, _ := newTestApp(t, session.RoleAdmin, true)
	a.Update(menu.SelectedMsg{Item: menu.ItemProducts})

	a.Update(products.CreateRequestedMsg{Categories: []api.Category{{ID: 1, Name: "Hardware"}}})
	if a.screen != ScreenEditor {
		t.Errorf("expected editor screen, got %v", a.screen)
	}
	if a.editScreen == nil {
		t.Error("expected editor model")
	}
}

func TestLoginSuccessGoesToMenu(t *testing.T) {
	a, store := newTestApp(t, session.RoleUser, false)

	sess := session.Session{Username: "alice", Role: session.RoleUser, Token: "tok"}
	if err := store.Login(sess); err != nil {
		t.Fatalf("login: %v", err)
	}

	_, cmd := a.Update(loginResultMsg{sess: sess})
	if a.screen != ScreenMenu {
		t.Errorf("expected menu screen after login, got %v", a.screen)
	}
	if cmd == nil {
		t.Error("expected counts load command after login")
	}
}

func TestLoginFailureStaysOnLogin(t *testing.T) {
	a, _ := newTestApp(t, session.RoleUser, false)

	a.Update(loginResultMsg{err: errors.New("invalid username or password")})
	if a.screen != ScreenLogin {
		t.Errorf("expected login screen after failure, got %v", a.screen)
	}
	if a.loginScreen.ErrorMessage() != "invalid username or password" {
		t.Errorf("unexpected login error %q", a.loginScreen.ErrorMessage())
	}
}

func TestSessionExpiryRedirectsToLogin(t *testing.T) {
	a, store := newTestApp(t, session.RoleUser, true)
	a.Update(menu.SelectedMsg{Item: menu.ItemProducts})

	// Simulate the API client clearing the session after a 401
	if err := store.Clear(); err != nil {
		t.Fatalf("clear: %v", err)
	}

	a.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}})
	if a.screen != ScreenLogin {
		t.Errorf("expected login screen after expiry, got %v", a.screen)
	}
	if a.loginScreen == nil {
		t.Fatal("expected login screen model")
	}
	if !strings.Contains(a.loginScreen.ErrorMessage(), "expired") {
		t.Errorf("expected expiry message, got %q", a.loginScreen.ErrorMessage())
	}
	if a.productList != nil {
		t.Error("expected product list discarded on expiry")
	}
}

func TestLogoutReturnsToLogin(t *testing.T) {
	a, store := newTestApp(t, session.RoleUser, true)

	_, cmd := a.Update(menu.SelectedMsg{Item: menu.ItemLogout})
	if cmd == nil {
		t.Fatal("expected logout command")
	}
	a.Update(cmd())

	if a.screen != ScreenLogin {
		t.Errorf("expected login screen after logout, got %v", a.screen)
	}
	if store.IsAuthenticated() {
		t.Error("expected session cleared after logout")
	}
}

func TestSaveSuccessReturnsToListWithMessage(t *testing.T) {
	a, _ := newTestApp(t, session.RoleAdmin, true)
	a.Update(menu.SelectedMsg{Item: menu.ItemProducts})
	a.Update(products.CreateRequestedMsg{Categories: []api.Category{{ID: 1, Name: "Hardware"}}})

	_, cmd := a.Update(savedMsg{resource: resourceProduct, created: true})
	if a.screen != ScreenProducts {
		t.Errorf("expected products screen after save, got %v", a.screen)
	}
	if a.editScreen != nil {
		t.Error("expected editor discarded after save")
	}
	if cmd == nil {
		t.Error("expected reload command after save")
	}
	if !strings.Contains(a.View(), "product created") {
		t.Error("expected success message in view")
	}
}

func TestSaveFailureStaysInEditor(t *testing.T) {
	a, _ := newTestApp(t, session.RoleAdmin, true)
	a.Update(menu.SelectedMsg{Item: menu.ItemCategories})
	a.Update(categories.CreateRequestedMsg{})

	a.Update(savedMsg{resource: resourceCategory, err: errors.New("the request conflicts with existing data")})
	if a.screen != ScreenEditor {
		t.Errorf("expected editor screen after failed save, got %v", a.screen)
	}
	if !strings.Contains(a.View(), "conflicts") {
		t.Error("expected conflict message in editor view")
	}
}

func TestDeleteFailureSurfacesOnList(t *testing.T) {
	a, _ := newTestApp(t, session.RoleAdmin, true)
	a.Update(menu.SelectedMsg{Item: menu.ItemProducts})
	a.Update(products.DeleteRequestedMsg{Product: api.Product{ID: 4, Name: "Widget"}})

	a.Update(deletedMsg{resource: resourceProduct, err: errors.New("cannot delete")})
	if a.screen != ScreenProducts {
		t.Errorf("expected products screen after failed delete, got %v", a.screen)
	}
	if !strings.Contains(a.View(), "cannot delete") {
		t.Error("expected delete error in list view")
	}
}

func TestDeleteCommandRoutesByResource(t *testing.T) {
	var gotPath, gotMethod string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotMethod = r.Method
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	store := session.NewStore(t.TempDir())
	store.Load()
	store.Login(session.Session{Username: "alice", Role: session.RoleAdmin, Token: "tok"})

	a := New(api.New(srv.URL, store), store, &config.Config{APIURL: srv.URL, PageSize: 10})
	a.editResource = resourceCategory

	msg := a.deleteRecord(7)()
	del, ok := msg.(deletedMsg)
	if !ok {
		t.Fatal("expected deletedMsg")
	}
	if del.err != nil {
		t.Fatalf("unexpected error: %v", del.err)
	}
	if gotMethod != http.MethodDelete || !strings.HasSuffix(gotPath, "/categories/7") {
		t.Errorf("unexpected request %s %s", gotMethod, gotPath)
	}
}

func TestHeaderShowsSessionIdentity(t *testing.T) {
	a, _ := newTestApp(t, session.RoleAdmin, true)

	header := a.renderHeader()
	if !strings.Contains(header, "alice") {
		t.Error("expected username in header")
	}
	if !strings.Contains(header, "ADMIN") {
		t.Error("expected role badge in header")
	}
}

func TestErrorMessagePrefersAPIMessage(t *testing.T) {
	if got := errorMessage(errors.New("plain failure")); got != "plain failure" {
		t.Errorf("unexpected message %q", got)
	}
}
