// ABOUTME: Root bubbletea model for the TUI application
// ABOUTME: Manages screen state, access control, and routing to child screens

package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"catalogctl/internal/api"
	"catalogctl/internal/config"
	"catalogctl/internal/guard"
	"catalogctl/internal/logging"
	"catalogctl/internal/session"
	"catalogctl/internal/tui/categories"
	"catalogctl/internal/tui/editor"
	"catalogctl/internal/tui/icons"
	"catalogctl/internal/tui/login"
	"catalogctl/internal/tui/menu"
	"catalogctl/internal/tui/products"
	"catalogctl/internal/tui/styles"
	"catalogctl/internal/tui/widgets"
)

// Screen represents the current TUI screen
type Screen int

const (
	ScreenLogin Screen = iota
	ScreenMenu
	ScreenProducts
	ScreenCategories
	ScreenEditor
	ScreenUnauthorized
)

// Layout constants
const minTerminalWidth = 80

// editorResource tracks which resource the active editor belongs to
type editorResource int

const (
	resourceNone editorResource = iota
	resourceProduct
	resourceCategory
)

// loginResultMsg is sent when a login attempt completes
type loginResultMsg struct {
	sess session.Session
	err  error
}

// logoutDoneMsg is sent when the stored session has been cleared
type logoutDoneMsg struct {
	err error
}

// countsMsg carries catalog totals for the menu summary
type countsMsg struct {
	products   int64
	categories int64
	err        error
}

// savedMsg is sent when a create or update call completes
type savedMsg struct {
	resource editorResource
	created  bool
	err      error
}

// deletedMsg is sent when a delete call completes
type deletedMsg struct {
	resource editorResource
	err      error
}

// App is the root model for the TUI
type App struct {
	client   *api.Client
	sessions *session.Store
	cfg      *config.Config
	screen   Screen
	width    int
	height   int

	// Child models
	loginScreen *login.Model
	menuScreen  *menu.Model
	productList *products.Model
	catList     *categories.Model
	editScreen  *editor.Model

	// Editor bookkeeping
	editResource editorResource
	editReturn   Screen
}

// New creates the TUI application. The session store must already be
// loaded so the first guard check sees a resolved state.
func New(client *api.Client, sessions *session.Store, cfg *config.Config) *App {
	a := &App{
		client:     client,
		sessions:   sessions,
		cfg:        cfg,
		menuScreen: menu.New(),
	}

	if guard.Check(guard.CapabilityAuthenticated, sessions) == guard.Allow {
		a.screen = ScreenMenu
	} else {
		a.screen = ScreenLogin
		a.loginScreen = login.New()
	}

	return a
}

// Init implements tea.Model
func (a *App) Init() tea.Cmd {
	if a.screen == ScreenLogin {
		return a.loginScreen.Init()
	}
	return a.loadCounts()
}

// Update implements tea.Model
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		if a.productList != nil {
			a.productList.SetSize(a.width)
		}
		if a.catList != nil {
			a.catList.SetSize(a.width)
		}
		return a.forwardToScreen(msg)

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		if a.screen == ScreenUnauthorized {
			return a.updateUnauthorized(msg)
		}
		return a.forwardToScreen(msg)

	case login.SubmitMsg:
		return a, a.doLogin(msg.Username, msg.Password)

	case login.CancelledMsg:
		// Nothing to show without a session
		return a, tea.Quit

	case loginResultMsg:
		return a.handleLoginResult(msg)

	case logoutDoneMsg:
		a.screen = ScreenLogin
		a.loginScreen = login.New()
		a.productList = nil
		a.catList = nil
		return a, a.loginScreen.Init()

	case countsMsg:
		if msg.err == nil {
			a.menuScreen.SetCounts(msg.products, msg.categories)
		}
		return a, nil

	case menu.SelectedMsg:
		return a.handleMenuSelection(msg)

	case products.CreateRequestedMsg:
		return a.openEditor(resourceProduct, ScreenProducts, editor.NewProduct(msg.Categories))

	case products.EditRequestedMsg:
		return a.openEditor(resourceProduct, ScreenProducts, editor.EditProduct(msg.Product, msg.Categories))

	case products.DeleteRequestedMsg:
		label := fmt.Sprintf("product %q", msg.Product.Name)
		return a.openEditor(resourceProduct, ScreenProducts, editor.ConfirmDelete(msg.Product.ID, label))

	case products.BackMsg:
		a.screen = ScreenMenu
		return a, a.loadCounts()

	case categories.CreateRequestedMsg:
		return a.openEditor(resourceCategory, ScreenCategories, editor.NewCategory())

	case categories.EditRequestedMsg:
		return a.openEditor(resourceCategory, ScreenCategories, editor.EditCategory(msg.Category))

	case categories.DeleteRequestedMsg:
		label := fmt.Sprintf("category %q", msg.Category.Name)
		return a.openEditor(resourceCategory, ScreenCategories, editor.ConfirmDelete(msg.Category.ID, label))

	case categories.BackMsg:
		a.screen = ScreenMenu
		return a, a.loadCounts()

	case editor.ProductSubmitMsg:
		return a, a.saveProduct(msg.ID, msg.Draft)

	case editor.CategorySubmitMsg:
		return a, a.saveCategory(msg.ID, msg.Draft)

	case editor.DeleteConfirmedMsg:
		return a, a.deleteRecord(msg.ID)

	case editor.CancelledMsg:
		return a.closeEditor(nil)

	case savedMsg:
		return a.handleSaved(msg)

	case deletedMsg:
		return a.handleDeleted(msg)
	}

	return a.forwardToScreen(msg)
}

// forwardToScreen routes a message to the active child model and then
// re-checks the stored session, so a 401-cleared session lands the user
// back on the login screen no matter which screen triggered it.
func (a *App) forwardToScreen(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch a.screen {
	case ScreenLogin:
		if a.loginScreen != nil {
			var model tea.Model
			model, cmd = a.loginScreen.Update(msg)
			a.loginScreen = model.(*login.Model)
		}
	case ScreenMenu:
		if a.menuScreen != nil {
			var model tea.Model
			model, cmd = a.menuScreen.Update(msg)
			a.menuScreen = model.(*menu.Model)
		}
	case ScreenProducts:
		if a.productList != nil {
			var model tea.Model
			model, cmd = a.productList.Update(msg)
			a.productList = model.(*products.Model)
		}
	case ScreenCategories:
		if a.catList != nil {
			var model tea.Model
			model, cmd = a.catList.Update(msg)
			a.catList = model.(*categories.Model)
		}
	case ScreenEditor:
		if a.editScreen != nil {
			var model tea.Model
			model, cmd = a.editScreen.Update(msg)
			a.editScreen = model.(*editor.Model)
		}
	}

	return a, tea.Batch(cmd, a.checkSessionExpiry())
}

// checkSessionExpiry redirects to login when the stored session has been
// cleared, typically by the API client observing a 401.
func (a *App) checkSessionExpiry() tea.Cmd {
	if a.screen == ScreenLogin || a.sessions.IsAuthenticated() {
		return nil
	}

	logging.L().Info("session expired, returning to login")
	a.screen = ScreenLogin
	a.loginScreen = login.New()
	cmd := a.loginScreen.Fail("your session has expired, please sign in again")
	a.productList = nil
	a.catList = nil
	a.editScreen = nil
	return cmd
}

func (a *App) handleMenuSelection(msg menu.SelectedMsg) (tea.Model, tea.Cmd) {
	switch msg.Item {
	case menu.ItemProducts:
		if decision := guard.Check(guard.CapabilityAuthenticated, a.sessions); decision != guard.Allow {
			return a.applyDecision(decision, ScreenMenu)
		}
		a.productList = products.New(a.client, a.cfg.PageSize)
		a.productList.SetSize(a.width)
		a.screen = ScreenProducts
		return a, a.productList.Init()

	case menu.ItemCategories:
		if decision := guard.Check(guard.CapabilityAuthenticated, a.sessions); decision != guard.Allow {
			return a.applyDecision(decision, ScreenMenu)
		}
		a.catList = categories.New(a.client, a.cfg.PageSize)
		a.catList.SetSize(a.width)
		a.screen = ScreenCategories
		return a, a.catList.Init()

	case menu.ItemLogout:
		return a, a.doLogout()

	case menu.ItemQuit:
		return a, tea.Quit
	}

	return a, nil
}

// openEditor gates an admin-only editor behind the guard before showing it
func (a *App) openEditor(resource editorResource, returnTo Screen, ed *editor.Model) (tea.Model, tea.Cmd) {
	if decision := guard.Check(guard.CapabilityAdmin, a.sessions); decision != guard.Allow {
		return a.applyDecision(decision, returnTo)
	}

	a.editScreen = ed
	a.editResource = resource
	a.editReturn = returnTo
	a.screen = ScreenEditor
	return a, a.editScreen.Init()
}

// applyDecision translates a guard verdict into a screen transition
func (a *App) applyDecision(decision guard.Decision, returnTo Screen) (tea.Model, tea.Cmd) {
	switch decision {
	case guard.RedirectLogin:
		a.screen = ScreenLogin
		a.loginScreen = login.New()
		return a, a.loginScreen.Init()
	case guard.RedirectUnauthorized:
		a.editReturn = returnTo
		a.screen = ScreenUnauthorized
		return a, nil
	}
	return a, nil
}

func (a *App) updateUnauthorized(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return a, tea.Quit
	case "b", "esc", "enter":
		a.screen = a.editReturn
	}
	return a, nil
}

// errorMessage prefers the API error's user-facing message
func errorMessage(err error) string {
	if apiErr, ok := api.AsError(err); ok {
		return apiErr.Message
	}
	return err.Error()
}

func (a *App) handleLoginResult(msg loginResultMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		if a.loginScreen == nil {
			return a, nil
		}
		return a, a.loginScreen.Fail(errorMessage(msg.err))
	}

	logging.L().WithField("username", msg.sess.Username).Info("signed in")
	a.screen = ScreenMenu
	a.loginScreen = nil
	return a, a.loadCounts()
}

func (a *App) handleSaved(msg savedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		if a.editScreen == nil {
			return a, tea.Batch(a.checkSessionExpiry())
		}
		return a, tea.Batch(a.editScreen.Fail(errorMessage(msg.err)), a.checkSessionExpiry())
	}

	noun := "category"
	if msg.resource == resourceProduct {
		noun = "product"
	}
	verb := "updated"
	if msg.created {
		verb = "created"
	}
	return a.closeEditor(func() { a.setListSuccess(msg.resource, noun+" "+verb) })
}

func (a *App) handleDeleted(msg deletedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		// The confirm form has no retry state, surface on the list instead
		model, _ := a.closeEditor(nil)
		a.setListError(msg.resource, errorMessage(msg.err))
		return model, tea.Batch(a.reloadList(msg.resource), a.checkSessionExpiry())
	}

	noun := "category"
	if msg.resource == resourceProduct {
		noun = "product"
	}
	return a.closeEditor(func() { a.setListSuccess(msg.resource, noun+" deleted") })
}

// closeEditor returns to the list behind the editor and reloads it
func (a *App) closeEditor(after func()) (tea.Model, tea.Cmd) {
	resource := a.editResource
	a.screen = a.editReturn
	a.editScreen = nil
	a.editResource = resourceNone

	if after != nil {
		after()
	}
	return a, a.reloadList(resource)
}

func (a *App) setListSuccess(resource editorResource, msg string) {
	switch resource {
	case resourceProduct:
		if a.productList != nil {
			a.productList.SetSuccess(msg)
		}
	case resourceCategory:
		if a.catList != nil {
			a.catList.SetSuccess(msg)
		}
	}
}

func (a *App) setListError(resource editorResource, msg string) {
	switch resource {
	case resourceProduct:
		if a.productList != nil {
			a.productList.SetError(msg)
		}
	case resourceCategory:
		if a.catList != nil {
			a.catList.SetError(msg)
		}
	}
}

func (a *App) reloadList(resource editorResource) tea.Cmd {
	switch resource {
	case resourceProduct:
		if a.productList != nil {
			return a.productList.Reload()
		}
	case resourceCategory:
		if a.catList != nil {
			return a.catList.Reload()
		}
	}
	return nil
}

// doLogin dispatches the login call
func (a *App) doLogin(username, password string) tea.Cmd {
	client := a.client
	return func() tea.Msg {
		sess, err := client.Login(context.Background(), username, password)
		return loginResultMsg{sess: sess, err: err}
	}
}

// doLogout clears the stored session
func (a *App) doLogout() tea.Cmd {
	sessions := a.sessions
	return func() tea.Msg {
		err := sessions.Clear()
		return logoutDoneMsg{err: err}
	}
}

// loadCounts fetches catalog totals for the menu summary, best effort
func (a *App) loadCounts() tea.Cmd {
	client := a.client
	return func() tea.Msg {
		ctx := context.Background()

		productPage, err := client.ListProducts(ctx, 0, 1)
		if err != nil {
			return countsMsg{err: err}
		}
		categoryPage, err := client.ListCategories(ctx, 0, 1)
		if err != nil {
			return countsMsg{err: err}
		}
		return countsMsg{
			products:   int64(productPage.TotalElements),
			categories: int64(categoryPage.TotalElements),
		}
	}
}

// saveProduct dispatches a product create or update
func (a *App) saveProduct(id int64, draft api.ProductDraft) tea.Cmd {
	client := a.client
	return func() tea.Msg {
		ctx := context.Background()
		var err error
		if id == 0 {
			_, err = client.CreateProduct(ctx, draft)
		} else {
			_, err = client.UpdateProduct(ctx, id, draft)
		}
		return savedMsg{resource: resourceProduct, created: id == 0, err: err}
	}
}

// saveCategory dispatches a category create or update
func (a *App) saveCategory(id int64, draft api.CategoryDraft) tea.Cmd {
	client := a.client
	return func() tea.Msg {
		ctx := context.Background()
		var err error
		if id == 0 {
			_, err = client.CreateCategory(ctx, draft)
		} else {
			_, err = client.UpdateCategory(ctx, id, draft)
		}
		return savedMsg{resource: resourceCategory, created: id == 0, err: err}
	}
}

// deleteRecord dispatches the delete for the resource behind the editor
func (a *App) deleteRecord(id int64) tea.Cmd {
	client := a.client
	resource := a.editResource
	return func() tea.Msg {
		ctx := context.Background()
		var err error
		if resource == resourceProduct {
			err = client.DeleteProduct(ctx, id)
		} else {
			err = client.DeleteCategory(ctx, id)
		}
		return deletedMsg{resource: resource, err: err}
	}
}

// View implements tea.Model
func (a *App) View() string {
	var content string

	switch a.screen {
	case ScreenLogin:
		if a.loginScreen != nil {
			content = a.loginScreen.View()
		}
	case ScreenMenu:
		content = a.menuScreen.View()
	case ScreenProducts:
		if a.productList != nil {
			content = a.productList.View()
		}
	case ScreenCategories:
		if a.catList != nil {
			content = a.catList.View()
		}
	case ScreenEditor:
		if a.editScreen != nil {
			content = a.editScreen.View()
		}
	case ScreenUnauthorized:
		content = a.viewUnauthorized()
	}

	return a.wrapWithFrame(content)
}

func (a *App) viewUnauthorized() string {
	var sb strings.Builder
	sb.WriteString(styles.StatusCritical.Render(icons.Lock.String() + " Unauthorized"))
	sb.WriteString("\n\n")
	sb.WriteString(styles.NormalRow.Render("You do not have permission to perform this action."))
	sb.WriteString("\n")
	sb.WriteString(styles.Subtitle.Render("An ADMIN account is required to modify the catalog."))
	sb.WriteString("\n\n")
	sb.WriteString(styles.Help.Render("b back  q quit"))
	return sb.String()
}

// renderHeader creates the header bar with app branding and session info
func (a *App) renderHeader() string {
	width := a.width
	if width < minTerminalWidth {
		width = minTerminalWidth
	}

	borderStyle := lipgloss.NewStyle().Foreground(styles.Muted)
	titleStyle := lipgloss.NewStyle().Foreground(styles.Primary).Bold(true)

	leftText := fmt.Sprintf(" %s %s", icons.App.String(), titleStyle.Render("Catalog Admin"))

	rightText := ""
	if sess, ok := a.sessions.Current(); ok {
		rightText = fmt.Sprintf("%s %s %s ", icons.User.String(), sess.Username, widgets.RoleBadge(sess.Role))
	}

	leftWidth := lipgloss.Width(leftText)
	rightWidth := lipgloss.Width(rightText)
	fillWidth := width - 4 - leftWidth - rightWidth
	if fillWidth < 0 {
		fillWidth = 0
	}

	header := "╭─" + leftText + strings.Repeat("─", fillWidth) + rightText + "─╮"
	return borderStyle.Render(header)
}

// renderFooter creates the footer with keyboard shortcuts
func (a *App) renderFooter() string {
	width := a.width
	if width < minTerminalWidth {
		width = minTerminalWidth
	}

	borderStyle := lipgloss.NewStyle().Foreground(styles.Muted)
	keyStyle := lipgloss.NewStyle().Foreground(styles.Primary)
	labelStyle := lipgloss.NewStyle().Foreground(styles.Muted)

	var shortcuts []string
	switch a.screen {
	case ScreenLogin:
		shortcuts = []string{"Tab Next", "Enter Submit", "Esc Quit"}
	case ScreenMenu:
		shortcuts = []string{"↑↓ Navigate", "Enter Select", "q Quit"}
	case ScreenProducts, ScreenCategories:
		shortcuts = []string{"↑↓ Select", "n/p Page", "/ Search", "b Back"}
	case ScreenEditor:
		shortcuts = []string{"Tab Next", "Enter Confirm", "Esc Cancel"}
	case ScreenUnauthorized:
		shortcuts = []string{"b Back", "q Quit"}
	}

	var styledShortcuts []string
	for _, s := range shortcuts {
		parts := strings.SplitN(s, " ", 2)
		if len(parts) == 2 {
			styledShortcuts = append(styledShortcuts, keyStyle.Render(parts[0])+" "+labelStyle.Render(parts[1]))
		} else {
			styledShortcuts = append(styledShortcuts, s)
		}
	}

	leftText := " " + strings.Join(styledShortcuts, "  ")
	leftPlainText := " " + strings.Join(shortcuts, "  ")

	fillWidth := width - 4 - lipgloss.Width(leftPlainText)
	if fillWidth < 0 {
		fillWidth = 0
	}

	footer := "╰─" + leftText + strings.Repeat("─", fillWidth) + "─╯"
	return borderStyle.Render(footer)
}

// wrapWithFrame wraps content with header and footer
func (a *App) wrapWithFrame(content string) string {
	var sb strings.Builder

	sb.WriteString(a.renderHeader())
	sb.WriteString("\n")
	sb.WriteString(content)
	sb.WriteString("\n")
	sb.WriteString(a.renderFooter())

	return sb.String()
}

// Run starts the TUI
func Run(cfg *config.Config) error {
	sessions := session.NewStore(config.DefaultConfigDir())
	if err := sessions.Load(); err != nil {
		return err
	}

	client := api.New(cfg.APIURL, sessions)
	app := New(client, sessions, cfg)

	p := tea.NewProgram(
		app,
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}
