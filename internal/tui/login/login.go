// ABOUTME: Login screen as a bubbletea model wrapping a huh form
// ABOUTME: Collects credentials and emits SubmitMsg for the app to dispatch

package login

import (
	"errors"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"catalogctl/internal/tui/icons"
	"catalogctl/internal/tui/styles"
)

// SubmitMsg is sent when the user submits the login form
type SubmitMsg struct {
	Username string
	Password string
}

// CancelledMsg is sent when the user backs out of the login screen
type CancelledMsg struct{}

// Model is the login form screen
type Model struct {
	form     *huh.Form
	username string
	password string
	errMsg   string
	busy     bool
	width    int
}

// New creates a login screen with empty credentials
func New() *Model {
	m := &Model{}
	m.form = m.createForm()
	return m
}

func (m *Model) createForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Username").
				Placeholder("username").
				CharLimit(64).
				Value(&m.username).
				Validate(requireValue("username is required")),
			huh.NewInput().
				Title("Password").
				EchoMode(huh.EchoModePassword).
				CharLimit(128).
				Value(&m.password).
				Validate(requireValue("password is required")),
		).Title(icons.Lock.String()+" Sign In").
			Description("Enter your credentials to manage the catalog"),
	).WithTheme(styles.FormTheme())
}

func requireValue(message string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return errors.New(message)
		}
		return nil
	}
}

// Init implements tea.Model
func (m *Model) Init() tea.Cmd {
	return m.form.Init()
}

// Update implements tea.Model
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width

	case tea.KeyMsg:
		if msg.String() == "esc" {
			return m, func() tea.Msg { return CancelledMsg{} }
		}
	}

	// Ignore everything else while a login attempt is in flight; the
	// form's State stays Completed, so re-entering it would emit a
	// duplicate SubmitMsg.
	if m.busy {
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		m.busy = true
		username := strings.TrimSpace(m.username)
		password := m.password
		return m, func() tea.Msg {
			return SubmitMsg{Username: username, Password: password}
		}
	}

	return m, cmd
}

// Fail records a failed login attempt and re-arms the form.
// Entered values are preserved so the user can correct them.
func (m *Model) Fail(message string) tea.Cmd {
	m.busy = false
	m.errMsg = message
	m.form = m.createForm()
	return m.form.Init()
}

// Busy reports whether a login attempt is in flight
func (m *Model) Busy() bool {
	return m.busy
}

// ErrorMessage returns the message from the last failed attempt
func (m *Model) ErrorMessage() string {
	return m.errMsg
}

// View implements tea.Model
func (m *Model) View() string {
	var sb strings.Builder

	if m.errMsg != "" {
		sb.WriteString(styles.ErrorBar.Render(icons.Warning.String() + " " + m.errMsg))
		sb.WriteString("\n\n")
	}

	if m.busy {
		sb.WriteString(styles.Subtitle.Render("Signing in..."))
		sb.WriteString("\n")
	}

	sb.WriteString(m.form.View())

	return sb.String()
}
