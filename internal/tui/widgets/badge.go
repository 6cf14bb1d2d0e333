// ABOUTME: Status badge widgets for quick visual status indication
// ABOUTME: Provides colored inline badges for roles and messages

package widgets

import (
	"github.com/charmbracelet/lipgloss"

	"catalogctl/internal/session"
)

// StatusLevel represents the severity of a status
type StatusLevel int

const (
	StatusOK StatusLevel = iota
	StatusWarning
	StatusCritical
	StatusNeutral
)

// Badge colors
var (
	badgeOKBg      = lipgloss.Color("#10B981")
	badgeOKFg      = lipgloss.Color("#FFFFFF")
	badgeWarnBg    = lipgloss.Color("#F59E0B")
	badgeWarnFg    = lipgloss.Color("#000000")
	badgeCritBg    = lipgloss.Color("#EF4444")
	badgeCritFg    = lipgloss.Color("#FFFFFF")
	badgeNeutralBg = lipgloss.Color("#6B7280")
	badgeNeutralFg = lipgloss.Color("#FFFFFF")
)

// Badge renders a colored status badge
func Badge(text string, level StatusLevel) string {
	var bg, fg lipgloss.Color

	switch level {
	case StatusOK:
		bg, fg = badgeOKBg, badgeOKFg
	case StatusWarning:
		bg, fg = badgeWarnBg, badgeWarnFg
	case StatusCritical:
		bg, fg = badgeCritBg, badgeCritFg
	default:
		bg, fg = badgeNeutralBg, badgeNeutralFg
	}

	style := lipgloss.NewStyle().
		Background(bg).
		Foreground(fg).
		Padding(0, 1).
		Bold(true)

	return style.Render(text)
}

// RoleBadge renders the session role as a badge.
// Admin stands out; everything else renders neutral.
func RoleBadge(role session.Role) string {
	if role == session.RoleAdmin {
		return Badge("ADMIN", StatusWarning)
	}
	return Badge("USER", StatusNeutral)
}
