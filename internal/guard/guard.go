// ABOUTME: Access-control guard for screens and write commands
// ABOUTME: Maps a required capability plus session state to a render decision

package guard

import "catalogctl/internal/session"

// Capability is the access level a screen or command requires
type Capability int

const (
	CapabilityNone Capability = iota
	CapabilityAuthenticated
	CapabilityAdmin
)

// Decision is the guard's verdict for the requested view
type Decision int

const (
	// Allow renders the guarded content
	Allow Decision = iota
	// ShowLoading renders a neutral placeholder while session state is unresolved
	ShowLoading
	// RedirectLogin sends unauthenticated navigation to the login screen
	RedirectLogin
	// RedirectUnauthorized sends under-privileged navigation to the unauthorized screen
	RedirectUnauthorized
)

// String returns the string representation of a Decision
func (d Decision) String() string {
	switch d {
	case Allow:
		return "allow"
	case ShowLoading:
		return "loading"
	case RedirectLogin:
		return "login"
	case RedirectUnauthorized:
		return "unauthorized"
	default:
		return "invalid"
	}
}

// SessionState is the subset of the session store the guard consults
type SessionState interface {
	State() session.State
	IsAdmin() bool
}

// Check decides whether content requiring the given capability may render.
// While the session state is still Unknown, guarded content is withheld
// without redirecting so the initial storage read cannot cause a redirect
// flicker.
func Check(capability Capability, s SessionState) Decision {
	if capability == CapabilityNone {
		return Allow
	}

	switch s.State() {
	case session.StateUnknown:
		return ShowLoading
	case session.StateAnonymous:
		return RedirectLogin
	}

	if capability == CapabilityAdmin && !s.IsAdmin() {
		return RedirectUnauthorized
	}
	return Allow
}
