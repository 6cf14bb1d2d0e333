// ABOUTME: Auth resource client for the catalog backend
// ABOUTME: Exchanges credentials for a session and persists it on success

package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"catalogctl/internal/session"
)

// loginRequest is the POST /auth/login payload
type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// loginResponse is the backend's login response shape
type loginResponse struct {
	Username string `json:"username"`
	Role     string `json:"role"`
	Token    string `json:"token"`
}

// Login authenticates against the backend and persists the resulting
// session. The role is taken from the server's response; when the server
// omits it, the least-privileged role applies.
func (c *Client) Login(ctx context.Context, username, password string) (session.Session, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return session.Session{}, validationError("username is required")
	}
	if password == "" {
		return session.Session{}, validationError("password is required")
	}

	data, err := c.do(ctx, http.MethodPost, "/auth/login", nil, loginRequest{
		Username: username,
		Password: password,
	})
	if err != nil {
		return session.Session{}, err
	}

	var resp loginResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return session.Session{}, fmt.Errorf("invalid response from backend: %w", err)
	}
	if resp.Token == "" {
		return session.Session{}, &Error{Kind: KindUnknown, Message: "login response did not include a token"}
	}
	if resp.Username == "" {
		resp.Username = username
	}

	sess := session.Session{
		Username: resp.Username,
		Role:     session.ParseRole(resp.Role),
		Token:    resp.Token,
	}
	if err := c.sessions.Login(sess); err != nil {
		return session.Session{}, fmt.Errorf("failed to persist session: %w", err)
	}
	return sess, nil
}
