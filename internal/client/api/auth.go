package api

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/avesnin/inkpress-cli/internal/client/models"
)

// LoginResponse is the body of a successful POST /auth/login. The backend
// may omit the user record, in which case the caller fetches it separately.
type LoginResponse struct {
	AccessToken string       `json:"access_token"`
	User        *models.User `json:"user,omitempty"`
}

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login exchanges credentials for an access token. The auth endpoint takes
// form-encoded fields, unlike the rest of the API.
func (c *Client) Login(ctx context.Context, username, password string) (*LoginResponse, error) {
	form := url.Values{}
	form.Set("username", username)
	form.Set("password", password)

	var resp LoginResponse
	err := c.call(ctx, http.MethodPost, "/auth/login", nil,
		"application/x-www-form-urlencoded", strings.NewReader(form.Encode()), "", &resp)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// Register creates an account. Registration never returns a token; callers
// follow up with Login using the same credentials.
func (c *Client) Register(ctx context.Context, username, email, password string) error {
	body, err := jsonBody(registerRequest{Username: username, Email: email, Password: password})
	if err != nil {
		return err
	}
	return c.call(ctx, http.MethodPost, "/auth/register", nil, "application/json", body, "", nil)
}
