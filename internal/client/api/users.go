package api

import (
	"context"
	"net/http"

	"github.com/google/go-querystring/query"

	"github.com/avesnin/inkpress-cli/internal/client/models"
)

// CurrentUser fetches the account the token belongs to. The token is passed
// explicitly because this call runs mid-login, before anything is persisted.
func (c *Client) CurrentUser(ctx context.Context, token string) (*models.User, error) {
	var u models.User
	if err := c.call(ctx, http.MethodGet, "/users/me", nil, "", nil, token, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// UpdateProfile patches the given user's profile fields and returns the
// merged record as the backend sees it.
func (c *Client) UpdateProfile(ctx context.Context, userID, token string, upd models.UserUpdate) (*models.User, error) {
	body, err := jsonBody(upd)
	if err != nil {
		return nil, err
	}
	var u models.User
	if err := c.call(ctx, http.MethodPatch, "/users/"+userID, nil, "application/json", body, token, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// UserProfile fetches a public author profile. Anonymous.
func (c *Client) UserProfile(ctx context.Context, userID string) (*models.User, error) {
	var u models.User
	if err := c.call(ctx, http.MethodGet, "/users/"+userID, nil, "", nil, "", &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// UserPosts lists one page of posts by the given author.
func (c *Client) UserPosts(ctx context.Context, userID string, opts ListOptions) (*models.PostList, error) {
	q, err := query.Values(opts)
	if err != nil {
		return nil, err
	}
	var list models.PostList
	if err := c.call(ctx, http.MethodGet, "/users/"+userID+"/posts", q, "", nil, "", &list); err != nil {
		return nil, err
	}
	return &list, nil
}
