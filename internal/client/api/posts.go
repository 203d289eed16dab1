package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/go-querystring/query"

	"github.com/avesnin/inkpress-cli/internal/client/models"
)

// ListOptions selects a page of a post listing. Zero values are omitted
// from the query string and fall back to backend defaults.
type ListOptions struct {
	Page     int    `url:"page,omitempty"`
	Limit    int    `url:"limit,omitempty"`
	AuthorID string `url:"author_id,omitempty"`
	Sort     string `url:"sort,omitempty"`
}

// ListPosts fetches one page of the feed. Anonymous.
func (c *Client) ListPosts(ctx context.Context, opts ListOptions) (*models.PostList, error) {
	q, err := query.Values(opts)
	if err != nil {
		return nil, err
	}
	var list models.PostList
	if err := c.call(ctx, http.MethodGet, "/posts", q, "", nil, "", &list); err != nil {
		return nil, err
	}
	return &list, nil
}

// SearchPosts runs a full-text search over published posts. Anonymous.
func (c *Client) SearchPosts(ctx context.Context, text string, opts ListOptions) (*models.PostList, error) {
	q, err := query.Values(opts)
	if err != nil {
		return nil, err
	}
	q.Set("q", text)
	var list models.PostList
	if err := c.call(ctx, http.MethodGet, "/posts/search", q, "", nil, "", &list); err != nil {
		return nil, err
	}
	return &list, nil
}

// GetPost fetches a single post by id or slug. Anonymous.
func (c *Client) GetPost(ctx context.Context, idOrSlug string) (*models.Post, error) {
	var p models.Post
	if err := c.call(ctx, http.MethodGet, "/posts/"+idOrSlug, nil, "", nil, "", &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// CreatePost publishes a new post. Authenticated.
func (c *Client) CreatePost(ctx context.Context, draft models.PostDraft) (*models.Post, error) {
	token, err := c.currentToken(ctx)
	if err != nil {
		return nil, err
	}
	body, err := jsonBody(draft)
	if err != nil {
		return nil, err
	}
	var p models.Post
	if err := c.call(ctx, http.MethodPost, "/posts", nil, "application/json", body, token, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// UpdatePost applies a partial edit to an existing post. Authenticated.
// A 404 covers both a missing post and a post owned by someone else; the
// backend does not distinguish, so neither do we.
func (c *Client) UpdatePost(ctx context.Context, postID string, upd models.PostUpdate) (*models.Post, error) {
	token, err := c.currentToken(ctx)
	if err != nil {
		return nil, err
	}
	body, err := jsonBody(upd)
	if err != nil {
		return nil, err
	}
	var p models.Post
	err = c.call(ctx, http.MethodPatch, "/posts/"+postID, nil, "application/json", body, token, &p)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, &Error{Status: http.StatusNotFound, Message: "post not found or you do not have permission to edit it"}
		}
		return nil, err
	}
	return &p, nil
}

// DeletePost removes a post. Authenticated; the backend answers 204.
func (c *Client) DeletePost(ctx context.Context, postID string) error {
	token, err := c.currentToken(ctx)
	if err != nil {
		return err
	}
	err = c.call(ctx, http.MethodDelete, "/posts/"+postID, nil, "", nil, token, nil)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return &Error{Status: http.StatusNotFound, Message: "post not found or you do not have permission to delete it"}
		}
		return err
	}
	return nil
}
