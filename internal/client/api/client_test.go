package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avesnin/inkpress-cli/internal/client/models"
	"github.com/avesnin/inkpress-cli/internal/logging"
)

func testLogger() logging.Logger {
	return logging.NewTextLogger(io.Discard, slog.LevelError)
}

func staticToken(token string) TokenSource {
	return func(ctx context.Context) (string, error) { return token, nil }
}

func newTestClient(t *testing.T, handler http.Handler, tokens TokenSource) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, tokens, testLogger(), 5*time.Second)
}

func TestLogin_SendsFormEncodedCredentials(t *testing.T) {
	var gotContentType, gotUser, gotPass, gotAuth string

	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/auth/login", r.URL.Path)
		gotContentType = r.Header.Get("Content-Type")
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, r.ParseForm())
		gotUser = r.PostFormValue("username")
		gotPass = r.PostFormValue("password")

		json.NewEncoder(w).Encode(map[string]any{
			"access_token": "tok-123",
			"user":         map[string]any{"id": "u1", "username": "alice", "email": "a@x.com"},
		})
	}), nil)

	resp, err := c.Login(context.Background(), "alice", "secret1")
	require.NoError(t, err)

	assert.Equal(t, "application/x-www-form-urlencoded", gotContentType)
	assert.Equal(t, "alice", gotUser)
	assert.Equal(t, "secret1", gotPass)
	assert.Empty(t, gotAuth, "login must not carry a bearer token")
	assert.Equal(t, "tok-123", resp.AccessToken)
	require.NotNil(t, resp.User)
	assert.Equal(t, "alice", resp.User.Username)
}

func TestLogin_ResponseMayOmitUser(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"access_token": "tok-123"})
	}), nil)

	resp, err := c.Login(context.Background(), "alice", "secret1")
	require.NoError(t, err)
	assert.Equal(t, "tok-123", resp.AccessToken)
	assert.Nil(t, resp.User)
}

func TestLogin_BadCredentials(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"detail": "incorrect username or password"})
	}), nil)

	_, err := c.Login(context.Background(), "alice", "wrong")
	require.Error(t, err)
	require.ErrorIs(t, err, ErrUnauthorized)
	assert.Equal(t, "incorrect username or password", err.Error())
}

func TestNormalizeError_FieldPriorityAndFallback(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   string
	}{
		{
			name:   "detail wins over message",
			status: 400,
			body:   `{"detail":"bad thing","message":"other"}`,
			want:   "bad thing",
		},
		{
			name:   "message used when detail absent",
			status: 400,
			body:   `{"message":"other"}`,
			want:   "other",
		},
		{
			name:   "unparseable body falls back to status",
			status: 500,
			body:   `<html>oops</html>`,
			want:   "request failed with status 500",
		},
		{
			name:   "empty body falls back to status",
			status: 502,
			body:   "",
			want:   "request failed with status 502",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := normalizeError(tt.status, []byte(tt.body))
			assert.Equal(t, tt.want, e.Message)
			assert.Equal(t, tt.status, e.Status)
		})
	}
}

func TestAuthenticatedCall_ReadsTokenSourceEachCall(t *testing.T) {
	var seen []string

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = append(seen, r.Header.Get("Authorization"))
		json.NewEncoder(w).Encode(models.Post{ID: "p1"})
	})

	token := "first"
	c := newTestClient(t, handler, func(ctx context.Context) (string, error) {
		return token, nil
	})

	_, err := c.CreatePost(context.Background(), models.PostDraft{Title: "t", Content: "c"})
	require.NoError(t, err)

	// Rotate the token between calls; the client must pick it up.
	token = "second"
	_, err = c.CreatePost(context.Background(), models.PostDraft{Title: "t", Content: "c"})
	require.NoError(t, err)

	require.Equal(t, []string{"Bearer first", "Bearer second"}, seen)
}

func TestCall_SetsRequestID(t *testing.T) {
	var got string
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Get("X-Request-Id")
		json.NewEncoder(w).Encode(models.PostList{})
	}), nil)

	_, err := c.ListPosts(context.Background(), ListOptions{})
	require.NoError(t, err)
	assert.NotEmpty(t, got)
}

func TestListPosts_QueryEncoding(t *testing.T) {
	var q map[string][]string
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/posts", r.URL.Path)
		q = r.URL.Query()
		json.NewEncoder(w).Encode(models.PostList{Items: []models.Post{{ID: "p1"}}, Total: 23})
	}), nil)

	list, err := c.ListPosts(context.Background(), ListOptions{Page: 2, Limit: 10, AuthorID: "u1", Sort: "-published_at"})
	require.NoError(t, err)

	assert.Equal(t, []string{"2"}, q["page"])
	assert.Equal(t, []string{"10"}, q["limit"])
	assert.Equal(t, []string{"u1"}, q["author_id"])
	assert.Equal(t, []string{"-published_at"}, q["sort"])
	assert.Equal(t, 23, list.Total)
	require.Len(t, list.Items, 1)
}

func TestListPosts_ZeroOptionsOmitted(t *testing.T) {
	var raw string
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw = r.URL.RawQuery
		json.NewEncoder(w).Encode(models.PostList{})
	}), nil)

	_, err := c.ListPosts(context.Background(), ListOptions{})
	require.NoError(t, err)
	assert.Empty(t, raw)
}

func TestSearchPosts_SendsQueryText(t *testing.T) {
	var got string
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/posts/search", r.URL.Path)
		got = r.URL.Query().Get("q")
		json.NewEncoder(w).Encode(models.PostList{})
	}), nil)

	_, err := c.SearchPosts(context.Background(), "gardening", ListOptions{Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, "gardening", got)
}

func TestCurrentUser_UsesExplicitToken(t *testing.T) {
	var auth string
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/users/me", r.URL.Path)
		auth = r.Header.Get("Authorization")
		json.NewEncoder(w).Encode(models.User{ID: "u1", Username: "alice", Email: "a@x.com"})
	}), staticToken("stored-token"))

	u, err := c.CurrentUser(context.Background(), "fresh-token")
	require.NoError(t, err)

	// Mid-login the fresh token wins over whatever the store holds.
	assert.Equal(t, "Bearer fresh-token", auth)
	assert.Equal(t, "alice", u.Username)
}

func TestUpdateProfile_SendsOnlyChangedFields(t *testing.T) {
	var body map[string]any
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPatch, r.Method)
		require.Equal(t, "/users/u1", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		json.NewEncoder(w).Encode(models.User{ID: "u1", Username: "alice", Email: "a@x.com", Bio: "new bio"})
	}), nil)

	bio := "new bio"
	u, err := c.UpdateProfile(context.Background(), "u1", "tok", models.UserUpdate{Bio: &bio})
	require.NoError(t, err)

	assert.Equal(t, map[string]any{"bio": "new bio"}, body)
	assert.Equal(t, "new bio", u.Bio)
}

func TestDeletePost_NoContent(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodDelete, r.Method)
		w.WriteHeader(http.StatusNoContent)
	}), staticToken("tok"))

	require.NoError(t, c.DeletePost(context.Background(), "p1"))
}

func TestDeletePost_NotFound(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}), staticToken("tok"))

	err := c.DeletePost(context.Background(), "404-missing-id")
	require.Error(t, err)
	require.ErrorIs(t, err, ErrNotFound)
	assert.Contains(t, err.Error(), "not found")
}

func TestCall_TransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	c := NewClient(url, nil, testLogger(), time.Second)
	_, err := c.ListPosts(context.Background(), ListOptions{})
	require.Error(t, err)
	require.ErrorIs(t, err, ErrUnavailable)
}

func TestRegister_SendsJSON(t *testing.T) {
	var body map[string]any
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/auth/register", r.URL.Path)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]string{"id": "u1"})
	}), nil)

	err := c.Register(context.Background(), "alice", "a@x.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"username": "alice", "email": "a@x.com", "password": "secret1"}, body)
}

func TestErrorUnwrap_StatusMapping(t *testing.T) {
	assert.True(t, errors.Is(&Error{Status: 401}, ErrUnauthorized))
	assert.True(t, errors.Is(&Error{Status: 403}, ErrUnauthorized))
	assert.True(t, errors.Is(&Error{Status: 404}, ErrNotFound))
	assert.False(t, errors.Is(&Error{Status: 500}, ErrUnauthorized))
	assert.False(t, errors.Is(&Error{Status: 500}, ErrNotFound))
}
