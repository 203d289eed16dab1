package models

import "time"

// Author is the subset of User embedded in post payloads.
type Author struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Avatar   string `json:"avatar,omitempty"`
}

type Tag struct {
	Name string `json:"name"`
}

// Post is a published article as returned by the backend.
type Post struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Content     string     `json:"content"`
	Excerpt     string     `json:"excerpt,omitempty"`
	CoverImage  string     `json:"cover_image,omitempty"`
	PublishedAt time.Time  `json:"published_at"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty"`
	Author      Author     `json:"author"`
	Tags        []Tag      `json:"tags,omitempty"`
}

// PostDraft is the payload for creating a post.
type PostDraft struct {
	Title      string   `json:"title"`
	Content    string   `json:"content"`
	Excerpt    string   `json:"excerpt,omitempty"`
	CoverImage string   `json:"cover_image,omitempty"`
	Tags       []string `json:"tags,omitempty"`
}

// PostUpdate is a partial edit; nil fields are left unchanged by the backend.
type PostUpdate struct {
	Title      *string  `json:"title,omitempty"`
	Content    *string  `json:"content,omitempty"`
	Excerpt    *string  `json:"excerpt,omitempty"`
	CoverImage *string  `json:"cover_image,omitempty"`
	Tags       []string `json:"tags,omitempty"`
}

// PostList is one page of a paginated listing.
type PostList struct {
	Items []Post `json:"items"`
	Total int    `json:"total"`
}
