package cli

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/avesnin/inkpress-cli/internal/client/api"
	"github.com/avesnin/inkpress-cli/internal/client/guard"
	"github.com/avesnin/inkpress-cli/internal/client/models"
)

const feedPageSize = 10

func renderPostLine(p models.Post) string {
	return fmt.Sprintf("%s  %s — by %s (%s)", p.PublishedAt.Format("2006-01-02"), p.Title, p.Author.Username, p.ID)
}

func renderList(list *models.PostList, page int) {
	for _, p := range list.Items {
		printlnFn(renderPostLine(p))
	}
	pages := (list.Total + feedPageSize - 1) / feedPageSize
	printlnFn(fmt.Sprintf("-- page %d of %d (%d posts) --", page, pages, list.Total))
}

// Feed lists a page of the newest posts. Works signed out.
func (a *App) Feed(ctx context.Context) error {
	raw, err := getSimpleText(a.reader, "Page (empty for 1)", os.Stdout)
	if err != nil {
		return err
	}
	page := 1
	if raw != "" {
		if n, convErr := strconv.Atoi(raw); convErr == nil && n > 0 {
			page = n
		}
	}

	list, err := a.api.ListPosts(ctx, api.ListOptions{Page: page, Limit: feedPageSize, Sort: "-published_at"})
	if err != nil {
		printlnFn("Could not load the feed:", err.Error())
		return err
	}
	renderList(list, page)
	return nil
}

// Read shows a single post by id or slug.
func (a *App) Read(ctx context.Context) error {
	id, err := getSimpleText(a.reader, "Post id or slug", os.Stdout)
	if err != nil {
		return err
	}

	p, err := a.api.GetPost(ctx, id)
	if err != nil {
		printlnFn("Could not load the post:", err.Error())
		return err
	}

	printlnFn("#", p.Title)
	printlnFn(fmt.Sprintf("by %s on %s", p.Author.Username, p.PublishedAt.Format("Jan 2, 2006")))
	if len(p.Tags) > 0 {
		tags := make([]string, 0, len(p.Tags))
		for _, t := range p.Tags {
			tags = append(tags, t.Name)
		}
		printlnFn("tags:", tags)
	}
	printlnFn("")
	printlnFn(p.Content)
	return nil
}

// Search runs a full-text search over published posts.
func (a *App) Search(ctx context.Context) error {
	text, err := getSimpleText(a.reader, "Search for", os.Stdout)
	if err != nil {
		return err
	}
	if text == "" {
		printlnFn("Nothing to search for.")
		return nil
	}

	list, err := a.api.SearchPosts(ctx, text, api.ListOptions{Limit: feedPageSize})
	if err != nil {
		printlnFn("Search failed:", err.Error())
		return err
	}
	renderList(list, 1)
	return nil
}

// Author shows a public author profile together with their latest posts.
func (a *App) Author(ctx context.Context) error {
	id, err := getSimpleText(a.reader, "Author id", os.Stdout)
	if err != nil {
		return err
	}

	u, err := a.api.UserProfile(ctx, id)
	if err != nil {
		printlnFn("Could not load the profile:", err.Error())
		return err
	}

	printlnFn(u.Username)
	if u.Name != "" {
		printlnFn(u.Name)
	}
	if u.Bio != "" {
		printlnFn(u.Bio)
	}

	list, err := a.api.UserPosts(ctx, id, api.ListOptions{Limit: feedPageSize})
	if err != nil {
		printlnFn("Could not load the author's posts:", err.Error())
		return err
	}
	renderList(list, 1)
	return nil
}

// Write publishes a new post. Protected: anonymous users are sent to login
// and come back here afterwards.
func (a *App) Write(ctx context.Context) error {
	if !a.authorize(guard.RouteWrite) {
		return nil
	}

	title, err := getSimpleText(a.reader, "Title", os.Stdout)
	if err != nil {
		return err
	}
	content, err := getMultiline(a.reader, "Body", os.Stdout)
	if err != nil {
		return err
	}
	excerpt, err := getSimpleText(a.reader, "Excerpt (optional)", os.Stdout)
	if err != nil {
		return err
	}
	rawTags, err := getSimpleText(a.reader, "Tags, comma separated (optional)", os.Stdout)
	if err != nil {
		return err
	}

	draft := models.PostDraft{Title: title, Content: content, Excerpt: excerpt, Tags: splitTags(rawTags)}
	p, err := a.api.CreatePost(ctx, draft)
	if err != nil {
		if a.sessions.HandleAuthError(ctx, err) {
			printlnFn("Your session has expired; please sign in again.")
		} else {
			printlnFn("Could not publish the post:", err.Error())
		}
		return err
	}

	printlnFn("Published:", renderPostLine(*p))
	return nil
}

// Edit applies a partial update to one of the user's posts. Fields left
// empty keep their current values.
func (a *App) Edit(ctx context.Context) error {
	if !a.authorize(guard.RouteEditPost) {
		return nil
	}

	id, err := getSimpleText(a.reader, "Post id", os.Stdout)
	if err != nil {
		return err
	}

	var upd models.PostUpdate
	if title, err := getSimpleText(a.reader, "New title (empty to keep)", os.Stdout); err != nil {
		return err
	} else if title != "" {
		upd.Title = &title
	}
	if content, err := getMultiline(a.reader, "New body (empty to keep)", os.Stdout); err != nil {
		return err
	} else if content != "" {
		upd.Content = &content
	}

	p, err := a.api.UpdatePost(ctx, id, upd)
	if err != nil {
		if a.sessions.HandleAuthError(ctx, err) {
			printlnFn("Your session has expired; please sign in again.")
		} else {
			printlnFn("Could not update the post:", err.Error())
		}
		return err
	}

	printlnFn("Updated:", renderPostLine(*p))
	return nil
}

// Delete removes one of the user's posts.
func (a *App) Delete(ctx context.Context) error {
	if !a.authorize(guard.RouteDeletePost) {
		return nil
	}

	id, err := getSimpleText(a.reader, "Post id", os.Stdout)
	if err != nil {
		return err
	}

	if err := a.api.DeletePost(ctx, id); err != nil {
		if a.sessions.HandleAuthError(ctx, err) {
			printlnFn("Your session has expired; please sign in again.")
		} else {
			printlnFn("Could not delete the post:", err.Error())
		}
		return err
	}

	printlnFn("Deleted.")
	return nil
}
