package service

import (
	"context"
	"fmt"

	"github.com/finchapp/finch/cursor"
	"github.com/finchapp/finch/store"
)

const (
	// MaxPageSize bounds memory and response size. Requests beyond it are
	// clamped, not rejected.
	MaxPageSize = 100

	// DefaultPageSize applies when a request carries no page size.
	DefaultPageSize = 10
)

// UserSummary is one entry in a followers or followees page.
type UserSummary struct {
	Alias     string
	FirstName string
	LastName  string
	ImageURL  string
}

// PostSummary is one entry in a feed or story page.
type PostSummary struct {
	ID        string
	Author    UserSummary
	CreatedAt int64
	Body      string
	MediaURL  string
}

// UserPage is one page of a user-item list view.
type UserPage struct {
	Items      []UserSummary
	HasMore    bool
	NextCursor string
}

// PostPage is one page of a post-item list view.
type PostPage struct {
	Items      []PostSummary
	HasMore    bool
	NextCursor string
}

// FollowersPage serves one page of owner's followers, ordered by edge
// creation time ascending.
func (s *Service) FollowersPage(ctx context.Context, owner, token string, size int32) (UserPage, error) {
	return s.userPage(ctx, cursor.Followers, owner, token, size)
}

// FolloweesPage serves one page of the handles owner follows, ordered by
// edge creation time ascending.
func (s *Service) FolloweesPage(ctx context.Context, owner, token string, size int32) (UserPage, error) {
	return s.userPage(ctx, cursor.Followees, owner, token, size)
}

// FeedPage serves one page of owner's home feed, newest first.
func (s *Service) FeedPage(ctx context.Context, owner, token string, size int32) (PostPage, error) {
	return s.postPage(ctx, cursor.Feed, owner, token, size)
}

// StoryPage serves one page of owner's own posts, newest first.
func (s *Service) StoryPage(ctx context.Context, owner, token string, size int32) (PostPage, error) {
	return s.postPage(ctx, cursor.Story, owner, token, size)
}

// userPage runs the shared pagination algorithm for the two edge-backed
// views: decode cursor, fetch size+1 items strictly past it, use the extra
// item only as the has-more signal, and mint the next cursor from the last
// returned item's sort key.
func (s *Service) userPage(ctx context.Context, kind cursor.Kind, owner, token string, size int32) (UserPage, error) {
	view, ok := s.views.Lookup(kind)
	if !ok || view.Items != UserItems {
		return UserPage{}, fmt.Errorf("finch: no user list view %q", kind)
	}
	size = clampPageSize(size)

	after, err := cursor.Decode(token, kind)
	if err != nil {
		return UserPage{}, err
	}

	var edges []store.Edge
	if kind == cursor.Followers {
		edges, err = s.store.FollowersPage(ctx, owner, after, size+1)
	} else {
		edges, err = s.store.FollowingPage(ctx, owner, after, size+1)
	}
	if err != nil {
		return UserPage{}, err
	}

	hasMore := int32(len(edges)) > size
	if hasMore {
		edges = edges[:size]
	}

	aliases := make([]string, 0, len(edges))
	for _, e := range edges {
		if kind == cursor.Followers {
			aliases = append(aliases, e.Follower)
		} else {
			aliases = append(aliases, e.Followee)
		}
	}
	summaries, err := s.summaries(ctx, aliases)
	if err != nil {
		return UserPage{}, err
	}

	page := UserPage{Items: summaries, HasMore: hasMore}
	if hasMore {
		page.NextCursor = cursor.Encode(kind, edges[len(edges)-1].CreatedAt)
	}
	return page, nil
}

// postPage is the pagination algorithm for the two post-backed views; the
// cursor bounds the page from above since these views run newest first.
func (s *Service) postPage(ctx context.Context, kind cursor.Kind, owner, token string, size int32) (PostPage, error) {
	view, ok := s.views.Lookup(kind)
	if !ok || view.Items != PostItems {
		return PostPage{}, fmt.Errorf("finch: no post list view %q", kind)
	}
	size = clampPageSize(size)

	before, err := cursor.Decode(token, kind)
	if err != nil {
		return PostPage{}, err
	}

	var posts []store.Post
	if kind == cursor.Feed {
		posts, err = s.store.FeedPage(ctx, owner, before, size+1)
	} else {
		posts, err = s.store.StoryPage(ctx, owner, before, size+1)
	}
	if err != nil {
		return PostPage{}, err
	}

	hasMore := int32(len(posts)) > size
	if hasMore {
		posts = posts[:size]
	}

	aliases := make([]string, 0, len(posts))
	for _, p := range posts {
		aliases = append(aliases, p.Author)
	}
	authors, err := s.summaries(ctx, aliases)
	if err != nil {
		return PostPage{}, err
	}

	items := make([]PostSummary, 0, len(posts))
	for i, p := range posts {
		items = append(items, PostSummary{
			ID:        p.ID,
			Author:    authors[i],
			CreatedAt: p.CreatedAt,
			Body:      p.Body,
			MediaURL:  p.MediaURL,
		})
	}

	page := PostPage{Items: items, HasMore: hasMore}
	if hasMore {
		page.NextCursor = cursor.Encode(kind, posts[len(posts)-1].CreatedAt)
	}
	return page, nil
}

// summaries resolves aliases to user summaries with one batch read,
// preserving input order. An alias with no account gets a placeholder
// summary rather than shrinking the page.
func (s *Service) summaries(ctx context.Context, aliases []string) ([]UserSummary, error) {
	if len(aliases) == 0 {
		return []UserSummary{}, nil
	}

	users, err := s.store.GetUsers(ctx, dedupe(aliases))
	if err != nil {
		return nil, err
	}
	byHandle := make(map[string]store.User, len(users))
	for _, u := range users {
		byHandle[u.Handle] = u
	}

	out := make([]UserSummary, 0, len(aliases))
	for _, a := range aliases {
		u, ok := byHandle[a]
		if !ok {
			out = append(out, UserSummary{Alias: a})
			continue
		}
		out = append(out, UserSummary{
			Alias:     u.Handle,
			FirstName: u.FirstName,
			LastName:  u.LastName,
			ImageURL:  u.ImageURL,
		})
	}
	return out, nil
}

func clampPageSize(size int32) int32 {
	if size <= 0 {
		return DefaultPageSize
	}
	if size > MaxPageSize {
		return MaxPageSize
	}
	return size
}

func dedupe(aliases []string) []string {
	seen := make(map[string]bool, len(aliases))
	out := make([]string, 0, len(aliases))
	for _, a := range aliases {
		if !seen[a] {
			seen[a] = true
			out = append(out, a)
		}
	}
	return out
}
