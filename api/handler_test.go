package api_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/finchapp/finch/api"
	"github.com/finchapp/finch/auth"
	"github.com/finchapp/finch/cursor"
	"github.com/finchapp/finch/service"
	"github.com/finchapp/finch/store"
)

type fakeAuth struct {
	handle string
	err    error
}

func (f *fakeAuth) Validate(context.Context, string) (string, error) {
	return f.handle, f.err
}

// fakeSocial answers every service call from fixed fields.
type fakeSocial struct {
	counts    service.Counts
	userPage  service.UserPage
	postPage  service.PostPage
	count     int64
	following bool
	err       error
}

func (f *fakeSocial) Follow(context.Context, string, string) (service.Counts, error) {
	return f.counts, f.err
}

func (f *fakeSocial) Unfollow(context.Context, string, string) (service.Counts, error) {
	return f.counts, f.err
}

func (f *fakeSocial) FollowersPage(context.Context, string, string, int32) (service.UserPage, error) {
	return f.userPage, f.err
}

func (f *fakeSocial) FolloweesPage(context.Context, string, string, int32) (service.UserPage, error) {
	return f.userPage, f.err
}

func (f *fakeSocial) FeedPage(context.Context, string, string, int32) (service.PostPage, error) {
	return f.postPage, f.err
}

func (f *fakeSocial) StoryPage(context.Context, string, string, int32) (service.PostPage, error) {
	return f.postPage, f.err
}

func (f *fakeSocial) FollowerCount(context.Context, string) (int64, error) {
	return f.count, f.err
}

func (f *fakeSocial) FollowingCount(context.Context, string) (int64, error) {
	return f.count, f.err
}

func (f *fakeSocial) IsFollowing(context.Context, string, string) (bool, error) {
	return f.following, f.err
}

func newHandler(a *fakeAuth, s *fakeSocial) *api.Handler {
	return api.NewHandler(a, s, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func followReq() api.FollowRequest {
	return api.FollowRequest{Token: "t", FollowerAlias: "alice", FolloweeAlias: "bob"}
}

func TestFollow_Success(t *testing.T) {
	h := newHandler(&fakeAuth{handle: "alice"}, &fakeSocial{
		counts: service.Counts{FollowerCount: 4, FollowingCount: 2},
	})

	resp, err := h.Follow(context.Background(), followReq())
	if err != nil {
		t.Fatalf("unexpected transport error: %v", err)
	}
	if !resp.Success {
		t.Fatalf("expected success, got message %q", resp.Message)
	}
	if resp.FollowerCount != 4 || resp.FollowingCount != 2 {
		t.Errorf("unexpected counts %+v", resp)
	}
}

func TestFollow_MissingFields(t *testing.T) {
	h := newHandler(&fakeAuth{handle: "alice"}, &fakeSocial{})

	resp, err := h.Follow(context.Background(), api.FollowRequest{Token: "t", FollowerAlias: "alice"})
	if err != nil {
		t.Fatalf("unexpected transport error: %v", err)
	}
	if resp.Success {
		t.Fatal("expected failure for missing followee")
	}
	if resp.Message != api.MsgBadRequest {
		t.Errorf("expected %q, got %q", api.MsgBadRequest, resp.Message)
	}
}

func TestFollow_Unauthorized(t *testing.T) {
	h := newHandler(&fakeAuth{err: auth.ErrUnauthorized}, &fakeSocial{})

	resp, err := h.Follow(context.Background(), followReq())
	if err != nil {
		t.Fatalf("unexpected transport error: %v", err)
	}
	if resp.Success || resp.Message != api.MsgUnauthorized {
		t.Errorf("expected unauthorized failure, got %+v", resp)
	}
}

func TestFollow_SelfFollowMessage(t *testing.T) {
	h := newHandler(&fakeAuth{handle: "alice"}, &fakeSocial{err: service.ErrSelfFollow})

	resp, err := h.Follow(context.Background(), followReq())
	if err != nil {
		t.Fatalf("unexpected transport error: %v", err)
	}
	if resp.Success || resp.Message != api.MsgSelfFollow {
		t.Errorf("expected self-follow message, got %+v", resp)
	}
}

func TestUnfollow_StoreUnavailable(t *testing.T) {
	h := newHandler(&fakeAuth{handle: "alice"}, &fakeSocial{
		err: errors.New("wrapped: " + store.ErrUnavailable.Error()),
	})

	// An unrelated error maps to the internal message, not a store one.
	resp, err := h.Unfollow(context.Background(), api.UnfollowRequest{
		Token: "t", FollowerAlias: "alice", FolloweeAlias: "bob",
	})
	if err != nil {
		t.Fatalf("unexpected transport error: %v", err)
	}
	if resp.Message != api.MsgInternal {
		t.Errorf("expected %q, got %q", api.MsgInternal, resp.Message)
	}
}

func TestMoreFollowers_Success(t *testing.T) {
	h := newHandler(&fakeAuth{handle: "alice"}, &fakeSocial{
		userPage: service.UserPage{
			Items: []service.UserSummary{
				{Alias: "bob", FirstName: "Bob", LastName: "B", ImageURL: "u"},
			},
			HasMore:    true,
			NextCursor: "next",
		},
	})

	resp, err := h.MoreFollowers(context.Background(), api.PagedUserItemRequest{
		Token: "t", OwnerAlias: "alice", PageSize: 10,
	})
	if err != nil {
		t.Fatalf("unexpected transport error: %v", err)
	}
	if !resp.Success {
		t.Fatalf("expected success, got %q", resp.Message)
	}
	if len(resp.Items) != 1 || resp.Items[0].Alias != "bob" || resp.Items[0].FirstName != "Bob" {
		t.Errorf("unexpected items %+v", resp.Items)
	}
	if !resp.HasMore || resp.NextCursor != "next" {
		t.Errorf("pagination fields not carried over: %+v", resp)
	}
}

func TestMoreFollowees_InvalidCursorMessage(t *testing.T) {
	h := newHandler(&fakeAuth{handle: "alice"}, &fakeSocial{err: cursor.ErrInvalidCursor})

	resp, err := h.MoreFollowees(context.Background(), api.PagedUserItemRequest{
		Token: "t", OwnerAlias: "alice", LastItemCursor: "bogus",
	})
	if err != nil {
		t.Fatalf("unexpected transport error: %v", err)
	}
	if resp.Success || resp.Message != api.MsgInvalidCursor {
		t.Errorf("expected invalid-cursor failure, got %+v", resp)
	}
}

func TestFeedItems_Success(t *testing.T) {
	h := newHandler(&fakeAuth{handle: "alice"}, &fakeSocial{
		postPage: service.PostPage{
			Items: []service.PostSummary{
				{
					ID:        "p1",
					Author:    service.UserSummary{Alias: "carol"},
					CreatedAt: 777,
					Body:      "hello",
					MediaURL:  "m",
				},
			},
		},
	})

	resp, err := h.FeedItems(context.Background(), api.PagedStatusItemRequest{
		Token: "t", OwnerAlias: "alice",
	})
	if err != nil {
		t.Fatalf("unexpected transport error: %v", err)
	}
	if !resp.Success {
		t.Fatalf("expected success, got %q", resp.Message)
	}
	it := resp.Items[0]
	if it.ID != "p1" || it.Author.Alias != "carol" || it.Timestamp != 777 || it.Body != "hello" {
		t.Errorf("unexpected item %+v", it)
	}
}

func TestStoryItems_NotFoundMessage(t *testing.T) {
	h := newHandler(&fakeAuth{handle: "alice"}, &fakeSocial{err: store.ErrNotFound})

	resp, err := h.StoryItems(context.Background(), api.PagedStatusItemRequest{
		Token: "t", OwnerAlias: "ghost",
	})
	if err != nil {
		t.Fatalf("unexpected transport error: %v", err)
	}
	if resp.Success || resp.Message != api.MsgNotFound {
		t.Errorf("expected not-found failure, got %+v", resp)
	}
}

func TestFollowerCount_Success(t *testing.T) {
	h := newHandler(&fakeAuth{handle: "alice"}, &fakeSocial{count: 9})

	resp, err := h.FollowerCount(context.Background(), api.CountRequest{Token: "t", OwnerAlias: "bob"})
	if err != nil {
		t.Fatalf("unexpected transport error: %v", err)
	}
	if !resp.Success || resp.Count != 9 {
		t.Errorf("expected count 9, got %+v", resp)
	}
}

func TestFolloweeCount_Unavailable(t *testing.T) {
	h := newHandler(&fakeAuth{handle: "alice"}, &fakeSocial{err: store.ErrUnavailable})

	resp, err := h.FolloweeCount(context.Background(), api.CountRequest{Token: "t", OwnerAlias: "bob"})
	if err != nil {
		t.Fatalf("unexpected transport error: %v", err)
	}
	if resp.Success || resp.Message != api.MsgUnavailable {
		t.Errorf("expected unavailable failure, got %+v", resp)
	}
}

func TestIsFollower(t *testing.T) {
	h := newHandler(&fakeAuth{handle: "alice"}, &fakeSocial{following: true})

	resp, err := h.IsFollower(context.Background(), api.IsFollowerRequest{
		Token: "t", FollowerAlias: "alice", FolloweeAlias: "bob",
	})
	if err != nil {
		t.Fatalf("unexpected transport error: %v", err)
	}
	if !resp.Success || !resp.IsFollower {
		t.Errorf("expected is-follower true, got %+v", resp)
	}
}

func TestIsFollower_MissingToken(t *testing.T) {
	h := newHandler(&fakeAuth{handle: "alice"}, &fakeSocial{})

	resp, err := h.IsFollower(context.Background(), api.IsFollowerRequest{
		FollowerAlias: "alice", FolloweeAlias: "bob",
	})
	if err != nil {
		t.Fatalf("unexpected transport error: %v", err)
	}
	if resp.Success || resp.Message != api.MsgBadRequest {
		t.Errorf("expected bad-request failure, got %+v", resp)
	}
}
