// Package api exposes the finch operations as typed request/response
// handlers. Each method's signature is compatible with AWS Lambda's typed
// handler form, so a deployment registers them directly; nothing here
// depends on any particular transport framing.
package api

import (
	"context"
	"log/slog"

	"github.com/go-playground/validator/v10"

	"github.com/finchapp/finch/service"
)

// Authenticator validates a session token and returns the authenticated
// handle. *auth.Sessions satisfies it.
type Authenticator interface {
	Validate(ctx context.Context, token string) (string, error)
}

// Social is the service surface the handlers call. *service.Service
// satisfies it.
type Social interface {
	Follow(ctx context.Context, follower, followee string) (service.Counts, error)
	Unfollow(ctx context.Context, follower, followee string) (service.Counts, error)
	FollowersPage(ctx context.Context, owner, token string, size int32) (service.UserPage, error)
	FolloweesPage(ctx context.Context, owner, token string, size int32) (service.UserPage, error)
	FeedPage(ctx context.Context, owner, token string, size int32) (service.PostPage, error)
	StoryPage(ctx context.Context, owner, token string, size int32) (service.PostPage, error)
	FollowerCount(ctx context.Context, handle string) (int64, error)
	FollowingCount(ctx context.Context, handle string) (int64, error)
	IsFollowing(ctx context.Context, follower, followee string) (bool, error)
}

// Handler serves the finch endpoints.
type Handler struct {
	auth     Authenticator
	social   Social
	validate *validator.Validate
	logger   *slog.Logger
}

// NewHandler creates a Handler.
func NewHandler(auth Authenticator, social Social, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		auth:     auth,
		social:   social,
		validate: validator.New(),
		logger:   logger,
	}
}

// authorize validates the request struct and then the session token. It
// returns the failure message for the response, or "" on success.
func (h *Handler) authorize(ctx context.Context, req any, token string) string {
	if err := h.validate.Struct(req); err != nil {
		return MsgBadRequest
	}
	if _, err := h.auth.Validate(ctx, token); err != nil {
		return errorMessage(err)
	}
	return ""
}

// Follow handles a follow request.
func (h *Handler) Follow(ctx context.Context, req FollowRequest) (FollowResponse, error) {
	if msg := h.authorize(ctx, req, req.Token); msg != "" {
		return FollowResponse{Message: msg}, nil
	}

	counts, err := h.social.Follow(ctx, req.FollowerAlias, req.FolloweeAlias)
	if err != nil {
		h.logger.Error("follow failed",
			"follower", req.FollowerAlias,
			"followee", req.FolloweeAlias,
			"error", err,
		)
		return FollowResponse{Message: errorMessage(err)}, nil
	}
	return FollowResponse{
		Success:        true,
		FollowerCount:  counts.FollowerCount,
		FollowingCount: counts.FollowingCount,
	}, nil
}

// Unfollow handles an unfollow request.
func (h *Handler) Unfollow(ctx context.Context, req UnfollowRequest) (UnfollowResponse, error) {
	if msg := h.authorize(ctx, req, req.Token); msg != "" {
		return UnfollowResponse{Message: msg}, nil
	}

	counts, err := h.social.Unfollow(ctx, req.FollowerAlias, req.FolloweeAlias)
	if err != nil {
		h.logger.Error("unfollow failed",
			"follower", req.FollowerAlias,
			"followee", req.FolloweeAlias,
			"error", err,
		)
		return UnfollowResponse{Message: errorMessage(err)}, nil
	}
	return UnfollowResponse{
		Success:        true,
		FollowerCount:  counts.FollowerCount,
		FollowingCount: counts.FollowingCount,
	}, nil
}

// MoreFollowers handles a followers page request.
func (h *Handler) MoreFollowers(ctx context.Context, req PagedUserItemRequest) (PagedUserItemResponse, error) {
	return h.userPage(ctx, req, h.social.FollowersPage)
}

// MoreFollowees handles a followees page request.
func (h *Handler) MoreFollowees(ctx context.Context, req PagedUserItemRequest) (PagedUserItemResponse, error) {
	return h.userPage(ctx, req, h.social.FolloweesPage)
}

func (h *Handler) userPage(ctx context.Context, req PagedUserItemRequest, fetch func(context.Context, string, string, int32) (service.UserPage, error)) (PagedUserItemResponse, error) {
	if msg := h.authorize(ctx, req, req.Token); msg != "" {
		return PagedUserItemResponse{Message: msg}, nil
	}

	page, err := fetch(ctx, req.OwnerAlias, req.LastItemCursor, req.PageSize)
	if err != nil {
		h.logger.Error("user page failed", "owner", req.OwnerAlias, "error", err)
		return PagedUserItemResponse{Message: errorMessage(err)}, nil
	}

	items := make([]UserItem, 0, len(page.Items))
	for _, u := range page.Items {
		items = append(items, userItem(u))
	}
	return PagedUserItemResponse{
		Success:    true,
		Items:      items,
		HasMore:    page.HasMore,
		NextCursor: page.NextCursor,
	}, nil
}

// FeedItems handles a home-feed page request.
func (h *Handler) FeedItems(ctx context.Context, req PagedStatusItemRequest) (PagedStatusItemResponse, error) {
	return h.statusPage(ctx, req, h.social.FeedPage)
}

// StoryItems handles an own-story page request.
func (h *Handler) StoryItems(ctx context.Context, req PagedStatusItemRequest) (PagedStatusItemResponse, error) {
	return h.statusPage(ctx, req, h.social.StoryPage)
}

func (h *Handler) statusPage(ctx context.Context, req PagedStatusItemRequest, fetch func(context.Context, string, string, int32) (service.PostPage, error)) (PagedStatusItemResponse, error) {
	if msg := h.authorize(ctx, req, req.Token); msg != "" {
		return PagedStatusItemResponse{Message: msg}, nil
	}

	page, err := fetch(ctx, req.OwnerAlias, req.LastItemCursor, req.PageSize)
	if err != nil {
		h.logger.Error("status page failed", "owner", req.OwnerAlias, "error", err)
		return PagedStatusItemResponse{Message: errorMessage(err)}, nil
	}

	items := make([]StatusItem, 0, len(page.Items))
	for _, p := range page.Items {
		items = append(items, StatusItem{
			ID:        p.ID,
			Author:    userItem(p.Author),
			Timestamp: p.CreatedAt,
			Body:      p.Body,
			MediaURL:  p.MediaURL,
		})
	}
	return PagedStatusItemResponse{
		Success:    true,
		Items:      items,
		HasMore:    page.HasMore,
		NextCursor: page.NextCursor,
	}, nil
}

// FollowerCount handles a follower-count request.
func (h *Handler) FollowerCount(ctx context.Context, req CountRequest) (CountResponse, error) {
	return h.count(ctx, req, h.social.FollowerCount)
}

// FolloweeCount handles a following-count request.
func (h *Handler) FolloweeCount(ctx context.Context, req CountRequest) (CountResponse, error) {
	return h.count(ctx, req, h.social.FollowingCount)
}

func (h *Handler) count(ctx context.Context, req CountRequest, fetch func(context.Context, string) (int64, error)) (CountResponse, error) {
	if msg := h.authorize(ctx, req, req.Token); msg != "" {
		return CountResponse{Message: msg}, nil
	}

	n, err := fetch(ctx, req.OwnerAlias)
	if err != nil {
		h.logger.Error("count failed", "owner", req.OwnerAlias, "error", err)
		return CountResponse{Message: errorMessage(err)}, nil
	}
	return CountResponse{Success: true, Count: n}, nil
}

// IsFollower handles a follow-status request.
func (h *Handler) IsFollower(ctx context.Context, req IsFollowerRequest) (IsFollowerResponse, error) {
	if msg := h.authorize(ctx, req, req.Token); msg != "" {
		return IsFollowerResponse{Message: msg}, nil
	}

	following, err := h.social.IsFollowing(ctx, req.FollowerAlias, req.FolloweeAlias)
	if err != nil {
		h.logger.Error("follow status failed",
			"follower", req.FollowerAlias,
			"followee", req.FolloweeAlias,
			"error", err,
		)
		return IsFollowerResponse{Message: errorMessage(err)}, nil
	}
	return IsFollowerResponse{Success: true, IsFollower: following}, nil
}

func userItem(u service.UserSummary) UserItem {
	return UserItem{
		Alias:     u.Alias,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		ImageURL:  u.ImageURL,
	}
}
