// Package service implements the follow orchestrator and the paginated list
// views over the store layer.
package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/finchapp/finch/store"
)

// ErrSelfFollow is returned when a handle tries to follow itself.
var ErrSelfFollow = errors.New("finch: cannot follow yourself")

// Store is the data-layer contract the service consumes. *store.Store
// satisfies it.
type Store interface {
	PutEdge(ctx context.Context, follower, followee string) (bool, error)
	DeleteEdge(ctx context.Context, follower, followee string) (bool, error)
	IsFollowing(ctx context.Context, follower, followee string) (bool, error)
	FollowingPage(ctx context.Context, handle string, after int64, limit int32) ([]store.Edge, error)
	FollowersPage(ctx context.Context, handle string, after int64, limit int32) ([]store.Edge, error)
	AdjustCounter(ctx context.Context, handle string, field store.CounterField, delta int) (int64, error)
	GetUser(ctx context.Context, handle string) (store.User, error)
	GetUsers(ctx context.Context, handles []string) ([]store.User, error)
	StoryPage(ctx context.Context, handle string, before int64, limit int32) ([]store.Post, error)
	FeedPage(ctx context.Context, handle string, before int64, limit int32) ([]store.Post, error)
}

// Service is an explicit handle over the follow graph; callers construct and
// tear it down themselves, there is no process-wide instance.
type Service struct {
	store  Store
	views  *Registry
	logger *slog.Logger
}

// New creates a Service over the given store.
func New(st Store, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		store:  st,
		views:  DefaultRegistry(),
		logger: logger,
	}
}
