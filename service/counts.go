package service

import "context"

// FollowerCount returns how many handles follow the given handle.
func (s *Service) FollowerCount(ctx context.Context, handle string) (int64, error) {
	u, err := s.store.GetUser(ctx, handle)
	if err != nil {
		return 0, err
	}
	return u.FollowerCount, nil
}

// FollowingCount returns how many handles the given handle follows.
func (s *Service) FollowingCount(ctx context.Context, handle string) (int64, error) {
	u, err := s.store.GetUser(ctx, handle)
	if err != nil {
		return 0, err
	}
	return u.FollowingCount, nil
}

// IsFollowing reports whether the follow edge exists.
func (s *Service) IsFollowing(ctx context.Context, follower, followee string) (bool, error) {
	return s.store.IsFollowing(ctx, follower, followee)
}
