package service

import (
	"context"
	"errors"

	"github.com/finchapp/finch/store"
)

// Counts carries the two counters a follow-state mutation reports back:
// the followee's follower count and the follower's following count.
type Counts struct {
	FollowerCount  int64
	FollowingCount int64
}

// Follow records that follower follows followee and returns the updated
// counts. The counter increments run only when the edge write actually
// created the edge, so a retried request cannot double-count. A failure
// after the edge write leaves a transient edge/counter inconsistency window,
// accepted by design and healed by the out-of-band reconciliation sweep.
func (s *Service) Follow(ctx context.Context, follower, followee string) (Counts, error) {
	if follower == followee {
		return Counts{}, ErrSelfFollow
	}

	created, err := s.store.PutEdge(ctx, follower, followee)
	if err != nil {
		return Counts{}, err
	}
	if !created {
		// Edge already present: idempotent success, no adjustment.
		return s.currentCounts(ctx, follower, followee)
	}

	fc, err := s.store.AdjustCounter(ctx, followee, store.FollowerCount, +1)
	if err != nil {
		s.logger.Warn("edge created but follower count not adjusted",
			"follower", follower,
			"followee", followee,
			"error", err,
		)
		return Counts{}, err
	}
	gc, err := s.store.AdjustCounter(ctx, follower, store.FollowingCount, +1)
	if err != nil {
		s.logger.Warn("edge created but following count not adjusted",
			"follower", follower,
			"followee", followee,
			"error", err,
		)
		return Counts{}, err
	}
	return Counts{FollowerCount: fc, FollowingCount: gc}, nil
}

// Unfollow removes the edge and returns the updated counts. The decrements
// run only when the delete actually removed an edge. A counter already at
// zero means the counters had drifted; the underflow is reported as an
// anomaly and the edge deletion stands - the edge set, not the counters, is
// authoritative.
func (s *Service) Unfollow(ctx context.Context, follower, followee string) (Counts, error) {
	if follower == followee {
		return Counts{}, ErrSelfFollow
	}

	deleted, err := s.store.DeleteEdge(ctx, follower, followee)
	if err != nil {
		return Counts{}, err
	}
	if !deleted {
		// No edge to remove: idempotent success, no adjustment.
		return s.currentCounts(ctx, follower, followee)
	}

	fc, err := s.decrement(ctx, followee, store.FollowerCount, follower, followee)
	if err != nil {
		return Counts{}, err
	}
	gc, err := s.decrement(ctx, follower, store.FollowingCount, follower, followee)
	if err != nil {
		return Counts{}, err
	}
	return Counts{FollowerCount: fc, FollowingCount: gc}, nil
}

// decrement applies a -1 adjustment, recovering locally from underflow: the
// anomaly is logged for reconciliation and the stored value (still zero) is
// read back instead of failing the unfollow.
func (s *Service) decrement(ctx context.Context, handle string, field store.CounterField, follower, followee string) (int64, error) {
	v, err := s.store.AdjustCounter(ctx, handle, field, -1)
	if err == nil {
		return v, nil
	}
	if !errors.Is(err, store.ErrCounterUnderflow) {
		return 0, err
	}

	s.logger.Warn("counter underflow during unfollow",
		"handle", handle,
		"field", string(field),
		"follower", follower,
		"followee", followee,
	)
	u, err := s.store.GetUser(ctx, handle)
	if err != nil {
		return 0, err
	}
	return counterOf(u, field), nil
}

func (s *Service) currentCounts(ctx context.Context, follower, followee string) (Counts, error) {
	fu, err := s.store.GetUser(ctx, followee)
	if err != nil {
		return Counts{}, err
	}
	gu, err := s.store.GetUser(ctx, follower)
	if err != nil {
		return Counts{}, err
	}
	return Counts{
		FollowerCount:  fu.FollowerCount,
		FollowingCount: gu.FollowingCount,
	}, nil
}

func counterOf(u store.User, field store.CounterField) int64 {
	if field == store.FollowerCount {
		return u.FollowerCount
	}
	return u.FollowingCount
}
