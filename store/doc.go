// Package store provides the DynamoDB data layer for the finch follow graph.
//
// The package owns four logical collections: user accounts (with the two
// denormalized follow counters embedded), directed follow edges, authored
// story posts, and materialized home feeds. Correctness under concurrent
// follow/unfollow traffic is pushed into conditional single-item writes at
// the storage layer; no in-process locks are held anywhere.
//
// # Edges
//
// A follow edge is the ordered pair (follower, followee), unique per pair by
// virtue of the table's composite primary key. [Store.PutEdge] and
// [Store.DeleteEdge] are idempotent: they report whether the call actually
// changed state, and retried calls observe created=false / deleted=false
// instead of an error. Edge range reads ([Store.FollowingPage],
// [Store.FollowersPage]) are ordered by edge creation time, oldest first.
//
// # Counters
//
// [Store.AdjustCounter] expresses every adjustment as one conditional
// read-modify-write against the stored value. Decrements are guarded by a
// floor-at-zero condition; a refused decrement surfaces as
// [ErrCounterUnderflow] and performs no write. Counter maintenance is the
// exclusive responsibility of this operation - edge mutation never touches
// counters, which keeps retried edge writes from double-accounting.
//
// # Posts
//
// Story and feed collections are keyed by (owner, creation time) and read
// newest first ([Store.StoryPage], [Store.FeedPage]). Posts are immutable
// once written. [Store.AppendFeed] supports the stream fan-out that copies a
// new story post into each follower's feed.
//
// # Errors
//
// The package defines domain-specific errors:
//
//   - [ErrNotFound] - account or item absent
//   - [ErrCounterUnderflow] - decrement refused at zero
//   - [ErrUnavailable] - backing store communication failure
package store
