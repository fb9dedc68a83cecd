package store

// Config holds table and index names for the Store.
type Config struct {
	// UsersTable holds user accounts with the embedded follow counters.
	// Default: "finch_users"
	UsersTable string

	// FollowsTable holds directed follow edges, keyed by
	// (follower_handle, followee_handle).
	// Default: "finch_follows"
	FollowsTable string

	// FollowingIndex is the GSI on FollowsTable keyed by
	// (follower_handle, created_at), used to list who a user follows in
	// edge-creation order.
	// Default: "following-index"
	FollowingIndex string

	// FollowersIndex is the GSI on FollowsTable keyed by
	// (followee_handle, created_at), used to list a user's followers in
	// edge-creation order.
	// Default: "followers-index"
	FollowersIndex string

	// StoryTable holds authored posts, keyed by (author_handle, created_at).
	// Default: "finch_story"
	StoryTable string

	// FeedTable holds materialized home feeds, keyed by
	// (receiver_handle, created_at).
	// Default: "finch_feed"
	FeedTable string
}

// DefaultConfig returns the default table and index names.
func DefaultConfig() Config {
	return Config{
		UsersTable:     "finch_users",
		FollowsTable:   "finch_follows",
		FollowingIndex: "following-index",
		FollowersIndex: "followers-index",
		StoryTable:     "finch_story",
		FeedTable:      "finch_feed",
	}
}

// validate fills empty values with defaults.
func (c *Config) validate() {
	d := DefaultConfig()
	if c.UsersTable == "" {
		c.UsersTable = d.UsersTable
	}
	if c.FollowsTable == "" {
		c.FollowsTable = d.FollowsTable
	}
	if c.FollowingIndex == "" {
		c.FollowingIndex = d.FollowingIndex
	}
	if c.FollowersIndex == "" {
		c.FollowersIndex = d.FollowersIndex
	}
	if c.StoryTable == "" {
		c.StoryTable = d.StoryTable
	}
	if c.FeedTable == "" {
		c.FeedTable = d.FeedTable
	}
}
