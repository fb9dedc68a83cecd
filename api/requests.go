package api

// Request and response shapes for the finch endpoints. Every response
// carries a success flag; on failure the message is stable and the rest of
// the payload is zeroed, never partially populated.

type FollowRequest struct {
	Token         string `json:"token" validate:"required"`
	FollowerAlias string `json:"followerAlias" validate:"required"`
	FolloweeAlias string `json:"followeeAlias" validate:"required"`
}

type FollowResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`

	// FollowerCount is the followee's updated follower count;
	// FollowingCount is the follower's updated following count.
	FollowerCount  int64 `json:"followerCount"`
	FollowingCount int64 `json:"followingCount"`
}

type UnfollowRequest struct {
	Token         string `json:"token" validate:"required"`
	FollowerAlias string `json:"followerAlias" validate:"required"`
	FolloweeAlias string `json:"followeeAlias" validate:"required"`
}

type UnfollowResponse struct {
	Success        bool   `json:"success"`
	Message        string `json:"message,omitempty"`
	FollowerCount  int64  `json:"followerCount"`
	FollowingCount int64  `json:"followingCount"`
}

// PagedUserItemRequest asks for one page of a followers or followees list.
type PagedUserItemRequest struct {
	Token          string `json:"token" validate:"required"`
	OwnerAlias     string `json:"ownerAlias" validate:"required"`
	PageSize       int32  `json:"pageSize"`
	LastItemCursor string `json:"lastItemCursor"`
}

type UserItem struct {
	Alias     string `json:"alias"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	ImageURL  string `json:"imageUrl"`
}

type PagedUserItemResponse struct {
	Success    bool       `json:"success"`
	Message    string     `json:"message,omitempty"`
	Items      []UserItem `json:"items"`
	HasMore    bool       `json:"hasMore"`
	NextCursor string     `json:"nextCursor,omitempty"`
}

// PagedStatusItemRequest asks for one page of a feed or story list.
type PagedStatusItemRequest struct {
	Token          string `json:"token" validate:"required"`
	OwnerAlias     string `json:"ownerAlias" validate:"required"`
	PageSize       int32  `json:"pageSize"`
	LastItemCursor string `json:"lastItemCursor"`
}

type StatusItem struct {
	ID        string   `json:"id"`
	Author    UserItem `json:"author"`
	Timestamp int64    `json:"timestamp"`
	Body      string   `json:"body"`
	MediaURL  string   `json:"mediaUrl,omitempty"`
}

type PagedStatusItemResponse struct {
	Success    bool         `json:"success"`
	Message    string       `json:"message,omitempty"`
	Items      []StatusItem `json:"items"`
	HasMore    bool         `json:"hasMore"`
	NextCursor string       `json:"nextCursor,omitempty"`
}

type CountRequest struct {
	Token      string `json:"token" validate:"required"`
	OwnerAlias string `json:"ownerAlias" validate:"required"`
}

type CountResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Count   int64  `json:"count"`
}

type IsFollowerRequest struct {
	Token         string `json:"token" validate:"required"`
	FollowerAlias string `json:"followerAlias" validate:"required"`
	FolloweeAlias string `json:"followeeAlias" validate:"required"`
}

type IsFollowerResponse struct {
	Success    bool   `json:"success"`
	Message    string `json:"message,omitempty"`
	IsFollower bool   `json:"isFollower"`
}
