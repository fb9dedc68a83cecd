package api

import (
	"errors"

	"github.com/finchapp/finch/auth"
	"github.com/finchapp/finch/cursor"
	"github.com/finchapp/finch/service"
	"github.com/finchapp/finch/store"
)

// Stable failure messages. Clients match on these, so changing one is a
// breaking change.
const (
	MsgBadRequest    = "request is missing required fields"
	MsgUnauthorized  = "session token is missing, expired, or invalid"
	MsgInvalidCursor = "invalid pagination cursor; restart from the first page"
	MsgNotFound      = "user not found"
	MsgSelfFollow    = "cannot follow yourself"
	MsgUnavailable   = "backing store unavailable; try again later"
	MsgInternal      = "internal error"
)

// errorMessage maps a domain error to its stable message.
func errorMessage(err error) string {
	switch {
	case errors.Is(err, auth.ErrUnauthorized):
		return MsgUnauthorized
	case errors.Is(err, cursor.ErrInvalidCursor):
		return MsgInvalidCursor
	case errors.Is(err, store.ErrNotFound):
		return MsgNotFound
	case errors.Is(err, service.ErrSelfFollow):
		return MsgSelfFollow
	case errors.Is(err, store.ErrUnavailable):
		return MsgUnavailable
	default:
		return MsgInternal
	}
}
