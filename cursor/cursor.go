// Package cursor encodes and decodes opaque pagination tokens.
//
// A token wraps the sort key of the last item a client saw, bound to the
// list kind it came from. Binding the kind prevents a cursor minted for one
// list view from being replayed against another. The empty token is a
// distinguished value meaning "first page" and is never an error.
package cursor

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
)

// ErrInvalidCursor is returned for malformed or mismatched tokens. Callers
// must restart pagination from the empty cursor.
var ErrInvalidCursor = errors.New("finch: invalid cursor")

// Kind identifies which list view a cursor belongs to.
type Kind string

const (
	Followers Kind = "followers"
	Followees Kind = "followees"
	Feed      Kind = "feed"
	Story     Kind = "story"
)

// envelope is the serialized token. Field names are short on purpose; the
// token is opaque and carries no external meaning.
type envelope struct {
	Kind Kind  `json:"k"`
	Key  int64 `json:"s"`
}

// Encode wraps the sort key of the last returned item into a token for the
// given list kind.
func Encode(kind Kind, key int64) string {
	b, _ := json.Marshal(envelope{Kind: kind, Key: key})
	return base64.RawURLEncoding.EncodeToString(b)
}

// Decode extracts the sort key from a token minted for the given list kind.
// The empty token decodes to (0, nil), meaning "start from the beginning".
// Anything else that is not a well-formed token for exactly this kind fails
// with [ErrInvalidCursor].
func Decode(token string, want Kind) (int64, error) {
	if token == "" {
		return 0, nil
	}

	raw, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidCursor, err)
	}
	var e envelope
	if err := json.Unmarshal(raw, &e); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidCursor, err)
	}
	if e.Kind != want {
		return 0, fmt.Errorf("%w: token for %q list used on %q list", ErrInvalidCursor, e.Kind, want)
	}
	if e.Key <= 0 {
		return 0, fmt.Errorf("%w: sort key out of range", ErrInvalidCursor)
	}
	return e.Key, nil
}
