package service

import "github.com/finchapp/finch/cursor"

// ItemKind says what a list view's pages contain.
type ItemKind int

const (
	UserItems ItemKind = iota
	PostItems
)

// View describes one of the named list views: which cursor kind its tokens
// carry, what its items are, and which direction its sort key runs.
type View struct {
	Kind  cursor.Kind
	Items ItemKind

	// Descending is true for recency-ordered views (feed, story) and false
	// for edge-creation-ordered views (followers, followees).
	Descending bool
}

// Registry holds the known list views.
type Registry struct {
	views  []View
	byKind map[cursor.Kind]View
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		byKind: make(map[cursor.Kind]View),
	}
}

// Register adds a view. Registering the same kind twice replaces the earlier
// entry.
func (r *Registry) Register(v View) {
	if _, ok := r.byKind[v.Kind]; !ok {
		r.views = append(r.views, v)
	}
	r.byKind[v.Kind] = v
}

// Lookup returns the view for a cursor kind.
func (r *Registry) Lookup(kind cursor.Kind) (View, bool) {
	v, ok := r.byKind[kind]
	return v, ok
}

// Kinds returns the registered kinds in registration order.
func (r *Registry) Kinds() []cursor.Kind {
	kinds := make([]cursor.Kind, 0, len(r.views))
	for _, v := range r.views {
		kinds = append(kinds, v.Kind)
	}
	return kinds
}

// DefaultRegistry returns the four list views the system serves.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(View{Kind: cursor.Followers, Items: UserItems})
	r.Register(View{Kind: cursor.Followees, Items: UserItems})
	r.Register(View{Kind: cursor.Feed, Items: PostItems, Descending: true})
	r.Register(View{Kind: cursor.Story, Items: PostItems, Descending: true})
	return r
}
