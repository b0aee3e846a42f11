// Package forum models the read-only view of the host forum that legacy URL
// translation needs: entities addressed by numeric id, the lookups that resolve
// them, and the named routes that turn them back into paths.
//
// # Entities and lookups
//
// Discussions, users and tags share one shape. A [Lookup] resolves a numeric id
// inside one entity space ([Kind]) to an [Entity] whose Slug is already the
// route key for that kind:
//
//	discussion 123 with slug "foo"  -> Entity{Slug: "123-foo", LastPostNumber: 7}
//	user 789 named "foo-username"   -> Entity{Slug: "foo-username"}
//	tag 456 with slug "foo-tag"     -> Entity{Slug: "foo-tag"}
//
// A missing record is reported with an error matching [ErrNotFound]:
//
//	e, err := discussions.Lookup(ctx, 123)
//	if errors.Is(err, forum.ErrNotFound) {
//	    // no such discussion
//	}
//
// Implementations live in the postgres subpackage; the cache subpackage
// decorates any Lookup. [StaticLookup] serves fixed entities from memory.
//
// # Routes
//
// [Routes] is a reverse router for the forum's named routes:
//
//	routes, err := forum.NewRoutes(forum.WithBaseURL("https://bbs.example.org"))
//	path, err = routes.Path(forum.RouteDiscussion, map[string]string{
//	    "id":   "123-foo",
//	    "near": "3",
//	})
//	// path = "https://bbs.example.org/d/123-foo/3"
//
// Route patterns use {name} for required parameters and [...] for optional
// groups that are dropped when their parameter is not supplied.
package forum
