package forum

import (
	"context"
	"strconv"
	"strings"
)

// Kind names an entity space that numeric ids are resolved in.
type Kind string

const (
	KindDiscussion Kind = "discussion"
	KindUser       Kind = "user"
	KindTag        Kind = "tag"
)

// String implements fmt.Stringer.
func (k Kind) String() string {
	return string(k)
}

// Entity is a resolved forum record.
// Slug is the route key for the entity's kind, ready to be placed into a path.
// LastPostNumber is only set for discussions.
type Entity struct {
	Kind           Kind   `json:"kind"`
	Slug           string `json:"slug"`
	ID             int64  `json:"id"`
	LastPostNumber int    `json:"last_post_number,omitempty"`
}

// Lookup resolves a numeric id to an entity of a single kind.
// Implementations return an error matching ErrNotFound when no record exists.
type Lookup interface {
	Kind() Kind
	Lookup(ctx context.Context, id int64) (Entity, error)
}

// DiscussionSlug returns the route key for a discussion: the id, followed by
// "-" and the stored slug when the slug is not blank.
func DiscussionSlug(id int64, slug string) string {
	key := strconv.FormatInt(id, 10)
	if s := strings.TrimSpace(slug); s != "" {
		key += "-" + s
	}
	return key
}

// UsernameSlug returns the route key for a user. Users are addressed by username.
func UsernameSlug(username string) string {
	return username
}
