package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/archlinux/redirectll/pkg/forum"
)

// Querier is the subset of pgx used by the lookups.
// *pgxpool.Pool, *pgx.Conn and pgx.Tx satisfy it.
type Querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Option configures a lookup.
type Option func(*config)

type config struct {
	tablePrefix string
}

// WithTablePrefix prepends prefix to every table name, for host databases
// that namespace their tables.
func WithTablePrefix(prefix string) Option {
	return func(c *config) {
		c.tablePrefix = prefix
	}
}

// Lookup resolves ids of one kind with a single-row query.
type Lookup struct {
	db    Querier
	scan  func(row pgx.Row, id int64) (forum.Entity, error)
	query string
	kind  forum.Kind
}

// NewDiscussionLookup returns a lookup over the discussions table.
// The entity slug is built with forum.DiscussionSlug.
func NewDiscussionLookup(db Querier, opts ...Option) (*Lookup, error) {
	return newLookup(db, forum.KindDiscussion, "discussions",
		"SELECT slug, last_post_number FROM %s WHERE id = $1",
		func(row pgx.Row, id int64) (forum.Entity, error) {
			var (
				slug string
				last *int
			)
			if err := row.Scan(&slug, &last); err != nil {
				return forum.Entity{}, err
			}
			e := forum.Entity{ID: id, Slug: forum.DiscussionSlug(id, slug)}
			if last != nil {
				e.LastPostNumber = *last
			}
			return e, nil
		}, opts)
}

// NewUserLookup returns a lookup over the users table.
func NewUserLookup(db Querier, opts ...Option) (*Lookup, error) {
	return newLookup(db, forum.KindUser, "users",
		"SELECT username FROM %s WHERE id = $1",
		func(row pgx.Row, id int64) (forum.Entity, error) {
			var username string
			if err := row.Scan(&username); err != nil {
				return forum.Entity{}, err
			}
			return forum.Entity{ID: id, Slug: forum.UsernameSlug(username)}, nil
		}, opts)
}

// NewTagLookup returns a lookup over the tags table.
func NewTagLookup(db Querier, opts ...Option) (*Lookup, error) {
	return newLookup(db, forum.KindTag, "tags",
		"SELECT slug FROM %s WHERE id = $1",
		func(row pgx.Row, id int64) (forum.Entity, error) {
			var slug string
			if err := row.Scan(&slug); err != nil {
				return forum.Entity{}, err
			}
			return forum.Entity{ID: id, Slug: slug}, nil
		}, opts)
}

func newLookup(db Querier, kind forum.Kind, table, query string, scan func(pgx.Row, int64) (forum.Entity, error), opts []Option) (*Lookup, error) {
	if db == nil {
		return nil, ErrNilQuerier
	}
	cfg := &config{}
	for _, opt := range opts {
		opt(cfg)
	}
	ident := pgx.Identifier{cfg.tablePrefix + table}.Sanitize()
	return &Lookup{
		db:    db,
		kind:  kind,
		query: fmt.Sprintf(query, ident),
		scan:  scan,
	}, nil
}

// Kind returns the entity space served by the lookup.
func (l *Lookup) Kind() forum.Kind {
	return l.kind
}

// Lookup fetches the row with the given id.
// pgx.ErrNoRows is reported as forum.ErrNotFound.
func (l *Lookup) Lookup(ctx context.Context, id int64) (forum.Entity, error) {
	e, err := l.scan(l.db.QueryRow(ctx, l.query, id), id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return forum.Entity{}, fmt.Errorf("%s %d: %w", l.kind, id, forum.ErrNotFound)
		}
		return forum.Entity{}, errors.Join(ErrQuery, err)
	}
	e.Kind = l.kind
	return e, nil
}

var _ forum.Lookup = (*Lookup)(nil)
