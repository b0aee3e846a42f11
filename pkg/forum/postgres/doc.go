// Package postgres resolves legacy forum ids against a PostgreSQL database.
//
// The lookups read the host forum's discussions, users and tags tables
// through any [Querier], usually a *pgxpool.Pool:
//
//	discussions, err := postgres.NewDiscussionLookup(pool)
//	users, err := postgres.NewUserLookup(pool)
//	tags, err := postgres.NewTagLookup(pool, postgres.WithTablePrefix("flarum_"))
//
// Missing rows are reported as [forum.ErrNotFound]. Any other driver error is
// joined with [ErrQuery].
//
// [Migrations] holds a standalone schema with the same column names, for
// development databases and deployments without the host database.
package postgres
