// Package redirectll runs the legacy forum URL redirector in front of a forum.
//
// The forum moved from a software whose pages were addressed by query
// strings on the site root (/?page=Postings;thread=123;post=2) to one with
// path-based routes (/d/123-slug/3). Old links are still published all over
// the web. redirectll answers them with permanent redirects to the new
// location and hands every other request to the forum unchanged.
//
// # Quick Start
//
//	routes, err := forum.NewRoutes()
//	redirector, err := legacy.New(legacy.Lookups{
//	    Discussions: postgres.NewDiscussionLookup(pool),
//	    Users:       postgres.NewUserLookup(pool),
//	    Tags:        postgres.NewTagLookup(pool),
//	}, routes)
//
//	app := redirectll.New(
//	    redirectll.WithLogger("redirectll", middlewares.RequestIDExtractor()),
//	    redirectll.WithErrorHandler(middlewares.ErrorHandler()),
//	    redirectll.WithMiddleware(
//	        middlewares.AccessLog(),
//	        middlewares.RequestID(),
//	        middlewares.Recover(),
//	        middlewares.Timeout(10*time.Second),
//	        middlewares.LegacyRedirect(redirector),
//	    ),
//	    redirectll.WithHandlers(upstream.NewHandler(proxy)),
//	    redirectll.WithHealthChecks(
//	        redirectll.WithReadinessCheck("db", db.Healthcheck(pool)),
//	    ),
//	)
//
//	err = app.Run(":8080", redirectll.ShutdownHook(db.Shutdown(pool)))
//
// # Legacy URLs
//
// GET and HEAD requests for "/" whose query carries a page parameter are
// answered directly:
//
//	page=Postings;thread=N[;post=P]   301 /d/{slug}[/{P+1}], post=-1 jumps to the last post
//	page=ShowUser|UserRecent;user=N   301 /u/{username}
//	page=Threads;forum=N              301 /t/{tag}, unknown tags 302 /
//	page=GetAttachment|GetAvatar|...  404
//	any other page                    302 /
//
// Unknown discussions and users answer 404, or 302 / with the permissive
// not-found policy. Semicolons and ampersands separate parameters alike.
//
// # Packages
//
//   - pkg/legacy: query parsing and the page dispatch table
//   - pkg/forum: entities, the Lookup interface and route paths
//   - pkg/forum/postgres, pkg/forum/cache: database lookups and their cache
//   - middlewares: LegacyRedirect and the request plumbing around it
//   - pkg/upstream: the reverse proxy for everything else
//   - cmd/redirectll: the serve, migrate and resolve commands
package redirectll
