// Package legacy translates query-string URLs of the previous forum software
// into paths of the current forum.
//
// Legacy URLs all point at the site root and select a resource with a page
// parameter, using either & or ; between parameters:
//
//	/?page=Postings;thread=123;post=2   -> 301 /d/123-foo/3
//	/?page=ShowUser;user=789            -> 301 /u/foo-username
//	/?page=Threads;forum=456            -> 301 /t/foo-tag
//	/?page=GetAvatar;user=789           -> 404
//	/?page=Unknown                      -> 302 /
//
// A [Redirector] holds the lookups and the route builder and turns a raw query
// string into a [Result]. It keeps no state between calls:
//
//	r, err := legacy.New(legacy.Lookups{
//	    Discussions: discussions,
//	    Users:       users,
//	    Tags:        tags,
//	}, routes)
//
//	res, handled, err := r.Resolve(ctx, req.URL.RawQuery)
//	if handled {
//	    // write res.Status with res.Location
//	}
//
// # Not-found policy
//
// A missing tag always falls back to the forum root with 302. For missing
// discussions and users the [NotFoundPolicy] decides: [NotFoundStrict]
// (default) answers 404, [NotFoundPermissive] falls back to the forum root.
//
// # Double encoding
//
// Some clients encode legacy query strings twice. With double decoding enabled
// (default) a query containing percent escapes is decoded once before parsing,
// so page%3DPostings%3Bthread%3D123 is read as page=Postings;thread=123.
package legacy
