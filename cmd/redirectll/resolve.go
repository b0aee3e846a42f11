package main

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/spf13/cobra"

	"github.com/archlinux/redirectll/pkg/db"
	"github.com/archlinux/redirectll/pkg/legacy"
	"github.com/archlinux/redirectll/pkg/logger"
)

func newResolveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "resolve <legacy-url>...",
		Short: "Print where legacy URLs redirect to",
		Example: `  redirectll resolve '/?page=Postings;thread=123;post=2'
  redirectll resolve 'https://bbs.example.org/?page=ShowUser;user=5'`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig[resolveConfig](env.Options{})
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			log := logger.NewFromConfig(cfg.Log)

			pool, err := db.Connect(ctx, cfg.DB, log)
			if err != nil {
				return err
			}
			defer pool.Close()

			lookups, err := newLookups(pool, cfg.Forum)
			if err != nil {
				return err
			}
			redirector, err := newRedirector(lookups, cfg.Forum, cfg.Legacy)
			if err != nil {
				return err
			}

			for _, raw := range args {
				line, err := resolveURL(ctx, redirector, raw)
				if err != nil {
					return fmt.Errorf("%s: %w", raw, err)
				}
				if _, err := fmt.Fprintln(cmd.OutOrStdout(), line); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

// resolveURL describes the response the middleware would give for raw:
// "status location", "404", or "pass" when the request goes to the forum.
func resolveURL(ctx context.Context, r *legacy.Redirector, raw string) (string, error) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return "", err
	}
	path := u.Path
	if path == "" {
		path = "/"
	}
	if path != "/" || u.RawQuery == "" {
		return "pass", nil
	}

	res, handled, err := r.Resolve(ctx, u.RawQuery)
	if err != nil {
		return "", err
	}
	if !handled {
		return "pass", nil
	}
	if res.Location == "" {
		return fmt.Sprint(res.Status), nil
	}
	return fmt.Sprintf("%d %s", res.Status, res.Location), nil
}
