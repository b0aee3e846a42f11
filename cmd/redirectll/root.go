package main

import (
	"github.com/spf13/cobra"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "redirectll",
		Short: "Redirect legacy forum URLs to their current addresses",
		Long: `redirectll answers requests for the old forum's query-string URLs
(/?page=Postings;thread=123) with permanent redirects to the new forum's
paths and forwards everything else to the forum itself.

Configuration is read from the environment.`,
		Version:      version,
		SilenceUsage: true,
	}

	root.AddCommand(
		newServeCmd(),
		newMigrateCmd(),
		newResolveCmd(),
	)

	return root
}
