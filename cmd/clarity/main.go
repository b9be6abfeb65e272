// Command clarity is the Mental Clarity journal: a terminal client that
// sends entries for CBT-style analysis and stores them, plus the server and
// maintenance commands around it.
//
// Usage:
//
//	clarity journal                 # terminal journal
//	clarity serve                   # analysis proxy and journal API
//	clarity ping                    # probe the analysis provider
//	clarity migrate up|down|status  # schema migrations (postgres store)
//	clarity token [client-id]       # mint a proxy access token
//
// Configuration comes from CONFIG_PATH (default ./config.yaml) and the
// environment.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/heartmarshall/mental-clarity/internal/app"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		stop()
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "clarity",
		Short:         "Mental Clarity journal",
		Long:          "Write journal entries, get a CBT-style analysis of each one and keep both in a hosted store.",
		Version:       app.BuildVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to config.yaml (overrides CONFIG_PATH)")

	root.AddCommand(
		newJournalCmd(),
		newServeCmd(),
		newPingCmd(),
		newMigrateCmd(),
		newTokenCmd(),
	)
	return root
}
