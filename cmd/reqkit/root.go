package main

import (
	"github.com/spf13/cobra"
)

// Build metadata, injected with -ldflags.
var (
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "reqkit",
		Short: "Request view toolkit",
		Long: `reqkit builds request views (URI, method with overrides, client IP,
secure transport, parameters and cookies) from HTTP requests or CGI variables.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newServeCmd(), newInspectCmd(), newVersionCmd())
	return root
}
