// mustafactl is the operations CLI for the Mustafa console. It talks to the
// same backend as the web server, storing its bearer token in the user's
// config directory instead of a cookie.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
)

var backendURL string

func main() {
	rootCmd := &cobra.Command{
		Use:   "mustafactl",
		Short: "Command-line access to the Mustafa field operations backend",
		Long: `mustafactl gives operators terminal access to the Mustafa backend:
inspect promoter photos, dashboard KPIs and AI insights without
opening the admin console.

Authenticate once with "mustafactl login"; the session token is kept
in your user config directory until "mustafactl logout".`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&backendURL, "backend",
		envOr("MUSTAFA_BACKEND_URL", "http://localhost:8000"),
		"Backend API base URL")

	rootCmd.AddCommand(
		loginCmd(),
		logoutCmd(),
		whoamiCmd(),
		fotosCmd(),
		kpisCmd(),
		askCmd(),
		versionCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("mustafactl %s (%s)\n", version, commit)
		},
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
