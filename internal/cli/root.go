package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
)

// Version information (set by build flags)
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "fetchjar",
	Short: "HTTP client with automatic cookie persistence and redirect following",
	Long: `fetchjar - HTTP client with automatic cookie persistence

A command-line HTTP client that keeps a persistent cookie jar across
invocations and follows redirect chains the way a browser does:
method downgrade on 301/302/303, sensitive header stripping on
cross-origin hops, and referrer-policy propagation.`,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(versionCmd)

	// Jar flags
	rootCmd.PersistentFlags().String("jar", "", "Cookie jar file path (default: user config dir, use ':memory:' for none)")

	// Connection flags
	rootCmd.PersistentFlags().String("proxy", "", "Proxy URL (http://host:port or socks5://host:port)")
	rootCmd.PersistentFlags().Duration("timeout", 30*time.Second, "Request timeout")
	rootCmd.PersistentFlags().Float64("rate", 0, "Maximum requests per second (0 = unlimited)")
	rootCmd.PersistentFlags().Bool("random-agent", false, "Use random User-Agent")
	rootCmd.PersistentFlags().Bool("insecure", false, "Skip TLS certificate verification")

	// Output flags
	rootCmd.PersistentFlags().IntP("verbose", "v", 0, "Verbosity level (0-2)")
	rootCmd.PersistentFlags().StringP("output", "o", "", "Output file path")
	rootCmd.PersistentFlags().StringP("format", "f", "text", "Output format (text, json)")
}

// jarPath resolves the effective jar file path: the --jar flag when set,
// otherwise <user config dir>/fetchjar/cookies.db. The default directory
// is created on demand.
func jarPath(cmd *cobra.Command) (string, error) {
	path, _ := cmd.Flags().GetString("jar")
	if path != "" {
		return path, nil
	}
	cfgDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to locate user config dir: %w", err)
	}
	dir := filepath.Join(cfgDir, "fetchjar")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create jar dir %q: %w", dir, err)
	}
	return filepath.Join(dir, "cookies.db"), nil
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("fetchjar %s (commit: %s, built: %s)\n", version, commit, date)
	},
}
