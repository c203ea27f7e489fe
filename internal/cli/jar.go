package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/0x6d61/fetchjar/internal/jar"
)

var jarCmd = &cobra.Command{
	Use:   "jar",
	Short: "Inspect and manage the cookie jar",
}

var jarListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored cookies",
	RunE:  runJarList,
}

var jarClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete all stored cookies",
	RunE:  runJarClear,
}

var jarCleanupCmd = &cobra.Command{
	Use:   "cleanup",
	Short: "Delete expired cookies",
	RunE:  runJarCleanup,
}

func init() {
	rootCmd.AddCommand(jarCmd)
	jarCmd.AddCommand(jarListCmd)
	jarCmd.AddCommand(jarClearCmd)
	jarCmd.AddCommand(jarCleanupCmd)
}

// openJar opens the SQLite jar at the resolved --jar path.
func openJar(cmd *cobra.Command) (*jar.SQLite, error) {
	path, err := jarPath(cmd)
	if err != nil {
		return nil, err
	}
	j, err := jar.NewSQLite(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open cookie jar %q: %w", path, err)
	}
	return j, nil
}

func runJarList(cmd *cobra.Command, args []string) error {
	j, err := openJar(cmd)
	if err != nil {
		return err
	}
	defer j.Close()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	cookies, err := j.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to list cookies: %w", err)
	}
	if len(cookies) == 0 {
		fmt.Println("jar is empty")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "DOMAIN\tPATH\tNAME\tVALUE\tEXPIRES")
	for _, c := range cookies {
		expires := "session"
		if !c.ExpiresAt.IsZero() {
			expires = c.ExpiresAt.Format(time.RFC3339)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", c.Domain, c.Path, c.Name, c.Value, expires)
	}
	return w.Flush()
}

func runJarClear(cmd *cobra.Command, args []string) error {
	j, err := openJar(cmd)
	if err != nil {
		return err
	}
	defer j.Close()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if err := j.Clear(ctx); err != nil {
		return fmt.Errorf("failed to clear jar: %w", err)
	}
	fmt.Println("jar cleared")
	return nil
}

func runJarCleanup(cmd *cobra.Command, args []string) error {
	j, err := openJar(cmd)
	if err != nil {
		return err
	}
	defer j.Close()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	n, err := j.Cleanup(ctx)
	if err != nil {
		return fmt.Errorf("failed to clean up jar: %w", err)
	}
	fmt.Printf("removed %d expired cookie(s)\n", n)
	return nil
}
