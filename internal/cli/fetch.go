package cli

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"

	"github.com/0x6d61/fetchjar/internal/fetch"
	"github.com/0x6d61/fetchjar/internal/jar"
	"github.com/0x6d61/fetchjar/internal/output"
	"github.com/0x6d61/fetchjar/internal/transport"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch [url]",
	Short: "Fetch a URL, persisting cookies and following redirects",
	Long: `Fetch performs an HTTP request against the given URL. Cookies set by
the server (including those set mid-chain during redirects) are stored
in the jar and replayed on subsequent requests and hops.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runFetch,
}

func init() {
	rootCmd.AddCommand(fetchCmd)

	fetchCmd.Flags().StringP("url", "u", "", "Target URL (alternative to the positional argument)")
	fetchCmd.Flags().String("method", "GET", "HTTP method (GET, POST, PUT, etc.)")
	fetchCmd.Flags().StringP("data", "d", "", "Request body (implies POST when method is GET)")
	fetchCmd.Flags().StringArrayP("header", "H", nil, "Extra header (repeatable, e.g., -H 'X-Custom: value')")
	fetchCmd.Flags().String("redirect", "follow", "Redirect mode (follow, error, manual)")
	fetchCmd.Flags().Int("max-redirects", fetch.DefaultMaxRedirects, "Maximum number of redirects to follow")
	fetchCmd.Flags().String("referrer-policy", "", "Initial referrer policy for the request chain")
}

// runFetch is the main fetch command handler. It wires up the full
// pipeline: transport → jar → fetch client → formatter.
func runFetch(cmd *cobra.Command, args []string) error {
	// ------------------------------------------------------------------ //
	// 1. Read flags
	// ------------------------------------------------------------------ //
	targetURL, _ := cmd.Flags().GetString("url")
	if len(args) > 0 {
		targetURL = args[0]
	}
	if targetURL == "" {
		return fmt.Errorf("target URL is required (pass it as an argument or use --url/-u)")
	}

	method, _ := cmd.Flags().GetString("method")
	data, _ := cmd.Flags().GetString("data")
	rawHeaders, _ := cmd.Flags().GetStringArray("header")
	redirectMode, _ := cmd.Flags().GetString("redirect")
	maxRedirects, _ := cmd.Flags().GetInt("max-redirects")
	referrerPolicy, _ := cmd.Flags().GetString("referrer-policy")
	proxyURL, _ := cmd.Flags().GetString("proxy")
	timeout, _ := cmd.Flags().GetDuration("timeout")
	maxRPS, _ := cmd.Flags().GetFloat64("rate")
	randomAgent, _ := cmd.Flags().GetBool("random-agent")
	insecure, _ := cmd.Flags().GetBool("insecure")
	verbose, _ := cmd.Flags().GetInt("verbose")
	outputPath, _ := cmd.Flags().GetString("output")
	format, _ := cmd.Flags().GetString("format")

	if data != "" && method == "GET" {
		method = "POST"
	}

	header := parseHeaders(rawHeaders)

	// ------------------------------------------------------------------ //
	// 2. Transport client
	// ------------------------------------------------------------------ //
	client, err := transport.NewClient(transport.ClientOptions{
		Timeout:            timeout,
		ProxyURL:           proxyURL,
		InsecureSkipVerify: insecure,
		RandomUserAgent:    randomAgent,
		MaxRPS:             maxRPS,
	})
	if err != nil {
		return fmt.Errorf("failed to create HTTP client: %w", err)
	}

	// ------------------------------------------------------------------ //
	// 3. Cookie jar
	// ------------------------------------------------------------------ //
	path, err := jarPath(cmd)
	if err != nil {
		return err
	}
	j, err := jar.NewSQLite(path)
	if err != nil {
		return fmt.Errorf("failed to open cookie jar %q: %w", path, err)
	}
	defer j.Close()

	// ------------------------------------------------------------------ //
	// 4. Fetch client
	// ------------------------------------------------------------------ //
	opts := []fetch.Option{fetch.WithMaxRedirects(maxRedirects)}
	if verbose >= 2 {
		logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
		opts = append(opts, fetch.WithLogger(logger))
	}
	fetcher := fetch.New(client, j, opts...)

	// ------------------------------------------------------------------ //
	// 5. Context (CTRL+C cancels the request gracefully)
	// ------------------------------------------------------------------ //
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if verbose > 0 {
		fmt.Fprintf(os.Stderr, "[*] %s %s\n", method, targetURL)
		if proxyURL != "" {
			fmt.Fprintf(os.Stderr, "[*] Proxy: %s\n", proxyURL)
		}
	}

	// ------------------------------------------------------------------ //
	// 6. Run the fetch
	// ------------------------------------------------------------------ //
	reqInit := fetch.Init{
		Method:         method,
		Header:         header,
		Redirect:       fetch.RedirectMode(redirectMode),
		ReferrerPolicy: referrerPolicy,
	}
	if data != "" {
		if header.Get("Content-Type") == "" {
			header.Set("Content-Type", "application/x-www-form-urlencoded")
		}
		reqInit.Body = transport.NewStringBody(data)
	}

	resp, err := fetcher.Fetch(ctx, targetURL, &reqInit)
	if err != nil {
		return fmt.Errorf("fetch error: %w", err)
	}

	// ------------------------------------------------------------------ //
	// 7. Write the result
	// ------------------------------------------------------------------ //
	formatter, err := output.New(format, verbose)
	if err != nil {
		return fmt.Errorf("unknown output format %q: %w", format, err)
	}

	out := os.Stdout
	if outputPath != "" {
		f, err := os.Create(outputPath)
		if err != nil {
			return fmt.Errorf("failed to create output file %q: %w", outputPath, err)
		}
		defer f.Close()
		out = f
	}

	result := &output.Result{
		URL:        resp.URL,
		Status:     resp.StatusCode,
		Protocol:   resp.Protocol,
		Redirected: resp.Redirected,
		Duration:   resp.Duration,
		Headers:    resp.Headers,
		Body:       resp.Body,
	}
	if err := formatter.Write(out, result); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	return nil
}

// parseHeaders converts raw "Name: value" strings into an http.Header.
// Repeated names accumulate as multiple values.
func parseHeaders(raw []string) http.Header {
	header := make(http.Header)
	for _, h := range raw {
		name, value, found := strings.Cut(h, ":")
		if !found {
			continue
		}
		header.Add(strings.TrimSpace(name), strings.TrimSpace(value))
	}
	return header
}
