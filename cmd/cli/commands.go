package main

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/spf13/cobra"
)

var (
	runsLimit      int
	runsTournament string
)

var httpClient = &http.Client{Timeout: 30 * time.Second}

func init() {
	rootCmd.AddCommand(healthCmd)
	rootCmd.AddCommand(syncCmd)
	rootCmd.AddCommand(cacheCmd)
	rootCmd.AddCommand(runsCmd)
	rootCmd.AddCommand(metricsCmd)
	cacheCmd.AddCommand(invalidateCmd)

	runsCmd.Flags().IntVar(&runsLimit, "limit", 20, "Maximum number of publish attempts to list")
	runsCmd.Flags().StringVar(&runsTournament, "tournament", "", "Only list attempts for this tournament id")
}

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check the health of the server and its last sync cycle",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(cmd.OutOrStdout(), http.MethodGet, "/health")
	},
}

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Trigger a sync cycle now",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(cmd.OutOrStdout(), http.MethodPost, "/sync")
	},
}

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "List the content hash cache",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(cmd.OutOrStdout(), http.MethodGet, "/cache")
	},
}

var invalidateCmd = &cobra.Command{
	Use:   "invalidate KEY",
	Short: "Force the tournament behind KEY to be published on the next cycle",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(cmd.OutOrStdout(), http.MethodPost, "/cache/invalidate?key="+url.QueryEscape(args[0]))
	},
}

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List recent publish attempts",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(cmd.OutOrStdout(), http.MethodGet, runsEndpoint(runsLimit, runsTournament))
	},
}

var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Get application metrics",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(cmd.OutOrStdout(), http.MethodGet, "/metrics")
	},
}

func runsEndpoint(limit int, tournament string) string {
	q := url.Values{}
	q.Set("limit", strconv.Itoa(limit))
	if tournament != "" {
		q.Set("tournament", tournament)
	}
	return "/runs?" + q.Encode()
}

func performRequest(out io.Writer, method, endpoint string) error {
	target := host + endpoint
	fmt.Fprintf(out, "Making %s request to %s\n", method, target)

	req, err := http.NewRequest(method, target, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	resp, err := httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	fmt.Fprintf(out, "Status Code: %d\n", resp.StatusCode)
	fmt.Fprintln(out, "Response Body:")
	fmt.Fprintln(out, string(body))

	if resp.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("server responded with status %d", resp.StatusCode)
	}
	return nil
}
