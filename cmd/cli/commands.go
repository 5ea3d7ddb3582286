package main

import (
	"fmt"
	"io"
	"net/http"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(healthCmd)
	rootCmd.AddCommand(metricsCmd)
	rootCmd.AddCommand(resultsCmd)
	rootCmd.AddCommand(eventsCmd)
	rootCmd.AddCommand(tournamentsCmd)
	rootCmd.AddCommand(matchesCmd)
	rootCmd.AddCommand(meCmd)
}

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check the health of the server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/health")
	},
}

var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Get application metrics",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/metrics")
	},
}

var resultsCmd = &cobra.Command{
	Use:   "results [id]",
	Short: "List match results, or fetch one by document id",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 1 {
			return performGetRequest("/api/match-results/" + args[0])
		}
		return performGetRequest("/api/match-results")
	},
}

var eventsCmd = &cobra.Command{
	Use:   "events [id]",
	Short: "List events, or fetch one by document id",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 1 {
			return performGetRequest("/api/events/" + args[0])
		}
		return performGetRequest("/api/events")
	},
}

var tournamentsCmd = &cobra.Command{
	Use:   "tournaments [id]",
	Short: "List tournaments, or fetch one by document id",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 1 {
			return performGetRequest("/api/tournaments/" + args[0])
		}
		return performGetRequest("/api/tournaments")
	},
}

var matchesCmd = &cobra.Command{
	Use:   "matches <tournament-id>",
	Short: "List the matches of one tournament",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/api/tournaments/" + args[0] + "/matches")
	},
}

var meCmd = &cobra.Command{
	Use:   "me",
	Short: "Show the user the configured token belongs to",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/api/auth/me")
	},
}

func performGetRequest(endpoint string) error {
	url := host + endpoint
	fmt.Printf("Making request to %s\n", url)

	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	fmt.Printf("Status Code: %d\n", resp.StatusCode)
	fmt.Println("Response Body:")
	fmt.Println(string(body))

	return nil
}
