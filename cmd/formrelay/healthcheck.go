package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/meschbach/formrelay/internal/web"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

func healthCheckCommand() *cobra.Command {
	var url string
	httpCheck := &cobra.Command{
		Use:   "http",
		Short: "Checks the liveness of the web listener via HTTP.",
		RunE: func(cmd *cobra.Command, args []string) error {
			timedContext, done := context.WithTimeout(cmd.Context(), 10*time.Second)
			defer done()
			reply, err := checkLiveness(timedContext, url)
			if err != nil {
				return err
			}
			fmt.Printf("Healthy: %t\n", reply.Ok)
			return nil
		},
	}
	httpCheck.Flags().StringVar(&url, "url", "http://localhost:5000", "Base URL of the web listener")

	healthCheck := &cobra.Command{
		Use:   "health-check",
		Short: "Tools to check health of the service.",
	}
	healthCheck.AddCommand(httpCheck)
	return healthCheck
}

func checkLiveness(ctx context.Context, baseURL string) (web.HealthCheckReply, error) {
	var reply web.HealthCheckReply
	client := &http.Client{Transport: otelhttp.NewTransport(http.DefaultTransport)}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, baseURL+"/ops/liveness", nil)
	if err != nil {
		return reply, err
	}
	resp, err := client.Do(req)
	if err != nil {
		return reply, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return reply, fmt.Errorf("unexpected status %d from %s", resp.StatusCode, req.URL)
	}
	err = json.NewDecoder(resp.Body).Decode(&reply)
	return reply, err
}
