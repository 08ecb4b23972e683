// Package planner routes day-plan generation between the cloud planning
// service and the on-device engine, applies the results and triggers
// re-indexing.
package planner

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/tripwing/tripwing/internal/itinerary"
)

// PlanRequest is the payload sent to the cloud planning service.
type PlanRequest struct {
	City       string                `json:"city"`
	Date       string                `json:"date"` // YYYY-MM-DD
	TimeRanges []itinerary.TimeRange `json:"timeRanges,omitempty"`
	Interests  []string              `json:"interests,omitempty"`
}

// PlanResponse is the cloud planning service's reply.
type PlanResponse struct {
	Items            []itinerary.TripItem `json:"items"`
	Success          bool                 `json:"success"`
	Error            string               `json:"error,omitempty"`
	KnowledgeContext []string             `json:"knowledgeContext,omitempty"`
}

// CloudPlanner is the cloud planning collaborator. The router does not
// know or care about its transport.
type CloudPlanner interface {
	GeneratePlan(ctx context.Context, req PlanRequest) (*PlanResponse, error)
}

// Connectivity reports whether the network is currently reachable.
type Connectivity interface {
	Online(ctx context.Context) bool
}

// OnlineFunc adapts a function to the Connectivity interface.
type OnlineFunc func(ctx context.Context) bool

// Online implements Connectivity.
func (f OnlineFunc) Online(ctx context.Context) bool { return f(ctx) }

// HTTPCloudPlanner talks to the cloud planning service over HTTPS.
type HTTPCloudPlanner struct {
	BaseURL string
	APIKey  string
	Client  *http.Client
}

// NewHTTPCloudPlanner creates a planner client for the given endpoint.
func NewHTTPCloudPlanner(baseURL, apiKey string) *HTTPCloudPlanner {
	return &HTTPCloudPlanner{
		BaseURL: baseURL,
		APIKey:  apiKey,
		Client:  &http.Client{Timeout: 30 * time.Second},
	}
}

// GeneratePlan implements CloudPlanner.
func (p *HTTPCloudPlanner) GeneratePlan(ctx context.Context, planReq PlanRequest) (*PlanResponse, error) {
	body, err := json.Marshal(planReq)
	if err != nil {
		return nil, fmt.Errorf("marshal plan request: %w", err)
	}

	url := strings.TrimRight(p.BaseURL, "/") + "/v1/plans"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build plan request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if p.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+p.APIKey)
	}

	resp, err := p.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("call planning service: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("planning service returned %s", resp.Status)
	}

	var planResp PlanResponse
	if err := json.NewDecoder(resp.Body).Decode(&planResp); err != nil {
		return nil, fmt.Errorf("decode plan response: %w", err)
	}
	return &planResp, nil
}

// HTTPConnectivity probes a well-known endpoint to detect connectivity.
type HTTPConnectivity struct {
	URL    string
	Client *http.Client
}

// NewHTTPConnectivity creates a connectivity probe.
func NewHTTPConnectivity() *HTTPConnectivity {
	return &HTTPConnectivity{
		URL:    "https://www.gstatic.com/generate_204",
		Client: &http.Client{Timeout: 2 * time.Second},
	}
}

// Online implements Connectivity.
func (c *HTTPConnectivity) Online(ctx context.Context) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, c.URL, nil)
	if err != nil {
		return false
	}
	resp, err := c.Client.Do(req)
	if err != nil {
		return false
	}
	_ = resp.Body.Close()
	return resp.StatusCode < http.StatusInternalServerError
}
