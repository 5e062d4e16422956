package client

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/PayRam/go-team-tree/service"
	"github.com/goccy/go-json"
)

// TeamTreeClient retrieves raw team-tree payloads from the backend's
// member/team-tree endpoint. It only carries a caller-supplied bearer token;
// token refresh is the caller's concern.
type TeamTreeClient struct {
	BaseURL string
	Token   string

	httpClient *http.Client
	logger     *slog.Logger
}

var _ service.TreeFetcher = &TeamTreeClient{}

func New(baseURL, token string) *TeamTreeClient {
	return &TeamTreeClient{
		BaseURL:    baseURL,
		Token:      token,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		logger:     slog.Default(),
	}
}

type teamTreeRequest struct {
	Project string `json:"project"`
}

// FetchTeamTree POSTs to the team-tree endpoint and returns the raw response
// body. The body is handed to tree ingestion untouched so that snapshots
// store exactly what the backend sent.
func (c *TeamTreeClient) FetchTeamTree(ctx context.Context, project string) ([]byte, error) {
	body, err := json.Marshal(teamTreeRequest{Project: project})
	if err != nil {
		return nil, fmt.Errorf("failed to encode team tree request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/api/member/team-tree", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create team tree request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("team tree request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("team tree request returned status %d", resp.StatusCode)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read team tree response: %w", err)
	}

	c.logger.Debug("fetched team tree",
		"project", project,
		"bytes", len(raw),
		"duration", time.Since(start))

	return raw, nil
}
