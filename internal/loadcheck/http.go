package loadcheck

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/okian/roster/pkg/logger"
)

// httpClient wraps http.Client with a request timeout.
type httpClient struct {
	client *http.Client
}

func newHTTPClient(timeout time.Duration) *httpClient {
	return &httpClient{
		client: &http.Client{Timeout: timeout},
	}
}

func (c *httpClient) getJSON(ctx context.Context, url string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d for GET %s", resp.StatusCode, url)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}
	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func (c *httpClient) sendJSON(ctx context.Context, method, url string, payload any) (int, []byte, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to marshal request body: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, bytes.NewReader(data))
	if err != nil {
		return 0, nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, fmt.Errorf("failed to read response: %w", err)
	}
	return resp.StatusCode, body, nil
}

// checkServiceHealth pings the root endpoint before loading the target.
func checkServiceHealth(ctx context.Context, config *Config) error {
	client := newHTTPClient(config.Timeout)
	var resp map[string]string
	if err := client.getJSON(ctx, config.BaseURL+"/", &resp); err != nil {
		return fmt.Errorf("service not reachable at %s: %w", config.BaseURL, err)
	}
	return nil
}

// submitUsers POSTs the generated users concurrently with a worker pool.
func submitUsers(ctx context.Context, config *Config, users []User, stats *Stats) error {
	client := newHTTPClient(config.Timeout)
	url := config.BaseURL + "/users"

	var submitted, failed int64

	jobs := make(chan User)
	var wg sync.WaitGroup
	for w := 0; w < config.Workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for user := range jobs {
				status, _, err := client.sendJSON(ctx, http.MethodPost, url, user)
				if err != nil || status != http.StatusOK {
					atomic.AddInt64(&failed, 1)
					if config.Verbose {
						logger.Get().Warn(ctx, "create failed",
							logger.Int64("id", user.ID),
							logger.Int("status", status),
							logger.Error(err))
					}
					continue
				}
				atomic.AddInt64(&submitted, 1)
			}
		}()
	}

	for _, user := range users {
		select {
		case <-ctx.Done():
			close(jobs)
			wg.Wait()
			return ctx.Err()
		case jobs <- user:
		}
	}
	close(jobs)
	wg.Wait()

	stats.UsersSubmitted = int(submitted)
	stats.SubmitFailures = int(failed)

	logger.Get().Info(ctx, "submitted users",
		logger.Int("submitted", stats.UsersSubmitted),
		logger.Int("failed", stats.SubmitFailures))
	return nil
}

// listUsers fetches the full collection.
func listUsers(ctx context.Context, config *Config) ([]map[string]any, error) {
	client := newHTTPClient(config.Timeout)
	var users []map[string]any
	if err := client.getJSON(ctx, config.BaseURL+"/users", &users); err != nil {
		return nil, err
	}
	return users, nil
}

// updateUser PUTs a patch against one id and returns the status and body.
func updateUser(ctx context.Context, config *Config, id int64, patch map[string]any) (int, []byte, error) {
	client := newHTTPClient(config.Timeout)
	url := fmt.Sprintf("%s/users/%d", config.BaseURL, id)
	return client.sendJSON(ctx, http.MethodPut, url, patch)
}
