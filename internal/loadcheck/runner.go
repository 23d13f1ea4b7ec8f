package loadcheck

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/okian/roster/pkg/logger"
)

// Run executes the complete load check: health probe, concurrent creates,
// list verification, then sequential updates with merge verification.
func Run(ctx context.Context, config *Config) error {
	stats := &Stats{StartTime: time.Now()}

	logger.Get().Info(ctx, "starting roster load check",
		logger.String("baseURL", config.BaseURL),
		logger.Int("users", config.Users),
		logger.Int("workers", config.Workers),
		logger.Int("updates", config.Updates),
		logger.Duration("timeout", config.Timeout))

	if err := checkServiceHealth(ctx, config); err != nil {
		return fmt.Errorf("service health check failed: %w", err)
	}

	users := generateUsers(ctx, config, stats)

	if err := submitUsers(ctx, config, users, stats); err != nil {
		return fmt.Errorf("user submission failed: %w", err)
	}

	if err := verifyList(ctx, config, stats); err != nil {
		return fmt.Errorf("list verification failed: %w", err)
	}

	if err := verifyUpdates(ctx, config, stats); err != nil {
		return fmt.Errorf("update verification failed: %w", err)
	}

	stats.EndTime = time.Now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)
	displayFinalStats(ctx, stats)
	return nil
}

// verifyList checks that every submitted user is visible exactly once.
func verifyList(ctx context.Context, config *Config, stats *Stats) error {
	users, err := listUsers(ctx, config)
	if err != nil {
		return err
	}
	stats.ListedUsers = len(users)

	seen := make(map[int64]int, len(users))
	for _, u := range users {
		if id, ok := u["id"].(float64); ok {
			seen[int64(id)]++
		}
	}
	for id := int64(1); id <= int64(stats.UsersSubmitted); id++ {
		if seen[id] != 1 {
			return fmt.Errorf("id %d appears %d times in list, want exactly once", id, seen[id])
		}
	}

	logger.Get().Info(ctx, "list verified", logger.Int("records", len(users)))
	return nil
}

// verifyUpdates patches the first N users and confirms the merge semantics:
// the response echoes the patch, the list shows the patched field, and the
// untouched fields survive. It also checks the miss behavior for an id that
// was never created.
func verifyUpdates(ctx context.Context, config *Config, stats *Stats) error {
	updates := config.Updates
	if updates > stats.UsersSubmitted {
		updates = stats.UsersSubmitted
	}

	for id := int64(1); id <= int64(updates); id++ {
		patch := map[string]any{"name": fmt.Sprintf("patched-%d", id)}
		status, body, err := updateUser(ctx, config, id, patch)
		if err != nil {
			stats.UpdateFailures++
			return err
		}
		if status != http.StatusOK {
			stats.UpdateFailures++
			return fmt.Errorf("update of id %d returned status %d", id, status)
		}
		var echoed map[string]any
		if err := json.Unmarshal(body, &echoed); err != nil {
			return fmt.Errorf("update response for id %d is not JSON: %w", id, err)
		}
		if echoed["name"] != patch["name"] {
			return fmt.Errorf("update of id %d echoed %v, want the patch", id, echoed)
		}
		stats.UpdatesApplied++
	}

	users, err := listUsers(ctx, config)
	if err != nil {
		return err
	}
	for _, u := range users {
		id, ok := u["id"].(float64)
		if !ok || int64(id) > int64(updates) {
			continue
		}
		want := fmt.Sprintf("patched-%d", int64(id))
		if u["name"] != want {
			return fmt.Errorf("id %d has name %v after update, want %s", int64(id), u["name"], want)
		}
		if u["team"] == nil {
			return fmt.Errorf("id %d lost its team field after update", int64(id))
		}
	}

	// A never-created id must produce the legacy miss body.
	missID := int64(config.Users + 1000)
	status, body, err := updateUser(ctx, config, missID, map[string]any{"name": "ghost"})
	if err != nil {
		return err
	}
	if status != http.StatusNotFound {
		return fmt.Errorf("update of missing id %d returned status %d, want 404", missID, status)
	}
	var miss map[string]string
	if err := json.Unmarshal(body, &miss); err != nil || miss["error"] != "User not found" {
		return fmt.Errorf("unexpected miss body %q", string(body))
	}

	logger.Get().Info(ctx, "updates verified", logger.Int("applied", stats.UpdatesApplied))
	return nil
}

func displayFinalStats(ctx context.Context, stats *Stats) {
	logger.Get().Info(ctx, "load check complete",
		logger.Int("generated", stats.UsersGenerated),
		logger.Int("submitted", stats.UsersSubmitted),
		logger.Int("submitFailures", stats.SubmitFailures),
		logger.Int("listed", stats.ListedUsers),
		logger.Int("updatesApplied", stats.UpdatesApplied),
		logger.Duration("duration", stats.Duration))
}
