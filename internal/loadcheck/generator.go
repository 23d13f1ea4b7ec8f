package loadcheck

import (
	"context"

	"github.com/google/uuid"
	"github.com/okian/roster/pkg/logger"
)

// teams cycles through a few plausible group labels so update patches have
// more than one field to touch.
var teams = []string{"core", "platform", "growth", "infra"}

// generateUsers builds the records for the load phase. IDs are sequential
// starting at 1 so the update phase can address them deterministically;
// names are random so runs are distinguishable in the target's state.
func generateUsers(ctx context.Context, config *Config, stats *Stats) []User {
	users := make([]User, 0, config.Users)
	for i := 0; i < config.Users; i++ {
		users = append(users, User{
			ID:   int64(i + 1),
			Name: "user-" + uuid.NewString()[:8],
			Team: teams[i%len(teams)],
		})
	}
	stats.UsersGenerated = len(users)

	logger.Get().Info(ctx, "generated users", logger.Int("count", len(users)))
	return users
}
