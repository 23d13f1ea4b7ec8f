// Package loadcheck exercises a running roster instance over HTTP and
// verifies the record-store semantics under concurrent load.
package loadcheck

import "time"

// Config holds configuration for a load check run.
type Config struct {
	BaseURL string        // Base URL of the service
	Users   int           // Number of user records to create
	Workers int           // Number of concurrent workers
	Updates int           // Number of records to update after the load phase
	Timeout time.Duration // HTTP request timeout
	Verbose bool          // Enable verbose logging
}

// User mirrors the wire shape of a submitted user record.
type User struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Team string `json:"team"`
}

// Stats holds run statistics.
type Stats struct {
	UsersGenerated int
	UsersSubmitted int
	SubmitFailures int
	UpdatesApplied int
	UpdateFailures int
	ListedUsers    int
	StartTime      time.Time
	EndTime        time.Time
	Duration       time.Duration
}
