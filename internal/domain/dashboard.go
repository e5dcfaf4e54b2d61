package domain

import "context"

type DashboardUser struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

// Dashboard is the per-user aggregate. It is recomputed on every request.
type Dashboard struct {
	User           DashboardUser `json:"user"`
	TotalDonations float64       `json:"total_donations"`
	TotalHours     int64         `json:"total_hours"`
	Causes         []string      `json:"causes"`
}

// Snapshotter runs fn against a repository view whose reads share one
// read transaction.
type Snapshotter interface {
	Snapshot(ctx context.Context, fn func(ActivityRepository) error) error
}
