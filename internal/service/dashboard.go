package service

import (
	"context"
	"math"

	"github.com/pkg/errors"

	"kind-link-bridge/internal/domain"
)

// DashboardService assembles the per-user aggregate. There is no cache: each
// call recomputes from the store.
type DashboardService struct {
	users domain.UserRepository
	acts  domain.ActivityRepository
	snap  domain.Snapshotter
}

// NewDashboardService reads the three aggregates independently, so a
// concurrent write may be visible to one sum and not another. Pass a non-nil
// snap to run them inside one read transaction instead.
func NewDashboardService(users domain.UserRepository, acts domain.ActivityRepository, snap domain.Snapshotter) *DashboardService {
	return &DashboardService{users: users, acts: acts, snap: snap}
}

// Get returns domain.ErrNotFound, before any aggregate read, when the user
// does not exist.
func (s *DashboardService) Get(ctx context.Context, userID int64) (*domain.Dashboard, error) {
	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := &domain.Dashboard{
		User:   domain.DashboardUser{Username: u.Username, Email: u.Email},
		Causes: []string{},
	}
	if s.snap == nil {
		err = aggregate(ctx, s.acts, userID, out)
	} else {
		err = s.snap.Snapshot(ctx, func(r domain.ActivityRepository) error {
			return aggregate(ctx, r, userID, out)
		})
	}
	if err != nil {
		return nil, err
	}
	return out, nil
}

func aggregate(ctx context.Context, r domain.ActivityRepository, userID int64, out *domain.Dashboard) error {
	total, err := r.SumDonations(ctx, userID)
	if err != nil {
		return err
	}
	if math.IsInf(total, 0) || math.IsNaN(total) {
		return errors.Errorf("donation total for user %d is not finite", userID)
	}
	out.TotalDonations = roundCents(total)
	if out.TotalHours, err = r.SumVolunteerHours(ctx, userID); err != nil {
		return err
	}
	causes, err := r.ListCauseNames(ctx, userID)
	if err != nil {
		return err
	}
	if causes != nil {
		out.Causes = causes
	}
	return nil
}

// roundCents drops the binary drift of summing decimal amounts as float64,
// so 0.1 + 0.2 reports 0.3.
func roundCents(v float64) float64 { return math.Round(v*100) / 100 }
