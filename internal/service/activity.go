package service

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"kind-link-bridge/internal/core/notify"
	"kind-link-bridge/internal/domain"
)

// Notifier receives a best-effort event after every successful activity write.
type Notifier interface {
	Publish(ctx context.Context, userID int64, kind string, record any) error
}

type nopNotifier struct{}

func (nopNotifier) Publish(context.Context, int64, string, any) error { return nil }

const notifyTimeout = 2 * time.Second

type ActivityService struct {
	users    domain.UserRepository
	acts     domain.ActivityRepository
	notifier Notifier
	log      *zap.Logger
	now      func() time.Time
}

// NewActivityService wires the write path. A nil notifier disables push events.
func NewActivityService(users domain.UserRepository, acts domain.ActivityRepository, n Notifier, l *zap.Logger) *ActivityService {
	if n == nil {
		n = nopNotifier{}
	}
	if l == nil {
		l = zap.NewNop()
	}
	return &ActivityService{users: users, acts: acts, notifier: n, log: l, now: time.Now}
}

func (s *ActivityService) RecordDonation(ctx context.Context, userID int64, amount float64) (*domain.Donation, error) {
	if !(amount > 0 && amount <= domain.MaxDonationAmount) {
		return nil, domain.ErrInvalidInput
	}
	if err := s.requireUser(ctx, userID); err != nil {
		return nil, err
	}
	d, err := s.acts.InsertDonation(ctx, userID, amount, s.now())
	if err != nil {
		return nil, err
	}
	s.publish(ctx, userID, notify.KindDonation, d)
	return d, nil
}

func (s *ActivityService) RecordVolunteerHours(ctx context.Context, userID int64, hours int64) (*domain.VolunteerRecord, error) {
	if hours <= 0 || hours > domain.MaxVolunteerHours {
		return nil, domain.ErrInvalidInput
	}
	if err := s.requireUser(ctx, userID); err != nil {
		return nil, err
	}
	v, err := s.acts.InsertVolunteerHours(ctx, userID, hours, s.now())
	if err != nil {
		return nil, err
	}
	s.publish(ctx, userID, notify.KindVolunteer, v)
	return v, nil
}

func (s *ActivityService) SupportCause(ctx context.Context, userID int64, causeName string) (*domain.CauseSupport, error) {
	causeName = strings.TrimSpace(causeName)
	if causeName == "" {
		return nil, domain.ErrInvalidInput
	}
	if err := s.requireUser(ctx, userID); err != nil {
		return nil, err
	}
	c, err := s.acts.InsertCauseSupport(ctx, userID, causeName)
	if err != nil {
		return nil, err
	}
	s.publish(ctx, userID, notify.KindCause, c)
	return c, nil
}

func (s *ActivityService) requireUser(ctx context.Context, userID int64) error {
	if userID <= 0 {
		return domain.ErrInvalidInput
	}
	_, err := s.users.FindByID(ctx, userID)
	return err
}

// publish never fails the write; the row is already committed.
func (s *ActivityService) publish(ctx context.Context, userID int64, kind string, record any) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), notifyTimeout)
	defer cancel()
	if err := s.notifier.Publish(ctx, userID, kind, record); err != nil {
		s.log.Warn("activity notify failed",
			zap.Int64("user_id", userID),
			zap.String("kind", kind),
			zap.Error(err),
		)
	}
}
