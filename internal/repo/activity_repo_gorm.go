package repo

import (
	"context"
	"database/sql"
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"kind-link-bridge/internal/domain"
)

// ActivityRepo stores the three append-only activity tables. Every insert is
// committed on its own; nothing spans tables.
type ActivityRepo struct{ db *gorm.DB }

func NewActivityRepo(db *gorm.DB) *ActivityRepo { return &ActivityRepo{db: db} }

func (r *ActivityRepo) InsertDonation(ctx context.Context, userID int64, amount float64, at time.Time) (*domain.Donation, error) {
	d := &domain.Donation{UserID: userID, Amount: amount, Date: at.UTC()}
	if err := r.db.WithContext(ctx).Create(d).Error; err != nil {
		return nil, errors.Wrap(err, "insert donation")
	}
	return d, nil
}

func (r *ActivityRepo) InsertVolunteerHours(ctx context.Context, userID int64, hours int64, at time.Time) (*domain.VolunteerRecord, error) {
	v := &domain.VolunteerRecord{UserID: userID, Hours: hours, Date: at.UTC()}
	if err := r.db.WithContext(ctx).Create(v).Error; err != nil {
		return nil, errors.Wrap(err, "insert volunteer hours")
	}
	return v, nil
}

func (r *ActivityRepo) InsertCauseSupport(ctx context.Context, userID int64, causeName string) (*domain.CauseSupport, error) {
	c := &domain.CauseSupport{UserID: userID, CauseName: causeName}
	if err := r.db.WithContext(ctx).Create(c).Error; err != nil {
		return nil, errors.Wrap(err, "insert cause support")
	}
	return c, nil
}

// SumDonations returns 0 when the user has no donations.
func (r *ActivityRepo) SumDonations(ctx context.Context, userID int64) (float64, error) {
	var total sql.NullFloat64
	err := r.db.WithContext(ctx).
		Model(&domain.Donation{}).
		Select("SUM(amount)").
		Where("user_id = ?", userID).
		Scan(&total).Error
	if err != nil {
		return 0, errors.Wrap(err, "sum donations")
	}
	return total.Float64, nil
}

// SumVolunteerHours returns 0 when the user has logged no hours.
func (r *ActivityRepo) SumVolunteerHours(ctx context.Context, userID int64) (int64, error) {
	var total sql.NullInt64
	err := r.db.WithContext(ctx).
		Model(&domain.VolunteerRecord{}).
		Select("SUM(hours)").
		Where("user_id = ?", userID).
		Scan(&total).Error
	if err != nil {
		return 0, errors.Wrap(err, "sum volunteer hours")
	}
	return total.Int64, nil
}

// ListCauseNames keeps insertion order and never returns nil.
func (r *ActivityRepo) ListCauseNames(ctx context.Context, userID int64) ([]string, error) {
	names := make([]string, 0)
	err := r.db.WithContext(ctx).
		Model(&domain.CauseSupport{}).
		Where("user_id = ?", userID).
		Order("id asc").
		Pluck("cause_name", &names).Error
	if err != nil {
		return nil, errors.Wrap(err, "list cause names")
	}
	if names == nil {
		names = []string{}
	}
	return names, nil
}

// Snapshot runs fn with a repository bound to a single read transaction.
func (r *ActivityRepo) Snapshot(ctx context.Context, fn func(domain.ActivityRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&ActivityRepo{db: tx})
	})
}
