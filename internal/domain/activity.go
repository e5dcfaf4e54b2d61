package domain

import (
	"context"
	"time"
)

// Donation, VolunteerRecord and CauseSupport are the activity tables. Rows are
// append-only and owned by exactly one user.

type Donation struct {
	ID     int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID int64     `gorm:"index;not null" json:"user_id"`
	User   *User     `gorm:"foreignKey:UserID;constraint:OnDelete:RESTRICT" json:"-"`
	Amount float64   `gorm:"not null" json:"amount"`
	Date   time.Time `gorm:"not null" json:"date"`
}

func (Donation) TableName() string { return "donations" }

type VolunteerRecord struct {
	ID     int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID int64     `gorm:"index;not null" json:"user_id"`
	User   *User     `gorm:"foreignKey:UserID;constraint:OnDelete:RESTRICT" json:"-"`
	Hours  int64     `gorm:"not null" json:"hours"`
	Date   time.Time `gorm:"not null" json:"date"`
}

func (VolunteerRecord) TableName() string { return "volunteer_hours" }

// CauseSupport has no uniqueness on (user_id, cause_name); duplicates are kept.
type CauseSupport struct {
	ID        int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    int64  `gorm:"index;not null" json:"user_id"`
	User      *User  `gorm:"foreignKey:UserID;constraint:OnDelete:RESTRICT" json:"-"`
	CauseName string `gorm:"size:191;not null" json:"cause_name"`
}

func (CauseSupport) TableName() string { return "user_causes" }

// Per-write ceilings. They keep a user's running sums inside what the store
// and the JSON encoder can represent.
const (
	MaxDonationAmount = 1e9
	MaxVolunteerHours = 10000
)

type ActivityRepository interface {
	InsertDonation(ctx context.Context, userID int64, amount float64, at time.Time) (*Donation, error)
	InsertVolunteerHours(ctx context.Context, userID int64, hours int64, at time.Time) (*VolunteerRecord, error)
	InsertCauseSupport(ctx context.Context, userID int64, causeName string) (*CauseSupport, error)

	SumDonations(ctx context.Context, userID int64) (float64, error)
	SumVolunteerHours(ctx context.Context, userID int64) (int64, error)
	ListCauseNames(ctx context.Context, userID int64) ([]string, error)
}

// Models lists every table the store owns, in migration order.
func Models() []any {
	return []any{&User{}, &Donation{}, &VolunteerRecord{}, &CauseSupport{}}
}
