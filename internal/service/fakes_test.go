package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"kind-link-bridge/internal/domain"
)

type fakeUsers struct {
	mu     sync.Mutex
	byID   map[int64]*domain.User
	nextID int64
	err    error
}

func newFakeUsers() *fakeUsers { return &fakeUsers{byID: map[int64]*domain.User{}} }

func (f *fakeUsers) Create(_ context.Context, u *domain.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	for _, ex := range f.byID {
		if ex.Email == u.Email {
			return domain.ErrDuplicateEmail
		}
	}
	f.nextID++
	u.ID = f.nextID
	cp := *u
	f.byID[u.ID] = &cp
	return nil
}

func (f *fakeUsers) FindByID(_ context.Context, id int64) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	u, ok := f.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUsers) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	for _, u := range f.byID {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeUsers) List(context.Context, int, int) ([]domain.User, int64, error) {
	return nil, 0, errors.New("not used")
}

type fakeActivity struct {
	mu        sync.Mutex
	donations []domain.Donation
	hours     []domain.VolunteerRecord
	causes    []domain.CauseSupport
	aggReads  int
	sumErr    error
	insertErr error
	snapshots int
}

func (f *fakeActivity) InsertDonation(_ context.Context, userID int64, amount float64, at time.Time) (*domain.Donation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.insertErr != nil {
		return nil, f.insertErr
	}
	d := domain.Donation{ID: int64(len(f.donations) + 1), UserID: userID, Amount: amount, Date: at}
	f.donations = append(f.donations, d)
	return &d, nil
}

func (f *fakeActivity) InsertVolunteerHours(_ context.Context, userID int64, hours int64, at time.Time) (*domain.VolunteerRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.insertErr != nil {
		return nil, f.insertErr
	}
	v := domain.VolunteerRecord{ID: int64(len(f.hours) + 1), UserID: userID, Hours: hours, Date: at}
	f.hours = append(f.hours, v)
	return &v, nil
}

func (f *fakeActivity) InsertCauseSupport(_ context.Context, userID int64, name string) (*domain.CauseSupport, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.insertErr != nil {
		return nil, f.insertErr
	}
	c := domain.CauseSupport{ID: int64(len(f.causes) + 1), UserID: userID, CauseName: name}
	f.causes = append(f.causes, c)
	return &c, nil
}

func (f *fakeActivity) SumDonations(_ context.Context, userID int64) (float64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.aggReads++
	if f.sumErr != nil {
		return 0, f.sumErr
	}
	var total float64
	for _, d := range f.donations {
		if d.UserID == userID {
			total += d.Amount
		}
	}
	return total, nil
}

func (f *fakeActivity) SumVolunteerHours(_ context.Context, userID int64) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.aggReads++
	var total int64
	for _, v := range f.hours {
		if v.UserID == userID {
			total += v.Hours
		}
	}
	return total, nil
}

func (f *fakeActivity) ListCauseNames(_ context.Context, userID int64) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.aggReads++
	var names []string
	for _, c := range f.causes {
		if c.UserID == userID {
			names = append(names, c.CauseName)
		}
	}
	return names, nil
}

func (f *fakeActivity) Snapshot(_ context.Context, fn func(domain.ActivityRepository) error) error {
	f.mu.Lock()
	f.snapshots++
	f.mu.Unlock()
	return fn(f)
}

type published struct {
	userID int64
	kind   string
	record any
}

type fakeNotifier struct {
	mu   sync.Mutex
	sent []published
	err  error
}

func (n *fakeNotifier) Publish(_ context.Context, userID int64, kind string, record any) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, published{userID: userID, kind: kind, record: record})
	return n.err
}
