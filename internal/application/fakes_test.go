package application

import (
	"context"
	"sort"
	"sync"

	"github.com/healisdev/healis-api/internal/domain/entity"
	repo "github.com/healisdev/healis-api/internal/domain/repository"
)

// In-memory repository stand-ins. They mirror the postgres implementations'
// contract: sentinel errors, domain scoping, and list ordering.

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]*entity.User

	// failWith, when set, makes every call fail with that error; it stands
	// in for the pool being unreachable.
	failWith error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*entity.User)}
}

func (r *fakeUserRepo) Create(ctx context.Context, u *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failWith != nil {
		return r.failWith
	}
	for _, ex := range r.users {
		if ex.Email == u.Email || ex.PhoneNumber == u.PhoneNumber {
			return repo.ErrDuplicate
		}
	}
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failWith != nil {
		return nil, r.failWith
	}
	u, ok := r.users[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failWith != nil {
		return nil, r.failWith
	}
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repo.ErrNotFound
}

type fakeBookingRepo struct {
	mu       sync.Mutex
	bookings map[string]*entity.Booking
	seq      int

	failWith error
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{bookings: make(map[string]*entity.Booking)}
}

func (r *fakeBookingRepo) Create(ctx context.Context, b *entity.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	cp := *b
	r.bookings[b.Domain+"/"+b.ID] = &cp
	return nil
}

func (r *fakeBookingRepo) GetByID(ctx context.Context, domain, id string) (*entity.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failWith != nil {
		return nil, r.failWith
	}
	b, ok := r.bookings[domain+"/"+id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	cp := *b
	return &cp, nil
}

func (r *fakeBookingRepo) ListByUser(ctx context.Context, domain, userID string, order repo.ListOrder) ([]*entity.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Booking
	for _, b := range r.bookings {
		if b.Domain == domain && b.Patient.UserID == userID {
			cp := *b
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		var before bool
		switch {
		case order.ByCreated:
			before = out[i].CreatedAt.Before(out[j].CreatedAt)
		case out[i].BookingDate == nil || out[j].BookingDate == nil:
			before = out[i].CreatedAt.Before(out[j].CreatedAt)
		default:
			before = out[i].BookingDate.Before(*out[j].BookingDate)
		}
		if order.Asc {
			return before
		}
		return !before
	})
	return out, nil
}

func (r *fakeBookingRepo) Update(ctx context.Context, b *entity.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := b.Domain + "/" + b.ID
	if _, ok := r.bookings[key]; !ok {
		return repo.ErrNotFound
	}
	cp := *b
	r.bookings[key] = &cp
	return nil
}

func (r *fakeBookingRepo) Delete(ctx context.Context, domain, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := domain + "/" + id
	if _, ok := r.bookings[key]; !ok {
		return repo.ErrNotFound
	}
	delete(r.bookings, key)
	return nil
}

func (r *fakeBookingRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.bookings)
}

var (
	_ repo.UserRepository    = (*fakeUserRepo)(nil)
	_ repo.BookingRepository = (*fakeBookingRepo)(nil)
)
