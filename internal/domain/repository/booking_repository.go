package repository

import (
	"context"

	"github.com/healisdev/healis-api/internal/domain/entity"
)

// ListOrder describes how a domain orders its booking lists.
type ListOrder struct {
	ByCreated bool // order by creation time instead of the schedule date
	Asc       bool
}

// BookingRepository persists booking documents for all service domains.
// Every method is scoped by domain so one domain can never read or mutate
// another domain's documents through an id collision.
type BookingRepository interface {
	Create(ctx context.Context, b *entity.Booking) error
	GetByID(ctx context.Context, domain, id string) (*entity.Booking, error)
	ListByUser(ctx context.Context, domain, userID string, order ListOrder) ([]*entity.Booking, error)
	Update(ctx context.Context, b *entity.Booking) error
	Delete(ctx context.Context, domain, id string) error
}
