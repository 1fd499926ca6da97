package query

import (
	"context"

	"marketconnect/internal/domain"
	"marketconnect/internal/repository"
)

// Service serves read-only projections. It never takes locks and never
// mutates state; slightly stale reads are acceptable here.
type Service struct {
	users    repository.UserRepository
	stalls   repository.StallRepository
	slots    repository.SlotRepository
	bookings repository.BookingRepository
}

func NewService(
	users repository.UserRepository,
	stalls repository.StallRepository,
	slots repository.SlotRepository,
	bookings repository.BookingRepository,
) *Service {
	return &Service{
		users:    users,
		stalls:   stalls,
		slots:    slots,
		bookings: bookings,
	}
}

func (s *Service) ListUsers(ctx context.Context) ([]domain.User, error) {
	return s.users.List(ctx)
}

func (s *Service) ListStalls(ctx context.Context) ([]domain.Stall, error) {
	return s.stalls.List(ctx)
}

func (s *Service) ListSlots(ctx context.Context) ([]domain.Slot, error) {
	return s.slots.List(ctx)
}

func (s *Service) ListBookings(ctx context.Context) ([]domain.Booking, error) {
	return s.bookings.List(ctx)
}

// ListAvailableSlots returns AVAILABLE slots joined with their stall.
func (s *Service) ListAvailableSlots(ctx context.Context) ([]repository.AvailableSlotRow, error) {
	return s.slots.ListAvailable(ctx)
}
