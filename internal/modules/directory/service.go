package directory

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"marketconnect/internal/domain"
	"marketconnect/internal/repository"
)

// Service manages the catalog entities around the reservation core: users,
// stalls and availability slots. Deletes are plain row deletes — the store
// defines no cascade, so dangling references are the caller's problem and
// are documented as such.
type Service struct {
	users  repository.UserRepository
	stalls repository.StallRepository
	slots  repository.SlotRepository
}

func NewService(
	users repository.UserRepository,
	stalls repository.StallRepository,
	slots repository.SlotRepository,
) *Service {
	return &Service{
		users:  users,
		stalls: stalls,
		slots:  slots,
	}
}

func (s *Service) CreateUser(ctx context.Context, lineUID, name string) (*domain.User, error) {
	u := &domain.User{LineUID: lineUID, Name: name}
	if err := s.users.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *Service) DeleteUser(ctx context.Context, id int64) error {
	if err := s.users.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	return nil
}

func (s *Service) CreateStall(ctx context.Context, locationName, facilities string) (*domain.Stall, error) {
	st := &domain.Stall{LocationName: locationName, Facilities: facilities}
	if err := s.stalls.Create(ctx, st); err != nil {
		return nil, err
	}
	return st, nil
}

func (s *Service) DeleteStall(ctx context.Context, id int64) error {
	if err := s.stalls.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrStallNotFound
		}
		return err
	}
	return nil
}

// CreateAvailability opens a new AVAILABLE slot for a stall on a date.
func (s *Service) CreateAvailability(ctx context.Context, stallID int64, date string, price float64) (*domain.Slot, error) {
	day, err := time.Parse("2006-01-02", date)
	if err != nil {
		return nil, ErrValidation
	}
	if price < 0 {
		return nil, ErrValidation
	}

	slot := &domain.Slot{
		StallID: stallID,
		Date:    day,
		Price:   price,
		Status:  domain.SlotAvailable,
	}
	if err := s.slots.Create(ctx, slot); err != nil {
		return nil, err
	}
	return slot, nil
}

// DeleteAvailability removes the slot row; a booking referencing it is
// orphaned rather than cleaned up.
func (s *Service) DeleteAvailability(ctx context.Context, id int64) error {
	if err := s.slots.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrSlotNotFound
		}
		return err
	}
	return nil
}
