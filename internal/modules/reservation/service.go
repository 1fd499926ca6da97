package reservation

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"marketconnect/internal/domain"
	"marketconnect/internal/repository"
)

// Service is the slot reservation engine. Every operation runs as a single
// transaction; any error rolls the whole transaction back before it is
// returned, so the slot status and its booking can never diverge.
//
// Lock ordering is Slot before Booking in every operation that touches
// both, so concurrent Reserve and Cancel calls cannot deadlock.
type Service struct {
	users    repository.UserRepository
	slots    repository.SlotRepository
	bookings repository.BookingRepository
}

func NewService(
	users repository.UserRepository,
	slots repository.SlotRepository,
	bookings repository.BookingRepository,
) *Service {
	return &Service{
		users:    users,
		slots:    slots,
		bookings: bookings,
	}
}

// Reserve books an AVAILABLE slot for a user: the slot row is locked FOR
// UPDATE, its status checked under the lock, then flipped to BOOKED and a
// PENDING booking inserted in the same transaction. Under concurrency the
// first committer wins; everyone else observes ErrSlotUnavailable.
func (s *Service) Reserve(ctx context.Context, userID, slotID int64) (*domain.Booking, error) {
	var booking domain.Booking

	err := s.bookings.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		ok, err := s.users.Exists(ctx, tx, userID)
		if err != nil {
			return err
		}
		if !ok {
			return ErrUserNotFound
		}

		slot, err := s.slots.FindForUpdate(ctx, tx, slotID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrSlotNotFound
			}
			return err
		}

		if slot.Status != domain.SlotAvailable {
			return ErrSlotUnavailable
		}

		if err := s.slots.UpdateStatus(ctx, tx, slotID, domain.SlotBooked); err != nil {
			return err
		}

		booking = domain.Booking{
			UserID:        userID,
			SlotID:        slotID,
			PaymentStatus: domain.PaymentPending,
		}
		if err := s.bookings.Create(ctx, tx, &booking); err != nil {
			if isActiveBookingConflict(err) {
				return ErrSlotUnavailable
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

// Pay marks a PENDING booking PAID and records the payment method. The
// booking row is locked first; non-PENDING bookings are rejected so a
// CANCELED booking can never be revived by a late payment.
func (s *Service) Pay(ctx context.Context, bookingID int64, method string) (*domain.Booking, error) {
	var booking *domain.Booking

	err := s.bookings.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		b, err := s.bookings.FindForUpdate(ctx, tx, bookingID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrBookingNotFound
			}
			return err
		}

		if b.PaymentStatus != domain.PaymentPending {
			return ErrBookingNotPending
		}

		if err := s.bookings.MarkPaid(ctx, tx, bookingID, method); err != nil {
			return err
		}

		b.PaymentStatus = domain.PaymentPaid
		b.PaymentMethod = method
		booking = b
		return nil
	})
	if err != nil {
		return nil, err
	}
	return booking, nil
}

// Cancel marks a PENDING booking CANCELED and frees its slot back to
// AVAILABLE in the same commit. PAID bookings are immune. The booking is
// read first to learn its slot, then locks are taken slot-first to keep
// the global lock order.
func (s *Service) Cancel(ctx context.Context, bookingID int64) (*domain.Booking, error) {
	var booking *domain.Booking

	err := s.bookings.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		peek, err := s.bookings.Find(ctx, tx, bookingID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrBookingNotFound
			}
			return err
		}

		// The slot may be gone (deleted out from under the booking); the
		// cancellation still has to go through.
		if _, err := s.slots.FindForUpdate(ctx, tx, peek.SlotID); err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		b, err := s.bookings.FindForUpdate(ctx, tx, bookingID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrBookingNotFound
			}
			return err
		}

		switch b.PaymentStatus {
		case domain.PaymentPaid:
			return ErrBookingPaid
		case domain.PaymentCanceled:
			return ErrBookingNotPending
		}

		if err := s.bookings.MarkCanceled(ctx, tx, bookingID); err != nil {
			return err
		}
		if err := s.slots.UpdateStatus(ctx, tx, b.SlotID, domain.SlotAvailable); err != nil {
			return err
		}

		b.PaymentStatus = domain.PaymentCanceled
		booking = b
		return nil
	})
	if err != nil {
		return nil, err
	}
	return booking, nil
}

// DeleteBooking removes the booking record without touching its slot. This
// is record cleanup, not a lifecycle transition: a BOOKED slot stays BOOKED
// even when its booking row is deleted.
func (s *Service) DeleteBooking(ctx context.Context, bookingID int64) error {
	if err := s.bookings.Delete(ctx, bookingID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrBookingNotFound
		}
		return err
	}
	return nil
}

// isActiveBookingConflict detects the postgres partial unique index on
// active bookings per slot. It backs up the row lock as defense in depth;
// losing that race is the same Conflict outcome as a non-AVAILABLE slot.
func isActiveBookingConflict(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" && pgErr.ConstraintName == "idx_one_active_booking_per_slot"
	}
	return false
}
