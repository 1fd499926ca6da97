package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"marketconnect/internal/domain"
)

type BookingRepository interface {
	List(ctx context.Context) ([]domain.Booking, error)
	Find(ctx context.Context, tx *gorm.DB, id int64) (*domain.Booking, error)
	FindForUpdate(ctx context.Context, tx *gorm.DB, id int64) (*domain.Booking, error)
	Create(ctx context.Context, tx *gorm.DB, b *domain.Booking) error
	MarkPaid(ctx context.Context, tx *gorm.DB, id int64, method string) error
	MarkCanceled(ctx context.Context, tx *gorm.DB, id int64) error
	Delete(ctx context.Context, id int64) error
	GetDB() *gorm.DB
}

type bookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) BookingRepository {
	return &bookingRepository{db: db}
}

// GetDB hands the engine the handle it opens transactions on.
func (r *bookingRepository) GetDB() *gorm.DB {
	return r.db
}

func (r *bookingRepository) List(ctx context.Context) ([]domain.Booking, error) {
	var bookings []domain.Booking
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&bookings).Error; err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *bookingRepository) Find(ctx context.Context, tx *gorm.DB, id int64) (*domain.Booking, error) {
	var b domain.Booking
	if err := tx.WithContext(ctx).First(&b, id).Error; err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *bookingRepository) FindForUpdate(ctx context.Context, tx *gorm.DB, id int64) (*domain.Booking, error) {
	var b domain.Booking
	err := tx.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&b, id).Error
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *bookingRepository) Create(ctx context.Context, tx *gorm.DB, b *domain.Booking) error {
	return tx.WithContext(ctx).Create(b).Error
}

func (r *bookingRepository) MarkPaid(ctx context.Context, tx *gorm.DB, id int64, method string) error {
	return r.updatePayment(ctx, tx, id, map[string]any{
		"payment_status": domain.PaymentPaid,
		"payment_method": method,
	})
}

func (r *bookingRepository) MarkCanceled(ctx context.Context, tx *gorm.DB, id int64) error {
	return r.updatePayment(ctx, tx, id, map[string]any{
		"payment_status": domain.PaymentCanceled,
	})
}

func (r *bookingRepository) updatePayment(ctx context.Context, tx *gorm.DB, id int64, fields map[string]any) error {
	fields["updated_at"] = time.Now().UTC()
	res := tx.WithContext(ctx).
		Model(&domain.Booking{}).
		Where("id = ?", id).
		Updates(fields)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Delete removes the booking row and nothing else. The slot keeps its
// status; freeing it is Cancel's job, not Delete's.
func (r *bookingRepository) Delete(ctx context.Context, id int64) error {
	tx := r.db.WithContext(ctx).Delete(&domain.Booking{}, id)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
