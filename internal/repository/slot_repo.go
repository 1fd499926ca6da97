package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"marketconnect/internal/domain"
)

// AvailableSlotRow is an available slot joined with its stall.
type AvailableSlotRow struct {
	SlotID       int64     `json:"slot_id" gorm:"column:slot_id"`
	StallID      int64     `json:"stall_id" gorm:"column:stall_id"`
	LocationName string    `json:"location_name" gorm:"column:location_name"`
	Date         time.Time `json:"date" gorm:"column:date"`
	Price        float64   `json:"price" gorm:"column:price"`
}

type SlotRepository interface {
	Create(ctx context.Context, s *domain.Slot) error
	List(ctx context.Context) ([]domain.Slot, error)
	ListAvailable(ctx context.Context) ([]AvailableSlotRow, error)
	Delete(ctx context.Context, id int64) error
	FindForUpdate(ctx context.Context, tx *gorm.DB, id int64) (*domain.Slot, error)
	UpdateStatus(ctx context.Context, tx *gorm.DB, id int64, status domain.SlotStatus) error
}

type slotRepository struct {
	db *gorm.DB
}

func NewSlotRepository(db *gorm.DB) SlotRepository {
	return &slotRepository{db: db}
}

func (r *slotRepository) Create(ctx context.Context, s *domain.Slot) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *slotRepository) List(ctx context.Context) ([]domain.Slot, error) {
	var slots []domain.Slot
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&slots).Error; err != nil {
		return nil, err
	}
	return slots, nil
}

func (r *slotRepository) ListAvailable(ctx context.Context) ([]AvailableSlotRow, error) {
	var rows []AvailableSlotRow
	q := `
SELECT
  sl.id AS slot_id,
  sl.stall_id,
  st.location_name,
  sl.date,
  sl.price
FROM slots sl
JOIN stalls st ON st.id = sl.stall_id
WHERE sl.status = ?
ORDER BY sl.date ASC, sl.id ASC
`
	tx := r.db.WithContext(ctx).Raw(q, domain.SlotAvailable).Scan(&rows)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return rows, nil
}

// Delete removes the slot row only; a booking referencing it is orphaned.
func (r *slotRepository) Delete(ctx context.Context, id int64) error {
	tx := r.db.WithContext(ctx).Delete(&domain.Slot{}, id)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// FindForUpdate reads the slot under an exclusive row lock. Concurrent
// transactions targeting the same slot block here until the holder commits
// or rolls back. The SQLite driver drops the locking clause, which is fine:
// SQLite serializes writers on its own.
func (r *slotRepository) FindForUpdate(ctx context.Context, tx *gorm.DB, id int64) (*domain.Slot, error) {
	var slot domain.Slot
	err := tx.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&slot, id).Error
	if err != nil {
		return nil, err
	}
	return &slot, nil
}

// UpdateStatus does not treat zero affected rows as an error: cancelling an
// orphaned booking updates a slot that no longer exists.
func (r *slotRepository) UpdateStatus(ctx context.Context, tx *gorm.DB, id int64, status domain.SlotStatus) error {
	return tx.WithContext(ctx).
		Model(&domain.Slot{}).
		Where("id = ?", id).
		Update("status", status).Error
}
