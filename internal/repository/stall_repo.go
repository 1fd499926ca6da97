package repository

import (
	"context"

	"gorm.io/gorm"

	"marketconnect/internal/domain"
)

type StallRepository interface {
	Create(ctx context.Context, s *domain.Stall) error
	List(ctx context.Context) ([]domain.Stall, error)
	Delete(ctx context.Context, id int64) error
}

type stallRepository struct {
	db *gorm.DB
}

func NewStallRepository(db *gorm.DB) StallRepository {
	return &stallRepository{db: db}
}

func (r *stallRepository) Create(ctx context.Context, s *domain.Stall) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *stallRepository) List(ctx context.Context) ([]domain.Stall, error) {
	var stalls []domain.Stall
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&stalls).Error; err != nil {
		return nil, err
	}
	return stalls, nil
}

// Delete removes the stall row only. Slots keep their stall_id; the slots
// table does not restrict on stall deletion.
func (r *stallRepository) Delete(ctx context.Context, id int64) error {
	tx := r.db.WithContext(ctx).Delete(&domain.Stall{}, id)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
