package repository

import (
	"context"

	"gorm.io/gorm"

	"marketconnect/internal/domain"
)

// UserRepository is the users slice of the store gateway. Methods taking a
// tx run inside a transaction owned by the caller.
type UserRepository interface {
	Create(ctx context.Context, u *domain.User) error
	List(ctx context.Context) ([]domain.User, error)
	Delete(ctx context.Context, id int64) error
	Exists(ctx context.Context, tx *gorm.DB, id int64) (bool, error)
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, u *domain.User) error {
	return r.db.WithContext(ctx).Create(u).Error
}

func (r *userRepository) List(ctx context.Context) ([]domain.User, error) {
	var users []domain.User
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// Delete removes the user row only; bookings referencing it are left in
// place (no cascade is defined for this store).
func (r *userRepository) Delete(ctx context.Context, id int64) error {
	tx := r.db.WithContext(ctx).Delete(&domain.User{}, id)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *userRepository) Exists(ctx context.Context, tx *gorm.DB, id int64) (bool, error) {
	var count int64
	err := tx.WithContext(ctx).Model(&domain.User{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}
