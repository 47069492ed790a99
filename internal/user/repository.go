package user

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"ripple/infrastructure"
)

type Repository interface {
	GetByID(ctx context.Context, id string) (*User, error)
	SetOnline(ctx context.Context, id string, online bool) error
}

type gormRepository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) GetByID(ctx context.Context, id string) (*User, error) {
	var u User
	err := r.db.WithContext(ctx).First(&u, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, infrastructure.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	return &u, nil
}

func (r *gormRepository) SetOnline(ctx context.Context, id string, online bool) error {
	err := r.db.WithContext(ctx).
		Model(&User{}).
		Where("id = ?", id).
		Update("is_online", online).Error
	if err != nil {
		return fmt.Errorf("failed to update presence flag: %w", err)
	}
	return nil
}
