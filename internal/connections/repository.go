package connections

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"ripple/infrastructure"
)

type Repository interface {
	Create(ctx context.Context, rel *Relationship) error
	GetByID(ctx context.Context, id string) (*Relationship, error)
	GetBetween(ctx context.Context, a, b string) (*Relationship, error)
	AcceptedExists(ctx context.Context, a, b string) (bool, error)
	UpdateStatus(ctx context.Context, id string, status Status) error
	ListForUser(ctx context.Context, userID string, status Status) ([]*Relationship, error)
}

type gormRepository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) Create(ctx context.Context, rel *Relationship) error {
	if err := r.db.WithContext(ctx).Create(rel).Error; err != nil {
		return fmt.Errorf("failed to create relationship: %w", err)
	}
	return nil
}

func (r *gormRepository) GetByID(ctx context.Context, id string) (*Relationship, error) {
	var rel Relationship
	err := r.db.WithContext(ctx).First(&rel, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, infrastructure.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load relationship: %w", err)
	}
	return &rel, nil
}

func (r *gormRepository) GetBetween(ctx context.Context, a, b string) (*Relationship, error) {
	var rel Relationship
	err := r.db.WithContext(ctx).
		Where("(requester_id = ? AND receiver_id = ?) OR (requester_id = ? AND receiver_id = ?)", a, b, b, a).
		First(&rel).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, infrastructure.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load relationship: %w", err)
	}
	return &rel, nil
}

func (r *gormRepository) AcceptedExists(ctx context.Context, a, b string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&Relationship{}).
		Where("status = ?", StatusAccepted).
		Where("(requester_id = ? AND receiver_id = ?) OR (requester_id = ? AND receiver_id = ?)", a, b, b, a).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check relationship: %w", err)
	}
	return count > 0, nil
}

func (r *gormRepository) UpdateStatus(ctx context.Context, id string, status Status) error {
	err := r.db.WithContext(ctx).
		Model(&Relationship{}).
		Where("id = ?", id).
		Update("status", status).Error
	if err != nil {
		return fmt.Errorf("failed to update relationship status: %w", err)
	}
	return nil
}

func (r *gormRepository) ListForUser(ctx context.Context, userID string, status Status) ([]*Relationship, error) {
	var rels []*Relationship
	err := r.db.WithContext(ctx).
		Where("status = ?", status).
		Where("requester_id = ? OR receiver_id = ?", userID, userID).
		Order("created_at DESC").
		Find(&rels).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list relationships: %w", err)
	}
	return rels, nil
}
