package groups

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"ripple/infrastructure"
)

type Repository interface {
	CreateGroup(ctx context.Context, g *Group, owner *GroupMember) error
	GetGroup(ctx context.Context, id string) (*Group, error)
	AddMember(ctx context.Context, m *GroupMember) error
	GetMember(ctx context.Context, groupID, userID string) (*GroupMember, error)
	GetMemberByID(ctx context.Context, id string) (*GroupMember, error)
	UpdateMemberStatus(ctx context.Context, id string, status MemberStatus) error
	AcceptedMembers(ctx context.Context, groupID string) ([]*GroupMember, error)
}

type gormRepository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) CreateGroup(ctx context.Context, g *Group, owner *GroupMember) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(g).Error; err != nil {
			return err
		}
		return tx.Create(owner).Error
	})
	if err != nil {
		return fmt.Errorf("failed to create group: %w", err)
	}
	return nil
}

func (r *gormRepository) GetGroup(ctx context.Context, id string) (*Group, error) {
	var g Group
	err := r.db.WithContext(ctx).First(&g, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, infrastructure.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load group: %w", err)
	}
	return &g, nil
}

func (r *gormRepository) AddMember(ctx context.Context, m *GroupMember) error {
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return fmt.Errorf("failed to add group member: %w", err)
	}
	return nil
}

func (r *gormRepository) GetMember(ctx context.Context, groupID, userID string) (*GroupMember, error) {
	var m GroupMember
	err := r.db.WithContext(ctx).
		Where("group_id = ? AND user_id = ?", groupID, userID).
		First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, infrastructure.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load group member: %w", err)
	}
	return &m, nil
}

func (r *gormRepository) GetMemberByID(ctx context.Context, id string) (*GroupMember, error) {
	var m GroupMember
	err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, infrastructure.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load group member: %w", err)
	}
	return &m, nil
}

func (r *gormRepository) UpdateMemberStatus(ctx context.Context, id string, status MemberStatus) error {
	err := r.db.WithContext(ctx).
		Model(&GroupMember{}).
		Where("id = ?", id).
		Update("status", status).Error
	if err != nil {
		return fmt.Errorf("failed to update member status: %w", err)
	}
	return nil
}

func (r *gormRepository) AcceptedMembers(ctx context.Context, groupID string) ([]*GroupMember, error) {
	var members []*GroupMember
	err := r.db.WithContext(ctx).
		Where("group_id = ? AND status = ?", groupID, MemberAccepted).
		Find(&members).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list group members: %w", err)
	}
	return members, nil
}
