package messages

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"ripple/infrastructure"
)

type Repository interface {
	CreateDirect(ctx context.Context, m *DirectMessage) error
	GetDirect(ctx context.Context, id string) (*DirectMessage, error)
	MarkDirectRead(ctx context.Context, id string) error
	DeleteDirect(ctx context.Context, id string) error
	Conversation(ctx context.Context, a, b string, limit int) ([]*DirectMessage, error)

	CreateGroup(ctx context.Context, m *GroupMessage) error
	GroupHistory(ctx context.Context, groupID string, limit int) ([]*GroupMessage, error)

	CreateChat(ctx context.Context, m *ChatMessage) error
	ChatHistory(ctx context.Context, userID string, limit int) ([]*ChatMessage, error)
}

type gormRepository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) CreateDirect(ctx context.Context, m *DirectMessage) error {
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return fmt.Errorf("failed to create direct message: %w", err)
	}
	return nil
}

func (r *gormRepository) GetDirect(ctx context.Context, id string) (*DirectMessage, error) {
	var m DirectMessage
	err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, infrastructure.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load direct message: %w", err)
	}
	return &m, nil
}

func (r *gormRepository) MarkDirectRead(ctx context.Context, id string) error {
	err := r.db.WithContext(ctx).
		Model(&DirectMessage{}).
		Where("id = ?", id).
		Update("is_read", true).Error
	if err != nil {
		return fmt.Errorf("failed to mark message read: %w", err)
	}
	return nil
}

func (r *gormRepository) DeleteDirect(ctx context.Context, id string) error {
	err := r.db.WithContext(ctx).Delete(&DirectMessage{}, "id = ?", id).Error
	if err != nil {
		return fmt.Errorf("failed to delete direct message: %w", err)
	}
	return nil
}

func (r *gormRepository) Conversation(ctx context.Context, a, b string, limit int) ([]*DirectMessage, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	var list []*DirectMessage
	err := r.db.WithContext(ctx).
		Where("(sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)", a, b, b, a).
		Order("created_at ASC").
		Limit(limit).
		Find(&list).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load conversation: %w", err)
	}
	return list, nil
}

func (r *gormRepository) CreateGroup(ctx context.Context, m *GroupMessage) error {
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return fmt.Errorf("failed to create group message: %w", err)
	}
	return nil
}

func (r *gormRepository) GroupHistory(ctx context.Context, groupID string, limit int) ([]*GroupMessage, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	var list []*GroupMessage
	err := r.db.WithContext(ctx).
		Where("group_id = ?", groupID).
		Order("created_at ASC").
		Limit(limit).
		Find(&list).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load group history: %w", err)
	}
	return list, nil
}

func (r *gormRepository) CreateChat(ctx context.Context, m *ChatMessage) error {
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return fmt.Errorf("failed to create chat message: %w", err)
	}
	return nil
}

func (r *gormRepository) ChatHistory(ctx context.Context, userID string, limit int) ([]*ChatMessage, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	var list []*ChatMessage
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Limit(limit).
		Find(&list).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load chat history: %w", err)
	}
	return list, nil
}
