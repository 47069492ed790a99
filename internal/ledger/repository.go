package ledger

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

type Repository interface {
	GetReaction(ctx context.Context, messageID, messageType, userID string) (*Reaction, error)
	InsertReaction(ctx context.Context, r *Reaction) error
	DeleteReaction(ctx context.Context, messageID, messageType, userID string) error
	ReplaceReaction(ctx context.Context, r *Reaction) error
	Counts(ctx context.Context, messageID, messageType string) ([]*ReactionCount, error)
	Reactions(ctx context.Context, messageID, messageType string) ([]*Reaction, error)

	InsertReceipt(ctx context.Context, r *ReadReceipt) error
	Receipts(ctx context.Context, messageID, messageType string) ([]*ReadReceipt, error)

	PurgeMessage(ctx context.Context, messageID, messageType string) error
}

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// EnsureSchema creates the ledger tables. The uniqueness constraints carry
// the invariants: one reaction per (message, type, user) and one receipt per
// (message, type, user).
func (r *PostgresRepository) EnsureSchema(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS reactions (
			message_id   VARCHAR(36) NOT NULL,
			message_type VARCHAR(16) NOT NULL,
			user_id      VARCHAR(36) NOT NULL,
			emoji        VARCHAR(16) NOT NULL,
			created_at   TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			PRIMARY KEY (message_id, message_type, user_id)
		);
		CREATE TABLE IF NOT EXISTS read_receipts (
			message_id   VARCHAR(36) NOT NULL,
			message_type VARCHAR(16) NOT NULL,
			user_id      VARCHAR(36) NOT NULL,
			read_at      TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			PRIMARY KEY (message_id, message_type, user_id)
		);
	`)
	if err != nil {
		return fmt.Errorf("failed to create ledger schema: %w", err)
	}
	return nil
}

func (r *PostgresRepository) GetReaction(ctx context.Context, messageID, messageType, userID string) (*Reaction, error) {
	var reaction Reaction
	err := r.db.QueryRowContext(ctx, `
		SELECT message_id, message_type, user_id, emoji, created_at
		FROM reactions WHERE message_id = $1 AND message_type = $2 AND user_id = $3
	`, messageID, messageType, userID).Scan(
		&reaction.MessageID, &reaction.MessageType, &reaction.UserID, &reaction.Emoji, &reaction.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load reaction: %w", err)
	}
	return &reaction, nil
}

func (r *PostgresRepository) InsertReaction(ctx context.Context, reaction *Reaction) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO reactions (message_id, message_type, user_id, emoji, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, reaction.MessageID, reaction.MessageType, reaction.UserID, reaction.Emoji, time.Now())
	if err != nil {
		return fmt.Errorf("failed to insert reaction: %w", err)
	}
	return nil
}

func (r *PostgresRepository) DeleteReaction(ctx context.Context, messageID, messageType, userID string) error {
	_, err := r.db.ExecContext(ctx, `
		DELETE FROM reactions WHERE message_id = $1 AND message_type = $2 AND user_id = $3
	`, messageID, messageType, userID)
	if err != nil {
		return fmt.Errorf("failed to delete reaction: %w", err)
	}
	return nil
}

// ReplaceReaction swaps a user's reaction in one transaction so readers never
// observe the intermediate no-reaction state.
func (r *PostgresRepository) ReplaceReaction(ctx context.Context, reaction *Reaction) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		DELETE FROM reactions WHERE message_id = $1 AND message_type = $2 AND user_id = $3
	`, reaction.MessageID, reaction.MessageType, reaction.UserID)
	if err != nil {
		return fmt.Errorf("failed to delete old reaction: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO reactions (message_id, message_type, user_id, emoji, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, reaction.MessageID, reaction.MessageType, reaction.UserID, reaction.Emoji, time.Now())
	if err != nil {
		return fmt.Errorf("failed to insert new reaction: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit reaction replace: %w", err)
	}
	return nil
}

func (r *PostgresRepository) Counts(ctx context.Context, messageID, messageType string) ([]*ReactionCount, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT emoji, COUNT(*) FROM reactions
		WHERE message_id = $1 AND message_type = $2
		GROUP BY emoji
	`, messageID, messageType)
	if err != nil {
		return nil, fmt.Errorf("failed to count reactions: %w", err)
	}
	defer rows.Close()

	var counts []*ReactionCount
	for rows.Next() {
		var c ReactionCount
		if err := rows.Scan(&c.Emoji, &c.Count); err != nil {
			return nil, fmt.Errorf("failed to scan reaction count: %w", err)
		}
		counts = append(counts, &c)
	}
	return counts, rows.Err()
}

func (r *PostgresRepository) Reactions(ctx context.Context, messageID, messageType string) ([]*Reaction, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT message_id, message_type, user_id, emoji, created_at
		FROM reactions WHERE message_id = $1 AND message_type = $2
	`, messageID, messageType)
	if err != nil {
		return nil, fmt.Errorf("failed to list reactions: %w", err)
	}
	defer rows.Close()

	var list []*Reaction
	for rows.Next() {
		var reaction Reaction
		if err := rows.Scan(&reaction.MessageID, &reaction.MessageType, &reaction.UserID, &reaction.Emoji, &reaction.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan reaction: %w", err)
		}
		list = append(list, &reaction)
	}
	return list, rows.Err()
}

// InsertReceipt is idempotent: a receipt that already exists is left alone.
func (r *PostgresRepository) InsertReceipt(ctx context.Context, receipt *ReadReceipt) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO read_receipts (message_id, message_type, user_id, read_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (message_id, message_type, user_id) DO NOTHING
	`, receipt.MessageID, receipt.MessageType, receipt.UserID, time.Now())
	if err != nil {
		return fmt.Errorf("failed to insert read receipt: %w", err)
	}
	return nil
}

func (r *PostgresRepository) Receipts(ctx context.Context, messageID, messageType string) ([]*ReadReceipt, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT message_id, message_type, user_id, read_at
		FROM read_receipts WHERE message_id = $1 AND message_type = $2
	`, messageID, messageType)
	if err != nil {
		return nil, fmt.Errorf("failed to list read receipts: %w", err)
	}
	defer rows.Close()

	var list []*ReadReceipt
	for rows.Next() {
		var receipt ReadReceipt
		if err := rows.Scan(&receipt.MessageID, &receipt.MessageType, &receipt.UserID, &receipt.ReadAt); err != nil {
			return nil, fmt.Errorf("failed to scan read receipt: %w", err)
		}
		list = append(list, &receipt)
	}
	return list, rows.Err()
}

func (r *PostgresRepository) PurgeMessage(ctx context.Context, messageID, messageType string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `
		DELETE FROM reactions WHERE message_id = $1 AND message_type = $2
	`, messageID, messageType); err != nil {
		return fmt.Errorf("failed to purge reactions: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `
		DELETE FROM read_receipts WHERE message_id = $1 AND message_type = $2
	`, messageID, messageType); err != nil {
		return fmt.Errorf("failed to purge read receipts: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit purge: %w", err)
	}
	return nil
}
