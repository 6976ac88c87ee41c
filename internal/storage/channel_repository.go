package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/ad/telegram-contest-bot/internal/domain"
)

// ChannelRepository implements domain.ChannelRepository using SQLite
type ChannelRepository struct {
	queue *DBQueue
}

// NewChannelRepository creates a new ChannelRepository
func NewChannelRepository(queue *DBQueue) *ChannelRepository {
	return &ChannelRepository{queue: queue}
}

// CreateChannel inserts a new channel and sets its ID. The first channel
// created while no required channel exists becomes the required one.
func (r *ChannelRepository) CreateChannel(ctx context.Context, c *domain.Channel) error {
	return r.queue.Execute(func(db *sql.DB) error {
		tx, err := db.BeginTx(ctx, nil)
		if err != nil {
			return err
		}
		defer func() { _ = tx.Rollback() }()

		var requiredCount int
		err = tx.QueryRowContext(ctx, "SELECT COUNT(*) FROM channels WHERE is_required = 1").Scan(&requiredCount)
		if err != nil {
			return fmt.Errorf("failed to check required channel: %w", err)
		}
		c.Required = requiredCount == 0

		result, err := tx.ExecContext(ctx, `
			INSERT INTO channels (handle, name, is_required, created_at)
			VALUES (?, ?, ?, ?)
		`, c.Handle, c.Name, c.Required, c.CreatedAt)
		if err != nil {
			return fmt.Errorf("failed to create channel: %w", err)
		}

		id, err := result.LastInsertId()
		if err != nil {
			return fmt.Errorf("failed to get channel ID: %w", err)
		}
		c.ID = id

		return tx.Commit()
	})
}

// GetRequiredChannel returns the channel gating the vote, or nil when none is configured
func (r *ChannelRepository) GetRequiredChannel(ctx context.Context) (*domain.Channel, error) {
	var c domain.Channel
	err := r.queue.Execute(func(db *sql.DB) error {
		row := db.QueryRowContext(ctx, `
			SELECT id, handle, name, is_required, created_at
			FROM channels
			WHERE is_required = 1
			LIMIT 1
		`)
		return row.Scan(&c.ID, &c.Handle, &c.Name, &c.Required, &c.CreatedAt)
	})

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get required channel: %w", err)
	}
	return &c, nil
}

// GetAllChannels returns all channels in registration order
func (r *ChannelRepository) GetAllChannels(ctx context.Context) ([]*domain.Channel, error) {
	var channels []*domain.Channel
	err := r.queue.Execute(func(db *sql.DB) error {
		rows, err := db.QueryContext(ctx, `
			SELECT id, handle, name, is_required, created_at
			FROM channels
			ORDER BY id ASC
		`)
		if err != nil {
			return err
		}
		defer func() { _ = rows.Close() }()

		for rows.Next() {
			var c domain.Channel
			if err := rows.Scan(&c.ID, &c.Handle, &c.Name, &c.Required, &c.CreatedAt); err != nil {
				return err
			}
			channels = append(channels, &c)
		}
		return rows.Err()
	})

	if err != nil {
		return nil, fmt.Errorf("failed to list channels: %w", err)
	}
	return channels, nil
}

// DeleteAllChannels removes every channel
func (r *ChannelRepository) DeleteAllChannels(ctx context.Context) error {
	return r.queue.Execute(func(db *sql.DB) error {
		if _, err := db.ExecContext(ctx, "DELETE FROM channels"); err != nil {
			return fmt.Errorf("failed to delete channels: %w", err)
		}
		return nil
	})
}
