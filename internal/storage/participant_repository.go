package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/ad/telegram-contest-bot/internal/domain"
)

// ParticipantRepository implements domain.ParticipantRepository using SQLite
type ParticipantRepository struct {
	queue *DBQueue
}

// NewParticipantRepository creates a new ParticipantRepository
func NewParticipantRepository(queue *DBQueue) *ParticipantRepository {
	return &ParticipantRepository{queue: queue}
}

// CreateParticipant inserts a new participant and sets its ID
func (r *ParticipantRepository) CreateParticipant(ctx context.Context, p *domain.Participant) error {
	return r.queue.Execute(func(db *sql.DB) error {
		result, err := db.ExecContext(ctx, `
			INSERT INTO participants (full_name, grade, description, image_url, image_key, video_url, vote_count, created_at)
			VALUES (?, ?, ?, ?, ?, ?, 0, ?)
		`, p.FullName, p.Grade, p.Description, p.ImageURL, p.ImageKey, p.VideoURL, p.CreatedAt)
		if err != nil {
			return fmt.Errorf("failed to create participant: %w", err)
		}

		id, err := result.LastInsertId()
		if err != nil {
			return fmt.Errorf("failed to get participant ID: %w", err)
		}
		p.ID = id
		return nil
	})
}

// GetParticipant retrieves a participant by ID, returning nil when not found
func (r *ParticipantRepository) GetParticipant(ctx context.Context, id int64) (*domain.Participant, error) {
	var p domain.Participant
	err := r.queue.Execute(func(db *sql.DB) error {
		row := db.QueryRowContext(ctx, `
			SELECT id, full_name, grade, description, image_url, image_key, video_url, vote_count, created_at
			FROM participants
			WHERE id = ?
		`, id)
		return row.Scan(&p.ID, &p.FullName, &p.Grade, &p.Description, &p.ImageURL, &p.ImageKey, &p.VideoURL, &p.VoteCount, &p.CreatedAt)
	})

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get participant: %w", err)
	}
	return &p, nil
}

// GetAllParticipants returns all participants in registration order
func (r *ParticipantRepository) GetAllParticipants(ctx context.Context) ([]*domain.Participant, error) {
	return r.list(ctx, "ORDER BY id ASC")
}

// GetParticipantsByVotes returns all participants ordered by vote count,
// highest first, ties broken by registration order
func (r *ParticipantRepository) GetParticipantsByVotes(ctx context.Context) ([]*domain.Participant, error) {
	return r.list(ctx, "ORDER BY vote_count DESC, id ASC")
}

func (r *ParticipantRepository) list(ctx context.Context, orderBy string) ([]*domain.Participant, error) {
	var participants []*domain.Participant
	err := r.queue.Execute(func(db *sql.DB) error {
		rows, err := db.QueryContext(ctx, `
			SELECT id, full_name, grade, description, image_url, image_key, video_url, vote_count, created_at
			FROM participants
		`+orderBy)
		if err != nil {
			return err
		}
		defer func() { _ = rows.Close() }()

		for rows.Next() {
			var p domain.Participant
			if err := rows.Scan(&p.ID, &p.FullName, &p.Grade, &p.Description, &p.ImageURL, &p.ImageKey, &p.VideoURL, &p.VoteCount, &p.CreatedAt); err != nil {
				return err
			}
			participants = append(participants, &p)
		}
		return rows.Err()
	})

	if err != nil {
		return nil, fmt.Errorf("failed to list participants: %w", err)
	}
	return participants, nil
}

// DeleteParticipant removes a participant together with its votes
func (r *ParticipantRepository) DeleteParticipant(ctx context.Context, id int64) error {
	return r.queue.Execute(func(db *sql.DB) error {
		tx, err := db.BeginTx(ctx, nil)
		if err != nil {
			return err
		}
		defer func() { _ = tx.Rollback() }()

		if _, err := tx.ExecContext(ctx, "DELETE FROM votes WHERE participant_id = ?", id); err != nil {
			return fmt.Errorf("failed to delete participant votes: %w", err)
		}

		result, err := tx.ExecContext(ctx, "DELETE FROM participants WHERE id = ?", id)
		if err != nil {
			return fmt.Errorf("failed to delete participant: %w", err)
		}

		rowsAffected, err := result.RowsAffected()
		if err != nil {
			return err
		}
		if rowsAffected == 0 {
			return domain.ErrParticipantNotFound
		}

		return tx.Commit()
	})
}
