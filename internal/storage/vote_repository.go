package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/ad/telegram-contest-bot/internal/domain"
)

// VoteRepository implements domain.VoteRepository using SQLite.
// The votes table carries a UNIQUE constraint on user_id, so the
// one-vote-per-user rule is enforced by the database itself. Every
// vote change adjusts participants.vote_count in the same transaction.
type VoteRepository struct {
	queue *DBQueue
}

// NewVoteRepository creates a new VoteRepository
func NewVoteRepository(queue *DBQueue) *VoteRepository {
	return &VoteRepository{queue: queue}
}

// CreateVote inserts the user's vote and increments the participant
// counter. Returns domain.ErrAlreadyVoted when the user already holds
// a vote, domain.ErrParticipantNotFound when the participant is gone.
func (r *VoteRepository) CreateVote(ctx context.Context, v *domain.Vote) error {
	return r.queue.Execute(func(db *sql.DB) error {
		tx, err := db.BeginTx(ctx, nil)
		if err != nil {
			return err
		}
		defer func() { _ = tx.Rollback() }()

		result, err := tx.ExecContext(ctx, `
			INSERT INTO votes (user_id, participant_id, created_at)
			VALUES (?, ?, ?)
		`, v.UserID, v.ParticipantID, v.CreatedAt)
		if err != nil {
			if isUniqueViolation(err) {
				return domain.ErrAlreadyVoted
			}
			return fmt.Errorf("failed to create vote: %w", err)
		}

		id, err := result.LastInsertId()
		if err != nil {
			return fmt.Errorf("failed to get vote ID: %w", err)
		}
		v.ID = id

		counter, err := tx.ExecContext(ctx, `
			UPDATE participants SET vote_count = vote_count + 1 WHERE id = ?
		`, v.ParticipantID)
		if err != nil {
			return fmt.Errorf("failed to increment vote count: %w", err)
		}
		rowsAffected, err := counter.RowsAffected()
		if err != nil {
			return err
		}
		if rowsAffected == 0 {
			return domain.ErrParticipantNotFound
		}

		return tx.Commit()
	})
}

// DeleteVote removes the user's vote for a participant and decrements
// the participant counter. Returns domain.ErrNoSuchVote when the user
// has no vote for that participant.
func (r *VoteRepository) DeleteVote(ctx context.Context, userID, participantID int64) error {
	return r.queue.Execute(func(db *sql.DB) error {
		tx, err := db.BeginTx(ctx, nil)
		if err != nil {
			return err
		}
		defer func() { _ = tx.Rollback() }()

		result, err := tx.ExecContext(ctx, `
			DELETE FROM votes WHERE user_id = ? AND participant_id = ?
		`, userID, participantID)
		if err != nil {
			return fmt.Errorf("failed to delete vote: %w", err)
		}

		rowsAffected, err := result.RowsAffected()
		if err != nil {
			return err
		}
		if rowsAffected == 0 {
			return domain.ErrNoSuchVote
		}

		// Clamped at zero so a counter drift can never push it negative
		_, err = tx.ExecContext(ctx, `
			UPDATE participants
			SET vote_count = CASE WHEN vote_count > 0 THEN vote_count - 1 ELSE 0 END
			WHERE id = ?
		`, participantID)
		if err != nil {
			return fmt.Errorf("failed to decrement vote count: %w", err)
		}

		return tx.Commit()
	})
}

// GetVoteByUser returns the user's current vote, or nil when the user has not voted
func (r *VoteRepository) GetVoteByUser(ctx context.Context, userID int64) (*domain.Vote, error) {
	var v domain.Vote
	err := r.queue.Execute(func(db *sql.DB) error {
		row := db.QueryRowContext(ctx, `
			SELECT id, user_id, participant_id, created_at
			FROM votes
			WHERE user_id = ?
		`, userID)
		return row.Scan(&v.ID, &v.UserID, &v.ParticipantID, &v.CreatedAt)
	})

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get vote: %w", err)
	}
	return &v, nil
}

// DeleteAllVotes removes every vote and zeroes all participant counters
func (r *VoteRepository) DeleteAllVotes(ctx context.Context) error {
	return r.queue.Execute(func(db *sql.DB) error {
		tx, err := db.BeginTx(ctx, nil)
		if err != nil {
			return err
		}
		defer func() { _ = tx.Rollback() }()

		if _, err := tx.ExecContext(ctx, "DELETE FROM votes"); err != nil {
			return fmt.Errorf("failed to delete votes: %w", err)
		}
		if _, err := tx.ExecContext(ctx, "UPDATE participants SET vote_count = 0"); err != nil {
			return fmt.Errorf("failed to reset vote counts: %w", err)
		}

		return tx.Commit()
	})
}

// isUniqueViolation checks for a SQLite UNIQUE constraint error
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
