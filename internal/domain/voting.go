package domain

import (
	"context"
	"fmt"
	"time"
)

// VotingService implements the voting rules: one vote per user,
// revocable, with the participant counter kept in sync by the
// vote repository.
type VotingService struct {
	participants ParticipantRepository
	votes        VoteRepository
	logger       Logger
}

// NewVotingService creates a new VotingService
func NewVotingService(participants ParticipantRepository, votes VoteRepository, logger Logger) *VotingService {
	return &VotingService{
		participants: participants,
		votes:        votes,
		logger:       logger,
	}
}

// Vote casts the user's single vote for a participant.
// Returns ErrParticipantNotFound or ErrAlreadyVoted on rule violations.
func (s *VotingService) Vote(ctx context.Context, userID, participantID int64) (*Participant, error) {
	p, err := s.participants.GetParticipant(ctx, participantID)
	if err != nil {
		return nil, fmt.Errorf("failed to load participant: %w", err)
	}
	if p == nil {
		return nil, ErrParticipantNotFound
	}

	vote := &Vote{
		UserID:        userID,
		ParticipantID: participantID,
		CreatedAt:     time.Now(),
	}
	if err := s.votes.CreateVote(ctx, vote); err != nil {
		return nil, err
	}

	s.logger.Info("vote cast", "user_id", userID, "participant_id", participantID)
	return p, nil
}

// Revoke removes the user's vote for a participant.
// Returns ErrNoSuchVote when the user has no vote for that participant.
func (s *VotingService) Revoke(ctx context.Context, userID, participantID int64) (*Participant, error) {
	p, err := s.participants.GetParticipant(ctx, participantID)
	if err != nil {
		return nil, fmt.Errorf("failed to load participant: %w", err)
	}
	if p == nil {
		return nil, ErrParticipantNotFound
	}

	if err := s.votes.DeleteVote(ctx, userID, participantID); err != nil {
		return nil, err
	}

	s.logger.Info("vote revoked", "user_id", userID, "participant_id", participantID)
	return p, nil
}

// Leaderboard returns all participants ordered by vote count, highest first
func (s *VotingService) Leaderboard(ctx context.Context) ([]*Participant, error) {
	return s.participants.GetParticipantsByVotes(ctx)
}

// ResetVotes removes every vote and zeroes all participant counters
func (s *VotingService) ResetVotes(ctx context.Context) error {
	if err := s.votes.DeleteAllVotes(ctx); err != nil {
		return fmt.Errorf("failed to reset votes: %w", err)
	}
	s.logger.Info("all votes reset")
	return nil
}
