package domain

import "errors"

var (
	// ErrAlreadyVoted is returned when a user who already holds a vote tries to vote again
	ErrAlreadyVoted = errors.New("user has already voted")

	// ErrNoSuchVote is returned when revoking a vote the user never cast
	ErrNoSuchVote = errors.New("vote not found")

	// ErrParticipantNotFound is returned when a participant does not exist
	ErrParticipantNotFound = errors.New("participant not found")

	// ErrChannelNotFound is returned when no required channel is configured
	ErrChannelNotFound = errors.New("channel not found")

	// ErrInvalidContextData is returned when FSM context data cannot be decoded
	ErrInvalidContextData = errors.New("invalid context data")
)
