package domain

import "context"

// ParticipantRepository defines storage operations for participants
type ParticipantRepository interface {
	CreateParticipant(ctx context.Context, p *Participant) error
	GetParticipant(ctx context.Context, id int64) (*Participant, error)
	GetAllParticipants(ctx context.Context) ([]*Participant, error)
	GetParticipantsByVotes(ctx context.Context) ([]*Participant, error)
	DeleteParticipant(ctx context.Context, id int64) error
}

// ChannelRepository defines storage operations for gate channels
type ChannelRepository interface {
	CreateChannel(ctx context.Context, c *Channel) error
	GetRequiredChannel(ctx context.Context) (*Channel, error)
	GetAllChannels(ctx context.Context) ([]*Channel, error)
	DeleteAllChannels(ctx context.Context) error
}

// VoteRepository defines storage operations for votes.
// Implementations must keep participants.vote_count consistent with the
// set of stored votes: CreateVote and DeleteVote adjust the counter in
// the same transaction as the vote row change.
type VoteRepository interface {
	CreateVote(ctx context.Context, v *Vote) error
	DeleteVote(ctx context.Context, userID, participantID int64) error
	GetVoteByUser(ctx context.Context, userID int64) (*Vote, error)
	DeleteAllVotes(ctx context.Context) error
}

// MediaStore stores participant images and serves them by public URL
type MediaStore interface {
	Upload(ctx context.Context, data []byte, key string) (string, error)
	Delete(ctx context.Context, key string) error
}
