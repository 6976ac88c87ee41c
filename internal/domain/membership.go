package domain

import (
	"context"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// ChatMemberGetter is the slice of the Bot API used for membership checks
type ChatMemberGetter interface {
	GetChatMember(ctx context.Context, params *bot.GetChatMemberParams) (*models.ChatMember, error)
}

// MembershipGate decides whether a user may vote. Voting requires
// membership in the required channel; without a configured channel,
// or when the membership lookup fails, the gate stays closed.
type MembershipGate struct {
	channels ChannelRepository
	chat     ChatMemberGetter
	timeout  time.Duration
	logger   Logger
}

// NewMembershipGate creates a new MembershipGate
func NewMembershipGate(channels ChannelRepository, chat ChatMemberGetter, timeout time.Duration, logger Logger) *MembershipGate {
	return &MembershipGate{
		channels: channels,
		chat:     chat,
		timeout:  timeout,
		logger:   logger,
	}
}

// Eligible reports whether the user may vote and returns the required
// channel so callers can point the user at it. The channel is nil when
// none is configured.
func (g *MembershipGate) Eligible(ctx context.Context, userID int64) (bool, *Channel, error) {
	channel, err := g.channels.GetRequiredChannel(ctx)
	if err != nil {
		return false, nil, err
	}
	if channel == nil {
		g.logger.Warn("no required channel configured, voting closed", "user_id", userID)
		return false, nil, nil
	}

	memberCtx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	member, err := g.chat.GetChatMember(memberCtx, &bot.GetChatMemberParams{
		ChatID: channel.Handle,
		UserID: userID,
	})
	if err != nil {
		g.logger.Warn("membership lookup failed", "user_id", userID, "channel", channel.Handle, "error", err)
		return false, channel, nil
	}

	switch member.Type {
	case models.ChatMemberTypeOwner, models.ChatMemberTypeAdministrator, models.ChatMemberTypeMember:
		return true, channel, nil
	}

	g.logger.Debug("user not a channel member", "user_id", userID, "status", member.Type)
	return false, channel, nil
}
