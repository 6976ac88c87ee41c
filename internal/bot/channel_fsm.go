package bot

import (
	"context"
	"strings"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/ad/telegram-contest-bot/internal/domain"
	"github.com/ad/telegram-contest-bot/internal/locale"
	"github.com/ad/telegram-contest-bot/internal/storage"
)

// Channel registration states
const (
	StateChannelAskHandle = "channel_ask_handle"
	StateChannelAskName   = "channel_ask_name"
)

// ChannelFSM manages the two-step registration of a gate channel:
// handle, then display name.
type ChannelFSM struct {
	storage   *storage.FSMStorage
	bot       messenger
	channels  domain.ChannelRepository
	localizer locale.Localizer
	logger    domain.Logger
}

// NewChannelFSM creates a new FSM for channel registration
func NewChannelFSM(
	fsmStorage *storage.FSMStorage,
	b messenger,
	channels domain.ChannelRepository,
	localizer locale.Localizer,
	logger domain.Logger,
) *ChannelFSM {
	return &ChannelFSM{
		storage:   fsmStorage,
		bot:       b,
		channels:  channels,
		localizer: localizer,
		logger:    logger,
	}
}

// Start opens a new channel registration session, replacing any flow
// the user had in progress
func (f *ChannelFSM) Start(ctx context.Context, userID, chatID int64) error {
	formContext := &domain.ChannelFormContext{ChatID: chatID}

	if err := f.storage.Set(ctx, userID, StateChannelAskHandle, formContext.ToMap()); err != nil {
		f.logger.Error("failed to start channel registration", "user_id", userID, "error", err)
		return err
	}

	f.logger.Info("channel registration started", "user_id", userID)
	f.sendText(ctx, chatID, f.localizer.MustLocalize(locale.ChannelAskHandle))
	return nil
}

// HasSession checks if the user is in the middle of a channel registration flow
func (f *ChannelFSM) HasSession(ctx context.Context, userID int64) (bool, error) {
	state, _, err := f.storage.Get(ctx, userID)
	if err != nil {
		if err == storage.ErrSessionNotFound {
			return false, nil
		}
		return false, err
	}

	switch state {
	case StateChannelAskHandle, StateChannelAskName:
		return true, nil
	default:
		return false, nil
	}
}

// HandleMessage advances the flow with the user's text input
func (f *ChannelFSM) HandleMessage(ctx context.Context, update *models.Update) error {
	if update.Message == nil || update.Message.From == nil {
		return nil
	}

	userID := update.Message.From.ID
	chatID := update.Message.Chat.ID
	text := strings.TrimSpace(update.Message.Text)

	state, data, err := f.storage.Get(ctx, userID)
	if err != nil {
		if err == storage.ErrSessionNotFound {
			return nil
		}
		return err
	}

	formContext := &domain.ChannelFormContext{}
	if err := formContext.FromMap(data); err != nil {
		f.logger.Error("corrupted channel context", "user_id", userID, "error", err)
		_ = f.storage.Delete(ctx, userID)
		f.sendText(ctx, chatID, f.localizer.MustLocalize(locale.ErrorGeneric))
		return nil
	}

	switch state {
	case StateChannelAskHandle:
		return f.handleHandle(ctx, userID, chatID, text, formContext)
	case StateChannelAskName:
		return f.handleName(ctx, userID, chatID, text, formContext)
	default:
		return nil
	}
}

func (f *ChannelFSM) handleHandle(ctx context.Context, userID, chatID int64, text string, formContext *domain.ChannelFormContext) error {
	handle := domain.NormalizeHandle(text)
	if handle == "" {
		f.sendText(ctx, chatID, f.localizer.MustLocalize(locale.FormTextRequired))
		return nil
	}

	formContext.Handle = handle
	if err := f.storage.Set(ctx, userID, StateChannelAskName, formContext.ToMap()); err != nil {
		return err
	}

	f.sendText(ctx, chatID, f.localizer.MustLocalize(locale.ChannelAskName))
	return nil
}

func (f *ChannelFSM) handleName(ctx context.Context, userID, chatID int64, text string, formContext *domain.ChannelFormContext) error {
	if text == "" {
		f.sendText(ctx, chatID, f.localizer.MustLocalize(locale.FormTextRequired))
		return nil
	}

	defer func() {
		_ = f.storage.Delete(ctx, userID)
	}()

	channel := &domain.Channel{
		Handle:    formContext.Handle,
		Name:      text,
		CreatedAt: time.Now(),
	}

	if err := channel.Validate(); err != nil {
		f.logger.Error("channel validation failed", "user_id", userID, "error", err)
		f.sendText(ctx, chatID, f.localizer.MustLocalize(locale.ChannelCreateFailed))
		return nil
	}

	if err := f.channels.CreateChannel(ctx, channel); err != nil {
		f.logger.Error("failed to create channel", "user_id", userID, "error", err)
		f.sendText(ctx, chatID, f.localizer.MustLocalize(locale.ChannelCreateFailed))
		return nil
	}

	f.logger.Info("channel registered", "user_id", userID, "channel_id", channel.ID, "required", channel.Required)
	f.sendText(ctx, chatID, f.localizer.MustLocalizeWithTemplate(locale.ChannelCreated, channel.Handle, channel.Name))
	return nil
}

func (f *ChannelFSM) sendText(ctx context.Context, chatID int64, text string) {
	_, err := f.bot.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text:   text,
	})
	if err != nil {
		f.logger.Error("failed to send message", "chat_id", chatID, "error", err)
	}
}
