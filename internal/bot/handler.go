package bot

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/ad/telegram-contest-bot/internal/config"
	"github.com/ad/telegram-contest-bot/internal/domain"
	"github.com/ad/telegram-contest-bot/internal/locale"
)

// maxPhotoSize caps the body read when fetching a user photo
const maxPhotoSize = 20 << 20

// BotHandler handles all Telegram bot interactions
type BotHandler struct {
	bot            messenger
	files          fileDownloader
	gate           *domain.MembershipGate
	voting         *domain.VotingService
	participants   domain.ParticipantRepository
	channels       domain.ChannelRepository
	media          domain.MediaStore
	participantFSM *ParticipantFSM
	channelFSM     *ChannelFSM
	config         *config.Config
	logger         domain.Logger
	localizer      locale.Localizer
	locks          *userLocks
	httpClient     *http.Client
}

// NewBotHandler creates a new BotHandler with all dependencies
func NewBotHandler(
	b messenger,
	files fileDownloader,
	gate *domain.MembershipGate,
	voting *domain.VotingService,
	participants domain.ParticipantRepository,
	channels domain.ChannelRepository,
	media domain.MediaStore,
	participantFSM *ParticipantFSM,
	channelFSM *ChannelFSM,
	cfg *config.Config,
	logger domain.Logger,
	localizer locale.Localizer,
) *BotHandler {
	return &BotHandler{
		bot:            b,
		files:          files,
		gate:           gate,
		voting:         voting,
		participants:   participants,
		channels:       channels,
		media:          media,
		participantFSM: participantFSM,
		channelFSM:     channelFSM,
		config:         cfg,
		logger:         logger,
		localizer:      localizer,
		locks:          newUserLocks(),
		httpClient:     http.DefaultClient,
	}
}

// HandleUpdate is the single entry point for incoming updates. A panic
// while handling one update is logged and answered with a generic
// error; it never takes the bot down.
func (h *BotHandler) HandleUpdate(ctx context.Context, _ *bot.Bot, update *models.Update) {
	defer func() {
		if r := recover(); r != nil {
			h.logger.Error("panic while handling update", "panic", r)
			if update.Message != nil {
				h.sendText(ctx, update.Message.Chat.ID, h.localizer.MustLocalize(locale.ErrorGeneric))
			}
		}
	}()

	switch {
	case update.CallbackQuery != nil:
		h.handleCallback(ctx, update.CallbackQuery)
	case update.Message != nil:
		h.handleMessage(ctx, update)
	}
}

// isAdmin checks if a user ID is in the admin list
func (h *BotHandler) isAdmin(userID int64) bool {
	return h.config.IsAdmin(userID)
}

// requireAdmin checks admin rights and reports the refusal to the chat
func (h *BotHandler) requireAdmin(ctx context.Context, userID, chatID int64) bool {
	if h.isAdmin(userID) {
		return true
	}
	h.logger.Warn("unauthorized admin command attempt", "user_id", userID)
	h.sendText(ctx, chatID, h.localizer.MustLocalize(locale.ErrorNotAdmin))
	return false
}

func (h *BotHandler) handleMessage(ctx context.Context, update *models.Update) {
	msg := update.Message
	if msg.From == nil {
		return
	}

	userID := msg.From.ID
	chatID := msg.Chat.ID

	unlock := h.locks.lock(userID)
	defer unlock()

	if len(msg.Photo) > 0 {
		h.handlePhotoMessage(ctx, msg)
		return
	}

	text := strings.TrimSpace(msg.Text)
	if text == "" {
		h.sendText(ctx, chatID, h.localizer.MustLocalize(locale.ErrorUnsupportedMessage))
		return
	}

	command := strings.ToLower(text)

	// Form-start commands replace any flow the user has in progress
	switch command {
	case CmdAddParticipant:
		if !h.requireAdmin(ctx, userID, chatID) {
			return
		}
		if err := h.participantFSM.Start(ctx, userID, chatID); err != nil {
			h.sendText(ctx, chatID, h.localizer.MustLocalize(locale.ErrorGeneric))
		}
		return
	case CmdAddChannel:
		if !h.requireAdmin(ctx, userID, chatID) {
			return
		}
		if err := h.channelFSM.Start(ctx, userID, chatID); err != nil {
			h.sendText(ctx, chatID, h.localizer.MustLocalize(locale.ErrorGeneric))
		}
		return
	}

	// Flows in progress consume the message before command matching
	if ok, err := h.participantFSM.HasSession(ctx, userID); err == nil && ok {
		if err := h.participantFSM.HandleMessage(ctx, update); err != nil {
			h.logger.Error("participant flow failed", "user_id", userID, "error", err)
			h.sendText(ctx, chatID, h.localizer.MustLocalize(locale.ErrorGeneric))
		}
		return
	}
	if ok, err := h.channelFSM.HasSession(ctx, userID); err == nil && ok {
		if err := h.channelFSM.HandleMessage(ctx, update); err != nil {
			h.logger.Error("channel flow failed", "user_id", userID, "error", err)
			h.sendText(ctx, chatID, h.localizer.MustLocalize(locale.ErrorGeneric))
		}
		return
	}

	if strings.HasPrefix(command, CmdStart) {
		h.handleStart(ctx, msg)
		return
	}

	switch command {
	case CmdHelp:
		h.handleHelp(ctx, userID, chatID)
	case CmdVote:
		h.handleChooseParticipant(ctx, userID, chatID, ActionVote)
	case CmdRevoke:
		h.handleChooseParticipant(ctx, userID, chatID, ActionRevoke)
	case CmdLeaderboard:
		h.handleLeaderboard(ctx, chatID)
	case CmdListParticipants:
		h.handleListParticipants(ctx, chatID)
	case CmdRemoveParticipant:
		if !h.requireAdmin(ctx, userID, chatID) {
			return
		}
		h.handleChooseForRemoval(ctx, chatID)
	case CmdPost:
		if !h.requireAdmin(ctx, userID, chatID) {
			return
		}
		h.handlePost(ctx, chatID)
	case CmdReset:
		if !h.requireAdmin(ctx, userID, chatID) {
			return
		}
		h.sendTextWithKeyboard(ctx, chatID, h.localizer.MustLocalize(locale.ResetConfirmPrompt), resetConfirmKeyboard())
	case ConfirmResetYes:
		if !h.requireAdmin(ctx, userID, chatID) {
			return
		}
		h.handleResetConfirmed(ctx, userID, chatID)
	case ConfirmResetNo:
		h.sendTextWithKeyboard(ctx, chatID, h.localizer.MustLocalize(locale.ResetCancelled), mainKeyboard(h.isAdmin(userID)))
	default:
		h.sendTextWithKeyboard(ctx, chatID, h.localizer.MustLocalize(locale.ErrorUnknownCommand), mainKeyboard(h.isAdmin(userID)))
	}
}

func (h *BotHandler) handleStart(ctx context.Context, msg *models.Message) {
	userID := msg.From.ID
	name := msg.From.FirstName
	if name == "" {
		name = msg.From.Username
	}
	if name == "" {
		name = strconv.FormatInt(userID, 10)
	}

	welcomeKey := locale.StartWelcome
	if h.isAdmin(userID) {
		welcomeKey = locale.StartWelcomeAdmin
	}

	h.sendTextWithKeyboard(ctx, msg.Chat.ID,
		h.localizer.MustLocalizeWithTemplate(welcomeKey, name),
		mainKeyboard(h.isAdmin(userID)))
}

func (h *BotHandler) handleHelp(ctx context.Context, userID, chatID int64) {
	text := h.localizer.MustLocalize(locale.HelpText)
	if h.isAdmin(userID) {
		text += "\n\n" + h.localizer.MustLocalize(locale.HelpTextAdmin)
	}
	h.sendTextWithKeyboard(ctx, chatID, text, mainKeyboard(h.isAdmin(userID)))
}

// handleChooseParticipant shows the participant list with vote or
// revoke buttons, after the membership gate
func (h *BotHandler) handleChooseParticipant(ctx context.Context, userID, chatID int64, action string) {
	eligible, channel, err := h.gate.Eligible(ctx, userID)
	if err != nil {
		h.logger.Error("membership gate failed", "user_id", userID, "error", err)
		h.sendText(ctx, chatID, h.localizer.MustLocalize(locale.ErrorGeneric))
		return
	}
	if !eligible {
		h.sendJoinPrompt(ctx, chatID, channel, "")
		return
	}

	participants, err := h.participants.GetAllParticipants(ctx)
	if err != nil {
		h.logger.Error("failed to list participants", "error", err)
		h.sendText(ctx, chatID, h.localizer.MustLocalize(locale.ErrorGeneric))
		return
	}
	if len(participants) == 0 {
		h.sendText(ctx, chatID, h.localizer.MustLocalize(locale.NoParticipants))
		return
	}

	_, err = h.bot.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:      chatID,
		Text:        h.localizer.MustLocalize(locale.ChooseParticipantPrompt),
		ReplyMarkup: participantListKeyboard(participants, action),
	})
	if err != nil {
		h.logger.Error("failed to send participant list", "error", err)
	}
}

func (h *BotHandler) handleChooseForRemoval(ctx context.Context, chatID int64) {
	participants, err := h.participants.GetAllParticipants(ctx)
	if err != nil {
		h.logger.Error("failed to list participants", "error", err)
		h.sendText(ctx, chatID, h.localizer.MustLocalize(locale.ErrorGeneric))
		return
	}
	if len(participants) == 0 {
		h.sendText(ctx, chatID, h.localizer.MustLocalize(locale.NoParticipants))
		return
	}

	_, err = h.bot.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:      chatID,
		Text:        h.localizer.MustLocalize(locale.DeleteChoosePrompt),
		ReplyMarkup: participantListKeyboard(participants, ActionDelete),
	})
	if err != nil {
		h.logger.Error("failed to send removal list", "error", err)
	}
}

func (h *BotHandler) handleLeaderboard(ctx context.Context, chatID int64) {
	leaderboard, err := h.voting.Leaderboard(ctx)
	if err != nil {
		h.logger.Error("failed to load leaderboard", "error", err)
		h.sendText(ctx, chatID, h.localizer.MustLocalize(locale.ErrorGeneric))
		return
	}
	if len(leaderboard) == 0 {
		h.sendText(ctx, chatID, h.localizer.MustLocalize(locale.NoParticipants))
		return
	}

	var sb strings.Builder
	sb.WriteString(h.localizer.MustLocalize(locale.LeaderboardTitle))
	for i, p := range leaderboard {
		sb.WriteString("\n")
		sb.WriteString(h.localizer.MustLocalizeWithTemplate(locale.LeaderboardRow,
			strconv.Itoa(i+1), p.FullName, formatVotes(p.VoteCount)))
	}

	h.sendText(ctx, chatID, sb.String())
}

func (h *BotHandler) handleListParticipants(ctx context.Context, chatID int64) {
	participants, err := h.participants.GetAllParticipants(ctx)
	if err != nil {
		h.logger.Error("failed to list participants", "error", err)
		h.sendText(ctx, chatID, h.localizer.MustLocalize(locale.ErrorGeneric))
		return
	}
	if len(participants) == 0 {
		h.sendText(ctx, chatID, h.localizer.MustLocalize(locale.NoParticipants))
		return
	}

	for _, p := range participants {
		if err := h.sendParticipantCard(ctx, chatID, p); err != nil {
			h.logger.Error("failed to send participant card", "participant_id", p.ID, "error", err)
		}
	}
}

// handlePost publishes all participant cards to the required channel
func (h *BotHandler) handlePost(ctx context.Context, adminChatID int64) {
	channel, err := h.channels.GetRequiredChannel(ctx)
	if err != nil {
		h.logger.Error("failed to load required channel", "error", err)
		h.sendText(ctx, adminChatID, h.localizer.MustLocalize(locale.ErrorGeneric))
		return
	}
	if channel == nil {
		h.sendText(ctx, adminChatID, h.localizer.MustLocalize(locale.NoChannelConfigured))
		return
	}

	participants, err := h.participants.GetAllParticipants(ctx)
	if err != nil {
		h.logger.Error("failed to list participants", "error", err)
		h.sendText(ctx, adminChatID, h.localizer.MustLocalize(locale.ErrorGeneric))
		return
	}
	if len(participants) == 0 {
		h.sendText(ctx, adminChatID, h.localizer.MustLocalize(locale.NoParticipants))
		return
	}

	failed := false
	for _, p := range participants {
		if err := h.sendParticipantCard(ctx, channel.Handle, p); err != nil {
			h.logger.Error("failed to post participant", "participant_id", p.ID, "channel", channel.Handle, "error", err)
			failed = true
		}
	}

	if failed {
		h.sendText(ctx, adminChatID, h.localizer.MustLocalize(locale.PostFailed))
		return
	}
	h.sendText(ctx, adminChatID, h.localizer.MustLocalize(locale.PostDone))
}

// handleResetConfirmed wipes all channels and votes after the admin confirmed
func (h *BotHandler) handleResetConfirmed(ctx context.Context, userID, chatID int64) {
	if err := h.voting.ResetVotes(ctx); err != nil {
		h.logger.Error("failed to reset votes", "error", err)
		h.sendText(ctx, chatID, h.localizer.MustLocalize(locale.ResetFailed))
		return
	}
	if err := h.channels.DeleteAllChannels(ctx); err != nil {
		h.logger.Error("failed to delete channels", "error", err)
		h.sendText(ctx, chatID, h.localizer.MustLocalize(locale.ResetFailed))
		return
	}

	h.logger.Info("channels and votes wiped", "admin_id", userID)
	h.sendTextWithKeyboard(ctx, chatID, h.localizer.MustLocalize(locale.ResetDone), mainKeyboard(true))
}

// handlePhotoMessage feeds a photo into the participant flow, or
// rejects it when no flow expects one
func (h *BotHandler) handlePhotoMessage(ctx context.Context, msg *models.Message) {
	userID := msg.From.ID
	chatID := msg.Chat.ID

	ok, err := h.participantFSM.HasSession(ctx, userID)
	if err != nil {
		h.logger.Error("failed to check session", "user_id", userID, "error", err)
		h.sendText(ctx, chatID, h.localizer.MustLocalize(locale.ErrorGeneric))
		return
	}
	if !ok {
		h.sendText(ctx, chatID, h.localizer.MustLocalize(locale.FormPhotoOutsideFlow))
		return
	}

	data, err := h.downloadPhoto(ctx, msg.Photo)
	if err != nil {
		h.logger.Error("failed to download photo", "user_id", userID, "error", err)
		h.sendText(ctx, chatID, h.localizer.MustLocalize(locale.FormUploadFailed))
		return
	}

	if err := h.participantFSM.HandlePhoto(ctx, userID, chatID, data); err != nil {
		h.logger.Error("participant flow failed", "user_id", userID, "error", err)
		h.sendText(ctx, chatID, h.localizer.MustLocalize(locale.ErrorGeneric))
	}
}

// downloadPhoto fetches the largest resolution of an uploaded photo
func (h *BotHandler) downloadPhoto(ctx context.Context, photos []models.PhotoSize) ([]byte, error) {
	if len(photos) == 0 {
		return nil, fmt.Errorf("no photo sizes in message")
	}

	// Sizes come smallest first
	fileID := photos[len(photos)-1].FileID

	file, err := h.files.GetFile(ctx, &bot.GetFileParams{FileID: fileID})
	if err != nil {
		return nil, fmt.Errorf("failed to get file info: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, h.files.FileDownloadLink(file), nil)
	if err != nil {
		return nil, err
	}

	resp, err := h.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to download file: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d downloading file", resp.StatusCode)
	}

	return io.ReadAll(io.LimitReader(resp.Body, maxPhotoSize))
}

func (h *BotHandler) handleCallback(ctx context.Context, callback *models.CallbackQuery) {
	userID := callback.From.ID

	unlock := h.locks.lock(userID)
	defer unlock()

	action, nested, participantID, err := decodeCallback(callback.Data)
	if err != nil {
		h.logger.Warn("malformed callback data", "user_id", userID, "data", callback.Data)
		h.answerCallback(ctx, callback.ID, h.localizer.MustLocalize(locale.UnknownCallback), true)
		return
	}

	switch action {
	case ActionVote, ActionRevoke:
		h.handleVoteAction(ctx, callback, action, participantID)
	case ActionCheck:
		h.handleMembershipCheck(ctx, callback, nested, participantID)
	case ActionDelete:
		if !h.isAdmin(userID) {
			h.answerCallback(ctx, callback.ID, h.localizer.MustLocalize(locale.ErrorNotAdmin), true)
			return
		}
		h.handleDeleteAction(ctx, callback, participantID)
	default:
		h.answerCallback(ctx, callback.ID, h.localizer.MustLocalize(locale.UnknownCallback), true)
	}
}

// handleVoteAction runs a vote or revoke button press through the
// membership gate, then applies it
func (h *BotHandler) handleVoteAction(ctx context.Context, callback *models.CallbackQuery, action string, participantID int64) {
	userID := callback.From.ID

	eligible, channel, err := h.gate.Eligible(ctx, userID)
	if err != nil {
		h.logger.Error("membership gate failed", "user_id", userID, "error", err)
		h.answerCallback(ctx, callback.ID, h.localizer.MustLocalize(locale.ErrorGeneric), true)
		return
	}
	if !eligible {
		if channel == nil {
			h.answerCallback(ctx, callback.ID, h.localizer.MustLocalize(locale.NoChannelConfigured), true)
			return
		}
		// Point the user at the channel; the check button replays the action
		h.sendJoinPrompt(ctx, callbackChatID(callback), channel, encodeCheckCallback(action, participantID))
		h.answerCallback(ctx, callback.ID, h.localizer.MustLocalizeWithTemplate(locale.MembershipAlert, channel.Name), true)
		return
	}

	h.performVoteAction(ctx, callback, action, participantID)
}

// handleMembershipCheck re-validates the gate after the user claims to
// have joined, then replays the original vote or revoke
func (h *BotHandler) handleMembershipCheck(ctx context.Context, callback *models.CallbackQuery, nested string, participantID int64) {
	if nested != ActionVote && nested != ActionRevoke {
		h.answerCallback(ctx, callback.ID, h.localizer.MustLocalize(locale.UnknownCallback), true)
		return
	}

	userID := callback.From.ID
	eligible, channel, err := h.gate.Eligible(ctx, userID)
	if err != nil {
		h.logger.Error("membership gate failed", "user_id", userID, "error", err)
		h.answerCallback(ctx, callback.ID, h.localizer.MustLocalize(locale.ErrorGeneric), true)
		return
	}
	if !eligible {
		if channel == nil {
			h.answerCallback(ctx, callback.ID, h.localizer.MustLocalize(locale.NoChannelConfigured), true)
			return
		}
		h.answerCallback(ctx, callback.ID, h.localizer.MustLocalizeWithTemplate(locale.MembershipAlert, channel.Name), true)
		return
	}

	h.performVoteAction(ctx, callback, nested, participantID)
}

func (h *BotHandler) performVoteAction(ctx context.Context, callback *models.CallbackQuery, action string, participantID int64) {
	userID := callback.From.ID

	switch action {
	case ActionVote:
		p, err := h.voting.Vote(ctx, userID, participantID)
		switch {
		case errors.Is(err, domain.ErrAlreadyVoted):
			h.answerCallback(ctx, callback.ID, h.localizer.MustLocalize(locale.VoteAlreadyVoted), true)
		case errors.Is(err, domain.ErrParticipantNotFound):
			h.answerCallback(ctx, callback.ID, h.localizer.MustLocalize(locale.ParticipantNotFound), true)
		case err != nil:
			h.logger.Error("vote failed", "user_id", userID, "participant_id", participantID, "error", err)
			h.answerCallback(ctx, callback.ID, h.localizer.MustLocalize(locale.ErrorGeneric), true)
		default:
			h.answerCallback(ctx, callback.ID, h.localizer.MustLocalizeWithTemplate(locale.VoteAccepted, p.FullName), true)
		}
	case ActionRevoke:
		p, err := h.voting.Revoke(ctx, userID, participantID)
		switch {
		case errors.Is(err, domain.ErrNoSuchVote):
			h.answerCallback(ctx, callback.ID, h.localizer.MustLocalize(locale.VoteNotFound), true)
		case errors.Is(err, domain.ErrParticipantNotFound):
			h.answerCallback(ctx, callback.ID, h.localizer.MustLocalize(locale.ParticipantNotFound), true)
		case err != nil:
			h.logger.Error("revoke failed", "user_id", userID, "participant_id", participantID, "error", err)
			h.answerCallback(ctx, callback.ID, h.localizer.MustLocalize(locale.ErrorGeneric), true)
		default:
			h.answerCallback(ctx, callback.ID, h.localizer.MustLocalizeWithTemplate(locale.VoteRevoked, p.FullName), true)
		}
	}
}

// handleDeleteAction removes a participant together with its stored image
func (h *BotHandler) handleDeleteAction(ctx context.Context, callback *models.CallbackQuery, participantID int64) {
	p, err := h.participants.GetParticipant(ctx, participantID)
	if err != nil {
		h.logger.Error("failed to load participant", "participant_id", participantID, "error", err)
		h.answerCallback(ctx, callback.ID, h.localizer.MustLocalize(locale.ErrorGeneric), true)
		return
	}
	if p == nil {
		h.answerCallback(ctx, callback.ID, h.localizer.MustLocalize(locale.ParticipantNotFound), true)
		return
	}

	if p.ImageKey != "" {
		deleteCtx, cancel := context.WithTimeout(ctx, h.config.UploadTimeout)
		if err := h.media.Delete(deleteCtx, p.ImageKey); err != nil {
			h.logger.Warn("failed to delete participant image", "key", p.ImageKey, "error", err)
		}
		cancel()
	}

	if err := h.participants.DeleteParticipant(ctx, participantID); err != nil {
		h.logger.Error("failed to delete participant", "participant_id", participantID, "error", err)
		h.answerCallback(ctx, callback.ID, h.localizer.MustLocalize(locale.ParticipantDeleteFailed), true)
		return
	}

	h.logger.Info("participant deleted", "participant_id", participantID, "admin_id", callback.From.ID)
	h.answerCallback(ctx, callback.ID, h.localizer.MustLocalizeWithTemplate(locale.ParticipantDeleted, p.FullName), true)
	h.sendText(ctx, callbackChatID(callback), h.localizer.MustLocalizeWithTemplate(locale.ParticipantDeleted, p.FullName))
}

// sendParticipantCard sends a participant as a photo with caption and
// vote buttons, falling back to plain text when the photo fails
func (h *BotHandler) sendParticipantCard(ctx context.Context, chatID any, p *domain.Participant) error {
	caption := h.localizer.MustLocalizeWithTemplate(locale.ParticipantCard,
		p.FullName, p.Grade, p.Description, formatVotes(p.VoteCount))
	keyboard := participantCardKeyboard(p, h.localizer)

	if p.ImageURL != "" {
		_, err := h.bot.SendPhoto(ctx, &bot.SendPhotoParams{
			ChatID:      chatID,
			Photo:       &models.InputFileString{Data: p.ImageURL},
			Caption:     caption,
			ReplyMarkup: keyboard,
		})
		if err == nil {
			return nil
		}
		h.logger.Warn("photo card failed, falling back to text", "participant_id", p.ID, "error", err)
	}

	text := caption
	if p.VideoURL != "" && !isValidURL(p.VideoURL) {
		text += "\n" + h.localizer.MustLocalizeWithTemplate(locale.VideoLinkLine, p.VideoURL)
	}

	_, err := h.bot.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:      chatID,
		Text:        text,
		ReplyMarkup: keyboard,
	})
	return err
}

// sendJoinPrompt asks the user to join the gate channel. checkData, when
// set, adds a button that replays the blocked action after joining.
func (h *BotHandler) sendJoinPrompt(ctx context.Context, chatID int64, channel *domain.Channel, checkData string) {
	if channel == nil {
		h.sendText(ctx, chatID, h.localizer.MustLocalize(locale.NoChannelConfigured))
		return
	}

	rows := [][]models.InlineKeyboardButton{
		{{Text: h.localizer.MustLocalize(locale.JoinChannelButton), URL: channel.Link()}},
	}
	if checkData != "" {
		rows = append(rows, []models.InlineKeyboardButton{
			{Text: h.localizer.MustLocalize(locale.CheckMembershipButton), CallbackData: checkData},
		})
	}

	_, err := h.bot.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:      chatID,
		Text:        h.localizer.MustLocalizeWithTemplate(locale.JoinChannelPrompt, channel.Name),
		ReplyMarkup: &models.InlineKeyboardMarkup{InlineKeyboard: rows},
	})
	if err != nil {
		h.logger.Error("failed to send join prompt", "chat_id", chatID, "error", err)
	}
}

func (h *BotHandler) answerCallback(ctx context.Context, callbackID, text string, alert bool) {
	_, err := h.bot.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{
		CallbackQueryID: callbackID,
		Text:            text,
		ShowAlert:       alert,
	})
	if err != nil {
		h.logger.Error("failed to answer callback", "error", err)
	}
}

func (h *BotHandler) sendText(ctx context.Context, chatID any, text string) {
	_, err := h.bot.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text:   text,
	})
	if err != nil {
		h.logger.Error("failed to send message", "error", err)
	}
}

func (h *BotHandler) sendTextWithKeyboard(ctx context.Context, chatID int64, text string, keyboard models.ReplyMarkup) {
	_, err := h.bot.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:      chatID,
		Text:        text,
		ReplyMarkup: keyboard,
	})
	if err != nil {
		h.logger.Error("failed to send message", "error", err)
	}
}

// callbackChatID resolves the chat a callback originated from, falling
// back to the user's private chat when the message is inaccessible
func callbackChatID(callback *models.CallbackQuery) int64 {
	if callback.Message.Message != nil {
		return callback.Message.Message.Chat.ID
	}
	return callback.From.ID
}
