package bot

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/ad/telegram-contest-bot/internal/domain"
	"github.com/ad/telegram-contest-bot/internal/locale"
	"github.com/ad/telegram-contest-bot/internal/storage"
)

// Participant registration states
const (
	StateParticipantAskName        = "participant_ask_name"
	StateParticipantAskGrade       = "participant_ask_grade"
	StateParticipantAskDescription = "participant_ask_description"
	StateParticipantAskImage       = "participant_ask_image"
	StateParticipantAskVideo       = "participant_ask_video"
)

// ParticipantFSM manages the step-by-step registration of a new contest
// participant: full name, grade, description, photo, video link.
type ParticipantFSM struct {
	storage       *storage.FSMStorage
	bot           messenger
	participants  domain.ParticipantRepository
	media         domain.MediaStore
	localizer     locale.Localizer
	uploadTimeout time.Duration
	logger        domain.Logger
}

// NewParticipantFSM creates a new FSM for participant registration
func NewParticipantFSM(
	fsmStorage *storage.FSMStorage,
	b messenger,
	participants domain.ParticipantRepository,
	media domain.MediaStore,
	localizer locale.Localizer,
	uploadTimeout time.Duration,
	logger domain.Logger,
) *ParticipantFSM {
	return &ParticipantFSM{
		storage:       fsmStorage,
		bot:           b,
		participants:  participants,
		media:         media,
		localizer:     localizer,
		uploadTimeout: uploadTimeout,
		logger:        logger,
	}
}

// Start opens a new registration session, replacing any flow the user
// had in progress
func (f *ParticipantFSM) Start(ctx context.Context, userID, chatID int64) error {
	formContext := &domain.ParticipantFormContext{ChatID: chatID}

	if err := f.storage.Set(ctx, userID, StateParticipantAskName, formContext.ToMap()); err != nil {
		f.logger.Error("failed to start participant registration", "user_id", userID, "error", err)
		return err
	}

	f.logger.Info("participant registration started", "user_id", userID)
	f.sendText(ctx, chatID, f.localizer.MustLocalize(locale.FormAskName))
	return nil
}

// HasSession checks if the user is in the middle of a registration flow
func (f *ParticipantFSM) HasSession(ctx context.Context, userID int64) (bool, error) {
	state, _, err := f.storage.Get(ctx, userID)
	if err != nil {
		if err == storage.ErrSessionNotFound {
			return false, nil
		}
		return false, err
	}

	switch state {
	case StateParticipantAskName, StateParticipantAskGrade, StateParticipantAskDescription,
		StateParticipantAskImage, StateParticipantAskVideo:
		return true, nil
	default:
		return false, nil
	}
}

// HandleMessage advances the flow with the user's text input
func (f *ParticipantFSM) HandleMessage(ctx context.Context, update *models.Update) error {
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

	formContext := &domain.ParticipantFormContext{}
	if err := formContext.FromMap(data); err != nil {
		f.logger.Error("corrupted registration context", "user_id", userID, "error", err)
		_ = f.storage.Delete(ctx, userID)
		f.sendText(ctx, chatID, f.localizer.MustLocalize(locale.ErrorGeneric))
		return nil
	}

	switch state {
	case StateParticipantAskName:
		return f.handleName(ctx, userID, chatID, text, formContext)
	case StateParticipantAskGrade:
		return f.handleGrade(ctx, userID, chatID, text, formContext)
	case StateParticipantAskDescription:
		return f.handleDescription(ctx, userID, chatID, text, formContext)
	case StateParticipantAskImage:
		// Text arrived where a photo is expected
		f.sendText(ctx, chatID, f.localizer.MustLocalize(locale.FormPhotoRequired))
		return nil
	case StateParticipantAskVideo:
		return f.handleVideo(ctx, userID, chatID, text, formContext)
	default:
		return nil
	}
}

// HandlePhoto consumes the participant photo at the image step. A photo
// sent at any other step re-prompts the current expectation.
func (f *ParticipantFSM) HandlePhoto(ctx context.Context, userID, chatID int64, data []byte) error {
	state, sessionData, err := f.storage.Get(ctx, userID)
	if err != nil {
		if err == storage.ErrSessionNotFound {
			return nil
		}
		return err
	}

	if state != StateParticipantAskImage {
		f.sendText(ctx, chatID, f.localizer.MustLocalize(f.promptFor(state)))
		return nil
	}

	formContext := &domain.ParticipantFormContext{}
	if err := formContext.FromMap(sessionData); err != nil {
		f.logger.Error("corrupted registration context", "user_id", userID, "error", err)
		_ = f.storage.Delete(ctx, userID)
		f.sendText(ctx, chatID, f.localizer.MustLocalize(locale.ErrorGeneric))
		return nil
	}

	key := imageKey(formContext.FullName)

	uploadCtx, cancel := context.WithTimeout(ctx, f.uploadTimeout)
	defer cancel()

	url, err := f.media.Upload(uploadCtx, data, key)
	if err != nil {
		f.logger.Error("image upload failed", "user_id", userID, "key", key, "error", err)
		f.sendText(ctx, chatID, f.localizer.MustLocalize(locale.FormUploadFailed))
		return nil
	}

	formContext.ImageURL = url
	formContext.ImageKey = key

	if err := f.storage.Set(ctx, userID, StateParticipantAskVideo, formContext.ToMap()); err != nil {
		return err
	}

	f.sendText(ctx, chatID, f.localizer.MustLocalize(locale.FormAskVideo))
	return nil
}

func (f *ParticipantFSM) handleName(ctx context.Context, userID, chatID int64, text string, formContext *domain.ParticipantFormContext) error {
	if text == "" {
		f.sendText(ctx, chatID, f.localizer.MustLocalize(locale.FormTextRequired))
		return nil
	}

	formContext.FullName = text
	if err := f.storage.Set(ctx, userID, StateParticipantAskGrade, formContext.ToMap()); err != nil {
		return err
	}

	f.sendText(ctx, chatID, f.localizer.MustLocalize(locale.FormAskGrade))
	return nil
}

func (f *ParticipantFSM) handleGrade(ctx context.Context, userID, chatID int64, text string, formContext *domain.ParticipantFormContext) error {
	if text == "" {
		f.sendText(ctx, chatID, f.localizer.MustLocalize(locale.FormTextRequired))
		return nil
	}

	formContext.Grade = text
	if err := f.storage.Set(ctx, userID, StateParticipantAskDescription, formContext.ToMap()); err != nil {
		return err
	}

	f.sendText(ctx, chatID, f.localizer.MustLocalize(locale.FormAskDescription))
	return nil
}

func (f *ParticipantFSM) handleDescription(ctx context.Context, userID, chatID int64, text string, formContext *domain.ParticipantFormContext) error {
	if text == "" {
		f.sendText(ctx, chatID, f.localizer.MustLocalize(locale.FormTextRequired))
		return nil
	}

	formContext.Description = text
	if err := f.storage.Set(ctx, userID, StateParticipantAskImage, formContext.ToMap()); err != nil {
		return err
	}

	f.sendText(ctx, chatID, f.localizer.MustLocalize(locale.FormAskImage))
	return nil
}

func (f *ParticipantFSM) handleVideo(ctx context.Context, userID, chatID int64, text string, formContext *domain.ParticipantFormContext) error {
	if !isValidURL(text) {
		f.sendText(ctx, chatID, f.localizer.MustLocalize(locale.FormInvalidURL))
		return nil
	}

	formContext.VideoURL = text
	return f.finishRegistration(ctx, userID, chatID, formContext)
}

// finishRegistration persists the collected participant. The session is
// cleared whether or not the insert succeeds; a failed insert also
// removes the already uploaded image.
func (f *ParticipantFSM) finishRegistration(ctx context.Context, userID, chatID int64, formContext *domain.ParticipantFormContext) error {
	defer func() {
		_ = f.storage.Delete(ctx, userID)
	}()

	participant := &domain.Participant{
		FullName:    formContext.FullName,
		Grade:       formContext.Grade,
		Description: formContext.Description,
		ImageURL:    formContext.ImageURL,
		ImageKey:    formContext.ImageKey,
		VideoURL:    formContext.VideoURL,
		CreatedAt:   time.Now(),
	}

	if err := participant.Validate(); err != nil {
		f.logger.Error("participant validation failed", "user_id", userID, "error", err)
		f.cleanupImage(ctx, formContext.ImageKey)
		f.sendText(ctx, chatID, f.localizer.MustLocalize(locale.ParticipantCreateFailed))
		return nil
	}

	if err := f.participants.CreateParticipant(ctx, participant); err != nil {
		f.logger.Error("failed to create participant", "user_id", userID, "error", err)
		f.cleanupImage(ctx, formContext.ImageKey)
		f.sendText(ctx, chatID, f.localizer.MustLocalize(locale.ParticipantCreateFailed))
		return nil
	}

	f.logger.Info("participant registered", "user_id", userID, "participant_id", participant.ID)
	f.sendText(ctx, chatID, f.localizer.MustLocalizeWithTemplate(locale.ParticipantCreated, participant.FullName, participant.Grade))
	return nil
}

// cleanupImage removes an orphaned upload after a failed registration
func (f *ParticipantFSM) cleanupImage(ctx context.Context, key string) {
	if key == "" {
		return
	}

	deleteCtx, cancel := context.WithTimeout(ctx, f.uploadTimeout)
	defer cancel()

	if err := f.media.Delete(deleteCtx, key); err != nil {
		f.logger.Warn("failed to delete orphaned image", "key", key, "error", err)
	}
}

// promptFor returns the message key re-prompting the given state
func (f *ParticipantFSM) promptFor(state string) string {
	switch state {
	case StateParticipantAskName:
		return locale.FormAskName
	case StateParticipantAskGrade:
		return locale.FormAskGrade
	case StateParticipantAskDescription:
		return locale.FormAskDescription
	case StateParticipantAskImage:
		return locale.FormAskImage
	case StateParticipantAskVideo:
		return locale.FormAskVideo
	default:
		return locale.ErrorGeneric
	}
}

func (f *ParticipantFSM) sendText(ctx context.Context, chatID int64, text string) {
	_, err := f.bot.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text:   text,
	})
	if err != nil {
		f.logger.Error("failed to send message", "chat_id", chatID, "error", err)
	}
}

// imageKey builds the storage key for a participant photo
func imageKey(fullName string) string {
	return fmt.Sprintf("%d_%s.jpg", time.Now().Unix(), slugify(fullName))
}

// slugify reduces a name to a safe file name fragment
func slugify(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ', r == '-', r == '_':
			b.WriteByte('_')
		}
	}
	if b.Len() == 0 {
		return "participant"
	}
	return b.String()
}
