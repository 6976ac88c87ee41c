package bot

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	tgbot "github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	_ "modernc.org/sqlite"

	"github.com/ad/telegram-contest-bot/internal/locale"
	"github.com/ad/telegram-contest-bot/internal/logger"
	"github.com/ad/telegram-contest-bot/internal/storage"
)

// fakeMessenger records outbound messages instead of calling Telegram
type fakeMessenger struct {
	messages  []*tgbot.SendMessageParams
	photos    []*tgbot.SendPhotoParams
	callbacks []*tgbot.AnswerCallbackQueryParams
}

func (f *fakeMessenger) SendMessage(ctx context.Context, params *tgbot.SendMessageParams) (*models.Message, error) {
	f.messages = append(f.messages, params)
	return &models.Message{ID: len(f.messages)}, nil
}

func (f *fakeMessenger) SendPhoto(ctx context.Context, params *tgbot.SendPhotoParams) (*models.Message, error) {
	f.photos = append(f.photos, params)
	return &models.Message{ID: len(f.photos)}, nil
}

func (f *fakeMessenger) AnswerCallbackQuery(ctx context.Context, params *tgbot.AnswerCallbackQueryParams) (bool, error) {
	f.callbacks = append(f.callbacks, params)
	return true, nil
}

func (f *fakeMessenger) lastMessage() *tgbot.SendMessageParams {
	if len(f.messages) == 0 {
		return nil
	}
	return f.messages[len(f.messages)-1]
}

// fakeMediaStore keeps uploads in memory
type fakeMediaStore struct {
	uploads map[string][]byte
	deleted []string
	failing bool
}

func newFakeMediaStore() *fakeMediaStore {
	return &fakeMediaStore{uploads: make(map[string][]byte)}
}

func (f *fakeMediaStore) Upload(ctx context.Context, data []byte, key string) (string, error) {
	if f.failing {
		return "", errors.New("storage unavailable")
	}
	f.uploads[key] = data
	return "https://media.example.com/participants/" + key, nil
}

func (f *fakeMediaStore) Delete(ctx context.Context, key string) error {
	f.deleted = append(f.deleted, key)
	delete(f.uploads, key)
	return nil
}

// newTestStorage opens an in-memory database with the schema applied
func newTestStorage(t *testing.T) (*storage.DBQueue, *storage.FSMStorage) {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	queue := storage.NewDBQueue(db)
	t.Cleanup(queue.Close)

	if err := storage.InitSchema(queue); err != nil {
		t.Fatalf("Failed to initialize schema: %v", err)
	}
	if err := storage.RunMigrations(queue); err != nil {
		t.Fatalf("Failed to run migrations: %v", err)
	}

	return queue, storage.NewFSMStorage(queue, logger.New(logger.ERROR))
}

func testLocalizer(t *testing.T) locale.Localizer {
	t.Helper()
	localizer, err := locale.NewLocalizer(locale.NewLocale(locale.Uz))
	if err != nil {
		t.Fatalf("Failed to create localizer: %v", err)
	}
	return localizer
}

// textMessage builds an incoming text update
func textMessage(userID, chatID int64, text string) *models.Update {
	return &models.Update{
		Message: &models.Message{
			From: &models.User{ID: userID, FirstName: "Test"},
			Chat: models.Chat{ID: chatID},
			Text: text,
		},
	}
}
