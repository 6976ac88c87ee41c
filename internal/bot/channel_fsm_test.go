package bot

import (
	"context"
	"testing"

	"github.com/ad/telegram-contest-bot/internal/logger"
	"github.com/ad/telegram-contest-bot/internal/storage"
)

func newTestChannelFSM(t *testing.T) (*ChannelFSM, *fakeMessenger, *storage.ChannelRepository) {
	t.Helper()

	queue, fsmStorage := newTestStorage(t)
	repo := storage.NewChannelRepository(queue)
	messenger := &fakeMessenger{}

	fsm := NewChannelFSM(fsmStorage, messenger, repo, testLocalizer(t), logger.New(logger.ERROR))
	return fsm, messenger, repo
}

func TestChannelRegistrationFlow(t *testing.T) {
	fsm, messenger, repo := newTestChannelFSM(t)
	ctx := context.Background()
	const userID, chatID int64 = 1, 100

	if err := fsm.Start(ctx, userID, chatID); err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	// Bare username gets the @ prefix
	if err := fsm.HandleMessage(ctx, textMessage(userID, chatID, "school_news")); err != nil {
		t.Fatalf("Handle step failed: %v", err)
	}
	if err := fsm.HandleMessage(ctx, textMessage(userID, chatID, "School News")); err != nil {
		t.Fatalf("Name step failed: %v", err)
	}

	if ok, _ := fsm.HasSession(ctx, userID); ok {
		t.Error("Session should be cleared after completion")
	}

	channels, err := repo.GetAllChannels(ctx)
	if err != nil {
		t.Fatalf("Failed to list channels: %v", err)
	}
	if len(channels) != 1 {
		t.Fatalf("Expected one channel, got %d", len(channels))
	}
	if channels[0].Handle != "@school_news" {
		t.Errorf("Handle not normalized: %q", channels[0].Handle)
	}
	if channels[0].Name != "School News" {
		t.Errorf("Name wrong: %q", channels[0].Name)
	}
	if !channels[0].Required {
		t.Error("First channel must be required")
	}
	if len(messenger.messages) == 0 {
		t.Fatal("Expected a confirmation message")
	}
}

func TestChannelEmptyHandleReprompts(t *testing.T) {
	fsm, _, repo := newTestChannelFSM(t)
	ctx := context.Background()
	const userID, chatID int64 = 2, 200

	_ = fsm.Start(ctx, userID, chatID)
	if err := fsm.HandleMessage(ctx, textMessage(userID, chatID, "   ")); err != nil {
		t.Fatalf("Empty handle handling failed: %v", err)
	}

	if ok, _ := fsm.HasSession(ctx, userID); !ok {
		t.Error("Session must survive empty input")
	}
	channels, _ := repo.GetAllChannels(ctx)
	if len(channels) != 0 {
		t.Error("No channel should be created yet")
	}
}
