package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tgbot "github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/joho/godotenv"
	_ "modernc.org/sqlite"

	"github.com/ad/telegram-contest-bot/internal/bot"
	"github.com/ad/telegram-contest-bot/internal/config"
	"github.com/ad/telegram-contest-bot/internal/domain"
	"github.com/ad/telegram-contest-bot/internal/locale"
	"github.com/ad/telegram-contest-bot/internal/logger"
	"github.com/ad/telegram-contest-bot/internal/media"
	"github.com/ad/telegram-contest-bot/internal/storage"
)

func main() {
	// Load .env file (ignore error if file doesn't exist)
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(logger.ParseLevel(cfg.LogLevel))
	log.Info("Starting contest voting bot", "log_level", cfg.LogLevel, "locale", cfg.Locale)

	localizer, err := locale.NewLocalizer(locale.NewLocale(cfg.Locale))
	if err != nil {
		log.Error("Failed to initialize localizer", "error", err)
		os.Exit(1)
	}

	db, err := sql.Open("sqlite", cfg.DatabasePath)
	if err != nil {
		log.Error("Failed to open database", "error", err)
		os.Exit(1)
	}
	defer func() { _ = db.Close() }()

	// Enable WAL mode for better concurrency
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		log.Error("Failed to enable WAL mode", "error", err)
		os.Exit(1)
	}

	log.Info("Database opened", "path", cfg.DatabasePath)

	dbQueue := storage.NewDBQueue(db)
	defer dbQueue.Close()

	if err := storage.InitSchema(dbQueue); err != nil {
		log.Error("Failed to initialize database schema", "error", err)
		os.Exit(1)
	}

	if err := storage.RunMigrations(dbQueue); err != nil {
		log.Error("Failed to run database migrations", "error", err)
		os.Exit(1)
	}
	log.Info("Database schema ready")

	participantRepo := storage.NewParticipantRepository(dbQueue)
	channelRepo := storage.NewChannelRepository(dbQueue)
	voteRepo := storage.NewVoteRepository(dbQueue)

	mediaStore := media.NewFTPStore(cfg.FTPHost, cfg.FTPPort, cfg.FTPUser, cfg.FTPPassword, cfg.MediaBaseURL, cfg.MediaDir)
	defer func() { _ = mediaStore.Close() }()

	votingService := domain.NewVotingService(participantRepo, voteRepo, log)

	fsmStorage := storage.NewFSMStorage(dbQueue, log)
	if err := fsmStorage.CleanupStale(context.Background()); err != nil {
		log.Warn("Failed to cleanup stale sessions", "error", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Handler is created after the bot, the closure picks it up once wired
	var handler *bot.BotHandler

	opts := []tgbot.Option{
		tgbot.WithDefaultHandler(func(ctx context.Context, b *tgbot.Bot, update *models.Update) {
			if handler != nil {
				handler.HandleUpdate(ctx, b, update)
			}
		}),
	}

	b, err := tgbot.New(cfg.TelegramToken, opts...)
	if err != nil {
		log.Error("Failed to create bot", "error", err)
		os.Exit(1)
	}

	gate := domain.NewMembershipGate(channelRepo, b, cfg.MembershipTimeout, log)

	participantFSM := bot.NewParticipantFSM(fsmStorage, b, participantRepo, mediaStore, localizer, cfg.UploadTimeout, log)
	channelFSM := bot.NewChannelFSM(fsmStorage, b, channelRepo, localizer, log)

	handler = bot.NewBotHandler(b, b, gate, votingService, participantRepo, channelRepo, mediaStore,
		participantFSM, channelFSM, cfg, log, localizer)

	log.Info("Bot starting", "admins", len(cfg.AdminUserIDs))

	go b.Start(ctx)

	<-ctx.Done()
	log.Info("Shutting down")
}
