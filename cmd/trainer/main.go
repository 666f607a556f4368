package main

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"greek-vocab-trainer/internal/application/usecases"
	"greek-vocab-trainer/internal/config"
	"greek-vocab-trainer/internal/domain/quiz"
	"greek-vocab-trainer/internal/domain/vocabulary"
	"greek-vocab-trainer/internal/infrastructure/filesystem"
	"greek-vocab-trainer/internal/infrastructure/persistence"
	"greek-vocab-trainer/internal/infrastructure/telegram"
	"greek-vocab-trainer/internal/interfaces/console"
	"greek-vocab-trainer/internal/interfaces/menu"
	tgui "greek-vocab-trainer/internal/interfaces/telegram"
)

func setupLogger(env string, cfg config.LogConfig) (*zap.Logger, error) {
	var zapCfg zap.Config
	if env == "development" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zap.ParseAtomicLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("failed to parse log level: %w", err)
	}
	zapCfg.Level = level
	zapCfg.OutputPaths = cfg.Output
	zapCfg.ErrorOutputPaths = cfg.Output

	return zapCfg.Build()
}

func setupRepository(cfg config.StorageConfig, logger *zap.Logger) (vocabulary.Repository, func(), error) {
	switch cfg.Backend {
	case config.BackendSQLite:
		db, err := persistence.NewSQLiteDB(cfg.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		return persistence.NewVocabularyRepository(db, logger), func() { db.Close() }, nil
	default:
		return filesystem.NewVocabularyRepository(cfg.Path, logger), func() {}, nil
	}
}

func setupDialogs(ctx context.Context, cfg *config.Config, logger *zap.Logger) (menu.Dialogs, func(), error) {
	if cfg.UI.Mode != config.UIModeTelegram {
		return console.NewPrompter(os.Stdin, os.Stdout), func() {}, nil
	}

	bot, err := telegram.NewBot(cfg.Telegram.Token, logger)
	if err != nil {
		return nil, nil, err
	}

	if err := bot.SetupCommands(); err != nil {
		logger.Warn("failed to setup bot commands", zap.Error(err))
	}

	prompter := tgui.NewPrompter(bot, bot.GetUpdatesChan(), cfg.Telegram.ChatID, logger)
	if prompter.ChatID() == 0 {
		logger.Info("waiting for the first chat to write")
		if err := prompter.WaitForChat(ctx); err != nil {
			bot.StopReceivingUpdates()
			return nil, nil, fmt.Errorf("failed to bind chat: %w", err)
		}
	}

	return prompter, bot.StopReceivingUpdates, nil
}

func main() {
	cfg, err := config.Init()
	if err != nil {
		log.Fatal("failed load config " + err.Error())
	}

	logger, err := setupLogger(cfg.Env, cfg.Log)
	if err != nil {
		log.Fatal("failed setup logger " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	repo, closeRepo, err := setupRepository(cfg.Storage, logger)
	if err != nil {
		logger.Fatal("failed init storage", zap.Error(err))
	}
	defer closeRepo()

	dialogs, closeDialogs, err := setupDialogs(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("failed init ui", zap.Error(err))
	}
	defer closeDialogs()

	shuffle := quiz.Shuffle(rand.New(rand.NewSource(time.Now().UnixNano())))

	vocab := usecases.NewVocabularyUseCase(repo, filesystem.NewTransfer(), logger)
	engine := quiz.NewEngine(dialogs, shuffle, logger)
	quizUseCase := usecases.NewQuizUseCase(vocab, engine, shuffle, logger)

	logger.Info("starting vocabulary trainer",
		zap.String("backend", cfg.Storage.Backend),
		zap.String("ui", cfg.UI.Mode))

	if err := menu.New(dialogs, vocab, quizUseCase, cfg.Quiz.Categories, logger).Run(ctx); err != nil {
		logger.Info("trainer stopped", zap.Error(err))
	}
}
