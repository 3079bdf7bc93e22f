package main

import (
	"context"
	"os"
	"time"

	"dxwatch/internal/bot"
	"dxwatch/internal/config"
	"dxwatch/internal/provider"
	"dxwatch/pkg/tracing"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	logger := log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: true})

	ctx := context.Background()
	tp, tracer, err := tracing.InitTracer(ctx)
	if err != nil {
		logger.Fatalf("init tracing: %v", err)
	}
	defer func() { _ = tp.Shutdown(ctx) }()

	feedClient := provider.NewDXFeedProvider(tracer, cfg.APIURL,
		time.Duration(cfg.RequestTimeoutSecs)*time.Second)

	b, err := bot.NewTelegramBot(cfg.TelegramBotToken, feedClient)
	if err != nil {
		logger.Fatalf("telegram bot: %v", err)
	}
	if b == nil {
		logger.Fatal("TELEGRAM_BOT_TOKEN not set")
	}

	logger.Info("dx-bot started")
	b.Start()
}
