package main

import (
	"context"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/time/rate"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/keshon/chatclick/internal/bot"
	"github.com/keshon/chatclick/internal/commands"
	"github.com/keshon/chatclick/internal/config"
	"github.com/keshon/chatclick/internal/storage"
	"github.com/keshon/chatclick/pkg/command"
)

func main() {
	log.Println("[INFO] Starting chatclick bot...")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.New()
	if err != nil {
		log.Fatal(err)
	}

	if cfg.LogPath != "" {
		rotator := &lumberjack.Logger{
			Filename:   cfg.LogPath,
			MaxSize:    10, // megabytes
			MaxBackups: 3,
			MaxAge:     28, // days
		}
		log.SetOutput(io.MultiWriter(os.Stderr, rotator))
	}

	store, err := storage.New(cfg.StoragePath)
	if err != nil {
		log.Fatal(err)
	}
	defer store.Close()

	perCommand := time.Minute / time.Duration(cfg.CommandsPerMinute)
	reg := command.NewRegistry()
	reg.Use(
		command.WithRateLimit(rate.Every(perCommand), cfg.CommandsPerMinute, bot.RateLimitKey),
		bot.WithHistory(store),
		command.WithLogger(),
	)
	reg.AddErrorHandler(&bot.ErrorReporter{})

	if err := commands.RegisterAll(reg, cfg); err != nil {
		log.Fatal(err)
	}

	b, err := bot.New(cfg, reg, store)
	if err != nil {
		log.Fatal(err)
	}

	errCh := make(chan error, 1)
	go func() {
		if err := b.Run(ctx); err != nil {
			errCh <- err
		}
		close(errCh)
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)

	select {
	case s := <-sig:
		log.Printf("[INFO] Received signal %s, shutting down...", s)
		cancel()
	case err := <-errCh:
		if err != nil {
			log.Println("[ERR] Bot error:", err)
		}
		cancel()
	case <-ctx.Done():
	}

	log.Println("[INFO] Bot exited cleanly")
}
