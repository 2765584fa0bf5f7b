// Command generate creates a deck from a topic with the configured model
// provider and stores it next to the decks served by flashmind.
//
//	generate -topic "Photosynthesis" -count 8
//
// Exit codes: 0 = success, 1 = error, 2 = bad flags.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/heartmarshall/flashmind/internal/app"
	"github.com/heartmarshall/flashmind/internal/config"
	"github.com/heartmarshall/flashmind/internal/service/editor"
	"github.com/heartmarshall/flashmind/internal/service/generate"
)

func main() {
	topic := flag.String("topic", "", "subject to generate cards about (required)")
	count := flag.Int("count", generate.DefaultCount, "number of cards to ask for")
	title := flag.String("title", "", "deck title (defaults to the topic)")
	timeout := flag.Duration("timeout", 2*time.Minute, "overall time limit")
	flag.Parse()

	if *topic == "" {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := app.NewLogger(cfg.Log)

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	completer, err := app.NewCompleter(cfg.Generation, logger)
	if err != nil {
		logger.Error("create model client", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if completer == nil {
		logger.Error("generation is disabled: set generation.provider and generation.api_key")
		os.Exit(1)
	}

	blobs, closeStorage, err := app.OpenStorage(ctx, cfg, logger)
	if err != nil {
		logger.Error("open storage", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer closeStorage()

	store, err := app.LoadDecks(ctx, blobs, cfg.Storage.Key, logger)
	if err != nil {
		logger.Error("load decks", slog.String("error", err.Error()))
		os.Exit(1)
	}

	cards, err := generate.NewService(logger, completer, cfg.Generation.MaxCards).
		Generate(ctx, generate.Input{Topic: *topic, Count: *count})
	if err != nil {
		logger.Error("generate cards", slog.String("topic", *topic), slog.String("error", err.Error()))
		os.Exit(1)
	}

	deck, err := editor.NewService(logger, store).CreateGenerated(ctx, editor.GeneratedDeckInput{
		Topic: *topic,
		Title: *title,
		Cards: cards,
	})
	if err != nil {
		logger.Error("store deck", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("deck generated",
		slog.String("deck_id", deck.ID),
		slog.String("title", deck.Title),
		slog.Int("cards", len(deck.Cards)),
	)
	fmt.Println(deck.ID)
}
