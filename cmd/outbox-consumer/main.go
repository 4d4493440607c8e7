package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/fightleague/registry/internal/domain"
	"github.com/fightleague/registry/internal/infra"
)

const consumerGroup = "league-moderation-log"

func main() {
	_ = godotenv.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	if err := run(logger); err != nil {
		logger.Error("outbox consumer failed", "error", err)
		os.Exit(1)
	}
}

func run(logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := infra.LoadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if !cfg.KafkaEnabled {
		return fmt.Errorf("KAFKA_ENABLED must be true for the outbox consumer")
	}

	topics := []string{
		topicFor(domain.EventFighterRegistered),
		topicFor(domain.EventFighterApproved),
		topicFor(domain.EventFighterRejected),
	}

	var wg sync.WaitGroup
	for _, topic := range topics {
		consumer := infra.NewKafkaConsumer(cfg.KafkaBrokers, topic, consumerGroup, true, logger)
		defer consumer.Close()

		wg.Add(1)
		go func(topic string, consumer *infra.KafkaConsumer) {
			defer wg.Done()
			consume(ctx, topic, consumer, logger)
		}(topic, consumer)
	}

	logger.Info("outbox consumer started", "topics", topics)
	wg.Wait()
	logger.Info("outbox consumer shutting down")
	return nil
}

func topicFor(evt domain.EventType) string {
	return infra.TopicPrefix + "." + string(domain.AggregateFighter) + "." + string(evt)
}

func consume(ctx context.Context, topic string, consumer *infra.KafkaConsumer, logger *slog.Logger) {
	for {
		msg, err := consumer.ReadMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				return
			}
			logger.Error("read message", "topic", topic, "error", err)
			continue
		}
		logger.Info("moderation event",
			"topic", topic,
			"key", string(msg.Key),
			"payload", string(msg.Value),
			"offset", msg.Offset,
		)
	}
}
