// Package regionstats - воркер, пересчитывающий статистику регионов по событиям изменений.
package regionstats

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/invotaxi/region-service/internal/config"
	"github.com/invotaxi/region-service/internal/domain"
	"github.com/invotaxi/region-service/internal/domain/repository"
	"github.com/invotaxi/region-service/internal/metrics"
	"github.com/invotaxi/region-service/internal/pkg/errors"
	"github.com/invotaxi/region-service/internal/worker"
)

const (
	defaultPollInterval = 100 * time.Millisecond
	errorSleep          = time.Second
	retryBackoff        = 200 * time.Millisecond
)

// StatsRefresher - пересчёт и сброс статистики региона
type StatsRefresher interface {
	RefreshRegionStats(ctx context.Context, regionID string) (*domain.RegionStats, error)
	ForgetRegionStats(ctx context.Context, regionID string) error
}

// Worker читает stream:region:changed и поддерживает кеш статистики актуальным
type Worker struct {
	*worker.BaseWorker
	streamRepo   repository.StreamRepository
	stats        StatsRefresher
	consumerName string
	batchSize    int64
	maxRetries   int
	pollInterval time.Duration
	retryBackoff time.Duration
}

// New создает воркер статистики регионов
func New(
	streamRepo repository.StreamRepository,
	stats StatsRefresher,
	cfg *config.WorkerConfig,
	logger *zap.Logger,
) *Worker {
	hostname, _ := os.Hostname()

	poll := cfg.PollInterval
	if poll <= 0 {
		poll = defaultPollInterval
	}

	return &Worker{
		BaseWorker:   worker.NewBaseWorker("region-stats", domain.StreamRegionChanged, cfg.ConsumerGroup, logger),
		streamRepo:   streamRepo,
		stats:        stats,
		consumerName: fmt.Sprintf("%s-%d", hostname, os.Getpid()),
		batchSize:    cfg.BatchSize,
		maxRetries:   cfg.MaxRetries,
		pollInterval: poll,
		retryBackoff: retryBackoff,
	}
}

// Start создаёт consumer group и обрабатывает события до Stop или отмены контекста
func (w *Worker) Start(ctx context.Context) error {
	logger := w.Logger()
	logger.Info("Starting region stats worker",
		zap.String("stream", w.Stream()),
		zap.String("consumer_group", w.ConsumerGroup()),
		zap.String("consumer_name", w.consumerName),
		zap.Int64("batch_size", w.batchSize))

	if err := w.streamRepo.CreateConsumerGroup(ctx, w.Stream(), w.ConsumerGroup()); err != nil {
		return fmt.Errorf("failed to create consumer group: %w", err)
	}

	for {
		select {
		case <-w.StopChan():
			logger.Info("Worker stopped")
			return nil
		case <-ctx.Done():
			logger.Info("Context cancelled")
			return ctx.Err()
		default:
		}

		processed, err := w.processBatch(ctx)
		if err != nil {
			logger.Error("Failed to process batch", zap.Error(err))
			if !w.Pause(errorSleep) {
				return nil
			}
			continue
		}

		if processed == 0 && !w.Pause(w.pollInterval) {
			return nil
		}
	}
}

// processBatch читает пачку событий, обрабатывает и подтверждает их.
// Возвращает количество прочитанных сообщений.
func (w *Worker) processBatch(ctx context.Context) (int, error) {
	messages, err := w.streamRepo.ConsumeBatch(ctx, w.Stream(), w.ConsumerGroup(), w.consumerName, w.batchSize)
	if err != nil {
		return 0, fmt.Errorf("failed to consume batch: %w", err)
	}
	if len(messages) == 0 {
		return 0, nil
	}

	logger := w.Logger()
	logger.Debug("Processing batch", zap.Int("message_count", len(messages)))

	ids := make([]string, 0, len(messages))
	for _, msg := range messages {
		event, err := parseMessage(msg)
		if err != nil {
			// битое сообщение подтверждаем, чтобы не застревало
			logger.Warn("Failed to parse message, skipping",
				zap.String("message_id", msg.ID),
				zap.Error(err))
			metrics.RegionEventsTotal.WithLabelValues("unknown", "malformed").Inc()
			ids = append(ids, msg.ID)
			continue
		}

		result := "ok"
		if err := w.handleWithRetry(ctx, event); err != nil {
			result = "failed"
			logger.Error("Dropping region event after retries",
				zap.String("message_id", msg.ID),
				zap.String("region_id", event.RegionID),
				zap.String("type", string(event.Type)),
				zap.Error(err))
		}
		metrics.RegionEventsTotal.WithLabelValues(string(event.Type), result).Inc()
		ids = append(ids, msg.ID)
	}

	if err := w.streamRepo.AckMessage(ctx, w.Stream(), w.ConsumerGroup(), ids...); err != nil {
		// Не критично - сообщения будут переобработаны
		logger.Error("Failed to ack messages", zap.Error(err))
	}

	return len(messages), nil
}

func (w *Worker) handleWithRetry(ctx context.Context, event *domain.RegionEvent) error {
	var err error
	for attempt := 0; attempt <= w.maxRetries; attempt++ {
		if attempt > 0 && !w.Pause(w.retryBackoff) {
			return err
		}
		if err = w.handle(ctx, event); err == nil {
			return nil
		}
		w.Logger().Warn("Region event failed",
			zap.String("region_id", event.RegionID),
			zap.Int("attempt", attempt+1),
			zap.Error(err))
	}
	return err
}

func (w *Worker) handle(ctx context.Context, event *domain.RegionEvent) error {
	switch event.Type {
	case domain.RegionCreated, domain.RegionUpdated:
		_, err := w.stats.RefreshRegionStats(ctx, event.RegionID)
		if errors.Is(err, errors.ErrRegionNotFound) {
			// регион успели удалить, событие удаления придёт следом
			return w.stats.ForgetRegionStats(ctx, event.RegionID)
		}
		return err
	case domain.RegionDeleted:
		return w.stats.ForgetRegionStats(ctx, event.RegionID)
	default:
		w.Logger().Warn("Unknown region event type", zap.String("type", string(event.Type)))
		return nil
	}
}

func parseMessage(msg domain.StreamMessage) (*domain.RegionEvent, error) {
	var event domain.RegionEvent
	if err := json.Unmarshal([]byte(msg.Data), &event); err != nil {
		return nil, fmt.Errorf("failed to unmarshal event: %w", err)
	}
	if event.RegionID == "" {
		return nil, fmt.Errorf("event has no region_id")
	}
	return &event, nil
}
