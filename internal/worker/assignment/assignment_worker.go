package assignment

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/waste-management/internal/domain"
	"github.com/waste-management/internal/domain/repository"
	"github.com/waste-management/internal/usecase"
	"github.com/waste-management/internal/worker"
)

const (
	maxBatchSize    = 20                     // максимум сообщений за раз
	emptyQueueSleep = 500 * time.Millisecond // пауза если очередь пуста
)

// AssignmentWorker добирает машины для заявок, оставшихся без назначения.
// Событие приходит из стрима при создании заявки, для которой не нашлось
// свободной машины; воркер повторяет подбор с отложенными попытками.
type AssignmentWorker struct {
	*worker.BaseWorker
	streamRepo   repository.StreamRepository
	pickupUC     *usecase.PickupUseCase
	consumerName string
	maxRetries   int
	retryDelay   time.Duration
}

// NewAssignmentWorker создает новый AssignmentWorker
func NewAssignmentWorker(
	streamRepo repository.StreamRepository,
	pickupUC *usecase.PickupUseCase,
	consumerGroup string,
	maxRetries int,
	retryDelay time.Duration,
	logger *zap.Logger,
) *AssignmentWorker {
	hostname, _ := os.Hostname()
	consumerName := fmt.Sprintf("%s-%d", hostname, os.Getpid())

	return &AssignmentWorker{
		BaseWorker:   worker.NewBaseWorker("pickup-assignment", consumerGroup, logger),
		streamRepo:   streamRepo,
		pickupUC:     pickupUC,
		consumerName: consumerName,
		maxRetries:   maxRetries,
		retryDelay:   retryDelay,
	}
}

// Start запускает воркер
func (w *AssignmentWorker) Start(ctx context.Context) error {
	logger := w.Logger()
	logger.Info("Starting AssignmentWorker (batch mode)",
		zap.String("consumer_group", w.ConsumerGroup()),
		zap.String("consumer_name", w.consumerName),
		zap.Int("max_batch_size", maxBatchSize),
		zap.Int("max_retries", w.maxRetries))

	// Создаем consumer group
	if err := w.streamRepo.CreateConsumerGroup(ctx, domain.StreamPickupAssign, w.ConsumerGroup()); err != nil {
		logger.Error("Failed to create consumer group", zap.Error(err))
		return fmt.Errorf("failed to create consumer group: %w", err)
	}

	// Основной цикл обработки
	for {
		select {
		case <-w.StopChan():
			logger.Info("Worker stopped")
			return nil

		case <-ctx.Done():
			logger.Info("Context cancelled")
			return ctx.Err()

		default:
			processed, err := w.processBatch(ctx)
			if err != nil {
				logger.Error("Failed to process batch", zap.Error(err))
				time.Sleep(time.Second) // пауза при ошибке
				continue
			}

			// Если ничего не обработали - короткая пауза
			if processed == 0 {
				time.Sleep(emptyQueueSleep)
			}
		}
	}
}

// processBatch читает и обрабатывает batch сообщений.
// Возвращает количество обработанных сообщений.
func (w *AssignmentWorker) processBatch(ctx context.Context) (int, error) {
	logger := w.Logger()

	messages, err := w.streamRepo.ConsumeBatch(
		ctx,
		domain.StreamPickupAssign,
		w.ConsumerGroup(),
		w.consumerName,
		maxBatchSize,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to consume batch: %w", err)
	}

	if len(messages) == 0 {
		return 0, nil // очередь пуста
	}

	logger.Info("Processing assignment batch", zap.Int("message_count", len(messages)))

	for _, msg := range messages {
		w.handleMessage(ctx, msg)
	}

	return len(messages), nil
}

// handleMessage повторяет подбор машины для одной заявки.
// Сообщение подтверждается всегда: повторная попытка уходит новым
// событием, а не redelivery-ем старого.
func (w *AssignmentWorker) handleMessage(ctx context.Context, msg domain.StreamMessage) {
	logger := w.Logger()
	defer w.ack(ctx, msg.ID)

	var event domain.PickupAssignEvent
	if err := json.Unmarshal([]byte(msg.Data), &event); err != nil {
		logger.Error("Failed to unmarshal assign event",
			zap.String("message_id", msg.ID), zap.Error(err))
		return
	}

	assigned, err := w.pickupUC.TryAssign(ctx, event.PickupID)
	if err != nil {
		logger.Error("Assignment attempt failed",
			zap.String("pickup_id", event.PickupID.String()),
			zap.Int("attempt", event.Attempt),
			zap.Error(err))
	}
	if assigned {
		logger.Info("Pickup assignment settled",
			zap.String("pickup_id", event.PickupID.String()),
			zap.Int("attempt", event.Attempt))
		return
	}

	if event.Attempt >= w.maxRetries {
		logger.Warn("Assignment retries exhausted, leaving pickup for manual dispatch",
			zap.String("pickup_id", event.PickupID.String()),
			zap.Int("attempts", event.Attempt))
		return
	}

	// Пауза перед перепубликацией, чтобы не молотить пустой парк
	select {
	case <-time.After(w.retryDelay):
	case <-ctx.Done():
		return
	}

	if err := w.pickupUC.EnqueueRetry(ctx, event.PickupID, event.Attempt+1); err != nil {
		logger.Error("Failed to re-enqueue assignment",
			zap.String("pickup_id", event.PickupID.String()),
			zap.Error(err))
	}
}

func (w *AssignmentWorker) ack(ctx context.Context, messageID string) {
	if err := w.streamRepo.AckMessage(ctx, domain.StreamPickupAssign, w.ConsumerGroup(), messageID); err != nil {
		w.Logger().Error("Failed to ack message",
			zap.String("message_id", messageID), zap.Error(err))
	}
}
