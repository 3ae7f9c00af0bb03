package notification

import (
	"context"
	"fmt"
	"net/http"

	"github.com/SherClockHolmes/webpush-go"
	"go.uber.org/zap"

	"tavrika-widget/internal/model"
	"tavrika-widget/internal/store"
)

// NotificationSender defines the interface for sending a web push notification.
type NotificationSender interface {
	Send(payload []byte, sub *webpush.Subscription, options *webpush.Options) (*http.Response, error)
}

// WebPushSender is a real implementation of NotificationSender using the webpush library.
type WebPushSender struct{}

// Send sends a notification using the webpush library.
func (s *WebPushSender) Send(payload []byte, sub *webpush.Subscription, options *webpush.Options) (*http.Response, error) {
	return webpush.SendNotification(payload, sub, options)
}

// WorkerPool fans new reservations out to every staff subscription.
type WorkerPool struct {
	size    int
	jobs    chan model.Submission
	store   store.Store
	webpush *webpush.Options
	sender  NotificationSender
	logger  *zap.Logger
}

// NewWorkerPool creates a new worker pool.
func NewWorkerPool(size int, st store.Store, webpushOptions *webpush.Options, logger *zap.Logger) *WorkerPool {
	return &WorkerPool{
		size:    size,
		jobs:    make(chan model.Submission, size*16),
		store:   st,
		webpush: webpushOptions,
		sender:  &WebPushSender{},
		logger:  logger,
	}
}

// Start launches the worker goroutines.
func (wp *WorkerPool) Start(ctx context.Context) {
	for i := 0; i < wp.size; i++ {
		go wp.worker(ctx, i)
	}
}

func (wp *WorkerPool) worker(ctx context.Context, id int) {
	wp.logger.Debug("notification worker started", zap.Int("worker", id))
	for {
		select {
		case sub := <-wp.jobs:
			wp.notifyStaff(ctx, sub)
		case <-ctx.Done():
			wp.logger.Debug("notification worker shutting down", zap.Int("worker", id))
			return
		}
	}
}

// Dispatch queues a delivered reservation. When the queue is full the
// notification is dropped; the journal still has the row.
func (wp *WorkerPool) Dispatch(sub model.Submission) {
	select {
	case wp.jobs <- sub:
	default:
		wp.logger.Warn("notification queue full, dropping", zap.String("submission", sub.ID))
	}
}

// Message is the text staff see for a new reservation.
func Message(sub model.Submission) string {
	msg := fmt.Sprintf("New reservation: table %d, %d guests, %s %s", sub.TableNumber, sub.Guests, sub.Date, sub.Time)
	if sub.UserName != "" {
		msg += " (" + sub.UserName + ")"
	}
	return msg
}

func (wp *WorkerPool) notifyStaff(ctx context.Context, sub model.Submission) {
	subscriptions, err := wp.store.ListSubscriptions(ctx)
	if err != nil {
		wp.logger.Error("failed to load staff subscriptions", zap.Error(err))
		return
	}
	if len(subscriptions) == 0 {
		return
	}

	wp.logger.Info("notifying staff",
		zap.String("submission", sub.ID),
		zap.Int("subscriptions", len(subscriptions)))

	payload := []byte(Message(sub))
	for _, s := range subscriptions {
		wp.sendNotification(ctx, s, payload)
	}
}

func (wp *WorkerPool) sendNotification(ctx context.Context, sub model.StaffSubscription, payload []byte) {
	wpSub := &webpush.Subscription{
		Endpoint: sub.Endpoint,
		Keys: webpush.Keys{
			P256dh: sub.P256DH,
			Auth:   sub.Auth,
		},
	}

	resp, err := wp.sender.Send(payload, wpSub, wp.webpush)
	if err != nil {
		wp.logger.Warn("failed to send notification", zap.String("endpoint", sub.Endpoint), zap.Error(err))
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusGone {
		wp.logger.Info("subscription expired, deleting", zap.String("endpoint", sub.Endpoint))
		if err := wp.store.DeleteSubscription(ctx, sub.Endpoint); err != nil {
			wp.logger.Warn("failed to delete expired subscription", zap.String("endpoint", sub.Endpoint), zap.Error(err))
		}
	}
}
