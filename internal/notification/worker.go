package notification

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/SherClockHolmes/webpush-go"
	"go.uber.org/zap"

	"hostel-income-backend/internal/model"
	"hostel-income-backend/internal/store"
)

// Sender defines the interface for sending a web push notification.
type Sender interface {
	Send(payload []byte, sub *webpush.Subscription, options *webpush.Options) (*http.Response, error)
}

// WebPushSender sends notifications through the webpush library.
type WebPushSender struct{}

func (s *WebPushSender) Send(payload []byte, sub *webpush.Subscription, options *webpush.Options) (*http.Response, error) {
	return webpush.SendNotification(payload, sub, options)
}

// PendingAlert is one job for the pool: an owner whose hostel has outstanding
// dues after a report run.
type PendingAlert struct {
	OwnerID      string  `json:"ownerId"`
	Hostel       string  `json:"hostel"`
	PendingTotal float64 `json:"pendingTotal"`
	CountPending int     `json:"countPending"`
	RangeStart   string  `json:"rangeStart"`
	RangeEnd     string  `json:"rangeEnd"`
}

// WorkerPool manages a pool of workers for sending pending-dues notifications.
type WorkerPool struct {
	size    int
	jobs    chan PendingAlert
	store   store.Store
	webpush *webpush.Options
	sender  Sender
	log     *zap.Logger
}

// NewWorkerPool creates a new worker pool.
func NewWorkerPool(size int, s store.Store, webpushOptions *webpush.Options, log *zap.Logger) *WorkerPool {
	if log == nil {
		log = zap.NewNop()
	}
	return &WorkerPool{
		size:    size,
		jobs:    make(chan PendingAlert, size),
		store:   s,
		webpush: webpushOptions,
		sender:  &WebPushSender{},
		log:     log,
	}
}

// Start launches the worker goroutines.
func (wp *WorkerPool) Start(ctx context.Context) {
	for i := 0; i < wp.size; i++ {
		go wp.worker(ctx, i)
	}
}

func (wp *WorkerPool) worker(ctx context.Context, id int) {
	wp.log.Info("notification worker started", zap.Int("worker", id))
	for {
		select {
		case alert := <-wp.jobs:
			wp.sendAlertToSubscribers(ctx, alert)
		case <-ctx.Done():
			wp.log.Info("notification worker shutting down", zap.Int("worker", id))
			return
		}
	}
}

// Dispatch queues an alert for delivery.
func (wp *WorkerPool) Dispatch(alert PendingAlert) {
	wp.jobs <- alert
}

// Jobs returns the jobs channel for testing.
func (wp *WorkerPool) Jobs() chan PendingAlert {
	return wp.jobs
}

func (wp *WorkerPool) sendAlertToSubscribers(ctx context.Context, alert PendingAlert) {
	subscriptions, err := wp.store.SubscriptionsForOwner(ctx, alert.OwnerID)
	if err != nil {
		wp.log.Error("failed to fetch subscriptions",
			zap.String("owner_id", alert.OwnerID), zap.Error(err))
		return
	}
	if len(subscriptions) == 0 {
		return
	}

	hostel := alert.Hostel
	if hostel == "" {
		hostel = "your hostel"
	}
	payload, err := json.Marshal(map[string]any{
		"title": fmt.Sprintf("Pending dues in %s", hostel),
		"body": fmt.Sprintf("%d tenant(s) owe a total of %.0f for %s to %s",
			alert.CountPending, alert.PendingTotal, alert.RangeStart, alert.RangeEnd),
		"ownerId": alert.OwnerID,
	})
	if err != nil {
		wp.log.Error("failed to marshal alert payload", zap.Error(err))
		return
	}

	wp.log.Info("sending pending-dues notifications",
		zap.String("owner_id", alert.OwnerID),
		zap.Int("subscriptions", len(subscriptions)))
	for _, sub := range subscriptions {
		wp.sendNotification(ctx, sub, payload)
	}
}

func (wp *WorkerPool) sendNotification(ctx context.Context, sub model.PushSubscription, payload []byte) {
	wpSub := &webpush.Subscription{
		Endpoint: sub.Endpoint,
		Keys: webpush.Keys{
			P256dh: sub.P256DH,
			Auth:   sub.Auth,
		},
	}

	resp, err := wp.sender.Send(payload, wpSub, wp.webpush)
	if err != nil {
		wp.log.Error("failed to send notification",
			zap.String("endpoint", sub.Endpoint), zap.Error(err))
		return
	}
	defer resp.Body.Close()

	// Push services answer 410 Gone for dead subscriptions.
	if resp.StatusCode == http.StatusGone {
		wp.log.Info("deleting expired subscription", zap.String("endpoint", sub.Endpoint))
		if err := wp.store.DB().WithContext(ctx).Delete(&sub).Error; err != nil {
			wp.log.Error("failed to delete expired subscription",
				zap.String("endpoint", sub.Endpoint), zap.Error(err))
		}
	}
}
