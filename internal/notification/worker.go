package notification

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/SherClockHolmes/webpush-go"
	"github.com/cenkalti/backoff/v4"
	"github.com/cockroachdb/errors"
	"go.uber.org/zap"

	"onlinemaid-backend/internal/model"
	"onlinemaid-backend/internal/schema"
	"onlinemaid-backend/internal/store"
)

// NotificationSender defines the interface for sending a web push notification.
type NotificationSender interface {
	Send(payload []byte, sub *webpush.Subscription, options *webpush.Options) (*http.Response, error)
}

// WebPushSender is a real implementation of NotificationSender using the webpush library.
type WebPushSender struct{}

func (s *WebPushSender) Send(payload []byte, sub *webpush.Subscription, options *webpush.Options) (*http.Response, error) {
	return webpush.SendNotification(payload, sub, options)
}

// WorkerPool tells staff about new contact enquiries. Jobs are enquiry IDs;
// every registered subscription receives one push per enquiry.
type WorkerPool struct {
	size    int
	jobs    chan int64
	store   store.Store
	webpush *webpush.Options
	sender  NotificationSender
	logger  *zap.Logger
	wg      sync.WaitGroup

	newBackOff func() backoff.BackOff
}

// maxSendRetries bounds retries of one push after a transient failure.
const maxSendRetries = 2

func defaultBackOff() backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 250 * time.Millisecond
	b.MaxElapsedTime = 5 * time.Second
	return b
}

// NewWorkerPool creates a pool of size workers. The queue holds up to
// queue pending enquiries before Dispatch blocks.
func NewWorkerPool(size, queue int, s store.Store, webpushOptions *webpush.Options, logger *zap.Logger) *WorkerPool {
	if size < 1 {
		size = 1
	}
	if queue < size {
		queue = size
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &WorkerPool{
		size:    size,
		jobs:    make(chan int64, queue),
		store:   s,
		webpush: webpushOptions,
		sender:  &WebPushSender{},
		logger:  logger.Named("notification"),

		newBackOff: defaultBackOff,
	}
}

// WithSender replaces the push transport.
func (wp *WorkerPool) WithSender(s NotificationSender) *WorkerPool {
	wp.sender = s
	return wp
}

// WithBackOff replaces the retry schedule of failed sends.
func (wp *WorkerPool) WithBackOff(newBackOff func() backoff.BackOff) *WorkerPool {
	wp.newBackOff = newBackOff
	return wp
}

// Start launches the worker goroutines. They run until ctx is cancelled.
func (wp *WorkerPool) Start(ctx context.Context) {
	for i := 0; i < wp.size; i++ {
		wp.wg.Add(1)
		go wp.worker(ctx, i)
	}
}

// Wait blocks until every worker has returned.
func (wp *WorkerPool) Wait() {
	wp.wg.Wait()
}

func (wp *WorkerPool) worker(ctx context.Context, id int) {
	defer wp.wg.Done()
	log := wp.logger.With(zap.Int("worker", id))
	log.Debug("worker started")
	for {
		select {
		case enquiryID := <-wp.jobs:
			log.Debug("processing enquiry", zap.Int64("enquiry_id", enquiryID))
			wp.notifyEnquiry(ctx, enquiryID)
		case <-ctx.Done():
			log.Debug("worker shutting down")
			return
		}
	}
}

// ErrQueueFull is returned by Dispatch when every queue slot is taken.
var ErrQueueFull = errors.New("notification queue is full")

// Dispatch queues an enquiry for notification. It never waits for room in
// the queue: a full queue yields ErrQueueFull and the enquiry is not queued.
func (wp *WorkerPool) Dispatch(ctx context.Context, enquiryID int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	select {
	case wp.jobs <- enquiryID:
		return nil
	default:
		return errors.Wrapf(ErrQueueFull, "enquiry %d", enquiryID)
	}
}

// Jobs returns the jobs channel for testing.
func (wp *WorkerPool) Jobs() chan int64 {
	return wp.jobs
}

// Message is the push payload shown for an enquiry.
func Message(e *model.ContactEnquiry) string {
	return fmt.Sprintf("New enquiry from %s %s: %s, %s, %s, age %d-%d",
		e.FirstName, e.LastName,
		schema.EnquiryNationality.Label(e.MaidNationality),
		schema.EnquiryResponsibility.Label(e.MaidMainResponsibility),
		schema.EnquiryMaidType.Label(e.MaidType),
		e.MaidMinAge, e.MaidMaxAge,
	)
}

func (wp *WorkerPool) notifyEnquiry(ctx context.Context, enquiryID int64) {
	log := wp.logger.With(zap.Int64("enquiry_id", enquiryID))

	enquiry, err := wp.store.GetContactEnquiry(ctx, enquiryID)
	if err != nil {
		log.Error("loading enquiry", zap.Error(err))
		return
	}

	subscriptions, err := wp.store.ListSubscriptions(ctx)
	if err != nil {
		log.Error("fetching subscriptions", zap.Error(err))
		return
	}
	if len(subscriptions) == 0 {
		return
	}

	log.Info("sending notifications", zap.Int("subscriptions", len(subscriptions)))
	payload := []byte(Message(enquiry))
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

	resp, err := wp.send(ctx, payload, wpSub)
	if err != nil {
		wp.logger.Warn("sending notification", zap.String("endpoint", sub.Endpoint), zap.Error(err))
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusGone {
		wp.logger.Info("subscription expired, deleting", zap.String("endpoint", sub.Endpoint))
		if err := wp.store.DeleteSubscription(ctx, sub.Endpoint); err != nil {
			wp.logger.Error("deleting expired subscription", zap.String("endpoint", sub.Endpoint), zap.Error(err))
		}
	}
}

// send delivers one push, retrying transport errors, 429 and 5xx answers.
func (wp *WorkerPool) send(ctx context.Context, payload []byte, sub *webpush.Subscription) (*http.Response, error) {
	var resp *http.Response
	op := func() error {
		r, err := wp.sender.Send(payload, sub, wp.webpush)
		if err != nil {
			return err
		}
		if r.StatusCode == http.StatusTooManyRequests || r.StatusCode >= http.StatusInternalServerError {
			r.Body.Close()
			return errors.Newf("push service answered %d", r.StatusCode)
		}
		resp = r
		return nil
	}
	policy := backoff.WithContext(backoff.WithMaxRetries(wp.newBackOff(), maxSendRetries), ctx)
	if err := backoff.Retry(op, policy); err != nil {
		return nil, err
	}
	return resp, nil
}
