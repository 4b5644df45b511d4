package api

import (
	"context"

	"github.com/SherClockHolmes/webpush-go"
	"go.uber.org/zap"

	"onlinemaid-backend/config"
	"onlinemaid-backend/internal/mw"
	"onlinemaid-backend/internal/store"
)

// Notifier queues a stored contact enquiry for staff notification.
type Notifier interface {
	Dispatch(ctx context.Context, enquiryID int64) error
}

// Handler holds shared dependencies for API handlers.
type Handler struct {
	cfg      *config.Config
	store    store.Store
	webpush  *webpush.Options
	notifier Notifier
	cache    *mw.ResponseCache
	logger   *zap.Logger
}

// NewHandler creates a new API handler. notifier may be nil when push
// notifications are not configured.
func NewHandler(cfg *config.Config, s store.Store, webpushOptions *webpush.Options, notifier Notifier, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		cfg:      cfg,
		store:    s,
		webpush:  webpushOptions,
		notifier: notifier,
		cache:    mw.NewResponseCache(cfg.CacheTTL()),
		logger:   logger.Named("api"),
	}
}
