package api

import (
	"github.com/SherClockHolmes/webpush-go"

	"clinic-admissions-backend/internal/notification"
	"clinic-admissions-backend/internal/store"
)

// Handler holds shared dependencies for API handlers.
type Handler struct {
	store   store.Store
	webpush *webpush.Options
	pool    *notification.WorkerPool
}

// NewHandler creates a new API handler. The worker pool may be nil when
// push notifications are disabled.
func NewHandler(s store.Store, webpushOptions *webpush.Options, pool *notification.WorkerPool) *Handler {
	return &Handler{
		store:   s,
		webpush: webpushOptions,
		pool:    pool,
	}
}

// notifyBedAvailable queues a bed-available alert for the room, if push
// is enabled.
func (h *Handler) notifyBedAvailable(roomID int64) {
	if h.pool != nil {
		h.pool.Dispatch(roomID)
	}
}
