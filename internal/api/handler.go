package api

import (
	"github.com/SherClockHolmes/webpush-go"
	"go.uber.org/zap"

	"hostel-income-backend/internal/report"
	"hostel-income-backend/internal/store"
)

// Handler holds shared dependencies for API handlers.
type Handler struct {
	store   store.Store
	engine  *report.Engine
	webpush *webpush.Options
	log     *zap.Logger
}

// NewHandler creates a new API handler.
func NewHandler(s store.Store, engine *report.Engine, webpushOptions *webpush.Options, log *zap.Logger) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{
		store:   s,
		engine:  engine,
		webpush: webpushOptions,
		log:     log,
	}
}
