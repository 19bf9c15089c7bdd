package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/campusboard/campusboard/internal/oauth/store"
)

// Housekeeping periodically deletes expired authorization codes and access
// tokens. Purely storage hygiene: expired rows are already unusable, the
// sweep just keeps the tables from growing without bound.
type Housekeeping struct {
	store    store.Store
	logger   *slog.Logger
	interval time.Duration

	stopCh chan struct{}
	doneCh chan struct{}
}

func NewHousekeeping(st store.Store, logger *slog.Logger, interval time.Duration) *Housekeeping {
	return &Housekeeping{
		store:    st,
		logger:   logger,
		interval: interval,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

// Start launches the sweep loop. Call Stop to shut it down.
func (h *Housekeeping) Start() {
	go h.run()
}

// Stop signals the loop and waits for the in-flight sweep to finish.
func (h *Housekeeping) Stop() {
	close(h.stopCh)
	<-h.doneCh
}

func (h *Housekeeping) run() {
	defer close(h.doneCh)

	ticker := time.NewTicker(h.interval)
	defer ticker.Stop()

	for {
		select {
		case <-h.stopCh:
			return
		case <-ticker.C:
			h.sweep()
		}
	}
}

func (h *Housekeeping) sweep() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := h.store.AuthorizationCodes().DeleteExpiredAuthorizationCodes(ctx); err != nil {
		h.logger.Error("failed to delete expired authorization codes", "error", err)
	}
	if err := h.store.AccessTokens().DeleteExpiredAccessTokens(ctx); err != nil {
		h.logger.Error("failed to delete expired access tokens", "error", err)
	}
}
