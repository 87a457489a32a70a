package report

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"hostel-income-backend/internal/upstream"
)

// ErrMissingOwnerID is returned when no owner identity is supplied. The owner
// is always an explicit parameter, never read from ambient state.
var ErrMissingOwnerID = errors.New("owner id is required")

// TreeFetcher supplies the hostel tree snapshot a report run works from.
type TreeFetcher interface {
	FetchTree(ctx context.Context, ownerID string) (*upstream.Tree, error)
}

// Engine runs income reports. Each run fetches its own tree snapshot, so runs
// share no mutable state and a stale run can never clobber a newer one.
type Engine struct {
	fetcher TreeFetcher
	log     *zap.Logger
}

// NewEngine creates a report engine.
func NewEngine(fetcher TreeFetcher, log *zap.Logger) *Engine {
	if log == nil {
		log = zap.NewNop()
	}
	return &Engine{fetcher: fetcher, log: log}
}

// Run produces the income report for one owner over the query range.
func (e *Engine) Run(ctx context.Context, ownerID string, qr Range) (*Result, error) {
	if strings.TrimSpace(ownerID) == "" {
		return nil, ErrMissingOwnerID
	}

	tree, err := e.fetcher.FetchTree(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("load hostel tree: %w", err)
	}

	entries := Extract(tree.Floors, qr)
	pending, totals := Aggregate(entries)

	meta := Meta{
		OwnerID: ownerID,
		Start:   qr.StartDay(),
		End:     qr.EndDay(),
	}
	if tree.Hostel != nil {
		meta.Hostel = tree.Hostel.Name
	}
	for _, floor := range tree.Floors {
		if floor.Err != "" {
			meta.FloorErrors = append(meta.FloorErrors, FloorError{
				FloorID:   floor.FloorID,
				FloorName: floor.FloorName,
				Error:     floor.Err,
			})
		}
	}

	e.log.Info("report run finished",
		zap.String("owner_id", ownerID),
		zap.String("start", meta.Start),
		zap.String("end", meta.End),
		zap.Int("entries", totals.CountAll),
		zap.Int("pending_entries", totals.CountPending),
		zap.Int("floor_errors", len(meta.FloorErrors)))

	return &Result{
		Meta:           meta,
		AllEntries:     entries,
		PendingEntries: pending,
		Totals:         totals,
	}, nil
}

// Availability fetches the tree and computes the bed availability summary.
func (e *Engine) Availability(ctx context.Context, ownerID string) (*AvailabilitySummary, error) {
	if strings.TrimSpace(ownerID) == "" {
		return nil, ErrMissingOwnerID
	}
	tree, err := e.fetcher.FetchTree(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("load hostel tree: %w", err)
	}
	return Availability(tree, ownerID), nil
}
