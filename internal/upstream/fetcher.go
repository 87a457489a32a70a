package upstream

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"
)

// FloorRooms is one floor of the fetched hostel tree. A floor whose room fetch
// failed keeps its place in the tree with an empty room list and an error
// annotation, so one bad floor never aborts the whole report.
type FloorRooms struct {
	FloorID   string
	FloorName string
	Rooms     []Room
	Err       string
}

// Tree is a point-in-time snapshot of the owner's hostel hierarchy.
type Tree struct {
	Hostel *HostelDoc
	Floors []FloorRooms
}

// RoomsGetter is the part of the upstream client the fetcher needs.
type RoomsGetter interface {
	GetHostel(ctx context.Context, ownerID string) (*HostelDoc, error)
	GetRooms(ctx context.Context, floorID string) ([]Room, error)
}

// Fetcher assembles a hostel tree, fetching rooms floor by floor through a
// bounded worker pool. A pool of one reproduces the strictly sequential fetch
// the upstream backend was originally sized for.
type Fetcher struct {
	client  RoomsGetter
	workers int
	log     *zap.Logger
}

// NewFetcher creates a tree fetcher with the given worker count.
func NewFetcher(client RoomsGetter, workers int, log *zap.Logger) *Fetcher {
	if workers < 1 {
		workers = 1
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Fetcher{client: client, workers: workers, log: log}
}

// FetchTree fetches the hostel document and the rooms of every floor.
// Cancelling ctx aborts outstanding floor fetches; per-floor failures are
// annotated instead of propagated.
func (f *Fetcher) FetchTree(ctx context.Context, ownerID string) (*Tree, error) {
	hostel, err := f.client.GetHostel(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	floors := hostel.Floors
	out := make([]FloorRooms, len(floors))

	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < f.workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				out[idx] = f.fetchFloor(ctx, floors[idx])
			}
		}()
	}

dispatch:
	for i := range floors {
		select {
		case <-ctx.Done():
			break dispatch
		case jobs <- i:
		}
	}
	close(jobs)
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return &Tree{Hostel: hostel, Floors: out}, nil
}

func (f *Fetcher) fetchFloor(ctx context.Context, floor Floor) FloorRooms {
	fr := FloorRooms{
		FloorID:   floor.EffectiveID(),
		FloorName: floor.EffectiveName(),
	}

	if fr.FloorID == "" {
		fr.Err = "missing floor id"
		return fr
	}
	if err := ctx.Err(); err != nil {
		fr.Err = fmt.Sprintf("fetch aborted: %v", err)
		return fr
	}

	rooms, err := f.client.GetRooms(ctx, fr.FloorID)
	if err != nil {
		f.log.Warn("failed to load rooms for floor",
			zap.String("floor_id", fr.FloorID),
			zap.Error(err))
		fr.Err = "failed to load rooms"
		return fr
	}
	fr.Rooms = rooms
	return fr
}
