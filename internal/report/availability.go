package report

import "hostel-income-backend/internal/upstream"

// RoomAvailability is the bed count of a single room.
type RoomAvailability struct {
	RoomID        string `json:"roomId"`
	RoomName      string `json:"roomName"`
	TotalBeds     int    `json:"totalBeds"`
	AvailableBeds int    `json:"availableBeds"`
}

// FloorAvailability aggregates a floor's rooms.
type FloorAvailability struct {
	FloorID       string             `json:"floorId"`
	FloorName     string             `json:"floorName"`
	Error         string             `json:"error,omitempty"`
	Rooms         []RoomAvailability `json:"rooms"`
	TotalBeds     int                `json:"totalBeds"`
	AvailableBeds int                `json:"availableBeds"`
}

// AvailabilitySummary is the dashboard overview of bed availability.
type AvailabilitySummary struct {
	Hostel        string              `json:"hostel"`
	OwnerID       string              `json:"ownerId"`
	Floors        []FloorAvailability `json:"floors"`
	TotalBeds     int                 `json:"totalBeds"`
	AvailableBeds int                 `json:"availableBeds"`
	OccupancyPct  float64             `json:"occupancyPct"`
}

// Availability computes per-room and per-floor bed availability. A bed counts
// as free when both occupant name and email are empty.
func Availability(tree *upstream.Tree, ownerID string) *AvailabilitySummary {
	summary := &AvailabilitySummary{
		OwnerID: ownerID,
		Floors:  make([]FloorAvailability, 0, len(tree.Floors)),
	}
	if tree.Hostel != nil {
		summary.Hostel = tree.Hostel.Name
	}

	for _, floor := range tree.Floors {
		fa := FloorAvailability{
			FloorID:   floor.FloorID,
			FloorName: floor.FloorName,
			Error:     floor.Err,
			Rooms:     make([]RoomAvailability, 0, len(floor.Rooms)),
		}
		for _, room := range floor.Rooms {
			ra := RoomAvailability{
				RoomID:    room.RoomID,
				RoomName:  room.RoomName,
				TotalBeds: len(room.Beds),
			}
			for _, bed := range room.Beds {
				if bed.OccupantName == "" && bed.OccupantEmail == "" {
					ra.AvailableBeds++
				}
			}
			fa.TotalBeds += ra.TotalBeds
			fa.AvailableBeds += ra.AvailableBeds
			fa.Rooms = append(fa.Rooms, ra)
		}
		summary.TotalBeds += fa.TotalBeds
		summary.AvailableBeds += fa.AvailableBeds
		summary.Floors = append(summary.Floors, fa)
	}

	if summary.TotalBeds > 0 {
		occupied := summary.TotalBeds - summary.AvailableBeds
		summary.OccupancyPct = float64(occupied) / float64(summary.TotalBeds) * 100
	}
	return summary
}
