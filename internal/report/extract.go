package report

import (
	"time"

	"hostel-income-backend/internal/parse"
	"hostel-income-backend/internal/upstream"
)

// Extract walks the fetched hostel tree and flattens every occupancy record
// that falls inside the query range into a uniform entry list. History
// snapshots and the bed's live occupancy are evaluated independently.
func Extract(floors []upstream.FloorRooms, qr Range) []Entry {
	found := make([]Entry, 0)
	for _, floor := range floors {
		for _, room := range floor.Rooms {
			for _, bed := range room.Beds {
				found = append(found, bedEntries(floor, room, bed, qr)...)
			}
		}
	}
	return found
}

func bedEntries(floor upstream.FloorRooms, room upstream.Room, bed upstream.Bed, qr Range) []Entry {
	var out []Entry

	// Archived snapshots are immutable past facts. A snapshot with neither a
	// join/end date nor an archival timestamp cannot be placed in time and is
	// skipped.
	for _, h := range bed.History {
		entryStart := firstDate(h.JoinDate, h.ArchivedAt)
		entryEnd := firstDate(h.EndDate, h.ArchivedAt)
		if entryStart == nil && entryEnd == nil {
			continue
		}
		if overlaps(spanStart(entryStart, qr), spanEnd(entryEnd, qr), qr.Start, qr.End) {
			e := newEntry(SourceHistory, floor, room, bed)
			e.OccupantName = h.OccupantName
			e.OccupantEmail = h.OccupantEmail
			e.PersonNumber = h.PersonNumber
			e.Contact = coalesce(h.OccupantEmail, h.PersonNumber)
			e.JoinDate = h.JoinDate
			e.EndDate = h.EndDate
			e.NextDueDate = h.NextDueDate
			e.ArchivedAt = h.ArchivedAt
			e.ActualAmount = float64(h.ActualAmount)
			e.AmountPaid = float64(h.AmountPaid)
			e.Pending = pendingOf(e.ActualAmount, e.AmountPaid)
			out = append(out, e)
		}
	}

	// The live record only exists if the bed shows some sign of occupancy.
	// nextDueDate alone is not such a sign.
	hasCurrent := bed.OccupantName != "" ||
		bed.OccupantEmail != "" ||
		bed.JoinDate != "" ||
		bed.EndDate != "" ||
		bed.ActualAmount != 0 ||
		bed.AmountPaid != 0
	if !hasCurrent {
		return out
	}

	entryStart := parse.Date(bed.JoinDate)
	entryEnd := parse.Date(bed.EndDate)

	include := false
	switch {
	case entryStart != nil || entryEnd != nil:
		// A missing bound defaults to the query bound itself, so a stay with
		// an unknown extent counts toward the range.
		include = overlaps(spanStart(entryStart, qr), spanEnd(entryEnd, qr), qr.Start, qr.End)
	default:
		if nd := parse.Date(bed.NextDueDate); nd != nil && !nd.Before(qr.Start) && !nd.After(qr.End) {
			include = true
		} else if bed.ActualAmount > 0 || bed.AmountPaid > 0 {
			// Real money with no temporal anchor still surfaces.
			include = true
		}
	}
	if !include {
		return out
	}

	e := newEntry(SourceCurrent, floor, room, bed)
	e.OccupantName = bed.OccupantName
	e.OccupantEmail = bed.OccupantEmail
	e.PersonNumber = bed.PersonNumber
	e.Contact = coalesce(bed.OccupantEmail, bed.PersonNumber)
	e.JoinDate = bed.JoinDate
	e.EndDate = bed.EndDate
	e.NextDueDate = bed.NextDueDate
	e.ActualAmount = float64(bed.ActualAmount)
	e.AmountPaid = float64(bed.AmountPaid)
	e.Pending = pendingOf(e.ActualAmount, e.AmountPaid)
	return append(out, e)
}

func newEntry(kind SourceKind, floor upstream.FloorRooms, room upstream.Room, bed upstream.Bed) Entry {
	return Entry{
		SourceKind: kind,
		FloorID:    floor.FloorID,
		FloorName:  floor.FloorName,
		RoomID:     room.RoomID,
		RoomName:   room.RoomName,
		BedID:      bed.BedID,
		BedName:    bed.BedName,
	}
}

// firstDate parses the candidates in order and returns the first usable date.
func firstDate(candidates ...string) *time.Time {
	for _, c := range candidates {
		if d := parse.Date(c); d != nil {
			return d
		}
	}
	return nil
}

// spanStart expands an entry's start to the day boundary, falling back to the
// query's own start when the entry has none.
func spanStart(d *time.Time, qr Range) time.Time {
	if d == nil {
		return qr.Start
	}
	return *parse.StartOfDay(d)
}

func spanEnd(d *time.Time, qr Range) time.Time {
	if d == nil {
		return qr.End
	}
	return *parse.EndOfDay(d)
}

func pendingOf(actual, paid float64) float64 {
	if p := actual - paid; p > 0 {
		return p
	}
	return 0
}

func coalesce(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
