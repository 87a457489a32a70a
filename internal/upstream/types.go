package upstream

import (
	"strconv"
	"strings"
)

// Wire shapes of the property-management API. Several backend generations are
// still live, so identifier and name fields come under different keys; the
// Effective* accessors resolve them with a fixed priority order.

// HostelDoc is the hostel document returned for an owner.
type HostelDoc struct {
	ID       string  `json:"id"`
	MongoID  string  `json:"_id"`
	Name     string  `json:"name"`
	Location string  `json:"location"`
	Floors   []Floor `json:"floors"`
}

// Floor is one floor reference inside a hostel document.
type Floor struct {
	FloorID   string `json:"floorId"`
	MongoID   string `json:"_id"`
	ID        string `json:"id"`
	FloorName string `json:"floorName"`
	Name      string `json:"name"`
}

// EffectiveID resolves the floor identifier: floorId, then _id, then id.
func (f Floor) EffectiveID() string {
	for _, v := range []string{f.FloorID, f.MongoID, f.ID} {
		if v != "" {
			return v
		}
	}
	return ""
}

// EffectiveName resolves the floor display name: floorName, then name, then a
// placeholder derived from the identifier prefix.
func (f Floor) EffectiveName() string {
	if f.FloorName != "" {
		return f.FloorName
	}
	if f.Name != "" {
		return f.Name
	}
	id := f.EffectiveID()
	if len(id) > 6 {
		id = id[:6]
	}
	return strings.TrimSpace("Floor " + id)
}

// Room holds the beds of one room on a floor.
type Room struct {
	RoomID   string `json:"roomId"`
	RoomName string `json:"roomName"`
	Beds     []Bed  `json:"beds"`
}

// Bed carries the current occupancy fields plus the append-only history of
// prior occupants. The top-level occupancy fields may all be empty.
type Bed struct {
	BedID         string            `json:"bedId"`
	BedName       string            `json:"bedName"`
	OccupantName  string            `json:"occupantName"`
	OccupantEmail string            `json:"occupantEmail"`
	PersonNumber  string            `json:"personNumber"`
	JoinDate      string            `json:"joinDate"`
	EndDate       string            `json:"endDate"`
	NextDueDate   string            `json:"nextDueDate"`
	ActualAmount  Amount            `json:"actualAmount"`
	AmountPaid    Amount            `json:"amountPaid"`
	History       []HistorySnapshot `json:"history"`
}

// HistorySnapshot is one archived prior occupant of a bed.
type HistorySnapshot struct {
	OccupantName  string `json:"occupantName"`
	OccupantEmail string `json:"occupantEmail"`
	PersonNumber  string `json:"personNumber"`
	JoinDate      string `json:"joinDate"`
	EndDate       string `json:"endDate"`
	NextDueDate   string `json:"nextDueDate"`
	ActualAmount  Amount `json:"actualAmount"`
	AmountPaid    Amount `json:"amountPaid"`
	ArchivedAt    string `json:"archivedAt"`
}

// Amount is a monetary field. Numbers, numeric strings, null and garbage all
// decode without error; anything non-numeric coerces to 0 so a single
// malformed bed never sinks a whole report.
type Amount float64

func (a *Amount) UnmarshalJSON(b []byte) error {
	s := strings.Trim(strings.TrimSpace(string(b)), `"`)
	if s == "" || s == "null" {
		*a = 0
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		*a = 0
		return nil
	}
	*a = Amount(f)
	return nil
}

// hostelEnvelope is the usual {success, data} wrapper; some deployments return
// the hostel document bare.
type hostelEnvelope struct {
	Data *HostelDoc `json:"data"`
}

// roomsEnvelope wraps the room list; some deployments return a bare array.
type roomsEnvelope struct {
	Rooms []Room `json:"rooms"`
}
