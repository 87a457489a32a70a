package report

// SourceKind says whether an entry comes from a bed's live occupancy fields or
// from one of its archived history snapshots.
type SourceKind string

const (
	SourceCurrent SourceKind = "current"
	SourceHistory SourceKind = "history"
)

// Entry is one person-stay financial record, flattened out of the
// hostel → floor → room → bed tree. Entries are built fresh on every report
// run and never mutated afterwards.
type Entry struct {
	SourceKind SourceKind `json:"sourceKind"`

	FloorID   string `json:"floorId"`
	FloorName string `json:"floorName"`
	RoomID    string `json:"roomId"`
	RoomName  string `json:"roomName"`
	BedID     string `json:"bedId"`
	BedName   string `json:"bedName"`

	OccupantName  string `json:"occupantName"`
	OccupantEmail string `json:"occupantEmail"`
	PersonNumber  string `json:"personNumber"`
	Contact       string `json:"contact"`

	JoinDate    string `json:"joinDate"`
	EndDate     string `json:"endDate"`
	NextDueDate string `json:"nextDueDate"`
	ArchivedAt  string `json:"archivedAt"`

	ActualAmount float64 `json:"actualAmount"`
	AmountPaid   float64 `json:"amountPaid"`
	Pending      float64 `json:"pending"`
}

// Totals aggregates the financial picture over every matched entry, not just
// the pending ones: the top-line numbers answer "how much money moved in this
// period", the pending list answers "who still owes".
type Totals struct {
	Expected     float64 `json:"expected"`
	Received     float64 `json:"received"`
	Pending      float64 `json:"pending"`
	CountAll     int     `json:"countAll"`
	CountPending int     `json:"countPending"`
}

// FloorError marks a floor whose rooms could not be loaded. The report is
// still produced for the remaining floors.
type FloorError struct {
	FloorID   string `json:"floorId"`
	FloorName string `json:"floorName"`
	Error     string `json:"error"`
}

// Meta describes the report run itself.
type Meta struct {
	Hostel      string       `json:"hostel"`
	OwnerID     string       `json:"ownerId"`
	Start       string       `json:"start"`
	End         string       `json:"end"`
	FloorErrors []FloorError `json:"floorErrors,omitempty"`
}

// Result is the full outcome of one report run. Its JSON shape is the export
// artifact downstream tooling consumes, so field names are load-bearing.
type Result struct {
	Meta           Meta    `json:"meta"`
	AllEntries     []Entry `json:"allEntries"`
	PendingEntries []Entry `json:"pendingEntries"`
	Totals         Totals  `json:"totals"`
}
