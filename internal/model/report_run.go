package model

import "time"

// ReportRun is one persisted income-report run. The full result payload is
// stored verbatim so past reports can be re-downloaded byte-for-byte.
type ReportRun struct {
	ID           uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	OwnerID      string    `gorm:"index;size:64;not null" json:"ownerId"`
	Hostel       string    `gorm:"size:256" json:"hostel"`
	RangeStart   string    `gorm:"size:10;not null" json:"rangeStart"`
	RangeEnd     string    `gorm:"size:10;not null" json:"rangeEnd"`
	Expected     float64   `gorm:"not null" json:"expected"`
	Received     float64   `gorm:"not null" json:"received"`
	Pending      float64   `gorm:"not null" json:"pending"`
	CountAll     int       `gorm:"not null" json:"countAll"`
	CountPending int       `gorm:"not null" json:"countPending"`
	Payload      string    `gorm:"type:text;not null" json:"-"`
	CreatedAt    time.Time `gorm:"not null;index" json:"createdAt"`
}
