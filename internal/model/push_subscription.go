package model

import "time"

// PushSubscription holds a browser push subscription tied to one owner.
// Subscribers get notified when a scheduled report run finds pending dues for
// that owner's hostel.
type PushSubscription struct {
	Endpoint  string    `gorm:"primaryKey"`
	P256DH    string    `gorm:"column:p256dh;not null"`
	Auth      string    `gorm:"not null"`
	OwnerID   string    `gorm:"index;size:64;not null"`
	CreatedAt time.Time `gorm:"not null"`
}
