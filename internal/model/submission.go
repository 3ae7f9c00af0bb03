package model

import "time"

// SubmissionStatus is the outcome of handing a reservation to the host.
type SubmissionStatus string

const (
	SubmissionDelivered SubmissionStatus = "delivered"
	SubmissionFailed    SubmissionStatus = "failed"
)

// Submission journals one delivery attempt of a reservation.
type Submission struct {
	ID          string           `gorm:"primaryKey;size:36"`
	SessionID   string           `gorm:"size:36;index;not null"`
	TableID     string           `gorm:"size:64;not null"`
	TableNumber int              `gorm:"not null"`
	Guests      int              `gorm:"not null"`
	Date        string           `gorm:"size:10;index;not null"`
	Time        string           `gorm:"size:5;not null"`
	UserID      *int64
	UserName    string           `gorm:"size:256"`
	Bridge      string           `gorm:"size:32;not null"`
	Status      SubmissionStatus `gorm:"size:16;not null"`
	Error       string           `gorm:"size:1024"`
	CreatedAt   time.Time        `gorm:"not null"`
}
