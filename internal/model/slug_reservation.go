// internal/model/slug_reservation.go
package model

import (
	"time"

	"github.com/google/uuid"
)

// SlugReservation claims a slug for one submission across both submission
// tables. The primary key makes a second claim on the same slug fail.
type SlugReservation struct {
	Slug         string    `gorm:"type:varchar(120);primaryKey"`
	Kind         Kind      `gorm:"type:varchar(20);not null"`
	SubmissionID uuid.UUID `gorm:"type:uuid;not null;index"`
	CreatedAt    time.Time
}

func (SlugReservation) TableName() string {
	return "slug_reservations"
}
