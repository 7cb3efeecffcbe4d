// internal/model/pillar.go
package model

import "time"

// PillarDescription maps a well known pillar label to the prose used to seed
// an empty description.
type PillarDescription struct {
	ID                 uint      `gorm:"primaryKey" json:"id"`
	PillarName         string    `gorm:"type:varchar(100);uniqueIndex;not null" json:"pillar_name"`
	DefaultDescription string    `gorm:"type:text;not null" json:"default_description"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

func (PillarDescription) TableName() string {
	return "pillar_descriptions"
}
