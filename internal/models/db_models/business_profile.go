package db_models

import "github.com/google/uuid"

type BusinessProfile struct {
	BaseModel
	UserID      uuid.UUID `gorm:"type:uuid;index"`
	Name        string
	Sector      string
	Size        string
	Description string
}
