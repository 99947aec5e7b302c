package db_models

import "github.com/google/uuid"

type EvaluationArea struct {
	BaseModel
	DiagnosticTypeID uuid.UUID `gorm:"type:uuid;index"`
	Name             string
	Weight           float64 // relative weight within the type, 0..1
	Position         int     `gorm:"column:position"`
	Icon             string
	Color            string

	Questions []Question `gorm:"foreignKey:AreaID"`
}
