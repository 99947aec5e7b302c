package db_models

type DiagnosticType struct {
	BaseModel
	Name              string
	Slug              string `gorm:"uniqueIndex"`
	Description       string
	EstimatedDuration int // minutes
	DetailLevel       string
	Active            bool `gorm:"default:true"`

	Areas []EvaluationArea `gorm:"foreignKey:DiagnosticTypeID"`
}
