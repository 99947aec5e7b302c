package db_models

import (
	"github.com/google/uuid"
	"github.com/lib/pq"
)

const (
	QuestionKindScale  = "scale"
	QuestionKindText   = "text"
	QuestionKindChoice = "choice"
)

// Question is kind-dependent: scale questions carry the bounds, choice
// questions carry options, text questions carry neither. The catalog service
// validates the payload per kind before anything is written.
type Question struct {
	BaseModel
	AreaID    uuid.UUID `gorm:"type:uuid;index"`
	Text      string
	Kind      string
	ScaleMin  *int
	ScaleMax  *int
	Options   pq.StringArray `gorm:"type:text[]"`
	Weight    float64
	Mandatory bool
	Position  int `gorm:"column:position"`
}

func ValidQuestionKind(kind string) bool {
	switch kind {
	case QuestionKindScale, QuestionKindText, QuestionKindChoice:
		return true
	}
	return false
}
