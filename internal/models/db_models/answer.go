package db_models

import "github.com/google/uuid"

// Answer holds one response per (session, question) pair; resubmitting the
// same question upserts the existing row.
type Answer struct {
	BaseModel
	SessionID    uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_answers_session_question"`
	QuestionID   uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_answers_session_question"`
	NumericValue *float64
	TextValue    *string
	AnsweredAt   int64
}
