package db_models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"

	"github.com/google/uuid"
)

const (
	SessionStateInProgress = "in_progress"
	SessionStateCompleted  = "completed"
	SessionStateCancelled  = "cancelled"
)

// AreaResult is one area's slice of a finalized session.
type AreaResult struct {
	AreaName string  `json:"area_name"`
	Score    float64 `json:"score"`
	Weight   float64 `json:"weight"`
}

// AreaResultMap is keyed by area id and stored as a jsonb column. It is
// written once at finalize time and never partially updated.
type AreaResultMap map[string]AreaResult

func (m AreaResultMap) Value() (driver.Value, error) {
	if m == nil {
		return nil, nil
	}
	return json.Marshal(m)
}

func (m *AreaResultMap) Scan(value interface{}) error {
	if value == nil {
		*m = nil
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		if s, ok := value.(string); ok {
			bytes = []byte(s)
		} else {
			return errors.New("unsupported type for AreaResultMap")
		}
	}
	return json.Unmarshal(bytes, m)
}

type DiagnosticSession struct {
	BaseModel
	UserID            uuid.UUID  `gorm:"type:uuid;index"`
	DiagnosticTypeID  uuid.UUID  `gorm:"type:uuid;index"`
	BusinessProfileID *uuid.UUID `gorm:"type:uuid"`
	State             string     `gorm:"default:in_progress"`
	StartedAt         int64
	CompletedAt       *int64
	TotalScore        *float64
	MaturityLevel     *string
	AreaResults       AreaResultMap `gorm:"type:jsonb"`

	Answers []Answer `gorm:"foreignKey:SessionID"`
}
