package db_models

import "github.com/google/uuid"

// RecommendationRule is admin-managed advisory content keyed by an area and
// a score range. A finalized session's area score selects the matching rules.
type RecommendationRule struct {
	BaseModel
	AreaID      uuid.UUID `gorm:"type:uuid;index"`
	MinScore    float64
	MaxScore    float64
	Title       string
	Detail      string
	ResourceURL string
	Priority    int
}

// Recommendation is the materialized advisory set for one completed session.
// Regeneration wipes and rewrites the whole set.
type Recommendation struct {
	BaseModel
	SessionID   uuid.UUID `gorm:"type:uuid;index"`
	AreaID      uuid.UUID `gorm:"type:uuid"`
	AreaName    string
	Bracket     string
	Title       string
	Detail      string
	ResourceURL string
	Priority    int
}
