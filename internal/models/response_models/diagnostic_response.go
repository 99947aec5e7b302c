package response_models

import "impulsa/internal/models/db_models"

type SessionResponse struct {
	ID                string   `json:"id"`
	DiagnosticTypeID  string   `json:"diagnostic_type_id"`
	BusinessProfileID string   `json:"business_profile_id,omitempty"`
	State             string   `json:"state"`
	StartedAt         int64    `json:"started_at"`
	CompletedAt       *int64   `json:"completed_at,omitempty"`
	TotalScore        *float64 `json:"total_score,omitempty"`
	MaturityLevel     *string  `json:"maturity_level,omitempty"`
}

type StartSessionResponse struct {
	Session SessionResponse `json:"session"`
	Areas   []AreaResponse  `json:"areas"`
}

type ProgressResponse struct {
	Answered       int  `json:"answered"`
	Total          int  `json:"total"`
	Complete       bool `json:"complete"`
	TotalQuestions int  `json:"total_questions"`
}

type BatchItemResult struct {
	QuestionID string `json:"question_id"`
	Success    bool   `json:"success"`
	Error      string `json:"error,omitempty"`
}

type BatchSaveResponse struct {
	Saved    int               `json:"saved"`
	Failed   int               `json:"failed"`
	Items    []BatchItemResult `json:"items"`
	Progress ProgressResponse  `json:"progress"`
}

type AreaScoreResponse struct {
	AreaID   string  `json:"area_id"`
	AreaName string  `json:"area_name"`
	Score    float64 `json:"score"`
	Weight   float64 `json:"weight"`
}

type ResultsResponse struct {
	Session         SessionResponse          `json:"session"`
	AreaScores      []AreaScoreResponse      `json:"area_scores"`
	Recommendations []RecommendationResponse `json:"recommendations"`
}

type RecommendationResponse struct {
	AreaID      string `json:"area_id"`
	AreaName    string `json:"area_name"`
	Bracket     string `json:"bracket"`
	Title       string `json:"title"`
	Detail      string `json:"detail,omitempty"`
	ResourceURL string `json:"resource_url,omitempty"`
	Priority    int    `json:"priority"`
}

const (
	TrendImproved  = "improved"
	TrendDeclined  = "declined"
	TrendUnchanged = "unchanged"
)

type AreaComparisonResponse struct {
	AreaID        string  `json:"area_id"`
	AreaName      string  `json:"area_name"`
	CurrentScore  float64 `json:"current_score"`
	PreviousScore float64 `json:"previous_score"`
	Delta         float64 `json:"delta"`
	Trend         string  `json:"trend"`
}

type ComparisonResponse struct {
	CurrentSessionID  string                   `json:"current_session_id"`
	PreviousSessionID string                   `json:"previous_session_id"`
	DiagnosticTypeID  string                   `json:"diagnostic_type_id"`
	CurrentTotal      float64                  `json:"current_total"`
	PreviousTotal     float64                  `json:"previous_total"`
	TotalDelta        float64                  `json:"total_delta"`
	Trend             string                   `json:"trend"`
	Areas             []AreaComparisonResponse `json:"areas"`
}

func BuildSessionResponse(s *db_models.DiagnosticSession) SessionResponse {
	out := SessionResponse{
		ID:               s.ID.String(),
		DiagnosticTypeID: s.DiagnosticTypeID.String(),
		State:            s.State,
		StartedAt:        s.StartedAt,
		CompletedAt:      s.CompletedAt,
		TotalScore:       s.TotalScore,
		MaturityLevel:    s.MaturityLevel,
	}
	if s.BusinessProfileID != nil {
		out.BusinessProfileID = s.BusinessProfileID.String()
	}
	return out
}
