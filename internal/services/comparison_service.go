package services

import (
	"context"
	"sort"

	dbm "impulsa/internal/models/db_models"
	"impulsa/internal/models/response_models"
	"impulsa/pkg/utils"
)

type ComparisonServiceInterface interface {
	Compare(ctx context.Context, userID, role, currentID, previousID string) (*response_models.ComparisonResponse, error)
}

type ComparisonService struct {
	sessionService SessionServiceInterface
}

func NewComparisonService(sessionService SessionServiceInterface) ComparisonServiceInterface {
	return &ComparisonService{sessionService: sessionService}
}

// Compare diffs two completed sessions of the same diagnostic type. Both
// sessions must belong to the requesting user unless the caller is admin.
func (s *ComparisonService) Compare(ctx context.Context, userID, role, currentID, previousID string) (*response_models.ComparisonResponse, error) {
	current, err := s.sessionService.GetOwnedSession(ctx, userID, role, currentID)
	if err != nil {
		return nil, err
	}
	previous, err := s.sessionService.GetOwnedSession(ctx, userID, role, previousID)
	if err != nil {
		return nil, err
	}

	if current.State != dbm.SessionStateCompleted || previous.State != dbm.SessionStateCompleted {
		return nil, utils.ErrSessionNotCompleted
	}
	if current.DiagnosticTypeID != previous.DiagnosticTypeID {
		return nil, utils.ErrTypeMismatch
	}
	if current.TotalScore == nil || previous.TotalScore == nil {
		return nil, utils.ErrSessionNotCompleted
	}

	out := &response_models.ComparisonResponse{
		CurrentSessionID:  current.ID.String(),
		PreviousSessionID: previous.ID.String(),
		DiagnosticTypeID:  current.DiagnosticTypeID.String(),
		CurrentTotal:      *current.TotalScore,
		PreviousTotal:     *previous.TotalScore,
		TotalDelta:        *current.TotalScore - *previous.TotalScore,
	}
	out.Trend = classifyDelta(out.TotalDelta)

	// Union of both result maps: the catalog may have gained or lost areas
	// between the two runs, a missing side reads as zero.
	seen := map[string]bool{}
	for key, result := range current.AreaResults {
		previousScore := 0.0
		if prev, ok := previous.AreaResults[key]; ok {
			previousScore = prev.Score
		}
		out.Areas = append(out.Areas, buildAreaComparison(key, result.AreaName, result.Score, previousScore))
		seen[key] = true
	}
	for key, result := range previous.AreaResults {
		if seen[key] {
			continue
		}
		out.Areas = append(out.Areas, buildAreaComparison(key, result.AreaName, 0, result.Score))
	}

	sort.Slice(out.Areas, func(i, j int) bool {
		return out.Areas[i].AreaName < out.Areas[j].AreaName
	})
	return out, nil
}

func buildAreaComparison(areaID, areaName string, currentScore, previousScore float64) response_models.AreaComparisonResponse {
	delta := currentScore - previousScore
	return response_models.AreaComparisonResponse{
		AreaID:        areaID,
		AreaName:      areaName,
		CurrentScore:  currentScore,
		PreviousScore: previousScore,
		Delta:         delta,
		Trend:         classifyDelta(delta),
	}
}

// classifyDelta ties delta == 0 to unchanged.
func classifyDelta(delta float64) string {
	switch {
	case delta > 0:
		return response_models.TrendImproved
	case delta < 0:
		return response_models.TrendDeclined
	default:
		return response_models.TrendUnchanged
	}
}
