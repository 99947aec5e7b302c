package services

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/google/uuid"
	dbm "impulsa/internal/models/db_models"
	"impulsa/internal/models/request_models"
	"impulsa/internal/models/response_models"
	"impulsa/internal/repositories"
	"impulsa/pkg/utils"
)

type RecommendationServiceInterface interface {
	Generate(ctx context.Context, userID, role, sessionID string) ([]response_models.RecommendationResponse, error)
	Get(ctx context.Context, userID, role, sessionID string) ([]response_models.RecommendationResponse, error)
	GetOrGenerate(ctx context.Context, userID, role, sessionID string) ([]response_models.RecommendationResponse, error)

	CreateRule(ctx context.Context, areaID string, req request_models.CreateRecommendationRuleRequest) (string, error)
	DeleteRule(ctx context.Context, ruleID string) error
}

type RecommendationService struct {
	recommendationRepo repositories.RecommendationRepository
	catalogRepo        repositories.CatalogRepository
	sessionService     SessionServiceInterface
	config             ScoringConfig
}

func NewRecommendationService(
	recommendationRepo repositories.RecommendationRepository,
	catalogRepo repositories.CatalogRepository,
	sessionService SessionServiceInterface,
	config ScoringConfig,
) RecommendationServiceInterface {
	return &RecommendationService{
		recommendationRepo: recommendationRepo,
		catalogRepo:        catalogRepo,
		sessionService:     sessionService,
		config:             config,
	}
}

// Generate derives the advisory set for a completed session from the rule
// table and stores it, overwriting any prior generation. Areas with no
// matching rule get a generic entry for their score bracket so the client
// always has something to show per area.
func (s *RecommendationService) Generate(ctx context.Context, userID, role, sessionID string) ([]response_models.RecommendationResponse, error) {
	session, err := s.sessionService.GetOwnedSession(ctx, userID, role, sessionID)
	if err != nil {
		return nil, err
	}
	if session.State != dbm.SessionStateCompleted {
		return nil, utils.ErrSessionNotCompleted
	}

	areaIDs := make([]uuid.UUID, 0, len(session.AreaResults))
	for key := range session.AreaResults {
		id, err := uuid.Parse(key)
		if err != nil {
			continue
		}
		areaIDs = append(areaIDs, id)
	}

	rules, err := s.recommendationRepo.ListRulesByAreas(ctx, areaIDs)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	rulesByArea := make(map[string][]dbm.RecommendationRule)
	for _, rule := range rules {
		key := rule.AreaID.String()
		rulesByArea[key] = append(rulesByArea[key], rule)
	}

	var recs []dbm.Recommendation
	for key, result := range session.AreaResults {
		areaID, err := uuid.Parse(key)
		if err != nil {
			continue
		}
		bracket := s.config.Classify(result.Score)

		matched := false
		for _, rule := range rulesByArea[key] {
			if result.Score < rule.MinScore || result.Score > rule.MaxScore {
				continue
			}
			matched = true
			recs = append(recs, dbm.Recommendation{
				SessionID:   session.ID,
				AreaID:      areaID,
				AreaName:    result.AreaName,
				Bracket:     bracket,
				Title:       rule.Title,
				Detail:      rule.Detail,
				ResourceURL: rule.ResourceURL,
				Priority:    rule.Priority,
			})
		}
		if !matched {
			recs = append(recs, fallbackRecommendation(session.ID, areaID, result, bracket))
		}
	}

	if err := s.recommendationRepo.ReplaceForSession(ctx, session.ID, recs); err != nil {
		return nil, utils.ErrDatabaseError
	}
	return buildRecommendationResponses(recs), nil
}

// Get returns the stored set; callers fall back to Generate on
// ErrNoRecommendations.
func (s *RecommendationService) Get(ctx context.Context, userID, role, sessionID string) ([]response_models.RecommendationResponse, error) {
	session, err := s.sessionService.GetOwnedSession(ctx, userID, role, sessionID)
	if err != nil {
		return nil, err
	}
	if session.State != dbm.SessionStateCompleted {
		return nil, utils.ErrSessionNotCompleted
	}

	recs, err := s.recommendationRepo.ListBySession(ctx, session.ID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if len(recs) == 0 {
		return nil, utils.ErrNoRecommendations
	}
	return buildRecommendationResponses(recs), nil
}

// GetOrGenerate is the lazy-materialization path used by the results
// endpoint: the set is computed once per session and reused afterwards.
func (s *RecommendationService) GetOrGenerate(ctx context.Context, userID, role, sessionID string) ([]response_models.RecommendationResponse, error) {
	recs, err := s.Get(ctx, userID, role, sessionID)
	if err != nil {
		if errors.Is(err, utils.ErrNoRecommendations) {
			return s.Generate(ctx, userID, role, sessionID)
		}
		return nil, err
	}
	return recs, nil
}

func (s *RecommendationService) CreateRule(ctx context.Context, areaID string, req request_models.CreateRecommendationRuleRequest) (string, error) {
	id, err := uuid.Parse(areaID)
	if err != nil {
		return "", utils.ErrInvalidInput
	}
	if req.MinScore < 0 || req.MaxScore > 100 || req.MinScore >= req.MaxScore {
		return "", utils.ErrInvalidInput
	}

	area, err := s.catalogRepo.GetAreaByID(ctx, id)
	if err != nil {
		return "", utils.ErrDatabaseError
	}
	if area == nil {
		return "", utils.ErrAreaNotFound
	}

	rule := &dbm.RecommendationRule{
		AreaID:      id,
		MinScore:    req.MinScore,
		MaxScore:    req.MaxScore,
		Title:       req.Title,
		Detail:      req.Detail,
		ResourceURL: req.ResourceURL,
		Priority:    req.Priority,
	}
	if err := s.recommendationRepo.CreateRule(ctx, rule); err != nil {
		return "", utils.ErrDatabaseError
	}
	return rule.ID.String(), nil
}

func (s *RecommendationService) DeleteRule(ctx context.Context, ruleID string) error {
	id, err := uuid.Parse(ruleID)
	if err != nil {
		return utils.ErrInvalidInput
	}

	rule, err := s.recommendationRepo.GetRuleByID(ctx, id)
	if err != nil {
		return utils.ErrDatabaseError
	}
	if rule == nil {
		return utils.ErrRuleNotFound
	}

	if err := s.recommendationRepo.DeleteRule(ctx, id); err != nil {
		return utils.ErrDatabaseError
	}
	return nil
}

func fallbackRecommendation(sessionID, areaID uuid.UUID, result dbm.AreaResult, bracket string) dbm.Recommendation {
	detail := fmt.Sprintf("Your %s score is %.0f/100. Review this area with an advisor to define next steps.",
		result.AreaName, result.Score)
	return dbm.Recommendation{
		SessionID: sessionID,
		AreaID:    areaID,
		AreaName:  result.AreaName,
		Bracket:   bracket,
		Title:     fmt.Sprintf("Strengthen %s", result.AreaName),
		Detail:    detail,
	}
}

func buildRecommendationResponses(recs []dbm.Recommendation) []response_models.RecommendationResponse {
	out := make([]response_models.RecommendationResponse, 0, len(recs))
	for _, rec := range recs {
		out = append(out, response_models.RecommendationResponse{
			AreaID:      rec.AreaID.String(),
			AreaName:    rec.AreaName,
			Bracket:     rec.Bracket,
			Title:       rec.Title,
			Detail:      rec.Detail,
			ResourceURL: rec.ResourceURL,
			Priority:    rec.Priority,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].AreaName != out[j].AreaName {
			return out[i].AreaName < out[j].AreaName
		}
		return out[i].Priority < out[j].Priority
	})
	return out
}
