package services

import (
	"context"
	"errors"
	"log"
	"os"
	"sort"
	"strconv"
	"strings"

	dbm "impulsa/internal/models/db_models"
	"impulsa/internal/models/response_models"
	"impulsa/internal/repositories"
	"impulsa/pkg/utils"
)

// MaturityLevel is one row of the classification table: scores at or above
// MinScore (and below the next level's MinScore) map to Name.
type MaturityLevel struct {
	Name     string
	MinScore float64
}

type ScoringConfig struct {
	Levels []MaturityLevel
}

// DefaultScoringConfig carries the product's stock cut points.
func DefaultScoringConfig() ScoringConfig {
	return ScoringConfig{
		Levels: []MaturityLevel{
			{Name: "incipient", MinScore: 0},
			{Name: "developing", MinScore: 40},
			{Name: "advanced", MinScore: 70},
		},
	}
}

// ScoringConfigFromEnv parses MATURITY_LEVELS ("name:min,name:min,...")
// and falls back to the defaults when unset or malformed.
func ScoringConfigFromEnv() ScoringConfig {
	raw := os.Getenv("MATURITY_LEVELS")
	if raw == "" {
		return DefaultScoringConfig()
	}

	var levels []MaturityLevel
	for _, part := range strings.Split(raw, ",") {
		pieces := strings.SplitN(strings.TrimSpace(part), ":", 2)
		if len(pieces) != 2 {
			log.Printf("Ignoring malformed MATURITY_LEVELS entry: %q", part)
			return DefaultScoringConfig()
		}
		min, err := strconv.ParseFloat(pieces[1], 64)
		if err != nil {
			log.Printf("Ignoring malformed MATURITY_LEVELS entry: %q", part)
			return DefaultScoringConfig()
		}
		levels = append(levels, MaturityLevel{Name: pieces[0], MinScore: min})
	}
	if len(levels) == 0 {
		return DefaultScoringConfig()
	}

	sort.Slice(levels, func(i, j int) bool { return levels[i].MinScore < levels[j].MinScore })
	return ScoringConfig{Levels: levels}
}

// Classify buckets a 0-100 score into the highest level whose MinScore the
// score reaches.
func (c ScoringConfig) Classify(score float64) string {
	name := ""
	for _, level := range c.Levels {
		if score >= level.MinScore {
			name = level.Name
		}
	}
	if name == "" && len(c.Levels) > 0 {
		name = c.Levels[0].Name
	}
	return name
}

type ScoringServiceInterface interface {
	FinalizeAndScore(ctx context.Context, userID, sessionID string) (*response_models.SessionResponse, error)
}

type ScoringService struct {
	sessionService SessionServiceInterface
	sessionRepo    repositories.SessionRepository
	catalogRepo    repositories.CatalogRepository
	config         ScoringConfig
}

func NewScoringService(
	sessionService SessionServiceInterface,
	sessionRepo repositories.SessionRepository,
	catalogRepo repositories.CatalogRepository,
	config ScoringConfig,
) ScoringServiceInterface {
	return &ScoringService{
		sessionService: sessionService,
		sessionRepo:    sessionRepo,
		catalogRepo:    catalogRepo,
		config:         config,
	}
}

// FinalizeAndScore seals an in_progress session: it checks completeness,
// computes the weighted per-area and total scores, classifies the maturity
// level and commits everything with the state transition in one transaction.
// A second call on the same session fails; finalize is a one-shot edge.
func (s *ScoringService) FinalizeAndScore(ctx context.Context, userID, sessionID string) (*response_models.SessionResponse, error) {
	session, err := s.sessionService.GetOwnedSession(ctx, userID, "", sessionID)
	if err != nil {
		return nil, err
	}

	switch session.State {
	case dbm.SessionStateInProgress:
	case dbm.SessionStateCompleted:
		return nil, utils.ErrSessionAlreadyFinished
	default:
		return nil, utils.ErrSessionNotInProgress
	}

	totalMandatory, err := s.sessionRepo.CountMandatoryQuestions(ctx, session.DiagnosticTypeID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	answeredMandatory, err := s.sessionRepo.CountAnsweredMandatory(ctx, session.ID, session.DiagnosticTypeID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if answeredMandatory < totalMandatory {
		return nil, &utils.IncompleteSessionError{Missing: int(totalMandatory - answeredMandatory)}
	}

	areas, err := s.catalogRepo.GetAreasWithQuestions(ctx, session.DiagnosticTypeID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	answers, err := s.sessionRepo.GetAnswersBySession(ctx, session.ID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	results, totalScore := ComputeScores(areas, answers)
	level := s.config.Classify(totalScore)

	err = s.sessionRepo.FinalizeSession(ctx, session.ID, results, totalScore, level)
	if err != nil {
		if errors.Is(err, repositories.ErrFinalizeConflict) {
			return nil, utils.ErrSessionAlreadyFinished
		}
		log.Printf("Finalize failed for session %s: %v", session.ID, err)
		return nil, utils.ErrDatabaseError
	}

	updated, err := s.sessionRepo.GetSessionByID(ctx, session.ID)
	if err != nil || updated == nil {
		return nil, utils.ErrDatabaseError
	}

	out := response_models.BuildSessionResponse(updated)
	return &out, nil
}

// ComputeScores implements the two-level weighted aggregation. Per area,
// each answered scale question is normalized to 0-100 and weight-averaged;
// text and choice questions never enter the numeric aggregate. The total is
// the weight-average of the area scores. Every area of the type appears in
// the result map, areas without scorable answers at score 0.
func ComputeScores(areas []dbm.EvaluationArea, answers []dbm.Answer) (dbm.AreaResultMap, float64) {
	answersByQuestion := make(map[string]dbm.Answer, len(answers))
	for _, a := range answers {
		answersByQuestion[a.QuestionID.String()] = a
	}

	results := make(dbm.AreaResultMap, len(areas))
	var totalWeighted, totalWeight float64

	for _, area := range areas {
		var areaWeighted, areaWeight float64
		for _, q := range area.Questions {
			if q.Kind != dbm.QuestionKindScale || q.ScaleMin == nil || q.ScaleMax == nil {
				continue
			}
			answer, ok := answersByQuestion[q.ID.String()]
			if !ok || answer.NumericValue == nil {
				continue
			}
			normalized := NormalizeScaleValue(*answer.NumericValue, *q.ScaleMin, *q.ScaleMax)
			areaWeighted += normalized * q.Weight
			areaWeight += q.Weight
		}

		areaScore := 0.0
		if areaWeight > 0 {
			areaScore = areaWeighted / areaWeight
		}
		results[area.ID.String()] = dbm.AreaResult{
			AreaName: area.Name,
			Score:    areaScore,
			Weight:   area.Weight,
		}

		totalWeighted += areaScore * area.Weight
		totalWeight += area.Weight
	}

	totalScore := 0.0
	if totalWeight > 0 {
		totalScore = totalWeighted / totalWeight
	}
	return results, totalScore
}

// NormalizeScaleValue maps a raw scale answer onto 0-100.
func NormalizeScaleValue(value float64, scaleMin, scaleMax int) float64 {
	span := float64(scaleMax - scaleMin)
	if span <= 0 {
		return 0
	}
	return (value - float64(scaleMin)) / span * 100
}
