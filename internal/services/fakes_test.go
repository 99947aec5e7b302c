package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	dbm "impulsa/internal/models/db_models"
	"impulsa/internal/repositories"
)

// In-memory repository doubles backing the service tests.

type fakeCatalogRepo struct {
	types         map[uuid.UUID]*dbm.DiagnosticType
	areas         map[uuid.UUID]*dbm.EvaluationArea
	sessionCounts map[uuid.UUID]int64
}

func newFakeCatalogRepo() *fakeCatalogRepo {
	return &fakeCatalogRepo{
		types:         map[uuid.UUID]*dbm.DiagnosticType{},
		areas:         map[uuid.UUID]*dbm.EvaluationArea{},
		sessionCounts: map[uuid.UUID]int64{},
	}
}

func (f *fakeCatalogRepo) ListTypes(ctx context.Context, includeInactive bool) ([]dbm.DiagnosticType, error) {
	var out []dbm.DiagnosticType
	for _, t := range f.types {
		if !includeInactive && !t.Active {
			continue
		}
		out = append(out, *t)
	}
	return out, nil
}

func (f *fakeCatalogRepo) GetTypeByID(ctx context.Context, id uuid.UUID) (*dbm.DiagnosticType, error) {
	return f.types[id], nil
}

func (f *fakeCatalogRepo) GetTypeWithDetails(ctx context.Context, id uuid.UUID) (*dbm.DiagnosticType, error) {
	t := f.types[id]
	if t == nil {
		return nil, nil
	}
	copied := *t
	copied.Areas, _ = f.GetAreasWithQuestions(ctx, id)
	return &copied, nil
}

func (f *fakeCatalogRepo) GetAreasWithQuestions(ctx context.Context, typeID uuid.UUID) ([]dbm.EvaluationArea, error) {
	var out []dbm.EvaluationArea
	for _, area := range f.areas {
		if area.DiagnosticTypeID == typeID {
			out = append(out, *area)
		}
	}
	return out, nil
}

func (f *fakeCatalogRepo) CreateType(ctx context.Context, t *dbm.DiagnosticType) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	f.types[t.ID] = t
	return nil
}

func (f *fakeCatalogRepo) UpdateTypeFields(ctx context.Context, id uuid.UUID, fields map[string]interface{}) error {
	t := f.types[id]
	if t == nil {
		return nil
	}
	if name, ok := fields["name"].(string); ok {
		t.Name = name
	}
	if slug, ok := fields["slug"].(string); ok {
		t.Slug = slug
	}
	if active, ok := fields["active"].(bool); ok {
		t.Active = active
	}
	return nil
}

func (f *fakeCatalogRepo) DeleteType(ctx context.Context, id uuid.UUID) error {
	delete(f.types, id)
	for areaID, area := range f.areas {
		if area.DiagnosticTypeID == id {
			delete(f.areas, areaID)
		}
	}
	return nil
}

func (f *fakeCatalogRepo) SlugExists(ctx context.Context, slug string, excludeID uuid.UUID) (bool, error) {
	for _, t := range f.types {
		if t.Slug == slug && t.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeCatalogRepo) CountSessionsForType(ctx context.Context, typeID uuid.UUID) (int64, error) {
	return f.sessionCounts[typeID], nil
}

func (f *fakeCatalogRepo) GetAreaByID(ctx context.Context, id uuid.UUID) (*dbm.EvaluationArea, error) {
	return f.areas[id], nil
}

func (f *fakeCatalogRepo) CreateArea(ctx context.Context, area *dbm.EvaluationArea) error {
	if area.ID == uuid.Nil {
		area.ID = uuid.New()
	}
	f.areas[area.ID] = area
	return nil
}

func (f *fakeCatalogRepo) UpdateAreaFields(ctx context.Context, id uuid.UUID, fields map[string]interface{}) error {
	return nil
}

func (f *fakeCatalogRepo) DeleteArea(ctx context.Context, id uuid.UUID) error {
	delete(f.areas, id)
	return nil
}

func (f *fakeCatalogRepo) GetQuestionByID(ctx context.Context, id uuid.UUID) (*dbm.Question, error) {
	for _, area := range f.areas {
		for i := range area.Questions {
			if area.Questions[i].ID == id {
				return &area.Questions[i], nil
			}
		}
	}
	return nil, nil
}

func (f *fakeCatalogRepo) CreateQuestion(ctx context.Context, q *dbm.Question) error {
	if q.ID == uuid.Nil {
		q.ID = uuid.New()
	}
	area := f.areas[q.AreaID]
	if area != nil {
		area.Questions = append(area.Questions, *q)
	}
	return nil
}

func (f *fakeCatalogRepo) UpdateQuestionFields(ctx context.Context, id uuid.UUID, fields map[string]interface{}) error {
	return nil
}

func (f *fakeCatalogRepo) DeleteQuestion(ctx context.Context, id uuid.UUID) error {
	for _, area := range f.areas {
		for i := range area.Questions {
			if area.Questions[i].ID == id {
				area.Questions = append(area.Questions[:i], area.Questions[i+1:]...)
				return nil
			}
		}
	}
	return nil
}

type fakeSessionRepo struct {
	catalog  *fakeCatalogRepo
	sessions map[uuid.UUID]*dbm.DiagnosticSession
	answers  map[string]*dbm.Answer
}

func newFakeSessionRepo(catalog *fakeCatalogRepo) *fakeSessionRepo {
	return &fakeSessionRepo{
		catalog:  catalog,
		sessions: map[uuid.UUID]*dbm.DiagnosticSession{},
		answers:  map[string]*dbm.Answer{},
	}
}

func answerKey(sessionID, questionID uuid.UUID) string {
	return fmt.Sprintf("%s|%s", sessionID, questionID)
}

func (f *fakeSessionRepo) CreateSession(ctx context.Context, session *dbm.DiagnosticSession) error {
	if session.ID == uuid.Nil {
		session.ID = uuid.New()
	}
	f.sessions[session.ID] = session
	return nil
}

func (f *fakeSessionRepo) GetSessionByID(ctx context.Context, id uuid.UUID) (*dbm.DiagnosticSession, error) {
	return f.sessions[id], nil
}

func (f *fakeSessionRepo) ListSessionsByUser(ctx context.Context, userID uuid.UUID, page, pageSize int) ([]dbm.DiagnosticSession, error) {
	var out []dbm.DiagnosticSession
	for _, s := range f.sessions {
		if s.UserID == userID {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (f *fakeSessionRepo) UpsertAnswer(ctx context.Context, answer *dbm.Answer) error {
	f.answers[answerKey(answer.SessionID, answer.QuestionID)] = answer
	return nil
}

func (f *fakeSessionRepo) GetAnswersBySession(ctx context.Context, sessionID uuid.UUID) ([]dbm.Answer, error) {
	var out []dbm.Answer
	for _, a := range f.answers {
		if a.SessionID == sessionID {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (f *fakeSessionRepo) GetQuestionInType(ctx context.Context, questionID, typeID uuid.UUID) (*dbm.Question, error) {
	for _, area := range f.catalog.areas {
		if area.DiagnosticTypeID != typeID {
			continue
		}
		for i := range area.Questions {
			if area.Questions[i].ID == questionID {
				return &area.Questions[i], nil
			}
		}
	}
	return nil, nil
}

func (f *fakeSessionRepo) CountMandatoryQuestions(ctx context.Context, typeID uuid.UUID) (int64, error) {
	var count int64
	for _, area := range f.catalog.areas {
		if area.DiagnosticTypeID != typeID {
			continue
		}
		for _, q := range area.Questions {
			if q.Mandatory {
				count++
			}
		}
	}
	return count, nil
}

func (f *fakeSessionRepo) CountAllQuestions(ctx context.Context, typeID uuid.UUID) (int64, error) {
	var count int64
	for _, area := range f.catalog.areas {
		if area.DiagnosticTypeID == typeID {
			count += int64(len(area.Questions))
		}
	}
	return count, nil
}

func (f *fakeSessionRepo) CountAnsweredMandatory(ctx context.Context, sessionID, typeID uuid.UUID) (int64, error) {
	var count int64
	for _, area := range f.catalog.areas {
		if area.DiagnosticTypeID != typeID {
			continue
		}
		for _, q := range area.Questions {
			if !q.Mandatory {
				continue
			}
			if _, ok := f.answers[answerKey(sessionID, q.ID)]; ok {
				count++
			}
		}
	}
	return count, nil
}

func (f *fakeSessionRepo) FinalizeSession(ctx context.Context, sessionID uuid.UUID, results dbm.AreaResultMap, totalScore float64, maturityLevel string) error {
	session := f.sessions[sessionID]
	if session == nil || session.State != dbm.SessionStateInProgress {
		return repositories.ErrFinalizeConflict
	}
	now := int64(1700000000)
	session.State = dbm.SessionStateCompleted
	session.CompletedAt = &now
	session.TotalScore = &totalScore
	session.MaturityLevel = &maturityLevel
	session.AreaResults = results
	return nil
}

func (f *fakeSessionRepo) CancelSession(ctx context.Context, sessionID uuid.UUID) error {
	session := f.sessions[sessionID]
	if session == nil || session.State != dbm.SessionStateInProgress {
		return repositories.ErrFinalizeConflict
	}
	session.State = dbm.SessionStateCancelled
	return nil
}

type fakeProfileRepo struct {
	profiles map[uuid.UUID]*dbm.BusinessProfile
}

func newFakeProfileRepo() *fakeProfileRepo {
	return &fakeProfileRepo{profiles: map[uuid.UUID]*dbm.BusinessProfile{}}
}

func (f *fakeProfileRepo) CreateProfile(ctx context.Context, profile *dbm.BusinessProfile) error {
	if profile.ID == uuid.Nil {
		profile.ID = uuid.New()
	}
	f.profiles[profile.ID] = profile
	return nil
}

func (f *fakeProfileRepo) GetProfileByID(ctx context.Context, id uuid.UUID) (*dbm.BusinessProfile, error) {
	return f.profiles[id], nil
}

func (f *fakeProfileRepo) ListProfilesByUser(ctx context.Context, userID uuid.UUID) ([]dbm.BusinessProfile, error) {
	var out []dbm.BusinessProfile
	for _, p := range f.profiles {
		if p.UserID == userID {
			out = append(out, *p)
		}
	}
	return out, nil
}

type fakeRecommendationRepo struct {
	rules map[uuid.UUID][]dbm.RecommendationRule
	recs  map[uuid.UUID][]dbm.Recommendation
}

func newFakeRecommendationRepo() *fakeRecommendationRepo {
	return &fakeRecommendationRepo{
		rules: map[uuid.UUID][]dbm.RecommendationRule{},
		recs:  map[uuid.UUID][]dbm.Recommendation{},
	}
}

func (f *fakeRecommendationRepo) ListRulesByAreas(ctx context.Context, areaIDs []uuid.UUID) ([]dbm.RecommendationRule, error) {
	var out []dbm.RecommendationRule
	for _, id := range areaIDs {
		out = append(out, f.rules[id]...)
	}
	return out, nil
}

func (f *fakeRecommendationRepo) CreateRule(ctx context.Context, rule *dbm.RecommendationRule) error {
	if rule.ID == uuid.Nil {
		rule.ID = uuid.New()
	}
	f.rules[rule.AreaID] = append(f.rules[rule.AreaID], *rule)
	return nil
}

func (f *fakeRecommendationRepo) GetRuleByID(ctx context.Context, id uuid.UUID) (*dbm.RecommendationRule, error) {
	for _, rules := range f.rules {
		for i := range rules {
			if rules[i].ID == id {
				return &rules[i], nil
			}
		}
	}
	return nil, nil
}

func (f *fakeRecommendationRepo) DeleteRule(ctx context.Context, id uuid.UUID) error {
	for areaID, rules := range f.rules {
		for i := range rules {
			if rules[i].ID == id {
				f.rules[areaID] = append(rules[:i], rules[i+1:]...)
				return nil
			}
		}
	}
	return nil
}

func (f *fakeRecommendationRepo) ReplaceForSession(ctx context.Context, sessionID uuid.UUID, recs []dbm.Recommendation) error {
	f.recs[sessionID] = recs
	return nil
}

func (f *fakeRecommendationRepo) ListBySession(ctx context.Context, sessionID uuid.UUID) ([]dbm.Recommendation, error) {
	return f.recs[sessionID], nil
}
