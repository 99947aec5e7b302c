package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	dbm "impulsa/internal/models/db_models"
	"impulsa/internal/models/request_models"
	"impulsa/pkg/utils"
)

func intPtr(v int) *int { return &v }

// testEnv wires the services over in-memory repositories with one active
// diagnostic type: two areas weighted 0.5, each holding two mandatory
// scale-1-5 questions of equal weight.
type testEnv struct {
	catalog  *fakeCatalogRepo
	sessions *fakeSessionRepo
	profiles *fakeProfileRepo
	recs     *fakeRecommendationRepo

	sessionService        SessionServiceInterface
	scoringService        ScoringServiceInterface
	recommendationService RecommendationServiceInterface
	comparisonService     ComparisonServiceInterface

	userID    uuid.UUID
	typeID    uuid.UUID
	areaA     uuid.UUID
	areaB     uuid.UUID
	questions []uuid.UUID // a1, a2, b1, b2
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	ctx := context.Background()

	env := &testEnv{
		catalog:  newFakeCatalogRepo(),
		profiles: newFakeProfileRepo(),
		recs:     newFakeRecommendationRepo(),
		userID:   uuid.New(),
	}
	env.sessions = newFakeSessionRepo(env.catalog)

	diagnosticType := &dbm.DiagnosticType{Name: "Digital Maturity", Slug: "digital-maturity", Active: true}
	require.NoError(t, env.catalog.CreateType(ctx, diagnosticType))
	env.typeID = diagnosticType.ID

	areaA := &dbm.EvaluationArea{DiagnosticTypeID: env.typeID, Name: "Area A", Weight: 0.5}
	areaB := &dbm.EvaluationArea{DiagnosticTypeID: env.typeID, Name: "Area B", Weight: 0.5}
	require.NoError(t, env.catalog.CreateArea(ctx, areaA))
	require.NoError(t, env.catalog.CreateArea(ctx, areaB))
	env.areaA, env.areaB = areaA.ID, areaB.ID

	for _, areaID := range []uuid.UUID{env.areaA, env.areaB} {
		for i := 0; i < 2; i++ {
			q := &dbm.Question{
				AreaID:    areaID,
				Text:      "How mature is this capability?",
				Kind:      dbm.QuestionKindScale,
				ScaleMin:  intPtr(1),
				ScaleMax:  intPtr(5),
				Weight:    1,
				Mandatory: true,
				Position:  i,
			}
			require.NoError(t, env.catalog.CreateQuestion(ctx, q))
			env.questions = append(env.questions, q.ID)
		}
	}

	config := DefaultScoringConfig()
	env.sessionService = NewSessionService(env.sessions, env.catalog, env.profiles)
	env.scoringService = NewScoringService(env.sessionService, env.sessions, env.catalog, config)
	env.recommendationService = NewRecommendationService(env.recs, env.catalog, env.sessionService, config)
	env.comparisonService = NewComparisonService(env.sessionService)
	return env
}

func (env *testEnv) startSession(t *testing.T) string {
	t.Helper()
	out, err := env.sessionService.Start(context.Background(), env.userID.String(),
		request_models.StartSessionRequest{DiagnosticTypeID: env.typeID.String()})
	require.NoError(t, err)
	return out.Session.ID
}

func floatPtr(v float64) *float64 { return &v }

// answerAll records values for the two questions of each area.
func (env *testEnv) answerAll(t *testing.T, sessionID string, areaAValue, areaBValue float64) {
	t.Helper()
	values := []float64{areaAValue, areaAValue, areaBValue, areaBValue}
	for i, questionID := range env.questions {
		err := env.sessionService.SaveAnswer(context.Background(), env.userID.String(), sessionID,
			request_models.SaveAnswerRequest{QuestionID: questionID.String(), NumericValue: floatPtr(values[i])})
		require.NoError(t, err)
	}
}

func TestNormalizeScaleValue(t *testing.T) {
	cases := []struct {
		value    float64
		min, max int
		want     float64
	}{
		{5, 1, 5, 100},
		{1, 1, 5, 0},
		{3, 1, 5, 50},
		{7, 0, 10, 70},
		{2, 2, 2, 0}, // degenerate scale
	}
	for _, c := range cases {
		assert.InDelta(t, c.want, NormalizeScaleValue(c.value, c.min, c.max), 0.001)
	}
}

func TestClassify(t *testing.T) {
	config := DefaultScoringConfig()
	assert.Equal(t, "incipient", config.Classify(0))
	assert.Equal(t, "incipient", config.Classify(35))
	assert.Equal(t, "developing", config.Classify(40))
	assert.Equal(t, "developing", config.Classify(50))
	assert.Equal(t, "advanced", config.Classify(70))
	assert.Equal(t, "advanced", config.Classify(100))
}

func TestScoringConfigFromEnv(t *testing.T) {
	t.Setenv("MATURITY_LEVELS", "basic:0,solid:55,leading:85")
	config := ScoringConfigFromEnv()
	assert.Equal(t, "basic", config.Classify(10))
	assert.Equal(t, "solid", config.Classify(55))
	assert.Equal(t, "leading", config.Classify(90))

	t.Setenv("MATURITY_LEVELS", "not-a-table")
	config = ScoringConfigFromEnv()
	assert.Equal(t, DefaultScoringConfig(), config)

	t.Setenv("MATURITY_LEVELS", "")
	assert.Equal(t, DefaultScoringConfig(), ScoringConfigFromEnv())
}

func TestComputeScoresWorkedExample(t *testing.T) {
	env := newTestEnv(t)
	sessionID := env.startSession(t)
	env.answerAll(t, sessionID, 5, 1)

	sid := uuid.MustParse(sessionID)
	areas, err := env.catalog.GetAreasWithQuestions(context.Background(), env.typeID)
	require.NoError(t, err)
	answers, err := env.sessions.GetAnswersBySession(context.Background(), sid)
	require.NoError(t, err)

	results, total := ComputeScores(areas, answers)
	assert.InDelta(t, 50, total, 0.001)
	assert.InDelta(t, 100, results[env.areaA.String()].Score, 0.001)
	assert.InDelta(t, 0, results[env.areaB.String()].Score, 0.001)
	assert.Len(t, results, 2)
}

func TestFinalizeIncompleteSessionFails(t *testing.T) {
	env := newTestEnv(t)
	sessionID := env.startSession(t)

	// only one of four mandatory questions answered
	err := env.sessionService.SaveAnswer(context.Background(), env.userID.String(), sessionID,
		request_models.SaveAnswerRequest{QuestionID: env.questions[0].String(), NumericValue: floatPtr(3)})
	require.NoError(t, err)

	_, err = env.scoringService.FinalizeAndScore(context.Background(), env.userID.String(), sessionID)
	var incomplete *utils.IncompleteSessionError
	require.ErrorAs(t, err, &incomplete)
	assert.Equal(t, 3, incomplete.Missing)

	session, _ := env.sessions.GetSessionByID(context.Background(), uuid.MustParse(sessionID))
	assert.Equal(t, dbm.SessionStateInProgress, session.State)
	assert.Nil(t, session.TotalScore)
}

func TestFinalizeComputesAndSealsSession(t *testing.T) {
	env := newTestEnv(t)
	sessionID := env.startSession(t)
	env.answerAll(t, sessionID, 5, 1)

	out, err := env.scoringService.FinalizeAndScore(context.Background(), env.userID.String(), sessionID)
	require.NoError(t, err)
	require.NotNil(t, out.TotalScore)
	assert.InDelta(t, 50, *out.TotalScore, 0.001)
	require.NotNil(t, out.MaturityLevel)
	assert.Equal(t, "developing", *out.MaturityLevel)
	assert.Equal(t, dbm.SessionStateCompleted, out.State)
	assert.NotNil(t, out.CompletedAt)
}

func TestFinalizeIsOneShot(t *testing.T) {
	env := newTestEnv(t)
	sessionID := env.startSession(t)
	env.answerAll(t, sessionID, 5, 1)

	first, err := env.scoringService.FinalizeAndScore(context.Background(), env.userID.String(), sessionID)
	require.NoError(t, err)

	_, err = env.scoringService.FinalizeAndScore(context.Background(), env.userID.String(), sessionID)
	assert.ErrorIs(t, err, utils.ErrSessionAlreadyFinished)

	// first computation untouched
	session, _ := env.sessions.GetSessionByID(context.Background(), uuid.MustParse(sessionID))
	assert.Equal(t, *first.TotalScore, *session.TotalScore)
	assert.Len(t, session.AreaResults, 2)
}

func TestFinalizeRejectsForeignSession(t *testing.T) {
	env := newTestEnv(t)
	sessionID := env.startSession(t)
	env.answerAll(t, sessionID, 5, 5)

	_, err := env.scoringService.FinalizeAndScore(context.Background(), uuid.New().String(), sessionID)
	assert.ErrorIs(t, err, utils.ErrNotSessionOwner)
}

func TestComputeScoresSkipsTextQuestions(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	// an optional text question must not enter the numeric aggregate
	textQ := &dbm.Question{
		AreaID: env.areaA, Text: "Anything to add?", Kind: dbm.QuestionKindText, Weight: 1,
	}
	require.NoError(t, env.catalog.CreateQuestion(ctx, textQ))

	sessionID := env.startSession(t)
	env.answerAll(t, sessionID, 5, 1)
	note := "free text"
	err := env.sessionService.SaveAnswer(ctx, env.userID.String(), sessionID,
		request_models.SaveAnswerRequest{QuestionID: textQ.ID.String(), TextValue: &note})
	require.NoError(t, err)

	out, err := env.scoringService.FinalizeAndScore(ctx, env.userID.String(), sessionID)
	require.NoError(t, err)
	assert.InDelta(t, 50, *out.TotalScore, 0.001)
}
