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

func boolPtr(v bool) *bool    { return &v }
func strPtr(v string) *string { return &v }

func TestCreateTypeGeneratesUniqueSlug(t *testing.T) {
	env := newTestEnv(t)
	catalogService := NewCatalogService(env.catalog)
	ctx := context.Background()

	// the fixture already holds "digital-maturity"
	second, err := catalogService.CreateType(ctx, request_models.CreateDiagnosticTypeRequest{Name: "Digital Maturity"})
	require.NoError(t, err)
	assert.Equal(t, "digital-maturity-2", second.Slug)

	third, err := catalogService.CreateType(ctx, request_models.CreateDiagnosticTypeRequest{Name: "Digital Maturity"})
	require.NoError(t, err)
	assert.Equal(t, "digital-maturity-3", third.Slug)

	assert.True(t, second.Active, "active defaults to true")
}

func TestUpdateTypeKeepsOwnSlugOnRename(t *testing.T) {
	env := newTestEnv(t)
	catalogService := NewCatalogService(env.catalog)
	ctx := context.Background()

	// renaming to its own current name must not pick up a -2 suffix
	err := catalogService.UpdateType(ctx, env.typeID.String(),
		request_models.UpdateDiagnosticTypeRequest{Name: strPtr("Digital Maturity")})
	require.NoError(t, err)

	updated, err := env.catalog.GetTypeByID(ctx, env.typeID)
	require.NoError(t, err)
	assert.Equal(t, "digital-maturity", updated.Slug)

	err = catalogService.UpdateType(ctx, env.typeID.String(),
		request_models.UpdateDiagnosticTypeRequest{Name: strPtr("Madurez Digital"), Active: boolPtr(false)})
	require.NoError(t, err)

	updated, _ = env.catalog.GetTypeByID(ctx, env.typeID)
	assert.Equal(t, "madurez-digital", updated.Slug)
	assert.False(t, updated.Active)
}

func TestDeleteTypeRejectedWhenSessionsExist(t *testing.T) {
	env := newTestEnv(t)
	catalogService := NewCatalogService(env.catalog)
	ctx := context.Background()

	env.catalog.sessionCounts[env.typeID] = 3
	err := catalogService.DeleteType(ctx, env.typeID.String())
	assert.ErrorIs(t, err, utils.ErrTypeInUse)

	env.catalog.sessionCounts[env.typeID] = 0
	require.NoError(t, catalogService.DeleteType(ctx, env.typeID.String()))

	err = catalogService.DeleteType(ctx, env.typeID.String())
	assert.ErrorIs(t, err, utils.ErrDiagnosticTypeNotFound)
}

func TestListTypesFiltersInactive(t *testing.T) {
	env := newTestEnv(t)
	catalogService := NewCatalogService(env.catalog)
	ctx := context.Background()

	inactive := &dbm.DiagnosticType{Name: "Draft", Slug: "draft", Active: false}
	require.NoError(t, env.catalog.CreateType(ctx, inactive))

	visible, err := catalogService.ListTypes(ctx, false)
	require.NoError(t, err)
	assert.Len(t, visible, 1)

	all, err := catalogService.ListTypes(ctx, true)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestCreateAreaValidatesWeight(t *testing.T) {
	env := newTestEnv(t)
	catalogService := NewCatalogService(env.catalog)
	ctx := context.Background()

	for _, weight := range []float64{-0.1, 1.5} {
		_, err := catalogService.CreateArea(ctx, request_models.CreateAreaRequest{
			DiagnosticTypeID: env.typeID.String(), Name: "Broken", Weight: weight,
		})
		assert.ErrorIs(t, err, utils.ErrInvalidAreaWeight, "weight %v", weight)
	}

	_, err := catalogService.CreateArea(ctx, request_models.CreateAreaRequest{
		DiagnosticTypeID: uuid.New().String(), Name: "Orphan", Weight: 0.5,
	})
	assert.ErrorIs(t, err, utils.ErrDiagnosticTypeNotFound)

	id, err := catalogService.CreateArea(ctx, request_models.CreateAreaRequest{
		DiagnosticTypeID: env.typeID.String(), Name: "Finance", Weight: 0.25,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, id)
}

func TestCreateQuestionValidatesKindPayload(t *testing.T) {
	env := newTestEnv(t)
	catalogService := NewCatalogService(env.catalog)
	ctx := context.Background()
	areaID := env.areaA.String()

	cases := []struct {
		name string
		req  request_models.CreateQuestionRequest
		want error
	}{
		{"unknown kind", request_models.CreateQuestionRequest{
			AreaID: areaID, Text: "?", Kind: "slider"}, utils.ErrInvalidQuestionKind},
		{"scale without bounds", request_models.CreateQuestionRequest{
			AreaID: areaID, Text: "?", Kind: dbm.QuestionKindScale}, utils.ErrInvalidInput},
		{"scale with inverted bounds", request_models.CreateQuestionRequest{
			AreaID: areaID, Text: "?", Kind: dbm.QuestionKindScale,
			ScaleMin: intPtr(5), ScaleMax: intPtr(1)}, utils.ErrInvalidInput},
		{"scale with options", request_models.CreateQuestionRequest{
			AreaID: areaID, Text: "?", Kind: dbm.QuestionKindScale,
			ScaleMin: intPtr(1), ScaleMax: intPtr(5), Options: []string{"a", "b"}}, utils.ErrInvalidInput},
		{"choice with one option", request_models.CreateQuestionRequest{
			AreaID: areaID, Text: "?", Kind: dbm.QuestionKindChoice,
			Options: []string{"only"}}, utils.ErrInvalidInput},
		{"choice with scale bounds", request_models.CreateQuestionRequest{
			AreaID: areaID, Text: "?", Kind: dbm.QuestionKindChoice,
			Options: []string{"a", "b"}, ScaleMin: intPtr(1)}, utils.ErrInvalidInput},
		{"text with options", request_models.CreateQuestionRequest{
			AreaID: areaID, Text: "?", Kind: dbm.QuestionKindText,
			Options: []string{"a", "b"}}, utils.ErrInvalidInput},
		{"negative weight", request_models.CreateQuestionRequest{
			AreaID: areaID, Text: "?", Kind: dbm.QuestionKindText, Weight: -1}, utils.ErrInvalidInput},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := catalogService.CreateQuestion(ctx, c.req)
			assert.ErrorIs(t, err, c.want)
		})
	}

	id, err := catalogService.CreateQuestion(ctx, request_models.CreateQuestionRequest{
		AreaID: areaID, Text: "Free comments", Kind: dbm.QuestionKindText,
	})
	require.NoError(t, err)

	created, err := env.catalog.GetQuestionByID(ctx, uuid.MustParse(id))
	require.NoError(t, err)
	assert.InDelta(t, 1, created.Weight, 0.001, "weight defaults to 1")
}

func TestUpdateQuestionValidatesMergedPayload(t *testing.T) {
	env := newTestEnv(t)
	catalogService := NewCatalogService(env.catalog)
	ctx := context.Background()

	// raising min above the existing max must fail even though the field is
	// valid in isolation
	err := catalogService.UpdateQuestion(ctx, env.questions[0].String(),
		request_models.UpdateQuestionRequest{ScaleMin: intPtr(9)})
	assert.ErrorIs(t, err, utils.ErrInvalidInput)

	err = catalogService.UpdateQuestion(ctx, env.questions[0].String(),
		request_models.UpdateQuestionRequest{ScaleMin: intPtr(0), ScaleMax: intPtr(10)})
	assert.NoError(t, err)

	err = catalogService.UpdateQuestion(ctx, uuid.New().String(),
		request_models.UpdateQuestionRequest{Text: strPtr("gone")})
	assert.ErrorIs(t, err, utils.ErrQuestionNotFound)
}

func TestGetTypeWithDetails(t *testing.T) {
	env := newTestEnv(t)
	catalogService := NewCatalogService(env.catalog)
	ctx := context.Background()

	bare, err := catalogService.GetType(ctx, env.typeID.String(), false)
	require.NoError(t, err)
	assert.Empty(t, bare.Areas)

	full, err := catalogService.GetType(ctx, env.typeID.String(), true)
	require.NoError(t, err)
	require.Len(t, full.Areas, 2)
	for _, area := range full.Areas {
		assert.Len(t, area.Questions, 2)
	}

	_, err = catalogService.GetType(ctx, uuid.New().String(), true)
	assert.ErrorIs(t, err, utils.ErrDiagnosticTypeNotFound)
}
