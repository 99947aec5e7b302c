package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"github.com/lib/pq"
	dbm "impulsa/internal/models/db_models"
	"impulsa/internal/models/request_models"
	"impulsa/internal/models/response_models"
	"impulsa/internal/repositories"
	"impulsa/pkg/utils"
)

type CatalogServiceInterface interface {
	ListTypes(ctx context.Context, includeInactive bool) ([]response_models.DiagnosticTypeResponse, error)
	GetType(ctx context.Context, typeID string, withDetails bool) (*response_models.DiagnosticTypeResponse, error)
	GetAreasWithQuestions(ctx context.Context, typeID uuid.UUID) ([]dbm.EvaluationArea, error)
	GenerateUniqueSlug(ctx context.Context, name string, excludeID uuid.UUID) (string, error)

	CreateType(ctx context.Context, req request_models.CreateDiagnosticTypeRequest) (*response_models.DiagnosticTypeResponse, error)
	UpdateType(ctx context.Context, typeID string, req request_models.UpdateDiagnosticTypeRequest) error
	DeleteType(ctx context.Context, typeID string) error

	CreateArea(ctx context.Context, req request_models.CreateAreaRequest) (string, error)
	UpdateArea(ctx context.Context, areaID string, req request_models.UpdateAreaRequest) error
	DeleteArea(ctx context.Context, areaID string) error

	CreateQuestion(ctx context.Context, req request_models.CreateQuestionRequest) (string, error)
	UpdateQuestion(ctx context.Context, questionID string, req request_models.UpdateQuestionRequest) error
	DeleteQuestion(ctx context.Context, questionID string) error
}

type CatalogService struct {
	catalogRepo repositories.CatalogRepository
}

func NewCatalogService(catalogRepo repositories.CatalogRepository) CatalogServiceInterface {
	return &CatalogService{catalogRepo: catalogRepo}
}

func (s *CatalogService) ListTypes(ctx context.Context, includeInactive bool) ([]response_models.DiagnosticTypeResponse, error) {
	types, err := s.catalogRepo.ListTypes(ctx, includeInactive)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	out := make([]response_models.DiagnosticTypeResponse, 0, len(types))
	for i := range types {
		out = append(out, *response_models.BuildTypeResponse(&types[i], false))
	}
	return out, nil
}

func (s *CatalogService) GetType(ctx context.Context, typeID string, withDetails bool) (*response_models.DiagnosticTypeResponse, error) {
	id, err := uuid.Parse(typeID)
	if err != nil {
		return nil, utils.ErrInvalidInput
	}

	var t *dbm.DiagnosticType
	if withDetails {
		t, err = s.catalogRepo.GetTypeWithDetails(ctx, id)
	} else {
		t, err = s.catalogRepo.GetTypeByID(ctx, id)
	}
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if t == nil {
		return nil, utils.ErrDiagnosticTypeNotFound
	}

	return response_models.BuildTypeResponse(t, withDetails), nil
}

func (s *CatalogService) GetAreasWithQuestions(ctx context.Context, typeID uuid.UUID) ([]dbm.EvaluationArea, error) {
	areas, err := s.catalogRepo.GetAreasWithQuestions(ctx, typeID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	return areas, nil
}

// GenerateUniqueSlug slugifies the name and probes ascending -2, -3, ...
// suffixes until a free slug is found, skipping the record's own slug on
// updates.
func (s *CatalogService) GenerateUniqueSlug(ctx context.Context, name string, excludeID uuid.UUID) (string, error) {
	base := slug.Make(name)
	candidate := base

	for i := 2; ; i++ {
		exists, err := s.catalogRepo.SlugExists(ctx, candidate, excludeID)
		if err != nil {
			return "", utils.ErrDatabaseError
		}
		if !exists {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, i)
	}
}

func (s *CatalogService) CreateType(ctx context.Context, req request_models.CreateDiagnosticTypeRequest) (*response_models.DiagnosticTypeResponse, error) {
	uniqueSlug, err := s.GenerateUniqueSlug(ctx, req.Name, uuid.Nil)
	if err != nil {
		return nil, err
	}

	active := true
	if req.Active != nil {
		active = *req.Active
	}

	t := &dbm.DiagnosticType{
		Name:              req.Name,
		Slug:              uniqueSlug,
		Description:       req.Description,
		EstimatedDuration: req.EstimatedDuration,
		DetailLevel:       req.DetailLevel,
		Active:            active,
	}
	if err := s.catalogRepo.CreateType(ctx, t); err != nil {
		return nil, utils.ErrDatabaseError
	}

	return response_models.BuildTypeResponse(t, false), nil
}

func (s *CatalogService) UpdateType(ctx context.Context, typeID string, req request_models.UpdateDiagnosticTypeRequest) error {
	id, err := uuid.Parse(typeID)
	if err != nil {
		return utils.ErrInvalidInput
	}

	existing, err := s.catalogRepo.GetTypeByID(ctx, id)
	if err != nil {
		return utils.ErrDatabaseError
	}
	if existing == nil {
		return utils.ErrDiagnosticTypeNotFound
	}

	fields := map[string]interface{}{}
	if req.Name != nil {
		newSlug, err := s.GenerateUniqueSlug(ctx, *req.Name, id)
		if err != nil {
			return err
		}
		fields["name"] = *req.Name
		fields["slug"] = newSlug
	}
	if req.Description != nil {
		fields["description"] = *req.Description
	}
	if req.EstimatedDuration != nil {
		fields["estimated_duration"] = *req.EstimatedDuration
	}
	if req.DetailLevel != nil {
		fields["detail_level"] = *req.DetailLevel
	}
	if req.Active != nil {
		fields["active"] = *req.Active
	}
	if len(fields) == 0 {
		return nil
	}

	if err := s.catalogRepo.UpdateTypeFields(ctx, id, fields); err != nil {
		return utils.ErrDatabaseError
	}
	return nil
}

// DeleteType refuses to remove a type that sessions still reference.
func (s *CatalogService) DeleteType(ctx context.Context, typeID string) error {
	id, err := uuid.Parse(typeID)
	if err != nil {
		return utils.ErrInvalidInput
	}

	existing, err := s.catalogRepo.GetTypeByID(ctx, id)
	if err != nil {
		return utils.ErrDatabaseError
	}
	if existing == nil {
		return utils.ErrDiagnosticTypeNotFound
	}

	count, err := s.catalogRepo.CountSessionsForType(ctx, id)
	if err != nil {
		return utils.ErrDatabaseError
	}
	if count > 0 {
		return utils.ErrTypeInUse
	}

	if err := s.catalogRepo.DeleteType(ctx, id); err != nil {
		return utils.ErrDatabaseError
	}
	return nil
}

func (s *CatalogService) CreateArea(ctx context.Context, req request_models.CreateAreaRequest) (string, error) {
	typeID, err := uuid.Parse(req.DiagnosticTypeID)
	if err != nil {
		return "", utils.ErrInvalidInput
	}
	if req.Weight < 0 || req.Weight > 1 {
		return "", utils.ErrInvalidAreaWeight
	}

	t, err := s.catalogRepo.GetTypeByID(ctx, typeID)
	if err != nil {
		return "", utils.ErrDatabaseError
	}
	if t == nil {
		return "", utils.ErrDiagnosticTypeNotFound
	}

	area := &dbm.EvaluationArea{
		DiagnosticTypeID: typeID,
		Name:             req.Name,
		Weight:           req.Weight,
		Position:         req.Position,
		Icon:             req.Icon,
		Color:            req.Color,
	}
	if err := s.catalogRepo.CreateArea(ctx, area); err != nil {
		return "", utils.ErrDatabaseError
	}
	return area.ID.String(), nil
}

func (s *CatalogService) UpdateArea(ctx context.Context, areaID string, req request_models.UpdateAreaRequest) error {
	id, err := uuid.Parse(areaID)
	if err != nil {
		return utils.ErrInvalidInput
	}

	existing, err := s.catalogRepo.GetAreaByID(ctx, id)
	if err != nil {
		return utils.ErrDatabaseError
	}
	if existing == nil {
		return utils.ErrAreaNotFound
	}

	fields := map[string]interface{}{}
	if req.Name != nil {
		fields["name"] = *req.Name
	}
	if req.Weight != nil {
		if *req.Weight < 0 || *req.Weight > 1 {
			return utils.ErrInvalidAreaWeight
		}
		fields["weight"] = *req.Weight
	}
	if req.Position != nil {
		fields["position"] = *req.Position
	}
	if req.Icon != nil {
		fields["icon"] = *req.Icon
	}
	if req.Color != nil {
		fields["color"] = *req.Color
	}
	if len(fields) == 0 {
		return nil
	}

	if err := s.catalogRepo.UpdateAreaFields(ctx, id, fields); err != nil {
		return utils.ErrDatabaseError
	}
	return nil
}

func (s *CatalogService) DeleteArea(ctx context.Context, areaID string) error {
	id, err := uuid.Parse(areaID)
	if err != nil {
		return utils.ErrInvalidInput
	}

	existing, err := s.catalogRepo.GetAreaByID(ctx, id)
	if err != nil {
		return utils.ErrDatabaseError
	}
	if existing == nil {
		return utils.ErrAreaNotFound
	}

	if err := s.catalogRepo.DeleteArea(ctx, id); err != nil {
		return utils.ErrDatabaseError
	}
	return nil
}

func (s *CatalogService) CreateQuestion(ctx context.Context, req request_models.CreateQuestionRequest) (string, error) {
	areaID, err := uuid.Parse(req.AreaID)
	if err != nil {
		return "", utils.ErrInvalidInput
	}

	area, err := s.catalogRepo.GetAreaByID(ctx, areaID)
	if err != nil {
		return "", utils.ErrDatabaseError
	}
	if area == nil {
		return "", utils.ErrAreaNotFound
	}

	q := &dbm.Question{
		AreaID:    areaID,
		Text:      req.Text,
		Kind:      req.Kind,
		ScaleMin:  req.ScaleMin,
		ScaleMax:  req.ScaleMax,
		Options:   req.Options,
		Weight:    req.Weight,
		Mandatory: req.Mandatory,
		Position:  req.Position,
	}
	if q.Weight == 0 {
		q.Weight = 1
	}
	if err := validateQuestionPayload(q); err != nil {
		return "", err
	}

	if err := s.catalogRepo.CreateQuestion(ctx, q); err != nil {
		return "", utils.ErrDatabaseError
	}
	return q.ID.String(), nil
}

func (s *CatalogService) UpdateQuestion(ctx context.Context, questionID string, req request_models.UpdateQuestionRequest) error {
	id, err := uuid.Parse(questionID)
	if err != nil {
		return utils.ErrInvalidInput
	}

	existing, err := s.catalogRepo.GetQuestionByID(ctx, id)
	if err != nil {
		return utils.ErrDatabaseError
	}
	if existing == nil {
		return utils.ErrQuestionNotFound
	}

	// Apply onto a copy first so the kind-dependent payload is validated as
	// a whole, not field by field.
	updated := *existing
	fields := map[string]interface{}{}
	if req.Text != nil {
		updated.Text = *req.Text
		fields["text"] = *req.Text
	}
	if req.ScaleMin != nil {
		updated.ScaleMin = req.ScaleMin
		fields["scale_min"] = *req.ScaleMin
	}
	if req.ScaleMax != nil {
		updated.ScaleMax = req.ScaleMax
		fields["scale_max"] = *req.ScaleMax
	}
	if req.Options != nil {
		updated.Options = req.Options
		fields["options"] = pq.StringArray(req.Options)
	}
	if req.Weight != nil {
		updated.Weight = *req.Weight
		fields["weight"] = *req.Weight
	}
	if req.Mandatory != nil {
		updated.Mandatory = *req.Mandatory
		fields["mandatory"] = *req.Mandatory
	}
	if req.Position != nil {
		updated.Position = *req.Position
		fields["position"] = *req.Position
	}
	if len(fields) == 0 {
		return nil
	}

	if err := validateQuestionPayload(&updated); err != nil {
		return err
	}

	if err := s.catalogRepo.UpdateQuestionFields(ctx, id, fields); err != nil {
		return utils.ErrDatabaseError
	}
	return nil
}

func (s *CatalogService) DeleteQuestion(ctx context.Context, questionID string) error {
	id, err := uuid.Parse(questionID)
	if err != nil {
		return utils.ErrInvalidInput
	}

	existing, err := s.catalogRepo.GetQuestionByID(ctx, id)
	if err != nil {
		return utils.ErrDatabaseError
	}
	if existing == nil {
		return utils.ErrQuestionNotFound
	}

	if err := s.catalogRepo.DeleteQuestion(ctx, id); err != nil {
		return utils.ErrDatabaseError
	}
	return nil
}

// validateQuestionPayload enforces the kind-dependent shape: scale questions
// need coherent bounds, choice questions need at least two options, text
// questions carry neither.
func validateQuestionPayload(q *dbm.Question) error {
	if !dbm.ValidQuestionKind(q.Kind) {
		return utils.ErrInvalidQuestionKind
	}
	if q.Weight <= 0 {
		return utils.ErrInvalidInput
	}

	switch q.Kind {
	case dbm.QuestionKindScale:
		if q.ScaleMin == nil || q.ScaleMax == nil || *q.ScaleMin >= *q.ScaleMax {
			return utils.ErrInvalidInput
		}
		if len(q.Options) > 0 {
			return utils.ErrInvalidInput
		}
	case dbm.QuestionKindChoice:
		if len(q.Options) < 2 {
			return utils.ErrInvalidInput
		}
		if q.ScaleMin != nil || q.ScaleMax != nil {
			return utils.ErrInvalidInput
		}
	case dbm.QuestionKindText:
		if q.ScaleMin != nil || q.ScaleMax != nil || len(q.Options) > 0 {
			return utils.ErrInvalidInput
		}
	}
	return nil
}
