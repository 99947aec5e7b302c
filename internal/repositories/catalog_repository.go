package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	dbm "impulsa/internal/models/db_models"
)

type CatalogRepository interface {
	ListTypes(ctx context.Context, includeInactive bool) ([]dbm.DiagnosticType, error)
	GetTypeByID(ctx context.Context, id uuid.UUID) (*dbm.DiagnosticType, error)
	GetTypeWithDetails(ctx context.Context, id uuid.UUID) (*dbm.DiagnosticType, error)
	GetAreasWithQuestions(ctx context.Context, typeID uuid.UUID) ([]dbm.EvaluationArea, error)
	CreateType(ctx context.Context, t *dbm.DiagnosticType) error
	UpdateTypeFields(ctx context.Context, id uuid.UUID, fields map[string]interface{}) error
	DeleteType(ctx context.Context, id uuid.UUID) error
	SlugExists(ctx context.Context, slug string, excludeID uuid.UUID) (bool, error)
	CountSessionsForType(ctx context.Context, typeID uuid.UUID) (int64, error)

	GetAreaByID(ctx context.Context, id uuid.UUID) (*dbm.EvaluationArea, error)
	CreateArea(ctx context.Context, area *dbm.EvaluationArea) error
	UpdateAreaFields(ctx context.Context, id uuid.UUID, fields map[string]interface{}) error
	DeleteArea(ctx context.Context, id uuid.UUID) error

	GetQuestionByID(ctx context.Context, id uuid.UUID) (*dbm.Question, error)
	CreateQuestion(ctx context.Context, q *dbm.Question) error
	UpdateQuestionFields(ctx context.Context, id uuid.UUID, fields map[string]interface{}) error
	DeleteQuestion(ctx context.Context, id uuid.UUID) error
}

type catalogRepository struct {
	db *gorm.DB
}

func NewCatalogRepository(db *gorm.DB) CatalogRepository {
	return &catalogRepository{db: db}
}

func (r *catalogRepository) ListTypes(ctx context.Context, includeInactive bool) ([]dbm.DiagnosticType, error) {
	var types []dbm.DiagnosticType
	query := r.db.WithContext(ctx).Order("name")
	if !includeInactive {
		query = query.Where("active = ?", true)
	}
	if err := query.Find(&types).Error; err != nil {
		return nil, err
	}
	return types, nil
}

func (r *catalogRepository) GetTypeByID(ctx context.Context, id uuid.UUID) (*dbm.DiagnosticType, error) {
	var t dbm.DiagnosticType
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&t).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &t, nil
}

func (r *catalogRepository) GetTypeWithDetails(ctx context.Context, id uuid.UUID) (*dbm.DiagnosticType, error) {
	var t dbm.DiagnosticType
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		Preload("Areas", func(db *gorm.DB) *gorm.DB {
			return db.Order("position")
		}).
		Preload("Areas.Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("position")
		}).
		First(&t).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &t, nil
}

func (r *catalogRepository) GetAreasWithQuestions(ctx context.Context, typeID uuid.UUID) ([]dbm.EvaluationArea, error) {
	var areas []dbm.EvaluationArea
	err := r.db.WithContext(ctx).
		Where("diagnostic_type_id = ?", typeID).
		Order("position").
		Preload("Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("position")
		}).
		Find(&areas).Error
	if err != nil {
		return nil, err
	}
	return areas, nil
}

func (r *catalogRepository) CreateType(ctx context.Context, t *dbm.DiagnosticType) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *catalogRepository) UpdateTypeFields(ctx context.Context, id uuid.UUID, fields map[string]interface{}) error {
	return r.db.WithContext(ctx).
		Model(&dbm.DiagnosticType{}).
		Where("id = ?", id).
		Updates(fields).Error
}

// DeleteType removes the type with its areas and questions in one
// transaction. Callers must have checked there are no referencing sessions.
func (r *catalogRepository) DeleteType(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		subAreaIDs := tx.Model(&dbm.EvaluationArea{}).
			Select("id").
			Where("diagnostic_type_id = ?", id)

		if err := tx.Where("area_id IN (?)", subAreaIDs).
			Delete(&dbm.Question{}).Error; err != nil {
			return err
		}
		if err := tx.Where("diagnostic_type_id = ?", id).
			Delete(&dbm.EvaluationArea{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&dbm.DiagnosticType{}).Error
	})
}

func (r *catalogRepository) SlugExists(ctx context.Context, slug string, excludeID uuid.UUID) (bool, error) {
	var count int64
	query := r.db.WithContext(ctx).
		Model(&dbm.DiagnosticType{}).
		Where("slug = ?", slug)
	if excludeID != uuid.Nil {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *catalogRepository) CountSessionsForType(ctx context.Context, typeID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&dbm.DiagnosticSession{}).
		Where("diagnostic_type_id = ?", typeID).
		Count(&count).Error
	return count, err
}

func (r *catalogRepository) GetAreaByID(ctx context.Context, id uuid.UUID) (*dbm.EvaluationArea, error) {
	var area dbm.EvaluationArea
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&area).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &area, nil
}

func (r *catalogRepository) CreateArea(ctx context.Context, area *dbm.EvaluationArea) error {
	return r.db.WithContext(ctx).Create(area).Error
}

func (r *catalogRepository) UpdateAreaFields(ctx context.Context, id uuid.UUID, fields map[string]interface{}) error {
	return r.db.WithContext(ctx).
		Model(&dbm.EvaluationArea{}).
		Where("id = ?", id).
		Updates(fields).Error
}

// DeleteArea cascades to the area's questions.
func (r *catalogRepository) DeleteArea(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("area_id = ?", id).Delete(&dbm.Question{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&dbm.EvaluationArea{}).Error
	})
}

func (r *catalogRepository) GetQuestionByID(ctx context.Context, id uuid.UUID) (*dbm.Question, error) {
	var q dbm.Question
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&q).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &q, nil
}

func (r *catalogRepository) CreateQuestion(ctx context.Context, q *dbm.Question) error {
	return r.db.WithContext(ctx).Create(q).Error
}

func (r *catalogRepository) UpdateQuestionFields(ctx context.Context, id uuid.UUID, fields map[string]interface{}) error {
	return r.db.WithContext(ctx).
		Model(&dbm.Question{}).
		Where("id = ?", id).
		Updates(fields).Error
}

func (r *catalogRepository) DeleteQuestion(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&dbm.Question{}).Error
}
