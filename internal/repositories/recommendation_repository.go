package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	dbm "impulsa/internal/models/db_models"
)

type RecommendationRepository interface {
	ListRulesByAreas(ctx context.Context, areaIDs []uuid.UUID) ([]dbm.RecommendationRule, error)
	CreateRule(ctx context.Context, rule *dbm.RecommendationRule) error
	GetRuleByID(ctx context.Context, id uuid.UUID) (*dbm.RecommendationRule, error)
	DeleteRule(ctx context.Context, id uuid.UUID) error

	ReplaceForSession(ctx context.Context, sessionID uuid.UUID, recs []dbm.Recommendation) error
	ListBySession(ctx context.Context, sessionID uuid.UUID) ([]dbm.Recommendation, error)
}

type recommendationRepository struct {
	db *gorm.DB
}

func NewRecommendationRepository(db *gorm.DB) RecommendationRepository {
	return &recommendationRepository{db: db}
}

func (r *recommendationRepository) ListRulesByAreas(ctx context.Context, areaIDs []uuid.UUID) ([]dbm.RecommendationRule, error) {
	var rules []dbm.RecommendationRule
	err := r.db.WithContext(ctx).
		Where("area_id IN (?)", areaIDs).
		Order("priority").
		Find(&rules).Error
	if err != nil {
		return nil, err
	}
	return rules, nil
}

func (r *recommendationRepository) CreateRule(ctx context.Context, rule *dbm.RecommendationRule) error {
	return r.db.WithContext(ctx).Create(rule).Error
}

func (r *recommendationRepository) GetRuleByID(ctx context.Context, id uuid.UUID) (*dbm.RecommendationRule, error) {
	var rule dbm.RecommendationRule
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&rule).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rule, nil
}

func (r *recommendationRepository) DeleteRule(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&dbm.RecommendationRule{}).Error
}

// ReplaceForSession wipes any prior generation and writes the new set in one
// transaction, so readers never observe a half-regenerated set.
func (r *recommendationRepository) ReplaceForSession(ctx context.Context, sessionID uuid.UUID, recs []dbm.Recommendation) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("session_id = ?", sessionID).
			Delete(&dbm.Recommendation{}).Error; err != nil {
			return err
		}
		if len(recs) == 0 {
			return nil
		}
		return tx.Create(&recs).Error
	})
}

func (r *recommendationRepository) ListBySession(ctx context.Context, sessionID uuid.UUID) ([]dbm.Recommendation, error) {
	var recs []dbm.Recommendation
	err := r.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Order("area_name, priority").
		Find(&recs).Error
	if err != nil {
		return nil, err
	}
	return recs, nil
}
