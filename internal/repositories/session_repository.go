package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	dbm "impulsa/internal/models/db_models"
)

var (
	// ErrFinalizeConflict is returned when the locked session row is no
	// longer in_progress by the time the finalize transaction holds it.
	ErrFinalizeConflict = errors.New("session state changed before finalize")
)

type SessionRepository interface {
	CreateSession(ctx context.Context, session *dbm.DiagnosticSession) error
	GetSessionByID(ctx context.Context, id uuid.UUID) (*dbm.DiagnosticSession, error)
	ListSessionsByUser(ctx context.Context, userID uuid.UUID, page, pageSize int) ([]dbm.DiagnosticSession, error)

	UpsertAnswer(ctx context.Context, answer *dbm.Answer) error
	GetAnswersBySession(ctx context.Context, sessionID uuid.UUID) ([]dbm.Answer, error)
	GetQuestionInType(ctx context.Context, questionID, typeID uuid.UUID) (*dbm.Question, error)

	CountMandatoryQuestions(ctx context.Context, typeID uuid.UUID) (int64, error)
	CountAllQuestions(ctx context.Context, typeID uuid.UUID) (int64, error)
	CountAnsweredMandatory(ctx context.Context, sessionID, typeID uuid.UUID) (int64, error)

	FinalizeSession(ctx context.Context, sessionID uuid.UUID, results dbm.AreaResultMap, totalScore float64, maturityLevel string) error
	CancelSession(ctx context.Context, sessionID uuid.UUID) error
}

type sessionRepository struct {
	db *gorm.DB
}

func NewSessionRepository(db *gorm.DB) SessionRepository {
	return &sessionRepository{db: db}
}

func (r *sessionRepository) CreateSession(ctx context.Context, session *dbm.DiagnosticSession) error {
	return r.db.WithContext(ctx).Create(session).Error
}

func (r *sessionRepository) GetSessionByID(ctx context.Context, id uuid.UUID) (*dbm.DiagnosticSession, error) {
	var session dbm.DiagnosticSession
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&session).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &session, nil
}

func (r *sessionRepository) ListSessionsByUser(ctx context.Context, userID uuid.UUID, page, pageSize int) ([]dbm.DiagnosticSession, error) {
	var sessions []dbm.DiagnosticSession
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("started_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&sessions).Error
	if err != nil {
		return nil, err
	}
	return sessions, nil
}

// UpsertAnswer writes the (session, question) answer atomically; a resubmit
// of the same question overwrites the previous values.
func (r *sessionRepository) UpsertAnswer(ctx context.Context, answer *dbm.Answer) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "session_id"}, {Name: "question_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"numeric_value", "text_value", "answered_at", "updated_at",
			}),
		}).
		Create(answer).Error
}

func (r *sessionRepository) GetAnswersBySession(ctx context.Context, sessionID uuid.UUID) ([]dbm.Answer, error) {
	var answers []dbm.Answer
	err := r.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Find(&answers).Error
	if err != nil {
		return nil, err
	}
	return answers, nil
}

// GetQuestionInType resolves a question only if it belongs to one of the
// given type's areas, so answers cannot reference foreign questionnaires.
func (r *sessionRepository) GetQuestionInType(ctx context.Context, questionID, typeID uuid.UUID) (*dbm.Question, error) {
	var q dbm.Question
	err := r.db.WithContext(ctx).
		Joins("JOIN evaluation_areas ON evaluation_areas.id = questions.area_id").
		Where("questions.id = ? AND evaluation_areas.diagnostic_type_id = ?", questionID, typeID).
		First(&q).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &q, nil
}

func (r *sessionRepository) CountMandatoryQuestions(ctx context.Context, typeID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&dbm.Question{}).
		Joins("JOIN evaluation_areas ON evaluation_areas.id = questions.area_id").
		Where("evaluation_areas.diagnostic_type_id = ? AND questions.mandatory = ?", typeID, true).
		Count(&count).Error
	return count, err
}

func (r *sessionRepository) CountAllQuestions(ctx context.Context, typeID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&dbm.Question{}).
		Joins("JOIN evaluation_areas ON evaluation_areas.id = questions.area_id").
		Where("evaluation_areas.diagnostic_type_id = ?", typeID).
		Count(&count).Error
	return count, err
}

func (r *sessionRepository) CountAnsweredMandatory(ctx context.Context, sessionID, typeID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&dbm.Answer{}).
		Joins("JOIN questions ON questions.id = answers.question_id").
		Joins("JOIN evaluation_areas ON evaluation_areas.id = questions.area_id").
		Where("answers.session_id = ? AND evaluation_areas.diagnostic_type_id = ? AND questions.mandatory = ?",
			sessionID, typeID, true).
		Count(&count).Error
	return count, err
}

// FinalizeSession runs the one-shot in_progress -> completed transition.
// The session row is locked FOR UPDATE and the state rechecked inside the
// transaction so two concurrent finalize calls cannot both commit.
func (r *sessionRepository) FinalizeSession(ctx context.Context, sessionID uuid.UUID, results dbm.AreaResultMap, totalScore float64, maturityLevel string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var session dbm.DiagnosticSession
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", sessionID).
			First(&session).Error; err != nil {
			return err
		}

		if session.State != dbm.SessionStateInProgress {
			return ErrFinalizeConflict
		}

		now := time.Now().Unix()
		return tx.Model(&session).Updates(map[string]interface{}{
			"state":          dbm.SessionStateCompleted,
			"completed_at":   now,
			"total_score":    totalScore,
			"maturity_level": maturityLevel,
			"area_results":   results,
		}).Error
	})
}

// CancelSession is the in_progress -> cancelled edge, guarded the same way.
func (r *sessionRepository) CancelSession(ctx context.Context, sessionID uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var session dbm.DiagnosticSession
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", sessionID).
			First(&session).Error; err != nil {
			return err
		}

		if session.State != dbm.SessionStateInProgress {
			return ErrFinalizeConflict
		}

		return tx.Model(&session).
			Update("state", dbm.SessionStateCancelled).Error
	})
}
