package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	dbm "impulsa/internal/models/db_models"
	"impulsa/internal/models/request_models"
	"impulsa/internal/models/response_models"
	"impulsa/internal/repositories"
	"impulsa/pkg/utils"
)

const RoleAdmin = "admin"

type SessionServiceInterface interface {
	Start(ctx context.Context, userID string, req request_models.StartSessionRequest) (*response_models.StartSessionResponse, error)
	SaveAnswer(ctx context.Context, userID, sessionID string, req request_models.SaveAnswerRequest) error
	SaveAnswersBatch(ctx context.Context, userID, sessionID string, req request_models.SaveAnswersBatchRequest) (*response_models.BatchSaveResponse, error)
	GetProgress(ctx context.Context, userID, role, sessionID string) (*response_models.ProgressResponse, error)
	BelongsToUser(ctx context.Context, sessionID, userID string) (bool, error)
	GetOwnedSession(ctx context.Context, userID, role, sessionID string) (*dbm.DiagnosticSession, error)
	ListSessions(ctx context.Context, userID string, page, pageSize int) ([]response_models.SessionResponse, error)
	Cancel(ctx context.Context, userID, sessionID string) error
}

type SessionService struct {
	sessionRepo repositories.SessionRepository
	catalogRepo repositories.CatalogRepository
	profileRepo repositories.ProfileRepository
}

func NewSessionService(
	sessionRepo repositories.SessionRepository,
	catalogRepo repositories.CatalogRepository,
	profileRepo repositories.ProfileRepository,
) SessionServiceInterface {
	return &SessionService{
		sessionRepo: sessionRepo,
		catalogRepo: catalogRepo,
		profileRepo: profileRepo,
	}
}

// Start validates the type and optional profile, opens an in_progress
// session and returns it with the full ordered question set for rendering.
func (s *SessionService) Start(ctx context.Context, userID string, req request_models.StartSessionRequest) (*response_models.StartSessionResponse, error) {
	uid, err := uuid.Parse(userID)
	if err != nil {
		return nil, utils.ErrInvalidInput
	}
	typeID, err := uuid.Parse(req.DiagnosticTypeID)
	if err != nil {
		return nil, utils.ErrInvalidInput
	}

	diagnosticType, err := s.catalogRepo.GetTypeByID(ctx, typeID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if diagnosticType == nil {
		return nil, utils.ErrDiagnosticTypeNotFound
	}
	if !diagnosticType.Active {
		return nil, utils.ErrTypeInactive
	}

	var profileID *uuid.UUID
	if req.BusinessProfileID != "" {
		pid, err := uuid.Parse(req.BusinessProfileID)
		if err != nil {
			return nil, utils.ErrInvalidInput
		}
		profile, err := s.profileRepo.GetProfileByID(ctx, pid)
		if err != nil {
			return nil, utils.ErrDatabaseError
		}
		if profile == nil {
			return nil, utils.ErrProfileNotFound
		}
		if profile.UserID != uid {
			return nil, utils.ErrNotProfileOwner
		}
		profileID = &pid
	}

	session := &dbm.DiagnosticSession{
		UserID:            uid,
		DiagnosticTypeID:  typeID,
		BusinessProfileID: profileID,
		State:             dbm.SessionStateInProgress,
		StartedAt:         time.Now().Unix(),
	}
	if err := s.sessionRepo.CreateSession(ctx, session); err != nil {
		return nil, utils.ErrDatabaseError
	}

	areas, err := s.catalogRepo.GetAreasWithQuestions(ctx, typeID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	return &response_models.StartSessionResponse{
		Session: response_models.BuildSessionResponse(session),
		Areas:   response_models.BuildAreaResponses(areas),
	}, nil
}

func (s *SessionService) SaveAnswer(ctx context.Context, userID, sessionID string, req request_models.SaveAnswerRequest) error {
	session, err := s.GetOwnedSession(ctx, userID, "", sessionID)
	if err != nil {
		return err
	}
	return s.saveAnswerToSession(ctx, session, req)
}

// saveAnswerToSession holds the shared validation + upsert path so the batch
// variant does not re-fetch the session per item.
func (s *SessionService) saveAnswerToSession(ctx context.Context, session *dbm.DiagnosticSession, req request_models.SaveAnswerRequest) error {
	switch session.State {
	case dbm.SessionStateInProgress:
	case dbm.SessionStateCompleted:
		return utils.ErrSessionAlreadyFinished
	default:
		return utils.ErrSessionNotInProgress
	}

	questionID, err := uuid.Parse(req.QuestionID)
	if err != nil {
		return utils.ErrInvalidInput
	}

	question, err := s.sessionRepo.GetQuestionInType(ctx, questionID, session.DiagnosticTypeID)
	if err != nil {
		return utils.ErrDatabaseError
	}
	if question == nil {
		return utils.ErrQuestionNotFound
	}

	if err := validateAnswerValue(question, req); err != nil {
		return err
	}

	answer := &dbm.Answer{
		SessionID:    session.ID,
		QuestionID:   questionID,
		NumericValue: req.NumericValue,
		TextValue:    req.TextValue,
		AnsweredAt:   time.Now().Unix(),
	}
	if err := s.sessionRepo.UpsertAnswer(ctx, answer); err != nil {
		return utils.ErrDatabaseError
	}
	return nil
}

// validateAnswerValue checks the answer against the question kind: scale
// answers must be numeric and inside [scale_min, scale_max], choice answers
// must match one of the declared options, text answers must be non-empty.
func validateAnswerValue(question *dbm.Question, req request_models.SaveAnswerRequest) error {
	switch question.Kind {
	case dbm.QuestionKindScale:
		if req.NumericValue == nil {
			return utils.ErrInvalidInput
		}
		if question.ScaleMin != nil && *req.NumericValue < float64(*question.ScaleMin) {
			return utils.ErrValueOutOfRange
		}
		if question.ScaleMax != nil && *req.NumericValue > float64(*question.ScaleMax) {
			return utils.ErrValueOutOfRange
		}
	case dbm.QuestionKindChoice:
		if req.TextValue == nil || *req.TextValue == "" {
			return utils.ErrInvalidInput
		}
		for _, option := range question.Options {
			if option == *req.TextValue {
				return nil
			}
		}
		return utils.ErrInvalidInput
	case dbm.QuestionKindText:
		if req.TextValue == nil || *req.TextValue == "" {
			return utils.ErrInvalidInput
		}
	default:
		return utils.ErrInvalidQuestionKind
	}
	return nil
}

// SaveAnswersBatch applies each item independently, tolerating individual
// failures, and returns the per-item tally plus the final progress snapshot.
func (s *SessionService) SaveAnswersBatch(ctx context.Context, userID, sessionID string, req request_models.SaveAnswersBatchRequest) (*response_models.BatchSaveResponse, error) {
	session, err := s.GetOwnedSession(ctx, userID, "", sessionID)
	if err != nil {
		return nil, err
	}

	out := &response_models.BatchSaveResponse{
		Items: make([]response_models.BatchItemResult, 0, len(req.Answers)),
	}
	for _, item := range req.Answers {
		result := response_models.BatchItemResult{QuestionID: item.QuestionID}
		if err := s.saveAnswerToSession(ctx, session, item); err != nil {
			result.Error = err.Error()
			out.Failed++
		} else {
			result.Success = true
			out.Saved++
		}
		out.Items = append(out.Items, result)
	}

	progress, err := s.progressForSession(ctx, session)
	if err != nil {
		return nil, err
	}
	out.Progress = *progress
	return out, nil
}

func (s *SessionService) GetProgress(ctx context.Context, userID, role, sessionID string) (*response_models.ProgressResponse, error) {
	session, err := s.GetOwnedSession(ctx, userID, role, sessionID)
	if err != nil {
		return nil, err
	}
	return s.progressForSession(ctx, session)
}

// progressForSession counts mandatory questions only; optional questions may
// stay unanswered without blocking finalize. total_questions is reported
// separately for clients that render overall completion.
func (s *SessionService) progressForSession(ctx context.Context, session *dbm.DiagnosticSession) (*response_models.ProgressResponse, error) {
	total, err := s.sessionRepo.CountMandatoryQuestions(ctx, session.DiagnosticTypeID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	answered, err := s.sessionRepo.CountAnsweredMandatory(ctx, session.ID, session.DiagnosticTypeID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	allQuestions, err := s.sessionRepo.CountAllQuestions(ctx, session.DiagnosticTypeID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	return &response_models.ProgressResponse{
		Answered:       int(answered),
		Total:          int(total),
		Complete:       answered == total,
		TotalQuestions: int(allQuestions),
	}, nil
}

func (s *SessionService) BelongsToUser(ctx context.Context, sessionID, userID string) (bool, error) {
	sid, err := uuid.Parse(sessionID)
	if err != nil {
		return false, utils.ErrInvalidInput
	}
	uid, err := uuid.Parse(userID)
	if err != nil {
		return false, utils.ErrInvalidInput
	}

	session, err := s.sessionRepo.GetSessionByID(ctx, sid)
	if err != nil {
		return false, utils.ErrDatabaseError
	}
	if session == nil {
		return false, utils.ErrSessionNotFound
	}
	return session.UserID == uid, nil
}

// GetOwnedSession gates every session read/write on ownership; admins pass
// for read paths that supply their role.
func (s *SessionService) GetOwnedSession(ctx context.Context, userID, role, sessionID string) (*dbm.DiagnosticSession, error) {
	sid, err := uuid.Parse(sessionID)
	if err != nil {
		return nil, utils.ErrInvalidInput
	}
	uid, err := uuid.Parse(userID)
	if err != nil {
		return nil, utils.ErrInvalidInput
	}

	session, err := s.sessionRepo.GetSessionByID(ctx, sid)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if session == nil {
		return nil, utils.ErrSessionNotFound
	}
	if session.UserID != uid && role != RoleAdmin {
		return nil, utils.ErrNotSessionOwner
	}
	return session, nil
}

func (s *SessionService) ListSessions(ctx context.Context, userID string, page, pageSize int) ([]response_models.SessionResponse, error) {
	uid, err := uuid.Parse(userID)
	if err != nil {
		return nil, utils.ErrInvalidInput
	}

	sessions, err := s.sessionRepo.ListSessionsByUser(ctx, uid, page, pageSize)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	out := make([]response_models.SessionResponse, 0, len(sessions))
	for i := range sessions {
		out = append(out, response_models.BuildSessionResponse(&sessions[i]))
	}
	return out, nil
}

// Cancel ends an in_progress session. Completed sessions are immutable and
// cannot be cancelled or deleted.
func (s *SessionService) Cancel(ctx context.Context, userID, sessionID string) error {
	session, err := s.GetOwnedSession(ctx, userID, "", sessionID)
	if err != nil {
		return err
	}

	switch session.State {
	case dbm.SessionStateInProgress:
	case dbm.SessionStateCompleted:
		return utils.ErrSessionAlreadyFinished
	default:
		return utils.ErrSessionNotInProgress
	}

	if err := s.sessionRepo.CancelSession(ctx, session.ID); err != nil {
		if errors.Is(err, repositories.ErrFinalizeConflict) {
			return utils.ErrSessionNotInProgress
		}
		return utils.ErrDatabaseError
	}
	return nil
}
