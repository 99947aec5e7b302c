package controllers

import (
	"net/http"
	"sort"
	"strconv"

	"github.com/gin-gonic/gin"
	dbm "impulsa/internal/models/db_models"
	"impulsa/internal/models/request_models"
	"impulsa/internal/models/response_models"
	"impulsa/internal/services"
	"impulsa/pkg/utils"
)

type DiagnosticsController struct {
	sessionService        services.SessionServiceInterface
	scoringService        services.ScoringServiceInterface
	recommendationService services.RecommendationServiceInterface
	comparisonService     services.ComparisonServiceInterface
}

func NewDiagnosticsController(
	sessionService services.SessionServiceInterface,
	scoringService services.ScoringServiceInterface,
	recommendationService services.RecommendationServiceInterface,
	comparisonService services.ComparisonServiceInterface,
) *DiagnosticsController {
	return &DiagnosticsController{
		sessionService:        sessionService,
		scoringService:        scoringService,
		recommendationService: recommendationService,
		comparisonService:     comparisonService,
	}
}

// StartSession godoc
// @Summary Start a diagnostic session
// @Description Open a new session for a diagnostic type and return the full question set
// @Tags Diagnostics
// @Accept json
// @Produce json
// @Param request body request_models.StartSessionRequest true "Diagnostic type and optional business profile"
// @Success 200 {object} response_models.StartSessionResponse
// @Security BearerAuth
// @Router /diagnostics/start [post]
func (d *DiagnosticsController) StartSession(c *gin.Context) {
	var req request_models.StartSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "diagnostic_type_id is required")
		return
	}

	userID := c.GetString("user_id")

	out, err := d.sessionService.Start(c.Request.Context(), userID, req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, out, "Session started successfully")
}

// ListSessions godoc
// @Summary List own diagnostic sessions
// @Tags Diagnostics
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Page size" default(10) minimum(1) maximum(100)
// @Success 200 {array} response_models.SessionResponse
// @Security BearerAuth
// @Router /diagnostics/sessions [get]
func (d *DiagnosticsController) ListSessions(c *gin.Context) {
	page, pageSize, ok := paginationParams(c)
	if !ok {
		return
	}

	userID := c.GetString("user_id")

	sessions, err := d.sessionService.ListSessions(c.Request.Context(), userID, page, pageSize)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, sessions, "Sessions fetched successfully")
}

// GetProgress godoc
// @Summary Session progress
// @Description Answered vs mandatory question counts for a session
// @Tags Diagnostics
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} response_models.ProgressResponse
// @Security BearerAuth
// @Router /diagnostics/{id}/progress [get]
func (d *DiagnosticsController) GetProgress(c *gin.Context) {
	sessionID := c.Param("id")
	userID := c.GetString("user_id")
	role := c.GetString("Role")

	progress, err := d.sessionService.GetProgress(c.Request.Context(), userID, role, sessionID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, progress, "Progress fetched successfully")
}

// SaveAnswer godoc
// @Summary Save one answer
// @Description Upsert the answer for a question in an in-progress session
// @Tags Diagnostics
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param request body request_models.SaveAnswerRequest true "Question and value"
// @Success 200 {object} response_models.ProgressResponse
// @Security BearerAuth
// @Router /diagnostics/{id}/answer [post]
func (d *DiagnosticsController) SaveAnswer(c *gin.Context) {
	var req request_models.SaveAnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "question_id is required")
		return
	}

	sessionID := c.Param("id")
	userID := c.GetString("user_id")

	if err := d.sessionService.SaveAnswer(c.Request.Context(), userID, sessionID, req); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	progress, err := d.sessionService.GetProgress(c.Request.Context(), userID, c.GetString("Role"), sessionID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, progress, "Answer saved successfully")
}

// SaveAnswersBatch godoc
// @Summary Save many answers
// @Description Apply a batch of answers, tolerating individual failures
// @Tags Diagnostics
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param request body request_models.SaveAnswersBatchRequest true "Answers"
// @Success 200 {object} response_models.BatchSaveResponse
// @Security BearerAuth
// @Router /diagnostics/{id}/answers [post]
func (d *DiagnosticsController) SaveAnswersBatch(c *gin.Context) {
	var req request_models.SaveAnswersBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil || len(req.Answers) == 0 {
		utils.RespondError(c, http.StatusBadRequest, "answers are required")
		return
	}

	sessionID := c.Param("id")
	userID := c.GetString("user_id")

	out, err := d.sessionService.SaveAnswersBatch(c.Request.Context(), userID, sessionID, req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, out, "Answers processed")
}

// FinalizeSession godoc
// @Summary Finalize and score a session
// @Description Check completeness, compute weighted scores, classify maturity and seal the session
// @Tags Diagnostics
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} response_models.SessionResponse
// @Failure 409 {object} utils.APIResponse
// @Security BearerAuth
// @Router /diagnostics/{id}/finalize [post]
func (d *DiagnosticsController) FinalizeSession(c *gin.Context) {
	sessionID := c.Param("id")
	userID := c.GetString("user_id")

	out, err := d.scoringService.FinalizeAndScore(c.Request.Context(), userID, sessionID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, out, "Session finalized successfully")
}

// GetResults godoc
// @Summary Scored results with recommendations
// @Description Area and total scores plus the (lazily generated) recommendation set
// @Tags Diagnostics
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} response_models.ResultsResponse
// @Security BearerAuth
// @Router /diagnostics/{id}/results [get]
func (d *DiagnosticsController) GetResults(c *gin.Context) {
	sessionID := c.Param("id")
	userID := c.GetString("user_id")
	role := c.GetString("Role")

	session, err := d.sessionService.GetOwnedSession(c.Request.Context(), userID, role, sessionID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	if session.State != dbm.SessionStateCompleted {
		utils.HandleServiceError(c, utils.ErrSessionNotCompleted)
		return
	}

	recommendations, err := d.recommendationService.GetOrGenerate(c.Request.Context(), userID, role, sessionID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	out := response_models.ResultsResponse{
		Session:         response_models.BuildSessionResponse(session),
		AreaScores:      buildAreaScores(session.AreaResults),
		Recommendations: recommendations,
	}
	utils.RespondSuccess(c, out, "Results fetched successfully")
}

// CompareSessions godoc
// @Summary Compare two completed sessions
// @Description Per-area and total deltas between two completed sessions of the same type
// @Tags Diagnostics
// @Produce json
// @Param id path string true "Current session ID"
// @Param previousId path string true "Previous session ID"
// @Success 200 {object} response_models.ComparisonResponse
// @Security BearerAuth
// @Router /diagnostics/{id}/compare/{previousId} [get]
func (d *DiagnosticsController) CompareSessions(c *gin.Context) {
	currentID := c.Param("id")
	previousID := c.Param("previousId")
	userID := c.GetString("user_id")
	role := c.GetString("Role")

	out, err := d.comparisonService.Compare(c.Request.Context(), userID, role, currentID, previousID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, out, "Comparison computed successfully")
}

// CancelSession godoc
// @Summary Cancel an in-progress session
// @Tags Diagnostics
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} utils.APIResponse
// @Failure 409 {object} utils.APIResponse
// @Security BearerAuth
// @Router /diagnostics/{id} [delete]
func (d *DiagnosticsController) CancelSession(c *gin.Context) {
	sessionID := c.Param("id")
	userID := c.GetString("user_id")

	if err := d.sessionService.Cancel(c.Request.Context(), userID, sessionID); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Session cancelled successfully")
}

func buildAreaScores(results dbm.AreaResultMap) []response_models.AreaScoreResponse {
	out := make([]response_models.AreaScoreResponse, 0, len(results))
	for areaID, result := range results {
		out = append(out, response_models.AreaScoreResponse{
			AreaID:   areaID,
			AreaName: result.AreaName,
			Score:    result.Score,
			Weight:   result.Weight,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].AreaName < out[j].AreaName })
	return out
}

func paginationParams(c *gin.Context) (int, int, bool) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		utils.RespondError(c, http.StatusBadRequest, "Invalid page number")
		return 0, 0, false
	}
	pageSize, err := strconv.Atoi(c.DefaultQuery("pageSize", "10"))
	if err != nil || pageSize < 1 || pageSize > 100 {
		utils.RespondError(c, http.StatusBadRequest, "Invalid page size (must be 1-100)")
		return 0, 0, false
	}
	return page, pageSize, true
}
