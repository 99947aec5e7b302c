package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"impulsa/internal/models/request_models"
	"impulsa/internal/services"
	"impulsa/pkg/utils"
)

type CatalogController struct {
	catalogService        services.CatalogServiceInterface
	recommendationService services.RecommendationServiceInterface
}

func NewCatalogController(
	catalogService services.CatalogServiceInterface,
	recommendationService services.RecommendationServiceInterface,
) *CatalogController {
	return &CatalogController{
		catalogService:        catalogService,
		recommendationService: recommendationService,
	}
}

// ListTypes godoc
// @Summary List diagnostic types
// @Description Active catalog entries; admins also see inactive types
// @Tags Catalog
// @Produce json
// @Success 200 {array} response_models.DiagnosticTypeResponse
// @Security BearerAuth
// @Router /diagnostics/types [get]
func (ct *CatalogController) ListTypes(c *gin.Context) {
	includeInactive := c.GetString("Role") == services.RoleAdmin

	types, err := ct.catalogService.ListTypes(c.Request.Context(), includeInactive)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, types, "Diagnostic types fetched successfully")
}

// GetType godoc
// @Summary Diagnostic type with areas and questions
// @Tags Catalog
// @Produce json
// @Param id path string true "Diagnostic type ID"
// @Success 200 {object} response_models.DiagnosticTypeResponse
// @Failure 404 {object} utils.APIResponse
// @Security BearerAuth
// @Router /diagnostics/types/{id} [get]
func (ct *CatalogController) GetType(c *gin.Context) {
	typeID := c.Param("id")
	if typeID == "" {
		utils.RespondError(c, http.StatusBadRequest, "Type ID is required")
		return
	}

	out, err := ct.catalogService.GetType(c.Request.Context(), typeID, true)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, out, "Diagnostic type fetched successfully")
}

// CreateType godoc
// @Summary Create a diagnostic type
// @Tags Catalog
// @Accept json
// @Produce json
// @Param request body request_models.CreateDiagnosticTypeRequest true "Type definition"
// @Success 200 {object} response_models.DiagnosticTypeResponse
// @Security BearerAuth
// @Router /admin/diagnostics/types [post]
func (ct *CatalogController) CreateType(c *gin.Context) {
	var req request_models.CreateDiagnosticTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "name is required")
		return
	}

	out, err := ct.catalogService.CreateType(c.Request.Context(), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, out, "Diagnostic type created successfully")
}

func (ct *CatalogController) UpdateType(c *gin.Context) {
	var req request_models.UpdateDiagnosticTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := ct.catalogService.UpdateType(c.Request.Context(), c.Param("id"), req); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Diagnostic type updated successfully")
}

func (ct *CatalogController) DeleteType(c *gin.Context) {
	if err := ct.catalogService.DeleteType(c.Request.Context(), c.Param("id")); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Diagnostic type deleted successfully")
}

func (ct *CatalogController) CreateArea(c *gin.Context) {
	var req request_models.CreateAreaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "diagnostic_type_id and name are required")
		return
	}

	id, err := ct.catalogService.CreateArea(c.Request.Context(), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, gin.H{"id": id}, "Area created successfully")
}

func (ct *CatalogController) UpdateArea(c *gin.Context) {
	var req request_models.UpdateAreaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := ct.catalogService.UpdateArea(c.Request.Context(), c.Param("id"), req); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Area updated successfully")
}

// DeleteArea also removes the area's questions.
func (ct *CatalogController) DeleteArea(c *gin.Context) {
	if err := ct.catalogService.DeleteArea(c.Request.Context(), c.Param("id")); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Area deleted successfully")
}

func (ct *CatalogController) CreateQuestion(c *gin.Context) {
	var req request_models.CreateQuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "area_id, text and kind are required")
		return
	}

	id, err := ct.catalogService.CreateQuestion(c.Request.Context(), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, gin.H{"id": id}, "Question created successfully")
}

func (ct *CatalogController) UpdateQuestion(c *gin.Context) {
	var req request_models.UpdateQuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := ct.catalogService.UpdateQuestion(c.Request.Context(), c.Param("id"), req); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Question updated successfully")
}

func (ct *CatalogController) DeleteQuestion(c *gin.Context) {
	if err := ct.catalogService.DeleteQuestion(c.Request.Context(), c.Param("id")); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Question deleted successfully")
}

func (ct *CatalogController) CreateRule(c *gin.Context) {
	var req request_models.CreateRecommendationRuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "title is required")
		return
	}

	id, err := ct.recommendationService.CreateRule(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, gin.H{"id": id}, "Recommendation rule created successfully")
}

func (ct *CatalogController) DeleteRule(c *gin.Context) {
	if err := ct.recommendationService.DeleteRule(c.Request.Context(), c.Param("id")); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Recommendation rule deleted successfully")
}
