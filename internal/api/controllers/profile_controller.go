package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"impulsa/internal/models/request_models"
	"impulsa/internal/services"
	"impulsa/pkg/utils"
)

type ProfileController struct {
	profileService services.ProfileServiceInterface
}

func NewProfileController(profileService services.ProfileServiceInterface) *ProfileController {
	return &ProfileController{profileService: profileService}
}

// CreateProfile godoc
// @Summary Create a business profile
// @Tags Profiles
// @Accept json
// @Produce json
// @Param request body request_models.CreateProfileRequest true "Profile details"
// @Success 200 {object} response_models.ProfileResponse
// @Security BearerAuth
// @Router /profiles [post]
func (p *ProfileController) CreateProfile(c *gin.Context) {
	var req request_models.CreateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "name is required")
		return
	}

	out, err := p.profileService.CreateProfile(c.Request.Context(), c.GetString("user_id"), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, out, "Profile created successfully")
}

// ListProfiles godoc
// @Summary List own business profiles
// @Tags Profiles
// @Produce json
// @Success 200 {array} response_models.ProfileResponse
// @Security BearerAuth
// @Router /profiles [get]
func (p *ProfileController) ListProfiles(c *gin.Context) {
	out, err := p.profileService.ListProfiles(c.Request.Context(), c.GetString("user_id"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, out, "Profiles fetched successfully")
}
