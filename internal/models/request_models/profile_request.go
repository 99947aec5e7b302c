package request_models

type CreateProfileRequest struct {
	Name        string `json:"name" binding:"required"`
	Sector      string `json:"sector"`
	Size        string `json:"size"`
	Description string `json:"description"`
}
