package response_models

type LoginResponse struct {
	Token string `json:"token"`
}

type ProfileResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Sector      string `json:"sector,omitempty"`
	Size        string `json:"size,omitempty"`
	Description string `json:"description,omitempty"`
}
