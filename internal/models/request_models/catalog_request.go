package request_models

// Update requests use pointers so the services can tell "absent" from "zero"
// and only write the fields that were actually sent.

type CreateDiagnosticTypeRequest struct {
	Name              string `json:"name" binding:"required"`
	Description       string `json:"description"`
	EstimatedDuration int    `json:"estimated_duration"`
	DetailLevel       string `json:"detail_level"`
	Active            *bool  `json:"active"`
}

type UpdateDiagnosticTypeRequest struct {
	Name              *string `json:"name"`
	Description       *string `json:"description"`
	EstimatedDuration *int    `json:"estimated_duration"`
	DetailLevel       *string `json:"detail_level"`
	Active            *bool   `json:"active"`
}

type CreateAreaRequest struct {
	DiagnosticTypeID string  `json:"diagnostic_type_id" binding:"required"`
	Name             string  `json:"name" binding:"required"`
	Weight           float64 `json:"weight"`
	Position         int     `json:"position"`
	Icon             string  `json:"icon"`
	Color            string  `json:"color"`
}

type UpdateAreaRequest struct {
	Name     *string  `json:"name"`
	Weight   *float64 `json:"weight"`
	Position *int     `json:"position"`
	Icon     *string  `json:"icon"`
	Color    *string  `json:"color"`
}

type CreateQuestionRequest struct {
	AreaID    string   `json:"area_id" binding:"required"`
	Text      string   `json:"text" binding:"required"`
	Kind      string   `json:"kind" binding:"required"`
	ScaleMin  *int     `json:"scale_min"`
	ScaleMax  *int     `json:"scale_max"`
	Options   []string `json:"options"`
	Weight    float64  `json:"weight"`
	Mandatory bool     `json:"mandatory"`
	Position  int      `json:"position"`
}

type UpdateQuestionRequest struct {
	Text      *string  `json:"text"`
	ScaleMin  *int     `json:"scale_min"`
	ScaleMax  *int     `json:"scale_max"`
	Options   []string `json:"options"`
	Weight    *float64 `json:"weight"`
	Mandatory *bool    `json:"mandatory"`
	Position  *int     `json:"position"`
}

type CreateRecommendationRuleRequest struct {
	MinScore    float64 `json:"min_score"`
	MaxScore    float64 `json:"max_score"`
	Title       string  `json:"title" binding:"required"`
	Detail      string  `json:"detail"`
	ResourceURL string  `json:"resource_url"`
	Priority    int     `json:"priority"`
}
