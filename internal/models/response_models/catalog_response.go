package response_models

import "impulsa/internal/models/db_models"

type DiagnosticTypeResponse struct {
	ID                string `json:"id"`
	Name              string `json:"name"`
	Slug              string `json:"slug"`
	Description       string `json:"description,omitempty"`
	EstimatedDuration int    `json:"estimated_duration"`
	DetailLevel       string `json:"detail_level,omitempty"`
	Active            bool   `json:"active"`

	Areas []AreaResponse `json:"areas,omitempty"`
}

type AreaResponse struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Weight   float64 `json:"weight"`
	Position int     `json:"position"`
	Icon     string  `json:"icon,omitempty"`
	Color    string  `json:"color,omitempty"`

	Questions []QuestionResponse `json:"questions,omitempty"`
}

type QuestionResponse struct {
	ID        string   `json:"id"`
	Text      string   `json:"text"`
	Kind      string   `json:"kind"`
	ScaleMin  *int     `json:"scale_min,omitempty"`
	ScaleMax  *int     `json:"scale_max,omitempty"`
	Options   []string `json:"options,omitempty"`
	Weight    float64  `json:"weight"`
	Mandatory bool     `json:"mandatory"`
	Position  int      `json:"position"`
}

func BuildTypeResponse(t *db_models.DiagnosticType, withDetails bool) *DiagnosticTypeResponse {
	out := &DiagnosticTypeResponse{
		ID:                t.ID.String(),
		Name:              t.Name,
		Slug:              t.Slug,
		Description:       t.Description,
		EstimatedDuration: t.EstimatedDuration,
		DetailLevel:       t.DetailLevel,
		Active:            t.Active,
	}
	if withDetails {
		out.Areas = BuildAreaResponses(t.Areas)
	}
	return out
}

func BuildAreaResponses(areas []db_models.EvaluationArea) []AreaResponse {
	out := make([]AreaResponse, 0, len(areas))
	for _, area := range areas {
		a := AreaResponse{
			ID:       area.ID.String(),
			Name:     area.Name,
			Weight:   area.Weight,
			Position: area.Position,
			Icon:     area.Icon,
			Color:    area.Color,
		}
		for _, q := range area.Questions {
			a.Questions = append(a.Questions, QuestionResponse{
				ID:        q.ID.String(),
				Text:      q.Text,
				Kind:      q.Kind,
				ScaleMin:  q.ScaleMin,
				ScaleMax:  q.ScaleMax,
				Options:   q.Options,
				Weight:    q.Weight,
				Mandatory: q.Mandatory,
				Position:  q.Position,
			})
		}
		out = append(out, a)
	}
	return out
}
