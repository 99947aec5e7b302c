package request_models

type StartSessionRequest struct {
	DiagnosticTypeID  string `json:"diagnostic_type_id" binding:"required"`
	BusinessProfileID string `json:"business_profile_id"`
}

type SaveAnswerRequest struct {
	QuestionID   string   `json:"question_id" binding:"required"`
	NumericValue *float64 `json:"numeric_value"`
	TextValue    *string  `json:"text_value"`
}

type SaveAnswersBatchRequest struct {
	Answers []SaveAnswerRequest `json:"answers" binding:"required"`
}
