package models

type UploadResponse struct {
	Status        string `json:"status"`
	TextLength    int    `json:"text_length"`
	ExtractedText string `json:"extracted_text"`
}

type ErrorResponse struct {
	Detail string `json:"detail"`
}

// FieldError mirrors one entry of a request validation failure.
type FieldError struct {
	Loc  []string `json:"loc"`
	Msg  string   `json:"msg"`
	Type string   `json:"type"`
}

type ValidationErrorResponse struct {
	Detail []FieldError `json:"detail"`
}
