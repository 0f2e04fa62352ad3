package domain

// ErrorResponse is the standard error body returned by the API.
// @Description Standard error body returned by the API.
type ErrorResponse struct {
	Code     int    `json:"code" example:"400"`
	Category string `json:"category" example:"VALIDATION_ERROR"`
	Message  string `json:"message" example:"categoryId is required."`
}
