package dto

// ErrorResponseDTO is the body of every 4xx/5xx JSON response.
type ErrorResponseDTO struct {
	Error string `json:"error" example:"Email already subscribed"`
}

// SuccessResponseDTO answers update and delete.
type SuccessResponseDTO struct {
	Success bool `json:"success"`
}

type HealthResponseDTO struct {
	Status string `json:"status" example:"ok"`
	Error  string `json:"error,omitempty"`
}
