package dto

// SuccessResponse represents a standard success response for API endpoints
type SuccessResponse struct {
	Message string `json:"message" example:"User created successfully"`
}

// AckResponse is returned by endpoints that only report success.
type AckResponse struct {
	Success bool   `json:"success" example:"true"`
	Message string `json:"message,omitempty" example:"Message sent successfully"`
}
