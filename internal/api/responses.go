package api

// swagger:model api.ErrorResponse
type ErrorResponse struct {
	Error string `json:"error" example:"Internal Server Error"`
}

// swagger:model api.MessageResponse
type MessageResponse struct {
	Message string `json:"message" example:"User deleted successfully"`
}

// swagger:model api.UserResponse
type UserResponse struct {
	ID           int     `json:"id" example:"1"`
	FirstName    string  `json:"firstName" example:"Ann"`
	LastName     string  `json:"lastName" example:"Lee"`
	Email        string  `json:"email" example:"ann@example.com"`
	Phone        string  `json:"phone" example:"5551234567"`
	DateOfBirth  string  `json:"dateOfBirth" example:"1990-01-01"`
	ProfileImage *string `json:"profileImage" example:"1714556400000-1a2b3c4d-ann.png"`
}
