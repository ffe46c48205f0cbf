package api

// routeHandlers contains all the handlers for different route types
type routeHandlers struct {
	authHandler        authHandler
	projectHandler     projectHandler
	workInfoHandler    workInfoHandler
	socialLinksHandler socialLinksHandler
	contactHandler     contactHandler
}

// ErrorResponse represents an error response from the API
type ErrorResponse struct {
	Success bool   `json:"success" example:"false"`
	Error   string `json:"error" example:"Проект не найден"`
	Field   string `json:"field,omitempty" example:"title"`
	Cause   string `json:"cause,omitempty" example:"Underlying error cause"`
}
