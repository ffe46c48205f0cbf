package models

// ContactRequest is the contact form payload. It is mailed to the site
// owner, not stored.
type ContactRequest struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Subject     string `json:"subject"`
	Message     string `json:"message"`
	ProjectType string `json:"projectType"`
}
