package model

// Role values returned by the token endpoint.
const (
	RoleDoctor  = "doctor"
	RolePatient = "patient"
)

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3,max=150"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Role     string `json:"role" validate:"required,oneof=doctor patient"`
}

// TokenResponse is the payload of POST /token/.
type TokenResponse struct {
	Access   string `json:"access"`
	Refresh  string `json:"refresh"`
	Role     string `json:"role"`
	Username string `json:"username"`
}
