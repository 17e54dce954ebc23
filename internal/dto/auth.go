package dto

// RegisterRequest is the self-registration body.
type RegisterRequest struct {
	Username string `json:"username" binding:"required,min=3,max=32"`
	Password string `json:"password" binding:"required,min=8,max=128"`
}

// RegisterResponse carries the new user's id.
type RegisterResponse struct {
	ID string `json:"id"`
}

// LoginRequest is the credential exchange body.
type LoginRequest struct {
	Username string `json:"username" binding:"required,min=3,max=32"`
	Password string `json:"password" binding:"required,min=8,max=128"`
}

// LoginResponse represents the response for a successful login.
// ExpiresIn is the token lifetime in milliseconds.
type LoginResponse struct {
	Token     string `json:"token"`
	ExpiresIn int64  `json:"expiresIn"`
}
