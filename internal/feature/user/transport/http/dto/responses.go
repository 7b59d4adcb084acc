package dto

// UserResponse is the public projection of a user account.
// The password hash is never part of any response body.
type UserResponse struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

// TokenResponse carries an issued bearer token.
type TokenResponse struct {
	Token string `json:"token"`
}

// ErrorResponse is the uniform error body for the user endpoints.
type ErrorResponse struct {
	Error string `json:"error"`
}
