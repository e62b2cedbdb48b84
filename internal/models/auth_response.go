package models

// AuthResponse represents the response after successful authentication.
// The token carries the user id as its only claim.
type AuthResponse struct {
	AccessToken string `json:"accessToken"`
}
