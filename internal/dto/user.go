package dto

import (
	"github.com/skywalker/milestone_backend/internal/core/domain"
)

// UserResponse is the public view of a user record. PasswordHash and
// ProviderID never leave the service layer.
type UserResponse struct {
	ID           string `json:"id"`
	Email        string `json:"email"`
	FirstName    string `json:"firstName,omitempty"`
	LastName     string `json:"lastName,omitempty"`
	AuthProvider string `json:"authProvider"`
	ImageURL     string `json:"imageUrl,omitempty"`
}

// ToUserResponse converts a domain.User to its API representation.
func ToUserResponse(user *domain.User) *UserResponse {
	return &UserResponse{
		ID:           user.UserID,
		Email:        user.Email,
		FirstName:    user.FirstName,
		LastName:     user.LastName,
		AuthProvider: string(user.AuthProvider),
		ImageURL:     user.ImageURL,
	}
}
