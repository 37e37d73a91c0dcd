package domain

import "time"

// AuthProvider identifies how a user authenticates.
type AuthProvider string

const (
	ProviderLocal  AuthProvider = "LOCAL"
	ProviderGoogle AuthProvider = "GOOGLE"
	ProviderGitHub AuthProvider = "GITHUB"
)

// AuthProviderFromName maps an OAuth registration name (e.g. "google") to its
// AuthProvider value. The second return is false for unknown providers.
func AuthProviderFromName(name string) (AuthProvider, bool) {
	switch name {
	case "google":
		return ProviderGoogle, true
	case "github":
		return ProviderGitHub, true
	default:
		return "", false
	}
}

// User is the canonical identity record. Email is the effective login name and
// is unique across the store. AuthProvider starts as LOCAL for password
// signups and transitions to a federated value at most once, on the first
// successful OAuth2 login; it never reverts.
type User struct {
	UserID       string       `json:"userID"`
	Email        string       `json:"email"`
	FirstName    string       `json:"firstName,omitempty"`
	LastName     string       `json:"lastName,omitempty"`
	PasswordHash string       `json:"-"`
	AuthProvider AuthProvider `json:"authProvider"`
	ProviderID   string       `json:"-"`
	ImageURL     string       `json:"imageUrl,omitempty"`
	CreatedAt    time.Time    `json:"createdDate"`
}

// IsLocal reports whether the user has never completed a federated login.
func (u *User) IsLocal() bool {
	return u.AuthProvider == ProviderLocal
}
