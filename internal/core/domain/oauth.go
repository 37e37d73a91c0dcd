package domain

// ProviderUserInfo is the canonical attribute tuple extracted from an OAuth2
// provider's profile payload, independent of which provider produced it.
// Loosely-typed provider maps are converted to this shape at the boundary and
// never travel further into the application.
type ProviderUserInfo struct {
	Email      string
	Name       string
	ProviderID string
	ImageURL   string
}

// HasEmail reports whether the provider yielded a usable email address.
// Without one no account can be reconciled.
func (i ProviderUserInfo) HasEmail() bool {
	return i.Email != ""
}
