package domain

import "time"

const (
	RoleAdmin = "Admin"
	RoleUser  = "User"
)

// ValidRole reports whether role is one of the known roles.
func ValidRole(role string) bool {
	return role == RoleAdmin || role == RoleUser
}

// User models an account that can sign in, either with a password or through
// a federated identity provider.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	AvatarID     *string   `json:"avatarId"`
	CreatedAt    time.Time `json:"-"`
	UpdatedAt    time.Time `json:"-"`
}

// HasPassword reports whether the account can use the credentials sign-in path.
// Accounts created through a federated provider carry no hash.
func (u *User) HasPassword() bool {
	return u.PasswordHash != ""
}

// UserAvatar is the result row of a batch avatar lookup. ImageURL is nil when
// the user has no avatar assigned.
type UserAvatar struct {
	UserID   string  `json:"userId"`
	ImageURL *string `json:"imageUrl"`
}

// ExternalIdentity is the profile a federated provider returns after a
// successful code exchange.
type ExternalIdentity struct {
	Provider string
	Subject  string
	Email    string
	Name     string
}
