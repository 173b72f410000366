package domain

// Claims are the identity fields carried by a session token. Handlers receive
// them already decoded and verified.
type Claims struct {
	UserID   string  `json:"id"`
	Email    string  `json:"email"`
	Role     string  `json:"role"`
	Username string  `json:"username"`
	AvatarID *string `json:"avatarId"`
}

// ClaimsFor builds the session claims for u.
func ClaimsFor(u *User) Claims {
	return Claims{
		UserID:   u.ID,
		Email:    u.Email,
		Role:     u.Role,
		Username: u.Username,
		AvatarID: u.AvatarID,
	}
}

// IsAdmin reports whether c belongs to an administrator. A nil session is
// never an administrator.
func IsAdmin(c *Claims) bool {
	return c != nil && c.Role == RoleAdmin
}

// CanActFor reports whether c may modify data owned by userID.
func (c *Claims) CanActFor(userID string) bool {
	return c != nil && (c.UserID == userID || c.Role == RoleAdmin)
}
