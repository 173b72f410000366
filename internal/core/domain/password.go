package domain

const MinPasswordLength = 8

// Password rule messages, in the order they are checked.
const (
	MsgPasswordTooShort = "Password must be at least 8 characters long"
	MsgPasswordUpper    = "Password must contain at least one uppercase letter"
	MsgPasswordLower    = "Password must contain at least one lowercase letter"
	MsgPasswordDigit    = "Password must contain at least one number"
	MsgPasswordSpecial  = "Password must contain at least one special character"
)

// PasswordViolations returns the message of every strength rule pw breaks.
// An empty result means the password is acceptable.
func PasswordViolations(pw string) []string {
	var upper, lower, digit, special bool
	for _, r := range pw {
		switch {
		case r >= 'A' && r <= 'Z':
			upper = true
		case r >= 'a' && r <= 'z':
			lower = true
		case r >= '0' && r <= '9':
			digit = true
		default:
			special = true
		}
	}

	var out []string
	if len([]rune(pw)) < MinPasswordLength {
		out = append(out, MsgPasswordTooShort)
	}
	if !upper {
		out = append(out, MsgPasswordUpper)
	}
	if !lower {
		out = append(out, MsgPasswordLower)
	}
	if !digit {
		out = append(out, MsgPasswordDigit)
	}
	if !special {
		out = append(out, MsgPasswordSpecial)
	}
	return out
}
