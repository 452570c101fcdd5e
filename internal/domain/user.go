package domain

import "time"

// Role identifies the authorization level of an account.
type Role string

const (
	RoleAdmin    Role = "ADMIN"
	RoleOperator Role = "OPERATOR"
	RolePartner  Role = "PARTNER"
)

// ParseRole validates a client-supplied role name.
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleAdmin, RoleOperator, RolePartner:
		return Role(s), true
	}
	return "", false
}

// User is the credential record backing authentication. Usernames are
// unique and immutable once created.
type User struct {
	ID           string
	Username     string
	PasswordHash string
	Role         Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
