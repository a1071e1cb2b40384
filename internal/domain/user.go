package domain

import "time"

// UserRole distinguishes dashboard operators from portal-only users.
type UserRole string

const (
	RoleAdmin UserRole = "admin"
	RoleUser  UserRole = "user"
)

// User is a dashboard account. Credentials live with the external identity
// provider; this record only tracks membership and role.
type User struct {
	ID        string
	Email     string
	FullName  string
	Role      UserRole
	Status    string
	CreatedAt time.Time
}
