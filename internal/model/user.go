package model

import "time"

// Role values stored in users.role. Anything else arriving from a client is
// coerced to RoleUser before persisting; RoleRandom is a registration-time
// sentinel asking the server to pick one of the two at random.
const (
	RoleUser   = "USER"
	RoleAdmin  = "ADMIN"
	RoleRandom = "RANDOM"
)

// User represents an application user record as stored in the `users` table.
// PasswordHash never leaves the repository layer; handlers expose the
// PublicUser projection instead.
//
// Fields:
//
//	ID           – primary key identifier of the user.
//	Firstname    – given name, required at registration.
//	Lastname     – family name, may be empty.
//	Email        – unique email address.
//	PasswordHash – bcrypt hashed password.
//	Role         – USER or ADMIN.
//	IsActive     – whether the account may log in.
//	CreatedAt    – timestamp of creation.
type User struct {
	ID           uint64    // users.id
	Firstname    string    // users.firstname
	Lastname     string    // users.lastname
	Email        string    // users.email
	PasswordHash string    // users.password_hash
	Role         string    // users.role
	IsActive     bool      // users.is_active
	CreatedAt    time.Time // users.created_at
}

// PublicUser is the client-visible projection of a User. It deliberately
// omits the password hash.
type PublicUser struct {
	ID        uint64    `json:"id"`
	Firstname string    `json:"firstname"`
	Lastname  string    `json:"lastname"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
}

// Public returns the client-visible projection of u.
func (u User) Public() PublicUser {
	return PublicUser{
		ID:        u.ID,
		Firstname: u.Firstname,
		Lastname:  u.Lastname,
		Email:     u.Email,
		Role:      u.Role,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
	}
}

// UserSummary is the short user projection embedded in admin-wide listings
// such as the full cartline view and the ratings view.
type UserSummary struct {
	ID        uint64 `json:"id"`
	Firstname string `json:"firstname"`
	Lastname  string `json:"lastname"`
	Email     string `json:"email"`
}
