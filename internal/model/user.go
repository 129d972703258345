package model

import "time"

// Role names stored in users.role and carried in the JWT "role" claim.
// ADMIN may mutate catalog resources; CUSTOMER may read the catalog and
// create orders. Registration only ever grants CUSTOMER.
const (
	RoleAdmin    = "ADMIN"
	RoleCustomer = "CUSTOMER"
)

// User mirrors the users table. Accounts log in by email, there is no
// username.
type User struct {
	ID           uint64    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
