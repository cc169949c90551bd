// internal/domain/models/user.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Roles. "admin" is reserved; everyone who registers is a "user".
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// User is a registered account.
//
// NOTE:
//   - Email is stored normalized (trimmed, lowercased) and is unique.
//   - PasswordHash is a bcrypt hash and is never serialized to JSON.
type User struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name          string             `bson:"name" json:"name"`
	NameCI        string             `bson:"name_ci" json:"-"` // lowercase, diacritics-stripped
	Email         string             `bson:"email" json:"email"`
	ContactNumber string             `bson:"contact_number,omitempty" json:"contactNumber,omitempty"`
	PasswordHash  string             `bson:"password_hash" json:"-"`
	Role          string             `bson:"role" json:"role"` // admin | user

	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}

// IsAdmin reports whether the user holds the reserved admin role.
func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
