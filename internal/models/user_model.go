package models

import "time"

// Role values stored on a user record.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
	RoleDemo  = "demo"
)

// User is the profile record kept in the users collection.
// The document ID is the Firebase Auth UID.
type User struct {
	UID         string     `json:"uid" firestore:"-"`
	Email       string     `json:"email" firestore:"email"`
	DisplayName string     `json:"displayName" firestore:"displayName"`
	PhotoURL    string     `json:"photoURL,omitempty" firestore:"photoURL,omitempty"`
	Role        string     `json:"role" firestore:"role"`
	CreatedAt   *time.Time `json:"createdAt" firestore:"createdAt,omitempty"`
	UpdatedAt   *time.Time `json:"updatedAt,omitempty" firestore:"updatedAt,omitempty"`
}

// IsValidRole reports whether role is one of the assignable roles.
func IsValidRole(role string) bool {
	switch role {
	case RoleUser, RoleAdmin, RoleDemo:
		return true
	}
	return false
}
