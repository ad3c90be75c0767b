// Package models holds the persistent entities shared by repositories and
// services.
package models

import "time"

// User is an account holder. PasswordHash stores the bcrypt hash of the
// password; the plaintext never reaches this struct. Sessions are kept in
// their own table and are deliberately absent here so that serializing a User
// can never leak them.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}
