// Package models holds the persisted data structures of the auth server.
package models

import "time"

// User is an account record. Username and email are unique across all users;
// login is allowed only once Verified is true.
type User struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string
	Verified     bool
	CreatedAt    time.Time
}
