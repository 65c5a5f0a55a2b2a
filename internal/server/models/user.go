// Package models contains the persistent entities of the server.
package models

import "time"

// User is an identity record. Email and UserName are each unique across all
// users; Email doubles as the login identifier and the subject claim embedded
// in access tokens. PasswordHash holds the bcrypt hash of the password; the
// plaintext is never stored or logged.
type User struct {
	ID           string
	Email        string
	UserName     string
	PasswordHash string
	CreatedAt    time.Time
}
