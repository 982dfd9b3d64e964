// Package model defines the data structures used throughout the application.
// In Go, we use structs to represent our data — similar to classes in other languages,
// but without inheritance. Go favours composition over inheritance.
package model

import "time"

// User represents a registered account.
//
// Users sign up with an email and password, or via GitHub OAuth. Either way
// the email is the stable external identifier — it carries a UNIQUE
// constraint in the DB and is what we embed in the JWT's Subject claim.
//
// WHY PasswordHash `json:"-"`?
// The `-` tag tells encoding/json to NEVER serialize this field. A handler
// that returns a User directly (e.g. GET /api/me) can't accidentally leak
// the bcrypt hash. Stripping it at the type level beats remembering to do
// it in every handler.
//
// GitHub-originated users have an empty PasswordHash. bcrypt comparison
// against an empty hash always fails, so password login for them is simply
// impossible — no special-casing needed.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	IsActive     bool      `json:"isActive"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}
