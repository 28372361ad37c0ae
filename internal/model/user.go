// Package model defines domain entities for the application.
package model

import (
	"strings"
	"time"
)

// User represents a registered account that can own orders.
type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// HasValidName returns true if the name is non-empty after trimming.
func (u *User) HasValidName() bool {
	return strings.TrimSpace(u.Name) != ""
}

// HasValidEmail returns true if the email is syntactically plausible.
func (u *User) HasValidEmail() bool {
	return strings.Contains(u.Email, "@")
}

// Clone returns an independent copy of the user.
func (u *User) Clone() *User {
	c := *u
	return &c
}
