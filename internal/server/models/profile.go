package models

import "time"

// Profile is the portal-side view of an authenticated user.
type Profile struct {
	ID        string
	Email     string
	FullName  string
	IsAdmin   bool
	CreatedAt time.Time
}
