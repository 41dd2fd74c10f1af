package domain

import "time"

// User is the external identity as reported by the auth provider. It is
// referenced, never mutated, by this service.
type User struct {
	ID    string
	Email string
}

// Profile pairs an identity with its subscription tier. One row per user in
// the profiles table, created at signup by the provider; fetched whole on
// session load and replaced, never patched.
type Profile struct {
	ID        string
	Tier      Tier
	CreatedAt time.Time
	UpdatedAt time.Time
}
