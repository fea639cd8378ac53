package models

// Identity is an authenticated user as seen by the core. ID is opaque and
// stable; nothing else about the user is relied upon.
type Identity struct {
	ID    string
	Email string
}
