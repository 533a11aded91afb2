package users

import "time"

// User is created on first sign-in, with the identity (email) coming
// from the external identity provider.
type User struct {
	ID        int       `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}
