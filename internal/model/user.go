package model

import "time"

// User represents an application user record as stored in the `users`
// table.  Users are created at registration and never mutated afterwards.
// PasswordHash is excluded from JSON so a User can be returned to clients
// directly.
//
// Fields:
//  ID           – primary key identifier of the user.
//  Name         – display name.
//  Email        – unique email address, stored exactly as registered.
//  PasswordHash – bcrypt hashed password.
//  CreatedAt    – timestamp of creation.
type User struct {
    ID           uint64    `json:"id"`        // users.id
    Name         string    `json:"name"`      // users.name
    Email        string    `json:"email"`     // users.email
    PasswordHash string    `json:"-"`         // users.password_hash
    CreatedAt    time.Time `json:"createdAt"` // users.created_at
}
