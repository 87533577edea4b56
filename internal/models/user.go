package models

import "time"

// RoleUser is the only role assigned today; there is no promotion flow.
const RoleUser = "user"

type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Roles        []string  `json:"roles"`
	Tasks        []Task    `json:"tasks,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Redacted returns a copy safe to hand to callers. The hash already carries
// json:"-", clearing it as well keeps it out of logs and test dumps.
func (u User) Redacted() User {
	u.PasswordHash = ""
	return u
}
