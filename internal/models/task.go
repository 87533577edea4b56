package models

import "time"

type Task struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Completed   bool      `json:"completed"`
	UserID      *int64    `json:"user_id,omitempty"`
	User        *User     `json:"user,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TaskPatch carries the fields of a partial update; nil means "leave as is".
type TaskPatch struct {
	Title       *string
	Description *string
	Completed   *bool
}
