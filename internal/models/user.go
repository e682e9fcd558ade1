package models

import (
	"time"
)

// User represents an account that may own a custom avatar
type User struct {
	ID          int64     `json:"id" db:"id"`
	Email       string    `json:"email" db:"email"`
	Login       string    `json:"login" db:"login"`
	DisplayName string    `json:"display_name" db:"display_name"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// UserMeta is a single user attribute, e.g. the custom avatar attachment id
type UserMeta struct {
	UserID int64  `json:"user_id" db:"user_id"`
	Key    string `json:"meta_key" db:"meta_key"`
	Value  string `json:"meta_value" db:"meta_value"`
}
