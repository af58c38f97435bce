package models

import "time"

type User struct {
	ID           string
	Username     string
	FullName     string
	PasswordHash string
	Disabled     bool
	CreatedAt    time.Time
}
