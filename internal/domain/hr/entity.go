package hr

import "time"

type HR struct {
	ID           string
	Username     string
	PasswordHash string
	Email        string
	Fullname     string
	PhotoPath    *string
	Gender       *string
	Phone        *string
	Address      *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
